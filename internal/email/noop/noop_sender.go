package noop

import (
	"context"
	"log"

	"latrack/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op EmailSender that logs decisions to stdout.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendRegistrationDecision(_ context.Context, toEmail, communeName string, approved bool, reason string) error {
	log.Printf("[NOOP EMAIL] Registration decision for %s (%s): approved=%t reason=%q", communeName, toEmail, approved, reason)
	return nil
}

func (s *noopSender) SendFinalDecision(_ context.Context, toEmail, communeName string, achieved bool, reason string) error {
	log.Printf("[NOOP EMAIL] Final decision for %s (%s): achieved=%t reason=%q", communeName, toEmail, achieved, reason)
	return nil
}
