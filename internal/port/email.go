package port

import "context"

// EmailSender defines the contract for decision-notification emails sent to
// commune contacts.
type EmailSender interface {
	SendRegistrationDecision(ctx context.Context, toEmail, communeName string, approved bool, reason string) error
	SendFinalDecision(ctx context.Context, toEmail, communeName string, achieved bool, reason string) error
}
