package service

import (
	"context"
	"log"
	"sync"
	"time"

	"latrack/internal/domain"
	"latrack/internal/evidence"
	"latrack/internal/port"
)

// SignatureQueueConfig holds settings for the signature queue worker.
type SignatureQueueConfig struct {
	PollInterval        time.Duration
	MaxRetries          int
	Concurrency         int
	DefaultDeadlineDays int
}

// SignatureQueueWorker polls for queued signature-verification jobs,
// verifies the PDF against the external collaborator and writes the
// deadline-checked result back onto the assessment.
type SignatureQueueWorker struct {
	jobRepo       port.SignatureJobRepository
	storage       port.ObjectStorage
	verifier      port.SignatureVerifier
	assessmentSvc AssessmentService
	bucket        string
	cfg           SignatureQueueConfig
	wg            sync.WaitGroup
}

// NewSignatureQueueWorker creates a new SignatureQueueWorker.
func NewSignatureQueueWorker(
	jobRepo port.SignatureJobRepository,
	storage port.ObjectStorage,
	verifier port.SignatureVerifier,
	assessmentSvc AssessmentService,
	bucket string,
	cfg SignatureQueueConfig,
) *SignatureQueueWorker {
	return &SignatureQueueWorker{
		jobRepo:       jobRepo,
		storage:       storage,
		verifier:      verifier,
		assessmentSvc: assessmentSvc,
		bucket:        bucket,
		cfg:           cfg,
	}
}

// Start runs the polling loop until ctx is canceled. It blocks until all
// in-flight verifications have finished.
func (w *SignatureQueueWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	sem := make(chan struct{}, w.cfg.Concurrency)

	log.Printf("signatureQueueWorker: started (poll=%s, concurrency=%d, maxRetries=%d)",
		w.cfg.PollInterval, w.cfg.Concurrency, w.cfg.MaxRetries)

	for {
		select {
		case <-ctx.Done():
			log.Printf("signatureQueueWorker: shutting down, waiting for in-flight verifications...")
			w.wg.Wait()
			log.Printf("signatureQueueWorker: shutdown complete")
			return
		case <-ticker.C:
			available := w.cfg.Concurrency - len(sem)
			if available <= 0 {
				continue
			}

			jobs, err := w.jobRepo.ClaimQueued(ctx, available)
			if err != nil {
				if ctx.Err() != nil {
					continue
				}
				log.Printf("signatureQueueWorker: ClaimQueued error: %v", err)
				continue
			}

			for i := range jobs {
				job := jobs[i] // copy for goroutine

				sem <- struct{}{} // acquire
				w.wg.Add(1)
				go func() {
					defer w.wg.Done()
					defer func() { <-sem }() // release

					// Fresh context independent of the poll context so
					// in-flight verifications complete during shutdown.
					jobCtx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
					defer cancel()

					log.Printf("signatureQueueWorker: verifying %s (attempt %d)", job.StorageKey, job.Attempts)
					w.ProcessJob(jobCtx, &job)
				}()
			}
		}
	}
}

// ProcessJob runs one claimed job end to end. Infrastructure failures
// (storage, transport, persistence) requeue the job until MaxRetries;
// verification outcomes, including invalid signatures, are final.
func (w *SignatureQueueWorker) ProcessJob(ctx context.Context, job *domain.SignatureJob) {
	pdf, err := w.storage.Download(ctx, w.bucket, job.StorageKey)
	if err != nil {
		w.fail(ctx, job, "downloading evidence: "+err.Error())
		return
	}

	verdict, err := w.verifier.Verify(ctx, pdf)
	if err != nil {
		w.fail(ctx, job, "verifying signature: "+err.Error())
		return
	}

	doc := domain.AssignedDocument{
		IssueDate:            job.ReferenceDate,
		IssuanceDeadlineDays: job.DeadlineDays,
	}
	comp := evidence.CheckFromDocument(*verdict, doc, w.cfg.DefaultDeadlineDays)

	if err := w.assessmentSvc.ApplySignatureVerdict(ctx, job, comp); err != nil {
		w.fail(ctx, job, "applying verdict: "+err.Error())
		return
	}

	if err := w.jobRepo.MarkDone(ctx, job.ID); err != nil {
		log.Printf("signatureQueueWorker: MarkDone %s: %v", job.ID, err)
		return
	}
	log.Printf("signatureQueueWorker: job %s done (%s)", job.ID, comp.SignatureStatus)
}

func (w *SignatureQueueWorker) fail(ctx context.Context, job *domain.SignatureJob, reason string) {
	requeue := job.Attempts < w.cfg.MaxRetries
	log.Printf("signatureQueueWorker: job %s failed (attempt %d, requeue=%t): %s",
		job.ID, job.Attempts, requeue, reason)
	if err := w.jobRepo.MarkFailed(ctx, job.ID, reason, requeue); err != nil {
		log.Printf("signatureQueueWorker: MarkFailed %s: %v", job.ID, err)
	}
}
