package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"latrack/internal/config"
	"latrack/internal/email/noop"
	"latrack/internal/email/ses"
	"latrack/internal/evaluator"
	"latrack/internal/handler"
	"latrack/internal/port"
	"latrack/internal/repository/postgres"
	"latrack/internal/router"
	"latrack/internal/service"
	"latrack/internal/signature"
	s3storage "latrack/internal/storage/s3"
)

// @title        Legal Access Tracker API
// @version      1.0
// @description  Commune legal-access self-assessment and review workflow API.
// @BasePath     /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	communeRepo := postgres.NewCommuneRepo(db)
	userRepo := postgres.NewUserRepo(db)
	periodRepo := postgres.NewPeriodRepo(db)
	catalogRepo := postgres.NewCatalogRepo(db)
	assessmentRepo := postgres.NewAssessmentRepo(db)
	jobRepo := postgres.NewSignatureJobRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Signature verification collaborator
	var verifier port.SignatureVerifier
	if cfg.Signature.Endpoint != "" {
		verifier = signature.NewHTTPVerifier(cfg.Signature.Endpoint, time.Duration(cfg.Signature.TimeoutSecs)*time.Second)
	} else {
		verifier = signature.NewDisabledVerifier()
		log.Printf("signature verification endpoint not configured; verdicts will report as errors")
	}

	// Decision-notification email
	var emailSender port.EmailSender
	switch cfg.Email.Provider {
	case "ses":
		emailSender, err = ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName, cfg.Email.FrontendURL)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	default:
		emailSender = noop.NewNoopSender()
	}

	engine := evaluator.NewEngine(cfg.Assessment.DefaultDeadlineDays)

	// Initialize services
	authSvc := service.NewAuthService(userRepo, cfg.JWT)
	communeSvc := service.NewCommuneService(communeRepo)
	userSvc := service.NewUserService(userRepo)
	periodSvc := service.NewPeriodService(periodRepo)
	catalogSvc := service.NewCatalogService(catalogRepo)
	assessmentSvc := service.NewAssessmentService(assessmentRepo, periodRepo, catalogSvc, engine, cfg.Assessment.DefaultDeadlineDays)
	evidenceSvc := service.NewEvidenceService(assessmentRepo, assessmentSvc, catalogSvc, jobRepo, s3Client, &cfg.S3, cfg.Assessment.DefaultDeadlineDays)
	reviewSvc := service.NewReviewService(assessmentRepo, communeRepo, catalogSvc, engine, emailSender)

	// Initialize handlers
	handlers := router.Handlers{
		Auth:       handler.NewAuthHandler(authSvc, userSvc),
		Assessment: handler.NewAssessmentHandler(assessmentSvc),
		Evidence:   handler.NewEvidenceHandler(evidenceSvc),
		Review:     handler.NewReviewHandler(reviewSvc, catalogSvc),
		Catalog:    handler.NewCatalogHandler(catalogSvc),
		Commune:    handler.NewCommuneHandler(communeSvc),
		User:       handler.NewUserHandler(userSvc),
		Period:     handler.NewPeriodHandler(periodSvc),
		Health:     handler.NewHealthHandler(db),
	}

	r := router.Setup(cfg, authSvc, handlers)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Signature verification worker
	worker := service.NewSignatureQueueWorker(jobRepo, s3Client, verifier, assessmentSvc, cfg.S3.Bucket, service.SignatureQueueConfig{
		PollInterval:        time.Duration(cfg.Signature.PollIntervalSecs) * time.Second,
		MaxRetries:          cfg.Signature.MaxRetries,
		Concurrency:         cfg.Signature.Concurrency,
		DefaultDeadlineDays: cfg.Assessment.DefaultDeadlineDays,
	})
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		worker.Start(ctx)
	}()

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("server starting on %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		stop()
		<-workerDone
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Printf("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
	<-workerDone
	log.Printf("shutdown complete")
	return nil
}
