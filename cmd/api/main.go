package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/notekeep-api/internal/config"
	"github.com/notekeep-api/internal/infrastructure/dynamo"
	"github.com/notekeep-api/internal/infrastructure/github"
	"github.com/notekeep-api/internal/infrastructure/google"
	jwtinfra "github.com/notekeep-api/internal/infrastructure/jwt"
	s3infra "github.com/notekeep-api/internal/infrastructure/s3"
	"github.com/notekeep-api/internal/infrastructure/smtp"
	transporthttp "github.com/notekeep-api/internal/transport/http"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient := dynamo.NewClient(cfg)
	dynamo.Bootstrap(context.Background(), dynamoClient, cfg.DynamoTables)

	// JWT provider (optional, with graceful fallback if keys are missing).
	var jwtProvider *jwtinfra.Provider
	if p, err := jwtinfra.NewProvider(cfg); err == nil {
		jwtProvider = p
	} else {
		log.Printf("WARN: JWT provider not available: %v", err)
	}

	// S3 store for note attachments.
	s3Client := s3infra.NewClient(cfg)
	s3Store := s3infra.NewStore(s3Client, cfg.S3BucketName)

	// SMTP mailer.
	mailer := smtp.NewMailer(cfg)

	// OAuth verifiers, only wired when credentials are configured.
	var googleVerifier *google.Verifier
	if cfg.GoogleClientID != "" {
		googleVerifier = google.NewVerifier(cfg.GoogleClientID)
	} else {
		log.Println("WARN: Google sign-in disabled (no client ID)")
	}
	var githubVerifier *github.Verifier
	if cfg.GitHubClientID != "" {
		githubVerifier = github.NewVerifier(cfg.GitHubClientID, cfg.GitHubClientSecret)
	} else {
		log.Println("WARN: GitHub sign-in disabled (no client ID)")
	}

	deps := &transporthttp.Deps{
		UserRepo:       dynamo.NewUserRepo(dynamoClient, cfg.DynamoTables.Users),
		TokenRepo:      dynamo.NewVerificationTokenRepo(dynamoClient, cfg.DynamoTables.VerificationTokens, cfg.DynamoTables.Users),
		NoteRepo:       dynamo.NewNoteRepo(dynamoClient, cfg.DynamoTables.Notes),
		CategoryRepo:   dynamo.NewCategoryRepo(dynamoClient, cfg.DynamoTables.Categories),
		TagRepo:        dynamo.NewTagRepo(dynamoClient, cfg.DynamoTables.Tags),
		TaskRepo:       dynamo.NewTaskRepo(dynamoClient, cfg.DynamoTables.Tasks),
		ProjectRepo:    dynamo.NewProjectRepo(dynamoClient, cfg.DynamoTables.Projects),
		TemplateRepo:   dynamo.NewTemplateRepo(dynamoClient, cfg.DynamoTables.Templates),
		JournalRepo:    dynamo.NewJournalRepo(dynamoClient, cfg.DynamoTables.JournalEntries),
		ArticleRepo:    dynamo.NewArticleRepo(dynamoClient, cfg.DynamoTables.Articles),
		AttachmentRepo: dynamo.NewAttachmentRepo(dynamoClient, cfg.DynamoTables.Attachments),
		S3Store:        s3Store,
		Mailer:         mailer,
		GoogleVerifier: googleVerifier,
		GitHubVerifier: githubVerifier,
		JWTProvider:    jwtProvider,
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
