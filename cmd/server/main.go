package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/joho/godotenv"

	"github.com/ytakahashi/todo-backend/internal/auth"
	"github.com/ytakahashi/todo-backend/internal/config"
	"github.com/ytakahashi/todo-backend/internal/handlers"
	"github.com/ytakahashi/todo-backend/internal/logging"
	"github.com/ytakahashi/todo-backend/internal/services"
	"github.com/ytakahashi/todo-backend/internal/storage"
	"github.com/ytakahashi/todo-backend/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := logging.New(cfg.LogLevel, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	verifier, err := auth.NewVerifier(cfg.Auth, logger.With("component", "auth"))
	if err != nil {
		log.Fatalf("Failed to create token verifier: %v", err)
	}
	authorizer := auth.NewAuthorizer(verifier, logger.With("component", "auth"))

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		log.Fatalf("Failed to load AWS configuration: %v", err)
	}

	var todoStore store.TodoStore
	switch cfg.Store.Backend {
	case config.BackendFirestore:
		firestoreStore, err := store.NewFirestoreStore(ctx, cfg.Store.ProjectID, cfg.Store.Table)
		if err != nil {
			log.Fatalf("Failed to create Firestore store: %v", err)
		}
		defer firestoreStore.Close()
		todoStore = firestoreStore
	default:
		todoStore = store.NewDynamoDBStore(dynamodb.NewFromConfig(awsCfg), cfg.Store.Table)
	}

	issuer := storage.NewS3Issuer(s3.NewPresignClient(s3.NewFromConfig(awsCfg)), cfg.Attachments)
	todoService := services.NewTodoService(todoStore, issuer, logger.With("component", "todos"))

	e := handlers.NewRouter(
		handlers.NewTodoHandler(todoService, logger.With("component", "http")),
		authorizer,
		handlers.RouterOptions{
			AllowOrigins: cfg.AllowOrigins,
			Logger:       logger.With("component", "http"),
		},
	)

	go func() {
		logger.Info("server starting", "port", cfg.Port, "store", cfg.Store.Backend)
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", "error", err)
	}
}
