package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"legalvoice/internal/ai"
	"legalvoice/internal/api"
	"legalvoice/internal/config"
	"legalvoice/internal/logger"
	"legalvoice/internal/middleware"
	"legalvoice/internal/pipeline"
	"legalvoice/internal/repository"
	"legalvoice/internal/retry"
	"legalvoice/internal/storage"
	"legalvoice/internal/stt"
)

func main() {
	log := logger.New()

	// Load .env file if it exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found, using environment variables")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("Failed to load configuration")
	}

	// Set Gin mode (default to release mode)
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Key and prompt are re-read from these files on every call
	store := config.NewFileProvider(cfg.KeyFile, cfg.PromptFile)

	policy := retry.Policy{
		MaxAttempts:     cfg.RetryMaxAttempts,
		InitialInterval: cfg.RetryInitialInterval,
	}

	pipe := pipeline.New(
		stt.NewOpenAIProvider(store, cfg.OpenAIBaseURL, log.Component("stt")),
		ai.NewMerger(store, cfg.OpenAIBaseURL, log.Component("merge")),
		policy,
		log.Component("pipeline"),
	)

	// Document store is optional
	var docs repository.DocumentRepository
	if cfg.MongoURI != "" {
		client, repo, err := repository.Connect(context.Background(), cfg.MongoURI, cfg.MongoDatabase, cfg.MongoCollection)
		if err != nil {
			log.WithError(err).Warn("Failed to connect to MongoDB. Continuing without document store.")
		} else {
			docs = repo
			defer func() {
				if err := client.Disconnect(context.Background()); err != nil {
					log.WithError(err).Warn("MongoDB disconnect failed")
				}
			}()
			log.WithField("collection", cfg.MongoDatabase+"."+cfg.MongoCollection).Info("MongoDB connected")
		}
	} else {
		log.Info("MONGO_URI not set, document routes disabled")
	}

	r := gin.New()
	middleware.Setup(r, log.Component("http"), cfg.CORSOrigin)
	api.RegisterRoutes(r, api.NewHandler(pipe, docs, storage.NewStore(cfg.TransientDir), cfg.UploadDir))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.WithField("port", cfg.Port).Info("legalvoice backend running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Server shutdown failed")
	}
}
