package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-jobboard-backend/config"
	v1 "go-jobboard-backend/internal/delivery/http/v1"
	"go-jobboard-backend/internal/repository/rtdb"
	"go-jobboard-backend/internal/usecase"
	"go-jobboard-backend/pkg/auth"
	"go-jobboard-backend/pkg/firebase"
	"go-jobboard-backend/pkg/logger"
	"go-jobboard-backend/pkg/redis"
	"go-jobboard-backend/pkg/storage"
)

func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting job board backend", "port", cfg.Port)

	ctx := context.Background()

	// 3. Setup Platform Clients
	clients, err := firebase.NewClients(ctx, cfg)
	if err != nil {
		logger.Log.Error("Failed to initialize platform clients", "error", err)
		os.Exit(1)
	}

	s3Client, err := storage.NewClient(ctx, storage.ClientConfig{
		Provider:        cfg.S3Provider,
		AccessKeyID:     cfg.S3AccessKeyID,
		SecretAccessKey: cfg.S3SecretAccessKey,
		Region:          cfg.S3Region,
		Bucket:          cfg.S3Bucket,
		Endpoint:        cfg.S3Endpoint,
	})
	if err != nil {
		logger.Log.Error("Failed to initialize object storage", "error", err)
		os.Exit(1)
	}
	blobStore := storage.NewStore(s3Client, cfg.S3Bucket)

	// Redis is optional; rate limiting falls back to in-memory without it
	if err := redis.Initialize(redis.Config{URL: cfg.UpstashRedisURL, Password: cfg.UpstashRedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable, rate limiting falls back to in-memory", "error", err)
	}
	defer redis.Close()

	// 4. Setup Repositories
	userRepo := rtdb.NewUserRepository(clients.Database)
	jobRepo := rtdb.NewJobRepository(clients.Database)
	applicationRepo := rtdb.NewApplicationRepository(clients.Database)

	// 5. Setup Identity Provider
	identity := firebase.NewIdentityProvider(clients.Auth, cfg.FirebaseWebAPIKey)

	// 6. Setup UseCases
	assetTTL := time.Duration(cfg.ProfileAssetURLTTLDays) * 24 * time.Hour
	downloadTTL := time.Duration(cfg.DownloadURLTTLMinutes) * time.Minute

	authUC := usecase.NewAuthUsecase(userRepo, identity, blobStore, assetTTL)
	profileUC := usecase.NewProfileUsecase(userRepo, identity, blobStore, cfg.S3Bucket, assetTTL, downloadTTL)
	jobUC := usecase.NewJobUsecase(jobRepo, userRepo)
	applicationUC := usecase.NewApplicationUsecase(applicationRepo, jobRepo, userRepo)

	// 7. Setup Token Verifier (JWKS)
	jwksProvider := auth.NewProvider(auth.SecureTokenJWKSURL)
	verifier := auth.NewVerifier(jwksProvider, cfg.FirebaseProjectID)

	// 8. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:        authUC,
		ProfileUC:     profileUC,
		JobUC:         jobUC,
		ApplicationUC: applicationUC,
		Verifier:      verifier,
		Config:        cfg,
	})

	// 9. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
