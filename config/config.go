package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	FrontendURL string
	// Firebase platform (identity + realtime database)
	FirebaseCredentials string // path to the service account JSON
	FirebaseDatabaseURL string
	FirebaseProjectID   string
	FirebaseWebAPIKey   string // Identity Toolkit key for password sign-in
	// S3-compatible blob storage
	S3Provider        string // "aws" or "wasabi"
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3Region          string
	S3Bucket          string
	S3Endpoint        string // custom endpoint for wasabi-style providers
	// Signed URL validity
	ProfileAssetURLTTLDays int // stored profile blob references; SigV4 caps presigning at 7 days
	DownloadURLTTLMinutes  int // short-lived on-demand downloads
	// Redis/Upstash Configuration
	UpstashRedisURL      string
	UpstashRedisPassword string
	// Rate Limiting Configuration
	RateLimitWindowSeconds   int
	RateLimitLoginThreshold  int
	RateLimitGlobalThreshold int
}

func LoadConfig() (*Config, error) {
	// .env is only effective locally; ignored in production when absent
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		FrontendURL: strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),

		FirebaseCredentials: getEnv("FIREBASE_CREDENTIALS", ""),
		FirebaseDatabaseURL: strings.TrimRight(getEnv("FIREBASE_DATABASE_URL", ""), "/"),
		FirebaseProjectID:   getEnv("FIREBASE_PROJECT_ID", ""),
		FirebaseWebAPIKey:   getEnv("FIREBASE_WEB_API_KEY", ""),

		S3Provider:        getEnv("S3_PROVIDER", "aws"),
		S3AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
		S3SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
		S3Region:          getEnv("S3_REGION", "us-east-1"),
		S3Bucket:          getEnv("S3_BUCKET", ""),
		S3Endpoint:        getEnv("S3_ENDPOINT", ""),

		ProfileAssetURLTTLDays: getEnvInt("PROFILE_ASSET_URL_TTL_DAYS", 7),
		DownloadURLTTLMinutes:  getEnvInt("DOWNLOAD_URL_TTL_MINUTES", 15),

		UpstashRedisURL:      getEnv("UPSTASH_REDIS_URL", ""),
		UpstashRedisPassword: getEnv("UPSTASH_REDIS_PASSWORD", ""),

		RateLimitWindowSeconds:   getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitLoginThreshold:  getEnvInt("RATE_LIMIT_LOGIN_THRESHOLD", 10),
		RateLimitGlobalThreshold: getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 100),
	}

	// Basic sanity warnings; the app still boots so that health checks work
	if cfg.FirebaseCredentials == "" {
		log.Println("WARNING: FIREBASE_CREDENTIALS is missing. Identity and database access will fail.")
	}
	if cfg.S3Bucket == "" {
		log.Println("WARNING: S3_BUCKET is missing. File uploads will be unavailable.")
	}
	if cfg.UpstashRedisURL == "" {
		log.Println("WARNING: UPSTASH_REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}
