package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go-jobboard-backend/config"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := config.LoadConfig()
	assert.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "aws", cfg.S3Provider)
	assert.Equal(t, 7, cfg.ProfileAssetURLTTLDays)
	assert.Equal(t, 15, cfg.DownloadURLTTLMinutes)
	assert.Equal(t, 60, cfg.RateLimitWindowSeconds)
	assert.Equal(t, 100, cfg.RateLimitGlobalThreshold)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("FRONTEND_URL", "https://jobs.example.com/")
	t.Setenv("FIREBASE_DATABASE_URL", "https://demo.firebaseio.com/")
	t.Setenv("DOWNLOAD_URL_TTL_MINUTES", "5")
	t.Setenv("RATE_LIMIT_LOGIN_THRESHOLD", "not-a-number")

	cfg, err := config.LoadConfig()
	assert.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "https://jobs.example.com", cfg.FrontendURL, "trailing slash stripped")
	assert.Equal(t, "https://demo.firebaseio.com", cfg.FirebaseDatabaseURL)
	assert.Equal(t, 5, cfg.DownloadURLTTLMinutes)
	assert.Equal(t, 10, cfg.RateLimitLoginThreshold, "invalid int falls back to default")
}
