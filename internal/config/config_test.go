package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "ENV", "LOG_LEVEL", "MONGODB_URI", "MONGODB_DATABASE",
		"ADMIN_API_TOKEN", "CORS_ALLOWED_ORIGINS", "NOTIFY_TIMEOUT",
		"SHUTDOWN_TIMEOUT", "MONGODB_CONNECT_TIMEOUT",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "pestcontrol", cfg.MongoDatabase)
	assert.Equal(t, 30*time.Second, cfg.NotifyTimeout)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 10*time.Second, cfg.MongoConnectTimeout)
	assert.Empty(t, cfg.AdminAPIToken)
	assert.Empty(t, cfg.CORSAllowedOrigins)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("ADMIN_API_TOKEN", "secret")
	t.Setenv("NOTIFY_TIMEOUT", "45s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://perfectpest.example, https://admin.perfectpest.example")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "secret", cfg.AdminAPIToken)
	assert.Equal(t, 45*time.Second, cfg.NotifyTimeout)
	assert.Equal(t, []string{"https://perfectpest.example", "https://admin.perfectpest.example"}, cfg.CORSAllowedOrigins)
}

func TestLoadBadDurationFallsBack(t *testing.T) {
	t.Setenv("NOTIFY_TIMEOUT", "not-a-duration")

	cfg := Load()
	assert.Equal(t, 30*time.Second, cfg.NotifyTimeout)
}
