package config

import (
	"os"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port                string
	Env                 string
	LogLevel            string
	MongoURI            string
	MongoDatabase       string
	AdminAPIToken       string
	CORSAllowedOrigins  []string
	NotifyTimeout       time.Duration
	ShutdownTimeout     time.Duration
	MongoConnectTimeout time.Duration
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:                getEnv("PORT", "8080"),
		Env:                 getEnv("ENV", "development"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		MongoURI:            getEnv("MONGODB_URI", ""),
		MongoDatabase:       getEnv("MONGODB_DATABASE", "pestcontrol"),
		AdminAPIToken:       getEnv("ADMIN_API_TOKEN", ""),
		CORSAllowedOrigins:  getEnvAsSlice("CORS_ALLOWED_ORIGINS", nil),
		NotifyTimeout:       getEnvAsDuration("NOTIFY_TIMEOUT", 30*time.Second),
		ShutdownTimeout:     getEnvAsDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
		MongoConnectTimeout: getEnvAsDuration("MONGODB_CONNECT_TIMEOUT", 10*time.Second),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
