package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	// App
	AppVersion string

	// Server
	Port           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	AllowedOrigins []string

	// Postgres (ledger + admin accounts)
	PostgresURI string

	// MongoDB (audit trail)
	MongoURI string
	MongoDB  string

	// Remote inventory/customer portal. An empty token switches the
	// gateway to the static mock dataset.
	PortalBaseURL string
	PortalToken   string
	MockLatency   time.Duration

	// Sessions
	JWTSecret string
	JWTExpiry time.Duration
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		AppVersion: getEnv("APP_VERSION", "1.0.0"),

		Port:           getEnv("PORT", "8080"),
		ReadTimeout:    time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout:   time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "*")),

		PostgresURI: getEnv("POSTGRES_DSN", "postgres://localhost:5432/umoja?sslmode=disable"),

		MongoURI: getEnv("MONGODB_DSN", "mongodb://localhost:27017"),
		MongoDB:  getEnv("MONGO_DB", "umoja"),

		PortalBaseURL: getEnv("PORTAL_BASE_URL", "https://portal.umoja.network/api/2.0/admin"),
		PortalToken:   getEnv("PORTAL_TOKEN", ""),
		MockLatency:   time.Duration(getEnvAsInt("MOCK_LATENCY_MS", 600)) * time.Millisecond,

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTExpiry: time.Duration(getEnvAsInt("JWT_EXPIRY_HOURS", 12)) * time.Hour,
	}

	return config, nil
}

// HasPortalToken reports whether live portal calls are configured.
func (c *Config) HasPortalToken() bool {
	return c.PortalToken != ""
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
