package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DatabaseURL string
	RedisURL    string
	LogLevel    string

	JWTSecret     string
	JWTIssuer     string
	JWTTTLMinutes int

	SearchAPIBaseURL string
	CVAPIBaseURL     string
	// JobsDirs are the candidate directories for /api/jobs, in lookup order.
	JobsDirs []string
	// CVTemplatesFile optionally overrides the template catalog (YAML).
	CVTemplatesFile string

	OpenRouterAPIKey   string
	OpenRouterBaseURL  string
	OpenRouterModel    string
	OpenRouterAppTitle string
	OpenRouterReferer  string

	// SessionIdleMinutes is how long an untouched workspace or CV dialog
	// is kept in memory.
	SessionIdleMinutes int

	ShutdownTimeoutSeconds int
}

// Load reads environment variables, optionally from a .env file if present.
func Load() Config {
	// Try to load .env if it exists; ignore error if file not found
	_ = godotenv.Load()

	cfg := Config{
		Port:        getEnv("PORT", "3000"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    getEnv("REDIS_URL", "redis://localhost:6379/0"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		JWTSecret:     getEnv("JWT_SECRET", "dev-secret-change"),
		JWTIssuer:     getEnv("JWT_ISSUER", "jobsearch"),
		JWTTTLMinutes: getEnvInt("JWT_TTL_MINUTES", 60),

		SearchAPIBaseURL: getEnv("SEARCH_API_BASE_URL", "http://localhost:8080"),
		CVAPIBaseURL:     getEnv("CV_API_BASE_URL", "http://localhost:8080"),
		JobsDirs:         getEnvList("JOBS_DIRS"),
		CVTemplatesFile:  os.Getenv("CV_TEMPLATES_FILE"),

		OpenRouterAPIKey:   os.Getenv("OPENROUTER_API_KEY"),
		OpenRouterBaseURL:  os.Getenv("OPENROUTER_BASE_URL"),
		OpenRouterModel:    os.Getenv("OPENROUTER_MODEL"),
		OpenRouterAppTitle: getEnv("OPENROUTER_APP_TITLE", "jobsearch"),
		OpenRouterReferer:  os.Getenv("OPENROUTER_REFERER"),

		SessionIdleMinutes:     getEnvInt("SESSION_IDLE_MINUTES", 120),
		ShutdownTimeoutSeconds: getEnvInt("SHUTDOWN_TIMEOUT_SECONDS", 10),
	}
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// getEnvList splits a comma-separated value; unset yields nil.
func getEnvList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
