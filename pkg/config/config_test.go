package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_DefaultsAndOverrides(t *testing.T) {
	t.Setenv("SEARCH_API_BASE_URL", "")
	t.Setenv("CV_API_BASE_URL", "https://cv.example")
	t.Setenv("JOBS_DIRS", " data , ,public")
	t.Setenv("JWT_TTL_MINUTES", "not-a-number")
	t.Setenv("SESSION_IDLE_MINUTES", "")

	cfg := Load()
	assert.Equal(t, "http://localhost:8080", cfg.SearchAPIBaseURL)
	assert.Equal(t, "https://cv.example", cfg.CVAPIBaseURL)
	assert.Equal(t, []string{"data", "public"}, cfg.JobsDirs)
	assert.Equal(t, 60, cfg.JWTTTLMinutes)
	assert.Equal(t, 120, cfg.SessionIdleMinutes)
}
