package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("BASE_API_URL", "")
	t.Setenv("WEBSERVER_ADDRESS", "")
	t.Setenv("CACHE_RESET_MINUTES", "")

	cfg := Load()
	assert.Equal(t, "", cfg.BaseAPIURL)
	assert.Equal(t, ":8080", cfg.Address)
	assert.Equal(t, time.Hour, cfg.CacheReset)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("BASE_API_URL", "https://api.openf1.org/v1/")
	t.Setenv("WEBSERVER_ADDRESS", ":9090")
	t.Setenv("CACHE_RESET_MINUTES", "15")

	cfg := Load()
	assert.Equal(t, "https://api.openf1.org/v1/", cfg.BaseAPIURL)
	assert.Equal(t, ":9090", cfg.Address)
	assert.Equal(t, 15*time.Minute, cfg.CacheReset)
}

func TestLoadIgnoresBadResetPeriod(t *testing.T) {
	t.Setenv("CACHE_RESET_MINUTES", "soon")

	cfg := Load()
	assert.Equal(t, time.Hour, cfg.CacheReset)
}

func TestValidateMissingBaseURL(t *testing.T) {
	cfg := Config{}
	errs := cfg.Validate()
	assert.Len(t, errs, 1)

	cfg.BaseAPIURL = "https://api.openf1.org/v1/"
	assert.Empty(t, cfg.Validate())
}
