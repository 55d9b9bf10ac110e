package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	defaultAddress         = ":8080"
	defaultCacheResetHours = 1
)

// Config holds the runtime settings for the dashboard. Values come from the
// environment; main loads a .env file first so local development matches the
// deployed setup.
type Config struct {
	BaseAPIURL string        // OpenF1 base URL, e.g. https://api.openf1.org/v1/
	Address    string        // webserver listen address
	CacheReset time.Duration // period between fetch cache resets
}

func Load() Config {
	cfg := Config{
		BaseAPIURL: os.Getenv("BASE_API_URL"),
		Address:    defaultAddress,
		CacheReset: defaultCacheResetHours * time.Hour,
	}

	if addr := os.Getenv("WEBSERVER_ADDRESS"); addr != "" {
		cfg.Address = addr
	}

	if mins := os.Getenv("CACHE_RESET_MINUTES"); mins != "" {
		if m, err := strconv.Atoi(mins); err == nil && m > 0 {
			cfg.CacheReset = time.Duration(m) * time.Minute
		}
	}

	return cfg
}

// Validate reports configuration problems. A missing BASE_API_URL is not
// fatal at startup: the first fetch fails with a config error instead, so
// the server still comes up and can show the message in the UI.
func (c Config) Validate() []error {
	var errs []error
	if c.BaseAPIURL == "" {
		errs = append(errs, fmt.Errorf("BASE_API_URL is not set; fetches will fail until it is"))
	}
	return errs
}
