package main

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/0xhtml/search-engine/pkg/config/env"
	"github.com/0xhtml/search-engine/pkg/utils"
)

type AppConfig struct {
	ENV string
}

func NewAppConfig() *AppConfig {
	return &AppConfig{
		ENV: os.Getenv("ENV"),
	}
}

type SearchApiConfig struct {
	// MetricsDB is the sqlite file engine outcome metrics are written to.
	// Empty disables metric recording.
	MetricsDB string
	// SpamSources are URLs or file paths of host denylists, one host per
	// line.
	SpamSources []string
	// EnginesConfig is an optional YAML file with per-engine weight and
	// disabled overrides.
	EnginesConfig string
	// UpstreamTimeout bounds a single upstream request.
	UpstreamTimeout time.Duration
}

func (as *AppConfig) Load() (*SearchApiConfig, error) {
	err := env.LoadDotEnv(as.ENV, "cmd/search_api/.env")
	if err != nil {
		slog.Info("Failed to .env load environment variables, continuing with existing environment variables", "error", err)
	}

	cfg := &SearchApiConfig{
		MetricsDB:     os.Getenv("METRICS_DB"),
		EnginesConfig: os.Getenv("ENGINES_CONFIG"),
	}

	if sources := os.Getenv("SPAM_SOURCES"); sources != "" {
		parts := strings.Split(sources, ",")
		for i, p := range parts {
			parts[i] = strings.TrimSpace(p)
		}
		cfg.SpamSources = utils.RemoveEmptyStrings(parts)
	}

	if raw := os.Getenv("UPSTREAM_TIMEOUT"); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil {
			slog.Error("Invalid UPSTREAM_TIMEOUT, using default", "value", raw, "error", err)
		} else {
			cfg.UpstreamTimeout = timeout
		}
	}

	return cfg, nil
}
