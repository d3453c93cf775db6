package config

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

// Config holds the settings read once per execution context.
type Config struct {
	Bucket           string `env:"S3_BUCKET" default:"kandidat-48-data"`
	ResultPrefix     string `env:"RESULT_PREFIX" default:"midlertidig/"`
	ComprehendRegion string `env:"COMPREHEND_REGION" default:"eu-west-1"`
	TruncateMode     string `env:"TRUNCATE_MODE" default:"chars"`
	EndpointURL      string `env:"AWS_ENDPOINT_URL"`
	LogLevel         string `env:"LOG_LEVEL" default:"info"`
	LogFormat        string `env:"LOG_FORMAT" default:"json"`
	GatewayAddr      string `env:"GATEWAY_ADDR" default:":3000"`
}

var (
	truncateModes = []string{"chars", "bytes"}
	logFormats    = []string{"json", "text"}
)

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Bucket == "" {
		return fmt.Errorf("S3_BUCKET is required")
	}
	if cfg.ComprehendRegion == "" {
		return fmt.Errorf("COMPREHEND_REGION is required")
	}
	if !slices.Contains(truncateModes, cfg.TruncateMode) {
		return fmt.Errorf("TRUNCATE_MODE must be one of %v, got %q", truncateModes, cfg.TruncateMode)
	}
	if !slices.Contains(logFormats, cfg.LogFormat) {
		return fmt.Errorf("LOG_FORMAT must be one of %v, got %q", logFormats, cfg.LogFormat)
	}
	return nil
}
