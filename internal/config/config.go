package config

import (
	"os"
	"strconv"

	"datacheck/domain/core"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Evaluate EvaluateConfig
}

// DatabaseConfig holds database connection settings. URL may be empty, in
// which case evaluation runs are not persisted.
type DatabaseConfig struct {
	URL string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// EvaluateConfig holds evaluation defaults
type EvaluateConfig struct {
	Extended        bool
	MaxUploadBytes  int64
	DossierParallel int
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	cfg := &Config{
		Database: DatabaseConfig{URL: os.Getenv("DATABASE_URL")},
		Server:   ServerConfig{Port: envOr("PORT", "8080")},
		Evaluate: EvaluateConfig{
			Extended:        true,
			MaxUploadBytes:  64 << 20,
			DossierParallel: 4,
		},
	}

	if v := os.Getenv("EVALUATE_EXTENDED"); v != "" {
		extended, err := strconv.ParseBool(v)
		if err != nil {
			return nil, &core.ArgumentError{Name: "EVALUATE_EXTENDED", Reason: "must be a boolean"}
		}
		cfg.Evaluate.Extended = extended
	}
	if v := os.Getenv("DOSSIER_PARALLEL"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, &core.ArgumentError{Name: "DOSSIER_PARALLEL", Reason: "must be a positive integer"}
		}
		cfg.Evaluate.DossierParallel = n
	}
	if v := os.Getenv("MAX_UPLOAD_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n < 1 {
			return nil, &core.ArgumentError{Name: "MAX_UPLOAD_BYTES", Reason: "must be a positive integer"}
		}
		cfg.Evaluate.MaxUploadBytes = n
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
