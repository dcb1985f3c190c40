package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultAddr           = ":8080"
	defaultDatabaseURL    = "reservas.db"
	defaultJWTTTL         = "24h"
	defaultSanctionTO     = "3s"
	defaultNotifyReporter = "false"
)

// Config is the runtime configuration of the API process. Everything comes
// from the environment; cmd/api loads a .env file first when present.
type Config struct {
	Addr        string
	DatabaseURL string

	JWTSecret string
	JWTTTL    time.Duration

	// SanctionURL is the endpoint of the external sanction service. Empty
	// disables the notifier.
	SanctionURL     string
	SanctionTimeout time.Duration

	// NotifyReporter controls whether the incident reporter also receives an
	// alert about their own report.
	NotifyReporter bool
}

func Load() (*Config, error) {
	cfg := &Config{
		Addr:        envOr("ADDR", defaultAddr),
		DatabaseURL: envOr("DATABASE_URL", defaultDatabaseURL),
		JWTSecret:   strings.TrimSpace(os.Getenv("JWT_SECRET")),
		SanctionURL: strings.TrimSpace(os.Getenv("SANCTION_URL")),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is empty")
	}

	ttl, err := time.ParseDuration(envOr("JWT_TTL", defaultJWTTTL))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_TTL: %w", err)
	}
	cfg.JWTTTL = ttl

	sto, err := time.ParseDuration(envOr("SANCTION_TIMEOUT", defaultSanctionTO))
	if err != nil {
		return nil, fmt.Errorf("invalid SANCTION_TIMEOUT: %w", err)
	}
	cfg.SanctionTimeout = sto

	nr, err := strconv.ParseBool(envOr("INCIDENT_NOTIFY_REPORTER", defaultNotifyReporter))
	if err != nil {
		return nil, fmt.Errorf("invalid INCIDENT_NOTIFY_REPORTER: %w", err)
	}
	cfg.NotifyReporter = nr

	return cfg, nil
}

func envOr(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}
