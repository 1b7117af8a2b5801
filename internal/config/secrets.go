package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Secrets are never kept in the TOML file.
type Secrets struct {
	SentryDSN        string `env:"SENTRY_DSN"`
	RedisPassword    string `env:"GYMSTATS_REDIS_PASS"`
	PostgresPassword string `env:"GYMSTATS_POSTGRES_PASS"`
	APIToken         string `env:"GYMSTATS_API_TOKEN"`
	McpSecret        string `env:"GYMSTATS_MCP_SECRET"`
	OpenAIAPIKey     string `env:"OPENAI_API_KEY"`
	GeminiAPIKey     string `env:"GEMINI_API_KEY"`
	HoneycombEnabled bool   `env:"HONEYCOMB_ENABLED" envDefault:"false"`
	HoneycombAPIKey  string `env:"HONEYCOMB_API_KEY"`
	OtelServiceName  string `env:"OTEL_SERVICE_NAME" envDefault:"gymstats"`
}

// LoadSecrets reads secrets from the environment, after loading the given
// .env files (missing files are skipped).
func LoadSecrets(envFiles ...string) (*Secrets, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				log.Tracef("env file [%s] not found, skipping", f)
				continue
			}
			return nil, fmt.Errorf("load env file %s: %w", f, err)
		}
	}

	secrets, err := env.ParseAs[Secrets]()
	if err != nil {
		return nil, fmt.Errorf("parse secrets: %w", err)
	}
	return &secrets, nil
}

// Warn logs which of the secrets needed by cfg are missing.
func (s *Secrets) Warn(cfg *Config) {
	if cfg.SentryEnabled && s.SentryDSN == "" {
		log.Warnln("sentry enabled, but SENTRY_DSN not set")
	}
	if s.APIToken == "" {
		log.Errorf("api token not set, use GYMSTATS_API_TOKEN")
	}
	if cfg.CoachProvider == "openai" && s.OpenAIAPIKey == "" {
		log.Errorf("openai coach selected, but OPENAI_API_KEY not set")
	}
	if (cfg.CoachProvider == "gemini" || cfg.LabelsEnabled) && s.GeminiAPIKey == "" {
		log.Errorf("gemini needed, but GEMINI_API_KEY not set")
	}
	if s.HoneycombEnabled && s.HoneycombAPIKey == "" {
		log.Warnln("HONEYCOMB_API_KEY env var not set")
	}
}
