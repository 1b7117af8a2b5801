package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Environment string `toml:"environment"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`

	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`

	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`

	// storage: memory | postgres | mongo
	StoreBackend      string `toml:"store_backend"`
	PostgresHost      string `toml:"postgres_host"`
	PostgresPort      string `toml:"postgres_port"`
	PostgresDBName    string `toml:"postgres_db_name"`
	MigrationsEnabled bool   `toml:"migrations_enabled"`
	MongoURI          string `toml:"mongo_uri"`
	MongoDBName       string `toml:"mongo_db_name"`

	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`

	// sessions engine
	RemoveMatch string `toml:"remove_match"`
	LockLogged  bool   `toml:"lock_logged"`

	// coach: openai | gemini | none
	CoachProvider         string `toml:"coach_provider"`
	OpenAIModel           string `toml:"openai_model"`
	GeminiModel           string `toml:"gemini_model"`
	CoachHistoryLimit     int    `toml:"coach_history_limit"`
	CoachChatTurns        int    `toml:"coach_chat_turns"`
	CoachRateLimitPerMin  int    `toml:"coach_rate_limit_per_min"`
	MacrosCacheSizeMB     int    `toml:"macros_cache_size_mb"`
	MacrosCacheTTLSeconds int    `toml:"macros_cache_ttl_seconds"`
	LabelsEnabled         bool   `toml:"labels_enabled"`
	MaxPhotoUploadSizeMB  int64  `toml:"max_photo_upload_size_mb"`
	McpEndpointEnabled    bool   `toml:"mcp_endpoint_enabled"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg = t.Development
	case "prod", "production":
		cfg = t.Production
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
	if cfg == nil {
		return nil, fmt.Errorf("config section for env [%s] missing", env)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// Load reads the TOML config file at path and returns the section for env.
func Load(env, path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return Parse(env, string(content))
}

func Parse(env, content string) (*Config, error) {
	var t Toml
	if _, err := toml.Decode(content, &t); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = 9000
	}
	if c.StoreBackend == "" {
		c.StoreBackend = "memory"
	}
	if c.RemoveMatch == "" {
		c.RemoveMatch = "exact"
	}
	if c.CoachProvider == "" {
		c.CoachProvider = "none"
	}
	if c.CoachHistoryLimit <= 0 {
		c.CoachHistoryLimit = 20
	}
	if c.CoachChatTurns <= 0 {
		c.CoachChatTurns = 10
	}
	if c.CoachRateLimitPerMin <= 0 {
		c.CoachRateLimitPerMin = 10
	}
	if c.MacrosCacheSizeMB <= 0 {
		c.MacrosCacheSizeMB = 10
	}
	if c.MacrosCacheTTLSeconds <= 0 {
		c.MacrosCacheTTLSeconds = 24 * 60 * 60
	}
	if c.MaxPhotoUploadSizeMB <= 0 {
		c.MaxPhotoUploadSizeMB = 10
	}
}

func (c *Config) Validate() error {
	switch c.StoreBackend {
	case "memory", "postgres", "mongo":
	default:
		return fmt.Errorf("unknown store backend: %s", c.StoreBackend)
	}
	switch c.CoachProvider {
	case "none", "openai", "gemini":
	default:
		return fmt.Errorf("unknown coach provider: %s", c.CoachProvider)
	}
	switch c.RemoveMatch {
	case "exact", "normalized":
	default:
		return fmt.Errorf("unknown remove match strategy: %s", c.RemoveMatch)
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	return nil
}
