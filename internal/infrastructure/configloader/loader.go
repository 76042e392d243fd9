package configloader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. POINTS_SERVER_PORT.
const EnvPrefix = "POINTS"

// DefaultPath is used when CONFIG_PATH is not set.
const DefaultPath = "config/config.yml"

// ServerConfig holds server-specific configurations.
type ServerConfig struct {
	Port           string   `yaml:"port" split_words:"true"`
	ReadTimeout    int      `yaml:"readTimeout" split_words:"true"`
	WriteTimeout   int      `yaml:"writeTimeout" split_words:"true"`
	IdleTimeout    int      `yaml:"idleTimeout" split_words:"true"`
	AllowedOrigins []string `yaml:"allowedOrigins" split_words:"true"`
}

// LoggingConfig holds logging-specific configurations.
type LoggingConfig struct {
	Level       string `yaml:"level" split_words:"true"` // debug, info, warn, error
	Development bool   `yaml:"development" split_words:"true"`
}

// PointsConfig holds configuration for the points API client.
type PointsConfig struct {
	BaseURL              string `yaml:"baseURL" split_words:"true"`
	RequestTimeoutMillis int64  `yaml:"requestTimeoutMillis" split_words:"true"`
}

// SessionConfig holds configuration for the in-memory session store.
type SessionConfig struct {
	TTLMinutes             int    `yaml:"ttlMinutes" split_words:"true"`
	CleanupIntervalMinutes int    `yaml:"cleanupIntervalMinutes" split_words:"true"`
	CookieName             string `yaml:"cookieName" split_words:"true"`
	CookieSecure           bool   `yaml:"cookieSecure" split_words:"true"`
}

// MetricsConfig holds configuration for the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" split_words:"true"`
	Path    string `yaml:"path" split_words:"true"`
}

// SwaggerConfig holds configuration for Swagger UI.
type SwaggerConfig struct {
	Enabled bool `yaml:"enabled" split_words:"true"`
}

// DebugConfig toggles debugging endpoints.
type DebugConfig struct {
	PprofEnabled bool `yaml:"pprofEnabled" split_words:"true"`
}

// Config is the top-level configuration structure.
type Config struct {
	Server  ServerConfig  `yaml:"server" split_words:"true"`
	Logging LoggingConfig `yaml:"logging" split_words:"true"`
	Points  PointsConfig  `yaml:"points" split_words:"true"`
	Session SessionConfig `yaml:"session" split_words:"true"`
	Metrics MetricsConfig `yaml:"metrics" split_words:"true"`
	Swagger SwaggerConfig `yaml:"swagger" split_words:"true"`
	Debug   DebugConfig   `yaml:"debug" split_words:"true"`
}

// RequestTimeout returns the per-request timeout of the points client.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Points.RequestTimeoutMillis) * time.Millisecond
}

// SessionTTL returns how long an idle session is kept.
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.Session.TTLMinutes) * time.Minute
}

// SessionCleanupInterval returns how often expired sessions are swept.
func (c *Config) SessionCleanupInterval() time.Duration {
	return time.Duration(c.Session.CleanupIntervalMinutes) * time.Minute
}

// Load reads the YAML configuration file from the given path, fills in
// defaults and applies POINTS_* environment overrides. A missing file is not
// an error: the defaults (plus overrides) are used instead.
func Load(path string) (*Config, error) {
	logrus.Infof("Loading configuration from path: %s", path)

	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		logrus.Warnf("Config file %s not found, using defaults", path)
	case err != nil:
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config data from %s: %w", path, err)
		}
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logrus.Info("Configuration loaded successfully.")
	return &cfg, nil
}

// Default returns a configuration with every default applied.
func Default() *Config {
	var cfg Config
	applyDefaults(&cfg)
	return &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	if cfg.Server.ReadTimeout <= 0 {
		cfg.Server.ReadTimeout = 10
	}
	// 0 disables the write timeout, which the SSE stream needs.
	if cfg.Server.WriteTimeout < 0 {
		cfg.Server.WriteTimeout = 0
	}
	if cfg.Server.IdleTimeout <= 0 {
		cfg.Server.IdleTimeout = 60
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}

	if cfg.Points.BaseURL == "" {
		cfg.Points.BaseURL = "https://point-api.meteora.ag/points"
	}
	if cfg.Points.RequestTimeoutMillis <= 0 {
		cfg.Points.RequestTimeoutMillis = 15000
		logrus.Debugf("points.requestTimeoutMillis not set, defaulting to %d ms", cfg.Points.RequestTimeoutMillis)
	}

	if cfg.Session.TTLMinutes <= 0 {
		cfg.Session.TTLMinutes = 60
	}
	if cfg.Session.CleanupIntervalMinutes <= 0 {
		cfg.Session.CleanupIntervalMinutes = 10
	}
	if cfg.Session.CookieName == "" {
		cfg.Session.CookieName = "points_session"
	}

	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
}

// Validate reports configuration values that cannot work.
func (c *Config) Validate() error {
	if c.Metrics.Path[0] != '/' {
		return fmt.Errorf("metrics.path must start with '/', got %q", c.Metrics.Path)
	}
	for _, origin := range c.Server.AllowedOrigins {
		if origin == "" {
			return errors.New("server.allowedOrigins must not contain empty entries")
		}
	}
	return nil
}
