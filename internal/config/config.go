// Package config loads fittrack configuration from built-in defaults, an
// optional YAML file and environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// ConfigPathEnvVar names the environment variable holding the YAML file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// Config is the complete service configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Redis     RedisConfig     `koanf:"redis"`
	Logging   LoggingConfig   `koanf:"logging"`
	Auth      AuthConfig      `koanf:"auth"`
	Recommend RecommendConfig `koanf:"recommend"`
	USDA      USDAConfig      `koanf:"usda"`
}

type ServerConfig struct {
	Addr         string        `koanf:"addr"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
	IdleTimeout  time.Duration `koanf:"idle_timeout"`

	// AuthRateLimit is the number of login/register attempts allowed per IP
	// per minute.
	AuthRateLimit int `koanf:"auth_rate_limit"`

	// CORSOrigins lists browser origins allowed to call the API. Empty
	// disables CORS headers.
	CORSOrigins []string `koanf:"cors_origins"`
}

// DatabaseConfig selects the storage backend. An empty URL keeps all data in
// memory.
type DatabaseConfig struct {
	URL string `koanf:"url"`
}

// RedisConfig configures the recommendation lock. An empty URL uses an
// in-process lock.
type RedisConfig struct {
	URL string `koanf:"url"`
}

type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

type AuthConfig struct {
	SessionTTL             time.Duration `koanf:"session_ttl"`
	SessionCleanupInterval time.Duration `koanf:"session_cleanup_interval"`
	DisableRegistration    bool          `koanf:"disable_registration"`
	OIDC                   OIDCConfig    `koanf:"oidc"`

	// TrustForwardAuth accepts the Remote-User header set by an
	// authenticating reverse proxy.
	TrustForwardAuth bool `koanf:"trust_forward_auth"`
}

// OIDCConfig enables single sign-on when Issuer is set.
type OIDCConfig struct {
	Issuer       string `koanf:"issuer"`
	ClientID     string `koanf:"client_id"`
	ClientSecret string `koanf:"client_secret"`
	RedirectURL  string `koanf:"redirect_url"`
}

// Enabled reports whether SSO is configured.
func (c OIDCConfig) Enabled() bool { return c.Issuer != "" }

type RecommendConfig struct {
	// Seed fixes the selection sequence; 0 seeds from the clock.
	Seed int64 `koanf:"seed"`

	// MaxAge is how long the latest recommendation is reused before a new
	// one is generated.
	MaxAge  time.Duration `koanf:"max_age"`
	LockTTL time.Duration `koanf:"lock_ttl"`
}

// USDAConfig configures FoodData Central search. Search is disabled without
// an API key.
type USDAConfig struct {
	APIKey  string        `koanf:"api_key"`
	BaseURL string        `koanf:"base_url"`
	Timeout time.Duration `koanf:"timeout"`

	// RequestsPerHour throttles outbound calls below the API key quota.
	RequestsPerHour int `koanf:"requests_per_hour"`
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:          ":8080",
			ReadTimeout:   10 * time.Second,
			WriteTimeout:  15 * time.Second,
			IdleTimeout:   60 * time.Second,
			AuthRateLimit: 10,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Auth: AuthConfig{
			SessionTTL:             24 * time.Hour,
			SessionCleanupInterval: time.Hour,
		},
		Recommend: RecommendConfig{
			MaxAge:  time.Hour,
			LockTTL: 10 * time.Second,
		},
		USDA: USDAConfig{
			BaseURL:         "https://api.nal.usda.gov/fdc/v1",
			Timeout:         5 * time.Second,
			RequestsPerHour: 1000,
		},
	}
}

// Load builds the configuration. Precedence is environment over file over
// defaults.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := os.Getenv(ConfigPathEnvVar); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}
	if err := splitListKeys(k); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// envTransformFunc maps environment variable names onto config keys.
// Unmapped variables are ignored.
func envTransformFunc(key string) string {
	envMappings := map[string]string{
		"addr":                     "server.addr",
		"http_read_timeout":        "server.read_timeout",
		"http_write_timeout":       "server.write_timeout",
		"http_idle_timeout":        "server.idle_timeout",
		"auth_rate_limit":          "server.auth_rate_limit",
		"cors_origins":             "server.cors_origins",
		"database_url":             "database.url",
		"redis_url":                "redis.url",
		"log_level":                "logging.level",
		"log_format":               "logging.format",
		"log_caller":               "logging.caller",
		"session_ttl":              "auth.session_ttl",
		"session_cleanup_interval": "auth.session_cleanup_interval",
		"disable_registration":     "auth.disable_registration",
		"trust_forward_auth":       "auth.trust_forward_auth",
		"oidc_issuer":              "auth.oidc.issuer",
		"oidc_client_id":           "auth.oidc.client_id",
		"oidc_client_secret":       "auth.oidc.client_secret",
		"oidc_redirect_url":        "auth.oidc.redirect_url",
		"recommend_seed":           "recommend.seed",
		"recommend_max_age":        "recommend.max_age",
		"recommend_lock_ttl":       "recommend.lock_ttl",
		"usda_api_key":             "usda.api_key",
		"usda_base_url":            "usda.base_url",
		"usda_timeout":             "usda.timeout",
		"usda_requests_per_hour":   "usda.requests_per_hour",
	}
	return envMappings[strings.ToLower(key)]
}

// listKeys are the keys that arrive from the environment as comma-separated
// strings but unmarshal into slices.
var listKeys = []string{"server.cors_origins"}

func splitListKeys(k *koanf.Koanf) error {
	for _, key := range listKeys {
		raw, ok := k.Get(key).(string)
		if !ok {
			continue
		}
		var items []string
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				items = append(items, part)
			}
		}
		if err := k.Set(key, items); err != nil {
			return fmt.Errorf("failed to set %s: %w", key, err)
		}
	}
	return nil
}

// Validate reports configuration combinations the service cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}
	if c.Server.AuthRateLimit <= 0 {
		errs = append(errs, errors.New("server.auth_rate_limit must be positive"))
	}
	if c.Auth.SessionTTL <= 0 {
		errs = append(errs, errors.New("auth.session_ttl must be positive"))
	}
	if c.Auth.SessionCleanupInterval <= 0 {
		errs = append(errs, errors.New("auth.session_cleanup_interval must be positive"))
	}
	if c.Recommend.MaxAge < 0 {
		errs = append(errs, errors.New("recommend.max_age must not be negative"))
	}
	if c.USDA.RequestsPerHour <= 0 {
		errs = append(errs, errors.New("usda.requests_per_hour must be positive"))
	}
	if c.Recommend.LockTTL <= 0 {
		errs = append(errs, errors.New("recommend.lock_ttl must be positive"))
	}
	if o := c.Auth.OIDC; o.Enabled() && (o.ClientID == "" || o.RedirectURL == "") {
		errs = append(errs, errors.New("auth.oidc.client_id and auth.oidc.redirect_url are required when auth.oidc.issuer is set"))
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("logging.format %q must be json or console", c.Logging.Format))
	}
	return errors.Join(errs...)
}
