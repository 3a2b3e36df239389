// Package config loads exercise tracker settings from defaults, an optional
// YAML file and the environment, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where the YAML configuration is looked up when no path is
// given explicitly.
const DefaultPath = "config/exercise_tracker.yaml"

// Config is the complete service configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Logging   LoggingConfig   `yaml:"logging"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Audit     AuditConfig     `yaml:"audit"`
	Static    StaticConfig    `yaml:"static"`
}

type ServerConfig struct {
	Host              string        `yaml:"host" env:"HOST"`
	Port              int           `yaml:"port" env:"PORT"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout" env:"READ_HEADER_TIMEOUT"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT"`
}

// Addr is the listen address.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

type LoggingConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL"`
	Format string `yaml:"format" env:"LOG_FORMAT"`
}

type CORSConfig struct {
	// AllowedOrigins is a comma separated list; "*" allows every origin.
	AllowedOrigins string `yaml:"allowed_origins" env:"CORS_ORIGINS"`
}

// Origins splits AllowedOrigins into its entries.
func (c CORSConfig) Origins() []string {
	var out []string
	for _, origin := range strings.Split(c.AllowedOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			out = append(out, origin)
		}
	}
	return out
}

type RateLimitConfig struct {
	Enabled           bool          `yaml:"enabled" env:"RATE_LIMIT_ENABLED"`
	RequestsPerSecond float64       `yaml:"requests_per_second" env:"RATE_LIMIT_RPS"`
	Burst             int           `yaml:"burst" env:"RATE_LIMIT_BURST"`
	IdleTTL           time.Duration `yaml:"idle_ttl" env:"RATE_LIMIT_IDLE_TTL"`
	CleanupSchedule   string        `yaml:"cleanup_schedule" env:"RATE_LIMIT_CLEANUP_SCHEDULE"`
}

type AuditConfig struct {
	Capacity int    `yaml:"capacity" env:"AUDIT_CAPACITY"`
	Path     string `yaml:"path" env:"AUDIT_PATH"`
}

type StaticConfig struct {
	Dir   string `yaml:"dir" env:"STATIC_DIR"`
	Index string `yaml:"index" env:"STATIC_INDEX"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:              3000,
			ReadHeaderTimeout: 5 * time.Second,
			ShutdownTimeout:   10 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		CORS: CORSConfig{AllowedOrigins: "*"},
		RateLimit: RateLimitConfig{
			Enabled:           false,
			RequestsPerSecond: 20,
			Burst:             40,
			IdleTTL:           10 * time.Minute,
			CleanupSchedule:   "@every 1m",
		},
		Audit: AuditConfig{Capacity: 200},
		Static: StaticConfig{
			Dir:   "public",
			Index: "views/index.html",
		},
	}
}

// Load builds the configuration. path may be empty, in which case only
// defaults and the environment apply. A .env file in the working directory
// is loaded first when present.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := envdecode.Decode(cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("decode environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Server.ReadHeaderTimeout <= 0 {
		return fmt.Errorf("server.read_header_timeout must be positive")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server.shutdown_timeout must be positive")
	}
	if _, err := logrus.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format %q must be text or json", c.Logging.Format)
	}
	if len(c.CORS.Origins()) == 0 {
		return fmt.Errorf("cors.allowed_origins must not be empty")
	}
	if c.Audit.Capacity <= 0 {
		return fmt.Errorf("audit.capacity must be positive")
	}
	if c.RateLimit.Enabled {
		if c.RateLimit.RequestsPerSecond <= 0 {
			return fmt.Errorf("rate_limit.requests_per_second must be positive")
		}
		if c.RateLimit.Burst <= 0 {
			return fmt.Errorf("rate_limit.burst must be positive")
		}
		if c.RateLimit.IdleTTL <= 0 {
			return fmt.Errorf("rate_limit.idle_ttl must be positive")
		}
		if _, err := cron.ParseStandard(c.RateLimit.CleanupSchedule); err != nil {
			return fmt.Errorf("rate_limit.cleanup_schedule: %w", err)
		}
	}
	return nil
}
