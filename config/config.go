package config

import (
	"fmt"
	"strings"
	"time"
)

// Config is the main application configuration struct.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Tax       TaxConfig       `mapstructure:"tax"`
	History   HistoryConfig   `mapstructure:"history"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Capacity int           `mapstructure:"capacity"`
	Refill   time.Duration `mapstructure:"refill"`
}

type CacheConfig struct {
	Backend    string        `mapstructure:"backend"` // memory | redis | none
	TTL        time.Duration `mapstructure:"ttl"`
	MaxEntries int           `mapstructure:"max_entries"` // memory backend only; 0 is unbounded
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

type TaxConfig struct {
	RulesFile string `mapstructure:"rules_file"`
}

type HistoryConfig struct {
	Limit int `mapstructure:"limit"`
}

var validCacheBackends = []string{"memory", "redis", "none"}

// Validate collects every problem instead of stopping at the first one.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Addr == "" {
		errs = append(errs, "server.addr cannot be empty")
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 {
		errs = append(errs, "server read and write timeouts must be positive")
	}
	if c.RateLimit.Enabled {
		if c.RateLimit.Capacity < 1 {
			errs = append(errs, fmt.Sprintf("invalid rate_limit.capacity %d: must be at least 1", c.RateLimit.Capacity))
		}
		if c.RateLimit.Refill <= 0 {
			errs = append(errs, "rate_limit.refill must be positive")
		}
	}

	valid := false
	for _, b := range validCacheBackends {
		if c.Cache.Backend == b {
			valid = true
			break
		}
	}
	if !valid {
		errs = append(errs, fmt.Sprintf("invalid cache.backend %q: must be one of %v", c.Cache.Backend, validCacheBackends))
	}
	if c.Cache.Backend == "redis" && c.Redis.Address == "" {
		errs = append(errs, "redis.address is required when cache.backend is redis")
	}
	if c.Cache.TTL < 0 {
		errs = append(errs, "cache.ttl must not be negative")
	}
	if c.Cache.MaxEntries < 0 {
		errs = append(errs, "cache.max_entries must not be negative")
	}

	switch c.Logging.Format {
	case "json", "console":
	default:
		errs = append(errs, fmt.Sprintf("invalid logging.format %q: must be json or console", c.Logging.Format))
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		errs = append(errs, fmt.Sprintf("invalid metrics.path %q: must start with /", c.Metrics.Path))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}
