// Package config loads the colorchanger configuration from an optional YAML
// file overlaid by COLORCHANGER_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvPrefix namespaces every environment variable.
const EnvPrefix = "COLORCHANGER_"

// Store drivers.
const (
	DriverMemory = "memory"
	DriverFile   = "file"
	DriverRedis  = "redis"
	DriverSQLite = "sqlite"
)

// Config is the full application configuration.
type Config struct {
	Server  Server  `yaml:"server" envPrefix:"SERVER_"`
	Store   Store   `yaml:"store" envPrefix:"STORE_"`
	Timeout Timeout `yaml:"timeouts" envPrefix:"TIMEOUT_"`
	Log     Log     `yaml:"log" envPrefix:"LOG_"`
}

// Server configures the HTTP host API.
type Server struct {
	Addr    string `yaml:"addr" env:"ADDR"`
	Metrics bool   `yaml:"metrics" env:"METRICS"`
}

// Store selects and configures session persistence.
type Store struct {
	Driver string        `yaml:"driver" env:"DRIVER"`
	Path   string        `yaml:"path" env:"PATH"` // file directory or sqlite database
	TTL    time.Duration `yaml:"ttl" env:"TTL"`   // redis only
	Redis  Redis         `yaml:"redis" envPrefix:"REDIS_"`
}

// Redis configures the redis driver and distributed locking.
type Redis struct {
	Addr     string `yaml:"addr" env:"ADDR"`
	Password string `yaml:"password" env:"PASSWORD"`
	DB       int    `yaml:"db" env:"DB"`
	Prefix   string `yaml:"prefix" env:"PREFIX"`
	Lock     bool   `yaml:"lock" env:"LOCK"`
	// LockTTL bounds how long a crashed replica can hold a session.
	LockTTL time.Duration `yaml:"lock_ttl" env:"LOCK_TTL"`
}

// Timeout bounds the input handlers the engine arms.
type Timeout struct {
	Launch time.Duration `yaml:"launch" env:"LAUNCH"`
	Retry  time.Duration `yaml:"retry" env:"RETRY"`
	Play   time.Duration `yaml:"play" env:"PLAY"`
}

// Log configures the slog handler.
type Log struct {
	Level  string `yaml:"level" env:"LEVEL"`
	Format string `yaml:"format" env:"FORMAT"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Server: Server{Addr: ":8080", Metrics: true},
		Store: Store{
			Driver: DriverMemory,
			Redis:  Redis{Addr: "localhost:6379", Prefix: "colorchanger:session:"},
		},
		Timeout: Timeout{
			Launch: 50 * time.Second,
			Retry:  30 * time.Second,
			Play:   30 * time.Second,
		},
		Log: Log{Level: "info", Format: "text"},
	}
}

// Load reads path (if non-empty) over the defaults, then applies the environment.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	switch c.Store.Driver {
	case DriverMemory, DriverRedis:
	case DriverFile, DriverSQLite:
		if c.Store.Path == "" {
			errs = append(errs, fmt.Errorf("store.path is required for the %s driver", c.Store.Driver))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown store driver %q", c.Store.Driver))
	}
	if c.Store.Driver == DriverRedis && c.Store.Redis.Addr == "" {
		errs = append(errs, errors.New("store.redis.addr is required for the redis driver"))
	}
	if c.Store.Redis.Lock && c.Store.Driver != DriverRedis {
		errs = append(errs, errors.New("store.redis.lock needs the redis driver"))
	}
	if c.Store.TTL < 0 || c.Store.Redis.LockTTL < 0 {
		errs = append(errs, errors.New("store.ttl and store.redis.lock_ttl must not be negative"))
	}
	for name, d := range map[string]time.Duration{
		"timeouts.launch": c.Timeout.Launch,
		"timeouts.retry":  c.Timeout.Retry,
		"timeouts.play":   c.Timeout.Play,
	} {
		if d <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive", name))
		}
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q", c.Log.Format))
	}
	return errors.Join(errs...)
}
