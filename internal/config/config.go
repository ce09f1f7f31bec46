package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/nagarniyantran/civicnav/internal/logging"
	"github.com/nagarniyantran/civicnav/pkg/domain"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "CIVICNAV_"

// Store drivers.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
)

// Config holds the service configuration.
// Values are layered: Default, then the optional YAML (or JSON) file, then CIVICNAV_* variables.
type Config struct {
	Addr            string `yaml:"addr" env:"ADDR"`
	LogLevel        string `yaml:"log_level" env:"LOG_LEVEL"`
	DefaultLanguage string `yaml:"default_language" env:"DEFAULT_LANGUAGE"`
	Metrics         bool   `yaml:"metrics" env:"METRICS"`
	BackendSeed     string `yaml:"backend_seed" env:"BACKEND_SEED"` // YAML collections for the in-memory backend

	Store StoreConfig `yaml:"store" envPrefix:"STORE_"`
	Redis RedisConfig `yaml:"redis" envPrefix:"REDIS_"`
}

// StoreConfig selects the session store.
type StoreConfig struct {
	Driver string `yaml:"driver" env:"DRIVER"`
	Path   string `yaml:"path" env:"PATH"` // file driver only
}

// RedisConfig configures the redis store and the distributed session lock.
type RedisConfig struct {
	Addr     string        `yaml:"addr" env:"ADDR"`
	Password string        `yaml:"password" env:"PASSWORD"`
	DB       int           `yaml:"db" env:"DB"`
	Prefix   string        `yaml:"prefix" env:"PREFIX"`
	TTL      time.Duration `yaml:"ttl" env:"TTL"`
	LockTTL  time.Duration `yaml:"lock_ttl" env:"LOCK_TTL"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Addr:            ":8080",
		LogLevel:        "info",
		DefaultLanguage: string(domain.LanguageEnglish),
		Store: StoreConfig{
			Driver: StoreMemory,
			Path:   filepath.Join(".civicnav", "sessions"),
		},
		Redis: RedisConfig{
			Addr:    "localhost:6379",
			Prefix:  "civicnav:session:",
			LockTTL: 30 * time.Second,
		},
	}
}

// Load builds the configuration from path (optional) and the process environment.
func Load(path string) (*Config, error) {
	return LoadWithEnv(path, nil)
}

// LoadWithEnv is Load with an explicit environment. A nil environ reads the process environment.
func LoadWithEnv(path string, environ map[string]string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := decodeFile(path, &cfg); err != nil {
			return nil, err
		}
	}

	opts := env.Options{Prefix: EnvPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return nil, fmt.Errorf("parsing config environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func decodeFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	// JSON files go through the YAML decoder too, so durations are strings ("30s") in both.
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return nil
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var errs []error

	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if !domain.Language(c.DefaultLanguage).Valid() {
		errs = append(errs, fmt.Errorf("unsupported default_language %q", c.DefaultLanguage))
	}

	switch c.Store.Driver {
	case StoreMemory:
	case StoreFile:
		if c.Store.Path == "" {
			errs = append(errs, errors.New("store.path is required for the file driver"))
		}
	case StoreRedis:
		if c.Redis.Addr == "" {
			errs = append(errs, errors.New("redis.addr is required for the redis driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown store driver %q (want memory, file or redis)", c.Store.Driver))
	}

	if c.Redis.TTL < 0 || c.Redis.LockTTL < 0 {
		errs = append(errs, errors.New("redis ttl values must not be negative"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
