// Package config reads the invers configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/etnz/invers/notify"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Backends of the snapshot store.
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config is the content of the configuration file.
type Config struct {
	Store   StoreConfig   `yaml:"store"`
	Feed    FeedConfig    `yaml:"feed"`
	Notify  NotifyConfig  `yaml:"notify"`
	Log     LogConfig     `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`
	Coach   CoachConfig   `yaml:"coach"`
}

type StoreConfig struct {
	Backend    string      `yaml:"backend"`
	Dir        string      `yaml:"dir"`
	Key        string      `yaml:"key"`
	QuotaBytes int         `yaml:"quota_bytes"` // <= 0 is unlimited
	Redis      RedisConfig `yaml:"redis"`
}

type RedisConfig struct {
	Addr   string `yaml:"addr"`
	DB     int    `yaml:"db"`
	Prefix string `yaml:"prefix"`
}

type FeedConfig struct {
	Interval time.Duration `yaml:"interval"`
	Seed     uint64        `yaml:"seed"` // 0 picks a new walk every session
}

type NotifyConfig struct {
	Poll       time.Duration `yaml:"poll"`
	Permission string        `yaml:"permission"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type MetricsConfig struct {
	Addr string `yaml:"addr"` // empty disables the endpoint
}

type CoachConfig struct {
	Model string `yaml:"model"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Store: StoreConfig{
			Backend:    BackendFile,
			Dir:        defaultDir(),
			Key:        "investmentApp_v4",
			QuotaBytes: 5 << 20,
			Redis:      RedisConfig{Addr: "localhost:6379", Prefix: "invers:"},
		},
		Feed:   FeedConfig{Interval: 3 * time.Second},
		Notify: NotifyConfig{Poll: 30 * time.Second, Permission: "undetermined"},
		Log:    LogConfig{Level: "info"},
		Coach:  CoachConfig{Model: "gemini-2.5-flash"},
	}
}

func defaultDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".invers"
	}
	return filepath.Join(dir, "invers")
}

// DefaultPath returns the configuration file used when none is given.
func DefaultPath() string { return filepath.Join(defaultDir(), "config.yaml") }

// Load reads the file at path over the defaults. A missing file is not an
// error: the defaults are returned.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config %q: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config %q: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error
	switch c.Store.Backend {
	case BackendFile:
		if c.Store.Dir == "" {
			errs = append(errs, errors.New("store.dir is required by the file backend"))
		}
	case BackendMemory:
	case BackendRedis:
		if c.Store.Redis.Addr == "" {
			errs = append(errs, errors.New("store.redis.addr is required by the redis backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown store.backend %q: want file, memory or redis", c.Store.Backend))
	}
	if c.Store.Key == "" {
		errs = append(errs, errors.New("store.key must not be empty"))
	}
	if c.Feed.Interval <= 0 {
		errs = append(errs, fmt.Errorf("feed.interval must be positive, got %v", c.Feed.Interval))
	}
	if c.Notify.Poll <= 0 {
		errs = append(errs, fmt.Errorf("notify.poll must be positive, got %v", c.Notify.Poll))
	}
	if _, err := notify.ParsePermission(c.Notify.Permission); err != nil {
		errs = append(errs, fmt.Errorf("notify.permission: %w", err))
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	return errors.Join(errs...)
}

// Permission returns the initial notification permission.
func (c *Config) Permission() notify.Permission {
	p, _ := notify.ParsePermission(c.Notify.Permission)
	return p
}

// Level returns the log level, info if invalid.
func (c *Config) Level() zerolog.Level {
	l, err := zerolog.ParseLevel(c.Log.Level)
	if err != nil {
		return zerolog.InfoLevel
	}
	return l
}
