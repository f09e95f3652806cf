package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Server modes. Debug switches the logger to zap's development settings.
const (
	ModeDebug   = "debug"
	ModeRelease = "release"
)

type Config struct {
	Server struct {
		Port string `yaml:"port"`
		Mode string `yaml:"mode"`
	} `yaml:"server"`
	Log struct {
		Level string `yaml:"level"`
		File  string `yaml:"file"`
	} `yaml:"log"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	Mongo struct {
		URI      string `yaml:"uri"`
		Database string `yaml:"database"`
	} `yaml:"mongo"`
	Trivia struct {
		BaseURL      string `yaml:"base_url"`
		Timeout      string `yaml:"timeout"`
		RateInterval string `yaml:"rate_interval"`
		CategoryTTL  string `yaml:"category_ttl"`
	} `yaml:"trivia"`
	Session struct {
		TTL    string `yaml:"ttl"`
		Cookie string `yaml:"cookie"`
	} `yaml:"session"`
	Jobs struct {
		BaseURL string `yaml:"base_url"`
		Port    string `yaml:"port"`
		Store   string `yaml:"store"`
	} `yaml:"jobs"`
}

// Load reads YAML config from path and fills unset values with defaults.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	applyDefaults(&cfg)
	return cfg, nil
}

// Default is the configuration used when no file is present.
func Default() Config {
	cfg := Config{}
	applyDefaults(&cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = ModeRelease
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
		if cfg.Server.Mode == ModeDebug {
			cfg.Log.Level = "debug"
		}
	}
	if cfg.Trivia.BaseURL == "" {
		cfg.Trivia.BaseURL = "https://opentdb.com"
	}
	if cfg.Session.Cookie == "" {
		cfg.Session.Cookie = "quiz_session"
	}
	if cfg.Jobs.BaseURL == "" {
		cfg.Jobs.BaseURL = "http://localhost:3000"
	}
	if cfg.Jobs.Port == "" {
		cfg.Jobs.Port = "3000"
	}
	if cfg.Mongo.Database == "" {
		cfg.Mongo.Database = "jobboard"
	}
	if cfg.Jobs.Store == "" {
		cfg.Jobs.Store = "memory"
	}
}

// Debug reports whether the server runs in debug mode.
func (c Config) Debug() bool {
	return c.Server.Mode == ModeDebug
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
