package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Trace backends.
const (
	TraceNone   = "none"
	TraceMemory = "memory"
	TraceFile   = "file"
	TraceRedis  = "redis"
)

// Config holds the settings shared by the CLI commands.
// Values come from an optional YAML/JSON file and are then overridden by flags.
type Config struct {
	LogLevel string `yaml:"log_level" json:"log_level"`
	LogFile  string `yaml:"log_file" json:"log_file"`

	// MaxSteps bounds a run; 0 means unbounded.
	MaxSteps  int           `yaml:"max_steps" json:"max_steps"`
	StepDelay time.Duration `yaml:"step_delay" json:"step_delay"`
	Color     string        `yaml:"color" json:"color"` // auto, always, never

	Trace TraceConfig `yaml:"trace" json:"trace"`
	Redis RedisConfig `yaml:"redis" json:"redis"`

	Port int `yaml:"port" json:"port"`
}

// TraceConfig selects where run traces are recorded.
type TraceConfig struct {
	Backend string `yaml:"backend" json:"backend"`
	Dir     string `yaml:"dir" json:"dir"`
}

// RedisConfig configures the redis trace backend.
type RedisConfig struct {
	Addr     string        `yaml:"addr" json:"addr"`
	Password string        `yaml:"password" json:"password"`
	DB       int           `yaml:"db" json:"db"`
	Prefix   string        `yaml:"prefix" json:"prefix"`
	TTL      time.Duration `yaml:"ttl" json:"ttl"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		LogLevel: "warn",
		MaxSteps: 10000,
		Color:    "auto",
		Trace: TraceConfig{
			Backend: TraceNone,
			Dir:     filepath.Join(".turing", "traces"),
		},
		Redis: RedisConfig{
			Addr:   "localhost:6379",
			Prefix: "turing:trace:",
		},
		Port: 8080,
	}
}

// Load reads a YAML or JSON configuration file on top of Default.
// An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	// yaml.v3 also parses JSON and decodes duration strings like "500ms".
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}

	return cfg, cfg.Validate()
}

// Validate checks enumerated fields.
func (c Config) Validate() error {
	switch c.Trace.Backend {
	case "", TraceNone, TraceMemory, TraceFile, TraceRedis:
	default:
		return fmt.Errorf("unknown trace backend %q", c.Trace.Backend)
	}
	switch c.Color {
	case "", "auto", "always", "never":
	default:
		return fmt.Errorf("unknown color mode %q", c.Color)
	}
	if c.MaxSteps < 0 {
		return fmt.Errorf("max_steps must not be negative")
	}
	return nil
}
