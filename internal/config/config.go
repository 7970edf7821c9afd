package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the settings for a taskdesk run
type Config struct {
	// DBPath is the sqlite file; ":memory:" keeps everything in memory.
	// Empty means the XDG data directory.
	DBPath string `yaml:"db_path"`

	// Theme names the UI color theme
	Theme string `yaml:"theme"`

	Log struct {
		Level string `yaml:"level"`
		File  string `yaml:"file"`
	} `yaml:"log"`
}

var configLocations = []string{"taskdesk.yaml", "taskdesk.yml", ".taskdesk.yaml", ".taskdesk.yml"}

// Load reads the YAML file at path, or the first file found in the working
// directory when path is empty, then applies .env and TASKDESK_* overrides.
// A missing default file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	cfg.Log.Level = "info"

	if path == "" {
		for _, loc := range configLocations {
			if _, err := os.Stat(loc); err == nil {
				path = loc
				break
			}
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	_ = godotenv.Load()

	if v := os.Getenv("TASKDESK_DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("TASKDESK_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("TASKDESK_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
	if v := os.Getenv("TASKDESK_THEME"); v != "" {
		cfg.Theme = v
	}

	if _, err := ParseLevel(cfg.Log.Level); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ParseLevel maps debug/info/warn/error to a slog level
func ParseLevel(level string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(strings.TrimSpace(level)))); err != nil {
		return 0, fmt.Errorf("invalid log level %q", level)
	}
	return l, nil
}

// Logger builds the application logger. The terminal belongs to the UI, so
// output goes to the configured file, or nowhere when no file is set.
func (c *Config) Logger() (*slog.Logger, io.Closer, error) {
	level, err := ParseLevel(c.Log.Level)
	if err != nil {
		return nil, nil, err
	}

	if c.Log.File == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), io.NopCloser(nil), nil
	}

	if err := os.MkdirAll(filepath.Dir(c.Log.File), 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(c.Log.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})), f, nil
}
