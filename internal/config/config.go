package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"unidiff/internal/lcs"
	"unidiff/internal/unified"
)

const (
	configDirName  = "unidiff"
	configFileName = "config.json"
)

// Color modes accepted by the color key and the --color flag.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

type AppConfig struct {
	ContextLines     int    `json:"context_lines"`
	MemoryLimitBytes int64  `json:"memory_limit_bytes"`
	NoNewlineMarker  bool   `json:"no_newline_marker"`
	Color            string `json:"color"`
}

// Default returns the configuration used when no file exists.
func Default() AppConfig {
	return AppConfig{
		ContextLines:     unified.DefaultContext,
		MemoryLimitBytes: lcs.DefaultMemoryLimit,
		NoNewlineMarker:  true,
		Color:            ColorAuto,
	}
}

func Load() (AppConfig, string, error) {
	path, err := DefaultPath()
	if err != nil {
		return AppConfig{}, "", err
	}
	cfg, err := LoadFromPath(path)
	return cfg, path, err
}

// LoadFromPath reads path over the defaults. Keys absent from the file keep
// their default values.
func LoadFromPath(path string) (AppConfig, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return AppConfig{}, err
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		return cfg, nil
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return AppConfig{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.Color = strings.ToLower(strings.TrimSpace(cfg.Color))
	if err := cfg.Validate(); err != nil {
		return AppConfig{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects values the diff pipeline cannot use.
func (c AppConfig) Validate() error {
	if c.ContextLines < 0 {
		return fmt.Errorf("context_lines must not be negative, got %d", c.ContextLines)
	}
	if c.MemoryLimitBytes <= 0 {
		return fmt.Errorf("memory_limit_bytes must be positive, got %d", c.MemoryLimitBytes)
	}
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("color %q must be one of auto, always, never", c.Color)
	}
	return nil
}

func DefaultPath() (string, error) {
	home, err := configHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configDirName, configFileName), nil
}

func configHome() (string, error) {
	if xdg := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME")); xdg != "" {
		return xdg, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config"), nil
}
