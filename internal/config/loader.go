package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrNoDefaults is returned when a game has no embedded default config.
var ErrNoDefaults = errors.New("config: no embedded defaults")

// Tunable is implemented by games that accept a YAML config and a
// difficulty preset before their session starts.
type Tunable interface {
	Configure(customPath string, preset DifficultyPreset) error
}

// Load reads the config for a game. Values missing from a file keep the
// hardcoded defaults.
// Search order: customPath -> ~/.arcade/configs/<id>.yaml -> ./configs/<id>.yaml
// -> embedded default -> hardcoded default.
func Load[T any](gameID, customPath string, fallback func() T) (T, error) {
	cfg := fallback()

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: cannot read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: cannot parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	filename := gameID + ".yaml"
	for _, p := range []string{userConfigPath(filename), filepath.Join("configs", filename)} {
		if p == "" {
			continue
		}
		if c, ok := tryFile(p, fallback); ok {
			return c, nil
		}
	}

	if c, err := LoadEmbedded(gameID, fallback); err == nil {
		return c, nil
	}
	return fallback(), nil
}

// LoadEmbedded parses only the embedded default for a game.
func LoadEmbedded[T any](gameID string, fallback func() T) (T, error) {
	cfg := fallback()
	data := GetDefaultYAML(gameID)
	if data == nil {
		return cfg, fmt.Errorf("%w for %q", ErrNoDefaults, gameID)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fallback(), fmt.Errorf("config: cannot parse embedded %s: %w", gameID, err)
	}
	return cfg, nil
}

// tryFile loads an optional config file. Unreadable or invalid files are skipped.
func tryFile[T any](p string, fallback func() T) (T, bool) {
	data, err := os.ReadFile(p)
	if err != nil {
		return fallback(), false
	}
	cfg := fallback()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fallback(), false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}
