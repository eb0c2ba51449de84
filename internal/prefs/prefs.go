// Package prefs handles Tavu user preference persistence.
// Preferences are stored in ~/.config/tavu/prefs.toml.
package prefs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Prefs holds the per-user defaults applied when a session starts.
type Prefs struct {
	// PageSize is the number of rows per list page.
	PageSize int `toml:"page_size"`
	// ReplicaFilter is the starting filter for replica lists: all, user, or system.
	ReplicaFilter string `toml:"replica_filter"`
}

const (
	defaultPrefsPath     = "~/.config/tavu/prefs.toml"
	defaultPageSize      = 10
	defaultReplicaFilter = "all"
)

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

func defaults() Prefs {
	return Prefs{PageSize: defaultPageSize, ReplicaFilter: defaultReplicaFilter}
}

// Load reads preferences from the given path, falling back to defaults if
// missing or unreadable. Preferences are cosmetic; a broken file must never
// stop the client from starting.
func Load(path string) (Prefs, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return defaults(), nil
	}

	prefs := defaults()

	file, err := os.Open(resolved)
	if err != nil {
		return prefs, nil
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return prefs, nil
	}

	if err := toml.Unmarshal(bytes, &prefs); err != nil {
		return defaults(), nil
	}

	if prefs.PageSize < 1 {
		prefs.PageSize = defaultPageSize
	}
	switch prefs.ReplicaFilter {
	case "all", "user", "system":
	default:
		prefs.ReplicaFilter = defaultReplicaFilter
	}

	return prefs, nil
}

// Save writes preferences to the given path, creating directories as needed.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	dir := filepath.Dir(resolved)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	bytes, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	if err := os.WriteFile(resolved, bytes, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}

	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultPrefsPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
