package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config captures the fields the client needs at startup.
type Config struct {
	BaseURL string
	APIKey  string // environment only, never written to disk by this package
	KeyFile string
	LogPath string

	// PageSize overrides the prefs page size when positive; zero means unset.
	PageSize int
}

const (
	defaultConfigDir = "~/.config/tavu"
	defaultBaseURL   = "https://tavusapi.com/v2"
	defaultKeyFile   = "~/.config/tavu/credentials"
	defaultLogPath   = "~/.local/state/tavu/tavu.log"
)

// Load reads the config file and TAVU_* environment overrides. A missing
// file is not an error; defaults apply.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigType("toml")
	if strings.TrimSpace(path) != "" {
		resolved, err := expandPath(path)
		if err != nil {
			return Config{}, err
		}
		v.SetConfigFile(resolved)
	} else {
		dir, err := expandPath(defaultConfigDir)
		if err != nil {
			return Config{}, err
		}
		v.SetConfigName("config")
		v.AddConfigPath(dir)
	}

	v.SetEnvPrefix("TAVU")
	v.AutomaticEnv()

	v.SetDefault("base_url", defaultBaseURL)
	v.SetDefault("key_file", defaultKeyFile)
	v.SetDefault("log_path", defaultLogPath)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg := Config{
		BaseURL:  strings.TrimSpace(v.GetString("base_url")),
		APIKey:   strings.TrimSpace(v.GetString("api_key")),
		KeyFile:  strings.TrimSpace(v.GetString("key_file")),
		LogPath:  strings.TrimSpace(v.GetString("log_path")),
		PageSize: v.GetInt("page_size"),
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.KeyFile == "" {
		cfg.KeyFile = defaultKeyFile
	}
	if cfg.LogPath == "" {
		cfg.LogPath = defaultLogPath
	}
	if cfg.PageSize < 1 {
		cfg.PageSize = 0
	}

	cfg.KeyFile = mustExpand(cfg.KeyFile)
	cfg.LogPath = mustExpand(cfg.LogPath)

	return cfg, nil
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
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
