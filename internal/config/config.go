// Package config provides configuration loading for the VideoRAG client.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the client.
type Config struct {
	Debug   bool          `yaml:"debug"`
	Server  ServerConfig  `yaml:"server"`
	Cameras CamerasConfig `yaml:"cameras"`
	Media   MediaConfig   `yaml:"media"`
	Log     LogConfig     `yaml:"log"`
}

// ServerConfig holds the backend API endpoint settings.
type ServerConfig struct {
	// BaseURL is the origin of the search/indexing backend and the
	// media server, e.g. "http://localhost:8000".
	BaseURL string `yaml:"base_url"`
	// APIPrefix is prepended to request paths, e.g. "/api".
	APIPrefix string `yaml:"api_prefix"`
}

// CamerasConfig holds the fixed camera roster offered by the filter
// and upload widgets.
type CamerasConfig struct {
	Roster []string `yaml:"roster"`
}

// MediaConfig holds playback-related settings.
type MediaConfig struct {
	// ClipMarkers are path fragments that identify a pre-cut clip URL.
	ClipMarkers []string `yaml:"clip_markers"`
	// PlayerCommand is the external player invoked for playback.
	// Extra arguments may follow the binary name.
	PlayerCommand []string `yaml:"player_command"`
}

// LogConfig holds diagnostics log settings.
type LogConfig struct {
	Path string `yaml:"path"`
}

// Load reads and parses the config file at path and applies defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)
	cfg.Log.Path = expandPath(cfg.Log.Path, filepath.Dir(path))

	return &cfg, nil
}

// Default returns a config with all defaults applied, used when no
// config file is present.
func Default() *Config {
	var cfg Config
	ApplyDefaults(&cfg)
	return &cfg
}

// ApplyDefaults fills in zero-valued fields.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.BaseURL == "" {
		cfg.Server.BaseURL = "http://localhost:8000"
	}
	if cfg.Server.APIPrefix == "" {
		cfg.Server.APIPrefix = "/api"
	}
	if len(cfg.Cameras.Roster) == 0 {
		cfg.Cameras.Roster = []string{"cam1", "cam2", "cam3", "cam4", "cam5"}
	}
	if len(cfg.Media.ClipMarkers) == 0 {
		cfg.Media.ClipMarkers = []string{"/static/clips/", "/clips/"}
	}
	if len(cfg.Media.PlayerCommand) == 0 {
		cfg.Media.PlayerCommand = []string{"mpv", "--force-window=yes"}
	}
	if cfg.Log.Path == "" {
		cfg.Log.Path = defaultLogPath()
	}
}

func defaultLogPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "videorag.log"
	}
	return filepath.Join(home, ".videorag", "videorag.log")
}

// expandPath converts a path to absolute. Paths starting with "./" are
// relative to configDir; other relative paths are relative to the home
// directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
