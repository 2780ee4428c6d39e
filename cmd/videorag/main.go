// Package main is the VideoRAG terminal client entry point.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Inshal-Amir/production-video-rag/internal/api"
	"github.com/Inshal-Amir/production-video-rag/internal/app"
	"github.com/Inshal-Amir/production-video-rag/internal/config"
	"github.com/Inshal-Amir/production-video-rag/internal/playback"

	tea "github.com/charmbracelet/bubbletea"
)

var version = "dev"

func main() {
	configPath := flag.String("config", "", "path to config.yaml (optional)")
	serverURL := flag.String("server", "", "backend base URL (overrides config)")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("videorag %s\n", version)
		return
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "videorag: %v\n", err)
		os.Exit(1)
	}
	if *serverURL != "" {
		cfg.Server.BaseURL = *serverURL
	}

	logger, err := buildLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "videorag: open log: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	client := api.NewClient(cfg.Server.BaseURL, cfg.Server.APIPrefix, logger)
	player := playback.NewExternalPlayer(cfg.Media.PlayerCommand, logger)

	p := tea.NewProgram(app.New(cfg, client, player, logger), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error("program exited with error", zap.Error(err))
		fmt.Fprintf(os.Stderr, "videorag: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig loads the config file when given or present in the
// current directory; otherwise defaults apply.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	if cwd, err := os.Getwd(); err == nil {
		fallback := filepath.Join(cwd, "config.yaml")
		if _, statErr := os.Stat(fallback); statErr == nil {
			return config.Load(fallback)
		}
	}
	return config.Default(), nil
}

// buildLogger writes structured diagnostics to the configured log
// file. The TUI owns the terminal, so nothing logs to stdout.
func buildLogger(cfg *config.Config) (*zap.Logger, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Log.Path), 0o755); err != nil {
		return nil, err
	}

	zcfg := zap.NewProductionConfig()
	zcfg.OutputPaths = []string{cfg.Log.Path}
	zcfg.ErrorOutputPaths = []string{cfg.Log.Path}
	if cfg.Debug {
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return zcfg.Build()
}
