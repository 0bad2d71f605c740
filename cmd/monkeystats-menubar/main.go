//go:build darwin

package main

import (
	"log/slog"
	"os"
	"os/user"
	"path/filepath"
	"runtime"

	"github.com/mizrakjian/monkeystats/internal/api"
	"github.com/mizrakjian/monkeystats/internal/config"
	"github.com/mizrakjian/monkeystats/internal/logging"
	"github.com/mizrakjian/monkeystats/internal/menubar"
)

func init() {
	// AppKit requires the main goroutine to stay on the main OS thread.
	runtime.LockOSThread()
}

func main() {
	// HOME is unset when launched via launchctl/open.
	if os.Getenv("HOME") == "" {
		if u, err := user.Current(); err == nil {
			os.Setenv("HOME", u.HomeDir)
		}
	}

	logger := slog.New(slog.DiscardHandler)
	if f, err := openLogFile(); err == nil {
		defer f.Close()
		logger = logging.New(slog.LevelInfo, f)
	}
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("configuration error", "error", err)
		os.Exit(1)
	}

	client := api.New(cfg, api.WithLogger(logger))

	logger.Info("starting menu bar app", "user", cfg.User)
	menubar.New(client).Run()
}

func openLogFile() (*os.File, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	dir := filepath.Join(home, ".local", "share", "monkeystats", "logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(dir, "menubar.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}
