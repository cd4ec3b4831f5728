package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// ParseLevel maps a config level string to a slog.Level.
func ParseLevel(level string) (slog.Level, error) {
	switch level {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
	}
}

// Watch reloads the config file on change and applies the log level to
// lvl, so the level can be adjusted without a restart. Other settings
// are read once at startup and require one. Watch blocks until ctx is
// cancelled.
//
// The parent directory is watched rather than the file itself, since
// editors and config writers commonly replace the file instead of
// rewriting it in place.
func Watch(ctx context.Context, path string, lvl *slog.LevelVar, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating config watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	target := filepath.Clean(path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			cfg, err := LoadFromFile(path)
			if err != nil {
				logger.Warn("Failed to reload config", slog.String("path", path), slog.String("error", err.Error()))
				continue
			}
			level, err := ParseLevel(cfg.Log.Level)
			if err != nil {
				logger.Warn("Ignoring reloaded config", slog.String("error", err.Error()))
				continue
			}
			if level != lvl.Level() {
				logger.Info("Log level changed", slog.String("level", cfg.Log.Level))
				lvl.Set(level)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Config watcher error", slog.String("error", err.Error()))
		}
	}
}
