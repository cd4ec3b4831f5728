package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/c360studio/taskboard/api"
	"github.com/c360studio/taskboard/auth"
	"github.com/c360studio/taskboard/config"
	"github.com/c360studio/taskboard/events"
	"github.com/c360studio/taskboard/storage"
	"github.com/c360studio/taskboard/storage/memory"
	"github.com/c360studio/taskboard/storage/natskv"
	"github.com/c360studio/taskboard/storage/sqlite"
)

func run(ctx context.Context, configPath, addr, driver, logLevel string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Flags override config.
	if addr != "" {
		cfg.Server.Addr = addr
	}
	if driver != "" {
		cfg.Storage.Driver = driver
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	level, err := config.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	var lvl slog.LevelVar
	lvl.Set(level)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: &lvl}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// NATS is optional: required by the nats driver, otherwise only
	// connected when event publishing is on.
	var nc *nats.Conn
	if cfg.NATS.URL != "" && (cfg.Storage.Driver == config.DriverNATS || cfg.NATS.PublishEvents) {
		nc, err = nats.Connect(cfg.NATS.URL,
			nats.Name(appName),
			nats.MaxReconnects(-1),
			nats.ReconnectWait(2*time.Second))
		if err != nil {
			return fmt.Errorf("connect to NATS at %s: %w", cfg.NATS.URL, err)
		}
		defer nc.Close()
		logger.Info("Connected to NATS", "url", cfg.NATS.URL)
	}

	store, err := openStore(ctx, cfg, nc, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	secret := cfg.Auth.TokenSecret
	if secret == "" {
		// Sessions will not survive a restart without a configured secret.
		secret = randomSecret()
		logger.Warn("auth.token_secret not set, using an ephemeral secret")
	}
	issuer := auth.NewIssuer(secret, cfg.Auth.TokenTTL)

	var publisher *events.Publisher
	if cfg.NATS.PublishEvents {
		publisher = events.New(nc, logger)
	}

	server := api.NewServer(store, issuer, publisher, logger)
	httpServer := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	if configPath != "" {
		go func() {
			if err := config.Watch(ctx, configPath, &lvl, logger); err != nil {
				logger.Warn("Config watch stopped", "error", err)
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Taskboard ready",
			"version", Version,
			"addr", cfg.Server.Addr,
			"storage", cfg.Storage.Driver)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// loadConfig resolves the layered config, then applies the explicit
// file when one was passed.
func loadConfig(configPath string) (*config.Config, error) {
	loader := config.NewLoader(slog.Default())
	if err := loader.EnsureUserConfig(); err != nil {
		// A read-only home directory should not stop startup.
		slog.Warn("Failed to create user config", "error", err)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, err
	}

	if configPath != "" {
		fileCfg, err := config.LoadFromFile(configPath)
		if err != nil {
			return nil, err
		}
		cfg.Merge(fileCfg)
	}
	return cfg, nil
}

func openStore(ctx context.Context, cfg *config.Config, nc *nats.Conn, logger *slog.Logger) (storage.Store, error) {
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		opts := []memory.Option{}
		if cfg.Storage.Seed {
			opts = append(opts, memory.WithSeed())
			logger.Info("Seeded demo data")
		}
		return memory.New(opts...), nil

	case config.DriverSQLite:
		store, err := sqlite.Open(cfg.Storage.Path)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store at %s: %w", cfg.Storage.Path, err)
		}
		logger.Info("Opened SQLite store", "path", cfg.Storage.Path)
		return store, nil

	case config.DriverNATS:
		js, err := jetstream.New(nc)
		if err != nil {
			return nil, fmt.Errorf("create JetStream context: %w", err)
		}
		store, err := natskv.New(ctx, js)
		if err != nil {
			return nil, fmt.Errorf("open NATS KV store: %w", err)
		}
		logger.Info("Opened NATS KV store")
		return store, nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

func randomSecret() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return hex.EncodeToString(buf)
}
