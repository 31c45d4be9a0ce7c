package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Manasess896/X-bot/config"
	"github.com/Manasess896/X-bot/container"
	"github.com/Manasess896/X-bot/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	// Setup logger
	logCfg := logger.DefaultConfig()
	logCfg.Level = cfg.Log.Level
	logCfg.Format = cfg.Log.Format
	logCfg.Output = cfg.Log.Output
	logCfg.FilePath = cfg.Log.FilePath
	if err := logger.Init(logCfg); err != nil {
		slog.Error("Failed to initialize logger", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting X-bot",
		"timezone", cfg.App.Timezone,
		"port", cfg.App.Port,
		"dedupe_backend", cfg.Dedupe.Backend,
	)

	// Create container
	c, err := container.NewContainer(cfg)
	if err != nil {
		slog.Error("Failed to create container", "error", err)
		os.Exit(1)
	}

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		slog.Info("Received shutdown signal", "signal", sig)
		c.Stop()
	}()

	// Start scheduler and liveness server (blocks until shutdown)
	if err := c.Start(); err != nil {
		slog.Error("Bot error", "error", err)
	}

	slog.Info("Bot shutdown complete")
}
