package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/qeforge/qeforge/cmd/qeforge/commands"
	"github.com/qeforge/qeforge/pkg/telemetry"
)

// Version information (set via ldflags during build)
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

func main() {
	setupLogging()

	// Create context that cancels on interrupt signals
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info().Msg("Received interrupt signal, shutting down...")
		cancel()
	}()

	if err := commands.Execute(ctx, Version, Commit, BuildDate); err != nil {
		log.Error().Err(err).Msg("Command execution failed")
		os.Exit(1)
	}
}

// setupLogging installs the global console logger; LOG_LEVEL and LOG_FORMAT
// override the defaults.
func setupLogging() {
	cfg := telemetry.DefaultConfig()
	cfg.ServiceVersion = Version
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		cfg = telemetry.DefaultConfig()
	}

	logger, err := telemetry.NewLogger(cfg.Logging)
	if err != nil {
		logger = telemetry.NewLoggerWithWriter(cfg.Logging, os.Stderr)
	}
	logger.SetGlobal()
}
