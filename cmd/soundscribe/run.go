package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/spf13/cobra"

	"soundscribe/audio"
	"soundscribe/bot"
	"soundscribe/domain"
	"soundscribe/internal"
	"soundscribe/observability"
	"soundscribe/recorder"
	"soundscribe/repositories"
	"soundscribe/runtime/workers"
	"soundscribe/server"
)

const stopOnShutdownTimeout = 2 * time.Minute

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Start the bot, the download server and the background workers",
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := run()
			if err != nil {
				fmt.Fprintf(os.Stderr, "soundscribe terminated with error: %v\n", err)
			}
			os.Exit(code)
			return nil
		},
	}
}

// run initializes all components, manages their lifecycles, and
// centralizes error reporting so deferred cleanups always execute before
// the process exits.
func run() (int, error) {
	// 1. Configuration & logger
	cfg, err := internal.Load()
	if err != nil {
		return exitConfig, err
	}
	if cfg.BotToken == "" {
		return exitConfig, fmt.Errorf("DISCORD_BOT_TOKEN is not set")
	}

	logger := logs.GetLoggerFromString(cfg.LogLevel)

	if err := os.MkdirAll(cfg.RecordingsDir, 0o755); err != nil {
		return exitRuntime, fmt.Errorf("failed to create recordings directory: %w", err)
	}

	// 2. Session journal (BadgerDB)
	db, err := badger.Open(badger.DefaultOptions(cfg.BadgerPath).WithLogger(nil))
	if err != nil {
		return exitRuntime, fmt.Errorf("journal database opening failed: %w", err)
	}
	defer func() {
		logger.Info("Closing journal database...")
		_ = db.Close()
	}()

	// 3. Core components
	monitor := observability.NewMonitoringManager()
	journal := repositories.NewSessionJournal(db, logger)
	mixer := audio.NewFFmpegMixer(logger, cfg.FFmpegPath, cfg.FFmpegTimeout)
	presenceChan := make(chan domain.PresenceEvent, cfg.PresenceBufferSize)

	coordinator := recorder.NewCoordinator(logger, mixer, cfg.RecordingsDir, monitor, journal, presenceChan)
	downloads := server.NewDownloadServer(logger, cfg.DownloadHost, cfg.DownloadPort, cfg.TokenTTL, monitor)

	if err := downloads.Start(); err != nil {
		return exitRuntime, err
	}

	// 4. Context & signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 5. Background workers under supervision
	sup := workers.NewSupervisor(logger)
	sup.Add(
		workers.NewPresenceFanout(logger, presenceChan, workers.LogPresenceSink{Log: logger}),
		workers.NewTokenSweeper(logger, downloads, cfg.SweepInterval),
		workers.NewTelemetryWorker(logger, monitor, cfg.MetricInterval),
	)
	supDone := make(chan struct{})
	go func() {
		sup.Run(ctx)
		close(supDone)
	}()

	// 6. Discord gateway
	discordBot, err := bot.New(logger, cfg.BotToken, coordinator, downloads, journal,
		cfg.VoiceJoinAttempts, cfg.VoiceJoinBackoff)
	if err != nil {
		return exitRuntime, err
	}
	if err := discordBot.Open(); err != nil {
		return exitRuntime, err
	}
	logger.Info("SoundScribe is running", "download_addr", downloads.Addr())

	// 7. Wait for a shutdown signal
	<-ctx.Done()
	logger.Info("Shutdown signal received")

	// 8. Graceful shutdown: finish any active recording before tearing
	// down the transports that would serve its artifact.
	if coordinator.Recording() {
		stopCtx, cancel := context.WithTimeout(context.Background(), stopOnShutdownTimeout)
		if artifact, err := coordinator.Stop(stopCtx); err != nil {
			logger.Warn("Failed to stop active recording", "error", err)
		} else if artifact != "" {
			logger.Info("Active recording finalized on shutdown", "artifact", artifact)
		}
		cancel()
	}

	if err := discordBot.Close(); err != nil {
		logger.Warn("Discord shutdown error", "error", err)
	}
	if err := downloads.Stop(context.Background()); err != nil {
		logger.Warn("Download server shutdown error", "error", err)
	}

	sup.Stop()
	<-supDone

	logger.Info("Program stopped cleanly")
	return exitOK, nil
}
