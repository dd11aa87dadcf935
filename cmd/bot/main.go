package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/feral-file/ff-frame-inspector/internal/adapter"
	"github.com/feral-file/ff-frame-inspector/internal/config"
	"github.com/feral-file/ff-frame-inspector/internal/downloader"
	"github.com/feral-file/ff-frame-inspector/internal/logger"
	"github.com/feral-file/ff-frame-inspector/internal/media/pipeline"
	"github.com/feral-file/ff-frame-inspector/internal/transport/telegram"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadBotConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "frame-bot",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Frame Inspector Bot")

	// Build the decoding pipeline
	deps := pipeline.DefaultDeps()
	proc, err := pipeline.NewProcessor(cfg.Media, cfg.Worker, deps)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create media processor", zap.Error(err))
	}
	defer func() {
		_ = proc.Close()
	}()

	// Connect to the bot API
	bot, err := telegram.NewBot(cfg.Telegram.Token, cfg.Telegram.APIEndpoint, cfg.Debug)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to Telegram", zap.Error(err))
	}

	dl := downloader.NewDownloader(adapter.NewHTTPClient(cfg.Download.Timeout), deps.Clock, cfg.Download.MaxFileSize)
	handler := telegram.NewHandler(bot, dl, proc)

	// Poll for updates in a goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- handler.Run(ctx, cfg.Telegram.PollTimeout)
	}()

	// Wait for interrupt signal to gracefully stop polling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
		if err := <-errCh; err != nil {
			logger.ErrorCtx(ctx, err, zap.String("component", "bot"))
		}
	case err := <-errCh:
		if err != nil {
			logger.ErrorCtx(ctx, err, zap.String("component", "bot"))
		}
		cancel()
	}

	// Use non-context logger for final message since original ctx is canceled
	logger.Info("Frame Inspector Bot stopped")
}
