// Package pipeline assembles the decoding stack shared by the bot, the API
// server and the inspect command.
package pipeline

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/feral-file/ff-frame-inspector/internal/adapter"
	"github.com/feral-file/ff-frame-inspector/internal/config"
	"github.com/feral-file/ff-frame-inspector/internal/logger"
	"github.com/feral-file/ff-frame-inspector/internal/media/classifier"
	"github.com/feral-file/ff-frame-inspector/internal/media/decoder"
	"github.com/feral-file/ff-frame-inspector/internal/media/ffmpeg"
	"github.com/feral-file/ff-frame-inspector/internal/media/lottie"
	"github.com/feral-file/ff-frame-inspector/internal/media/processor"
	"github.com/feral-file/ff-frame-inspector/internal/media/rasterizer"
	"github.com/feral-file/ff-frame-inspector/internal/media/reporter"
	"github.com/feral-file/ff-frame-inspector/internal/media/tempfile"
)

// Deps holds the adapters the pipeline is built on
type Deps struct {
	Runner     adapter.CommandRunner
	FileSystem adapter.FileSystem
	JSON       adapter.JSON
	Resvg      adapter.ResvgClient
	Lottie     adapter.LottieEngine
	Encoder    adapter.ImageEncoder
	Clock      adapter.Clock
}

// DefaultDeps returns the production adapters
func DefaultDeps() Deps {
	return Deps{
		Runner:     adapter.NewCommandRunner(),
		FileSystem: adapter.NewFileSystem(),
		JSON:       adapter.NewJSON(),
		Resvg:      adapter.NewResvgClient(),
		Lottie:     adapter.NewLottieEngine(),
		Encoder:    adapter.NewImageEncoder(),
		Clock:      adapter.NewClock(),
	}
}

// NewDecoders builds one decoder per strategy
func NewDecoders(cfg config.MediaConfig, deps Deps) (classifier.Decoders, error) {
	extractor, err := ffmpeg.NewExtractor(deps.Runner, deps.JSON, ffmpeg.Config{
		FFmpegPath:  cfg.FFmpeg.FFmpegPath,
		FFprobePath: cfg.FFmpeg.FFprobePath,
		InputFlags:  cfg.FFmpeg.InputFlags,
		MaxFrames:   cfg.FFmpeg.MaxFrames,
		MaxPixels:   cfg.MaxDecodedPixels,
	})
	if err != nil {
		return classifier.Decoders{}, fmt.Errorf("failed to create ffmpeg extractor: %w", err)
	}

	temp := tempfile.NewManager(deps.FileSystem, cfg.TempDir)
	renderer := lottie.NewRenderer(deps.Lottie)
	limit := cfg.MaxDecodedPixels

	return classifier.Decoders{
		Static:        decoder.NewStatic(limit),
		GIF:           decoder.NewGIF(limit),
		Video:         decoder.NewVideo(extractor, temp),
		Vector:        decoder.NewVector(deps.FileSystem, temp, renderer, cfg.VectorScale, limit),
		RasterSticker: decoder.NewRasterSticker(limit),
		SVG:           decoder.NewSVG(rasterizer.NewRasterizer(deps.Resvg), limit),
	}, nil
}

// NewProcessor builds the full decode-and-report processor
func NewProcessor(media config.MediaConfig, worker config.WorkerConfig, deps Deps) (processor.Processor, error) {
	decoders, err := NewDecoders(media, deps)
	if err != nil {
		return nil, err
	}

	proc, err := processor.NewProcessor(processor.Config{
		MaxWorkers:   worker.WorkerPoolSize,
		MaxQueueSize: worker.WorkerQueueSize,
	},
		classifier.NewDispatcher(decoders),
		reporter.NewWithFormat(deps.Encoder, media.Format(), media.JPEGQuality),
		deps.Clock,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create processor: %w", err)
	}

	logger.Info("Media pipeline ready",
		zap.String("ffmpeg", media.FFmpeg.FFmpegPath),
		zap.Int("vector_scale", media.VectorScale),
		zap.Int("jpeg_quality", media.JPEGQuality),
		zap.String("reply_format", string(media.Format())),
		zap.Int64("max_decoded_pixels", media.MaxDecodedPixels),
		zap.Int("workers", worker.WorkerPoolSize),
	)

	return proc, nil
}
