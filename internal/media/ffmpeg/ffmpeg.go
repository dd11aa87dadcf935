// Package ffmpeg reads decoded video frames from the ffmpeg command line tools.
package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/google/shlex"
	"go.uber.org/zap"

	"github.com/feral-file/ff-frame-inspector/internal/adapter"
	"github.com/feral-file/ff-frame-inspector/internal/domain"
	"github.com/feral-file/ff-frame-inspector/internal/logger"
	"github.com/feral-file/ff-frame-inspector/internal/media/frame"
)

const (
	DefaultFFmpegPath  = "ffmpeg"
	DefaultFFprobePath = "ffprobe"
)

// ErrStopped is returned by a FrameFunc to end extraction early without an error
var ErrStopped = errors.New("frame extraction stopped")

// Config holds the ffmpeg tool locations and input options
type Config struct {
	FFmpegPath  string
	FFprobePath string
	// InputFlags are extra ffmpeg flags placed before -i, split like a shell would
	InputFlags string
	// MaxFrames limits how many frames are read; zero means no limit
	MaxFrames int
	// MaxPixels caps the probed frame area; zero uses domain.DEFAULT_MAX_DECODED_PIXELS
	MaxPixels int64
}

// StreamInfo describes the first video stream of a container
type StreamInfo struct {
	Codec     string
	Width     int
	Height    int
	NumFrames int
}

// FrameFunc receives frames in playback order
type FrameFunc func(f *frame.Frame) error

// Extractor probes containers and streams their frames as BGR rasters
type Extractor struct {
	runner     adapter.CommandRunner
	json       adapter.JSON
	cfg        Config
	inputFlags []string
}

// NewExtractor creates an extractor, validating the configured input flags
func NewExtractor(runner adapter.CommandRunner, json adapter.JSON, cfg Config) (*Extractor, error) {
	if cfg.FFmpegPath == "" {
		cfg.FFmpegPath = DefaultFFmpegPath
	}
	if cfg.FFprobePath == "" {
		cfg.FFprobePath = DefaultFFprobePath
	}
	if cfg.MaxPixels <= 0 {
		cfg.MaxPixels = domain.DEFAULT_MAX_DECODED_PIXELS
	}
	if cfg.MaxFrames < 0 {
		return nil, fmt.Errorf("max frames must be non-negative, got %d", cfg.MaxFrames)
	}

	flags, err := shlex.Split(cfg.InputFlags)
	if err != nil {
		return nil, fmt.Errorf("invalid ffmpeg input flags %q: %w", cfg.InputFlags, err)
	}

	return &Extractor{
		runner:     runner,
		json:       json,
		cfg:        cfg,
		inputFlags: flags,
	}, nil
}

type probeOutput struct {
	Streams []struct {
		CodecName string `json:"codec_name"`
		Width     int    `json:"width"`
		Height    int    `json:"height"`
		NbFrames  string `json:"nb_frames"`
	} `json:"streams"`
}

// Probe reports the first video stream of the container at path
func (e *Extractor) Probe(ctx context.Context, path string) (*StreamInfo, error) {
	out, err := e.runner.Output(ctx, e.cfg.FFprobePath, probeArgs(path)...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStreamUnavailable, err)
	}

	var probe probeOutput
	if err := e.json.Unmarshal(out, &probe); err != nil {
		return nil, fmt.Errorf("%w: invalid probe output: %v", domain.ErrStreamUnavailable, err)
	}
	if len(probe.Streams) == 0 {
		return nil, fmt.Errorf("%w: no video stream", domain.ErrStreamUnavailable)
	}

	s := probe.Streams[0]
	if s.Width <= 0 || s.Height <= 0 {
		return nil, fmt.Errorf("%w: invalid stream size %dx%d", domain.ErrStreamUnavailable, s.Width, s.Height)
	}
	if int64(s.Width)*int64(s.Height) > e.cfg.MaxPixels {
		return nil, fmt.Errorf("%w: stream %dx%d exceeds %d pixels", domain.ErrTooManyPixels, s.Width, s.Height, e.cfg.MaxPixels)
	}

	info := &StreamInfo{Codec: s.CodecName, Width: s.Width, Height: s.Height}
	if n, err := strconv.Atoi(s.NbFrames); err == nil {
		info.NumFrames = n
	}
	return info, nil
}

// Extract streams every frame of the first video stream to fn and returns the number delivered.
// Frames already delivered stay valid when the process fails part way.
func (e *Extractor) Extract(ctx context.Context, path string, info *StreamInfo, fn FrameFunc) (int, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	proc, err := e.runner.Start(ctx, e.cfg.FFmpegPath, e.extractArgs(path)...)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrStreamUnavailable, err)
	}

	count, stopped, readErr := e.readFrames(proc.Stdout(), info, fn)
	if stopped || readErr != nil {
		// Unblock ffmpeg if it is still writing.
		cancel()
	}
	waitErr := proc.Wait()

	if readErr != nil {
		return count, readErr
	}
	if waitErr != nil && !stopped {
		if count == 0 {
			return 0, fmt.Errorf("%w: %v", domain.ErrStreamUnavailable, waitErr)
		}
		logger.WarnCtx(ctx, "ffmpeg exited with error after frames were read",
			zap.Int("frames", count),
			zap.Error(waitErr))
	}

	return count, nil
}

func (e *Extractor) readFrames(r io.Reader, info *StreamInfo, fn FrameFunc) (int, bool, error) {
	frameSize := info.Width * info.Height * frame.Channels
	buf := make([]byte, frameSize)

	count := 0
	for {
		if e.cfg.MaxFrames > 0 && count >= e.cfg.MaxFrames {
			return count, true, nil
		}

		if _, err := io.ReadFull(r, buf); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return count, false, nil
			}
			return count, false, fmt.Errorf("failed to read frame %d: %w", count, err)
		}

		f, err := frame.New(info.Width, info.Height, frame.OrderBGR, buf)
		if err != nil {
			return count, false, err
		}
		if err := fn(f); err != nil {
			if errors.Is(err, ErrStopped) {
				return count, true, nil
			}
			return count, false, err
		}
		count++
	}
}

func probeArgs(path string) []string {
	return []string{
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=codec_name,width,height,nb_frames",
		"-of", "json",
		path,
	}
}

func (e *Extractor) extractArgs(path string) []string {
	args := []string{"-v", "error", "-nostdin"}
	args = append(args, e.inputFlags...)
	args = append(args,
		"-noautorotate",
		"-i", path,
		"-map", "0:v:0",
		"-vsync", "passthrough",
		"-f", "rawvideo",
		"-pix_fmt", "bgr24",
		"pipe:1",
	)
	return args
}
