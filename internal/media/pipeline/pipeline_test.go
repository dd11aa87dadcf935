package pipeline_test

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-frame-inspector/internal/config"
	"github.com/feral-file/ff-frame-inspector/internal/domain"
	"github.com/feral-file/ff-frame-inspector/internal/logger"
	"github.com/feral-file/ff-frame-inspector/internal/media/pipeline"
)

func init() {
	_ = logger.Initialize(logger.Config{Debug: true})
}

func testMediaConfig() config.MediaConfig {
	return config.MediaConfig{
		TempDir:     "",
		VectorScale: 2,
		JPEGQuality: 90,
		ReplyFormat: "jpeg",
		FFmpeg: config.FFmpegConfig{
			FFmpegPath:  "ffmpeg",
			FFprobePath: "ffprobe",
		},
	}
}

func TestNewDecoders(t *testing.T) {
	decoders, err := pipeline.NewDecoders(testMediaConfig(), pipeline.DefaultDeps())
	require.NoError(t, err)

	assert.NotNil(t, decoders.Static)
	assert.NotNil(t, decoders.GIF)
	assert.NotNil(t, decoders.Video)
	assert.NotNil(t, decoders.Vector)
	assert.NotNil(t, decoders.RasterSticker)
	assert.NotNil(t, decoders.SVG)
}

func TestNewDecoders_InvalidFFmpegConfig(t *testing.T) {
	cfg := testMediaConfig()
	cfg.FFmpeg.InputFlags = `-vf "unterminated`

	_, err := pipeline.NewDecoders(cfg, pipeline.DefaultDeps())
	assert.Error(t, err)

	cfg = testMediaConfig()
	cfg.FFmpeg.MaxFrames = -1
	_, err = pipeline.NewDecoders(cfg, pipeline.DefaultDeps())
	assert.Error(t, err)
}

func photoPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 6))
	for y := 0; y < 6; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 10, B: 30, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestNewProcessor_Photo(t *testing.T) {
	proc, err := pipeline.NewProcessor(testMediaConfig(), config.WorkerConfig{WorkerPoolSize: 1, WorkerQueueSize: 1}, pipeline.DefaultDeps())
	require.NoError(t, err)
	defer func() {
		_ = proc.Close()
	}()

	result := proc.Process(context.Background(), domain.Photo{Data: photoPNG(t)})
	require.NoError(t, result.Err)
	assert.Equal(t, 1, result.Summary.FrameCount)
	assert.Equal(t, 8, result.Summary.Width)
	assert.Equal(t, 6, result.Summary.Height)
	assert.Equal(t, "Processed 1 frames\nSize: 8x6", result.Reply.Caption)
	assert.True(t, result.Reply.HasPhoto())
	assert.Equal(t, "image/jpeg", result.Reply.MimeType())
}

func TestNewProcessor_PNGReply(t *testing.T) {
	cfg := testMediaConfig()
	cfg.ReplyFormat = "png"

	proc, err := pipeline.NewProcessor(cfg, config.WorkerConfig{WorkerPoolSize: 1, WorkerQueueSize: 1}, pipeline.DefaultDeps())
	require.NoError(t, err)
	defer func() {
		_ = proc.Close()
	}()

	result := proc.Process(context.Background(), domain.Photo{Data: photoPNG(t)})
	require.True(t, result.Reply.HasPhoto())
	assert.Equal(t, "frame.png", result.Reply.FileName())

	img, err := png.Decode(bytes.NewReader(result.Reply.Photo))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 8, 6), img.Bounds())
}

func TestNewProcessor_PixelLimit(t *testing.T) {
	cfg := testMediaConfig()
	cfg.MaxDecodedPixels = 47

	proc, err := pipeline.NewProcessor(cfg, config.WorkerConfig{WorkerPoolSize: 1, WorkerQueueSize: 1}, pipeline.DefaultDeps())
	require.NoError(t, err)
	defer func() {
		_ = proc.Close()
	}()

	result := proc.Process(context.Background(), domain.Photo{Data: photoPNG(t)})
	assert.False(t, result.Reply.HasPhoto())
	assert.Equal(t, "Could not process the media file", result.Reply.Text)
	require.Len(t, result.Attempts, 1)
	assert.ErrorIs(t, result.Attempts[0].Err, domain.ErrTooManyPixels)
}
