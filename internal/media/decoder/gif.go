package decoder

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/gif"

	"go.uber.org/zap"
	"golang.org/x/image/draw"

	"github.com/feral-file/ff-frame-inspector/internal/domain"
	"github.com/feral-file/ff-frame-inspector/internal/logger"
	"github.com/feral-file/ff-frame-inspector/internal/media/frame"
)

// GIF decodes every frame of a GIF animation independently.
// A frame that fails to decode is skipped; the rest are kept.
type GIF struct {
	maxPixels int64
}

// NewGIF creates a GIF sequence decoder. The logical screen may not exceed maxPixels;
// a non-positive maxPixels uses domain.DEFAULT_MAX_DECODED_PIXELS.
func NewGIF(maxPixels int64) *GIF {
	return &GIF{maxPixels: pixelLimit(maxPixels)}
}

func (d *GIF) Name() string {
	return string(NameGIF)
}

// Decode splits data into frames and decodes each one onto a blank logical screen
func (d *GIF) Decode(ctx context.Context, data []byte) (*Result, error) {
	container, err := splitGIF(data)
	if err != nil {
		return &Result{}, fmt.Errorf("%w: %v", domain.ErrUnsupportedFormat, err)
	}
	// image/gif rejects frames outside the logical screen, so the screen bounds every allocation
	if err := checkPixels(container.width, container.height, d.maxPixels); err != nil {
		return &Result{}, err
	}

	result := &Result{}
	for _, f := range container.frames {
		decoded, err := decodeGIFFrame(f, container.width, container.height)
		if err != nil {
			result.Skipped++
			logger.DebugCtx(ctx, "skipping gif frame", zap.Int("index", f.index), zap.Error(err))
			continue
		}
		result.Frames = append(result.Frames, decoded)
	}

	if result.Skipped > 0 {
		logger.WarnCtx(ctx, "gif frames skipped",
			zap.Int("decoded", result.Frames.Len()),
			zap.Int("skipped", result.Skipped))
	}

	return result, nil
}

func decodeGIFFrame(f gifFrame, width, height int) (*frame.Frame, error) {
	if f.truncated {
		return nil, fmt.Errorf("%w: frame %d", errGIFTruncated, f.index)
	}

	img, err := gif.Decode(bytes.NewReader(f.data))
	if err != nil {
		return nil, err
	}

	return compose(img, image.Point{}, width, height)
}

// compose places img at offset on a blank canvas of the given size.
// A non-positive canvas size falls back to the image's own bounds.
func compose(img image.Image, offset image.Point, width, height int) (*frame.Frame, error) {
	b := img.Bounds()
	if width <= 0 || height <= 0 {
		return frame.FromImage(img)
	}
	if offset == (image.Point{}) && b == image.Rect(0, 0, width, height) {
		return frame.FromImage(img)
	}

	canvas := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.Draw(canvas, b.Add(offset), img, b.Min, draw.Src)
	return frame.FromImage(canvas)
}
