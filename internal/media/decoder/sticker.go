package decoder

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"

	"go.uber.org/zap"
	"golang.org/x/image/webp"

	"github.com/feral-file/ff-frame-inspector/internal/domain"
	"github.com/feral-file/ff-frame-inspector/internal/logger"
	"github.com/feral-file/ff-frame-inspector/internal/media/frame"
)

// RasterSticker decodes still and animated WebP stickers.
// Animated stickers are decoded frame by frame like GIFs.
type RasterSticker struct {
	maxPixels int64
}

// NewRasterSticker creates a raster sticker decoder. Canvas and frame sizes may not
// exceed maxPixels; a non-positive maxPixels uses domain.DEFAULT_MAX_DECODED_PIXELS.
func NewRasterSticker(maxPixels int64) *RasterSticker {
	return &RasterSticker{maxPixels: pixelLimit(maxPixels)}
}

func (d *RasterSticker) Name() string {
	return string(NameRasterSticker)
}

// Decode decodes a WebP still or every frame of an animated WebP
func (d *RasterSticker) Decode(ctx context.Context, data []byte) (*Result, error) {
	container, err := parseWebP(data)
	if err != nil {
		return &Result{}, fmt.Errorf("%w: %v", domain.ErrUnsupportedFormat, err)
	}

	if err := checkPixels(container.canvasWidth, container.canvasHeight, d.maxPixels); err != nil {
		return &Result{}, err
	}

	if !container.animated {
		f, err := d.decodeFrame(container.still, 0, 0)
		if errors.Is(err, domain.ErrTooManyPixels) {
			return &Result{}, err
		}
		if err != nil {
			return &Result{}, fmt.Errorf("%w: %v", domain.ErrUnsupportedFormat, err)
		}
		return &Result{Frames: frame.Sequence{f}}, nil
	}

	result := &Result{}
	for _, sub := range container.frames {
		decoded, err := d.decodeFrame(sub, container.canvasWidth, container.canvasHeight)
		if err != nil {
			result.Skipped++
			logger.DebugCtx(ctx, "skipping webp frame", zap.Int("index", sub.index), zap.Error(err))
			continue
		}
		result.Frames = append(result.Frames, decoded)
	}

	if result.Skipped > 0 {
		logger.WarnCtx(ctx, "webp frames skipped",
			zap.Int("decoded", result.Frames.Len()),
			zap.Int("skipped", result.Skipped))
	}

	return result, nil
}

func (d *RasterSticker) decodeFrame(f webpFrame, width, height int) (*frame.Frame, error) {
	if f.err != nil {
		return nil, f.err
	}

	cfg, err := webp.DecodeConfig(bytes.NewReader(f.data))
	if err != nil {
		return nil, err
	}
	if err := checkPixels(cfg.Width, cfg.Height, d.maxPixels); err != nil {
		return nil, err
	}

	img, err := webp.Decode(bytes.NewReader(f.data))
	if err != nil {
		return nil, err
	}

	return compose(img, image.Pt(f.x, f.y), width, height)
}
