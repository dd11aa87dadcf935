package decoder

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"  // register GIF for first-frame decoding
	_ "image/jpeg" // register JPEG
	_ "image/png"  // register PNG

	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"  // register BMP
	_ "golang.org/x/image/tiff" // register TIFF
	_ "golang.org/x/image/webp" // register WebP

	"github.com/feral-file/ff-frame-inspector/internal/domain"
	"github.com/feral-file/ff-frame-inspector/internal/logger"
	"github.com/feral-file/ff-frame-inspector/internal/media/frame"
)

// Static decodes a single still image held in memory
type Static struct {
	maxPixels int64
}

// NewStatic creates a still image decoder rejecting images larger than maxPixels.
// A non-positive maxPixels uses domain.DEFAULT_MAX_DECODED_PIXELS.
func NewStatic(maxPixels int64) *Static {
	return &Static{maxPixels: pixelLimit(maxPixels)}
}

func (d *Static) Name() string {
	return string(NameStatic)
}

// Decode decodes data as one still image
func (d *Static) Decode(ctx context.Context, data []byte) (*Result, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return &Result{}, fmt.Errorf("%w: %v", domain.ErrUnsupportedFormat, err)
	}
	if err := checkPixels(cfg.Width, cfg.Height, d.maxPixels); err != nil {
		return &Result{}, err
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return &Result{}, fmt.Errorf("%w: %v", domain.ErrUnsupportedFormat, err)
	}

	f, err := frame.FromImage(img)
	if err != nil {
		return &Result{}, fmt.Errorf("%w: %v", domain.ErrUnsupportedFormat, err)
	}

	logger.DebugCtx(ctx, "decoded still image",
		zap.String("format", format),
		zap.Int("width", f.Width()),
		zap.Int("height", f.Height()))

	return &Result{Frames: frame.Sequence{f}}, nil
}
