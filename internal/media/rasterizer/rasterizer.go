// Package rasterizer renders SVG documents to fixed-size bitmaps using resvg.
package rasterizer

import (
	"context"
	"fmt"
	"image"

	"go.uber.org/zap"
	"golang.org/x/image/draw"

	"github.com/feral-file/ff-frame-inspector/internal/adapter"
	"github.com/feral-file/ff-frame-inspector/internal/domain"
	"github.com/feral-file/ff-frame-inspector/internal/logger"
)

// Rasterizer renders SVG data to an image of an exact size
type Rasterizer interface {
	// Rasterize renders svgData to a width x height image
	Rasterize(ctx context.Context, svgData []byte, width, height int) (image.Image, error)
}

type rasterizer struct {
	resvgClient adapter.ResvgClient
}

// NewRasterizer creates a new SVG rasterizer instance
func NewRasterizer(resvgClient adapter.ResvgClient) Rasterizer {
	return &rasterizer{
		resvgClient: resvgClient,
	}
}

// Rasterize renders SVG data at the requested width with best-fit scaling.
// If resvg returns a different size, the result is resampled to width x height.
func (r *rasterizer) Rasterize(ctx context.Context, svgData []byte, width, height int) (image.Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: invalid target size %dx%d", domain.ErrRenderFailed, width, height)
	}

	img, err := r.resvgClient.Render(svgData, width)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to render SVG: %v", domain.ErrRenderFailed, err)
	}

	bounds := img.Bounds()
	if bounds.Dx() == width && bounds.Dy() == height {
		return img, nil
	}

	logger.DebugCtx(ctx, "resampling rendered SVG",
		zap.Int("renderedWidth", bounds.Dx()),
		zap.Int("renderedHeight", bounds.Dy()),
		zap.Int("targetWidth", width),
		zap.Int("targetHeight", height),
	)

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)
	return dst, nil
}
