package decoder

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/feral-file/ff-frame-inspector/internal/adapter"
	"github.com/feral-file/ff-frame-inspector/internal/domain"
	"github.com/feral-file/ff-frame-inspector/internal/logger"
	"github.com/feral-file/ff-frame-inspector/internal/media/frame"
	"github.com/feral-file/ff-frame-inspector/internal/media/lottie"
	"github.com/feral-file/ff-frame-inspector/internal/media/tempfile"
)

// Vector renders every frame of a TGS/Lottie animation at a multiple of its intrinsic size
type Vector struct {
	fs        adapter.FileSystem
	temp      *tempfile.Manager
	renderer  *lottie.Renderer
	scale     int
	maxPixels int64
}

// NewVector creates a vector animation decoder. A non-positive scale uses domain.DEFAULT_VECTOR_SCALE
// and a non-positive maxPixels uses domain.DEFAULT_MAX_DECODED_PIXELS.
func NewVector(fs adapter.FileSystem, temp *tempfile.Manager, renderer *lottie.Renderer, scale int, maxPixels int64) *Vector {
	if scale <= 0 {
		scale = domain.DEFAULT_VECTOR_SCALE
	}
	return &Vector{fs: fs, temp: temp, renderer: renderer, scale: scale, maxPixels: pixelLimit(maxPixels)}
}

func (d *Vector) Name() string {
	return string(NameVector)
}

// Scale returns the factor applied to the intrinsic size
func (d *Vector) Scale() int {
	return d.scale
}

// Decode renders all frames; any load or render failure discards the whole sequence
func (d *Vector) Decode(ctx context.Context, data []byte) (*Result, error) {
	var frames frame.Sequence

	err := d.temp.With(ctx, domain.EXTENSION_TGS, data, func(path string) error {
		anim, err := lottie.LoadFile(d.fs, path)
		if err != nil {
			return fmt.Errorf("%w: %v", domain.ErrUnsupportedFormat, err)
		}

		w, h := anim.Size()
		width, height := w*d.scale, h*d.scale
		if err := checkPixels(width, height, d.maxPixels); err != nil {
			return err
		}

		logger.DebugCtx(ctx, "rendering vector animation",
			zap.Int("width", width),
			zap.Int("height", height),
			zap.Float64("frameRate", anim.FrameRate))

		_, err = d.renderer.Render(ctx, anim, width, height, func(_ int, f *frame.Frame) error {
			frames = append(frames, f)
			return nil
		})
		return err
	})
	if err != nil {
		return &Result{}, err
	}

	return &Result{Frames: frames}, nil
}
