package lottie

import (
	"context"
	"fmt"

	"github.com/feral-file/ff-frame-inspector/internal/adapter"
	"github.com/feral-file/ff-frame-inspector/internal/domain"
	"github.com/feral-file/ff-frame-inspector/internal/media/frame"
)

// FrameFunc receives rendered frames in playback order
type FrameFunc func(index int, f *frame.Frame) error

// Renderer draws animation frames with a native Lottie engine
type Renderer struct {
	engine adapter.LottieEngine
}

// NewRenderer creates a renderer backed by engine
func NewRenderer(engine adapter.LottieEngine) *Renderer {
	return &Renderer{engine: engine}
}

// Render draws every frame the engine reports at width x height and passes each to fn.
// It returns the number of frames delivered; a zero frame count is not an error.
func (r *Renderer) Render(ctx context.Context, a *Animation, width, height int, fn FrameFunc) (int, error) {
	if width <= 0 || height <= 0 {
		return 0, fmt.Errorf("%w: invalid target size %dx%d", domain.ErrRenderFailed, width, height)
	}

	player, err := r.engine.Load(a.Document())
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrRenderFailed, err)
	}
	defer player.Close()

	total := player.TotalFrames()
	stride := width * 4
	buf := make([]byte, stride*height)

	for i := 0; i < total; i++ {
		if err := ctx.Err(); err != nil {
			return i, err
		}

		clear(buf)
		player.Render(i, width, height, buf)

		f, err := frame.FromBGRA(width, height, stride, buf)
		if err != nil {
			return i, fmt.Errorf("%w: frame %d: %v", domain.ErrRenderFailed, i, err)
		}
		if err := fn(i, f); err != nil {
			return i, err
		}
	}

	return total, nil
}
