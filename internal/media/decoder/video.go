package decoder

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/feral-file/ff-frame-inspector/internal/domain"
	"github.com/feral-file/ff-frame-inspector/internal/logger"
	"github.com/feral-file/ff-frame-inspector/internal/media/ffmpeg"
	"github.com/feral-file/ff-frame-inspector/internal/media/frame"
	"github.com/feral-file/ff-frame-inspector/internal/media/tempfile"
)

// DefaultContainer is used when no container hint is available
const DefaultContainer = domain.CONTAINER_MP4

// VideoExtractor probes a container file and streams its frames
type VideoExtractor interface {
	Probe(ctx context.Context, path string) (*ffmpeg.StreamInfo, error)
	Extract(ctx context.Context, path string, info *ffmpeg.StreamInfo, fn ffmpeg.FrameFunc) (int, error)
}

// Video decodes video containers through a temporary file
type Video struct {
	extractor VideoExtractor
	temp      *tempfile.Manager
}

// NewVideo creates a video decoder
func NewVideo(extractor VideoExtractor, temp *tempfile.Manager) *Video {
	return &Video{extractor: extractor, temp: temp}
}

// Container binds the decoder to a container extension such as .mp4 or .webm
func (d *Video) Container(ext string) Decoder {
	return &videoContainer{video: d, ext: ext}
}

// DecodeContainer writes data to a temporary file named with ext and reads every frame
func (d *Video) DecodeContainer(ctx context.Context, data []byte, ext string) (*Result, error) {
	result := &Result{}

	err := d.temp.With(ctx, ext, data, func(path string) error {
		info, err := d.extractor.Probe(ctx, path)
		if err != nil {
			return err
		}

		logger.DebugCtx(ctx, "probed video stream",
			zap.String("codec", info.Codec),
			zap.Int("width", info.Width),
			zap.Int("height", info.Height),
			zap.Int("declaredFrames", info.NumFrames))

		_, err = d.extractor.Extract(ctx, path, info, func(f *frame.Frame) error {
			result.Frames = append(result.Frames, f)
			return nil
		})
		return err
	})
	if err != nil {
		if result.Frames.Empty() {
			return &Result{}, err
		}
		logger.WarnCtx(ctx, "video read stopped early", zap.Int("frames", result.Frames.Len()), zap.Error(err))
	}

	return result, nil
}

type videoContainer struct {
	video *Video
	ext   string
}

func (c *videoContainer) Name() string {
	return fmt.Sprintf("%s(%s)", NameVideo, c.ext)
}

func (c *videoContainer) Decode(ctx context.Context, data []byte) (*Result, error) {
	return c.video.DecodeContainer(ctx, data, c.ext)
}
