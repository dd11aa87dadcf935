package ffmpeg_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-frame-inspector/internal/adapter"
	"github.com/feral-file/ff-frame-inspector/internal/domain"
	"github.com/feral-file/ff-frame-inspector/internal/logger"
	"github.com/feral-file/ff-frame-inspector/internal/media/ffmpeg"
	"github.com/feral-file/ff-frame-inspector/internal/media/frame"
	"github.com/feral-file/ff-frame-inspector/internal/mocks"
)

func init() {
	_ = logger.Initialize(logger.Config{Debug: true})
}

const probeJSON = `{"streams":[{"codec_name":"h264","width":4,"height":2,"nb_frames":"3"}]}`

func rawFrames(n, width, height int) []byte {
	size := width * height * frame.Channels
	buf := make([]byte, 0, n*size)
	for i := 0; i < n; i++ {
		buf = append(buf, bytes.Repeat([]byte{byte(i + 1)}, size)...)
	}
	return buf
}

func newExtractor(t *testing.T, runner adapter.CommandRunner, cfg ffmpeg.Config) *ffmpeg.Extractor {
	t.Helper()
	e, err := ffmpeg.NewExtractor(runner, adapter.NewJSON(), cfg)
	require.NoError(t, err)
	return e
}

func TestNewExtractor_InvalidFlags(t *testing.T) {
	_, err := ffmpeg.NewExtractor(adapter.NewCommandRunner(), adapter.NewJSON(), ffmpeg.Config{InputFlags: `-hwaccel "auto`})
	assert.Error(t, err)

	_, err = ffmpeg.NewExtractor(adapter.NewCommandRunner(), adapter.NewJSON(), ffmpeg.Config{MaxFrames: -1})
	assert.Error(t, err)
}

func TestProbe(t *testing.T) {
	tests := []struct {
		name     string
		output   string
		runErr   error
		wantErr  bool
		wantInfo *ffmpeg.StreamInfo
	}{
		{
			name:     "video stream",
			output:   probeJSON,
			wantInfo: &ffmpeg.StreamInfo{Codec: "h264", Width: 4, Height: 2, NumFrames: 3},
		},
		{
			name:     "frame count not reported",
			output:   `{"streams":[{"codec_name":"vp9","width":8,"height":8,"nb_frames":"N/A"}]}`,
			wantInfo: &ffmpeg.StreamInfo{Codec: "vp9", Width: 8, Height: 8},
		},
		{
			name:    "no streams",
			output:  `{"streams":[]}`,
			wantErr: true,
		},
		{
			name:    "zero size",
			output:  `{"streams":[{"codec_name":"h264","width":0,"height":0}]}`,
			wantErr: true,
		},
		{
			name:    "malformed json",
			output:  `not json`,
			wantErr: true,
		},
		{
			name:    "ffprobe fails",
			runErr:  errors.New("exit status 1"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			runner := mocks.NewMockCommandRunner(ctrl)
			runner.EXPECT().
				Output(gomock.Any(), "ffprobe", gomock.Any()).
				DoAndReturn(func(ctx context.Context, name string, args ...string) ([]byte, error) {
					assert.Equal(t, "/tmp/clip.mp4", args[len(args)-1])
					assert.Contains(t, args, "json")
					if tt.runErr != nil {
						return nil, tt.runErr
					}
					return []byte(tt.output), nil
				})

			e := newExtractor(t, runner, ffmpeg.Config{})
			info, err := e.Probe(context.Background(), "/tmp/clip.mp4")
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrStreamUnavailable)
				assert.Nil(t, info)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantInfo, info)
		})
	}
}

func TestProbe_TooManyPixels(t *testing.T) {
	tests := []struct {
		name      string
		output    string
		maxPixels int64
	}{
		{
			name:   "default limit",
			output: `{"streams":[{"codec_name":"h264","width":16384,"height":16384}]}`,
		},
		{
			name:      "configured limit",
			output:    probeJSON,
			maxPixels: 7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			runner := mocks.NewMockCommandRunner(ctrl)
			runner.EXPECT().Output(gomock.Any(), "ffprobe", gomock.Any()).Return([]byte(tt.output), nil)

			e := newExtractor(t, runner, ffmpeg.Config{MaxPixels: tt.maxPixels})
			info, err := e.Probe(context.Background(), "/tmp/clip.mp4")
			assert.ErrorIs(t, err, domain.ErrTooManyPixels)
			assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
			assert.Nil(t, info)
		})
	}
}

func TestExtract_AllFrames(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	runner := mocks.NewMockCommandRunner(ctrl)
	proc := mocks.NewMockProcess(ctrl)

	runner.EXPECT().
		Start(gomock.Any(), "ffmpeg", gomock.Any()).
		DoAndReturn(func(ctx context.Context, name string, args ...string) (adapter.Process, error) {
			assert.Equal(t, []string{"-v", "error", "-nostdin", "-hwaccel", "auto", "-noautorotate", "-i", "/tmp/clip.mp4"}, args[:8])
			assert.Contains(t, args, "bgr24")
			return proc, nil
		})
	proc.EXPECT().Stdout().Return(bytes.NewReader(rawFrames(3, 4, 2)))
	proc.EXPECT().Wait().Return(nil)

	e := newExtractor(t, runner, ffmpeg.Config{InputFlags: "-hwaccel auto"})

	var frames frame.Sequence
	n, err := e.Extract(context.Background(), "/tmp/clip.mp4", &ffmpeg.StreamInfo{Width: 4, Height: 2}, func(f *frame.Frame) error {
		frames = append(frames, f)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	require.Len(t, frames, 3)
	for i, f := range frames {
		assert.Equal(t, 4, f.Width())
		assert.Equal(t, 2, f.Height())
		b, _, _ := f.At(0, 0)
		assert.Equal(t, uint8(i+1), b)
	}
}

func TestExtract_PartialTrailingFrameDropped(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	runner := mocks.NewMockCommandRunner(ctrl)
	proc := mocks.NewMockProcess(ctrl)

	data := rawFrames(2, 4, 2)
	data = append(data, 1, 2, 3)

	runner.EXPECT().Start(gomock.Any(), "ffmpeg", gomock.Any()).Return(proc, nil)
	proc.EXPECT().Stdout().Return(bytes.NewReader(data))
	proc.EXPECT().Wait().Return(nil)

	e := newExtractor(t, runner, ffmpeg.Config{})
	n, err := e.Extract(context.Background(), "/tmp/clip.mp4", &ffmpeg.StreamInfo{Width: 4, Height: 2}, func(f *frame.Frame) error {
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestExtract_MaxFrames(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	runner := mocks.NewMockCommandRunner(ctrl)
	proc := mocks.NewMockProcess(ctrl)

	runner.EXPECT().Start(gomock.Any(), "ffmpeg", gomock.Any()).Return(proc, nil)
	proc.EXPECT().Stdout().Return(bytes.NewReader(rawFrames(5, 4, 2)))
	proc.EXPECT().Wait().Return(errors.New("signal: killed"))

	e := newExtractor(t, runner, ffmpeg.Config{MaxFrames: 2})
	n, err := e.Extract(context.Background(), "/tmp/clip.mp4", &ffmpeg.StreamInfo{Width: 4, Height: 2}, func(f *frame.Frame) error {
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestExtract_ProcessFailsWithoutFrames(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	runner := mocks.NewMockCommandRunner(ctrl)
	proc := mocks.NewMockProcess(ctrl)

	runner.EXPECT().Start(gomock.Any(), "ffmpeg", gomock.Any()).Return(proc, nil)
	proc.EXPECT().Stdout().Return(bytes.NewReader(nil))
	proc.EXPECT().Wait().Return(errors.New("exit status 1"))

	e := newExtractor(t, runner, ffmpeg.Config{})
	n, err := e.Extract(context.Background(), "/tmp/clip.mp4", &ffmpeg.StreamInfo{Width: 4, Height: 2}, func(f *frame.Frame) error {
		return nil
	})
	assert.ErrorIs(t, err, domain.ErrStreamUnavailable)
	assert.Equal(t, 0, n)
}

func TestExtract_ProcessFailsAfterFrames(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	runner := mocks.NewMockCommandRunner(ctrl)
	proc := mocks.NewMockProcess(ctrl)

	runner.EXPECT().Start(gomock.Any(), "ffmpeg", gomock.Any()).Return(proc, nil)
	proc.EXPECT().Stdout().Return(bytes.NewReader(rawFrames(2, 4, 2)))
	proc.EXPECT().Wait().Return(errors.New("exit status 1"))

	e := newExtractor(t, runner, ffmpeg.Config{})
	n, err := e.Extract(context.Background(), "/tmp/clip.mp4", &ffmpeg.StreamInfo{Width: 4, Height: 2}, func(f *frame.Frame) error {
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestExtract_StartFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	runner := mocks.NewMockCommandRunner(ctrl)
	runner.EXPECT().Start(gomock.Any(), "/opt/ffmpeg", gomock.Any()).Return(nil, errors.New("not found"))

	e := newExtractor(t, runner, ffmpeg.Config{FFmpegPath: "/opt/ffmpeg"})
	_, err := e.Extract(context.Background(), "/tmp/clip.mp4", &ffmpeg.StreamInfo{Width: 4, Height: 2}, func(f *frame.Frame) error {
		return nil
	})
	assert.ErrorIs(t, err, domain.ErrStreamUnavailable)
}

func TestExtract_CallbackStops(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	runner := mocks.NewMockCommandRunner(ctrl)
	proc := mocks.NewMockProcess(ctrl)

	runner.EXPECT().Start(gomock.Any(), "ffmpeg", gomock.Any()).Return(proc, nil)
	proc.EXPECT().Stdout().Return(bytes.NewReader(rawFrames(4, 4, 2)))
	proc.EXPECT().Wait().Return(nil)

	e := newExtractor(t, runner, ffmpeg.Config{})
	seen := 0
	n, err := e.Extract(context.Background(), "/tmp/clip.mp4", &ffmpeg.StreamInfo{Width: 4, Height: 2}, func(f *frame.Frame) error {
		seen++
		if seen == 2 {
			return ffmpeg.ErrStopped
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 2, seen)
}
