// Package decoder turns the raw bytes of one media payload into a frame.Sequence.
//
// Every decoder distinguishes "valid but empty" (nil error, no frames) from
// "malformed input" (non-nil error wrapping a domain sentinel). Callers that only
// care about the frames can use Result.Sequence, which is nil-safe.
package decoder

import (
	"context"
	"fmt"

	"github.com/feral-file/ff-frame-inspector/internal/domain"
	"github.com/feral-file/ff-frame-inspector/internal/media/frame"
)

// Name identifies a decoding strategy
type Name string

const (
	NameStatic        Name = "static"
	NameGIF           Name = "gif"
	NameVideo         Name = "video"
	NameVector        Name = "vector"
	NameRasterSticker Name = "raster_sticker"
	NameSVG           Name = "svg"
)

//go:generate mockgen -source=decoder.go -destination=../../mocks/decoder.go -package=mocks -mock_names=Decoder=MockDecoder

// Decoder converts raw bytes into frames
type Decoder interface {
	// Name returns the strategy name used in logs and attempt reports
	Name() string

	// Decode decodes data into a Result
	Decode(ctx context.Context, data []byte) (*Result, error)
}

// Result is the outcome of one decode attempt
type Result struct {
	// Frames holds the decoded frames in display order
	Frames frame.Sequence

	// Skipped counts sub-frames that failed individually and were dropped
	Skipped int
}

// Sequence returns the decoded frames, or nil for a nil result
func (r *Result) Sequence() frame.Sequence {
	if r == nil {
		return nil
	}
	return r.Frames
}

// Empty reports whether the result carries no frames
func (r *Result) Empty() bool {
	return r == nil || r.Frames.Empty()
}

// pixelLimit returns limit, or the default limit when it is not positive
func pixelLimit(limit int64) int64 {
	if limit <= 0 {
		return domain.DEFAULT_MAX_DECODED_PIXELS
	}
	return limit
}

// checkPixels rejects a declared size whose area exceeds limit, before anything is allocated for it
func checkPixels(width, height int, limit int64) error {
	if int64(width)*int64(height) > limit {
		return fmt.Errorf("%w: %dx%d exceeds %d pixels", domain.ErrTooManyPixels, width, height, limit)
	}
	return nil
}
