// Package reporter turns a decoded frame sequence into the reply sent back to the user.
package reporter

import (
	"bytes"
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/feral-file/ff-frame-inspector/internal/adapter"
	"github.com/feral-file/ff-frame-inspector/internal/domain"
	"github.com/feral-file/ff-frame-inspector/internal/logger"
	"github.com/feral-file/ff-frame-inspector/internal/media/frame"
)

const (
	DEFAULT_JPEG_QUALITY = 90

	TextProcessFailed = "Could not process the media file"
	TextInternalError = "An error occurred while processing the file"
)

// Reply is either a photo with a caption or a plain text message
type Reply struct {
	// Photo holds the encoded first frame; nil for text replies
	Photo   []byte
	Format  adapter.ImageFormat
	Caption string
	Text    string
}

// HasPhoto reports whether the reply carries an image
func (r *Reply) HasPhoto() bool {
	return r != nil && len(r.Photo) > 0
}

// MimeType returns the media type of Photo
func (r *Reply) MimeType() string {
	return r.Format.MimeType()
}

// FileName returns the upload name for Photo
func (r *Reply) FileName() string {
	return "frame" + r.Format.Extension()
}

// Summary describes a decoded sequence for JSON consumers
type Summary struct {
	FrameCount int `json:"frame_count"`
	Width      int `json:"width"`
	Height     int `json:"height"`
}

// Summarize returns the sequence summary; dimensions come from the first frame
func Summarize(seq frame.Sequence) Summary {
	s := Summary{FrameCount: seq.Len()}
	if first := seq.First(); first != nil {
		s.Width = first.Width()
		s.Height = first.Height()
	}
	return s
}

// Caption formats the success caption for a summary
func Caption(s Summary) string {
	return fmt.Sprintf("Processed %d frames\nSize: %dx%d", s.FrameCount, s.Width, s.Height)
}

// EncodeFailedText formats the reply used when the first frame cannot be encoded
func EncodeFailedText(frameCount int) string {
	return fmt.Sprintf("Processed %d frames, but could not send the result", frameCount)
}

// Reporter builds replies from frame sequences
type Reporter struct {
	encoder adapter.ImageEncoder
	format  adapter.ImageFormat
	quality int
}

// New creates a JPEG reporter; a quality outside 1..100 falls back to DEFAULT_JPEG_QUALITY
func New(encoder adapter.ImageEncoder, quality int) *Reporter {
	return NewWithFormat(encoder, adapter.ImageFormatJPEG, quality)
}

// NewWithFormat creates a reporter encoding the first frame as format.
// An unknown format falls back to JPEG; quality only applies to JPEG.
func NewWithFormat(encoder adapter.ImageEncoder, format adapter.ImageFormat, quality int) *Reporter {
	if format != adapter.ImageFormatPNG {
		format = adapter.ImageFormatJPEG
	}
	if quality < 1 || quality > 100 {
		quality = DEFAULT_JPEG_QUALITY
	}
	return &Reporter{encoder: encoder, format: format, quality: quality}
}

// Format returns the encoding used for photos
func (r *Reporter) Format() adapter.ImageFormat {
	return r.format
}

// Report builds the reply for seq
func (r *Reporter) Report(ctx context.Context, seq frame.Sequence) *Reply {
	if seq.Empty() {
		return Failure()
	}

	summary := Summarize(seq)
	photo, err := r.EncodeFirst(seq)
	if err != nil {
		logger.WarnCtx(ctx, "unable to encode first frame",
			zap.Int("frames", summary.FrameCount),
			zap.Error(err))
		return &Reply{Text: EncodeFailedText(summary.FrameCount)}
	}

	return &Reply{Photo: photo, Format: r.format, Caption: Caption(summary)}
}

// EncodeFirst encodes the first frame of seq in the reporter's format
func (r *Reporter) EncodeFirst(seq frame.Sequence) ([]byte, error) {
	first := seq.First()
	if first == nil {
		return nil, fmt.Errorf("%w: empty sequence", domain.ErrEncodeFailed)
	}

	var buf bytes.Buffer
	var err error
	switch r.format {
	case adapter.ImageFormatPNG:
		err = r.encoder.EncodePNG(&buf, first.Image())
	default:
		err = r.encoder.EncodeJPEG(&buf, first.Image(), r.quality)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrEncodeFailed, err)
	}
	return buf.Bytes(), nil
}

// Failure is the reply for an attachment that produced no frames
func Failure() *Reply {
	return &Reply{Text: TextProcessFailed}
}

// InternalError is the reply for an unexpected fault
func InternalError() *Reply {
	return &Reply{Text: TextInternalError}
}
