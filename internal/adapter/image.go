package adapter

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"strings"
)

// ImageFormat names a still image encoding used for replies
type ImageFormat string

const (
	ImageFormatJPEG ImageFormat = "jpeg"
	ImageFormatPNG  ImageFormat = "png"
)

// ParseImageFormat parses a format name or file extension such as "png" or ".jpg"
func ParseImageFormat(s string) (ImageFormat, error) {
	switch strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), ".") {
	case "jpeg", "jpg":
		return ImageFormatJPEG, nil
	case "png":
		return ImageFormatPNG, nil
	default:
		return "", fmt.Errorf("unsupported image format %q", s)
	}
}

// MimeType returns the media type of the format
func (f ImageFormat) MimeType() string {
	if f == ImageFormatPNG {
		return "image/png"
	}
	return "image/jpeg"
}

// Extension returns the file extension of the format, including the dot
func (f ImageFormat) Extension() string {
	if f == ImageFormatPNG {
		return ".png"
	}
	return ".jpg"
}

// ImageEncoder encodes frames for transport
//
//go:generate mockgen -source=image.go -destination=../mocks/image.go -package=mocks -mock_names=ImageEncoder=MockImageEncoder
type ImageEncoder interface {
	// EncodePNG encodes img losslessly
	EncodePNG(w io.Writer, img image.Image) error
	// EncodeJPEG encodes img at quality 1..100
	EncodeJPEG(w io.Writer, img image.Image, quality int) error
}

// RealImageEncoder implements ImageEncoder with the standard codecs
type RealImageEncoder struct {
	png png.Encoder
}

// NewImageEncoder creates a new real image encoder
func NewImageEncoder() ImageEncoder {
	return &RealImageEncoder{png: png.Encoder{CompressionLevel: png.BestSpeed}}
}

func (e *RealImageEncoder) EncodePNG(w io.Writer, img image.Image) error {
	return e.png.Encode(w, img)
}

func (e *RealImageEncoder) EncodeJPEG(w io.Writer, img image.Image, quality int) error {
	return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
}
