// Package frame defines the canonical raster frame produced by every decoder.
//
// Pixels are stored as packed 8-bit BGR triplets, row-major, without padding.
// All conversions into that layout happen in this package so decoders never
// write channel order by themselves.
package frame

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// Channels is the number of channels in a canonical frame
const Channels = 3

// ChannelOrder describes the byte order of a pixel
type ChannelOrder int

const (
	OrderBGR ChannelOrder = iota
	OrderRGB
)

func (o ChannelOrder) String() string {
	switch o {
	case OrderBGR:
		return "BGR"
	case OrderRGB:
		return "RGB"
	default:
		return "unknown"
	}
}

var (
	// ErrInvalidDimensions is returned when width or height is not positive
	ErrInvalidDimensions = errors.New("frame dimensions must be positive")

	// ErrInvalidLength is returned when the pixel buffer does not match the dimensions
	ErrInvalidLength = errors.New("pixel buffer length does not match dimensions")
)

// Frame is an immutable decoded bitmap in canonical BGR order
type Frame struct {
	width  int
	height int
	pix    []byte
}

// New creates a frame from pixels in the given channel order.
// The buffer is copied; RGB input is swapped into canonical BGR.
func New(width, height int, order ChannelOrder, pix []byte) (*Frame, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if len(pix) != width*height*Channels {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidLength, len(pix), width*height*Channels)
	}

	out := make([]byte, len(pix))
	switch order {
	case OrderBGR:
		copy(out, pix)
	case OrderRGB:
		for i := 0; i < len(pix); i += Channels {
			out[i], out[i+1], out[i+2] = pix[i+2], pix[i+1], pix[i]
		}
	default:
		return nil, fmt.Errorf("unsupported channel order: %d", order)
	}

	return &Frame{width: width, height: height, pix: out}, nil
}

// FromRGBA creates a frame from a 4-channel RGBA buffer, discarding alpha
func FromRGBA(width, height, stride int, pix []byte) (*Frame, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if stride < width*4 || len(pix) < stride*(height-1)+width*4 {
		return nil, fmt.Errorf("%w: got %d bytes for %dx%d with stride %d", ErrInvalidLength, len(pix), width, height, stride)
	}

	out := make([]byte, width*height*Channels)
	for y := 0; y < height; y++ {
		src := pix[y*stride : y*stride+width*4]
		dst := out[y*width*Channels : (y+1)*width*Channels]
		for x := 0; x < width; x++ {
			dst[x*3], dst[x*3+1], dst[x*3+2] = src[x*4+2], src[x*4+1], src[x*4]
		}
	}

	return &Frame{width: width, height: height, pix: out}, nil
}

// FromBGRA creates a frame from a 4-channel BGRA buffer, discarding alpha.
// Premultiplied input keeps its stored values, so transparent pixels become black.
func FromBGRA(width, height, stride int, pix []byte) (*Frame, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if stride < width*4 || len(pix) < stride*(height-1)+width*4 {
		return nil, fmt.Errorf("%w: got %d bytes for %dx%d with stride %d", ErrInvalidLength, len(pix), width, height, stride)
	}

	out := make([]byte, width*height*Channels)
	for y := 0; y < height; y++ {
		src := pix[y*stride : y*stride+width*4]
		dst := out[y*width*Channels : (y+1)*width*Channels]
		for x := 0; x < width; x++ {
			copy(dst[x*3:x*3+3], src[x*4:x*4+3])
		}
	}

	return &Frame{width: width, height: height, pix: out}, nil
}

// FromImage converts any image into a canonical frame, discarding alpha.
// Non-premultiplied sources keep their stored colour values.
func FromImage(img image.Image) (*Frame, error) {
	if img == nil {
		return nil, errors.New("image is nil")
	}
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}

	switch src := img.(type) {
	case *image.RGBA:
		return FromRGBA(width, height, src.Stride, src.Pix[src.PixOffset(b.Min.X, b.Min.Y):])
	case *image.NRGBA:
		return FromRGBA(width, height, src.Stride, src.Pix[src.PixOffset(b.Min.X, b.Min.Y):])
	}

	out := make([]byte, width*height*Channels)
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			out[i], out[i+1], out[i+2] = c.B, c.G, c.R
			i += Channels
		}
	}

	return &Frame{width: width, height: height, pix: out}, nil
}

// Width returns the frame width in pixels
func (f *Frame) Width() int {
	return f.width
}

// Height returns the frame height in pixels
func (f *Frame) Height() int {
	return f.height
}

// Channels returns the number of channels per pixel
func (f *Frame) Channels() int {
	return Channels
}

// Order returns the channel order of Pix
func (f *Frame) Order() ChannelOrder {
	return OrderBGR
}

// Pix returns a copy of the BGR pixel buffer
func (f *Frame) Pix() []byte {
	out := make([]byte, len(f.pix))
	copy(out, f.pix)
	return out
}

// At returns the blue, green and red components at (x, y)
func (f *Frame) At(x, y int) (b, g, r uint8) {
	i := (y*f.width + x) * Channels
	return f.pix[i], f.pix[i+1], f.pix[i+2]
}

// Image returns an opaque RGBA copy of the frame for encoders
func (f *Frame) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.width, f.height))
	for i, j := 0, 0; i < len(f.pix); i, j = i+Channels, j+4 {
		img.Pix[j], img.Pix[j+1], img.Pix[j+2], img.Pix[j+3] = f.pix[i+2], f.pix[i+1], f.pix[i], 0xff
	}
	return img
}

// String returns the frame shape as height x width x channels
func (f *Frame) String() string {
	return fmt.Sprintf("(%d, %d, %d)", f.height, f.width, Channels)
}
