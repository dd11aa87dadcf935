//go:build !cgo

package adapter

import (
	"errors"
	"image"
)

// ErrResvgUnavailable is returned when the binary was built without cgo
var ErrResvgUnavailable = errors.New("resvg requires cgo")

// ResvgClient defines an interface for SVG rendering using resvg
type ResvgClient interface {
	// Render renders SVG data to an image with specified width (0 = use SVG natural size)
	Render(data []byte, width int) (image.Image, error)
}

// RealResvgClient is a placeholder that always fails without cgo
type RealResvgClient struct{}

// NewResvgClient creates a resvg client that reports ErrResvgUnavailable
func NewResvgClient() ResvgClient {
	return &RealResvgClient{}
}

// Render always returns ErrResvgUnavailable
func (c *RealResvgClient) Render(data []byte, width int) (image.Image, error) {
	return nil, ErrResvgUnavailable
}
