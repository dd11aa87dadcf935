// Package lottie loads Lottie animations and gzip-compressed TGS stickers and
// renders their frames through a native Lottie engine.
package lottie

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidAnimation is returned when an animation is missing required fields
var ErrInvalidAnimation = errors.New("invalid lottie animation")

// Animation is a parsed Lottie document header plus the raw document.
// Layers are left to the engine.
type Animation struct {
	Version   string  `json:"v"`
	Name      string  `json:"nm"`
	FrameRate float64 `json:"fr"`
	InPoint   float64 `json:"ip"`
	OutPoint  float64 `json:"op"`
	Width     float64 `json:"w"`
	Height    float64 `json:"h"`

	document []byte
}

// Validate checks the fields needed to size and time the animation
func (a *Animation) Validate() error {
	if a.Width <= 0 || a.Height <= 0 {
		return fmt.Errorf("%w: size %vx%v", ErrInvalidAnimation, a.Width, a.Height)
	}
	if a.OutPoint <= a.InPoint {
		return fmt.Errorf("%w: out point %v not after in point %v", ErrInvalidAnimation, a.OutPoint, a.InPoint)
	}
	return nil
}

// Size returns the intrinsic size in pixels
func (a *Animation) Size() (int, int) {
	return int(math.Round(a.Width)), int(math.Round(a.Height))
}

// Document returns the uncompressed JSON document
func (a *Animation) Document() []byte {
	return a.document
}
