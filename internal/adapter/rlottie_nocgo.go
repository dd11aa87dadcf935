//go:build !cgo

package adapter

import "errors"

// ErrLottieUnavailable is returned when the binary was built without cgo
var ErrLottieUnavailable = errors.New("rlottie requires cgo")

// RealLottieEngine is a placeholder that always fails without cgo
type RealLottieEngine struct{}

// NewLottieEngine creates an engine that reports ErrLottieUnavailable
func NewLottieEngine() LottieEngine {
	return &RealLottieEngine{}
}

// Load always returns ErrLottieUnavailable
func (e *RealLottieEngine) Load(data []byte) (LottiePlayer, error) {
	return nil, ErrLottieUnavailable
}
