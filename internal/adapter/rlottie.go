//go:build cgo

package adapter

import (
	"sync"

	rlottie "github.com/Benau/go_rlottie"
)

// RealLottieEngine implements LottieEngine using rlottie
type RealLottieEngine struct{}

// NewLottieEngine creates a new rlottie-backed engine
func NewLottieEngine() LottieEngine {
	return &RealLottieEngine{}
}

// Load parses data without caching the model
func (e *RealLottieEngine) Load(data []byte) (LottiePlayer, error) {
	anim := rlottie.LottieAnimationFromData(string(data), "", "")
	if anim == nil {
		return nil, ErrLottieInvalid
	}
	return &rlottiePlayer{anim: anim}, nil
}

type rlottiePlayer struct {
	anim rlottie.Lottie_Animation
	once sync.Once
}

func (p *rlottiePlayer) TotalFrames() int {
	return int(rlottie.LottieAnimationGetTotalframe(p.anim))
}

func (p *rlottiePlayer) Render(frame, width, height int, buf []byte) {
	rlottie.LottieAnimationRender(p.anim, uint(frame), buf, uint(width), uint(height), uint(width*4))
}

func (p *rlottiePlayer) Close() {
	p.once.Do(func() {
		rlottie.LottieAnimationDestroy(p.anim)
	})
}
