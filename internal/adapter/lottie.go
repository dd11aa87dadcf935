package adapter

import "errors"

// ErrLottieInvalid is returned when the engine cannot parse an animation document
var ErrLottieInvalid = errors.New("lottie engine rejected the animation")

// LottieEngine defines an interface for loading Lottie animations into a native renderer
//
//go:generate mockgen -source=lottie.go -destination=../mocks/lottie.go -package=mocks -mock_names=LottieEngine=MockLottieEngine,LottiePlayer=MockLottiePlayer
type LottieEngine interface {
	// Load parses an uncompressed Lottie JSON document
	Load(data []byte) (LottiePlayer, error)
}

// LottiePlayer renders the frames of one loaded animation
type LottiePlayer interface {
	// TotalFrames returns the number of frames the engine will render
	TotalFrames() int

	// Render draws frame into buf as premultiplied BGRA with a stride of width*4.
	// buf must hold at least width*height*4 bytes.
	Render(frame, width, height int, buf []byte)

	// Close releases the native animation
	Close()
}
