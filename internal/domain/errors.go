package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedFormat is returned when the bytes do not match the container a decoder expects
	ErrUnsupportedFormat = errors.New("unsupported media format")

	// ErrStreamUnavailable is returned when a video container cannot be opened as a stream
	ErrStreamUnavailable = errors.New("video stream unavailable")

	// ErrResourceAcquisition is returned when a scoped temp file cannot be created or written
	ErrResourceAcquisition = errors.New("failed to acquire temporary resource")

	// ErrRenderFailed is returned when a vector animation frame cannot be rendered
	ErrRenderFailed = errors.New("failed to render animation frame")

	// ErrEncodeFailed is returned when a frame cannot be encoded for transport
	ErrEncodeFailed = errors.New("failed to encode frame")

	// ErrUnknownAttachment is returned when an attachment variant has no decode plan
	ErrUnknownAttachment = errors.New("unknown attachment variant")

	// ErrTooManyPixels is returned when a declared image size exceeds the decode limit.
	// It wraps ErrUnsupportedFormat.
	ErrTooManyPixels = fmt.Errorf("%w: image exceeds maximum pixel count", ErrUnsupportedFormat)
)
