package adapter

import "encoding/base64"

// Base64 encodes binary payloads for JSON responses
//
//go:generate mockgen -source=encoding.go -destination=../mocks/encoding.go -package=mocks -mock_names=Base64=MockBase64
type Base64 interface {
	// Encode returns data in standard padded base64
	Encode(data []byte) string
}

// RealBase64 implements Base64 with the standard encoding
type RealBase64 struct {
	enc *base64.Encoding
}

// NewBase64 creates a standard padded base64 encoder
func NewBase64() Base64 {
	return &RealBase64{enc: base64.StdEncoding}
}

func (b *RealBase64) Encode(data []byte) string {
	return b.enc.EncodeToString(data)
}
