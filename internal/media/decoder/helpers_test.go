package decoder_test

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"image"
	"image/color"
	"image/gif"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-frame-inspector/internal/logger"
)

func init() {
	_ = logger.Initialize(logger.Config{Debug: true})
}

var gifPalette = color.Palette{
	color.RGBA{A: 255},
	color.RGBA{R: 255, A: 255},
	color.RGBA{G: 255, A: 255},
	color.RGBA{B: 255, A: 255},
	color.RGBA{R: 255, G: 255, B: 255, A: 255},
}

// makeGIF encodes n full-size frames; frame i is filled with palette entry i%4+1
func makeGIF(t *testing.T, n, width, height int) []byte {
	t.Helper()
	anim := &gif.GIF{}
	for i := 0; i < n; i++ {
		img := image.NewPaletted(image.Rect(0, 0, width, height), gifPalette)
		idx := uint8(i%4 + 1)
		for p := range img.Pix {
			img.Pix[p] = idx
		}
		anim.Image = append(anim.Image, img)
		anim.Delay = append(anim.Delay, 10)
	}
	var buf bytes.Buffer
	require.NoError(t, gif.EncodeAll(&buf, anim))
	return buf.Bytes()
}

func mustBase64(s string) []byte {
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return data
}

var (
	webpLossless = mustBase64("UklGRhoAAABXRUJQVlA4TA0AAAAvAAAAEAcQERGIiP4HAA==")
	webpLossy    = mustBase64("UklGRiIAAABXRUJQVlA4IBYAAAAwAQCdASoBAAEADsD+JaQAA3AAAAAA")
	webpAlpha    = mustBase64("UklGRkoAAABXRUJQVlA4WAoAAAAQAAAAAAAAAAAAQUxQSAwAAAARBxAR/Q9ERP8DAABWUDggGAAAABQBAJ0BKgEAAQAAAP4AAA3AAP7mtQAAAA==")
	webpAnimated = mustBase64("UklGRlIAAABXRUJQVlA4WAoAAAASAAAAAAAAAAAAQU5JTQYAAAD/////AABBTk1GJgAAAAAAAAAAAAAAAAAAAGQAAABWUDhMDQAAAC8AAAAQBxAREYiI/gcA")

	// 1x1 bitstreams taken from the images above
	vp8lPayload     = []byte{0x2f, 0x00, 0x00, 0x00, 0x10, 0x07, 0x10, 0x11, 0x11, 0x88, 0x88, 0xfe, 0x07}
	alphPayload     = []byte{0x11, 0x07, 0x10, 0x11, 0xfd, 0x0f, 0x44, 0x44, 0xff, 0x03, 0x00, 0x00}
	vp8AlphaPayload = []byte{
		0x14, 0x01, 0x00, 0x9d, 0x01, 0x2a, 0x01, 0x00, 0x01, 0x00, 0x00, 0x00,
		0xfe, 0x00, 0x00, 0x0d, 0xc0, 0x00, 0xfe, 0xe6, 0xb5, 0x00, 0x00, 0x00,
	}
)

func chunk(fourCC string, payload []byte) []byte {
	out := []byte(fourCC)
	out = binary.LittleEndian.AppendUint32(out, uint32(len(payload)))
	out = append(out, payload...)
	if len(payload)%2 == 1 {
		out = append(out, 0)
	}
	return out
}

func riff(chunks ...[]byte) []byte {
	var body []byte
	for _, c := range chunks {
		body = append(body, c...)
	}
	out := []byte("RIFF")
	out = binary.LittleEndian.AppendUint32(out, uint32(4+len(body)))
	out = append(out, "WEBP"...)
	return append(out, body...)
}

func uint24(v int) []byte {
	return []byte{byte(v), byte(v >> 8), byte(v >> 16)}
}

func vp8x(flags byte, width, height int) []byte {
	out := []byte{flags, 0, 0, 0}
	out = append(out, uint24(width-1)...)
	return append(out, uint24(height-1)...)
}

func anmf(x, y, width, height int, frameChunks ...[]byte) []byte {
	var out []byte
	out = append(out, uint24(x/2)...)
	out = append(out, uint24(y/2)...)
	out = append(out, uint24(width-1)...)
	out = append(out, uint24(height-1)...)
	out = append(out, uint24(100)...)
	out = append(out, 0)
	for _, c := range frameChunks {
		out = append(out, c...)
	}
	return out
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}
