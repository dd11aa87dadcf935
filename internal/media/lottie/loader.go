package lottie

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/klauspost/compress/gzip"

	"github.com/feral-file/ff-frame-inspector/internal/adapter"
)

// MaxDocumentSize caps the uncompressed size of an animation document
const MaxDocumentSize = 32 << 20

// ErrDocumentTooLarge is returned when the uncompressed document exceeds MaxDocumentSize
var ErrDocumentTooLarge = errors.New("lottie document too large")

// Load reads a Lottie JSON document, transparently inflating gzip (TGS) input
func Load(r io.Reader) (*Animation, error) {
	br := bufio.NewReader(r)

	var src io.Reader = br
	if magic, err := br.Peek(2); err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("invalid gzip stream: %w", err)
		}
		defer func() {
			_ = zr.Close()
		}()
		src = zr
	}

	data, err := io.ReadAll(io.LimitReader(src, MaxDocumentSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read animation: %w", err)
	}
	if len(data) > MaxDocumentSize {
		return nil, ErrDocumentTooLarge
	}

	var anim Animation
	if err := json.Unmarshal(data, &anim); err != nil {
		return nil, fmt.Errorf("failed to parse animation: %w", err)
	}
	if err := anim.Validate(); err != nil {
		return nil, err
	}
	anim.document = data

	return &anim, nil
}

// LoadFile opens path through fs and loads the animation it contains
func LoadFile(fs adapter.FileSystem, path string) (*Animation, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open animation: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	return Load(f)
}
