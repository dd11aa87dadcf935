package downloader

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.uber.org/zap"

	"github.com/feral-file/ff-frame-inspector/internal/adapter"
	"github.com/feral-file/ff-frame-inspector/internal/logger"
)

// ErrTooLarge is returned when a file exceeds the configured size cap
var ErrTooLarge = errors.New("file exceeds download limit")

// bot API file URLs embed the token as /bot<token>/ or /file/bot<token>/
var tokenPattern = regexp.MustCompile(`/bot[^/]+/`)

// Downloader defines the interface for downloading attachment bytes
//
//go:generate mockgen -source=downloader.go -destination=../mocks/downloader.go -package=mocks -mock_names=Downloader=MockDownloader
type Downloader interface {
	// Download fetches the file at url into memory, up to the configured cap
	Download(ctx context.Context, url string) ([]byte, error)
}

type downloader struct {
	httpClient adapter.HTTPClient
	clock      adapter.Clock
	maxSize    int64
}

// NewDownloader creates a downloader; maxSize <= 0 disables the cap
func NewDownloader(httpClient adapter.HTTPClient, clock adapter.Clock, maxSize int64) Downloader {
	return &downloader{
		httpClient: httpClient,
		clock:      clock,
		maxSize:    maxSize,
	}
}

// Download fetches the file at url into memory
func (d *downloader) Download(ctx context.Context, url string) ([]byte, error) {
	safeURL := RedactURL(url)
	logger.DebugCtx(ctx, "Downloading file", zap.String("url", safeURL))

	start := d.clock.Now()
	data, err := d.httpClient.GetBytes(ctx, url, d.maxSize)
	if err != nil {
		if errors.Is(err, adapter.ErrBodyTooLarge) {
			return nil, fmt.Errorf("%w: %d bytes", ErrTooLarge, d.maxSize)
		}
		return nil, fmt.Errorf("failed to download: %w", err)
	}

	logger.InfoCtx(ctx, "Download completed",
		zap.String("url", safeURL),
		zap.Int("bytes", len(data)),
		zap.Duration("elapsed", d.clock.Since(start)),
	)

	return data, nil
}

// RedactURL hides bot tokens embedded in file URLs
func RedactURL(url string) string {
	return tokenPattern.ReplaceAllString(url, "/bot<redacted>/")
}
