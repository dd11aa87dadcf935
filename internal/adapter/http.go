package adapter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/feral-file/ff-frame-inspector/internal/logger"
)

// ErrBodyTooLarge is returned when a response body exceeds the caller's limit
var ErrBodyTooLarge = errors.New("response body exceeds limit")

// HTTPClient defines an interface for HTTP client operations to enable mocking
//
//go:generate mockgen -source=http.go -destination=../mocks/http.go -package=mocks -mock_names=HTTPClient=MockHTTPClient
type HTTPClient interface {
	// GetBytes performs a GET request and returns at most limit bytes of the body.
	// A limit of zero or less disables the cap.
	GetBytes(ctx context.Context, url string, limit int64) ([]byte, error)
}

// RealHTTPClient implements HTTPClient using the standard http package
type RealHTTPClient struct {
	client *http.Client
}

// NewHTTPClient creates a new real HTTP client
func NewHTTPClient(timeout time.Duration) HTTPClient {
	return &RealHTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// GetBytes performs a GET request with exponential backoff retry for rate limiting and server errors
func (c *RealHTTPClient) GetBytes(ctx context.Context, url string, limit int64) ([]byte, error) {
	var respBody []byte

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
		}

		resp, err := c.client.Do(req)
		if err != nil {
			// Network errors are retryable
			return fmt.Errorf("failed to perform request: %w", err)
		}
		defer func() {
			if err := resp.Body.Close(); err != nil {
				logger.WarnCtx(ctx, "failed to close response body", zap.Error(err))
			}
		}()

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
			logger.WarnCtx(ctx, "transient response, retrying with backoff", zap.Int("status", resp.StatusCode))
			return fmt.Errorf("unexpected status code %d", resp.StatusCode)
		}

		if resp.StatusCode != http.StatusOK {
			return backoff.Permanent(fmt.Errorf("unexpected status code %d", resp.StatusCode))
		}

		if limit > 0 && resp.ContentLength > limit {
			return backoff.Permanent(fmt.Errorf("%w: content length %d > %d", ErrBodyTooLarge, resp.ContentLength, limit))
		}

		var reader io.Reader = resp.Body
		if limit > 0 {
			reader = io.LimitReader(resp.Body, limit+1)
		}
		body, err := io.ReadAll(reader)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to read response body: %w", err))
		}
		if limit > 0 && int64(len(body)) > limit {
			return backoff.Permanent(fmt.Errorf("%w: %d bytes", ErrBodyTooLarge, limit))
		}

		respBody = body
		return nil
	}

	// Configure exponential backoff
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 1 * time.Second
	b.MaxInterval = 10 * time.Second
	b.MaxElapsedTime = 30 * time.Second
	b.Multiplier = 2.0
	b.RandomizationFactor = 0.5

	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		return nil, fmt.Errorf("request failed after retries: %w", err)
	}

	return respBody, nil
}
