// Package tempfile materializes in-memory payloads as short-lived files for
// decoders that can only read from a path.
package tempfile

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/feral-file/ff-frame-inspector/internal/adapter"
	"github.com/feral-file/ff-frame-inspector/internal/domain"
	"github.com/feral-file/ff-frame-inspector/internal/logger"
)

// Prefix is prepended to every temporary file name
const Prefix = "ff-frames-"

// Manager creates scoped temporary files
type Manager struct {
	fs  adapter.FileSystem
	dir string
}

// NewManager creates a manager writing into dir, or the system temp dir when dir is empty
func NewManager(fs adapter.FileSystem, dir string) *Manager {
	if dir == "" {
		dir = fs.TempDir()
	}
	return &Manager{fs: fs, dir: dir}
}

// Dir returns the directory temporary files are created in
func (m *Manager) Dir() string {
	return m.dir
}

// With writes data to a fresh file ending in ext, calls fn with its path and
// removes the file afterwards, including when fn panics.
func (m *Manager) With(ctx context.Context, ext string, data []byte, fn func(path string) error) error {
	path := filepath.Join(m.dir, Prefix+uuid.NewString()+ext)

	f, err := m.fs.CreateNew(path)
	if err != nil {
		return fmt.Errorf("%w: failed to create temp file: %v", domain.ErrResourceAcquisition, err)
	}
	defer m.remove(ctx, path)

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("%w: failed to write temp file: %v", domain.ErrResourceAcquisition, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: failed to close temp file: %v", domain.ErrResourceAcquisition, err)
	}

	logger.DebugCtx(ctx, "created temp file", zap.String("path", path), zap.Int("size", len(data)))

	return fn(path)
}

func (m *Manager) remove(ctx context.Context, path string) {
	if err := m.fs.Remove(path); err != nil {
		logger.WarnCtx(ctx, "failed to remove temp file", zap.String("path", path), zap.Error(err))
		return
	}
	logger.DebugCtx(ctx, "removed temp file", zap.String("path", path))
}
