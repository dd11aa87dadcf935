package adapter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
)

// maxStderrBytes caps how much of a child's stderr is kept for error messages
const maxStderrBytes = 4096

// CommandRunner defines an interface for running external programs to enable mocking
//
//go:generate mockgen -source=command.go -destination=../mocks/command.go -package=mocks -mock_names=CommandRunner=MockCommandRunner,Process=MockProcess
type CommandRunner interface {
	// Output runs the command to completion and returns its standard output
	Output(ctx context.Context, name string, args ...string) ([]byte, error)

	// Start starts the command and returns a handle for streaming its standard output.
	// Cancelling ctx kills the process.
	Start(ctx context.Context, name string, args ...string) (Process, error)
}

// Process is a running command whose standard output is consumed incrementally
type Process interface {
	// Stdout returns the standard output stream
	Stdout() io.Reader

	// Wait waits for the process to exit and releases its resources
	Wait() error
}

// RealCommandRunner implements CommandRunner using os/exec
type RealCommandRunner struct{}

// NewCommandRunner creates a new real command runner
func NewCommandRunner() CommandRunner {
	return &RealCommandRunner{}
}

// Output runs the command and returns its standard output
func (r *RealCommandRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec,G204
	stderr := &tailBuffer{limit: maxStderrBytes}
	cmd.Stderr = stderr

	out, err := cmd.Output()
	if err != nil {
		return nil, commandError(name, err, stderr)
	}
	return out, nil
}

// Start starts the command with a pipe on its standard output
func (r *RealCommandRunner) Start(ctx context.Context, name string, args ...string) (Process, error) {
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec,G204
	stderr := &tailBuffer{limit: maxStderrBytes}
	cmd.Stderr = stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to open stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, commandError(name, err, stderr)
	}

	return &realProcess{name: name, cmd: cmd, stdout: stdout, stderr: stderr}, nil
}

type realProcess struct {
	name   string
	cmd    *exec.Cmd
	stdout io.Reader
	stderr *tailBuffer
}

func (p *realProcess) Stdout() io.Reader {
	return p.stdout
}

func (p *realProcess) Wait() error {
	if err := p.cmd.Wait(); err != nil {
		return commandError(p.name, err, p.stderr)
	}
	return nil
}

func commandError(name string, err error, stderr *tailBuffer) error {
	var exitErr *exec.ExitError
	msg := strings.TrimSpace(stderr.String())
	if errors.As(err, &exitErr) && msg != "" {
		return fmt.Errorf("%s: %w: %s", name, err, msg)
	}
	return fmt.Errorf("%s: %w", name, err)
}

// tailBuffer keeps the last limit bytes written to it
type tailBuffer struct {
	mu    sync.Mutex
	buf   bytes.Buffer
	limit int
}

func (b *tailBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := len(p)
	b.buf.Write(p)
	if over := b.buf.Len() - b.limit; over > 0 {
		b.buf.Next(over)
	}
	return n, nil
}

func (b *tailBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
