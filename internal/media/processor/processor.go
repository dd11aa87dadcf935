package processor

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/feral-file/ff-frame-inspector/internal/adapter"
	"github.com/feral-file/ff-frame-inspector/internal/domain"
	"github.com/feral-file/ff-frame-inspector/internal/logger"
	"github.com/feral-file/ff-frame-inspector/internal/media/classifier"
	"github.com/feral-file/ff-frame-inspector/internal/media/frame"
	"github.com/feral-file/ff-frame-inspector/internal/media/reporter"
)

// logged frame shapes per request
const diagnosticFrames = 5

// Processor defines the interface for processing media attachments
//
//go:generate mockgen -source=processor.go -destination=../../mocks/processor.go -package=mocks -mock_names=Processor=MockProcessor,Inspector=MockInspector,Reporter=MockReporter
type Processor interface {
	// Process decodes an attachment and builds the reply for it.
	// It never returns nil; faults are converted into the generic error reply.
	Process(ctx context.Context, att domain.Attachment) *Result

	// Close stops accepting work and waits for running tasks
	Close() error
}

// Inspector classifies and decodes an attachment
type Inspector interface {
	Inspect(ctx context.Context, att domain.Attachment) *classifier.Outcome
}

// Reporter builds the reply for a decoded sequence
type Reporter interface {
	Report(ctx context.Context, seq frame.Sequence) *reporter.Reply
}

// Config holds the worker pool settings
type Config struct {
	MaxWorkers   int
	MaxQueueSize int
}

// Result is the outcome of one processed attachment
type Result struct {
	RequestID string
	Kind      domain.Kind
	Reply     *reporter.Reply
	Summary   reporter.Summary
	Skipped   int
	Attempts  []classifier.Attempt
	Duration  time.Duration
	// Err is set when processing faulted rather than merely producing no frames
	Err error
}

// processor is the implementation of Processor
type processor struct {
	inspector Inspector
	reporter  Reporter
	clock     adapter.Clock
	pool      pond.ResultPool[*Result]
	closeOnce sync.Once
}

// NewProcessor creates a new Processor instance
func NewProcessor(cfg Config, inspector Inspector, rep Reporter, clock adapter.Clock) (Processor, error) {
	if cfg.MaxWorkers <= 0 {
		return nil, fmt.Errorf("max workers must be positive: %d", cfg.MaxWorkers)
	}
	if cfg.MaxQueueSize < 0 {
		return nil, fmt.Errorf("max queue size must not be negative: %d", cfg.MaxQueueSize)
	}

	pool := pond.NewResultPool[*Result](
		cfg.MaxWorkers,
		pond.WithQueueSize(cfg.MaxQueueSize),
	)

	logger.Info("Media processor initialized",
		zap.Int("max_workers", cfg.MaxWorkers),
		zap.Int("max_queue_size", cfg.MaxQueueSize),
	)

	return &processor{
		inspector: inspector,
		reporter:  rep,
		clock:     clock,
		pool:      pool,
	}, nil
}

// Process runs the attachment through the worker pool and waits for the reply
func (p *processor) Process(ctx context.Context, att domain.Attachment) *Result {
	requestID, ok := logger.RequestID(ctx)
	if !ok {
		requestID = ulid.Make().String()
		ctx = logger.WithRequestID(ctx, requestID)
	}

	task := p.pool.Submit(func() *Result {
		return p.run(ctx, requestID, att)
	})

	result, err := task.Wait()
	if err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("media processing task failed: %w", err))
		return &Result{RequestID: requestID, Reply: reporter.InternalError(), Err: err}
	}
	return result
}

func (p *processor) run(ctx context.Context, requestID string, att domain.Attachment) (result *Result) {
	start := p.clock.Now()

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("panic while processing attachment: %v", r)
			logger.ErrorCtx(ctx, err, zap.ByteString("stack", debug.Stack()))
			result = &Result{
				RequestID: requestID,
				Reply:     reporter.InternalError(),
				Duration:  p.clock.Since(start),
				Err:       err,
			}
		}
	}()

	if att == nil {
		return &Result{
			RequestID: requestID,
			Reply:     reporter.Failure(),
			Err:       fmt.Errorf("%w: nil attachment", domain.ErrUnknownAttachment),
		}
	}

	logger.InfoCtx(ctx, "Processing attachment",
		zap.Stringer("kind", att.Kind()),
		zap.Int("size", len(att.Bytes())),
	)

	outcome := p.inspector.Inspect(ctx, att)
	logFrames(ctx, outcome.Frames)

	reply := p.reporter.Report(ctx, outcome.Frames)
	result = &Result{
		RequestID: requestID,
		Kind:      att.Kind(),
		Reply:     reply,
		Summary:   reporter.Summarize(outcome.Frames),
		Skipped:   outcome.Skipped(),
		Attempts:  outcome.Attempts,
		Duration:  p.clock.Since(start),
		Err:       outcome.Err,
	}

	logger.InfoCtx(ctx, "Attachment processed",
		zap.Int("frames", result.Summary.FrameCount),
		zap.Int("skipped", result.Skipped),
		zap.Bool("photo", reply.HasPhoto()),
		zap.Duration("duration", result.Duration),
	)

	return result
}

func logFrames(ctx context.Context, seq frame.Sequence) {
	for i, f := range seq {
		if i >= diagnosticFrames {
			break
		}
		logger.DebugCtx(ctx, "Frame shape",
			zap.Int("index", i),
			zap.Int("width", f.Width()),
			zap.Int("height", f.Height()),
			zap.Int("channels", f.Channels()),
		)
	}
}

// Close stops the pool and waits for queued tasks
func (p *processor) Close() error {
	p.closeOnce.Do(func() {
		p.pool.StopAndWait()
		logger.Info("Media processor stopped")
	})
	return nil
}
