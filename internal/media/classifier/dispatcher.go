package classifier

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/feral-file/ff-frame-inspector/internal/domain"
	"github.com/feral-file/ff-frame-inspector/internal/logger"
	"github.com/feral-file/ff-frame-inspector/internal/media/decoder"
	"github.com/feral-file/ff-frame-inspector/internal/media/frame"
)

//go:generate mockgen -source=dispatcher.go -destination=../../mocks/video_decoder.go -package=mocks -mock_names=VideoDecoder=MockVideoDecoder

// VideoDecoder decodes video bytes for a given container hint
type VideoDecoder interface {
	Container(ext string) decoder.Decoder
}

// Decoders is the set of strategies the dispatcher can run
type Decoders struct {
	Static        decoder.Decoder
	GIF           decoder.Decoder
	Video         VideoDecoder
	Vector        decoder.Decoder
	RasterSticker decoder.Decoder
	SVG           decoder.Decoder
}

// Attempt records one decoder run
type Attempt struct {
	Strategy Strategy
	Frames   int
	Skipped  int
	Err      error
}

// Outcome is the full result of classifying and decoding one attachment
type Outcome struct {
	Kind     domain.Kind
	Plan     Plan
	Frames   frame.Sequence
	Attempts []Attempt
	// Err is set when the attachment could not be classified
	Err error
}

// Skipped returns the number of sub-frames dropped by the successful attempt
func (o *Outcome) Skipped() int {
	if len(o.Attempts) == 0 {
		return 0
	}
	return o.Attempts[len(o.Attempts)-1].Skipped
}

// Dispatcher classifies attachments and runs the selected decoders
type Dispatcher struct {
	decoders Decoders
}

// NewDispatcher creates a dispatcher over the given decoders
func NewDispatcher(decoders Decoders) *Dispatcher {
	return &Dispatcher{decoders: decoders}
}

// Inspect runs the plan for att, moving to the fallback only when the primary yields no frames.
// Decoder errors are recorded per attempt and never returned.
func (d *Dispatcher) Inspect(ctx context.Context, att domain.Attachment) *Outcome {
	plan, err := Classify(att)
	if err != nil {
		logger.WarnCtx(ctx, "unable to classify attachment", zap.Error(err))
		return &Outcome{Err: err}
	}

	outcome := &Outcome{Kind: att.Kind(), Plan: plan}
	data := att.Bytes()

	for _, strategy := range plan.Strategies() {
		attempt := d.run(ctx, strategy, data)
		outcome.Attempts = append(outcome.Attempts, attempt.Attempt)

		if attempt.Err != nil {
			logger.DebugCtx(ctx, "decoder returned no frames",
				zap.Stringer("strategy", strategy),
				zap.Error(attempt.Err))
		}

		if !attempt.result.Empty() {
			outcome.Frames = attempt.result.Frames
			break
		}
	}

	logger.InfoCtx(ctx, "attachment decoded",
		zap.Stringer("kind", outcome.Kind),
		zap.Int("attempts", len(outcome.Attempts)),
		zap.Int("frames", outcome.Frames.Len()),
		zap.Int("skipped", outcome.Skipped()))

	return outcome
}

// Decode returns the decoded frames for att; failures collapse to an empty sequence
func (d *Dispatcher) Decode(ctx context.Context, att domain.Attachment) frame.Sequence {
	return d.Inspect(ctx, att).Frames
}

type runResult struct {
	Attempt
	result *decoder.Result
}

func (d *Dispatcher) run(ctx context.Context, strategy Strategy, data []byte) runResult {
	out := runResult{Attempt: Attempt{Strategy: strategy}}

	dec, err := d.decoderFor(strategy)
	if err != nil {
		out.Err = err
		return out
	}

	result, err := dec.Decode(ctx, data)
	out.result = result
	out.Err = err
	if result != nil {
		out.Frames = result.Frames.Len()
		out.Skipped = result.Skipped
	}
	return out
}

func (d *Dispatcher) decoderFor(s Strategy) (decoder.Decoder, error) {
	var dec decoder.Decoder
	switch s.Decoder {
	case decoder.NameStatic:
		dec = d.decoders.Static
	case decoder.NameGIF:
		dec = d.decoders.GIF
	case decoder.NameVector:
		dec = d.decoders.Vector
	case decoder.NameRasterSticker:
		dec = d.decoders.RasterSticker
	case decoder.NameSVG:
		dec = d.decoders.SVG
	case decoder.NameVideo:
		if d.decoders.Video != nil {
			container := s.Container
			if container == "" {
				container = decoder.DefaultContainer
			}
			dec = d.decoders.Video.Container(container)
		}
	}

	if dec == nil {
		return nil, fmt.Errorf("%w: no decoder configured for %s", domain.ErrUnsupportedFormat, s)
	}
	return dec, nil
}
