package rest

import (
	"github.com/feral-file/ff-frame-inspector/internal/media/processor"
	"github.com/feral-file/ff-frame-inspector/internal/media/reporter"
)

// InspectResponse is the JSON body returned for a decoded upload
type InspectResponse struct {
	RequestID string `json:"request_id"`
	Kind      string `json:"kind"`
	reporter.Summary
	Skipped int    `json:"skipped"`
	Caption string `json:"caption,omitempty"`
	Message string `json:"message,omitempty"`
	// FirstFrame is the base64-encoded JPEG of the first frame
	FirstFrame     string            `json:"first_frame,omitempty"`
	FirstFrameMime string            `json:"first_frame_mime,omitempty"`
	Attempts       []AttemptResponse `json:"attempts"`
	DurationMS     int64             `json:"duration_ms"`
}

// AttemptResponse describes one decoder run
type AttemptResponse struct {
	Decoder string `json:"decoder"`
	Frames  int    `json:"frames"`
	Skipped int    `json:"skipped"`
	Error   string `json:"error,omitempty"`
}

func toInspectResponse(result *processor.Result, encode func([]byte) string, withErrors bool) InspectResponse {
	resp := InspectResponse{
		RequestID:  result.RequestID,
		Kind:       result.Kind.String(),
		Summary:    result.Summary,
		Skipped:    result.Skipped,
		Caption:    result.Reply.Caption,
		Message:    result.Reply.Text,
		Attempts:   make([]AttemptResponse, 0, len(result.Attempts)),
		DurationMS: result.Duration.Milliseconds(),
	}

	if result.Reply.HasPhoto() {
		resp.FirstFrame = encode(result.Reply.Photo)
		resp.FirstFrameMime = result.Reply.MimeType()
	}

	for _, attempt := range result.Attempts {
		a := AttemptResponse{
			Decoder: attempt.Strategy.String(),
			Frames:  attempt.Frames,
			Skipped: attempt.Skipped,
		}
		if attempt.Err != nil && withErrors {
			a.Error = attempt.Err.Error()
		}
		resp.Attempts = append(resp.Attempts, a)
	}

	return resp
}
