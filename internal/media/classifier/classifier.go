// Package classifier selects the decoding strategy for an attachment and runs it,
// falling back to a secondary decoder when the first yields no frames.
package classifier

import (
	"fmt"

	"github.com/feral-file/ff-frame-inspector/internal/domain"
	"github.com/feral-file/ff-frame-inspector/internal/media/decoder"
)

// Strategy names a decoder and, for video, the container hint used for the temp file
type Strategy struct {
	Decoder   decoder.Name
	Container string
}

func (s Strategy) String() string {
	if s.Container != "" {
		return fmt.Sprintf("%s(%s)", s.Decoder, s.Container)
	}
	return string(s.Decoder)
}

// Plan is the ordered list of strategies to try
type Plan struct {
	Primary  Strategy
	Fallback *Strategy
}

// Strategies returns the primary strategy followed by the fallback, if any
func (p Plan) Strategies() []Strategy {
	if p.Fallback == nil {
		return []Strategy{p.Primary}
	}
	return []Strategy{p.Primary, *p.Fallback}
}

var (
	staticStrategy        = Strategy{Decoder: decoder.NameStatic}
	gifStrategy           = Strategy{Decoder: decoder.NameGIF}
	vectorStrategy        = Strategy{Decoder: decoder.NameVector}
	rasterStickerStrategy = Strategy{Decoder: decoder.NameRasterSticker}
	svgStrategy           = Strategy{Decoder: decoder.NameSVG}
)

func videoStrategy(container string) Strategy {
	return Strategy{Decoder: decoder.NameVideo, Container: container}
}

// Classify maps an attachment and its hints to a decoding plan
func Classify(att domain.Attachment) (Plan, error) {
	switch a := att.(type) {
	case domain.Photo:
		return Plan{Primary: staticStrategy}, nil

	case domain.Document:
		ext := a.Extension()
		switch {
		case a.NormalizedMimeType() == domain.MIME_TYPE_GIF || ext == domain.EXTENSION_GIF:
			fallback := videoStrategy(domain.CONTAINER_MP4)
			return Plan{Primary: gifStrategy, Fallback: &fallback}, nil
		case ext == domain.EXTENSION_WEBP:
			return Plan{Primary: rasterStickerStrategy}, nil
		case a.NormalizedMimeType() == domain.MIME_TYPE_SVG || ext == domain.EXTENSION_SVG:
			return Plan{Primary: svgStrategy}, nil
		default:
			return Plan{Primary: staticStrategy}, nil
		}

	case domain.Video:
		return Plan{Primary: videoStrategy(domain.CONTAINER_MP4)}, nil

	case domain.Animation:
		return Plan{Primary: videoStrategy(domain.CONTAINER_MP4)}, nil

	case domain.Sticker:
		switch {
		case a.IsAnimated:
			return Plan{Primary: vectorStrategy}, nil
		case a.IsVideo:
			return Plan{Primary: videoStrategy(domain.CONTAINER_WEBM)}, nil
		default:
			return Plan{Primary: rasterStickerStrategy}, nil
		}

	case nil:
		return Plan{}, fmt.Errorf("%w: nil attachment", domain.ErrUnknownAttachment)

	default:
		return Plan{}, fmt.Errorf("%w: %T", domain.ErrUnknownAttachment, att)
	}
}
