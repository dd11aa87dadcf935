package decoder

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/feral-file/ff-frame-inspector/internal/domain"
	"github.com/feral-file/ff-frame-inspector/internal/logger"
	"github.com/feral-file/ff-frame-inspector/internal/media/frame"
	"github.com/feral-file/ff-frame-inspector/internal/media/rasterizer"
)

// DefaultSVGSize is used for documents that declare neither a usable size nor a viewBox
const DefaultSVGSize = 100

var errNotSVG = errors.New("svg: root element is not <svg>")

// SVG rasterizes a still SVG document at its declared size
type SVG struct {
	rasterizer rasterizer.Rasterizer
	maxPixels  int64
}

// NewSVG creates an SVG document decoder. A non-positive maxPixels uses domain.DEFAULT_MAX_DECODED_PIXELS.
func NewSVG(r rasterizer.Rasterizer, maxPixels int64) *SVG {
	return &SVG{rasterizer: r, maxPixels: pixelLimit(maxPixels)}
}

func (d *SVG) Name() string {
	return string(NameSVG)
}

// Decode renders data as a single frame
func (d *SVG) Decode(ctx context.Context, data []byte) (*Result, error) {
	width, height, err := svgSize(data)
	if err != nil {
		return &Result{}, fmt.Errorf("%w: %v", domain.ErrUnsupportedFormat, err)
	}
	if err := checkPixels(width, height, d.maxPixels); err != nil {
		return &Result{}, err
	}

	img, err := d.rasterizer.Rasterize(ctx, data, width, height)
	if err != nil {
		return &Result{}, err
	}

	f, err := frame.FromImage(img)
	if err != nil {
		return &Result{}, fmt.Errorf("%w: %v", domain.ErrRenderFailed, err)
	}

	logger.DebugCtx(ctx, "rasterized svg document",
		zap.Int("width", width),
		zap.Int("height", height))

	return &Result{Frames: frame.Sequence{f}}, nil
}

// svgSize reads the root element and returns its pixel size. Width and height
// win over the viewBox; a missing dimension follows the viewBox aspect ratio.
func svgSize(data []byte) (int, int, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err != nil {
			return 0, 0, fmt.Errorf("svg: %w", err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if start.Name.Local != "svg" {
			return 0, 0, errNotSVG
		}
		return rootSize(start.Attr)
	}
}

func rootSize(attrs []xml.Attr) (int, int, error) {
	var width, height, vbWidth, vbHeight float64
	for _, a := range attrs {
		switch a.Name.Local {
		case "width":
			width = parseLength(a.Value)
		case "height":
			height = parseLength(a.Value)
		case "viewBox":
			vbWidth, vbHeight = parseViewBox(a.Value)
		}
	}

	switch {
	case width > 0 && height > 0:
	case width > 0 && vbWidth > 0 && vbHeight > 0:
		height = width * vbHeight / vbWidth
	case height > 0 && vbWidth > 0 && vbHeight > 0:
		width = height * vbWidth / vbHeight
	case vbWidth > 0 && vbHeight > 0:
		width, height = vbWidth, vbHeight
	default:
		width, height = DefaultSVGSize, DefaultSVGSize
	}

	// clamp so the int conversion cannot overflow
	w := math.Min(math.Ceil(width), math.MaxInt32)
	h := math.Min(math.Ceil(height), math.MaxInt32)
	if w < 1 || h < 1 {
		return 0, 0, fmt.Errorf("svg: invalid size %vx%v", width, height)
	}
	return int(w), int(h), nil
}

// parseLength accepts unitless and px lengths; anything else is treated as unset
func parseLength(s string) float64 {
	s = strings.TrimSuffix(strings.TrimSpace(s), "px")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func parseViewBox(s string) (float64, float64) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' || r == '\n' })
	if len(fields) != 4 {
		return 0, 0
	}
	w, errW := strconv.ParseFloat(fields[2], 64)
	h, errH := strconv.ParseFloat(fields[3], 64)
	if errW != nil || errH != nil || w <= 0 || h <= 0 || math.IsInf(w, 0) || math.IsInf(h, 0) {
		return 0, 0
	}
	return w, h
}
