package decoder_test

import (
	"context"
	"errors"
	"image"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-frame-inspector/internal/domain"
	"github.com/feral-file/ff-frame-inspector/internal/media/decoder"
	"github.com/feral-file/ff-frame-inspector/internal/media/rasterizer"
	"github.com/feral-file/ff-frame-inspector/internal/mocks"
)

func TestSVG_Decode(t *testing.T) {
	tests := []struct {
		name   string
		doc    string
		width  int
		height int
	}{
		{
			name:   "width and height",
			doc:    `<svg xmlns="http://www.w3.org/2000/svg" width="30" height="20"/>`,
			width:  30,
			height: 20,
		},
		{
			name:   "px units",
			doc:    `<svg xmlns="http://www.w3.org/2000/svg" width="30px" height="20.5px"/>`,
			width:  30,
			height: 21,
		},
		{
			name:   "viewBox only",
			doc:    `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 64 48"><rect width="64" height="48"/></svg>`,
			width:  64,
			height: 48,
		},
		{
			name:   "width follows viewBox ratio",
			doc:    `<svg xmlns="http://www.w3.org/2000/svg" width="50" viewBox="0,0,100,50"/>`,
			width:  50,
			height: 25,
		},
		{
			name:   "percentages fall back to viewBox",
			doc:    `<svg xmlns="http://www.w3.org/2000/svg" width="100%" height="100%" viewBox="0 0 12 8"/>`,
			width:  12,
			height: 8,
		},
		{
			name:   "no size",
			doc:    `<?xml version="1.0"?><!-- logo --><svg xmlns="http://www.w3.org/2000/svg"/>`,
			width:  decoder.DefaultSVGSize,
			height: decoder.DefaultSVGSize,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			resvg := mocks.NewMockResvgClient(ctrl)
			resvg.EXPECT().
				Render([]byte(tt.doc), tt.width).
				Return(image.NewRGBA(image.Rect(0, 0, tt.width, tt.height)), nil)

			d := decoder.NewSVG(rasterizer.NewRasterizer(resvg), 0)
			assert.Equal(t, "svg", d.Name())

			result, err := d.Decode(context.Background(), []byte(tt.doc))
			require.NoError(t, err)
			require.Equal(t, 1, result.Frames.Len())
			assert.Equal(t, tt.width, result.Frames.First().Width())
			assert.Equal(t, tt.height, result.Frames.First().Height())
		})
	}
}

func TestSVG_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "not xml", doc: "definitely not an image"},
		{name: "other root", doc: `<html><svg width="1" height="1"/></html>`},
		{name: "empty", doc: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			d := decoder.NewSVG(rasterizer.NewRasterizer(mocks.NewMockResvgClient(ctrl)), 0)
			result, err := d.Decode(context.Background(), []byte(tt.doc))
			assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
			assert.True(t, result.Empty())
		})
	}
}

func TestSVG_TooManyPixels(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	d := decoder.NewSVG(rasterizer.NewRasterizer(mocks.NewMockResvgClient(ctrl)), 0)
	result, err := d.Decode(context.Background(), []byte(`<svg width="100000" height="100000"/>`))
	assert.ErrorIs(t, err, domain.ErrTooManyPixels)
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
	assert.True(t, result.Empty())

	_, err = decoder.NewSVG(rasterizer.NewRasterizer(mocks.NewMockResvgClient(ctrl)), 99).
		Decode(context.Background(), []byte(`<svg width="10" height="10"/>`))
	assert.ErrorIs(t, err, domain.ErrTooManyPixels)
}

func TestSVG_RenderFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	resvg := mocks.NewMockResvgClient(ctrl)
	resvg.EXPECT().Render(gomock.Any(), 10).Return(nil, errors.New("bad path data"))

	result, err := decoder.NewSVG(rasterizer.NewRasterizer(resvg), 0).
		Decode(context.Background(), []byte(`<svg width="10" height="10"><path d="M"/></svg>`))
	assert.ErrorIs(t, err, domain.ErrRenderFailed)
	assert.True(t, result.Empty())
}
