//go:build cgo

package decoder_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-frame-inspector/internal/adapter"
	"github.com/feral-file/ff-frame-inspector/internal/media/decoder"
	"github.com/feral-file/ff-frame-inspector/internal/media/rasterizer"
)

func TestSVG_ResvgRender(t *testing.T) {
	doc := `<svg xmlns="http://www.w3.org/2000/svg" width="40" height="20" viewBox="0 0 4 2">
  <rect width="4" height="2" fill="#ff0000"/>
  <rect width="1" height="1" fill="#0000ff"/>
</svg>`

	d := decoder.NewSVG(rasterizer.NewRasterizer(adapter.NewResvgClient()), 0)
	result, err := d.Decode(context.Background(), []byte(doc))
	require.NoError(t, err)
	require.Equal(t, 1, result.Frames.Len())

	f := result.Frames.First()
	assert.Equal(t, 40, f.Width())
	assert.Equal(t, 20, f.Height())

	b, g, r := f.At(30, 15)
	assert.Equal(t, []uint8{0, 0, 255}, []uint8{b, g, r})
	b, g, r = f.At(2, 2)
	assert.Equal(t, []uint8{255, 0, 0}, []uint8{b, g, r})
}
