package raster

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/hujun-open/dashbook/indicator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanvasDrawsSettledRow(t *testing.T) {
	ind := indicator.New(1)
	// dashes at [22,38] [42,58] [62,78], centerline y=22
	c := NewCanvas(100, 30, color.Black)
	c.Draw(ind.Render(indicator.Frame{
		ActiveIndex: 0, ItemCount: 3, Width: 100, Height: 30,
		ActiveItem: &indicator.ItemBounds{Width: 100},
	}))

	active := c.RGBAAt(30, 22)
	assert.Equal(t, uint8(0xFF), active.R)
	assert.Equal(t, uint8(0xFF), active.A)

	inactive := c.RGBAAt(50, 22)
	assert.InDelta(t, 0x66, int(inactive.R), 2)

	gap := c.RGBAAt(40, 22)
	assert.Less(t, gap.R, inactive.R)

	assert.Equal(t, color.RGBA{A: 0xFF}, c.RGBAAt(50, 5))
}

func TestDragFrames(t *testing.T) {
	ind := indicator.New(1)
	frames := DragFrames(ind, 3, 0, 100, 30, true, 5, color.Black)
	require.Len(t, frames, 5)

	// at rest the first dash is lit, after a full page the second one is
	assert.Equal(t, uint8(0xFF), frames[0].RGBAAt(30, 22).R)
	assert.Equal(t, uint8(0xFF), frames[4].RGBAAt(50, 22).R)
	assert.InDelta(t, 0x66, int(frames[4].RGBAAt(30, 22).R), 2)
}

func TestEncodePNG(t *testing.T) {
	c := NewCanvas(20, 10, color.White)
	var buf bytes.Buffer
	require.NoError(t, c.EncodePNG(&buf))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, c.Bounds(), img.Bounds())
}
