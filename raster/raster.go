// package raster draws indicator commands onto an in-memory image,
// used to export frames without a display
package raster

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/hujun-open/dashbook/indicator"
	"golang.org/x/image/vector"
)

// cubic bezier control distance for a quarter circle
const kappa = 0.5522848

type Canvas struct {
	*image.RGBA
	background color.Color
}

func NewCanvas(w, h int, background color.Color) *Canvas {
	c := &Canvas{
		RGBA:       image.NewRGBA(image.Rect(0, 0, w, h)),
		background: background,
	}
	c.Clear()
	return c
}

func (c *Canvas) Clear() {
	draw.Draw(c.RGBA, c.Bounds(), image.NewUniform(c.background), image.Point{}, draw.Src)
}

// DrawLine draws a horizontal line with round caps
func (c *Canvas) DrawLine(cmd indicator.DrawCommand) {
	if cmd.X1 < cmd.X0 || cmd.StrokeWidth <= 0 {
		return
	}
	w, h := c.Bounds().Dx(), c.Bounds().Dy()
	z := vector.NewRasterizer(w, h)
	r := cmd.StrokeWidth / 2
	k := kappa * r
	x0, x1, y := cmd.X0, cmd.X1, cmd.Y
	z.MoveTo(x0, y-r)
	z.LineTo(x1, y-r)
	z.CubeTo(x1+k, y-r, x1+r, y-k, x1+r, y)
	z.CubeTo(x1+r, y+k, x1+k, y+r, x1, y+r)
	z.LineTo(x0, y+r)
	z.CubeTo(x0-k, y+r, x0-r, y+k, x0-r, y)
	z.CubeTo(x0-r, y-k, x0-k, y-r, x0, y-r)
	z.ClosePath()
	z.Draw(c.RGBA, c.Bounds(), image.NewUniform(cmd.Color), image.Point{})
}

// Draw paints cmds in order, later commands over earlier ones
func (c *Canvas) Draw(cmds []indicator.DrawCommand) {
	for _, cmd := range cmds {
		c.DrawLine(cmd)
	}
}

func (c *Canvas) EncodePNG(w io.Writer) error {
	return png.Encode(w, c.RGBA)
}

// DragFrames renders the indicator while the active page is dragged from rest
// to a full page towards the next (forward) or previous page, frames >= 2
func DragFrames(ind *indicator.Indicator, itemCount, active int, w, h int, forward bool, frames int, background color.Color) []*Canvas {
	if frames < 2 {
		frames = 2
	}
	r := make([]*Canvas, 0, frames)
	width := float32(w)
	for i := 0; i < frames; i++ {
		offset := width * float32(i) / float32(frames-1)
		if forward {
			offset = -offset
		}
		c := NewCanvas(w, h, background)
		c.Draw(ind.Render(indicator.Frame{
			ActiveIndex: active,
			ItemCount:   itemCount,
			Width:       width,
			Height:      float32(h),
			ActiveItem:  &indicator.ItemBounds{Left: offset, Width: width},
		}))
		r = append(r, c)
	}
	return r
}
