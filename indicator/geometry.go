package indicator

import (
	"fmt"
	"math"
)

// DrawCommand is one horizontal line from (X0,Y) to (X1,Y)
type DrawCommand struct {
	X0, X1, Y   float32
	StrokeWidth float32
	Color       ARGB
	// Active is true for highlight segments
	Active bool
}

func (dc DrawCommand) Length() float32 {
	return dc.X1 - dc.X0
}

func (dc DrawCommand) String() string {
	kind := "inactive"
	if dc.Active {
		kind = "active"
	}
	return fmt.Sprintf("%v [%.2f, %.2f] y=%.2f w=%.2f %v", kind, dc.X0, dc.X1, dc.Y, dc.StrokeWidth, dc.Color)
}

// Geometry is the layout of the dash row for one draw pass
type Geometry struct {
	ItemCount     int
	SegmentLength float32
	StartX        float32
	PosY          float32
	// Stride is the distance between the left edges of two neighbouring dashes
	Stride float32
}

func (g Geometry) Empty() bool {
	return g.ItemCount <= 0
}

// TotalWidth is the width of all dashes plus the paddings between them
func (g Geometry) TotalWidth() float32 {
	if g.Empty() {
		return 0
	}
	return g.Stride*float32(g.ItemCount) - (g.Stride - g.SegmentLength)
}

// SlotStart returns the left edge of dash i
func (g Geometry) SlotStart(i int) float32 {
	return g.StartX + g.Stride*float32(i)
}

// ComputeLayout positions itemCount dashes centered in a width x height container.
// With MatchContainerWidth the configured segment length is replaced, for this pass only,
// by the length that makes the row fill the container with one padding on each side.
func ComputeLayout(style Style, itemCount int, width, height float32) Geometry {
	if itemCount <= 0 || itemCount > MaxItemCount {
		return Geometry{}
	}
	n := float32(itemCount)
	pad := style.SegmentPadding
	if !finite(pad) || pad < 0 {
		pad = 0
	}
	paddingBetweenItems := float32(itemCount-1) * pad
	segLen := style.SegmentLength
	if style.MatchContainerWidth {
		segLen = (width - paddingBetweenItems - 2*pad) / n
	}
	if !finite(segLen) || segLen < 0 {
		segLen = 0
	}
	totalWidth := segLen*n + paddingBetweenItems
	startX := (width - totalWidth) / 2
	if !finite(startX) {
		startX = 0
	}
	var posY float32
	if style.Alignment == AlignBottom {
		posY = height - style.BandHeight/2
	} else {
		posY = style.BandHeight / 2
	}
	return Geometry{
		ItemCount:     itemCount,
		SegmentLength: segLen,
		StartX:        startX,
		PosY:          posY,
		Stride:        segLen + pad,
	}
}

// DrawInactive returns one inactive dash per item, left to right
func DrawInactive(g Geometry, style Style) []DrawCommand {
	if g.Empty() || g.ItemCount > MaxItemCount || g.SegmentLength <= 0 || !(style.StrokeWidth > 0) {
		return nil
	}
	cmds := make([]DrawCommand, 0, g.ItemCount)
	for i := 0; i < g.ItemCount; i++ {
		start := g.SlotStart(i)
		cmds = append(cmds, DrawCommand{
			X0:          start,
			X1:          start + g.SegmentLength,
			Y:           g.PosY,
			StrokeWidth: style.StrokeWidth,
			Color:       style.InactiveColor,
		})
	}
	return cmds
}

func finite(f float32) bool {
	return !math.IsNaN(float64(f)) && !math.IsInf(float64(f), 0)
}
