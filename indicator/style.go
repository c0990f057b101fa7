// package indicator computes the dash row drawn over a horizontally paged view,
// one dash per page, with a highlight that follows the active page while it is dragged.
package indicator

import (
	"fmt"
	"image/color"
)

// ARGB is a colour packed as 0xAARRGGBB
type ARGB uint32

// RGBA implements color.Color
func (c ARGB) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

func (c ARGB) NRGBA() color.NRGBA {
	return color.NRGBA{
		A: uint8(c >> 24),
		R: uint8(c >> 16),
		G: uint8(c >> 8),
		B: uint8(c),
	}
}

func (c ARGB) Alpha() uint8 {
	return uint8(c >> 24)
}

func (c ARGB) String() string {
	return fmt.Sprintf("#%08X", uint32(c))
}

type Alignment int

const (
	AlignBottom Alignment = iota
	AlignTop
)

func (a Alignment) String() string {
	switch a {
	case AlignBottom:
		return "bottom"
	case AlignTop:
		return "top"
	}
	return "unknown"
}

// ParseAlignment accepts "top" or "bottom"
func ParseAlignment(s string) (Alignment, error) {
	switch s {
	case "bottom", "":
		return AlignBottom, nil
	case "top":
		return AlignTop, nil
	}
	return AlignBottom, fmt.Errorf("unknown alignment %q", s)
}

// default sizes in dp, multiplied by the display density
const (
	DefaultBandHeight    = 16
	DefaultStrokeWidth   = 2
	DefaultSegmentLength = 16
	DefaultItemPadding   = 4
)

const (
	DefaultActiveColor   ARGB = 0xFFFFFFFF
	DefaultInactiveColor ARGB = 0x66FFFFFF
)

// Style is everything a draw pass needs besides the per-frame input
type Style struct {
	SegmentLength       float32
	SegmentPadding      float32
	StrokeWidth         float32
	BandHeight          float32
	ActiveColor         ARGB
	InactiveColor       ARGB
	Alignment           Alignment
	MatchContainerWidth bool
}

// DefaultStyle returns the default style scaled by density;
// the band height is truncated to whole pixels.
func DefaultStyle(density float32) Style {
	if density <= 0 {
		density = 1
	}
	return Style{
		SegmentLength:  DefaultSegmentLength * density,
		SegmentPadding: DefaultItemPadding * density,
		StrokeWidth:    DefaultStrokeWidth * density,
		BandHeight:     float32(int(DefaultBandHeight * density)),
		ActiveColor:    DefaultActiveColor,
		InactiveColor:  DefaultInactiveColor,
		Alignment:      AlignBottom,
	}
}
