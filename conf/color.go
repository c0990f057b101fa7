package conf

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hujun-open/dashbook/indicator"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// ParseARGB accepts #AARRGGBB, or #RRGGBB as fully opaque
func ParseARGB(s string) (indicator.ARGB, error) {
	s = strings.TrimSpace(s)
	alpha := uint64(0xFF)
	switch len(s) {
	case 9:
		a, err := strconv.ParseUint(s[1:3], 16, 8)
		if err != nil || s[0] != '#' {
			return 0, fmt.Errorf("invalid colour %q", s)
		}
		alpha = a
		s = "#" + s[3:]
	case 7:
	default:
		return 0, fmt.Errorf("invalid colour %q, want #AARRGGBB or #RRGGBB", s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return 0, fmt.Errorf("invalid colour %q, %w", s, err)
	}
	r, g, b := c.RGB255()
	return indicator.ARGB(uint32(alpha)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b)), nil
}

func FormatARGB(c indicator.ARGB) string {
	n := c.NRGBA()
	hex := colorful.Color{R: float64(n.R) / 255, G: float64(n.G) / 255, B: float64(n.B) / 255}.Hex()
	return fmt.Sprintf("#%02x%s", n.A, hex[1:])
}
