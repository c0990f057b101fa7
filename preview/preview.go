// package preview renders indicator commands as a row of terminal cells
package preview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/hujun-open/dashbook/indicator"
	colorful "github.com/lucasb-eyer/go-colorful"
)

const (
	DashRune  = '━'
	EmptyRune = ' '
)

// Strip maps a container width onto Columns terminal cells
type Strip struct {
	Columns    int
	Background indicator.ARGB
}

func NewStrip(columns int) *Strip {
	return &Strip{Columns: columns, Background: 0xFF000000}
}

// Cells returns, per column, the colour of the last command covering the column centre,
// or nil when nothing covers it
func (s *Strip) Cells(cmds []indicator.DrawCommand, width float32) []*indicator.ARGB {
	cells := make([]*indicator.ARGB, s.Columns)
	if s.Columns <= 0 || width <= 0 {
		return cells
	}
	colWidth := width / float32(s.Columns)
	for i := range cmds {
		c := cmds[i]
		for col := 0; col < s.Columns; col++ {
			x := (float32(col) + 0.5) * colWidth
			if x >= c.X0 && x < c.X1 {
				cells[col] = &cmds[i].Color
			}
		}
	}
	return cells
}

// Blend flattens an ARGB colour onto the background and returns it as #rrggbb
func (s *Strip) Blend(c indicator.ARGB) string {
	fg, _ := colorful.MakeColor(c.NRGBA())
	bg, _ := colorful.MakeColor(s.Background.NRGBA())
	alpha := float64(c.Alpha()) / 0xFF
	return bg.BlendRgb(fg, alpha).Clamped().Hex()
}

// Plain renders the strip without styling
func (s *Strip) Plain(cmds []indicator.DrawCommand, width float32) string {
	var b strings.Builder
	for _, c := range s.Cells(cmds, width) {
		if c == nil {
			b.WriteRune(EmptyRune)
		} else {
			b.WriteRune(DashRune)
		}
	}
	return b.String()
}

// Render renders the strip with every dash cell coloured
func (s *Strip) Render(cmds []indicator.DrawCommand, width float32) string {
	var b strings.Builder
	styles := make(map[indicator.ARGB]lipgloss.Style)
	for _, c := range s.Cells(cmds, width) {
		if c == nil {
			b.WriteRune(EmptyRune)
			continue
		}
		st, ok := styles[*c]
		if !ok {
			st = lipgloss.NewStyle().Foreground(lipgloss.Color(s.Blend(*c)))
			styles[*c] = st
		}
		b.WriteString(st.Render(string(DashRune)))
	}
	return b.String()
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// Table lists commands in draw order
func Table(cmds []indicator.DrawCommand) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "kind", "x0", "x1", "y", "stroke", "color").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for i, c := range cmds {
		kind := "inactive"
		if c.Active {
			kind = "active"
		}
		t.Row(
			fmt.Sprint(i),
			kind,
			fmt.Sprintf("%.2f", c.X0),
			fmt.Sprintf("%.2f", c.X1),
			fmt.Sprintf("%.2f", c.Y),
			fmt.Sprintf("%.2f", c.StrokeWidth),
			c.Color.String(),
		)
	}
	return t.Render()
}
