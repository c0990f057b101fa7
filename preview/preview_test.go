package preview

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/hujun-open/dashbook/indicator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func settled() []indicator.DrawCommand {
	return indicator.New(1).Render(indicator.Frame{
		ActiveIndex: 1, ItemCount: 3, Width: 100, Height: 30,
		ActiveItem: &indicator.ItemBounds{Width: 100},
	})
}

func TestPlain(t *testing.T) {
	s := NewStrip(50)
	out := s.Plain(settled(), 100)
	require.Equal(t, 50, utf8.RuneCountInString(out))
	assert.Equal(t, 24, strings.Count(out, string(DashRune)))
	assert.True(t, strings.HasPrefix(out, strings.Repeat(" ", 11)))
}

func TestCellsLastCommandWins(t *testing.T) {
	s := NewStrip(50)
	cells := s.Cells(settled(), 100)
	require.NotNil(t, cells[11])
	assert.Equal(t, indicator.DefaultInactiveColor, *cells[11])
	require.NotNil(t, cells[21])
	assert.Equal(t, indicator.DefaultActiveColor, *cells[21])
	assert.Nil(t, cells[19])
}

func TestCellsDegenerate(t *testing.T) {
	s := NewStrip(10)
	cells := s.Cells(settled(), 0)
	assert.Len(t, cells, 10)
	for _, c := range cells {
		assert.Nil(t, c)
	}
}

func TestBlend(t *testing.T) {
	s := NewStrip(10)
	assert.Equal(t, "#666666", s.Blend(0x66FFFFFF))
	assert.Equal(t, "#ffffff", s.Blend(0xFFFFFFFF))
}

func TestTable(t *testing.T) {
	out := Table(settled())
	assert.Contains(t, out, "inactive")
	assert.Contains(t, out, "active")
	assert.Contains(t, out, "#66FFFFFF")
	assert.Contains(t, out, "22.00")
}
