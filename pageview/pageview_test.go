package pageview

import (
	"image/color"
	"strings"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/theme"
	"github.com/hujun-open/dashbook/indicator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestView(t *testing.T, n int) (*PageView, *[]int) {
	t.Helper()
	pages := make([]fyne.CanvasObject, n)
	for i := range pages {
		pages[i] = canvas.NewRectangle(color.Black)
	}
	pv := NewPageView(indicator.New(1), pages...)
	pv.SettleDuration = 0
	changed := &[]int{}
	pv.OnPageChanged = func(p int) {
		*changed = append(*changed, p)
	}
	pv.Resize(fyne.NewSize(300, 200))
	return pv, changed
}

func drag(pv *PageView, dx float32) {
	pv.Dragged(&fyne.DragEvent{Dragged: fyne.NewDelta(dx, 0)})
}

func activeCommands(cmds []indicator.DrawCommand) []indicator.DrawCommand {
	var r []indicator.DrawCommand
	for _, c := range cmds {
		if c.Active {
			r = append(r, c)
		}
	}
	return r
}

func TestPageViewLayout(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()
	pv, _ := newTestView(t, 3)
	r := test.WidgetRenderer(pv).(*pageViewRender)

	cmds := pv.Commands(pv.Size())
	lines := r.visibleLines()
	require.Len(t, lines, 4)
	require.Len(t, cmds, 4)
	for i, c := range cmds {
		assert.Equal(t, fyne.NewPos(c.X0, c.Y), lines[i].Position1)
		assert.Equal(t, fyne.NewPos(c.X1, c.Y), lines[i].Position2)
		assert.Equal(t, c.StrokeWidth, lines[i].StrokeWidth)
	}
	// the dashes sit in the band kept free below the pages
	assert.Equal(t, float32(16), pv.Insets().Bottom)
	pages := pv.pages
	assert.Equal(t, fyne.NewSize(300, 184), pages[0].Size())
	assert.Equal(t, fyne.NewPos(0, 0), pages[0].Position())
	assert.Equal(t, fyne.NewPos(300, 0), pages[1].Position())
	assert.True(t, pages[1].Visible())
	assert.Equal(t, float32(192), cmds[0].Y)
}

func TestPageViewDragBelowHalf(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()
	pv, changed := newTestView(t, 3)

	drag(pv, -90)
	assert.Equal(t, float32(-90), pv.Offset())
	assert.Equal(t, fyne.NewPos(-90, 0), pv.pages[0].Position())
	assert.Equal(t, fyne.NewPos(210, 0), pv.pages[1].Position())
	assert.Len(t, activeCommands(pv.Commands(pv.Size())), 2)

	pv.DragEnd()
	assert.Equal(t, 0, pv.Current())
	assert.Equal(t, float32(0), pv.Offset())
	assert.Empty(t, *changed)
	assert.Len(t, activeCommands(pv.Commands(pv.Size())), 1)
}

func TestPageViewDragPastHalf(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()
	pv, changed := newTestView(t, 3)

	drag(pv, -100)
	drag(pv, -100)
	pv.DragEnd()
	assert.Equal(t, 1, pv.Current())
	assert.Equal(t, float32(0), pv.Offset())
	assert.Equal(t, []int{1}, *changed)

	drag(pv, 160)
	pv.DragEnd()
	assert.Equal(t, 0, pv.Current())
	assert.Equal(t, []int{1, 0}, *changed)
}

func TestPageViewDragClamp(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()
	pv, _ := newTestView(t, 3)

	drag(pv, 50)
	assert.Equal(t, float32(0), pv.Offset(), "no page before the first one")
	drag(pv, -1000)
	assert.Equal(t, float32(-300), pv.Offset())
	pv.DragEnd()
	pv.Last()
	drag(pv, -50)
	assert.Equal(t, float32(0), pv.Offset(), "no page after the last one")
}

func TestPageViewSwitchKeepsHighlight(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()
	pv, _ := newTestView(t, 4)
	size := pv.Size()

	drag(pv, -180)
	before := activeCommands(pv.Commands(size))
	// the same picture seen from the next page, before it settles
	pv.mux.Lock()
	pv.current, pv.offset = 1, 120
	pv.mux.Unlock()
	after := activeCommands(pv.Commands(size))
	require.Len(t, before, 2)
	require.Len(t, after, 2)
	for i := range before {
		assert.InDelta(t, before[i].X0, after[i].X0, 1e-3)
		assert.InDelta(t, before[i].X1, after[i].X1, 1e-3)
	}
}

func TestPageViewKeys(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()
	pv, changed := newTestView(t, 5)

	pv.TypedKey(&fyne.KeyEvent{Name: fyne.KeyRight})
	pv.TypedKey(&fyne.KeyEvent{Name: fyne.KeySpace})
	assert.Equal(t, 2, pv.Current())
	pv.TypedKey(&fyne.KeyEvent{Name: fyne.KeyPageUp})
	assert.Equal(t, 1, pv.Current())
	pv.TypedKey(&fyne.KeyEvent{Name: fyne.KeyEnd})
	assert.Equal(t, 4, pv.Current())
	pv.TypedKey(&fyne.KeyEvent{Name: fyne.KeyRight})
	assert.Equal(t, 4, pv.Current())
	pv.TypedKey(&fyne.KeyEvent{Name: fyne.KeyHome})
	assert.Equal(t, 0, pv.Current())
	assert.Equal(t, []int{1, 2, 1, 4, 0}, *changed)

	pv.Scrolled(&fyne.ScrollEvent{Scrolled: fyne.NewDelta(0, -10)})
	assert.Equal(t, 1, pv.Current())
	pv.Scrolled(&fyne.ScrollEvent{Scrolled: fyne.NewDelta(0, 10)})
	assert.Equal(t, 0, pv.Current())
}

func TestPageViewScrolled(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()
	pv, changed := newTestView(t, 5)
	pv.SetPages(pv.pages, 2)
	*changed = nil

	pv.Scrolled(&fyne.ScrollEvent{})
	assert.Equal(t, 2, pv.Current())
	// the vertical delta wins over the horizontal one
	pv.Scrolled(&fyne.ScrollEvent{Scrolled: fyne.NewDelta(5, -3)})
	assert.Equal(t, 3, pv.Current())
	pv.Scrolled(&fyne.ScrollEvent{Scrolled: fyne.NewDelta(-5, 3)})
	assert.Equal(t, 2, pv.Current())
	pv.Scrolled(&fyne.ScrollEvent{Scrolled: fyne.NewDelta(-4, 0)})
	assert.Equal(t, 3, pv.Current())
	pv.Scrolled(&fyne.ScrollEvent{Scrolled: fyne.NewDelta(4, 0)})
	assert.Equal(t, 2, pv.Current())
	assert.Equal(t, []int{3, 2, 3, 2}, *changed)
}

func TestPageViewConfigure(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()
	pv, _ := newTestView(t, 3)
	r := test.WidgetRenderer(pv).(*pageViewRender)

	pv.Configure(func(ind *indicator.Indicator) {
		ind.SetItemCount(6).SetAppendSpaceBelow(false)
	})
	assert.Len(t, r.visibleLines(), 7)
	assert.Equal(t, float32(0), pv.Insets().Bottom)
	assert.Equal(t, fyne.NewSize(300, 200), pv.pages[0].Size())

	pv.Configure(func(ind *indicator.Indicator) {
		ind.SetItemCount(indicator.DeriveItemCount)
	})
	pv.SetPages(nil, 3)
	assert.Empty(t, r.visibleLines())
	assert.Equal(t, 0, pv.Current())
	pv.Next()
	assert.Equal(t, 0, pv.Current())
}

func TestBreakLine(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()
	size := theme.TextSize()
	unit := fyne.MeasureText(measureChar, size, fyne.TextStyle{}).Width
	line := []rune(strings.Repeat("the quick brown fox 敏捷的狐狸 ", 8))
	wid := unit * 10
	lines := breakLine(line, 7, wid, unit, size)
	require.Greater(t, len(lines), 1)
	var joined []rune
	for i, l := range lines {
		assert.Equal(t, 7, l.runeLine)
		assert.Equal(t, len(joined), l.runeLinePos)
		assert.LessOrEqual(t, fyne.MeasureText(string(l.text), size, fyne.TextStyle{}).Width, wid, "line %d", i)
		joined = append(joined, l.text...)
	}
	assert.Equal(t, string(line), string(joined))

	empty := breakLine(nil, 3, wid, unit, size)
	require.Len(t, empty, 1)
	assert.Empty(t, empty[0].text)
}

func TestTextPageLayout(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()
	tp := NewTextPage("Chapter 1", []string{"first line", "", strings.Repeat("long line ", 40)})
	tp.Resize(fyne.NewSize(400, 600))
	r := test.WidgetRenderer(tp).(*textPageRender)
	require.Greater(t, len(r.lineList), 3)
	assert.Equal(t, "first line", string(r.lineList[0].text))
	assert.Equal(t, 2, r.lineList[len(r.lineList)-1].runeLine)

	// title plus one line
	h := 2*float32(DefaultVerticalPadding) + 2*r.unitSize.Height + 1
	tp.Resize(fyne.NewSize(400, h))
	assert.Len(t, r.lineList, 1)
}

func TestTextPagePaddingOptions(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()
	tp := NewTextPage("Chapter 1", []string{"first line"},
		WithSidePadding(50), WithVerticalPadding(30), WithLineVerticalPadding(0))
	tp.Resize(fyne.NewSize(400, 600))
	r := test.WidgetRenderer(tp).(*textPageRender)
	objs := r.overallContainer.Objects
	require.Len(t, objs, 2)
	assert.Equal(t, fyne.NewPos(50, 30), objs[0].Position())
	assert.Equal(t, fyne.NewPos(50, 30+r.unitSize.Height), objs[1].Position())
}

func (r *pageViewRender) visibleLines() []*canvas.Line {
	var ls []*canvas.Line
	for _, l := range r.lines {
		if l.Visible() {
			ls = append(ls, l)
		}
	}
	return ls
}
