package pageview

import (
	"fmt"
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const measureChar = "我"

const (
	DefaultSidePadding         = 20
	DefaultVerticalPadding     = 10
	DefaultLineVerticalPadding = 2
)

// input val is a single line of rune, return number of chars n
// so that val[txtpos:txtpos+n] fits in width wid;
// unitWid is the avg single char widwth;
func lineChars(val []rune, txtpos int, wid, unitWid float32, textSize float32) int {
	amount := int(wid / unitWid)
	if amount < 1 {
		amount = 1
	}
	lineLen := len(val)
	if txtpos >= lineLen || txtpos < 0 {
		return 0
	}
	for {
		if txtpos+amount > lineLen {
			amount = lineLen - txtpos
		}
		tsize := fyne.MeasureText(string(val[txtpos:txtpos+amount]), textSize, fyne.TextStyle{})
		if tsize.Width > wid {
			if amount == 1 {
				// a single char wider than the page still takes a line
				return 1
			}
			amount--
		} else {
			if wid-tsize.Width < unitWid {
				return amount
			}
			amount++
			if txtpos+amount > lineLen {
				return lineLen - txtpos
			}
		}
	}
}

// breakLine break a single line into a list of lines,
// so that each line fit into width wid
func breakLine(line []rune, lineid int, wid, unitWid, textSize float32) (lines []*renderLine) {
	if len(line) == 0 {
		return []*renderLine{{text: []rune{}, runeLine: lineid}}
	}
	lastpos := 0
	for {
		step := lineChars(line, lastpos, wid, unitWid, textSize)
		if step == 0 {
			break
		}
		lines = append(lines, &renderLine{
			text:        line[lastpos : lastpos+step],
			runeLine:    lineid,
			runeLinePos: lastpos,
		})
		lastpos += step
	}
	return
}

type renderLine struct {
	text                  []rune
	runeLine, runeLinePos int //runeLinePos is the pos of first rune
}

func (rl renderLine) String() string {
	return fmt.Sprintf("line %d, pos %d", rl.runeLine, rl.runeLinePos)
}

// TextPage shows a title and lines of text, wrapped to its width;
// text that does not fit is cut at the bottom
type TextPage struct {
	widget.BaseWidget
	valMux              *sync.RWMutex
	title               string
	lines               [][]rune
	underline           bool
	sidePadding         float32
	verticalPadding     float32
	lineVerticalPadding float32
}

type TextPageOption func(tp *TextPage)

func WithSidePadding(p float32) TextPageOption {
	return func(tp *TextPage) {
		tp.sidePadding = p
	}
}

func WithVerticalPadding(p float32) TextPageOption {
	return func(tp *TextPage) {
		tp.verticalPadding = p
	}
}

func WithLineVerticalPadding(p float32) TextPageOption {
	return func(tp *TextPage) {
		tp.lineVerticalPadding = p
	}
}

func WithUnderline(u bool) TextPageOption {
	return func(tp *TextPage) {
		tp.underline = u
	}
}

func NewTextPage(title string, lines []string, options ...TextPageOption) *TextPage {
	tp := &TextPage{
		valMux:              new(sync.RWMutex),
		title:               title,
		sidePadding:         DefaultSidePadding,
		verticalPadding:     DefaultVerticalPadding,
		lineVerticalPadding: DefaultLineVerticalPadding,
	}
	for _, l := range lines {
		tp.lines = append(tp.lines, []rune(l))
	}
	for _, o := range options {
		o(tp)
	}
	tp.ExtendBaseWidget(tp)
	return tp
}

func (tp *TextPage) SetUnderline(u bool) {
	tp.valMux.Lock()
	tp.underline = u
	tp.valMux.Unlock()
	tp.Refresh()
}

func (tp *TextPage) CreateRenderer() fyne.WidgetRenderer {
	tp.ExtendBaseWidget(tp)
	return &textPageRender{tp: tp, overallContainer: fyne.NewContainerWithoutLayout()}
}

type textPageRender struct {
	tp               *TextPage
	overallContainer *fyne.Container
	// lineList is the on-page broken lines
	lineList []*renderLine
	unitSize fyne.Size
}

func (r *textPageRender) calUnitSize() fyne.Size {
	fontSize := fyne.MeasureText(measureChar, theme.TextSize(), fyne.TextStyle{})
	r.unitSize = fontSize
	r.unitSize.Height += 2*r.tp.lineVerticalPadding + 1
	return fontSize
}

func (r *textPageRender) Layout(size fyne.Size) {
	tp := r.tp
	tp.valMux.RLock()
	defer tp.valMux.RUnlock()
	fsize := r.calUnitSize()
	r.overallContainer = fyne.NewContainerWithoutLayout()
	r.lineList = nil
	working := fyne.NewSize(size.Width-2*tp.sidePadding, size.Height-2*tp.verticalPadding)
	if working.Width <= 0 || working.Height <= 0 || r.unitSize.Width <= 0 {
		return
	}
	allowed := int(working.Height / r.unitSize.Height)
	lineY := func(n int) float32 {
		return tp.verticalPadding + float32(n)*r.unitSize.Height + tp.lineVerticalPadding
	}
	n := 0
	if tp.title != "" && allowed > 0 {
		t := canvas.NewText(tp.title, theme.PrimaryColor())
		t.TextStyle = fyne.TextStyle{Bold: true}
		t.Move(fyne.NewPos(tp.sidePadding, lineY(n)))
		r.overallContainer.Add(t)
		n++
	}
L1:
	for i, line := range tp.lines {
		for _, bl := range breakLine(line, i, working.Width, r.unitSize.Width, theme.TextSize()) {
			if n >= allowed {
				break L1
			}
			pos := fyne.NewPos(tp.sidePadding, lineY(n))
			t := canvas.NewText(string(bl.text), theme.ForegroundColor())
			t.Move(pos)
			r.overallContainer.Add(t)
			if tp.underline {
				u := canvas.NewLine(theme.ForegroundColor())
				u.Position1 = fyne.NewPos(pos.X, pos.Y+fsize.Height+tp.lineVerticalPadding)
				u.Position2 = fyne.NewPos(pos.X+working.Width, u.Position1.Y)
				r.overallContainer.Add(u)
			}
			r.lineList = append(r.lineList, bl)
			n++
		}
	}
}

func (r *textPageRender) BackgroundColor() color.Color {
	return color.Transparent
}

func (r *textPageRender) Destroy() {
}

func (r *textPageRender) MinSize() fyne.Size {
	r.calUnitSize()
	return fyne.NewSize(r.unitSize.Width*20, (r.unitSize.Height+theme.Padding())*10)
}

func (r *textPageRender) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.overallContainer}
}

func (r *textPageRender) Refresh() {
	r.Layout(r.tp.Size())
	canvas.Refresh(r.tp)
}
