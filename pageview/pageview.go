// package pageview is a fyne widget showing one page at a time, paged horizontally
// by dragging or with the keyboard, with a dash indicator for the pages
package pageview

import (
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/hujun-open/dashbook/indicator"
)

const DefaultSettleDuration = 200 * time.Millisecond

type PageView struct {
	widget.BaseWidget
	mux *sync.RWMutex
	// following fields are guarded by mux
	pages   []fyne.CanvasObject
	current int
	// offset is the left offset of the current page from its rest position
	offset float32
	ind    *indicator.Indicator
	anim   *fyne.Animation

	// SettleDuration is how long a page takes to slide into place, 0 jumps directly
	SettleDuration time.Duration
	OnPageChanged  func(page int)
	keyEvtHandler  func(evt *fyne.KeyEvent)
}

func NewPageView(ind *indicator.Indicator, pages ...fyne.CanvasObject) *PageView {
	if ind == nil {
		ind = indicator.New(1)
	}
	pv := &PageView{
		mux:            new(sync.RWMutex),
		pages:          pages,
		ind:            ind,
		SettleDuration: DefaultSettleDuration,
	}
	// the indicator only asks while mux is held
	ind.SetItemSource(indicator.ItemCountFunc(func() int {
		return len(pv.pages)
	}))
	pv.ExtendBaseWidget(pv)
	return pv
}

func (pv *PageView) CreateRenderer() fyne.WidgetRenderer {
	pv.ExtendBaseWidget(pv)
	return newPageViewRender(pv)
}

func (pv *PageView) SetPages(pages []fyne.CanvasObject, current int) {
	pv.mux.Lock()
	pv.stopAnimation()
	pv.pages = pages
	pv.current = clampPage(current, len(pages))
	pv.offset = 0
	pv.mux.Unlock()
	pv.Refresh()
}

func clampPage(i, n int) int {
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

func (pv *PageView) Pages() []fyne.CanvasObject {
	pv.mux.RLock()
	defer pv.mux.RUnlock()
	return append([]fyne.CanvasObject(nil), pv.pages...)
}

func (pv *PageView) ItemCount() int {
	pv.mux.RLock()
	defer pv.mux.RUnlock()
	return len(pv.pages)
}

func (pv *PageView) Current() int {
	pv.mux.RLock()
	defer pv.mux.RUnlock()
	return pv.current
}

func (pv *PageView) Offset() float32 {
	pv.mux.RLock()
	defer pv.mux.RUnlock()
	return pv.offset
}

// Configure runs f on the indicator between two draws
func (pv *PageView) Configure(f func(ind *indicator.Indicator)) {
	pv.mux.Lock()
	f(pv.ind)
	pv.mux.Unlock()
	pv.Refresh()
}

// frame must be called with mux held
func (pv *PageView) frame(size fyne.Size) indicator.Frame {
	f := indicator.Frame{
		ActiveIndex: indicator.NoPosition,
		ItemCount:   indicator.DeriveItemCount,
		Width:       size.Width,
		Height:      size.Height,
	}
	if len(pv.pages) > 0 {
		f.ActiveIndex = pv.current
		if size.Width > 0 {
			f.ActiveItem = &indicator.ItemBounds{Left: pv.offset, Width: size.Width}
		}
	}
	return f
}

// Commands returns the indicator draw commands for the current state at size
func (pv *PageView) Commands(size fyne.Size) []indicator.DrawCommand {
	pv.mux.RLock()
	defer pv.mux.RUnlock()
	return pv.ind.Render(pv.frame(size))
}

// Insets returns the space kept free below the pages
func (pv *PageView) Insets() indicator.Insets {
	pv.mux.RLock()
	defer pv.mux.RUnlock()
	return pv.ind.Insets()
}

// stopAnimation must be called with mux held
func (pv *PageView) stopAnimation() {
	if pv.anim != nil {
		pv.anim.Stop()
		pv.anim = nil
	}
}

// settle slides the current page from its offset back to rest
func (pv *PageView) settle() {
	pv.mux.Lock()
	pv.stopAnimation()
	start := pv.offset
	if pv.SettleDuration <= 0 || start == 0 {
		pv.offset = 0
		pv.mux.Unlock()
		pv.Refresh()
		return
	}
	var anim *fyne.Animation
	anim = fyne.NewAnimation(pv.SettleDuration, func(p float32) {
		pv.mux.Lock()
		if pv.anim != anim {
			pv.mux.Unlock()
			return
		}
		pv.offset = start * (1 - p)
		if p >= 1 {
			pv.anim = nil
		}
		pv.mux.Unlock()
		pv.Refresh()
	})
	pv.anim = anim
	pv.mux.Unlock()
	anim.Start()
}

// moveTo makes page the current one, keeping it where it is on screen
// so that settle slides it in
func (pv *PageView) moveTo(page int) {
	pv.mux.Lock()
	n := len(pv.pages)
	if n == 0 {
		pv.mux.Unlock()
		return
	}
	page = clampPage(page, n)
	changed := page != pv.current
	if changed {
		w := pv.Size().Width
		pv.offset += float32(page-pv.current) * w
		pv.current = page
	}
	pv.mux.Unlock()
	pv.settle()
	if changed && pv.OnPageChanged != nil {
		pv.OnPageChanged(page)
	}
}

func (pv *PageView) SetCurrent(page int) {
	pv.moveTo(page)
}
func (pv *PageView) Next() {
	pv.moveTo(pv.Current() + 1)
}
func (pv *PageView) Prev() {
	pv.moveTo(pv.Current() - 1)
}
func (pv *PageView) First() {
	pv.moveTo(0)
}
func (pv *PageView) Last() {
	pv.moveTo(pv.ItemCount() - 1)
}

// Dragged moves the current page with the pointer, never past the first or last page
func (pv *PageView) Dragged(evt *fyne.DragEvent) {
	pv.mux.Lock()
	pv.stopAnimation()
	w := pv.Size().Width
	off := pv.offset + evt.Dragged.DX
	if off < -w {
		off = -w
	}
	if off > w {
		off = w
	}
	if pv.current == 0 && off > 0 {
		off = 0
	}
	if pv.current >= len(pv.pages)-1 && off < 0 {
		off = 0
	}
	pv.offset = off
	pv.mux.Unlock()
	pv.Refresh()
}

// DragEnd switches to the neighbour page once the drag passed half a page
func (pv *PageView) DragEnd() {
	pv.mux.RLock()
	half := pv.Size().Width / 2
	off, cur := pv.offset, pv.current
	pv.mux.RUnlock()
	switch {
	case half > 0 && off <= -half:
		pv.moveTo(cur + 1)
	case half > 0 && off >= half:
		pv.moveTo(cur - 1)
	default:
		pv.settle()
	}
}

func (pv *PageView) TypedKey(evt *fyne.KeyEvent) {
	switch evt.Name {
	case fyne.KeyRight, fyne.KeyPageDown, fyne.KeySpace:
		pv.Next()
	case fyne.KeyLeft, fyne.KeyPageUp:
		pv.Prev()
	case fyne.KeyHome:
		pv.First()
	case fyne.KeyEnd:
		pv.Last()
	default:
		if pv.keyEvtHandler != nil {
			pv.keyEvtHandler(evt)
		}
	}
}

// SetKeyEvtHandler sets h to receive the keys PageView does not use itself
func (pv *PageView) SetKeyEvtHandler(h func(evt *fyne.KeyEvent)) {
	pv.keyEvtHandler = h
}

func (pv *PageView) TypedRune(c rune) {
}
func (pv *PageView) FocusGained() {
}
func (pv *PageView) FocusLost() {
}

// Scrolled turns the page by the vertical delta, or the horizontal one when there is none
func (pv *PageView) Scrolled(evt *fyne.ScrollEvent) {
	d := evt.Scrolled.DY
	if d == 0 {
		d = evt.Scrolled.DX
	}
	switch {
	case d < 0:
		pv.Next()
	case d > 0:
		pv.Prev()
	}
}

type pageViewRender struct {
	pv      *PageView
	lines   []*canvas.Line
	objects []fyne.CanvasObject
}

func newPageViewRender(pv *PageView) *pageViewRender {
	return &pageViewRender{pv: pv}
}

func (r *pageViewRender) Layout(size fyne.Size) {
	pv := r.pv
	pv.mux.RLock()
	insets := pv.ind.Insets()
	pageSize := fyne.NewSize(size.Width, size.Height-insets.Bottom)
	objects := make([]fyne.CanvasObject, 0, len(pv.pages)+len(r.lines))
	for i, p := range pv.pages {
		objects = append(objects, p)
		// only the current page and its neighbours can be on screen
		if i < pv.current-1 || i > pv.current+1 {
			p.Hide()
			continue
		}
		p.Resize(pageSize)
		p.Move(fyne.NewPos(pv.offset+float32(i-pv.current)*size.Width, 0))
		p.Show()
	}
	cmds := pv.ind.Render(pv.frame(size))
	pv.mux.RUnlock()

	for len(r.lines) < len(cmds) {
		r.lines = append(r.lines, canvas.NewLine(nil))
	}
	for i, l := range r.lines {
		if i >= len(cmds) {
			l.Hide()
			continue
		}
		c := cmds[i]
		l.StrokeColor = c.Color
		l.StrokeWidth = c.StrokeWidth
		l.Position1 = fyne.NewPos(c.X0, c.Y)
		l.Position2 = fyne.NewPos(c.X1, c.Y)
		l.Show()
		l.Refresh()
	}
	for _, l := range r.lines {
		objects = append(objects, l)
	}
	r.objects = objects
}

func (r *pageViewRender) Destroy() {
}

func (r *pageViewRender) MinSize() fyne.Size {
	r.pv.mux.RLock()
	defer r.pv.mux.RUnlock()
	min := fyne.NewSize(0, 0)
	for _, p := range r.pv.pages {
		min = min.Max(p.MinSize())
	}
	min.Height += r.pv.ind.Insets().Bottom
	return min
}

func (r *pageViewRender) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *pageViewRender) Refresh() {
	r.Layout(r.pv.Size())
	canvas.Refresh(r.pv)
}
