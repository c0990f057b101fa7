package indicator

// ItemSource supplies the item count when no explicit count is set
type ItemSource interface {
	ItemCount() int
}

// ItemCountFunc adapts a function to ItemSource
type ItemCountFunc func() int

func (f ItemCountFunc) ItemCount() int {
	return f()
}

// ItemBounds is the horizontal placement of the active page's view
type ItemBounds struct {
	// Left is the offset from the rest position, 0 when settled
	Left  float32
	Width float32
}

const (
	// NoPosition marks a missing active index
	NoPosition = -1
	// DeriveItemCount asks the indicator to use its ItemSource
	DeriveItemCount = -1
	// MaxItemCount is the largest count drawn, larger counts draw nothing
	MaxItemCount = 1 << 16
)

// Frame is what the host knows about the paged view at draw time
type Frame struct {
	ActiveIndex int
	ItemCount   int
	Width       float32
	Height      float32
	// ActiveItem is nil when the host could not resolve the active page's view
	ActiveItem *ItemBounds
}

// Insets is the space reserved around each item of the paged view
type Insets struct {
	Top, Bottom float32
}

// Indicator holds the configuration between draw passes.
// It is not safe for concurrent use; setters take effect on the next Render.
type Indicator struct {
	style            Style
	density          float32
	appendSpaceBelow bool
	itemCount        int
	source           ItemSource
}

// New returns an indicator with the default style for the given display density
func New(density float32) *Indicator {
	if density <= 0 {
		density = 1
	}
	return &Indicator{
		style:     DefaultStyle(density),
		density:   density,
		itemCount: DeriveItemCount,
	}
}

func (ind *Indicator) Density() float32 {
	return ind.density
}

func (ind *Indicator) Style() Style {
	return ind.style
}

// SetStyle replaces the whole style
func (ind *Indicator) SetStyle(s Style) *Indicator {
	ind.style = s
	return ind
}

// AppendSpaceBelow reserves the band height below every item
func (ind *Indicator) AppendSpaceBelow() *Indicator {
	ind.appendSpaceBelow = true
	return ind
}

func (ind *Indicator) SetAppendSpaceBelow(on bool) *Indicator {
	ind.appendSpaceBelow = on
	return ind
}

func (ind *Indicator) SetActiveColor(c ARGB) *Indicator {
	ind.style.ActiveColor = c
	return ind
}

func (ind *Indicator) SetInactiveColor(c ARGB) *Indicator {
	ind.style.InactiveColor = c
	return ind
}

// SetStrokeWidth ignores widths that are not positive
func (ind *Indicator) SetStrokeWidth(w float32) *Indicator {
	if w > 0 && finite(w) {
		ind.style.StrokeWidth = w
	}
	return ind
}

// SetItemPadding clamps negative paddings to 0
func (ind *Indicator) SetItemPadding(p float32) *Indicator {
	if !(p > 0) || !finite(p) {
		p = 0
	}
	ind.style.SegmentPadding = p
	return ind
}

func (ind *Indicator) SetSegmentLength(l float32) *Indicator {
	ind.style.SegmentLength = l
	return ind
}

func (ind *Indicator) SetBandHeight(h float32) *Indicator {
	ind.style.BandHeight = h
	return ind
}

func (ind *Indicator) Align(a Alignment) *Indicator {
	ind.style.Alignment = a
	return ind
}

// MatchContainerWidth stretches the dashes so the row fills the container
func (ind *Indicator) MatchContainerWidth() *Indicator {
	ind.style.MatchContainerWidth = true
	return ind
}

func (ind *Indicator) SetMatchContainerWidth(on bool) *Indicator {
	ind.style.MatchContainerWidth = on
	return ind
}

// SetItemCount overrides the item count; DeriveItemCount restores the default
func (ind *Indicator) SetItemCount(count int) *Indicator {
	ind.itemCount = count
	return ind
}

func (ind *Indicator) SetItemSource(src ItemSource) *Indicator {
	ind.source = src
	return ind
}

// ResolveItemCount picks, in order, the explicit count, the frame's count, the item source.
// A count above MaxItemCount resolves to 0.
func (ind *Indicator) ResolveItemCount(f Frame) int {
	n := 0
	switch {
	case ind.itemCount >= 0:
		n = ind.itemCount
	case f.ItemCount >= 0:
		n = f.ItemCount
	case ind.source != nil:
		n = ind.source.ItemCount()
	}
	if n < 0 || n > MaxItemCount {
		return 0
	}
	return n
}

// Insets returns the band height as bottom inset when AppendSpaceBelow is set.
// It never reserves space above, whatever the alignment.
func (ind *Indicator) Insets() Insets {
	if !ind.appendSpaceBelow {
		return Insets{}
	}
	return Insets{Bottom: ind.style.BandHeight}
}

// Render computes the draw commands for one frame: inactive dashes first, then the highlight
func (ind *Indicator) Render(f Frame) []DrawCommand {
	itemCount := ind.ResolveItemCount(f)
	if itemCount == 0 {
		return nil
	}
	g := ComputeLayout(ind.style, itemCount, f.Width, f.Height)
	cmds := DrawInactive(g, ind.style)
	if f.ActiveIndex < 0 || f.ActiveIndex >= itemCount || f.ActiveItem == nil {
		return cmds
	}
	progress, reversed := ComputeProgress(f.ActiveItem.Left, f.ActiveItem.Width)
	return append(cmds, DrawHighlight(g, ind.style, f.ActiveIndex, progress, reversed)...)
}
