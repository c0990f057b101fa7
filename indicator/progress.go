package indicator

import "math"

// Ease is an accelerate-then-decelerate curve on [0,1]
func Ease(x float32) float32 {
	return float32(math.Cos(float64(x+1)*math.Pi)/2 + 0.5)
}

// ComputeProgress converts the left offset of the active page into an eased progress in [0,1].
// reversed is true when the page sits right of its rest position, i.e. the drag heads
// towards the previous page. A page fully off its rest position (|offsetX| >= itemWidth)
// gives progress 1; a non-positive itemWidth gives 0.
func ComputeProgress(offsetX, itemWidth float32) (progress float32, reversed bool) {
	reversed = offsetX > 0
	if itemWidth <= 0 || !finite(itemWidth) || !finite(offsetX) {
		return 0, reversed
	}
	fraction := float32(math.Abs(float64(offsetX))) / itemWidth
	if fraction > 1 {
		fraction = 1
	}
	if fraction == 0 {
		return 0, reversed
	}
	return Ease(fraction), reversed
}

// DragState names the three visible states of the highlight
type DragState int

const (
	Settled DragState = iota
	DraggingForward
	DraggingBackward
)

func (s DragState) String() string {
	switch s {
	case Settled:
		return "settled"
	case DraggingForward:
		return "forward"
	case DraggingBackward:
		return "backward"
	}
	return "unknown"
}

func StateOf(progress float32, reversed bool) DragState {
	switch {
	case progress == 0:
		return Settled
	case reversed:
		return DraggingBackward
	}
	return DraggingForward
}
