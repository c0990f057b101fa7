package indicator

// DrawHighlight returns the highlight for activeIndex.
// Settled (progress 0) it is a single full dash. While dragging, the current dash is cut
// by progress*SegmentLength and the cut part grows in the neighbouring slot: the next
// dash when moving forward, the padding before the current dash when moving backward.
// Moving forward from the last dash there is no next slot, so only the shrinking part is drawn.
func DrawHighlight(g Geometry, style Style, activeIndex int, progress float32, reversed bool) []DrawCommand {
	if g.Empty() || g.SegmentLength <= 0 || !(style.StrokeWidth > 0) || activeIndex < 0 || activeIndex >= g.ItemCount {
		return nil
	}
	if !finite(progress) || progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	highlightStart := g.SlotStart(activeIndex)
	line := func(x0, x1 float32) DrawCommand {
		return DrawCommand{
			X0:          x0,
			X1:          x1,
			Y:           g.PosY,
			StrokeWidth: style.StrokeWidth,
			Color:       style.ActiveColor,
			Active:      true,
		}
	}
	if progress == 0 {
		return []DrawCommand{line(highlightStart, highlightStart+g.SegmentLength)}
	}
	partialLength := g.SegmentLength * progress
	var cmds []DrawCommand
	appendLine := func(x0, x1 float32) {
		if x1 > x0 {
			cmds = append(cmds, line(x0, x1))
		}
	}
	if reversed {
		gap := g.Stride - g.SegmentLength
		appendLine(highlightStart-gap-partialLength, highlightStart-gap)
		appendLine(highlightStart, highlightStart+g.SegmentLength-partialLength)
		return cmds
	}
	appendLine(highlightStart+partialLength, highlightStart+g.SegmentLength)
	if activeIndex < g.ItemCount-1 {
		next := highlightStart + g.Stride
		appendLine(next, next+partialLength)
	}
	return cmds
}
