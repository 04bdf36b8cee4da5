package layout

// Rotate cycles pane occupancy across position slots. Slot geometry
// (tree shape and every ratio) is untouched: only the PaneID held by each
// leaf changes. With fewer than two panes there is nothing to cycle and
// the tree is left byte-for-byte as it was.
//
// Returns true when the assignment changed, so the caller knows to emit a
// layout-changed notification.
func (t *Tree) Rotate(dir Direction) bool {
	leaves := t.leaves()
	n := len(leaves)
	if n < 2 {
		return false
	}
	ids := make([]PaneID, n)
	for i, l := range leaves {
		ids[i] = l.Pane
	}
	for i, l := range leaves {
		switch dir {
		case Clockwise:
			l.Pane = ids[(i-1+n)%n]
		case CounterClockwise:
			l.Pane = ids[(i+1)%n]
		}
	}
	return true
}
