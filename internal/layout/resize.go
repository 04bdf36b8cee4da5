package layout

// Ratio clamp bounds, so no pane can be resized into invisibility.
const (
	minRatio = 0.1
	maxRatio = 0.9
)

// Resize grows (positive delta) or shrinks (negative delta) target's
// share along axis o. The adjustment applies at the nearest ancestor
// split with that orientation; the difference is taken from or given to
// the siblings in proportion to their ratios. Returns false when no
// ancestor splits along o or the clamp leaves nothing to move.
func (t *Tree) Resize(target PaneID, o Orientation, delta float64) bool {
	path := t.pathTo(target)
	if path == nil {
		return false
	}
	// Walk from the leaf upward looking for a split along o. path[i+1] is
	// the child of path[i] on the way to the leaf.
	for i := len(path) - 2; i >= 0; i-- {
		split, child := path[i], path[i+1]
		if split.Orient != o {
			continue
		}
		return adjustChild(split, child, delta)
	}
	return false
}

// adjustChild moves delta of ratio into child, clamped. A grow takes
// from the siblings in proportion to the slack each has above minRatio,
// capped up front by the total slack so no sibling is pushed under the
// clamp and the ratio sum stays exactly 1. A shrink hands the freed
// share to the siblings in proportion to their ratios.
func adjustChild(split, child *Node, delta float64) bool {
	next := child.Ratio + delta
	if next < minRatio {
		next = minRatio
	}
	if next > maxRatio {
		next = maxRatio
	}
	applied := next - child.Ratio

	if applied > 0 {
		slack := 0.0
		for _, c := range split.Children {
			if c != child {
				slack += c.Ratio - minRatio
			}
		}
		if applied > slack {
			applied = slack
		}
		if applied <= 0 {
			return false
		}
		for _, c := range split.Children {
			if c != child {
				c.Ratio -= applied * ((c.Ratio - minRatio) / slack)
			}
		}
		child.Ratio += applied
		return true
	}

	if applied == 0 {
		return false
	}
	otherSum := 1 - child.Ratio
	if otherSum <= 0 {
		return false
	}
	for _, c := range split.Children {
		if c != child {
			c.Ratio -= applied * (c.Ratio / otherSum)
		}
	}
	child.Ratio += applied
	return true
}

// pathTo returns the nodes from the root to the leaf holding id,
// inclusive, or nil when the pane is absent.
func (t *Tree) pathTo(id PaneID) []*Node {
	var path []*Node
	var walk func(*Node) bool
	walk = func(n *Node) bool {
		if n == nil {
			return false
		}
		path = append(path, n)
		if n.IsLeaf() {
			if n.Pane == id {
				return true
			}
			path = path[:len(path)-1]
			return false
		}
		for _, c := range n.Children {
			if walk(c) {
				return true
			}
		}
		path = path[:len(path)-1]
		return false
	}
	if walk(t.root) {
		return path
	}
	return nil
}
