package layout

// Rect is a pane's position and size in terminal cells.
type Rect struct {
	X, Y, W, H int
}

// Geometry maps every pane to its cell bounds inside a width×height
// region. Extents are split along each axis by ratio; the last child of
// a split absorbs the rounding remainder so children always tile their
// parent exactly.
func (t *Tree) Geometry(width, height int) map[PaneID]Rect {
	out := make(map[PaneID]Rect, t.Len())
	if t.root == nil || width <= 0 || height <= 0 {
		return out
	}
	var place func(n *Node, r Rect)
	place = func(n *Node, r Rect) {
		if n.IsLeaf() {
			out[n.Pane] = r
			return
		}
		total := r.W
		if n.Orient == Vertical {
			total = r.H
		}
		offset := 0
		for i, c := range n.Children {
			extent := int(float64(total)*c.Ratio + 0.5)
			if i == len(n.Children)-1 {
				extent = total - offset
			}
			child := r
			if n.Orient == Horizontal {
				child.X = r.X + offset
				child.W = extent
			} else {
				child.Y = r.Y + offset
				child.H = extent
			}
			place(c, child)
			offset += extent
		}
	}
	place(t.root, Rect{X: 0, Y: 0, W: width, H: height})
	return out
}
