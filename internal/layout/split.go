package layout

// Split divides the slot occupied by target, placing newPane beside it.
// When target's parent already splits along o, the new pane is inserted
// directly after target and the two share target's former ratio, so
// sequential splits of the rightmost pane produce the familiar
// 50/25/25 cascade. Otherwise target's leaf becomes a split of two equal
// halves. Sibling ratios elsewhere are untouched.
func (t *Tree) Split(target PaneID, o Orientation, newPane PaneID) error {
	leaf, parent, idx := t.find(target)
	if leaf == nil {
		return ErrPaneNotFound
	}

	if parent != nil && parent.Orient == o {
		half := leaf.Ratio / 2
		leaf.Ratio = half
		inserted := &Node{Ratio: half, Pane: newPane}
		children := make([]*Node, 0, len(parent.Children)+1)
		children = append(children, parent.Children[:idx+1]...)
		children = append(children, inserted)
		children = append(children, parent.Children[idx+1:]...)
		parent.Children = children
		return nil
	}

	// Replace the leaf in place with a two-way split occupying its slot.
	split := &Node{
		Ratio:  leaf.Ratio,
		Orient: o,
		Children: []*Node{
			{Ratio: 0.5, Pane: leaf.Pane},
			{Ratio: 0.5, Pane: newPane},
		},
	}
	if parent == nil {
		t.root = split
	} else {
		parent.Children[idx] = split
	}
	return nil
}

// Close removes target's leaf and hands its share of space back to its
// siblings in proportion to their ratios. A split left with a single
// child collapses into that child; if the survivor splits along the same
// axis as its new parent its children are spliced in directly, keeping
// the tree canonical. Closing the last pane empties the tree.
func (t *Tree) Close(target PaneID) error {
	leaf, parent, idx := t.find(target)
	if leaf == nil {
		return ErrPaneNotFound
	}
	if parent == nil {
		t.root = nil
		return nil
	}

	freed := leaf.Ratio
	parent.Children = append(parent.Children[:idx], parent.Children[idx+1:]...)
	remaining := 1 - freed
	for _, c := range parent.Children {
		c.Ratio /= remaining
	}

	if len(parent.Children) == 1 {
		t.collapse(parent)
	}
	return nil
}

// collapse replaces a single-child split with its child, preserving the
// split's ratio, then splices same-orientation grandchildren upward.
func (t *Tree) collapse(split *Node) {
	child := split.Children[0]
	split.Pane = child.Pane
	split.Orient = child.Orient
	split.Children = child.Children

	if split.IsLeaf() {
		return
	}
	// The promoted split may now sit under a parent with the same
	// orientation; merge its children into the parent to keep one split
	// per axis run.
	_, parent, idx := t.findSplit(split)
	if parent == nil || parent.Orient != split.Orient {
		return
	}
	spliced := make([]*Node, 0, len(parent.Children)+len(split.Children)-1)
	spliced = append(spliced, parent.Children[:idx]...)
	for _, gc := range split.Children {
		gc.Ratio *= split.Ratio
		spliced = append(spliced, gc)
	}
	spliced = append(spliced, parent.Children[idx+1:]...)
	parent.Children = spliced
}

// findSplit locates an internal node by identity. Same contract as find
// but for splits.
func (t *Tree) findSplit(target *Node) (node, parent *Node, idx int) {
	var walk func(n, p *Node, i int) bool
	walk = func(n, p *Node, i int) bool {
		if n == nil || n.IsLeaf() {
			return false
		}
		if n == target {
			node, parent, idx = n, p, i
			return true
		}
		for ci, c := range n.Children {
			if walk(c, n, ci) {
				return true
			}
		}
		return false
	}
	walk(t.root, nil, 0)
	return node, parent, idx
}
