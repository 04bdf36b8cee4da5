// Package layout implements the split tree for one tab: leaves are panes,
// internal nodes are horizontal or vertical splits with size ratios.
// The tree tracks pane position only; pane content lives elsewhere and is
// referenced by PaneID. All mutation happens on the owning tab's update
// path, so no locking is done here.
package layout

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
)

// PaneID identifies a pane independently of its position in the tree.
// IDs are stable across rotations and resizes.
type PaneID string

// NewPaneID returns a fresh unique pane identifier.
func NewPaneID() PaneID {
	return PaneID(uuid.NewString())
}

// Orientation is the axis of a split.
type Orientation int

const (
	// Horizontal arranges children side by side (left to right).
	Horizontal Orientation = iota
	// Vertical arranges children top to bottom.
	Vertical
)

func (o Orientation) String() string {
	switch o {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return "unknown"
	}
}

// ParseOrientation converts a config string to an Orientation.
func ParseOrientation(s string) (Orientation, error) {
	switch s {
	case "horizontal":
		return Horizontal, nil
	case "vertical":
		return Vertical, nil
	default:
		return Horizontal, fmt.Errorf("unknown orientation %q", s)
	}
}

// ratioTolerance bounds floating-point drift when checking that sibling
// ratios sum to 1.
const ratioTolerance = 1e-6

// Node is one node of the split tree. A leaf holds a PaneID and no
// children; a split holds an orientation and at least two children.
// Ratio is the node's share of its parent's extent along the parent's
// axis (1.0 for the root).
type Node struct {
	Ratio    float64
	Pane     PaneID
	Orient   Orientation
	Children []*Node
}

// IsLeaf reports whether the node holds a pane.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// Tree is the split structure for one tab.
type Tree struct {
	root *Node
}

// New creates a tree holding a single pane.
func New(first PaneID) *Tree {
	return &Tree{root: &Node{Ratio: 1, Pane: first}}
}

// Root exposes the root node for read-only traversal (rendering).
// Mutation goes through the Tree methods.
func (t *Tree) Root() *Node {
	return t.root
}

// Empty reports whether the tree holds no panes (all closed).
func (t *Tree) Empty() bool {
	return t.root == nil
}

// Len returns the number of panes in the tree.
func (t *Tree) Len() int {
	return len(t.leaves())
}

// Contains reports whether id occupies a slot in the tree.
func (t *Tree) Contains(id PaneID) bool {
	node, _, _ := t.find(id)
	return node != nil
}

// Enumerate returns pane IDs in canonical order: depth-first, children in
// stored sequence, which reads left-to-right then top-to-bottom. The order
// is a pure function of tree state.
func (t *Tree) Enumerate() []PaneID {
	leaves := t.leaves()
	ids := make([]PaneID, len(leaves))
	for i, l := range leaves {
		ids[i] = l.Pane
	}
	return ids
}

// leaves collects leaf nodes in canonical order.
func (t *Tree) leaves() []*Node {
	var out []*Node
	var walk func(*Node)
	walk = func(n *Node) {
		if n == nil {
			return
		}
		if n.IsLeaf() {
			out = append(out, n)
			return
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(t.root)
	return out
}

// find locates the leaf holding id. Returns the leaf, its parent split
// (nil when the leaf is the root), and its index among the parent's
// children.
func (t *Tree) find(id PaneID) (node, parent *Node, idx int) {
	var walk func(n, p *Node, i int) bool
	walk = func(n, p *Node, i int) bool {
		if n == nil {
			return false
		}
		if n.IsLeaf() {
			if n.Pane == id {
				node, parent, idx = n, p, i
				return true
			}
			return false
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

// ErrPaneNotFound is returned when an operation targets a pane that does
// not occupy any slot in the tree.
var ErrPaneNotFound = errors.New("layout: pane not found")

// Validate checks the structural invariants: every split has at least two
// children, sibling ratios sum to 1 within tolerance, and every pane
// appears exactly once. An empty tree is valid.
func (t *Tree) Validate() error {
	seen := make(map[PaneID]bool)
	var walk func(*Node) error
	walk = func(n *Node) error {
		if n.IsLeaf() {
			if n.Pane == "" {
				return errors.New("layout: leaf with empty pane id")
			}
			if seen[n.Pane] {
				return fmt.Errorf("layout: duplicate pane %s", n.Pane)
			}
			seen[n.Pane] = true
			return nil
		}
		if len(n.Children) < 2 {
			return fmt.Errorf("layout: split with %d children", len(n.Children))
		}
		sum := 0.0
		for _, c := range n.Children {
			if c.Ratio <= 0 {
				return fmt.Errorf("layout: non-positive ratio %g", c.Ratio)
			}
			sum += c.Ratio
			if err := walk(c); err != nil {
				return err
			}
		}
		if math.Abs(sum-1) > ratioTolerance {
			return fmt.Errorf("layout: sibling ratios sum to %g", sum)
		}
		return nil
	}
	if t.root == nil {
		return nil
	}
	return walk(t.root)
}
