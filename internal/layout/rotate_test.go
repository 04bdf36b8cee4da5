package layout

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// threePanes builds the documented fixture: three panes from two
// sequential horizontal splits of the rightmost pane, sized 50/25/25.
func threePanes(t *testing.T) (*Tree, []PaneID) {
	t.Helper()
	ids := []PaneID{"p0", "p1", "p2"}
	tree := New(ids[0])
	require.NoError(t, tree.Split(ids[0], Horizontal, ids[1]))
	require.NoError(t, tree.Split(ids[1], Horizontal, ids[2]))
	require.NoError(t, tree.Validate())
	require.Equal(t, ids, tree.Enumerate())
	return tree, ids
}

// ratioSnapshot captures every ratio in canonical traversal order.
func ratioSnapshot(n *Node) []float64 {
	out := []float64{n.Ratio}
	for _, c := range n.Children {
		out = append(out, ratioSnapshot(c)...)
	}
	return out
}

func TestRotateClockwise(t *testing.T) {
	tree, _ := threePanes(t)
	before := ratioSnapshot(tree.root)

	require.True(t, tree.Rotate(Clockwise))

	// The pane that was last moves to the first slot: [0,1,2] -> [2,0,1].
	require.Equal(t, []PaneID{"p2", "p0", "p1"}, tree.Enumerate())
	require.Equal(t, before, ratioSnapshot(tree.root), "rotation must not touch ratios")
	require.NoError(t, tree.Validate())

	// Slot sizes remain 50/25/25, now occupied by p2, p0, p1.
	geo := tree.Geometry(100, 10)
	require.Equal(t, Rect{X: 0, Y: 0, W: 50, H: 10}, geo["p2"])
	require.Equal(t, Rect{X: 50, Y: 0, W: 25, H: 10}, geo["p0"])
	require.Equal(t, Rect{X: 75, Y: 0, W: 25, H: 10}, geo["p1"])
}

func TestRotateCounterClockwise(t *testing.T) {
	tree, _ := threePanes(t)
	before := ratioSnapshot(tree.root)

	require.True(t, tree.Rotate(CounterClockwise))

	require.Equal(t, []PaneID{"p1", "p2", "p0"}, tree.Enumerate())
	require.Equal(t, before, ratioSnapshot(tree.root))

	geo := tree.Geometry(100, 10)
	require.Equal(t, Rect{X: 0, Y: 0, W: 50, H: 10}, geo["p1"])
	require.Equal(t, Rect{X: 50, Y: 0, W: 25, H: 10}, geo["p2"])
	require.Equal(t, Rect{X: 75, Y: 0, W: 25, H: 10}, geo["p0"])
}

func TestRotateRoundTrip(t *testing.T) {
	tree, ids := threePanes(t)
	require.True(t, tree.Rotate(Clockwise))
	require.True(t, tree.Rotate(CounterClockwise))
	require.Equal(t, ids, tree.Enumerate())
}

func TestRotateCyclicClosure(t *testing.T) {
	for n := 2; n <= 6; n++ {
		tree := New("p0")
		want := []PaneID{"p0"}
		for i := 1; i < n; i++ {
			pid := PaneID("p" + string(rune('0'+i)))
			require.NoError(t, tree.Split(want[len(want)-1], Horizontal, pid))
			want = append(want, pid)
		}
		for i := 0; i < n; i++ {
			require.True(t, tree.Rotate(Clockwise))
		}
		require.Equal(t, want, tree.Enumerate(), "N=%d rotations must restore the assignment", n)
	}
}

func TestRotateSinglePaneIsNoop(t *testing.T) {
	tree := New("only")
	before, err := tree.MarshalJSON()
	require.NoError(t, err)

	require.False(t, tree.Rotate(Clockwise))
	require.False(t, tree.Rotate(CounterClockwise))

	after, err := tree.MarshalJSON()
	require.NoError(t, err)
	require.Equal(t, before, after, "no-op must leave the tree byte-for-byte unchanged")
}

func TestRotateEmptyTreeIsNoop(t *testing.T) {
	tree := New("only")
	require.NoError(t, tree.Close("only"))
	require.True(t, tree.Empty())
	require.False(t, tree.Rotate(Clockwise))
}

// Mixed-orientation nesting: enumeration is plain depth-first in stored
// child order, and rotation cycles across that order.
func TestRotateNestedSplits(t *testing.T) {
	tree := New("a")
	require.NoError(t, tree.Split("a", Horizontal, "b"))
	require.NoError(t, tree.Split("b", Vertical, "c"))
	require.NoError(t, tree.Split("a", Vertical, "d"))
	require.NoError(t, tree.Validate())

	require.Equal(t, []PaneID{"a", "d", "b", "c"}, tree.Enumerate())
	before := ratioSnapshot(tree.root)

	require.True(t, tree.Rotate(Clockwise))
	require.Equal(t, []PaneID{"c", "a", "d", "b"}, tree.Enumerate())
	require.Equal(t, before, ratioSnapshot(tree.root))

	require.True(t, tree.Rotate(CounterClockwise))
	require.Equal(t, []PaneID{"a", "d", "b", "c"}, tree.Enumerate())
}

func TestEnumerateStable(t *testing.T) {
	tree, ids := threePanes(t)
	for i := 0; i < 5; i++ {
		require.Equal(t, ids, tree.Enumerate())
	}
}

func TestParseDirection(t *testing.T) {
	d, err := ParseDirection("Clockwise")
	require.NoError(t, err)
	require.Equal(t, Clockwise, d)

	d, err = ParseDirection("CounterClockwise")
	require.NoError(t, err)
	require.Equal(t, CounterClockwise, d)

	// Case-sensitive, no default.
	for _, bad := range []string{"", "clockwise", "CLOCKWISE", "counterclockwise", "Counter-Clockwise"} {
		_, err := ParseDirection(bad)
		require.Error(t, err, "%q must be rejected", bad)
	}
}
