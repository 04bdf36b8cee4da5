package layout

import (
	"encoding/json"
	"fmt"
	"os"

	"tabmux/internal/jsonutil"
)

// nodeJSON is the on-disk shape of one tree node.
type nodeJSON struct {
	Ratio       float64    `json:"ratio"`
	Pane        string     `json:"pane,omitempty"`
	Orientation string     `json:"orientation,omitempty"`
	Children    []nodeJSON `json:"children,omitempty"`
}

func toJSON(n *Node) nodeJSON {
	out := nodeJSON{Ratio: n.Ratio}
	if n.IsLeaf() {
		out.Pane = string(n.Pane)
		return out
	}
	out.Orientation = n.Orient.String()
	out.Children = make([]nodeJSON, len(n.Children))
	for i, c := range n.Children {
		out.Children[i] = toJSON(c)
	}
	return out
}

func fromJSON(j nodeJSON) (*Node, error) {
	n := &Node{Ratio: j.Ratio}
	if len(j.Children) == 0 {
		n.Pane = PaneID(j.Pane)
		return n, nil
	}
	o, err := ParseOrientation(j.Orientation)
	if err != nil {
		return nil, err
	}
	n.Orient = o
	n.Children = make([]*Node, len(j.Children))
	for i, c := range j.Children {
		child, err := fromJSON(c)
		if err != nil {
			return nil, err
		}
		n.Children[i] = child
	}
	return n, nil
}

// MarshalJSON serializes the tree. An empty tree serializes as null.
func (t *Tree) MarshalJSON() ([]byte, error) {
	if t.root == nil {
		return []byte("null"), nil
	}
	return json.Marshal(toJSON(t.root))
}

// UnmarshalJSON restores a tree and checks its invariants, so a corrupt
// or hand-edited file is rejected at load time rather than crashing the
// render path later.
func (t *Tree) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		t.root = nil
		return nil
	}
	var j nodeJSON
	if err := jsonutil.UnmarshalWithContext(data, &j, "layout tree"); err != nil {
		return err
	}
	root, err := fromJSON(j)
	if err != nil {
		return err
	}
	t.root = root
	return t.Validate()
}

// Save writes the tree to path as JSON.
func (t *Tree) Save(path string) error {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal layout: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write layout: %w", err)
	}
	return nil
}

// Load reads a tree previously written by Save.
func Load(path string) (*Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layout: %w", err)
	}
	t := &Tree{}
	if err := t.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return t, nil
}
