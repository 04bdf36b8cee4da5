package layout

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	tree := New("a")
	require.NoError(t, tree.Split("a", Horizontal, "b"))
	require.NoError(t, tree.Split("b", Vertical, "c"))
	require.True(t, tree.Rotate(Clockwise))

	path := filepath.Join(t.TempDir(), "layout.json")
	require.NoError(t, tree.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, loaded.Validate())
	require.Equal(t, tree.Enumerate(), loaded.Enumerate())
	require.Equal(t, tree.Geometry(100, 30), loaded.Geometry(100, 30))
}

func TestLoadRejectsInvalidTree(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.json")

	// Single-child split violates the invariant and must be rejected.
	bad := `{"ratio":1,"orientation":"horizontal","children":[{"ratio":1,"pane":"x"}]}`
	require.NoError(t, os.WriteFile(path, []byte(bad), 0644))
	_, err := Load(path)
	require.Error(t, err)

	// Not JSON at all.
	require.NoError(t, os.WriteFile(path, []byte("{nope"), 0644))
	_, err = Load(path)
	require.Error(t, err)

	// Unknown orientation.
	bad = `{"ratio":1,"orientation":"diagonal","children":[{"ratio":0.5,"pane":"x"},{"ratio":0.5,"pane":"y"}]}`
	require.NoError(t, os.WriteFile(path, []byte(bad), 0644))
	_, err = Load(path)
	require.Error(t, err)
}

func TestMarshalEmptyTree(t *testing.T) {
	tree := New("a")
	require.NoError(t, tree.Close("a"))

	data, err := tree.MarshalJSON()
	require.NoError(t, err)
	require.Equal(t, "null", string(data))

	restored := &Tree{}
	require.NoError(t, restored.UnmarshalJSON(data))
	require.True(t, restored.Empty())
}
