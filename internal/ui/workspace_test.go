package ui

import (
	"io"
	"os/exec"
	"testing"
	"time"

	"tabmux/internal/action"
	"tabmux/internal/config"
	"tabmux/internal/layout"
	"tabmux/internal/pane"
)

// fakeRunner satisfies pane.Runner without spawning real shells. Reads
// block until the session is closed.
type fakeRunner struct {
	resizes int
}

type fakeRWC struct {
	r *io.PipeReader
	w *io.PipeWriter
}

func (f *fakeRWC) Read(p []byte) (int, error)  { return f.r.Read(p) }
func (f *fakeRWC) Write(p []byte) (int, error) { return len(p), nil }
func (f *fakeRWC) Close() error {
	f.w.Close()
	return f.r.Close()
}

func (fr *fakeRunner) Start(cmd *exec.Cmd, size pane.Size) (io.ReadWriteCloser, error) {
	r, w := io.Pipe()
	return &fakeRWC{r: r, w: w}, nil
}

func (fr *fakeRunner) Resize(rwc io.ReadWriteCloser, size pane.Size) error {
	fr.resizes++
	return nil
}

// waitFor polls cond until it holds or the test times out.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition never became true")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func testSettings() config.Settings {
	return config.Settings{Shell: "sh", ResizeStep: 0.05, MaxTabs: 3, Leader: "ctrl+a"}
}

func newTestWorkspace(t *testing.T) *Workspace {
	t.Helper()
	ws := NewWorkspace(testSettings(), &fakeRunner{}, nil, nil)
	if err := ws.Bootstrap(); err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}
	t.Cleanup(ws.Shutdown)
	return ws
}

// splitN grows the active tab to n panes via horizontal splits of the
// focused pane.
func splitN(t *testing.T, ws *Workspace, n int) {
	t.Helper()
	for ws.ActiveTab().Tree.Len() < n {
		changed, _ := ws.Apply(action.SplitPane{Orientation: layout.Horizontal})
		if !changed {
			t.Fatal("split failed")
		}
	}
}

func TestWorkspaceBootstrap(t *testing.T) {
	ws := newTestWorkspace(t)
	tab := ws.ActiveTab()
	if tab == nil || tab.Tree.Len() != 1 {
		t.Fatal("bootstrap should create one tab with one pane")
	}
	if ws.Tracker.Len() != 1 {
		t.Errorf("tracker holds %d sessions", ws.Tracker.Len())
	}
	if tab.Focus.Current == "" {
		t.Error("no focused pane after bootstrap")
	}
}

func TestApplySplitFocusesNewPane(t *testing.T) {
	ws := newTestWorkspace(t)
	first := ws.ActiveTab().Focus.Current

	changed, quit := ws.Apply(action.SplitPane{Orientation: layout.Vertical})
	if !changed || quit {
		t.Fatalf("split: changed=%v quit=%v", changed, quit)
	}
	tab := ws.ActiveTab()
	if tab.Tree.Len() != 2 {
		t.Fatalf("pane count = %d", tab.Tree.Len())
	}
	if tab.Focus.Current == first {
		t.Error("focus should move to the new pane")
	}
	if ws.Tracker.Len() != 2 {
		t.Errorf("tracker holds %d sessions", ws.Tracker.Len())
	}
}

func TestApplyRotateKeepsGeometryAndSessions(t *testing.T) {
	ws := newTestWorkspace(t)
	splitN(t, ws, 3)
	tab := ws.ActiveTab()

	before := tab.Tree.Enumerate()
	geoBefore := tab.Tree.Geometry(80, 23)

	changed, _ := ws.Apply(action.RotatePanes{Direction: layout.Clockwise})
	if !changed {
		t.Fatal("rotation of 3 panes must report a change")
	}
	after := tab.Tree.Enumerate()
	if after[0] != before[2] || after[1] != before[0] || after[2] != before[1] {
		t.Errorf("rotation order: before=%v after=%v", before, after)
	}

	// Slot geometry is identical; only occupants moved.
	geoAfter := tab.Tree.Geometry(80, 23)
	for i, id := range after {
		if geoAfter[id] != geoBefore[before[i]] {
			t.Errorf("slot %d geometry changed: %v -> %v", i, geoBefore[before[i]], geoAfter[id])
		}
	}

	// Sessions are untouched by rotation.
	if ws.Tracker.Len() != 3 {
		t.Errorf("tracker holds %d sessions", ws.Tracker.Len())
	}
}

func TestApplyRotateSinglePaneNoChange(t *testing.T) {
	ws := newTestWorkspace(t)
	changed, quit := ws.Apply(action.RotatePanes{Direction: layout.Clockwise})
	if changed || quit {
		t.Errorf("single pane rotate: changed=%v quit=%v", changed, quit)
	}
}

func TestApplyRotateRoundTrip(t *testing.T) {
	ws := newTestWorkspace(t)
	splitN(t, ws, 4)
	tab := ws.ActiveTab()
	want := tab.Tree.Enumerate()

	ws.Apply(action.RotatePanes{Direction: layout.Clockwise})
	ws.Apply(action.RotatePanes{Direction: layout.CounterClockwise})

	got := tab.Tree.Enumerate()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("round trip: want %v, got %v", want, got)
		}
	}
}

func TestApplyClosePane(t *testing.T) {
	ws := newTestWorkspace(t)
	splitN(t, ws, 2)
	tab := ws.ActiveTab()
	closing := tab.Focus.Current

	changed, quit := ws.Apply(action.ClosePane{})
	if !changed || quit {
		t.Fatalf("close: changed=%v quit=%v", changed, quit)
	}
	if tab.Tree.Len() != 1 {
		t.Errorf("pane count = %d", tab.Tree.Len())
	}
	if tab.Tree.Contains(closing) {
		t.Error("closed pane still in tree")
	}
	if ws.Tracker.Get(closing) != nil {
		t.Error("closed pane session still tracked")
	}
	if tab.Focus.Current == "" || tab.Focus.Current == closing {
		t.Errorf("focus = %s after close", tab.Focus.Current)
	}
}

func TestApplyCloseLastPaneQuits(t *testing.T) {
	ws := newTestWorkspace(t)
	_, quit := ws.Apply(action.ClosePane{})
	if !quit {
		t.Error("closing the last pane of the last tab should quit")
	}
}

func TestApplyResize(t *testing.T) {
	ws := newTestWorkspace(t)
	splitN(t, ws, 2)
	tab := ws.ActiveTab()

	changed, _ := ws.Apply(action.ResizePane{Orientation: layout.Horizontal, Amount: 1})
	if !changed {
		t.Fatal("resize reported no change")
	}
	// Wrong axis: no vertical split exists.
	changed, _ = ws.Apply(action.ResizePane{Orientation: layout.Vertical, Amount: 1})
	if changed {
		t.Error("resize along missing axis should be a no-op")
	}
	if err := tab.Tree.Validate(); err != nil {
		t.Errorf("tree invalid after resize: %v", err)
	}
}

func TestApplyTabLifecycle(t *testing.T) {
	ws := newTestWorkspace(t)

	changed, _ := ws.Apply(action.NewTab{})
	if !changed || len(ws.Tabs) != 2 || ws.Current != 1 {
		t.Fatalf("new tab: changed=%v tabs=%d current=%d", changed, len(ws.Tabs), ws.Current)
	}

	ws.Apply(action.NewTab{})
	// MaxTabs = 3: the next one is refused.
	changed, _ = ws.Apply(action.NewTab{})
	if changed || len(ws.Tabs) != 3 {
		t.Errorf("max tabs: changed=%v tabs=%d", changed, len(ws.Tabs))
	}

	ws.Apply(action.NextTab{})
	if ws.Current != 0 {
		t.Errorf("NextTab wrap: current=%d", ws.Current)
	}
	ws.Apply(action.PrevTab{})
	if ws.Current != 2 {
		t.Errorf("PrevTab wrap: current=%d", ws.Current)
	}

	changed, quit := ws.Apply(action.CloseTab{})
	if !changed || quit || len(ws.Tabs) != 2 {
		t.Errorf("close tab: changed=%v quit=%v tabs=%d", changed, quit, len(ws.Tabs))
	}

	ws.Apply(action.CloseTab{})
	_, quit = ws.Apply(action.CloseTab{})
	if !quit {
		t.Error("closing the last tab should quit")
	}
}

func TestApplyQuit(t *testing.T) {
	ws := newTestWorkspace(t)
	_, quit := ws.Apply(action.Quit{})
	if !quit {
		t.Error("Quit action must quit")
	}
}

func TestAdoptTreeSpawnsSessions(t *testing.T) {
	ws := NewWorkspace(testSettings(), &fakeRunner{}, nil, nil)
	t.Cleanup(ws.Shutdown)

	tree := layout.New("a")
	if err := tree.Split("a", layout.Horizontal, "b"); err != nil {
		t.Fatal(err)
	}
	if err := ws.AdoptTree(tree); err != nil {
		t.Fatalf("AdoptTree: %v", err)
	}
	if ws.Tracker.Len() != 2 {
		t.Errorf("tracker holds %d sessions after adopt", ws.Tracker.Len())
	}
	if ws.ActiveTab().Focus.Current != "a" {
		t.Errorf("focus = %s", ws.ActiveTab().Focus.Current)
	}
}

func TestPruneDeadClosesSlot(t *testing.T) {
	ws := newTestWorkspace(t)
	splitN(t, ws, 2)
	tab := ws.ActiveTab()
	victim := tab.Focus.Current

	// Kill the shell behind the focused pane.
	ws.Tracker.Get(victim).Close()
	waitFor(t, func() bool { return ws.Tracker.Get(victim).Exited() })

	changed, quit := ws.PruneDead()
	if !changed || quit {
		t.Fatalf("prune: changed=%v quit=%v", changed, quit)
	}
	if tab.Tree.Contains(victim) {
		t.Error("dead pane still occupies a slot")
	}
	if tab.Tree.Len() != 1 {
		t.Errorf("pane count = %d", tab.Tree.Len())
	}
}
