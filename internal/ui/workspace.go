package ui

import (
	"context"
	"fmt"
	"io"
	"log"

	"go.opentelemetry.io/otel/attribute"

	"tabmux/internal/action"
	"tabmux/internal/config"
	"tabmux/internal/layout"
	"tabmux/internal/pane"
	"tabmux/internal/telemetry"
)

// Tab is one workspace tab: a layout tree plus focus state.
type Tab struct {
	Name  string
	Tree  *layout.Tree
	Focus FocusManager
}

// Workspace owns the tabs and dispatches actions against the active
// tab's layout tree. All mutation happens on the Bubble Tea update
// goroutine; the tracker is the only concurrently touched piece.
type Workspace struct {
	Tabs     []*Tab
	Current  int
	Tracker  *pane.Tracker
	Settings config.Settings

	runner   pane.Runner
	tracer   *telemetry.Tracer
	logger   *log.Logger
	onOutput func()
	tabSeq   int

	// Terminal size; the bottom row is the status bar.
	Width, Height int
}

// NewWorkspace creates an empty workspace. Call Bootstrap or AdoptTree
// to populate the first tab.
func NewWorkspace(settings config.Settings, runner pane.Runner, tracer *telemetry.Tracer, logger *log.Logger) *Workspace {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Workspace{
		Tracker:  pane.NewTracker(),
		Settings: settings,
		runner:   runner,
		tracer:   tracer,
		logger:   logger,
		Width:    80,
		Height:   24,
	}
}

// SetNotify installs the redraw callback passed to every new session.
// Must be set before panes spawn (i.e. before Bootstrap).
func (w *Workspace) SetNotify(fn func()) {
	w.onOutput = fn
}

// ActiveTab returns the current tab, or nil when no tabs remain.
func (w *Workspace) ActiveTab() *Tab {
	if w.Current < 0 || w.Current >= len(w.Tabs) {
		return nil
	}
	return w.Tabs[w.Current]
}

// Bootstrap opens the first tab with a single pane.
func (w *Workspace) Bootstrap() error {
	return w.addTab()
}

// AdoptTree restores a saved layout as the first tab, spawning a fresh
// shell for every pane slot. The saved tree was validated at load.
func (w *Workspace) AdoptTree(tree *layout.Tree) error {
	if tree.Empty() {
		return w.addTab()
	}
	for _, id := range tree.Enumerate() {
		if err := w.spawnPane(id); err != nil {
			return fmt.Errorf("restore pane: %w", err)
		}
	}
	w.tabSeq++
	tab := &Tab{Name: fmt.Sprintf("%d", w.tabSeq), Tree: tree}
	tab.Focus.Sync(tree.Enumerate())
	w.Tabs = append(w.Tabs, tab)
	w.Current = len(w.Tabs) - 1
	w.ResizeAll()
	return nil
}

// addTab opens a new tab holding one fresh pane and switches to it.
func (w *Workspace) addTab() error {
	id := layout.NewPaneID()
	if err := w.spawnPane(id); err != nil {
		return err
	}
	w.tabSeq++
	tab := &Tab{Name: fmt.Sprintf("%d", w.tabSeq), Tree: layout.New(id)}
	tab.Focus.Sync(tab.Tree.Enumerate())
	w.Tabs = append(w.Tabs, tab)
	w.Current = len(w.Tabs) - 1
	w.ResizeAll()
	return nil
}

// spawnPane starts a shell session for id and registers it.
func (w *Workspace) spawnPane(id layout.PaneID) error {
	s, err := pane.StartSession(id, w.Settings.Shell, pane.Size{Rows: 24, Cols: 80}, w.runner, w.onOutput)
	if err != nil {
		return err
	}
	w.Tracker.Add(s)
	return nil
}

// Apply dispatches one action against the active tab. Returns whether
// observable state changed (the caller emits the layout-changed
// notification) and whether the app should quit.
func (w *Workspace) Apply(act action.Action) (changed, quit bool) {
	tab := w.ActiveTab()
	if tab == nil {
		return false, true
	}

	_, span := w.tracer.Action(context.Background(), act.Name(),
		attribute.Int("panes", tab.Tree.Len()),
		attribute.Int("tabs", len(w.Tabs)),
	)
	defer span.End()

	switch v := act.(type) {
	case action.RotatePanes:
		// Pure permutation of slot occupancy; ratios never move. With one
		// pane this is a silent no-op.
		changed = tab.Tree.Rotate(v.Direction)
		if changed {
			tab.Focus.Sync(tab.Tree.Enumerate())
			w.logger.Printf("rotate %s: %d panes", v.Direction, tab.Tree.Len())
		}
	case action.SplitPane:
		changed = w.splitFocused(tab, v.Orientation)
	case action.ClosePane:
		changed, quit = w.closeFocused(tab)
	case action.ResizePane:
		changed = tab.Tree.Resize(tab.Focus.Current, v.Orientation, v.Amount*w.Settings.ResizeStep)
	case action.FocusNext:
		tab.Focus.Next()
		changed = true
	case action.FocusPrev:
		tab.Focus.Prev()
		changed = true
	case action.NewTab:
		if len(w.Tabs) >= w.Settings.MaxTabs {
			w.logger.Printf("new tab refused: at max_tabs=%d", w.Settings.MaxTabs)
			return false, false
		}
		if err := w.addTab(); err != nil {
			w.logger.Printf("new tab: %v", err)
			return false, false
		}
		changed = true
	case action.CloseTab:
		changed, quit = w.closeTab(w.Current)
	case action.NextTab:
		if len(w.Tabs) > 1 {
			w.Current = (w.Current + 1) % len(w.Tabs)
			changed = true
		}
	case action.PrevTab:
		if len(w.Tabs) > 1 {
			w.Current = (w.Current - 1 + len(w.Tabs)) % len(w.Tabs)
			changed = true
		}
	case action.Quit:
		quit = true
	}

	if changed {
		w.ResizeAll()
	}
	return changed, quit
}

// splitFocused spawns a new pane beside the focused one. The shell is
// started first so a spawn failure leaves the tree untouched.
func (w *Workspace) splitFocused(tab *Tab, o layout.Orientation) bool {
	newID := layout.NewPaneID()
	if err := w.spawnPane(newID); err != nil {
		w.logger.Printf("split: %v", err)
		return false
	}
	if err := tab.Tree.Split(tab.Focus.Current, o, newID); err != nil {
		w.Tracker.Remove(newID)
		w.logger.Printf("split: %v", err)
		return false
	}
	tab.Focus.Sync(tab.Tree.Enumerate())
	tab.Focus.SetFocus(newID)
	return true
}

// closeFocused closes the focused pane; an empty tab closes itself, and
// closing the last pane of the last tab quits.
func (w *Workspace) closeFocused(tab *Tab) (changed, quit bool) {
	id := tab.Focus.Current
	if id == "" {
		return false, false
	}
	if err := tab.Tree.Close(id); err != nil {
		w.logger.Printf("close pane: %v", err)
		return false, false
	}
	w.Tracker.Remove(id)
	if tab.Tree.Empty() {
		return w.closeTab(w.Current)
	}
	tab.Focus.Sync(tab.Tree.Enumerate())
	return true, false
}

// closeTab tears down every pane in the tab and removes it.
func (w *Workspace) closeTab(idx int) (changed, quit bool) {
	if idx < 0 || idx >= len(w.Tabs) {
		return false, false
	}
	for _, id := range w.Tabs[idx].Tree.Enumerate() {
		w.Tracker.Remove(id)
	}
	w.Tabs = append(w.Tabs[:idx], w.Tabs[idx+1:]...)
	if len(w.Tabs) == 0 {
		return true, true
	}
	if w.Current >= len(w.Tabs) {
		w.Current = len(w.Tabs) - 1
	}
	return true, false
}

// PruneDead reaps sessions whose shell exited and closes their slots,
// exactly as if the user had closed them.
func (w *Workspace) PruneDead() (changed, quit bool) {
	for _, id := range w.Tracker.Prune() {
		for ti, tab := range w.Tabs {
			if !tab.Tree.Contains(id) {
				continue
			}
			if err := tab.Tree.Close(id); err != nil {
				continue
			}
			if tab.Tree.Empty() {
				_, q := w.closeTab(ti)
				quit = quit || q
			} else {
				tab.Focus.Sync(tab.Tree.Enumerate())
			}
			changed = true
			break
		}
	}
	if changed {
		w.ResizeAll()
	}
	return changed, quit
}

// ResizeAll pushes current cell bounds to every live PTY in the active
// tab. Border cells are not part of the shell's area.
func (w *Workspace) ResizeAll() {
	tab := w.ActiveTab()
	if tab == nil {
		return
	}
	for id, r := range tab.Tree.Geometry(w.Width, w.Height-1) {
		s := w.Tracker.Get(id)
		if s == nil {
			continue
		}
		cols, rows := r.W-2, r.H-2
		if cols < 1 {
			cols = 1
		}
		if rows < 1 {
			rows = 1
		}
		if err := s.Resize(pane.Size{Rows: uint16(rows), Cols: uint16(cols)}); err != nil {
			w.logger.Printf("resize pane %s: %v", id, err)
		}
	}
}

// FocusedSession returns the session under focus, or nil.
func (w *Workspace) FocusedSession() *pane.Session {
	tab := w.ActiveTab()
	if tab == nil {
		return nil
	}
	return w.Tracker.Get(tab.Focus.Current)
}

// Shutdown closes every pane session.
func (w *Workspace) Shutdown() {
	w.Tracker.CloseAll()
}
