package ui

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"tabmux/internal/action"
	"tabmux/internal/config"
)

// Registry maps key chords (Bubble Tea key strings, e.g. "r" or
// "ctrl+x") to workspace actions. Chords fire only after the leader key;
// every other key goes to the focused pane's shell.
type Registry struct {
	bindings map[string]action.Action
}

// NewRegistry builds a registry from validated config bindings. Later
// duplicates were already skipped at config load.
func NewRegistry(bindings []config.Binding) *Registry {
	r := &Registry{bindings: make(map[string]action.Action, len(bindings))}
	for _, b := range bindings {
		r.bindings[b.Chord] = b.Action
	}
	return r
}

// Lookup returns the action for a chord, or nil if unbound.
func (r *Registry) Lookup(chord string) action.Action {
	return r.bindings[chord]
}

// HelpBindings returns bubbles key.Binding entries for the help view,
// sorted by chord for stable display.
func (r *Registry) HelpBindings() []key.Binding {
	chords := make([]string, 0, len(r.bindings))
	for c := range r.bindings {
		chords = append(chords, c)
	}
	sort.Strings(chords)
	out := make([]key.Binding, 0, len(chords))
	for _, c := range chords {
		out = append(out, key.NewBinding(
			key.WithKeys(c),
			key.WithHelp(c, describe(r.bindings[c])),
		))
	}
	return out
}

// describe renders an action for help display.
func describe(a action.Action) string {
	switch v := a.(type) {
	case action.RotatePanes:
		return fmt.Sprintf("rotate panes %s", v.Direction)
	case action.SplitPane:
		return fmt.Sprintf("split %s", v.Orientation)
	case action.ResizePane:
		verb := "grow"
		if v.Amount < 0 {
			verb = "shrink"
		}
		return fmt.Sprintf("%s pane %s", verb, v.Orientation)
	case action.ClosePane:
		return "close pane"
	case action.FocusNext:
		return "focus next pane"
	case action.FocusPrev:
		return "focus previous pane"
	case action.NewTab:
		return "new tab"
	case action.CloseTab:
		return "close tab"
	case action.NextTab:
		return "next tab"
	case action.PrevTab:
		return "previous tab"
	case action.Quit:
		return "quit"
	default:
		return a.Name()
	}
}

// KeyHandler manages leader-key state. Pressing the leader arms the
// handler; the next key resolves against the registry. Leader twice
// sends the leader key itself to the pane, like tmux's prefix.
type KeyHandler struct {
	Registry *Registry
	Leader   string // tea.KeyMsg.String() form, e.g. "ctrl+a"
	Armed    bool
}

// NewKeyHandler creates a handler with the configured leader chord.
func NewKeyHandler(reg *Registry, leader string) *KeyHandler {
	return &KeyHandler{Registry: reg, Leader: leader}
}

// Handle processes a key press.
//   - consumed false: the key belongs to the focused pane's shell.
//   - act non-nil: a bound chord completed and should be dispatched.
func (h *KeyHandler) Handle(msg tea.KeyMsg) (consumed bool, act action.Action) {
	s := msg.String()

	if !h.Armed {
		if s == h.Leader {
			h.Armed = true
			return true, nil
		}
		return false, nil
	}

	h.Armed = false
	switch s {
	case h.Leader:
		// Literal leader: fall through to the pane.
		return false, nil
	case "esc":
		return true, nil
	}
	if a := h.Registry.Lookup(s); a != nil {
		return true, a
	}
	// Unknown chord after the leader is swallowed, not typed into the
	// shell.
	return true, nil
}
