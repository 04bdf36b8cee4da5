package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// LayoutChangedMsg is emitted after any successful layout mutation; the
// render pass and PTY resizes key off it. It carries no payload, so
// receivers re-read the tree rather than diffing.
type LayoutChangedMsg struct{}

// PaneOutputMsg is sent by session reader goroutines (via Program.Send)
// when new output arrives, scheduling a redraw.
type PaneOutputMsg struct{}

// pruneTickMsg drives periodic reaping of exited shells.
type pruneTickMsg time.Time

// AppModel is the root Bubble Tea model: one workspace plus the keybind
// layer and status chrome.
type AppModel struct {
	WS   *Workspace
	Keys *KeyHandler
	Help help.Model

	// TmuxSession is the enclosing tmux session's name, when nested.
	TmuxSession string

	shortHelp []key.Binding
}

// NewAppModel assembles the root model. The workspace may still be
// empty; it is read fresh on every update.
func NewAppModel(ws *Workspace, reg *Registry, tmuxSession string) *AppModel {
	hb := reg.HelpBindings()
	if len(hb) > 4 {
		hb = hb[:4]
	}
	return &AppModel{
		WS:          ws,
		Keys:        NewKeyHandler(reg, ws.Settings.Leader),
		Help:        help.New(),
		TmuxSession: tmuxSession,
		shortHelp:   hb,
	}
}

var _ tea.Model = (*AppModel)(nil)

func pruneTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return pruneTickMsg(t)
	})
}

func layoutChanged() tea.Msg { return LayoutChangedMsg{} }

// Init implements tea.Model.
func (m *AppModel) Init() tea.Cmd {
	return pruneTick()
}

// Update implements tea.Model. All workspace mutation funnels through
// here, which is what makes lock-free tree mutation safe.
func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.WS.Width = msg.Width
		m.WS.Height = msg.Height
		m.Help.Width = msg.Width
		m.WS.ResizeAll()
		return m, nil

	case tea.KeyMsg:
		consumed, act := m.Keys.Handle(msg)
		if act != nil {
			changed, quit := m.WS.Apply(act)
			if quit {
				m.WS.Shutdown()
				return m, tea.Quit
			}
			if changed {
				return m, layoutChanged
			}
			return m, nil
		}
		if consumed {
			return m, nil
		}
		if s := m.WS.FocusedSession(); s != nil {
			if data := keyBytes(msg); len(data) > 0 {
				_ = s.Write(data)
			}
		}
		return m, nil

	case LayoutChangedMsg:
		m.WS.ResizeAll()
		return m, nil

	case PaneOutputMsg:
		// Redraw only; the sessions already hold the new output.
		return m, nil

	case pruneTickMsg:
		changed, quit := m.WS.PruneDead()
		if quit {
			m.WS.Shutdown()
			return m, tea.Quit
		}
		if changed {
			return m, tea.Batch(layoutChanged, pruneTick())
		}
		return m, pruneTick()
	}
	return m, nil
}

// View implements tea.Model.
func (m *AppModel) View() string {
	if m.WS.Width == 0 || m.WS.Height == 0 {
		return ""
	}
	body := m.renderTab(m.WS.Width, m.WS.Height-1)
	status := m.renderStatus(m.WS.Width)
	return body + "\n" + status
}

// keyBytes translates a key press into the bytes the focused shell
// should receive. Keys with no terminal encoding map to nil.
func keyBytes(msg tea.KeyMsg) []byte {
	switch msg.Type {
	case tea.KeyRunes:
		if msg.Alt {
			return append([]byte{0x1b}, []byte(string(msg.Runes))...)
		}
		return []byte(string(msg.Runes))
	case tea.KeySpace:
		return []byte{' '}
	case tea.KeyEnter:
		return []byte{'\r'}
	case tea.KeyTab:
		return []byte{'\t'}
	case tea.KeyShiftTab:
		return []byte("\x1b[Z")
	case tea.KeyBackspace:
		return []byte{0x7f}
	case tea.KeyDelete:
		return []byte("\x1b[3~")
	case tea.KeyEsc:
		return []byte{0x1b}
	case tea.KeyUp:
		return []byte("\x1b[A")
	case tea.KeyDown:
		return []byte("\x1b[B")
	case tea.KeyRight:
		return []byte("\x1b[C")
	case tea.KeyLeft:
		return []byte("\x1b[D")
	case tea.KeyHome:
		return []byte("\x1b[H")
	case tea.KeyEnd:
		return []byte("\x1b[F")
	case tea.KeyPgUp:
		return []byte("\x1b[5~")
	case tea.KeyPgDown:
		return []byte("\x1b[6~")
	}
	// Ctrl+letter keys arrive as KeyType values 1..26.
	if msg.Type >= 1 && msg.Type <= 26 {
		return []byte{byte(msg.Type)}
	}
	return nil
}
