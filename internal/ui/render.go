package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tabmux/internal/layout"
)

// renderTab renders the active tab's pane tree into a w×h block by
// walking the tree and joining child blocks along each split's axis,
// using the same rounding rule as layout.Geometry (last child absorbs
// the remainder) so boxes line up with PTY sizes.
func (m *AppModel) renderTab(w, h int) string {
	tab := m.WS.ActiveTab()
	if tab == nil || tab.Tree.Empty() {
		return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, Styles.StatusHint.Render("no panes"))
	}
	return m.renderNode(tab, tab.Tree.Root(), w, h)
}

func (m *AppModel) renderNode(tab *Tab, n *layout.Node, w, h int) string {
	if n.IsLeaf() {
		return m.renderPane(tab, n.Pane, w, h)
	}

	total := w
	if n.Orient == layout.Vertical {
		total = h
	}
	blocks := make([]string, len(n.Children))
	offset := 0
	for i, c := range n.Children {
		extent := int(float64(total)*c.Ratio + 0.5)
		if i == len(n.Children)-1 {
			extent = total - offset
		}
		if n.Orient == layout.Horizontal {
			blocks[i] = m.renderNode(tab, c, extent, h)
		} else {
			blocks[i] = m.renderNode(tab, c, w, extent)
		}
		offset += extent
	}
	if n.Orient == layout.Horizontal {
		return lipgloss.JoinHorizontal(lipgloss.Top, blocks...)
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

// renderPane draws one pane box: border, title row, scrollback tail.
func (m *AppModel) renderPane(tab *Tab, id layout.PaneID, w, h int) string {
	if w < 2 || h < 2 {
		return strings.Repeat(strings.Repeat(" ", maxInt(w, 0))+"\n", maxInt(h, 0))
	}

	s := m.WS.Tracker.Get(id)
	focused := id == tab.Focus.Current

	border := Styles.BorderUnfocused
	if focused {
		border = Styles.BorderFocused
	}
	title := "pane"
	var tail []string
	if s != nil {
		title = s.Title
		tail = s.Tail(maxInt(h-3, 0))
		if s.Exited() {
			border = Styles.BorderDead
			title += " (exited)"
		}
	}

	inner := w - 2
	lines := make([]string, 0, h-2)
	lines = append(lines, Styles.PaneTitle.MaxWidth(inner).Render(truncate(title, inner)))
	for _, l := range tail {
		lines = append(lines, Styles.PaneText.MaxWidth(inner).Render(truncate(l, inner)))
	}
	content := strings.Join(lines, "\n")

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border.GetForeground()).
		Width(inner).
		Height(h - 2)
	return box.Render(content)
}

// renderStatus renders the bottom status bar: tabs, pane count, nesting
// hint, leader state, and short help.
func (m *AppModel) renderStatus(w int) string {
	var tabs []string
	for i, t := range m.WS.Tabs {
		label := fmt.Sprintf("%d:%s", i+1, t.Name)
		if i == m.WS.Current {
			tabs = append(tabs, Styles.TabActive.Render("["+label+"]"))
		} else {
			tabs = append(tabs, Styles.TabInactive.Render(label))
		}
	}
	parts := []string{strings.Join(tabs, " ")}

	if tab := m.WS.ActiveTab(); tab != nil {
		parts = append(parts, Styles.StatusBar.Render(fmt.Sprintf("%d panes", tab.Tree.Len())))
	}
	if m.TmuxSession != "" {
		parts = append(parts, Styles.StatusHint.Render("tmux:"+m.TmuxSession))
	}
	if m.Keys.Armed {
		parts = append(parts, Styles.LeaderArmed.Render("prefix"))
	} else {
		parts = append(parts, Styles.StatusHint.Render(m.Keys.Leader))
	}
	parts = append(parts, m.Help.ShortHelpView(m.shortHelp))

	line := strings.Join(parts, Styles.StatusHint.Render(" │ "))
	return lipgloss.NewStyle().MaxWidth(w).Render(line)
}

func truncate(s string, w int) string {
	if w <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= w {
		return s
	}
	if w == 1 {
		return "…"
	}
	return string(r[:w-1]) + "…"
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
