// Package ui is the Bubble Tea front end for the tabmux workspace.
//
// Core pieces:
//   - Workspace: tabs, each owning a layout tree and focus state; the
//     single dispatcher for all pane actions
//   - KeyHandler/Registry: leader-key chords mapped to actions from the
//     config keybinding table
//   - FocusManager: pane focus following the tree's enumeration order
//   - AppModel: the root model wiring key input, PTY output, and the
//     renderer together on one update goroutine
package ui
