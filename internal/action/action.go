// Package action defines the closed set of workspace actions a
// keybinding can dispatch. Actions are parsed from the keybinding table
// at load time; anything unrecognized is a configuration error there,
// never a runtime failure.
package action

import (
	"fmt"

	"tabmux/internal/layout"
)

// Action is one dispatchable workspace operation. The set is closed:
// dispatchers switch exhaustively on the concrete types below.
type Action interface {
	// Name returns the config-facing action name (e.g. "RotatePanes").
	Name() string
}

// RotatePanes cycles panes through their position slots.
type RotatePanes struct {
	Direction layout.Direction
}

func (RotatePanes) Name() string { return "RotatePanes" }

// SplitPane divides the focused pane's slot along an axis.
type SplitPane struct {
	Orientation layout.Orientation
}

func (SplitPane) Name() string { return "SplitPane" }

// ClosePane closes the focused pane.
type ClosePane struct{}

func (ClosePane) Name() string { return "ClosePane" }

// ResizePane grows or shrinks the focused pane along an axis.
type ResizePane struct {
	Orientation layout.Orientation
	Amount      float64
}

func (ResizePane) Name() string { return "ResizePane" }

// FocusNext moves focus to the next pane in enumeration order.
type FocusNext struct{}

func (FocusNext) Name() string { return "FocusNext" }

// FocusPrev moves focus to the previous pane in enumeration order.
type FocusPrev struct{}

func (FocusPrev) Name() string { return "FocusPrev" }

// NewTab opens a fresh tab with a single pane.
type NewTab struct{}

func (NewTab) Name() string { return "NewTab" }

// CloseTab closes the active tab and all panes in it.
type CloseTab struct{}

func (CloseTab) Name() string { return "CloseTab" }

// NextTab activates the tab after the current one.
type NextTab struct{}

func (NextTab) Name() string { return "NextTab" }

// PrevTab activates the tab before the current one.
type PrevTab struct{}

func (PrevTab) Name() string { return "PrevTab" }

// Quit exits the application.
type Quit struct{}

func (Quit) Name() string { return "Quit" }

// Parse maps an action name and its argument from the keybinding table
// to an Action value. Argument validation happens here so misspellings
// (e.g. "clockwise" for "Clockwise") surface once when the table loads.
func Parse(name, arg string) (Action, error) {
	switch name {
	case "RotatePanes":
		d, err := layout.ParseDirection(arg)
		if err != nil {
			return nil, fmt.Errorf("RotatePanes: %w", err)
		}
		return RotatePanes{Direction: d}, nil
	case "SplitPane":
		o, err := layout.ParseOrientation(arg)
		if err != nil {
			return nil, fmt.Errorf("SplitPane: %w", err)
		}
		return SplitPane{Orientation: o}, nil
	case "ResizePane":
		switch arg {
		case "grow-horizontal":
			return ResizePane{Orientation: layout.Horizontal, Amount: 1}, nil
		case "shrink-horizontal":
			return ResizePane{Orientation: layout.Horizontal, Amount: -1}, nil
		case "grow-vertical":
			return ResizePane{Orientation: layout.Vertical, Amount: 1}, nil
		case "shrink-vertical":
			return ResizePane{Orientation: layout.Vertical, Amount: -1}, nil
		default:
			return nil, fmt.Errorf("ResizePane: unknown argument %q", arg)
		}
	case "ClosePane", "FocusNext", "FocusPrev", "NewTab", "CloseTab", "NextTab", "PrevTab", "Quit":
		if arg != "" {
			return nil, fmt.Errorf("%s takes no argument, got %q", name, arg)
		}
		switch name {
		case "ClosePane":
			return ClosePane{}, nil
		case "FocusNext":
			return FocusNext{}, nil
		case "FocusPrev":
			return FocusPrev{}, nil
		case "NewTab":
			return NewTab{}, nil
		case "CloseTab":
			return CloseTab{}, nil
		case "NextTab":
			return NextTab{}, nil
		case "PrevTab":
			return PrevTab{}, nil
		default:
			return Quit{}, nil
		}
	default:
		return nil, fmt.Errorf("unknown action %q", name)
	}
}
