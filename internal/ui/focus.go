package ui

import "tabmux/internal/layout"

// FocusManager tracks the focused pane within one tab. Order mirrors the
// tree's canonical enumeration and is resynced after every mutation.
// Focus follows pane identity, so a rotation carries focus with the
// pane to its new slot.
type FocusManager struct {
	Current  layout.PaneID
	Order    []layout.PaneID
	OnChange func(from, to layout.PaneID)
}

// Sync refreshes the traversal order and repairs focus if the focused
// pane left the tree (e.g. it was closed).
func (f *FocusManager) Sync(order []layout.PaneID) {
	f.Order = order
	if len(order) == 0 {
		f.set("")
		return
	}
	for _, id := range order {
		if id == f.Current {
			return
		}
	}
	f.set(order[0])
}

// Next advances focus to the next pane in order and returns it.
func (f *FocusManager) Next() layout.PaneID {
	if len(f.Order) == 0 {
		return ""
	}
	f.set(f.Order[(f.index()+1)%len(f.Order)])
	return f.Current
}

// Prev moves focus to the previous pane in order and returns it.
func (f *FocusManager) Prev() layout.PaneID {
	if len(f.Order) == 0 {
		return ""
	}
	idx := f.index() - 1
	if idx < 0 {
		idx = len(f.Order) - 1
	}
	f.set(f.Order[idx])
	return f.Current
}

// SetFocus focuses the given pane. Returns true if it is in order.
func (f *FocusManager) SetFocus(id layout.PaneID) bool {
	for _, o := range f.Order {
		if o == id {
			f.set(id)
			return true
		}
	}
	return false
}

func (f *FocusManager) index() int {
	for i, id := range f.Order {
		if id == f.Current {
			return i
		}
	}
	return 0
}

func (f *FocusManager) set(to layout.PaneID) {
	from := f.Current
	f.Current = to
	if f.OnChange != nil && from != to {
		f.OnChange(from, to)
	}
}
