package tui

import "layoutkit/internal/layout"

// FocusManager tracks the selected widget among an ordered set, e.g. the
// rows of a list.
type FocusManager struct {
	Current  layout.WidgetID   // selected widget, NoWidget when Order is empty
	Order    []layout.WidgetID // selection order
	OnChange func(from, to layout.WidgetID)
}

// NewFocusManager returns a manager with nothing selected.
func NewFocusManager() *FocusManager {
	return &FocusManager{Current: layout.NoWidget}
}

func (f *FocusManager) index(id layout.WidgetID) int {
	for i, o := range f.Order {
		if o == id {
			return i
		}
	}
	return -1
}

func (f *FocusManager) move(to layout.WidgetID) layout.WidgetID {
	from := f.Current
	f.Current = to
	if f.OnChange != nil && from != to {
		f.OnChange(from, to)
	}
	return to
}

// Next selects the following widget, wrapping at the end.
func (f *FocusManager) Next() layout.WidgetID {
	if len(f.Order) == 0 {
		return layout.NoWidget
	}
	return f.move(f.Order[(f.index(f.Current)+1)%len(f.Order)])
}

// Prev selects the preceding widget, wrapping at the start.
func (f *FocusManager) Prev() layout.WidgetID {
	if len(f.Order) == 0 {
		return layout.NoWidget
	}
	i := f.index(f.Current) - 1
	if i < 0 {
		i = len(f.Order) - 1
	}
	return f.move(f.Order[i])
}

// SetFocus selects id. Returns false if id is not in Order.
func (f *FocusManager) SetFocus(id layout.WidgetID) bool {
	if f.index(id) < 0 {
		return false
	}
	f.move(id)
	return true
}

// Append adds id at the end of Order, selecting it if nothing is.
func (f *FocusManager) Append(id layout.WidgetID) {
	f.Order = append(f.Order, id)
	if f.Current == layout.NoWidget {
		f.move(id)
	}
}

// Remove drops id from Order. If it was selected, the widget that took
// its place is selected, or the new last one.
func (f *FocusManager) Remove(id layout.WidgetID) {
	i := f.index(id)
	if i < 0 {
		return
	}
	f.Order = append(f.Order[:i], f.Order[i+1:]...)
	if f.Current != id {
		return
	}
	switch {
	case len(f.Order) == 0:
		f.move(layout.NoWidget)
	case i < len(f.Order):
		f.move(f.Order[i])
	default:
		f.move(f.Order[len(f.Order)-1])
	}
}
