package tui

// AddRowMsg appends a row to the demo list (a, SPC r a).
type AddRowMsg struct{}

// DeleteRowMsg removes the selected row (d, SPC r d).
type DeleteRowMsg struct{}

// SelectNextMsg and SelectPrevMsg move the row selection (j/k).
type SelectNextMsg struct{}

type SelectPrevMsg struct{}

// ScrollMsg scrolls the list by whole wheel steps (SPC s j, SPC s k).
type ScrollMsg struct {
	Steps float64
}

// FitWindowMsg asks the window to fit the content (SPC f).
type FitWindowMsg struct{}
