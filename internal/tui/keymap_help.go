package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

var _ help.KeyMap = (*Keymap)(nil)

// RenderMenu draws the open command menu as one line: the typed prefix,
// then each next key. It is empty when no sequence is pending.
func RenderMenu(k *Keymap) string {
	if k == nil || !k.Pending() {
		return ""
	}
	h := help.New()
	h.Styles.ShortKey = lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHighlight)).
		Bold(true)
	h.Styles.ShortDesc = Styles.Muted
	h.Styles.ShortSeparator = Styles.Muted
	return Styles.Title.Render(k.Prefix()) + " " + h.ShortHelpView(k.Hints())
}
