package tui

import (
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// leaderKey opens the command menu. Bubble Tea reports space as " ".
const leaderKey = " "

// Action is a demo command reachable from the keyboard.
type Action struct {
	Help string
	// Keys run the action directly, in tea.KeyMsg.String() form.
	Keys []string
	// Path is the key sequence typed after space, e.g. "r a".
	Path string
	Cmd  tea.Cmd
}

// DemoActions returns every keyboard command of the demo.
func DemoActions() []Action {
	return []Action{
		{Help: "Quit", Keys: []string{"q", "ctrl+c"}, Path: "q", Cmd: tea.Quit},
		{Help: "Add row", Keys: []string{"a"}, Path: "r a", Cmd: msgCmd(AddRowMsg{})},
		{Help: "Delete row", Keys: []string{"d"}, Path: "r d", Cmd: msgCmd(DeleteRowMsg{})},
		{Help: "Next row", Keys: []string{"j", "down"}, Cmd: msgCmd(SelectNextMsg{})},
		{Help: "Previous row", Keys: []string{"k", "up"}, Cmd: msgCmd(SelectPrevMsg{})},
		{Help: "Scroll down", Path: "s j", Cmd: msgCmd(ScrollMsg{Steps: -1})},
		{Help: "Scroll up", Path: "s k", Cmd: msgCmd(ScrollMsg{Steps: 1})},
		{Help: "Fit window", Path: "f", Cmd: msgCmd(FitWindowMsg{})},
	}
}

// DemoMenus labels the submenus of the command menu.
var DemoMenus = map[string]string{
	"r": "Rows",
	"s": "Scroll",
}

// menu is one level of the command menu.
type menu struct {
	label  string
	action *Action
	next   map[string]*menu
}

// Keymap runs actions from direct keys or from a space-led sequence.
type Keymap struct {
	actions []Action
	direct  []key.Binding // one per action
	root    *menu

	open  *menu // nil unless a sequence is pending
	typed []string
}

// NewKeymap builds the direct bindings and the command menu of actions.
// menus labels submenu keys; unlabeled submenus show as "k…".
func NewKeymap(actions []Action, menus map[string]string) *Keymap {
	k := &Keymap{
		actions: slices.Clone(actions),
		root:    &menu{next: make(map[string]*menu)},
	}
	for i := range k.actions {
		a := &k.actions[i]
		k.direct = append(k.direct, key.NewBinding(
			key.WithKeys(a.Keys...),
			key.WithHelp(strings.Join(a.Keys, "/"), a.Help),
		))

		m := k.root
		for _, s := range strings.Fields(a.Path) {
			child, ok := m.next[s]
			if !ok {
				child = &menu{label: menus[s], next: make(map[string]*menu)}
				m.next[s] = child
			}
			m = child
		}
		if m != k.root {
			m.action = a
		}
	}
	return k
}

// Handle runs msg against the keymap. A consumed key must not be
// interpreted further by the caller.
func (k *Keymap) Handle(msg tea.KeyMsg) (consumed bool, cmd tea.Cmd) {
	s := msg.String()
	if k.open == nil {
		if s == leaderKey {
			k.open, k.typed = k.root, []string{"SPC"}
			return true, nil
		}
		for i, b := range k.direct {
			if key.Matches(msg, b) {
				return true, k.actions[i].Cmd
			}
		}
		return false, nil
	}

	next, ok := k.open.next[s]
	switch {
	case !ok:
		// esc and unknown keys both leave the menu
		k.Close()
	case next.action != nil:
		k.Close()
		return true, next.action.Cmd
	default:
		k.open = next
		k.typed = append(k.typed, s)
	}
	return true, nil
}

// Pending reports whether a space-led sequence is in progress.
func (k *Keymap) Pending() bool { return k.open != nil }

// Prefix returns the sequence typed so far, e.g. "SPC r".
func (k *Keymap) Prefix() string { return strings.Join(k.typed, " ") }

// Close abandons a pending sequence.
func (k *Keymap) Close() {
	k.open, k.typed = nil, nil
}

// Hints lists the keys that continue the pending sequence, sorted, then esc.
func (k *Keymap) Hints() []key.Binding {
	if k.open == nil {
		return nil
	}
	keys := slices.Sorted(maps.Keys(k.open.next))
	out := make([]key.Binding, 0, len(keys)+1)
	for _, s := range keys {
		m := k.open.next[s]
		desc := m.label
		switch {
		case m.action != nil:
			desc = m.action.Help
		case desc == "":
			desc = s + "…"
		}
		out = append(out, key.NewBinding(key.WithKeys(s), key.WithHelp(s, desc)))
	}
	return append(out, key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")))
}

// ShortHelp implements help.KeyMap: the menu while it is open, the direct
// keys otherwise.
func (k *Keymap) ShortHelp() []key.Binding {
	if k.open != nil {
		return k.Hints()
	}
	var out []key.Binding
	for _, b := range k.direct {
		if len(b.Keys()) > 0 {
			out = append(out, b)
		}
	}
	return out
}

// FullHelp implements help.KeyMap.
func (k *Keymap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
