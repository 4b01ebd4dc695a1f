package tui

import (
	"io"
	"log"
	"math"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"layoutkit/internal/config"
)

func newTestApp(t *testing.T) (*AppModel, tea.Model) {
	t.Helper()
	cfg := config.Default()
	cfg.Window.Width, cfg.Window.Height = 40, 20
	cfg.Scroll.Gain = 1
	m, err := NewAppModel(cfg, log.New(io.Discard, "", 0))
	if err != nil {
		t.Fatalf("NewAppModel: %v", err)
	}
	return m, m.AsTeaModel()
}

// run feeds msg to the model and then every message its commands produce,
// stopping at quit.
func run(t *testing.T, model tea.Model, msg tea.Msg) (quit bool) {
	t.Helper()
	for msg != nil {
		if _, ok := msg.(tea.QuitMsg); ok {
			return true
		}
		var cmd tea.Cmd
		model, cmd = model.Update(msg)
		if cmd == nil {
			return false
		}
		msg = cmd()
	}
	return false
}

func TestAppModel_InitialFrame(t *testing.T) {
	m, model := newTestApp(t)

	view := model.View()
	if !strings.Contains(view, "layoutkit") {
		t.Errorf("view missing header:\n%s", view)
	}
	if !strings.Contains(view, "rows 12") {
		t.Errorf("status bar missing row count:\n%s", view)
	}
	if m.Focus.Current != m.Demo.Rows[0] {
		t.Errorf("expected first row selected, got %d", m.Focus.Current)
	}
	if !strings.Contains(view, ">row 1") {
		t.Errorf("selected row not marked:\n%s", view)
	}
}

func TestAppModel_AddAndDeleteKeys(t *testing.T) {
	m, model := newTestApp(t)

	if run(t, model, keyMsg("a")) {
		t.Fatal("unexpected quit")
	}
	if len(m.Demo.Rows) != 13 {
		t.Fatalf("expected 13 rows after a, got %d", len(m.Demo.Rows))
	}

	second := m.Demo.Rows[1]
	run(t, model, keyMsg("d"))
	if len(m.Demo.Rows) != 12 {
		t.Fatalf("expected 12 rows after d, got %d", len(m.Demo.Rows))
	}
	if m.Focus.Current != second {
		t.Errorf("expected selection to move to %d, got %d", second, m.Focus.Current)
	}
	w, _ := m.UI.Widget(second)
	if math.Abs(w.Bounds.Y-9) > 1e-6 {
		t.Errorf("expected next row to close the gap at y=9, got %v", w.Bounds)
	}
}

func TestAppModel_SelectKeys(t *testing.T) {
	m, model := newTestApp(t)

	run(t, model, keyMsg("j"))
	if m.Focus.Current != m.Demo.Rows[1] {
		t.Errorf("j: expected row 2, got %d", m.Focus.Current)
	}
	run(t, model, keyMsg("k"))
	run(t, model, keyMsg("k"))
	if m.Focus.Current != m.Demo.Rows[11] {
		t.Errorf("k: expected wrap to last row, got %d", m.Focus.Current)
	}
}

func TestAppModel_WindowSize(t *testing.T) {
	m, model := newTestApp(t)

	run(t, model, tea.WindowSizeMsg{Width: 60, Height: 31})
	root, _ := m.UI.Widget(m.UI.Root())
	if math.Abs(root.Bounds.Width-60) > 1e-6 || math.Abs(root.Bounds.Height-30) > 1e-6 {
		t.Errorf("root bounds = %v, want 60x30", root.Bounds)
	}
	lines := strings.Split(model.View(), "\n")
	if len(lines) != 31 {
		t.Errorf("expected 30 canvas lines and a status bar, got %d lines", len(lines))
	}
}

func TestAppModel_MouseWheelScrollsList(t *testing.T) {
	m, model := newTestApp(t)

	run(t, model, tea.MouseMsg{X: 5, Y: 12, Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	if off := m.Demo.ScrollOffset(); off.Y != -1 {
		t.Errorf("expected offset -1 after wheel down, got %v", off)
	}
	run(t, model, tea.MouseMsg{X: 5, Y: 12, Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})
	if off := m.Demo.ScrollOffset(); off.Y != 0 {
		t.Errorf("expected offset 0 after wheel up, got %v", off)
	}
}

func TestAppModel_ClickButtonsAndRows(t *testing.T) {
	m, model := newTestApp(t)

	run(t, model, tea.MouseMsg{X: 3, Y: 6, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	if len(m.Demo.Rows) != 13 {
		t.Errorf("expected add button to add a row, got %d rows", len(m.Demo.Rows))
	}

	run(t, model, tea.MouseMsg{X: 5, Y: 12, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	if m.Focus.Current != m.Demo.Rows[3] {
		t.Errorf("expected click to select row 4, got %d", m.Focus.Current)
	}
}

func TestAppModel_LeaderShowsHelp(t *testing.T) {
	m, model := newTestApp(t)

	run(t, model, keyMsg(" "))
	if !m.Keys.Pending() {
		t.Fatal("expected leader waiting after space")
	}
	view := model.View()
	if !strings.Contains(view, "Rows") || !strings.Contains(view, "Scroll") {
		t.Errorf("expected leader hints in view:\n%s", view)
	}

	run(t, model, keyMsg("r"))
	run(t, model, keyMsg("a"))
	if len(m.Demo.Rows) != 13 {
		t.Errorf("SPC r a: expected 13 rows, got %d", len(m.Demo.Rows))
	}
}

func TestAppModel_QuitKey(t *testing.T) {
	_, model := newTestApp(t)
	if !run(t, model, keyMsg("q")) {
		t.Error("expected q to quit")
	}
}

func TestAppModel_LayoutErrorQuits(t *testing.T) {
	m, model := newTestApp(t)

	bad := m.UI.NewWidget("bad")
	bad.Node.Width(1)
	bad.Node.Width(2)
	if err := m.UI.AddChild(m.Demo.List, bad.ID); err != nil {
		t.Fatalf("AddChild: %v", err)
	}
	if !run(t, model, AddRowMsg{}) {
		t.Fatal("expected quit on layout error")
	}
	if m.Err() == nil {
		t.Fatal("expected Err to be set")
	}
	if !strings.Contains(model.View(), "layout error") {
		t.Errorf("expected error view, got:\n%s", model.View())
	}
}
