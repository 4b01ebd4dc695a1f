// Package tui runs a ui.UI in the terminal with Bubble Tea: it turns
// terminal size and mouse wheel messages into UI events and paints the
// solved widget boxes onto a cell canvas.
package tui

import (
	"fmt"
	"log"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"layoutkit/internal/config"
	"layoutkit/internal/layout"
	"layoutkit/internal/ui"
)

// AppModel is the root model. It is the UI's renderer and window.
type AppModel struct {
	UI    *ui.UI
	Demo  *Demo
	Keys  *Keymap
	Focus *FocusManager

	logger *log.Logger
	width  int
	height int
	frame  string
	frames int
	moved  int
	last   int
	fit    layout.Rect
	err    error
}

var (
	_ ui.Renderer = (*AppModel)(nil)
	_ ui.Window   = (*AppModel)(nil)
	_ tea.Model   = (*appModelAdapter)(nil)
)

// NewAppModel builds the UI and the demo tree and lays it out at the
// configured window size. opts are passed to ui.New after the model's own
// renderer, window and scroll gain.
func NewAppModel(cfg config.Config, logger *log.Logger, opts ...ui.Option) (*AppModel, error) {
	if logger == nil {
		logger = log.Default()
	}
	m := &AppModel{
		Focus:  NewFocusManager(),
		logger: logger,
		width:  int(cfg.Window.Width),
		height: int(cfg.Window.Height) + 1,
	}
	all := append([]ui.Option{
		ui.WithRenderer(m),
		ui.WithWindow(m),
		ui.WithScrollGain(cfg.Scroll.Gain),
		ui.WithLogger(logger),
	}, opts...)
	m.UI = ui.New(all...)

	d, err := BuildDemo(m.UI, cfg.Demo)
	if err != nil {
		return nil, err
	}
	m.Demo = d
	for _, id := range d.Rows {
		m.Focus.Append(id)
	}
	m.UI.Resize(cfg.Window.Width, cfg.Window.Height)
	if err := m.UI.Process(); err != nil {
		return nil, fmt.Errorf("initial layout: %w", err)
	}

	m.Keys = NewKeymap(DemoActions(), DemoMenus)
	return m, nil
}

func msgCmd(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// AsTeaModel returns a tea.Model adapter for use with tea.NewProgram.
func (m *AppModel) AsTeaModel() tea.Model {
	return &appModelAdapter{AppModel: m}
}

// Err returns the error that stopped the program, if any.
func (m *AppModel) Err() error { return m.err }

// LayoutUpdated implements ui.Renderer.
func (m *AppModel) LayoutUpdated(id layout.WidgetID, bounds layout.Rect) {
	m.moved++
}

// Redraw implements ui.Renderer.
func (m *AppModel) Redraw() {
	m.last, m.moved = m.moved, 0
	m.frames++
	m.repaint()
}

// Resize implements ui.Window. A terminal cannot be resized by the
// program, so the request is only shown in the status bar.
func (m *AppModel) Resize(width, height float64) {
	m.fit = layout.Rect{Width: width, Height: height}
	m.logger.Printf("tui.Resize: content wants %gx%g", width, height)
}

func (m *AppModel) repaint() {
	c := NewCanvas(m.width, m.height-1)
	Paint(c, m.UI, m.decoration)
	m.frame = c.Render()
}

func (m *AppModel) decoration(id layout.WidgetID) (Decoration, bool) {
	d, ok := m.Demo.Decoration(id)
	if ok && id == m.Focus.Current {
		d.Class = ClassSelected
		d.Label = ">" + strings.TrimPrefix(d.Label, " ")
	}
	return d, ok
}

// process drains the UI queue. An error stops the program.
func (m *AppModel) process() tea.Cmd {
	if err := m.UI.Process(); err != nil {
		m.err = err
		return tea.Quit
	}
	return nil
}

// appModelAdapter wraps AppModel to implement tea.Model.
type appModelAdapter struct {
	*AppModel
}

// Init implements tea.Model.
func (a *appModelAdapter) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (a *appModelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		// The last line is the status bar.
		a.UI.Resize(float64(msg.Width), float64(max(1, msg.Height-1)))
		cmd := a.process()
		a.repaint()
		return a, cmd
	case tea.MouseMsg:
		return a, a.handleMouse(msg)
	case tea.KeyMsg:
		if consumed, cmd := a.Keys.Handle(msg); consumed {
			return a, cmd
		}
		return a, nil
	case AddRowMsg:
		id, err := a.Demo.AddRow()
		if err != nil {
			a.err = err
			return a, tea.Quit
		}
		a.Focus.Append(id)
		return a, a.process()
	case DeleteRowMsg:
		id := a.Focus.Current
		if id == layout.NoWidget {
			return a, nil
		}
		a.Focus.Remove(id)
		if err := a.Demo.RemoveRow(id); err != nil {
			a.err = err
			return a, tea.Quit
		}
		return a, a.process()
	case SelectNextMsg:
		a.Focus.Next()
		a.repaint()
		return a, nil
	case SelectPrevMsg:
		a.Focus.Prev()
		a.repaint()
		return a, nil
	case ScrollMsg:
		if w, ok := a.UI.Widget(a.Demo.Viewport); ok {
			b := w.Bounds
			a.UI.Scroll(layout.Point{X: b.X + b.Width/2, Y: b.Y + b.Height/2}, layout.Point{Y: msg.Steps})
		}
		return a, a.process()
	case FitWindowMsg:
		a.UI.Send(ui.ToUI(), ui.ResizeWindow{})
		return a, a.process()
	}
	return a, nil
}

func (a *appModelAdapter) handleMouse(msg tea.MouseMsg) tea.Cmd {
	at := layout.Point{X: float64(msg.X), Y: float64(msg.Y)}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		a.UI.Scroll(at, layout.Point{Y: 1})
	case tea.MouseButtonWheelDown:
		a.UI.Scroll(at, layout.Point{Y: -1})
	case tea.MouseButtonWheelLeft:
		a.UI.Scroll(at, layout.Point{X: 1})
	case tea.MouseButtonWheelRight:
		a.UI.Scroll(at, layout.Point{X: -1})
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return nil
		}
		return a.click(at)
	default:
		return nil
	}
	return a.process()
}

// click selects a row or presses a button.
func (a *appModelAdapter) click(at layout.Point) tea.Cmd {
	id, ok := a.UI.WidgetAt(at)
	if !ok {
		return nil
	}
	switch {
	case id == a.Demo.AddButton:
		return msgCmd(AddRowMsg{})
	case id == a.Demo.DeleteButton:
		return msgCmd(DeleteRowMsg{})
	case a.Demo.IsRow(id):
		a.Focus.SetFocus(id)
		a.repaint()
	}
	return nil
}

// View implements tea.Model.
func (a *appModelAdapter) View() string {
	if a.err != nil {
		return Styles.Error.Render("layout error: "+a.err.Error()) + "\n"
	}
	status := a.statusLine()
	if a.Keys.Pending() {
		status = RenderMenu(a.Keys)
	}
	return a.frame + "\n" + status
}

func (a *appModelAdapter) statusLine() string {
	selected := "none"
	if w, ok := a.UI.Widget(a.Focus.Current); ok {
		selected = w.Name
	}
	off := a.Demo.ScrollOffset()
	s := fmt.Sprintf("rows %d  selected %s  offset %g  moved %d  frame %d",
		len(a.Demo.Rows), selected, off.Y, a.last, a.frames)
	if !a.fit.Empty() {
		s += fmt.Sprintf("  fit %gx%g", a.fit.Width, a.fit.Height)
	}
	return Styles.Muted.Render(s + "  SPC menu  q quit")
}
