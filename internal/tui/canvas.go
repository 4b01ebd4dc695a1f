package tui

import (
	"math"
	"strings"

	"github.com/mattn/go-runewidth"

	"layoutkit/internal/layout"
	"layoutkit/internal/ui"
)

// Decoration is how one widget is painted. Widgets without one are
// invisible containers.
type Decoration struct {
	Label  string
	Border bool
	Class  Class
}

type cell struct {
	r     rune
	class Class
}

// Canvas is a grid of terminal cells. Everything drawn is clipped to a
// caller-supplied rectangle and to the canvas itself.
type Canvas struct {
	width, height int
	cells         []cell
}

// NewCanvas returns a blank canvas.
func NewCanvas(width, height int) *Canvas {
	width, height = max(0, width), max(0, height)
	c := &Canvas{width: width, height: height, cells: make([]cell, width*height)}
	for i := range c.cells {
		c.cells[i] = cell{r: ' '}
	}
	return c
}

// Bounds returns the canvas area.
func (c *Canvas) Bounds() layout.Rect {
	return layout.Rect{Width: float64(c.width), Height: float64(c.height)}
}

// cellRect snaps r to whole cells: x0,y0 inclusive, x1,y1 exclusive.
func cellRect(r layout.Rect) (x0, y0, x1, y1 int) {
	return int(math.Round(r.X)), int(math.Round(r.Y)),
		int(math.Round(r.Right())), int(math.Round(r.Bottom()))
}

func (c *Canvas) inside(x, y int, clip layout.Rect) bool {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return false
	}
	cx0, cy0, cx1, cy1 := cellRect(clip)
	return x >= cx0 && y >= cy0 && x < cx1 && y < cy1
}

// set writes one cell. A zero rune marks the second column of a wide rune.
func (c *Canvas) set(x, y int, r rune, class Class, clip layout.Rect) {
	if c.inside(x, y, clip) {
		c.cells[y*c.width+x] = cell{r: r, class: class}
	}
}

// Fill paints r with ch.
func (c *Canvas) Fill(r layout.Rect, ch rune, class Class, clip layout.Rect) {
	x0, y0, x1, y1 := cellRect(r)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			c.set(x, y, ch, class, clip)
		}
	}
}

// Box draws a rounded border on the outermost cells of r.
func (c *Canvas) Box(r layout.Rect, class Class, clip layout.Rect) {
	x0, y0, x1, y1 := cellRect(r)
	if x1-x0 < 2 || y1-y0 < 2 {
		return
	}
	for x := x0 + 1; x < x1-1; x++ {
		c.set(x, y0, '─', class, clip)
		c.set(x, y1-1, '─', class, clip)
	}
	for y := y0 + 1; y < y1-1; y++ {
		c.set(x0, y, '│', class, clip)
		c.set(x1-1, y, '│', class, clip)
	}
	c.set(x0, y0, '╭', class, clip)
	c.set(x1-1, y0, '╮', class, clip)
	c.set(x0, y1-1, '╰', class, clip)
	c.set(x1-1, y1-1, '╯', class, clip)
}

// Text writes s from (x, y) rightwards. Wide runes take two cells; one
// that would be cut in half is drawn as a space.
func (c *Canvas) Text(x, y int, s string, class Class, clip layout.Rect) {
	for _, r := range s {
		switch runewidth.RuneWidth(r) {
		case 0:
			continue
		case 2:
			if !c.inside(x+1, y, clip) {
				c.set(x, y, ' ', class, clip)
				return
			}
			c.set(x, y, r, class, clip)
			c.set(x+1, y, 0, class, clip)
			x += 2
		default:
			c.set(x, y, r, class, clip)
			x++
		}
	}
}

// Lines returns the canvas as plain text, one string per row.
func (c *Canvas) Lines() []string {
	lines := make([]string, c.height)
	var b strings.Builder
	for y := 0; y < c.height; y++ {
		b.Reset()
		for _, cl := range c.cells[y*c.width : (y+1)*c.width] {
			if cl.r != 0 {
				b.WriteRune(cl.r)
			}
		}
		lines[y] = b.String()
	}
	return lines
}

// Render returns the canvas styled with lipgloss. Runs of cells sharing a
// class are rendered together.
func (c *Canvas) Render() string {
	var out strings.Builder
	var run strings.Builder
	for y := 0; y < c.height; y++ {
		if y > 0 {
			out.WriteByte('\n')
		}
		row := c.cells[y*c.width : (y+1)*c.width]
		for i := 0; i < len(row); {
			class := row[i].class
			run.Reset()
			for ; i < len(row) && row[i].class == class; i++ {
				if row[i].r != 0 {
					run.WriteRune(row[i].r)
				}
			}
			out.WriteString(class.style().Render(run.String()))
		}
	}
	return out.String()
}

// Paint draws the attached widgets of u in tree order. Each widget is
// clipped to the bounds of all its ancestors, so viewport content that
// scrolled out of view is hidden.
func Paint(c *Canvas, u *ui.UI, decorate func(layout.WidgetID) (Decoration, bool)) {
	clips := make(map[layout.WidgetID]layout.Rect)
	for _, info := range u.Snapshot() {
		clip := c.Bounds()
		if parent, ok := clips[info.Parent]; ok {
			clip = parent
		}
		clips[info.ID] = info.Bounds.Intersect(clip)

		d, ok := decorate(info.ID)
		if !ok || info.Bounds.Empty() {
			continue
		}
		c.Fill(info.Bounds, ' ', d.Class, clip)
		inner := clips[info.ID]
		if d.Border {
			c.Box(info.Bounds, ClassBorder, clip)
			b := info.Bounds
			inner = layout.Rect{X: b.X + 1, Y: b.Y + 1, Width: b.Width - 2, Height: b.Height - 2}.Intersect(inner)
		}
		if d.Label != "" {
			x, y, x1, _ := cellRect(inner)
			c.Text(x, y, Truncate(d.Label, x1-x), d.Class, inner)
		}
	}
}
