package tui

import (
	"fmt"
	"slices"

	"layoutkit/internal/cassowary"
	"layoutkit/internal/config"
	"layoutkit/internal/layout"
	"layoutkit/internal/ui"
)

// Demo is a small list editor laid out by the engine:
//
//	root (exact frame)
//	└── app (vbox)
//	    ├── header
//	    ├── toolbar (hbox): add, delete
//	    └── viewport (scrolls its child)
//	        └── list (vbox): rows
type Demo struct {
	UI *ui.UI

	App, Header, Toolbar, AddButton, DeleteButton, Viewport, List layout.WidgetID

	// Rows in list order
	Rows []layout.WidgetID

	decorations map[layout.WidgetID]Decoration
	nextRow     int
}

// BuildDemo attaches the demo tree under u's root and queues its layout.
// The caller processes u's queue.
func BuildDemo(u *ui.UI, cfg config.DemoConfig) (*Demo, error) {
	d := &Demo{UI: u, decorations: make(map[layout.WidgetID]Decoration)}
	pad := cfg.Padding

	if err := u.SetContainer(u.Root(), &layout.ExactFrame{}); err != nil {
		return nil, err
	}

	app := u.NewWidget("app")
	if err := u.VBox(app.ID, pad, true); err != nil {
		return nil, err
	}

	header := u.NewWidget("header")
	header.Node.Height(3)
	d.decorations[header.ID] = Decoration{Label: "layoutkit", Border: true, Class: ClassTitle}

	toolbar := u.NewWidget("toolbar")
	toolbar.Node.Height(3)
	if err := u.HBox(toolbar.ID, pad, true); err != nil {
		return nil, err
	}
	add := u.NewWidget("add")
	add.Node.Width(9)
	d.decorations[add.ID] = Decoration{Label: "+ Add", Border: true, Class: ClassButton}
	del := u.NewWidget("delete")
	del.Node.Width(12)
	d.decorations[del.ID] = Decoration{Label: "- Delete", Border: true, Class: ClassButton}

	viewport := u.NewWidget("viewport")
	viewport.Node.MinHeight(1)
	// The viewport takes the space left below the toolbar.
	viewport.Node.Add(cassowary.NewConstraint(
		viewport.Node.Bottom.Expr(), cassowary.EQ,
		app.Node.Bottom.Expr().Plus(-pad), cassowary.Strong))
	if err := u.ContentsScroll(viewport.ID); err != nil {
		return nil, err
	}

	list := u.NewWidget("list")
	list.Node.MatchWidth(viewport.Node)
	if err := u.VBox(list.ID, 0, true); err != nil {
		return nil, err
	}

	d.App, d.Header, d.Toolbar = app.ID, header.ID, toolbar.ID
	d.AddButton, d.DeleteButton = add.ID, del.ID
	d.Viewport, d.List = viewport.ID, list.ID

	for _, edge := range [][2]layout.WidgetID{
		{u.Root(), app.ID},
		{app.ID, header.ID},
		{app.ID, toolbar.ID},
		{toolbar.ID, add.ID},
		{toolbar.ID, del.ID},
		{app.ID, viewport.ID},
		{viewport.ID, list.ID},
	} {
		if err := u.AddChild(edge[0], edge[1]); err != nil {
			return nil, err
		}
	}
	for range cfg.Rows {
		if _, err := d.AddRow(); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// AddRow appends a one-line row to the list.
func (d *Demo) AddRow() (layout.WidgetID, error) {
	d.nextRow++
	w := d.UI.NewWidget(fmt.Sprintf("row-%d", d.nextRow))
	w.Node.Height(1)
	if err := d.UI.AddChild(d.List, w.ID); err != nil {
		return layout.NoWidget, err
	}
	d.decorations[w.ID] = Decoration{Label: fmt.Sprintf(" row %d", d.nextRow), Class: ClassNormal}
	d.Rows = append(d.Rows, w.ID)
	return w.ID, nil
}

// RemoveRow detaches a row. Its successors close the gap once the queue
// is processed.
func (d *Demo) RemoveRow(id layout.WidgetID) error {
	i := slices.Index(d.Rows, id)
	if i < 0 {
		return fmt.Errorf("remove row: %d: %w", id, ui.ErrUnknownWidget)
	}
	if err := d.UI.RemoveWidget(id); err != nil {
		return err
	}
	d.Rows = slices.Delete(d.Rows, i, i+1)
	delete(d.decorations, id)
	return nil
}

// IsRow reports whether id is one of the list rows.
func (d *Demo) IsRow(id layout.WidgetID) bool {
	return slices.Contains(d.Rows, id)
}

// Decoration returns how id is painted.
func (d *Demo) Decoration(id layout.WidgetID) (Decoration, bool) {
	dec, ok := d.decorations[id]
	return dec, ok
}

// ScrollOffset returns the list's current offset inside the viewport.
func (d *Demo) ScrollOffset() layout.Point {
	if w, ok := d.UI.Widget(d.List); ok && w.ScrollHandler() != nil {
		return w.ScrollHandler().Offset()
	}
	return layout.Point{}
}
