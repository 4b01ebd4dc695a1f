package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"layoutkit/internal/layout"
)

func TestFocusManager_NextPrevWrap(t *testing.T) {
	f := NewFocusManager()
	assert.Equal(t, layout.NoWidget, f.Next())

	var changes [][2]layout.WidgetID
	f.OnChange = func(from, to layout.WidgetID) { changes = append(changes, [2]layout.WidgetID{from, to}) }
	for _, id := range []layout.WidgetID{4, 5, 6} {
		f.Append(id)
	}
	assert.Equal(t, layout.WidgetID(4), f.Current)

	assert.Equal(t, layout.WidgetID(5), f.Next())
	assert.Equal(t, layout.WidgetID(6), f.Next())
	assert.Equal(t, layout.WidgetID(4), f.Next())
	assert.Equal(t, layout.WidgetID(6), f.Prev())

	assert.True(t, f.SetFocus(5))
	assert.False(t, f.SetFocus(9))
	assert.True(t, f.SetFocus(5))
	assert.Equal(t, [][2]layout.WidgetID{
		{layout.NoWidget, 4}, {4, 5}, {5, 6}, {6, 4}, {4, 6}, {6, 5},
	}, changes)
}

func TestFocusManager_Remove(t *testing.T) {
	tests := []struct {
		name    string
		current layout.WidgetID
		remove  layout.WidgetID
		want    layout.WidgetID
	}{
		{"unselected", 1, 2, 1},
		{"selected middle takes successor", 2, 2, 3},
		{"selected last takes new last", 3, 3, 2},
		{"unknown", 1, 7, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFocusManager()
			f.Order = []layout.WidgetID{1, 2, 3}
			f.Current = tt.current
			f.Remove(tt.remove)
			assert.Equal(t, tt.want, f.Current)
		})
	}

	f := NewFocusManager()
	f.Append(1)
	f.Remove(1)
	assert.Equal(t, layout.NoWidget, f.Current)
	assert.Empty(t, f.Order)
}
