package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"layoutkit/internal/layout"
)

func TestCanvas_Box(t *testing.T) {
	c := NewCanvas(6, 4)
	c.Box(layout.Rect{Width: 6, Height: 3}, ClassBorder, c.Bounds())

	assert.Equal(t, []string{
		"╭────╮",
		"│    │",
		"╰────╯",
		"      ",
	}, c.Lines())
}

func TestCanvas_Clipping(t *testing.T) {
	c := NewCanvas(6, 2)
	c.Text(0, 0, "abcdefgh", ClassNormal, layout.Rect{X: 2, Width: 2, Height: 1})
	c.Fill(layout.Rect{X: -3, Y: 1, Width: 20, Height: 5}, '#', ClassNormal, c.Bounds())

	assert.Equal(t, []string{"  cd  ", "######"}, c.Lines())
}

func TestCanvas_TooSmallBoxSkipped(t *testing.T) {
	c := NewCanvas(3, 1)
	c.Box(layout.Rect{Width: 3, Height: 1}, ClassBorder, c.Bounds())
	assert.Equal(t, []string{"   "}, c.Lines())
}

func TestCanvas_RenderKeepsText(t *testing.T) {
	c := NewCanvas(8, 2)
	c.Text(0, 0, "ab", ClassTitle, c.Bounds())
	c.Text(2, 0, "cd", ClassMuted, c.Bounds())
	out := c.Render()

	assert.Equal(t, 2, len(strings.Split(out, "\n")))
	assert.Contains(t, out, "ab")
	assert.Contains(t, out, "cd")
}

func TestCanvas_WideRunes(t *testing.T) {
	c := NewCanvas(5, 1)
	c.Text(0, 0, "日本語", ClassNormal, c.Bounds())
	assert.Equal(t, []string{"日本 "}, c.Lines())
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"layoutkit", 20, "layoutkit"},
		{"layoutkit", 6, "layou…"},
		{"layoutkit", 1, "…"},
		{"layoutkit", 0, ""},
		{"日本語", 4, "日…"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Truncate(tt.in, tt.width), "%q at %d", tt.in, tt.width)
	}
}
