package layout

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingObserver struct {
	updates, suggests int
	failed            int
}

func (c *countingObserver) ObserveUpdate(s UpdateStats) {
	c.updates++
	if s.Err != nil {
		c.failed++
	}
}

func (c *countingObserver) ObserveSuggest(error) { c.suggests++ }

type panickingObserver struct{}

func (panickingObserver) ObserveUpdate(UpdateStats) { panic("boom") }
func (panickingObserver) ObserveSuggest(error)      { panic("boom") }

func TestMultiObserver_FansOutPastPanics(t *testing.T) {
	a, b := &countingObserver{}, &countingObserver{}
	m := NewMultiObserver(a, nil, panickingObserver{}, b)
	assert.Equal(t, 3, m.Len())

	s := NewSolver(WithObserver(m))
	arena := NewArena()
	n := arena.New("box")
	n.Dimensions(3, 3)
	update(t, s, n)
	require.Error(t, s.SuggestValue(n.Left, 1))

	for _, o := range []*countingObserver{a, b} {
		assert.Equal(t, 1, o.updates)
		assert.Equal(t, 1, o.suggests)
		assert.Equal(t, 0, o.failed)
	}
}

func TestLogObserver_LogsFailuresOnly(t *testing.T) {
	var buf bytes.Buffer
	s := NewSolver(WithObserver(LogObserver{Logger: log.New(&buf, "", 0)}))
	arena := NewArena()

	ok := arena.New("ok")
	ok.Width(1)
	update(t, s, ok)
	assert.Empty(t, buf.String())

	bad := arena.New("bad")
	bad.Width(1)
	bad.Width(2)
	_, err := s.UpdateLayout(bad)
	require.Error(t, err)
	assert.Contains(t, buf.String(), "layout.Update: widget 1 failed")

	buf.Reset()
	require.Error(t, s.SuggestValue(ok.Left, 3))
	assert.Contains(t, buf.String(), "layout.Suggest:")
}
