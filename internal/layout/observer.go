package layout

import "log"

// MultiObserver fans solver activity out to several observers. A panicking
// observer does not keep the others from running.
type MultiObserver struct {
	observers []Observer
}

var _ Observer = (*MultiObserver)(nil)

// NewMultiObserver forwards to every non-nil observer given.
func NewMultiObserver(observers ...Observer) *MultiObserver {
	filtered := make([]Observer, 0, len(observers))
	for _, o := range observers {
		if o != nil {
			filtered = append(filtered, o)
		}
	}
	return &MultiObserver{observers: filtered}
}

// Len returns the number of observers forwarded to.
func (m *MultiObserver) Len() int { return len(m.observers) }

func safeCall(fn func()) {
	defer func() { _ = recover() }()
	fn()
}

func (m *MultiObserver) ObserveUpdate(s UpdateStats) {
	for _, o := range m.observers {
		safeCall(func() { o.ObserveUpdate(s) })
	}
}

func (m *MultiObserver) ObserveSuggest(err error) {
	for _, o := range m.observers {
		safeCall(func() { o.ObserveSuggest(err) })
	}
}

// LogObserver logs failed updates and suggestions.
type LogObserver struct {
	Logger *log.Logger
}

func (l LogObserver) ObserveUpdate(s UpdateStats) {
	if s.Err != nil {
		l.Logger.Printf("layout.Update: widget %d failed after %s: %v", s.Widget, s.Duration, s.Err)
	}
}

func (l LogObserver) ObserveSuggest(err error) {
	if err != nil {
		l.Logger.Printf("layout.Suggest: %v", err)
	}
}
