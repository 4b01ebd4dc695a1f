package layout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"layoutkit/internal/cassowary"
)

var (
	// ErrInfeasible is returned when a node's required constraints
	// conflict with those already installed. Nothing from the failing
	// update is kept.
	ErrInfeasible = errors.New("infeasible required constraints")
	// ErrNotEditable is returned when suggesting a value for a variable
	// that was never registered as an edit variable.
	ErrNotEditable = errors.New("variable is not an edit variable")
)

// Change is one edge whose solved value moved.
type Change struct {
	Widget WidgetID
	Edge   Edge
	Value  float64
}

// UpdateStats describes one UpdateLayout call.
type UpdateStats struct {
	Widget      WidgetID
	Installed   int
	Changes     int
	Constraints int
	Duration    time.Duration
	Err         error
}

// Observer receives solver activity. Implementations must be cheap; they
// run inline on the UI thread.
type Observer interface {
	ObserveUpdate(UpdateStats)
	ObserveSuggest(err error)
}

type edgeRef struct {
	widget WidgetID
	edge   Edge
}

// Solver is the single constraint system of a UI. Nodes push their
// constraints into it; it reports which edges changed.
type Solver struct {
	solver   *cassowary.Solver
	owners   map[*cassowary.Variable]edgeRef
	tracer   oteltrace.Tracer
	observer Observer
}

// SolverOption configures a Solver.
type SolverOption func(*Solver)

// WithTracer wraps every UpdateLayout in a span.
func WithTracer(t oteltrace.Tracer) SolverOption {
	return func(s *Solver) {
		if t != nil {
			s.tracer = t
		}
	}
}

// WithObserver reports every update and suggestion to o.
func WithObserver(o Observer) SolverOption {
	return func(s *Solver) { s.observer = o }
}

// NewSolver returns an empty layout solver.
func NewSolver(opts ...SolverOption) *Solver {
	s := &Solver{
		solver: cassowary.NewSolver(),
		owners: make(map[*cassowary.Variable]edgeRef),
		tracer: noop.NewTracerProvider().Tracer("layoutkit/layout"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register records which widget edge each of n's variables stands for.
// UpdateLayout registers implicitly.
func (s *Solver) Register(n *Node) {
	for i, v := range n.Vars() {
		s.owners[v] = edgeRef{widget: n.ID, edge: Edge(i)}
	}
}

// UpdateLayout installs n's pending constraints and returns every edge
// whose value changed since the previous fetch. Calling it again with no
// tree change returns no changes.
func (s *Solver) UpdateLayout(n *Node) ([]Change, error) {
	_, span := s.tracer.Start(context.Background(), "layout.update",
		oteltrace.WithAttributes(
			attribute.Int("layoutkit.widget.id", int(n.ID)),
			attribute.String("layoutkit.widget.name", n.Name),
		))
	defer span.End()

	start := time.Now()
	s.Register(n)
	installed, err := n.UpdateSolver(s.solver)
	var changes []Change
	if err != nil {
		if errors.Is(err, cassowary.ErrUnsatisfiable) {
			err = fmt.Errorf("%w: %w", ErrInfeasible, err)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		changes = s.Changes()
	}

	span.SetAttributes(
		attribute.Int("layoutkit.constraints.installed", installed),
		attribute.Int("layoutkit.changes", len(changes)),
	)
	if s.observer != nil {
		s.observer.ObserveUpdate(UpdateStats{
			Widget:      n.ID,
			Installed:   installed,
			Changes:     len(changes),
			Constraints: s.solver.NumConstraints(),
			Duration:    time.Since(start),
			Err:         err,
		})
	}
	return changes, err
}

// Changes fetches the edges that moved since the last fetch, for use
// after SuggestValue.
func (s *Solver) Changes() []Change {
	raw := s.solver.FetchChanges()
	out := make([]Change, 0, len(raw))
	for _, c := range raw {
		ref, ok := s.owners[c.Variable]
		if !ok {
			continue
		}
		out = append(out, Change{Widget: ref.widget, Edge: ref.edge, Value: c.Value})
	}
	return out
}

// AddEditVariable makes v suggestible.
func (s *Solver) AddEditVariable(v *cassowary.Variable, strength cassowary.Strength) error {
	return s.solver.AddEditVariable(v, strength)
}

// HasEditVariable reports whether v is suggestible.
func (s *Solver) HasEditVariable(v *cassowary.Variable) bool {
	return s.solver.HasEditVariable(v)
}

// Editable registers n's left and top edges as edit variables at strength
// unless they already are.
func (s *Solver) Editable(n *Node, strength cassowary.Strength) error {
	for _, v := range []*cassowary.Variable{n.Left, n.Top} {
		if s.solver.HasEditVariable(v) {
			continue
		}
		if err := s.solver.AddEditVariable(v, strength); err != nil {
			return fmt.Errorf("%s: %w", n.Name, err)
		}
	}
	return nil
}

// SuggestValue drives edit variable v toward value. Suggesting for a
// variable that is not an edit variable is a caller bug and fails with
// ErrNotEditable.
func (s *Solver) SuggestValue(v *cassowary.Variable, value float64) error {
	var err error
	if !s.solver.HasEditVariable(v) {
		err = fmt.Errorf("%w: %s", ErrNotEditable, v)
	} else if serr := s.solver.SuggestValue(v, value); serr != nil {
		err = fmt.Errorf("suggest %s: %w", v, serr)
	}
	if s.observer != nil {
		s.observer.ObserveSuggest(err)
	}
	return err
}

// RemoveNode withdraws every constraint and edit variable of n. Used when
// a widget is torn down; constraints held by other nodes that mention n's
// variables are their owners' business.
func (s *Solver) RemoveNode(n *Node) error {
	for _, v := range n.Vars() {
		if s.solver.HasEditVariable(v) {
			if err := s.solver.RemoveEditVariable(v); err != nil {
				return fmt.Errorf("%s: %w", n.Name, err)
			}
		}
	}
	for _, c := range append(n.Constraints(), n.retracted...) {
		if !s.solver.HasConstraint(c) {
			continue
		}
		if err := s.solver.RemoveConstraint(c); err != nil {
			return fmt.Errorf("%s: %w", n.Name, err)
		}
	}
	n.retracted = nil
	for _, v := range n.Vars() {
		delete(s.owners, v)
	}
	return nil
}

// Value returns the solved value of v.
func (s *Solver) Value(v *cassowary.Variable) float64 { return s.solver.Value(v) }

// Bounds returns n's solved box.
func (s *Solver) Bounds(n *Node) Rect { return n.Bounds(s.solver) }

// NumConstraints returns the number of installed constraints.
func (s *Solver) NumConstraints() int { return s.solver.NumConstraints() }

// HasConstraint reports whether c is installed.
func (s *Solver) HasConstraint(c cassowary.Constraint) bool { return s.solver.HasConstraint(c) }
