package cassowary

import (
	"math"
	"sort"
)

type symbolKind uint8

const (
	invalidSymbol symbolKind = iota
	externalSymbol
	slackSymbol
	errorSymbol
	dummySymbol
)

// symbol is a tableau column. The zero value is invalid.
type symbol struct {
	id   uint64
	kind symbolKind
}

func (s symbol) valid() bool { return s.kind != invalidSymbol }

// restricted symbols must stay non-negative.
func (s symbol) restricted() bool { return s.kind == slackSymbol || s.kind == errorSymbol }

const epsilon = 1e-8

func nearZero(v float64) bool { return math.Abs(v) < epsilon }

// row is `basic = constant + Σ cells`.
type row struct {
	constant float64
	cells    map[symbol]float64
}

func newRow(constant float64) *row {
	return &row{constant: constant, cells: make(map[symbol]float64)}
}

func (r *row) clone() *row {
	out := newRow(r.constant)
	for s, c := range r.cells {
		out.cells[s] = c
	}
	return out
}

// symbols returns the row's symbols ordered by creation so that pivot
// choices do not depend on map iteration order.
func (r *row) symbols() []symbol {
	out := make([]symbol, 0, len(r.cells))
	for s := range r.cells {
		out = append(out, s)
	}
	sortSymbols(out)
	return out
}

func (r *row) add(v float64) float64 {
	r.constant += v
	return r.constant
}

func (r *row) insertSymbol(s symbol, coefficient float64) {
	c := r.cells[s] + coefficient
	if nearZero(c) {
		delete(r.cells, s)
		return
	}
	r.cells[s] = c
}

func (r *row) insertRow(other *row, coefficient float64) {
	r.constant += other.constant * coefficient
	for s, c := range other.cells {
		r.insertSymbol(s, c*coefficient)
	}
}

func (r *row) remove(s symbol) { delete(r.cells, s) }

func (r *row) reverseSign() {
	r.constant = -r.constant
	for s, c := range r.cells {
		r.cells[s] = -c
	}
}

// solveFor rewrites the row so s becomes the basic symbol. s must be in
// the row.
func (r *row) solveFor(s symbol) {
	coeff := -1 / r.cells[s]
	delete(r.cells, s)
	r.constant *= coeff
	for k, c := range r.cells {
		r.cells[k] = c * coeff
	}
}

// solveForPair moves lhs into the row and solves for rhs.
func (r *row) solveForPair(lhs, rhs symbol) {
	r.insertSymbol(lhs, -1)
	r.solveFor(rhs)
}

func (r *row) coefficientFor(s symbol) float64 { return r.cells[s] }

// substitute replaces s with the expression in other.
func (r *row) substitute(s symbol, other *row) {
	if c, ok := r.cells[s]; ok {
		delete(r.cells, s)
		r.insertRow(other, c)
	}
}

func sortSymbols(ss []symbol) {
	sort.Slice(ss, func(i, j int) bool { return ss[i].id < ss[j].id })
}
