package cassowary

import (
	"fmt"
	"math"
	"sort"
)

// tag records the marker symbols a constraint introduced into the tableau.
type tag struct {
	marker symbol
	other  symbol
}

type constraintEntry struct {
	constraint Constraint
	tag        tag
}

type editInfo struct {
	tag        tag
	constraint Constraint
	constant   float64
}

// Change is a variable whose solved value differs from the last fetch.
type Change struct {
	Variable *Variable
	Value    float64
}

// Solver is an incremental Cassowary solver.
type Solver struct {
	constraints map[string]*constraintEntry
	rows        map[symbol]*row
	vars        map[*Variable]symbol
	varRefs     map[*Variable]int
	edits       map[*Variable]*editInfo
	infeasible  []symbol
	objective   *row
	artificial  *row
	nextID      uint64
	published   map[*Variable]float64
}

// NewSolver returns an empty solver.
func NewSolver() *Solver {
	s := &Solver{}
	s.Reset()
	return s
}

// Reset drops every constraint, edit variable and cached value.
func (s *Solver) Reset() {
	s.constraints = make(map[string]*constraintEntry)
	s.rows = make(map[symbol]*row)
	s.vars = make(map[*Variable]symbol)
	s.varRefs = make(map[*Variable]int)
	s.edits = make(map[*Variable]*editInfo)
	s.infeasible = nil
	s.objective = newRow(0)
	s.artificial = nil
	s.published = make(map[*Variable]float64)
}

// NumConstraints returns the number of installed constraints, edit
// constraints included.
func (s *Solver) NumConstraints() int { return len(s.constraints) }

// HasConstraint reports whether a structurally equal constraint is installed.
func (s *Solver) HasConstraint(c Constraint) bool {
	_, ok := s.constraints[c.key]
	return ok
}

// AddConstraints adds each constraint in order and stops at the first error.
func (s *Solver) AddConstraints(cs ...Constraint) error {
	for _, c := range cs {
		if err := s.AddConstraint(c); err != nil {
			return err
		}
	}
	return nil
}

// AddConstraint installs c. On error the solver is left as it was.
func (s *Solver) AddConstraint(c Constraint) error {
	if s.HasConstraint(c) {
		return fmt.Errorf("%w: %s", ErrDuplicateConstraint, c)
	}

	var created []*Variable
	var t tag
	r := s.createRow(c, &t, &created)
	subject := s.chooseSubject(r, t)

	if !subject.valid() && allDummies(r) {
		if !nearZero(r.constant) {
			s.forgetCreated(created)
			return fmt.Errorf("%w: %s", ErrUnsatisfiable, c)
		}
		subject = t.marker
	}

	if !subject.valid() {
		snap := s.snapshot()
		ok, err := s.addWithArtificialVariable(r)
		if err != nil || !ok {
			s.restore(snap)
			s.forgetCreated(created)
			if err != nil {
				return err
			}
			return fmt.Errorf("%w: %s", ErrUnsatisfiable, c)
		}
	} else {
		r.solveFor(subject)
		s.substitute(subject, r)
		s.rows[subject] = r
	}

	s.constraints[c.key] = &constraintEntry{constraint: c, tag: t}
	for _, v := range c.Variables() {
		s.varRefs[v]++
	}
	return s.optimize(s.objective)
}

// RemoveConstraint withdraws a structurally equal installed constraint.
func (s *Solver) RemoveConstraint(c Constraint) error {
	entry, ok := s.constraints[c.key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownConstraint, c)
	}
	delete(s.constraints, c.key)
	for v, info := range s.edits {
		if info.constraint.key == c.key {
			delete(s.edits, v)
		}
	}
	t := entry.tag
	s.removeConstraintEffects(entry.constraint, t)

	// A marker found in no row no longer affects the tableau.
	if _, ok := s.rows[t.marker]; ok {
		delete(s.rows, t.marker)
	} else if leaving, r := s.markerLeavingRow(t.marker); r != nil {
		delete(s.rows, leaving)
		r.solveForPair(leaving, t.marker)
		s.substitute(t.marker, r)
	}

	for _, v := range entry.constraint.Variables() {
		s.varRefs[v]--
		if s.varRefs[v] <= 0 {
			s.forgetVariable(v)
		}
	}
	return s.optimize(s.objective)
}

// AddEditVariable makes v suggestible at the given (non-required) strength.
func (s *Solver) AddEditVariable(v *Variable, strength Strength) error {
	if _, ok := s.edits[v]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateEditVariable, v)
	}
	strength = strength.Clip()
	if strength.IsRequired() {
		return fmt.Errorf("%w: %s", ErrBadRequiredStrength, v)
	}
	c := NewConstraint(v.Expr(), EQ, Constant(0), strength)
	if err := s.AddConstraint(c); err != nil {
		return err
	}
	s.edits[v] = &editInfo{tag: s.constraints[c.key].tag, constraint: c}
	return nil
}

// RemoveEditVariable drops the edit constraint on v.
func (s *Solver) RemoveEditVariable(v *Variable) error {
	info, ok := s.edits[v]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownEditVariable, v)
	}
	delete(s.edits, v)
	return s.RemoveConstraint(info.constraint)
}

// HasEditVariable reports whether v is an edit variable.
func (s *Solver) HasEditVariable(v *Variable) bool {
	_, ok := s.edits[v]
	return ok
}

// SuggestValue moves the target of edit variable v and re-solves with the
// dual simplex, touching only rows that depend on v's edit markers.
func (s *Solver) SuggestValue(v *Variable, value float64) error {
	info, ok := s.edits[v]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownEditVariable, v)
	}
	delta := value - info.constant
	info.constant = value

	if r, ok := s.rows[info.tag.marker]; ok {
		if r.add(-delta) < 0 {
			s.infeasible = append(s.infeasible, info.tag.marker)
		}
		return s.dualOptimize()
	}
	if r, ok := s.rows[info.tag.other]; ok {
		if r.add(delta) < 0 {
			s.infeasible = append(s.infeasible, info.tag.other)
		}
		return s.dualOptimize()
	}
	for _, sym := range s.rowSymbols() {
		r := s.rows[sym]
		coeff := r.coefficientFor(info.tag.marker)
		if coeff != 0 && r.add(delta*coeff) < 0 && sym.kind != externalSymbol {
			s.infeasible = append(s.infeasible, sym)
		}
	}
	return s.dualOptimize()
}

// Value returns the current solved value of v, or 0 when v is unknown.
func (s *Solver) Value(v *Variable) float64 {
	sym, ok := s.vars[v]
	if !ok {
		return 0
	}
	if r, ok := s.rows[sym]; ok {
		return r.constant
	}
	return 0
}

// FetchChanges returns the variables whose value changed since the last
// call. A variable seen for the first time is always reported.
func (s *Solver) FetchChanges() []Change {
	vars := make([]*Variable, 0, len(s.vars))
	for v := range s.vars {
		vars = append(vars, v)
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i].id < vars[j].id })

	var out []Change
	for _, v := range vars {
		val := s.Value(v)
		prev, seen := s.published[v]
		if seen && nearZero(val-prev) {
			continue
		}
		s.published[v] = val
		out = append(out, Change{Variable: v, Value: val})
	}
	return out
}

func (s *Solver) newSymbol(kind symbolKind) symbol {
	s.nextID++
	return symbol{id: s.nextID, kind: kind}
}

func (s *Solver) varSymbol(v *Variable, created *[]*Variable) symbol {
	if sym, ok := s.vars[v]; ok {
		return sym
	}
	sym := s.newSymbol(externalSymbol)
	s.vars[v] = sym
	*created = append(*created, v)
	return sym
}

func (s *Solver) forgetCreated(created []*Variable) {
	for _, v := range created {
		if s.varRefs[v] == 0 {
			s.forgetVariable(v)
		}
	}
}

func (s *Solver) forgetVariable(v *Variable) {
	if sym, ok := s.vars[v]; ok {
		delete(s.rows, sym)
	}
	delete(s.vars, v)
	delete(s.varRefs, v)
	delete(s.published, v)
}

// createRow converts c into a tableau row, substituting basic variables
// and adding slack, error and dummy symbols.
func (s *Solver) createRow(c Constraint, t *tag, created *[]*Variable) *row {
	expr := c.expr
	r := newRow(expr.Constant)
	for _, term := range expr.Terms {
		if nearZero(term.Coefficient) {
			continue
		}
		sym := s.varSymbol(term.Variable, created)
		if basic, ok := s.rows[sym]; ok {
			r.insertRow(basic, term.Coefficient)
		} else {
			r.insertSymbol(sym, term.Coefficient)
		}
	}

	strength := float64(c.strength)
	switch c.op {
	case LE, GE:
		coeff := 1.0
		if c.op == GE {
			coeff = -1.0
		}
		slack := s.newSymbol(slackSymbol)
		t.marker = slack
		r.insertSymbol(slack, coeff)
		if !c.strength.IsRequired() {
			errSym := s.newSymbol(errorSymbol)
			t.other = errSym
			r.insertSymbol(errSym, -coeff)
			s.objective.insertSymbol(errSym, strength)
		}
	case EQ:
		if !c.strength.IsRequired() {
			errPlus := s.newSymbol(errorSymbol)
			errMinus := s.newSymbol(errorSymbol)
			t.marker = errPlus
			t.other = errMinus
			r.insertSymbol(errPlus, -1)
			r.insertSymbol(errMinus, 1)
			s.objective.insertSymbol(errPlus, strength)
			s.objective.insertSymbol(errMinus, strength)
		} else {
			dummy := s.newSymbol(dummySymbol)
			t.marker = dummy
			r.insertSymbol(dummy, 1)
		}
	}

	if r.constant < 0 {
		r.reverseSign()
	}
	return r
}

// chooseSubject picks the symbol to make basic: any external symbol, else
// a negative slack or error marker. Invalid means an artificial variable
// is needed.
func (s *Solver) chooseSubject(r *row, t tag) symbol {
	for _, sym := range r.symbols() {
		if sym.kind == externalSymbol {
			return sym
		}
	}
	if t.marker.restricted() && r.coefficientFor(t.marker) < 0 {
		return t.marker
	}
	if t.other.restricted() && r.coefficientFor(t.other) < 0 {
		return t.other
	}
	return symbol{}
}

func allDummies(r *row) bool {
	for sym := range r.cells {
		if sym.kind != dummySymbol {
			return false
		}
	}
	return true
}

func (s *Solver) addWithArtificialVariable(r *row) (bool, error) {
	art := s.newSymbol(slackSymbol)
	s.rows[art] = r.clone()
	s.artificial = r.clone()

	if err := s.optimize(s.artificial); err != nil {
		s.artificial = nil
		return false, err
	}
	success := nearZero(s.artificial.constant)
	s.artificial = nil

	if basic, ok := s.rows[art]; ok {
		delete(s.rows, art)
		if len(basic.cells) == 0 {
			return success, nil
		}
		entering := anyPivotableSymbol(basic)
		if !entering.valid() {
			return false, nil
		}
		basic.solveForPair(art, entering)
		s.substitute(entering, basic)
		s.rows[entering] = basic
	}

	for _, other := range s.rows {
		other.remove(art)
	}
	s.objective.remove(art)
	return success, nil
}

func anyPivotableSymbol(r *row) symbol {
	for _, sym := range r.symbols() {
		if sym.restricted() {
			return sym
		}
	}
	return symbol{}
}

// substitute replaces sym everywhere with r and queues rows that became
// infeasible.
func (s *Solver) substitute(sym symbol, r *row) {
	for _, basic := range s.rowSymbols() {
		other := s.rows[basic]
		other.substitute(sym, r)
		if basic.kind != externalSymbol && other.constant < 0 {
			s.infeasible = append(s.infeasible, basic)
		}
	}
	s.objective.substitute(sym, r)
	if s.artificial != nil {
		s.artificial.substitute(sym, r)
	}
}

// optimize runs the primal simplex on objective until no entering symbol
// remains.
func (s *Solver) optimize(objective *row) error {
	for {
		entering := enteringSymbol(objective)
		if !entering.valid() {
			return nil
		}
		leaving, r := s.leavingRow(entering)
		if r == nil {
			return fmt.Errorf("%w: objective is unbounded", ErrInternal)
		}
		delete(s.rows, leaving)
		r.solveForPair(leaving, entering)
		s.substitute(entering, r)
		s.rows[entering] = r
	}
}

// dualOptimize restores feasibility after edit suggestions.
func (s *Solver) dualOptimize() error {
	for len(s.infeasible) > 0 {
		leaving := s.infeasible[len(s.infeasible)-1]
		s.infeasible = s.infeasible[:len(s.infeasible)-1]
		r, ok := s.rows[leaving]
		if !ok || nearZero(r.constant) || r.constant >= 0 {
			continue
		}
		entering := s.dualEnteringSymbol(r)
		if !entering.valid() {
			return fmt.Errorf("%w: dual optimize failed", ErrInternal)
		}
		delete(s.rows, leaving)
		r.solveForPair(leaving, entering)
		s.substitute(entering, r)
		s.rows[entering] = r
	}
	return nil
}

func enteringSymbol(objective *row) symbol {
	for _, sym := range objective.symbols() {
		if sym.kind != dummySymbol && objective.cells[sym] < 0 {
			return sym
		}
	}
	return symbol{}
}

func (s *Solver) dualEnteringSymbol(r *row) symbol {
	var entering symbol
	ratio := math.MaxFloat64
	for _, sym := range r.symbols() {
		c := r.cells[sym]
		if c > 0 && sym.kind != dummySymbol {
			if q := s.objective.coefficientFor(sym) / c; q < ratio {
				ratio = q
				entering = sym
			}
		}
	}
	return entering
}

func (s *Solver) leavingRow(entering symbol) (symbol, *row) {
	ratio := math.MaxFloat64
	var found symbol
	var foundRow *row
	for _, sym := range s.rowSymbols() {
		if sym.kind == externalSymbol {
			continue
		}
		r := s.rows[sym]
		c := r.coefficientFor(entering)
		if c < 0 {
			if q := -r.constant / c; q < ratio {
				ratio = q
				found = sym
				foundRow = r
			}
		}
	}
	return found, foundRow
}

// markerLeavingRow finds the row to pivot a non-basic marker into the
// basis when its constraint is removed.
// A basic dummy row (a redundant required equality) holding the marker
// is taken first: it holds only dummies, so the pivot keeps every dummy
// row at zero.
func (s *Solver) markerLeavingRow(marker symbol) (symbol, *row) {
	r1, r2 := math.MaxFloat64, math.MaxFloat64
	var dummy, first, second, third symbol
	for _, sym := range s.rowSymbols() {
		r := s.rows[sym]
		c := r.coefficientFor(marker)
		if c == 0 {
			continue
		}
		switch {
		case sym.kind == dummySymbol:
			if !dummy.valid() {
				dummy = sym
			}
		case sym.kind == externalSymbol:
			third = sym
		case c < 0:
			if q := -r.constant / c; q < r1 {
				r1 = q
				first = sym
			}
		default:
			if q := r.constant / c; q < r2 {
				r2 = q
				second = sym
			}
		}
	}
	for _, sym := range []symbol{dummy, first, second, third} {
		if sym.valid() {
			return sym, s.rows[sym]
		}
	}
	return symbol{}, nil
}

func (s *Solver) removeConstraintEffects(c Constraint, t tag) {
	if t.marker.kind == errorSymbol {
		s.removeMarkerEffects(t.marker, c.strength)
	}
	if t.other.kind == errorSymbol {
		s.removeMarkerEffects(t.other, c.strength)
	}
}

func (s *Solver) removeMarkerEffects(marker symbol, strength Strength) {
	if r, ok := s.rows[marker]; ok {
		s.objective.insertRow(r, -float64(strength))
		return
	}
	s.objective.insertSymbol(marker, -float64(strength))
}

func (s *Solver) rowSymbols() []symbol {
	out := make([]symbol, 0, len(s.rows))
	for sym := range s.rows {
		out = append(out, sym)
	}
	sortSymbols(out)
	return out
}

type snapshot struct {
	rows       map[symbol]*row
	objective  *row
	infeasible []symbol
}

func (s *Solver) snapshot() snapshot {
	rows := make(map[symbol]*row, len(s.rows))
	for sym, r := range s.rows {
		rows[sym] = r.clone()
	}
	return snapshot{
		rows:       rows,
		objective:  s.objective.clone(),
		infeasible: append([]symbol(nil), s.infeasible...),
	}
}

func (s *Solver) restore(snap snapshot) {
	s.rows = snap.rows
	s.objective = snap.objective
	s.infeasible = snap.infeasible
	s.artificial = nil
}
