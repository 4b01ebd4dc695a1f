package cassowary

import (
	"fmt"
	"sync/atomic"
)

var variableSeq atomic.Uint64

// Variable is a symbolic unknown. Identity is by pointer; two Variables
// with the same name are still distinct.
type Variable struct {
	id   uint64
	name string
}

// NewVariable creates a fresh variable. The name is only used for debugging.
func NewVariable(name string) *Variable {
	return &Variable{id: variableSeq.Add(1), name: name}
}

// Name returns the debug name.
func (v *Variable) Name() string { return v.name }

// ID returns the creation sequence number, unique per process.
func (v *Variable) ID() uint64 { return v.id }

func (v *Variable) String() string {
	if v.name == "" {
		return fmt.Sprintf("v%d", v.id)
	}
	return v.name
}

// Expr returns the expression 1·v.
func (v *Variable) Expr() Expression {
	return Expression{Terms: []Term{{Variable: v, Coefficient: 1}}}
}

// Term returns coefficient·v.
func (v *Variable) Term(coefficient float64) Term {
	return Term{Variable: v, Coefficient: coefficient}
}
