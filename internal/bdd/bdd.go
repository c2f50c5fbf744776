// SPDX-License-Identifier: MIT

// Package bdd wraps github.com/dalzilio/rudd to provide a minimal
// reduced-ordered BDD oracle, used by verify.go as an independent
// cross-check of equivalence claims the SAT-backed FRAIG pass makes.
package bdd

import "github.com/dalzilio/rudd"

// Oracle is a fixed-variable-count BDD manager.
type Oracle struct {
	bdd   *rudd.BDD
	vars  []rudd.Node
}

// New allocates an Oracle over nVars boolean variables.
func New(nVars int) (*Oracle, error) {
	b, err := rudd.New(nVars)
	if err != nil {
		return nil, err
	}
	vars := make([]rudd.Node, nVars)
	for i := range vars {
		vars[i] = b.Ithvar(i)
	}
	return &Oracle{bdd: b, vars: vars}, nil
}

// Var returns the BDD node for variable i.
func (o *Oracle) Var(i int) rudd.Node { return o.vars[i] }

// And, Or, Xor, Not mirror the corresponding Boolean operators.
func (o *Oracle) And(a, b rudd.Node) rudd.Node { return o.bdd.And(a, b) }
func (o *Oracle) Or(a, b rudd.Node) rudd.Node  { return o.bdd.Or(a, b) }
func (o *Oracle) Xor(a, b rudd.Node) rudd.Node { return o.bdd.Xor(a, b) }
func (o *Oracle) Not(a rudd.Node) rudd.Node    { return o.bdd.Not(a) }

// Equal reports whether a and b denote the same function: in a
// canonical ROBDD this is reference (pointer/index) equality.
func (o *Oracle) Equal(a, b rudd.Node) bool { return a == b }

// One and Zero return the constant-true and constant-false nodes.
func (o *Oracle) One() rudd.Node  { return o.bdd.One() }
func (o *Oracle) Zero() rudd.Node { return o.bdd.Zero() }
