// SPDX-License-Identifier: MIT

// Package satif defines the minimal SAT-solver surface the FRAIG pass
// needs, plus a concrete implementation backed by github.com/irifrance/gini.
// The interface exists so fraig.go and its tests can substitute a stub
// solver without linking gini.
package satif

import (
	"github.com/irifrance/gini"
	"github.com/irifrance/gini/z"
)

// Var is an opaque solver variable handle.
type Var uint32

// Lit is a literal: a Var together with a polarity.
type Lit int32

// PosLit and NegLit build a literal from a Var.
func PosLit(v Var) Lit { return Lit(v) }
func NegLit(v Var) Lit { return -Lit(v) }

// Result is the outcome of a bounded Solve call.
type Result int

const (
	Unknown Result = iota
	Sat
	Unsat
)

// Solver is the SAT capability the FRAIG engine consumes: variable
// allocation, clause addition (via the standard Tseitin templates the
// caller builds), assumption-based solving with a conflict budget,
// and model extraction.
type Solver interface {
	NewVar() Var
	AddClause(lits ...Lit)
	Solve(assumps []Lit, conflictBudget int) Result
	Value(v Var) bool
}

// GiniSolver wraps a real github.com/irifrance/gini instance behind
// Solver, translating this package's Var/Lit to gini's z.Var/z.Lit
// and its conflict-budget solving to gini's Try.
type GiniSolver struct {
	sat *gini.Gini
}

// NewGiniSolver allocates a fresh gini-backed Solver.
func NewGiniSolver() *GiniSolver {
	return &GiniSolver{sat: gini.New()}
}

func (g *GiniSolver) NewVar() Var {
	return Var(g.sat.NewVar())
}

func (g *GiniSolver) AddClause(lits ...Lit) {
	for _, l := range lits {
		g.sat.Add(toZLit(l))
	}
	g.sat.Add(0)
}

func (g *GiniSolver) Solve(assumps []Lit, conflictBudget int) Result {
	for _, a := range assumps {
		g.sat.Assume(toZLit(a))
	}
	var r int
	if conflictBudget > 0 {
		r = g.sat.Try(conflictBudget)
	} else {
		r = g.sat.Solve()
	}
	switch r {
	case 1:
		return Sat
	case -1:
		return Unsat
	default:
		return Unknown
	}
}

func (g *GiniSolver) Value(v Var) bool {
	return g.sat.Value(z.Var(v).Pos())
}

// toZLit converts a satif.Lit (signed Var-indexed int32) to gini's
// z.Lit, following the same Var.Pos()/Var.Neg() convention the
// vendored logic.C Tseitin encoder uses.
func toZLit(l Lit) z.Lit {
	if l < 0 {
		return z.Var(-l).Neg()
	}
	return z.Var(l).Pos()
}
