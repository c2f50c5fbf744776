// SPDX-License-Identifier: MIT

package aig

import "github.com/ivycore/aig/internal/satif"

// FraigStats summarizes one SAT-backed functional-reduction pass.
type FraigStats struct {
	ClassesChecked int
	Merged         int
	CounterExamples int
	TimedOut       int
}

// fraigEngine carries the lazy CNF state of §4.13: a map from already
// encoded node ids to their SAT variable, built incrementally as
// equivalence queries walk outward from the two candidate nodes to a
// frontier of already-encoded nodes (so repeated queries against the
// same representative reuse the earlier encoding instead of
// re-emitting clauses for it).
//
// It also tracks the three conflict budgets of §6: conflictPerNode
// bounds a single Solve call, conflictPerMiter bounds the pair of
// Solve calls that decide one equivalence candidate, and
// totalBudget/totalInspects bound the whole pass. satif.Solver has no
// hook to report the conflicts or clause inspections an individual
// Solve call actually spent, so the budget granted to that call is
// charged against the running totals in full — a documented
// over-charge (a decided call may have spent fewer) rather than an
// under-charge, which keeps the degrade-gracefully guarantee of §5
// ("a cancelled query is equivalent to undecided") intact even though
// the accounting is approximate.
type fraigEngine struct {
	m       *Manager
	solver  satif.Solver
	encoded map[NodeID]satif.Var

	conflictPerNode  int
	conflictPerMiter int

	totalBudget   int // remaining pass-wide conflict budget; negative means unbounded
	totalInspects int // remaining pass-wide inspect budget; negative means unbounded
}

func newFraigEngine(m *Manager, solver satif.Solver, opts FraigOptions) *fraigEngine {
	perNode := opts.SatConflictPerNode
	if perNode <= 0 {
		perNode = 100
	}
	perMiter := opts.SatConflictPerMiter
	if perMiter <= 0 {
		perMiter = 500_000
	}
	total := opts.SatTotalBudget
	if total <= 0 {
		total = -1
	}
	inspects := opts.SatTotalInspects
	if inspects <= 0 {
		inspects = -1
	}
	return &fraigEngine{
		m: m, solver: solver, encoded: make(map[NodeID]satif.Var),
		conflictPerNode:  perNode,
		conflictPerMiter: perMiter,
		totalBudget:      total,
		totalInspects:    inspects,
	}
}

// exhausted reports whether either pass-wide budget has been spent
// down to zero; once true the caller must stop issuing queries and
// leave every remaining pair undecided (kept distinct), per §5.
func (f *fraigEngine) exhausted() bool {
	return f.totalBudget == 0 || f.totalInspects == 0
}

// spend charges conflicts against both pass-wide budgets, floored at
// zero, skipping whichever budget is unbounded (negative).
func (f *fraigEngine) spend(conflicts int) {
	if f.totalBudget >= 0 {
		f.totalBudget -= conflicts
		if f.totalBudget < 0 {
			f.totalBudget = 0
		}
	}
	if f.totalInspects >= 0 {
		f.totalInspects -= conflicts
		if f.totalInspects < 0 {
			f.totalInspects = 0
		}
	}
}

// encodeEdge returns e's literal, encoding e's node (and, lazily, any
// of its not-yet-frontier fanins) into the solver if this is the
// first time it is reached.
func (f *fraigEngine) encodeEdge(e Edge) satif.Lit {
	v := f.encodeNode(e.id)
	if e.compl {
		return satif.NegLit(v)
	}
	return satif.PosLit(v)
}

func (f *fraigEngine) encodeNode(id NodeID) satif.Var {
	if v, ok := f.encoded[id]; ok {
		return v
	}

	n := f.m.node(id)
	v := f.solver.NewVar()
	f.encoded[id] = v // register before recursing: breaks any accidental re-entry

	switch n.Type {
	case TypeConst1:
		f.solver.AddClause(satif.PosLit(v))
	case TypePi, TypeLatch:
		// free variable: no defining clauses.
	case TypeAnd:
		a := f.encodeEdge(n.fanin0)
		b := f.encodeEdge(n.fanin1)
		addAndClauses(f.solver, v, a, b)
	case TypeExor:
		a := f.encodeEdge(n.fanin0)
		b := f.encodeEdge(n.fanin1)
		addXorClauses(f.solver, v, a, b)
	case TypeBuf, TypePo, TypeAssert:
		a := f.encodeEdge(n.fanin0)
		addBufClauses(f.solver, v, a)
	}

	return v
}

// addAndClauses emits the standard 3-clause Tseitin template for
// v <-> (a & b), the same shape as the vendored structural-hash-to-CNF
// encoder's addAnd helper.
func addAndClauses(s satif.Solver, v satif.Var, a, b satif.Lit) {
	vp, vn := satif.PosLit(v), satif.NegLit(v)
	s.AddClause(vn, a)
	s.AddClause(vn, b)
	s.AddClause(vp, negOf(a), negOf(b))
}

// addXorClauses emits the standard 4-clause Tseitin template for
// v <-> (a XOR b).
func addXorClauses(s satif.Solver, v satif.Var, a, b satif.Lit) {
	vp, vn := satif.PosLit(v), satif.NegLit(v)
	na, nb := negOf(a), negOf(b)
	s.AddClause(vn, a, b)
	s.AddClause(vn, na, nb)
	s.AddClause(vp, na, b)
	s.AddClause(vp, a, nb)
}

// addBufClauses emits the 2-clause equivalence v <-> a, used for
// single-fanin node types (Buf/Po/Assert) that never need a fresh
// truth-table shape of their own.
func addBufClauses(s satif.Solver, v satif.Var, a satif.Lit) {
	vp, vn := satif.PosLit(v), satif.NegLit(v)
	s.AddClause(vn, a)
	s.AddClause(vp, negOf(a))
}

func negOf(l satif.Lit) satif.Lit { return -l }

// Fraig runs one SAT-backed functional-reduction pass (§4.13) and
// returns the result as a new Manager, leaving the receiver untouched
// (spec.md §6: `fraig(Manager, FraigOptions) → Manager`, "returns new
// manager" — required for `fraig(fraig(M))` chaining, §8 invariant
// 10). It repeatedly simulates and refines until the equivalence-class
// partition saturates, then walks every multi-member class in the
// order Refiner.Classes returns them (which is not sorted
// topologically), submitting an equivalence query per non-
// representative member and merging on a UNSAT proof, counting a SAT
// counter-example in FraigStats.CounterExamples (it is not fed back
// into simulation and the classes are not re-refined), and marking
// the pair "failed TFO" on a conflict-budget timeout (so later passes
// skip them). The pass stops early, leaving all remaining pairs
// undecided, once either pass-wide SAT budget (§6
// satTotalBudget/satTotalInspects) is spent. Buffers left by merges
// are propagated away before the new Manager is returned.
func (m *Manager) Fraig(opts FraigOptions) (*Manager, FraigStats) {
	out := m.Clone()
	var stats FraigStats

	solver := satif.Solver(nil)
	if opts.SolverFactory != nil {
		solver = opts.SolverFactory()
	} else {
		solver = satif.NewGiniSolver()
	}

	words := opts.SimWords
	if words <= 0 {
		words = 32
	}
	sim := out.NewSimulator(words)
	sim.SimulateRandom(1)
	refiner := out.NewRefiner(sim)

	for round := uint64(2); round < 2+32; round++ {
		sim.SimulateDistance1(round)
		splits := refiner.Refine()
		if refiner.Saturated(splits, opts.SimSaturation) {
			break
		}
	}

	eng := newFraigEngine(out, solver, opts)

classLoop:
	for _, class := range refiner.Classes() {
		if len(class.Members) < 2 {
			continue
		}
		stats.ClassesChecked++

		for _, member := range class.Members {
			if member == class.Rep {
				continue
			}
			if out.node(member).failTfo || out.node(class.Rep).failTfo {
				continue
			}
			if eng.exhausted() {
				stats.TimedOut++
				break classLoop
			}

			samePolarity := sigEqual(sim.Signature(member), sim.Signature(class.Rep))
			repEdge := edgeOf(class.Rep, !samePolarity)

			equal, timedOut := eng.checkEquivalent(member, repEdge)
			switch {
			case timedOut:
				out.node(member).failTfo = true
				out.node(class.Rep).failTfo = true
				stats.TimedOut++
			case equal:
				out.Replace(member, repEdge, false, true)
				stats.Merged++
			default:
				stats.CounterExamples++
			}
		}
	}

	out.propagateBuffers()

	return out, stats
}

// checkEquivalent proves or refutes nodeID == target by solving twice
// (once per implication direction), per §4.13. It returns (true,
// false) on a UNSAT proof both ways, (false, false) if either solve
// found a satisfying (counter-example) assignment, and (false, true)
// if either solve exhausted its budget.
//
// Each Solve call is capped at conflictPerNode, but the two calls
// together may never spend more than conflictPerMiter: the second
// call's budget is whatever is left of the miter's allowance after
// the first, and the miter is abandoned as undecided if that leaves
// nothing for the second call, per §6's per-node/per-miter distinction.
func (f *fraigEngine) checkEquivalent(nodeID NodeID, target Edge) (equal, timedOut bool) {
	la := f.encodeEdge(edgeOf(nodeID, false))
	lb := f.encodeEdge(target)

	miterRemaining := f.conflictPerMiter

	b1 := f.conflictPerNode
	if b1 > miterRemaining {
		b1 = miterRemaining
	}
	r1 := f.solver.Solve([]satif.Lit{la, negOf(lb)}, b1)
	f.spend(b1)
	miterRemaining -= b1
	if r1 == satif.Unknown {
		return false, true
	}
	if r1 == satif.Sat {
		return false, false
	}
	if miterRemaining <= 0 {
		return false, true
	}

	b2 := f.conflictPerNode
	if b2 > miterRemaining {
		b2 = miterRemaining
	}
	r2 := f.solver.Solve([]satif.Lit{negOf(la), lb}, b2)
	f.spend(b2)
	if r2 == satif.Unknown {
		return false, true
	}
	if r2 == satif.Sat {
		return false, false
	}

	return true, false
}

// sigEqual reports whether two signatures are bitwise identical
// (same polarity); callers already know a and b are in the same
// equivalence class, so the only alternative is that they are exact
// bitwise complements of one another.
func sigEqual(a, b SimVector) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
