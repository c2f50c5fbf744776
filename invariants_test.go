// SPDX-License-Identifier: MIT

package aig

import "testing"

// TestStructuralInvariants checks the white-box invariants of §3/§8
// that need access to unexported Manager state: hash-table membership,
// ref-count bookkeeping, and level consistency.
func TestStructuralInvariants(t *testing.T) {
	t.Parallel()

	t.Run("HashIdempotence", func(t *testing.T) {
		t.Parallel()
		testHashIdempotence(t)
	})
	t.Run("LevelMatchesRecomputed", func(t *testing.T) {
		t.Parallel()
		testLevelMatchesRecomputed(t)
	})
	t.Run("RefCountsMatchLiveEdges", func(t *testing.T) {
		t.Parallel()
		testRefCountsMatchLiveEdges(t)
	})
	t.Run("HashTableMembership", func(t *testing.T) {
		t.Parallel()
		testHashTableMembership(t)
	})
	t.Run("AcyclicAfterPasses", func(t *testing.T) {
		t.Parallel()
		testAcyclicAfterPasses(t)
	})
	t.Run("LatchPullThrough", func(t *testing.T) {
		t.Parallel()
		testLatchPullThrough(t)
	})
}

// testLatchPullThrough is the white-box half of scenario S2: and(la,
// lb) must resolve to a Latch node (not an And node) whose init is
// and_init(Init0, InitDC) = Init0 and whose data fanin is and(a, b).
func testLatchPullThrough(t *testing.T) {
	m := ManagerStart()
	a, b := m.CreatePi(), m.CreatePi()

	la := m.Latch(a, Init0)
	lb := m.Latch(b, InitDC)

	n := m.And(la, lb)

	nd := m.node(n.id)
	if nd.Type != TypeLatch {
		t.Fatalf("and(la,lb) produced a %s node, want latch", nd.Type)
	}
	if nd.init != Init0 {
		t.Errorf("pulled-through latch init = %s, want %s", nd.init, Init0)
	}

	want := m.And(a, b)
	if nd.fanin0 != want {
		t.Errorf("pulled-through latch data fanin = %+v, want and(a,b) = %+v", nd.fanin0, want)
	}
}

// testHashIdempotence covers invariant 1: and(a,b) always resolves to
// the same node once built, regardless of how many times it is asked
// for again, and the node's own fanins are the regular forms with the
// right complement bits.
func testHashIdempotence(t *testing.T) {
	m := ManagerStart()
	a, b := m.CreatePi(), m.CreatePi()

	x := m.And(a, b)
	y := m.And(a, b)
	if x != y {
		t.Fatalf("and(a,b) not idempotent: %+v != %+v", x, y)
	}

	n := m.node(x.id)
	if n.Type != TypeAnd {
		t.Fatalf("and(a,b) built a %s node, want and", n.Type)
	}
	if n.fanin0 != a.Regular() || n.fanin1 != b.Regular() {
		t.Fatalf("and(a,b) fanins = (%+v,%+v), want (%+v,%+v)", n.fanin0, n.fanin1, a.Regular(), b.Regular())
	}

	// and(b, a) must hash to the same node thanks to canonical fanin
	// ordering, even though the caller passed the operands reversed.
	z := m.And(b, a)
	if z != x {
		t.Fatalf("and(b,a) = %+v, want %+v (canonical ordering)", z, x)
	}
}

// testLevelMatchesRecomputed covers invariant 2: every live node's
// level, as maintained incrementally by the constructors, equals what
// a from-scratch RecomputeLevels() walk would assign.
func testLevelMatchesRecomputed(t *testing.T) {
	m := ManagerStart()
	a, b, c, d := m.CreatePi(), m.CreatePi(), m.CreatePi(), m.CreatePi()

	ab := m.And(a, b)
	cd := m.And(c, d)
	f := m.Exor(ab, cd)
	m.CreatePo(f)

	before := make(map[NodeID]int32)
	n := m.arena.Len()
	for id := 0; id < n; id++ {
		nd := m.arena.At(NodeID(id))
		if nd.Type != TypeNone {
			before[NodeID(id)] = nd.level
		}
	}

	m.RecomputeLevels()

	for id, lvl := range before {
		nd := m.node(id)
		if nd.Type == TypeNone {
			continue
		}
		if nd.level != lvl {
			t.Errorf("node %d: level %d before RecomputeLevels, %d after", id, lvl, nd.level)
		}
	}
}

// testRefCountsMatchLiveEdges covers invariant 3: a node's ref count
// always equals the number of live edges (fanin slots plus Po drivers)
// currently pointing at it.
func testRefCountsMatchLiveEdges(t *testing.T) {
	m := ManagerStart()
	a, b, c := m.CreatePi(), m.CreatePi(), m.CreatePi()

	ab := m.And(a, b)
	ac := m.And(a, c)
	m.CreatePo(ab)
	m.CreatePo(ac)

	want := make(map[NodeID]int32)
	n := m.arena.Len()
	for id := 0; id < n; id++ {
		nd := m.arena.At(NodeID(id))
		if nd.Type == TypeNone || nd.Type == TypePi || nd.Type == TypeConst1 {
			continue // Pi and Const1 have no fanin edges
		}
		want[nd.fanin0.id]++
		if !nd.isOneInput() {
			want[nd.fanin1.id]++
		}
	}

	for id := 0; id < n; id++ {
		nd := m.arena.At(NodeID(id))
		if nd.Type == TypeNone || nd.Type == TypePo {
			continue
		}
		if nd.refs != want[NodeID(id)] {
			t.Errorf("node %d (%s): refs = %d, want %d", id, nd.Type, nd.refs, want[NodeID(id)])
		}
	}
}

// testHashTableMembership covers invariant 4: every And/Exor/Latch
// node is reachable through the structural hash table under its own
// canonical key.
func testHashTableMembership(t *testing.T) {
	m := ManagerStart()
	a, b := m.CreatePi(), m.CreatePi()

	and := m.And(a, b)
	exor := m.Exor(a, b)
	latch := m.Latch(a, Init0)

	cases := []struct {
		name string
		e    Edge
		typ  NodeType
	}{
		{"and", and, TypeAnd},
		{"exor", exor, TypeExor},
		{"latch", latch, TypeLatch},
	}
	for _, c := range cases {
		nd := m.node(c.e.id)
		if nd.Type != c.typ {
			t.Fatalf("%s: node type = %s, want %s", c.name, nd.Type, c.typ)
		}
		key := hashKey{typ: nd.Type, f0: nd.fanin0, f1: nd.fanin1, init: nd.init}
		id, ok := m.hash.lookup(key)
		if !ok || id != c.e.id {
			t.Errorf("%s: hash table lookup = (%d, %v), want (%d, true)", c.name, id, ok, c.e.id)
		}
	}
}

// testAcyclicAfterPasses covers invariant 5: cycle detection reports
// no cycle after construction, after a rewrite pass, and after a FRAIG
// pass.
func testAcyclicAfterPasses(t *testing.T) {
	m := ManagerStart(WithFanoutIndex(true))
	a, b, c := m.CreatePi(), m.CreatePi(), m.CreatePi()

	ab := m.And(a, b)
	ac := m.And(a, c)
	f := m.And(ab.Not(), ac.Not()).Not()
	m.CreatePo(f)

	if err := m.CheckAcyclic(); err != nil {
		t.Fatalf("CheckAcyclic after construction: %v", err)
	}

	m.Rewrite(m.rewriteOptionsFromConfig())
	if err := m.CheckAcyclic(); err != nil {
		t.Fatalf("CheckAcyclic after rewrite: %v", err)
	}

	fraiged, _ := m.Fraig(m.fraigOptionsFromConfig())
	if err := fraiged.CheckAcyclic(); err != nil {
		t.Fatalf("CheckAcyclic after fraig: %v", err)
	}
}

// TestRoundTripIdempotence covers §8 properties 6-10: the algebraic
// identities every constructor must satisfy, plus replace-with-self
// and double-rewrite monotonicity.
func TestRoundTripIdempotence(t *testing.T) {
	t.Parallel()

	t.Run("AndIdentities", func(t *testing.T) {
		t.Parallel()
		testAndIdentities(t)
	})
	t.Run("ExorIdentities", func(t *testing.T) {
		t.Parallel()
		testExorIdentities(t)
	})
	t.Run("ReplaceSelfIsNoop", func(t *testing.T) {
		t.Parallel()
		testReplaceSelfIsNoop(t)
	})
	t.Run("DoubleRewriteMonotonic", func(t *testing.T) {
		t.Parallel()
		testDoubleRewriteMonotonic(t)
	})
	t.Run("FraigIdempotent", func(t *testing.T) {
		t.Parallel()
		testFraigIdempotent(t)
	})
}

// testFraigIdempotent checks §8 invariant 10: a second Fraig pass over
// an already-fraiged graph finds nothing left to merge and leaves the
// AND count and every Po's driving edge unchanged.
func testFraigIdempotent(t *testing.T) {
	m := ManagerStart(WithFanoutIndex(true))
	a, b := m.CreatePi(), m.CreatePi()

	p := m.And(a, b.Not()).Not() // ¬(a ∧ ¬b) = ¬a ∨ b

	onSet := m.And(a, b)
	q := m.And(a, onSet.Not()).Not() // same function via absorption

	m.CreatePo(p)
	m.CreatePo(q)

	opts := FraigOptions{
		SimWords:            32,
		SimSaturation:       0.005,
		SatConflictPerNode:  100,
		SatConflictPerMiter: 500_000,
	}

	once, first := m.Fraig(opts)
	if first.Merged == 0 {
		t.Fatalf("first Fraig pass merged nothing; test setup did not create a real redundancy")
	}

	afterFirst := once.NumAnds()
	posAfterFirst := append([]Edge(nil), once.Pos()...)

	twice, second := once.Fraig(opts)

	if second.Merged != 0 {
		t.Errorf("second Fraig pass merged %d pairs, want 0 (already saturated)", second.Merged)
	}
	if got := twice.NumAnds(); got != afterFirst {
		t.Errorf("AND count changed on second Fraig pass: %d -> %d", afterFirst, got)
	}
	posAfterSecond := twice.Pos()
	if len(posAfterSecond) != len(posAfterFirst) {
		t.Fatalf("Po count changed: %d -> %d", len(posAfterFirst), len(posAfterSecond))
	}
	for i := range posAfterFirst {
		if posAfterFirst[i] != posAfterSecond[i] {
			t.Errorf("Po[%d] changed across idempotent Fraig pass: %+v -> %+v", i, posAfterFirst[i], posAfterSecond[i])
		}
	}
}

func testAndIdentities(t *testing.T) {
	m := ManagerStart()
	a, b := m.CreatePi(), m.CreatePi()

	if got, want := m.And(a, b), m.And(b, a); got != want {
		t.Errorf("and(a,b) = %+v, and(b,a) = %+v, want equal", got, want)
	}
	if got := m.And(a, a); got != a {
		t.Errorf("and(a,a) = %+v, want %+v", got, a)
	}
	if got := m.And(a, a.Not()); got != ConstZero {
		t.Errorf("and(a,¬a) = %+v, want ConstZero", got)
	}
	if got := m.And(a, ConstOne); got != a {
		t.Errorf("and(a,1) = %+v, want %+v", got, a)
	}
}

func testExorIdentities(t *testing.T) {
	m := ManagerStart()
	a, b := m.CreatePi(), m.CreatePi()

	if got, want := m.Exor(a, b), m.Exor(b, a); got != want {
		t.Errorf("exor(a,b) = %+v, exor(b,a) = %+v, want equal", got, want)
	}
	if got := m.Exor(a, a); got != ConstZero {
		t.Errorf("exor(a,a) = %+v, want ConstZero", got)
	}
	if got := m.Exor(a, a.Not()); got != ConstOne {
		t.Errorf("exor(a,¬a) = %+v, want ConstOne", got)
	}
	if got := m.Exor(a, ConstZero); got != a {
		t.Errorf("exor(a,0) = %+v, want %+v", got, a)
	}
}

// testReplaceSelfIsNoop covers property 8: replacing a node with an
// edge to itself must not change the graph (no Replace ever targets a
// node the caller hasn't first ensured is a distinct root, but asking
// the API to replace r with r is defined to be a no-op rather than
// deleting r out from under its own replacement).
func testReplaceSelfIsNoop(t *testing.T) {
	m := ManagerStart(WithFanoutIndex(true))
	a, b := m.CreatePi(), m.CreatePi()
	r := m.And(a, b)
	m.CreatePo(r)

	before := m.NumNodes()
	refsBefore := m.node(r.id).refs

	m.Replace(r.id, edgeOf(r.id, false), false, true)

	if got := m.NumNodes(); got != before {
		t.Errorf("NumNodes after replace(r,r) = %d, want %d", got, before)
	}
	if got := m.node(r.id).refs; got != refsBefore {
		t.Errorf("refs(r) after replace(r,r) = %d, want %d", got, refsBefore)
	}
	if m.node(r.id).Type != TypeAnd {
		t.Errorf("replace(r,r) changed r's type to %s", m.node(r.id).Type)
	}
}

// testDoubleRewriteMonotonic covers property 9: a second rewrite pass
// never increases the node count a first pass already settled on.
func testDoubleRewriteMonotonic(t *testing.T) {
	m := ManagerStart(WithFanoutIndex(true))
	a, b, c := m.CreatePi(), m.CreatePi(), m.CreatePi()

	ab := m.And(a, b)
	ac := m.And(a, c)
	f := m.And(ab.Not(), ac.Not()).Not()
	m.CreatePo(f)

	opts := m.rewriteOptionsFromConfig()
	m.Rewrite(opts)
	afterFirst := m.NumAnds()

	m.Rewrite(opts)
	afterSecond := m.NumAnds()

	if afterSecond > afterFirst {
		t.Errorf("AND count grew on second rewrite: %d -> %d", afterFirst, afterSecond)
	}
}

// TestBoundaryBehaviours covers §8 properties 11-14.
func TestBoundaryBehaviours(t *testing.T) {
	t.Parallel()

	t.Run("CutsOnTerminals", func(t *testing.T) {
		t.Parallel()
		testCutsOnTerminals(t)
	})
	t.Run("TruthOfConstAndElementary", func(t *testing.T) {
		t.Parallel()
		testTruthOfConstAndElementary(t)
	})
	t.Run("SimulationMatchesStructuralTruth", func(t *testing.T) {
		t.Parallel()
		testSimulationMatchesStructuralTruth(t)
	})
	t.Run("RewriteConvergesWithNoOpportunity", func(t *testing.T) {
		t.Parallel()
		testRewriteConvergesWithNoOpportunity(t)
	})
}

// testCutsOnTerminals covers property 11: a PI's cut store is exactly
// the trivial {PI} cut, and the constant node's is exactly {Const1}.
func testCutsOnTerminals(t *testing.T) {
	m := ManagerStart()
	a := m.CreatePi()

	cuts := m.Cuts(a.id, 4, 256)
	if len(cuts) != 1 || len(cuts[0].Leaves) != 1 || cuts[0].Leaves[0].ID() != a.id {
		t.Fatalf("Cuts(pi) = %+v, want exactly {pi}", cuts)
	}

	constCuts := m.Cuts(NodeID(0), 4, 256)
	if len(constCuts) != 1 || len(constCuts[0].Leaves) != 1 || constCuts[0].Leaves[0].ID() != 0 {
		t.Fatalf("Cuts(const1) = %+v, want exactly {const1}", constCuts)
	}
}

// testTruthOfConstAndElementary covers property 12.
func testTruthOfConstAndElementary(t *testing.T) {
	m := ManagerStart()

	constCut := newCut([]Leaf{NewLeaf(0, 0)})
	if got := m.CutTruth(0, constCut); got != 0xFFFF {
		t.Errorf("CutTruth(const1) = %#04x, want 0xffff", uint16(got))
	}

	a := m.CreatePi()
	piCut := newCut([]Leaf{NewLeaf(a.id, 0)})
	if got := m.CutTruth(a.id, piCut); got != TruthTable(ElementaryTruth(0)) {
		t.Errorf("CutTruth(pi) = %#04x, want elementary mask %#04x", uint16(got), uint16(ElementaryTruth(0)))
	}
}

// testSimulationMatchesStructuralTruth covers property 13: for a
// ≤4-PI combinational circuit, word-parallel simulation over all 16
// input patterns matches the node's own structural truth table.
func testSimulationMatchesStructuralTruth(t *testing.T) {
	m := ManagerStart()
	a, b, c, d := m.CreatePi(), m.CreatePi(), m.CreatePi(), m.CreatePi()

	ab := m.And(a, b)
	cd := m.And(c, d)
	f := m.Exor(ab, cd)
	m.CreatePo(f)

	sim := m.NewSimulator(1)
	pis := []Edge{a, b, c, d}
	pattern := make([]uint32, 1)
	for pat := 0; pat < 16; pat++ {
		for i, pi := range pis {
			bit := uint32(0)
			if pat&(1<<uint(i)) != 0 {
				bit = ^uint32(0)
			}
			sim.sig[pi.id] = SimVector{bit}
		}
		sim.sig[0] = SimVector{^uint32(0)}
		sim.propagate(SimVector{0})

		got := sim.Signature(f.id)[0]&1 != 0

		wantAB := pat&0x1 != 0 && pat&0x2 != 0
		wantCD := pat&0x4 != 0 && pat&0x8 != 0
		want := wantAB != wantCD

		if got != want {
			t.Errorf("pattern %04b: simulated %v, structural truth %v", pat, got, want)
		}
	}
}

// testRewriteConvergesWithNoOpportunity covers property 14: when every
// AND node's MFFC is 1 (nothing to save by replacing it) and no cut's
// canonical form has a cheaper library entry, a rewrite pass changes
// nothing.
func testRewriteConvergesWithNoOpportunity(t *testing.T) {
	m := ManagerStart(WithFanoutIndex(true))
	a, b := m.CreatePi(), m.CreatePi()

	ab := m.And(a, b)
	m.CreatePo(ab)

	before := m.NumAnds()
	stats := m.Rewrite(m.rewriteOptionsFromConfig())
	after := m.NumAnds()

	if before != after {
		t.Errorf("single irreducible and node count changed: %d -> %d", before, after)
	}
	if stats.Rewrites != 0 {
		t.Errorf("Rewrite reported %d rewrites on an irreducible graph, want 0", stats.Rewrites)
	}
}
