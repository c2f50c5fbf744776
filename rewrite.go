// SPDX-License-Identifier: MIT

package aig

// RewriteStats summarizes one rewriting pass, for callers that want
// to observe progress. Rewrite writes nothing to Config.Log, even with
// Verbose set; these counters are its only report.
type RewriteStats struct {
	NodesVisited int
	Rewrites     int
	NodesSaved   int
}

// candidate is one scored rewrite possibility discovered while
// scanning a node's cut store.
type candidate struct {
	cut        Cut
	class      NPNClass
	tmpl       Template
	useShannon bool
	score      int
}

// Rewrite runs one pass of the rewriting engine of §4.10 over every
// And node in topological (level) order, applying the
// highest-scoring structural substitution found at each node, then
// propagates buffers and recomputes levels to restore all §3
// invariants.
func (m *Manager) Rewrite(opts RewriteOptions) RewriteStats {
	var stats RewriteStats

	order := m.topologicalAndOrder()
	for _, id := range order {
		n := m.node(id)
		if n.Type != TypeAnd {
			continue
		}
		stats.NodesVisited++

		best, ok := m.bestRewrite(id, opts)
		if !ok {
			continue
		}
		if best.score < 0 || (best.score == 0 && !opts.UseZeroCost) {
			continue
		}
		if !m.requiredLevelOK(id, best) {
			continue
		}

		newRoot := m.instantiate(best)
		if newRoot.id == id {
			continue
		}

		stats.Rewrites++
		stats.NodesSaved += best.score
		m.Replace(id, newRoot, false, opts.UpdateLevel)
	}

	m.propagateBuffers()
	m.RecomputeLevels()

	return stats
}

// topologicalAndOrder returns every live And node id in a level-major
// (hence topological) order, matching §4.10's "visited in topological
// order" requirement without a separate DFS pass.
func (m *Manager) topologicalAndOrder() []NodeID {
	n := m.arena.Len()
	type leveled struct {
		id    NodeID
		level int32
	}
	var ls []leveled
	for id := 0; id < n; id++ {
		nd := m.arena.At(NodeID(id))
		if nd.Type == TypeAnd {
			ls = append(ls, leveled{id: NodeID(id), level: nd.level})
		}
	}
	// simple stable insertion sort by level: And counts are modest
	// relative to the rest of the pipeline's cost, and this keeps the
	// ordering ties in id order (deterministic across runs).
	for i := 1; i < len(ls); i++ {
		for j := i; j > 0 && ls[j].level < ls[j-1].level; j-- {
			ls[j], ls[j-1] = ls[j-1], ls[j]
		}
	}
	out := make([]NodeID, len(ls))
	for i, l := range ls {
		out[i] = l.id
	}
	return out
}

// bestRewrite implements §4.10 steps 1-6 for a single root: enumerate
// size-≤4 cuts (skipping any cut with a Buf leaf), canonicalize each
// cut's truth table, score it against the MFFC it would free, and
// keep the best-scoring candidate seen.
func (m *Manager) bestRewrite(root NodeID, opts RewriteOptions) (candidate, bool) {
	maxLeaves := opts.MaxCutSize
	if maxLeaves > 4 {
		maxLeaves = 4
	}
	cuts := m.Cuts(root, maxLeaves, opts.CutLimit)

	var best candidate
	haveBest := false

	for _, cut := range cuts {
		if len(cut.Leaves) < 2 {
			continue // trivial/unit cuts carry no rewrite opportunity
		}
		if m.cutHasBufLeaf(cut) {
			continue
		}

		truth := m.CutTruth(root, cut)
		class := m.Canonicalize(truth)
		save := m.MFFCSize(root, cut)

		// A strict '>' keeps the first candidate found on a tie; ties
		// are not broken by level or volume.
		templates := m.library.lookup(class.Canonical)
		for _, tmpl := range templates {
			score := save - tmpl.Volume
			if !haveBest || score > best.score {
				best = candidate{cut: cut, class: class, tmpl: tmpl, score: score}
				haveBest = true
			}
		}

		// Always also consider the guaranteed Shannon fallback so a
		// rewrite opportunity is never missed purely for lacking a
		// hand-curated bucket entry; its volume is pessimistic (up to
		// 3 nodes per distinguishing variable) so it only wins when no
		// curated template beats it.
		fallbackScore := save - shannonVolume(truth)
		if !haveBest || fallbackScore > best.score {
			best = candidate{cut: cut, class: class, useShannon: true, score: fallbackScore}
			haveBest = true
		}
	}

	return best, haveBest
}

// requiredLevelOK implements §4.10 step 5's required-level gate:
// "reject if any new node's level would exceed the node's required
// level." m.requiredLevel is only populated once a prior Replace call
// with updateLevel has pushed a constraint back to root, so a root
// with no tracked requirement always passes.
//
// The bound used here is an upper estimate — the maximum leaf level
// plus each candidate shape's known depth (two AND-levels for every
// hand-curated Template, each a shallow two-level shape, or twice the Shannon recursion's decision depth for the
// fallback) — rather than the literal reuse-aware instantiate-and-
// count walk: that walk would have to speculatively build the
// candidate against the live hash table and immediately tear it down
// again on a reject, doubling graph churn for every candidate this
// gate turns down. An upper bound can only reject a rewrite that
// instantiate would actually have kept within budget; it can never let
// a true violation through.
func (m *Manager) requiredLevelOK(root NodeID, c candidate) bool {
	if m.requiredLevel == nil || int(root) >= len(m.requiredLevel) {
		return true
	}
	req := m.requiredLevel[root]

	var maxLeaf int32
	for _, l := range c.cut.Leaves {
		if lvl := m.node(l.ID()).level; lvl > maxLeaf {
			maxLeaf = lvl
		}
	}

	var bound int32
	if c.useShannon {
		depth := shannonDepth(undoPhase(c.class.Canonical, c.class.Phase))
		bound = maxLeaf + 2*int32(depth)
	} else {
		bound = maxLeaf + 2
	}

	return bound <= req
}

// cutHasBufLeaf reports whether any leaf of cut is a Buf node, which
// §4.10 step 1 excludes from cut enumeration for rewriting.
func (m *Manager) cutHasBufLeaf(cut Cut) bool {
	for _, l := range cut.Leaves {
		if m.node(l.ID()).Type == TypeBuf {
			return true
		}
	}
	return false
}

// shannonVolume estimates the node count buildFromTruth would spend
// on t, without actually building it, by running the same recursion
// over truth tables alone.
func shannonVolume(t TruthTable) int {
	return shannonVolumeRec(t, 0)
}

func shannonVolumeRec(t TruthTable, v int) int {
	if t == 0 || t == 0xFFFF || v == 4 {
		return 0
	}
	negCof := cofactor(t, v, false)
	posCof := cofactor(t, v, true)
	if negCof == posCof {
		return shannonVolumeRec(negCof, v+1)
	}
	return 3 + shannonVolumeRec(negCof, v+1) + shannonVolumeRec(posCof, v+1)
}

// shannonDepth counts the deepest chain of distinguishing recursion
// steps buildFromTruth would take for t — each such step costs two
// AND-levels in the instantiated graph (shannon's mux-shaped
// onSet/offSet/or-gate construction), used by requiredLevelOK to
// upper-bound a fallback candidate's resulting level without building it.
func shannonDepth(t TruthTable) int {
	return shannonDepthRec(t, 0)
}

func shannonDepthRec(t TruthTable, v int) int {
	if t == 0 || t == 0xFFFF || v == 4 {
		return 0
	}
	negCof := cofactor(t, v, false)
	posCof := cofactor(t, v, true)
	if negCof == posCof {
		return shannonDepthRec(negCof, v+1)
	}
	d1 := shannonDepthRec(negCof, v+1)
	d2 := shannonDepthRec(posCof, v+1)
	if d2 > d1 {
		d1 = d2
	}
	return 1 + d1
}

// instantiate builds the chosen candidate's subgraph against the
// current manager and returns its output edge, permuted/phased back
// from the NPN-canonical variable order to the cut's own leaf order.
func (m *Manager) instantiate(c candidate) Edge {
	var leaves [4]Edge
	for i, l := range c.cut.Leaves {
		e := edgeOf(l.ID(), false)
		if c.class.Phase&(1<<uint(i)) != 0 {
			e = e.Not()
		}
		leaves[i] = e
	}
	// Map canonical position back to original cut order via Perm:
	// Perm[i] says which original variable now sits at canonical
	// position i, so canonical-ordered leaves are leaves[Perm[i]].
	var ordered [4]Edge
	for i := 0; i < 4; i++ {
		if i < len(c.cut.Leaves) {
			ordered[i] = leaves[c.class.Perm[i]]
		}
	}

	var out Edge
	if c.useShannon {
		truth := c.class.Canonical
		out = m.buildFromTruth(undoPhase(truth, c.class.Phase), ordered)
	} else {
		out = c.tmpl.Build(m, ordered)
	}

	if c.class.Phase&16 != 0 {
		out = out.Not()
	}
	return out
}

// undoPhase reapplies the input-negation bits of phase to a canonical
// truth table, recovering the function actually needed at the cut's
// own (un-negated) leaves before a Shannon build.
func undoPhase(t TruthTable, phase uint8) TruthTable {
	for v := 0; v < 4; v++ {
		if phase&(1<<uint(v)) != 0 {
			t = negateInput(t, v)
		}
	}
	return t
}

// propagateBuffers removes every transient Buf node introduced by
// Replace, splicing each of its fanouts directly onto its fanin edge (reusing Buf's own fanin directly, never interposing a fresh
// buffer the way Replace does for ordinary nodes), per §4.10's
// "buffers are propagated forward until stable".
func (m *Manager) propagateBuffers() {
	progress := true
	for progress {
		progress = false
		n := m.arena.Len()
		for id := 0; id < n; id++ {
			nd := m.arena.At(NodeID(id))
			if nd.Type != TypeBuf {
				continue
			}
			target := nd.fanin0

			if !m.fanoutEnabled {
				m.rerouteWithoutIndex(NodeID(id), target)
			} else {
				for _, succ := range m.Fanouts(edgeOf(NodeID(id), false)) {
					m.rerouteOneFanin(succ, NodeID(id), target)
				}
			}

			m.deleteMFFC(NodeID(id), false)
			progress = true
		}
	}
}
