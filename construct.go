// SPDX-License-Identifier: MIT

package aig

// And returns the conjunction of a and b, applying the trivial-case
// reductions of §4.5 before falling back to structural hashing.
func (m *Manager) And(a, b Edge) Edge {
	if a.id == 0 && !a.compl {
		return b // and(1, b) = b
	}
	if b.id == 0 && !b.compl {
		return a // and(a, 1) = a
	}
	if a.id == 0 && a.compl {
		return ConstZero // and(0, b) = 0
	}
	if b.id == 0 && b.compl {
		return ConstZero // and(a, 0) = 0
	}
	if regularEqual(a, b) {
		if a.compl == b.compl {
			return a // and(a, a) = a
		}
		return ConstZero // and(a, ¬a) = 0
	}
	// and(x, ¬y) = 0 when x is an uncomplemented And with y as a fanin.
	for _, p := range [2][2]Edge{{a, b}, {b, a}} {
		x, y := p[0], p[1]
		if xn := m.node(x.id); !x.compl && xn.Type == TypeAnd {
			if xn.fanin0 == y.Not() || xn.fanin1 == y.Not() {
				return ConstZero
			}
		}
	}

	if latched, ok := m.tryLatchPullThroughAnd(a, b); ok {
		return latched
	}

	f0, f1 := a, b
	if edgeLess(f1, f0) {
		f0, f1 = f1, f0
	}

	return m.buildHashable(ghost{typ: TypeAnd, fanin0: f0, fanin1: f1})
}

// Exor returns the exclusive-or of a and b.
func (m *Manager) Exor(a, b Edge) Edge {
	if a.id == 0 {
		if a.compl {
			return b // exor(0, b) = b
		}
		return b.Not() // exor(1, b) = ¬b
	}
	if b.id == 0 {
		if b.compl {
			return a // exor(a, 0) = a
		}
		return a.Not() // exor(a, 1) = ¬a
	}
	if regularEqual(a, b) {
		if a.compl == b.compl {
			return ConstZero // exor(a, a) = 0
		}
		return ConstOne // exor(a, ¬a) = 1
	}

	outCompl := a.compl != b.compl
	ra, rb := a.Regular(), b.Regular()

	if latched, ok := m.tryLatchPullThroughExor(ra, rb, outCompl); ok {
		return latched
	}

	f0, f1 := ra, rb
	if edgeLess(f1, f0) {
		f0, f1 = f1, f0
	}

	result := m.buildHashable(ghost{typ: TypeExor, fanin0: f0, fanin1: f1})
	return result.NotCond(outCompl)
}

// Latch returns an edge to a new (or existing, via structural
// hashing) latch with data input a and initial value init.
func (m *Manager) Latch(a Edge, init Init) Edge {
	if a.id == 0 {
		violate("Latch", "fanin must not be null")
	}

	effInit := initNotCond(init, a.compl)
	regular := a.Regular()

	return m.buildHashable(ghost{typ: TypeLatch, init: effInit, fanin0: regular})
}

// buildHashable consults the structural hash table for g, returning
// the existing node on a hit or constructing and inserting a fresh
// one on a miss.
func (m *Manager) buildHashable(g ghost) Edge {
	key := hashKey{typ: g.typ, f0: g.fanin0, f1: g.fanin1, init: g.init}
	if id, ok := m.hash.lookup(key); ok {
		return edgeOf(id, false)
	}

	id, n := m.arena.Alloc()
	n.Type = g.typ
	n.init = g.init
	n.fanin0 = g.fanin0
	if !g.typ.isOneInput() {
		n.fanin1 = g.fanin1
	}

	m.addFanin(id, 0, g.fanin0)
	if !g.typ.isOneInput() {
		m.addFanin(id, 1, g.fanin1)
	}

	n.level = m.computeNewLevel(n)
	n.phase = m.computePhase(n)

	m.hash.insert(key, id)
	m.nObjs[g.typ]++
	m.nCreated++

	if g.typ == TypeLatch {
		m.latches = append(m.latches, id)
	}

	return edgeOf(id, false)
}

// computeNewLevel applies §3 invariant 3 to a freshly built node.
func (m *Manager) computeNewLevel(n *Node) int32 {
	switch n.Type {
	case TypeLatch, TypePi, TypeConst1:
		return 0
	case TypeBuf:
		return m.node(n.fanin0.id).level
	case TypeExor:
		return 1 + max32(m.node(n.fanin0.id).level, m.node(n.fanin1.id).level) + 1
	default: // TypeAnd, TypePo, TypeAssert
		if n.isOneInput() {
			return m.node(n.fanin0.id).level
		}
		return 1 + max32(m.node(n.fanin0.id).level, m.node(n.fanin1.id).level)
	}
}

func max32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

// computePhase applies §3 invariant 4 to a freshly built node.
func (m *Manager) computePhase(n *Node) bool {
	p0 := m.Phase(n.fanin0)
	switch n.Type {
	case TypePi, TypeConst1:
		return n.Type == TypeConst1
	case TypeLatch:
		switch n.init {
		case Init1:
			return true
		case Init0:
			return false
		default:
			return p0
		}
	case TypeBuf, TypePo, TypeAssert:
		return p0
	case TypeAnd:
		return p0 && m.Phase(n.fanin1)
	case TypeExor:
		return p0 != m.Phase(n.fanin1)
	default:
		return false
	}
}

// tryLatchPullThroughAnd implements the §4.5 canonicalisation: if both
// fanins of an And are latches with compatible inits, rewrite as a
// latch of the And of the latches' data inputs.
func (m *Manager) tryLatchPullThroughAnd(a, b Edge) (Edge, bool) {
	na, nb := m.node(a.id), m.node(b.id)
	if na.Type != TypeLatch || nb.Type != TypeLatch {
		return Edge{}, false
	}

	ia := initNotCond(na.init, a.compl)
	ib := initNotCond(nb.init, b.compl)

	dataA := na.fanin0.NotCond(a.compl)
	dataB := nb.fanin0.NotCond(b.compl)

	combinedData := m.And(dataA, dataB)
	return m.Latch(combinedData, initAnd(ia, ib)), true
}

// tryLatchPullThroughExor mirrors tryLatchPullThroughAnd for Exor.
// ra, rb are already regular (uncomplemented) edges; outCompl is the
// already-folded overall output complement the caller must still apply.
func (m *Manager) tryLatchPullThroughExor(ra, rb Edge, outCompl bool) (Edge, bool) {
	na, nb := m.node(ra.id), m.node(rb.id)
	if na.Type != TypeLatch || nb.Type != TypeLatch {
		return Edge{}, false
	}

	dataA := na.fanin0
	dataB := nb.fanin0

	combinedData := m.Exor(dataA, dataB)
	combined := m.Latch(combinedData, initExor(na.init, nb.init))
	return combined.NotCond(outCompl), true
}
