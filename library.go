// SPDX-License-Identifier: MIT

package aig

// Template is one replacement-subgraph candidate for an NPN canonical
// class: a builder that instantiates the subgraph given four leaf
// edges (in the class's own canonical variable order; a leaf is
// simply unused if the function does not depend on it), plus its
// nominal volume — the node count an instantiation from scratch would
// cost, counted in two-input AND nodes (an Exor counts as three). The
// rewriting engine scores candidates with this static volume directly;
// it does not discount nodes that structural hashing would reuse.
type Template struct {
	Build  func(m *Manager, leaves [4]Edge) Edge
	Volume int
}

// replacementLibrary is the forest of §4.9: one bucket of Templates
// per canonical truth table, built once at Manager start. Rather than
// the ~2000-subgraph forest loaded from an embedded constant table —
// which would require a generator this workspace does not have — the
// bucket set here is a small hand-curated collection of the
// structurally common two-level and MUX-shaped functions. Classes
// without a bucket are covered by the generic Shannon-expansion
// fallback (buildFromTruth), which is not stored in the buckets; the
// rewriting engine considers it for every cut alongside the bucket's
// templates (see DESIGN.md's C9 notes).
type replacementLibrary struct {
	buckets map[TruthTable][]Template
}

// buildReplacementLibrary constructs the library against m, registering
// each hand-curated shape under the NPN class m.Canonicalize resolves
// it to.
func (m *Manager) buildReplacementLibrary() *replacementLibrary {
	lib := &replacementLibrary{buckets: make(map[TruthTable][]Template)}

	register := func(truth TruthTable, tmpl Template) {
		class := m.Canonicalize(truth).Canonical
		lib.buckets[class] = append(lib.buckets[class], tmpl)
	}

	e0, e1, e2 := ElementaryTruth(0), ElementaryTruth(1), ElementaryTruth(2)

	register(e0&e1, Template{
		Volume: 1,
		Build: func(m *Manager, l [4]Edge) Edge {
			return m.And(l[0], l[1])
		},
	})

	register(^(^e0 & ^e1), Template{
		Volume: 1,
		Build: func(m *Manager, l [4]Edge) Edge {
			return m.And(l[0].Not(), l[1].Not()).Not()
		},
	})

	register(e0^e1, Template{
		Volume: 3,
		Build: func(m *Manager, l [4]Edge) Edge {
			return m.Exor(l[0], l[1])
		},
	})

	register(e0&e1&e2, Template{
		Volume: 2,
		Build: func(m *Manager, l [4]Edge) Edge {
			return m.And(m.And(l[0], l[1]), l[2])
		},
	})

	// MUX(c=e2, t=e1, e=e0) = (c & t) | (~c & e)
	muxTruth := (e2 & e1) | (^e2 & e0)
	register(muxTruth, Template{
		Volume: 3,
		Build: func(m *Manager, l [4]Edge) Edge {
			c, t, e := l[2], l[1], l[0]
			onSet := m.And(c, t)
			offSet := m.And(c.Not(), e)
			return m.And(onSet.Not(), offSet.Not()).Not()
		},
	})

	register(e0, Template{
		Volume: 0,
		Build: func(m *Manager, l [4]Edge) Edge {
			return l[0]
		},
	})

	register(^e0, Template{
		Volume: 0,
		Build: func(m *Manager, l [4]Edge) Edge {
			return l[0].Not()
		},
	})

	return lib
}

// lookup returns the templates registered for class, or nil if the
// class has no hand-curated entry; callers fall back to
// buildFromTruth in that case.
func (lib *replacementLibrary) lookup(class TruthTable) []Template {
	return lib.buckets[class]
}

// buildFromTruth instantiates an arbitrary 4-variable function by
// Shannon expansion on the leaves in order: f = (¬x·f|x=0) ∨ (x·f|x=1).
// It always terminates (constants at depth 4) and always produces a
// correct, if not minimal, subgraph — the guaranteed fallback when no
// hand-curated Template matches the cut's NPN class, per §4.9/§4.10.
func (m *Manager) buildFromTruth(t TruthTable, leaves [4]Edge) Edge {
	return m.shannon(t, leaves, 0)
}

func (m *Manager) shannon(t TruthTable, leaves [4]Edge, v int) Edge {
	if t == 0 {
		return ConstZero
	}
	if t == 0xFFFF {
		return ConstOne
	}
	if v == 4 {
		// t must be constant by this point; fall back defensively.
		if t&1 != 0 {
			return ConstOne
		}
		return ConstZero
	}

	negCof := cofactor(t, v, false)
	posCof := cofactor(t, v, true)
	if negCof == posCof {
		return m.shannon(negCof, leaves, v+1)
	}

	lo := m.shannon(negCof, leaves, v+1)
	hi := m.shannon(posCof, leaves, v+1)
	x := leaves[v]

	onSet := m.And(x, hi)
	offSet := m.And(x.Not(), lo)
	return m.And(onSet.Not(), offSet.Not()).Not()
}

// cofactor returns t restricted to variable v = val, re-expanded over
// all 16 minterms (so the result is directly comparable/usable as a
// same-width truth table for recursion).
func cofactor(t TruthTable, v int, val bool) TruthTable {
	var out TruthTable
	bit := 1 << uint(v)
	for x := 0; x < 16; x++ {
		xi := x
		if val {
			xi |= bit
		} else {
			xi &^= bit
		}
		if t&(1<<uint(xi)) != 0 {
			out |= 1 << uint(x)
		}
	}
	return out
}
