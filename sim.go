// SPDX-License-Identifier: MIT

package aig

import "github.com/ivycore/aig/internal/randgen"

// SimVector holds one node's simulation signature: a configurable
// number of 32-bit words, giving SimWords*32 simulated patterns per
// node in a single pass (§4.11).
type SimVector []uint32

// Simulator drives random and distance-1 simulation passes over a
// Manager's live nodes, keeping each node's current signature
// alongside it. It's kept separate from Node itself so a signature
// array can be swapped, resized, or dropped without touching Manager
// state.
type Simulator struct {
	m     *Manager
	words int
	sig   map[NodeID]SimVector
}

// NewSimulator allocates a Simulator with `words` 32-bit words per
// signature (§6 SimWords).
func (m *Manager) NewSimulator(words int) *Simulator {
	return &Simulator{
		m:     m,
		words: words,
		sig:   make(map[NodeID]SimVector),
	}
}

// randomWords returns a fresh random simulation word vector.
func randomWords(prng interface{ Uint64() uint64 }, n int) SimVector {
	out := make(SimVector, n)
	for i := range out {
		out[i] = uint32(prng.Uint64())
	}
	return out
}

// SimulateRandom assigns every Pi a fresh random signature, the
// constant node all-0/all-1 signatures, and propagates through every
// live node in topological (level) order, applying each type's
// bitwise combination and complement handling, per §4.11.
func (s *Simulator) SimulateRandom(seed uint64) {
	prng := randgen.New(seed)

	zero := make(SimVector, s.words)
	one := make(SimVector, s.words)
	for i := range one {
		one[i] = ^uint32(0)
	}
	s.sig[0] = one // constant-1 node, id 0

	for _, id := range s.m.pis {
		s.sig[id] = randomWords(prng, s.words)
	}

	s.propagate(zero)
}

// SimulateDistance1 builds a random seed pattern from seed, then
// produces additional patterns, each flipping exactly one PI's bit in
// the corresponding word relative to the seed — the 1-Hamming-ball
// neighbourhood of §4.11. Word 0 of every signature is the
// unperturbed seed and word i+1 corresponds to pattern "flip PI i";
// only the first words-1 PIs get a flipped word.
func (s *Simulator) SimulateDistance1(seed uint64) {
	nPIs := len(s.m.pis)
	words := nPIs + 1
	if words > s.words {
		words = s.words
	}

	prng := randgen.New(seed)
	base := uint32(prng.Uint64())

	zero := make(SimVector, s.words)
	one := make(SimVector, s.words)
	for i := range one {
		one[i] = ^uint32(0)
	}
	s.sig[0] = one

	for pi, id := range s.m.pis {
		v := make(SimVector, s.words)
		for w := 0; w < s.words; w++ {
			v[w] = base
		}
		if pi+1 < s.words {
			v[pi+1] ^= ^uint32(0) // flip every bit of PI `pi` in word pi+1
		}
		s.sig[id] = v
	}

	s.propagate(zero)
}

// propagate walks every live node in level order, computing hashable
// nodes' signatures from their fanins; Pi/Const1 signatures are
// assumed already seeded by the caller, and Latch signatures are
// treated as a fresh free variable seeded with zeroFill (no temporal
// unrolling is modelled).
func (s *Simulator) propagate(zeroFill SimVector) {
	order := s.m.topologicalAllOrder()
	for _, id := range order {
		n := s.m.node(id)
		switch n.Type {
		case TypeConst1, TypePi:
			// already seeded
		case TypeLatch:
			if _, ok := s.sig[id]; !ok {
				s.sig[id] = append(SimVector(nil), zeroFill...)
			}
		case TypeBuf:
			s.sig[id] = s.edgeSig(n.fanin0)
		case TypeAnd:
			a := s.edgeSig(n.fanin0)
			b := s.edgeSig(n.fanin1)
			s.sig[id] = combine(a, b, func(x, y uint32) uint32 { return x & y })
		case TypeExor:
			a := s.edgeSig(n.fanin0)
			b := s.edgeSig(n.fanin1)
			s.sig[id] = combine(a, b, func(x, y uint32) uint32 { return x ^ y })
		case TypePo, TypeAssert:
			s.sig[id] = s.edgeSig(n.fanin0)
		}
	}
}

// edgeSig returns e's signature, applying e's complement bit.
func (s *Simulator) edgeSig(e Edge) SimVector {
	base := s.sig[e.id]
	if !e.compl {
		return base
	}
	out := make(SimVector, len(base))
	for i, w := range base {
		out[i] = ^w
	}
	return out
}

func combine(a, b SimVector, op func(x, y uint32) uint32) SimVector {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	out := make(SimVector, n)
	for i := 0; i < n; i++ {
		out[i] = op(a[i], b[i])
	}
	return out
}

// Signature returns the current signature of id, or nil if it has not
// been simulated.
func (s *Simulator) Signature(id NodeID) SimVector {
	return s.sig[id]
}

// topologicalAllOrder returns every live node in level-major order
// (Pi/Const1/Latch first, at level 0), the same ordering discipline
// topologicalAndOrder uses restricted to And nodes.
func (m *Manager) topologicalAllOrder() []NodeID {
	n := m.arena.Len()
	type leveled struct {
		id    NodeID
		level int32
	}
	var ls []leveled
	for id := 0; id < n; id++ {
		nd := m.arena.At(NodeID(id))
		if nd.Type != TypeNone {
			ls = append(ls, leveled{id: NodeID(id), level: nd.level})
		}
	}
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
