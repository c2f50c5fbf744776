// SPDX-License-Identifier: MIT

package aig

import "sort"

// maxCutLeaves is the hard ceiling on K from §4.7 ("K ≤ 6").
const maxCutLeaves = 6

// Leaf packs a node id and a latch-depth: the number of latch
// crossings on the path from a cut's root down to this leaf. The
// depth occupies the low 8 bits, per §4.7.
type Leaf uint32

// NewLeaf packs id and depth into a Leaf descriptor.
func NewLeaf(id NodeID, depth uint8) Leaf {
	return Leaf(uint32(id)<<8 | uint32(depth))
}

// ID returns the leaf's node id.
func (l Leaf) ID() NodeID { return NodeID(uint32(l) >> 8) }

// Depth returns the leaf's latch-crossing depth.
func (l Leaf) Depth() uint8 { return uint8(l) }

// Cut is an ordered, duplicate-free set of ≤K leaf descriptors
// together with its 32-bit membership hash, per §4.7.
type Cut struct {
	Leaves []Leaf
	Hash   uint32
}

// leafHash computes the OR-of-bit hash used to short-circuit
// dominance checks: 1 << (id mod 31) per leaf.
func leafHash(id NodeID) uint32 {
	return uint32(1) << (uint32(id) % 31)
}

// sortLeaves orders leaves id-major, depth-minor, per §4.7's
// "keeping leaves in increasing id-major / depth-minor order".
func sortLeaves(ls []Leaf) {
	sort.Slice(ls, func(i, j int) bool {
		if ls[i].ID() != ls[j].ID() {
			return ls[i].ID() < ls[j].ID()
		}
		return ls[i].Depth() < ls[j].Depth()
	})
}

// newCut builds a Cut from a leaf slice, sorting it and computing its hash.
func newCut(leaves []Leaf) Cut {
	sortLeaves(leaves)
	var h uint32
	for _, l := range leaves {
		h |= leafHash(l.ID())
	}
	return Cut{Leaves: leaves, Hash: h}
}

// subsetOf reports whether every leaf of a also appears in b — the
// dominance test of §4.7, short-circuited by the hash.
func (a Cut) subsetOf(b Cut) bool {
	if a.Hash&^b.Hash != 0 {
		return false
	}
	if len(a.Leaves) > len(b.Leaves) {
		return false
	}
	for _, la := range a.Leaves {
		found := false
		for _, lb := range b.Leaves {
			if la == lb {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// isTerminal reports whether id is a cut-enumeration leaf terminal:
// constants and combinational inputs never get expanded, per §4.7's
// edge cases.
func (m *Manager) isTerminal(id NodeID) bool {
	t := m.node(id).Type
	return t == TypeConst1 || t == TypePi || t == TypeLatch
}

// Cuts computes the cut store for root: up to cutStoreLimit cuts of
// at most maxLeaves leaves each, built by the breadth-order
// leaf-expansion/dominance-filter algorithm of §4.7.
//
// A Pi or the constant node always enumerates to exactly the
// single-leaf trivial cut, per invariant 11 (§8).
func (m *Manager) Cuts(root NodeID, maxLeaves int, cutStoreLimit int) []Cut {
	if maxLeaves > maxCutLeaves {
		maxLeaves = maxCutLeaves
	}

	trivial := newCut([]Leaf{NewLeaf(root, 0)})
	if m.isTerminal(root) {
		return []Cut{trivial}
	}

	store := []Cut{trivial}
	queue := []Cut{trivial}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, l := range cur.Leaves {
			if m.isTerminal(l.ID()) {
				continue
			}
			n := m.node(l.ID())
			if n.Type == TypeBuf {
				// Buffers are traversed transparently: substitute the
				// single fanin in place of the buffer leaf itself.
				expanded := replaceLeaf(cur.Leaves, l, []Leaf{NewLeaf(n.fanin0.id, l.Depth())})
				m.tryAddCut(&store, &queue, expanded, maxLeaves, cutStoreLimit)
				continue
			}

			depthBump := l.Depth()
			if n.Type == TypeLatch {
				depthBump++
			}

			newLeaves := []Leaf{NewLeaf(n.fanin0.id, depthBump)}
			if !n.isOneInput() {
				newLeaves = append(newLeaves, NewLeaf(n.fanin1.id, depthBump))
			}

			expanded := replaceLeaf(cur.Leaves, l, newLeaves)
			m.tryAddCut(&store, &queue, expanded, maxLeaves, cutStoreLimit)
		}
	}

	return store
}

// replaceLeaf returns a fresh leaf slice with old removed and
// news inserted, deduplicating any leaf that collides with an
// existing entry by node id ("a cut whose two prospective new
// leaves are identical is flattened to one", §4.7).
func replaceLeaf(leaves []Leaf, old Leaf, news []Leaf) []Leaf {
	out := make([]Leaf, 0, len(leaves)+len(news))
	for _, l := range leaves {
		if l == old {
			continue
		}
		out = append(out, l)
	}
	for _, nl := range news {
		dup := false
		for _, o := range out {
			if o.ID() == nl.ID() {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, nl)
		}
	}
	return out
}

// tryAddCut inserts a candidate leaf set into store/queue as a new
// Cut, applying the dominance filter of §4.7: reject the candidate if
// any stored cut already subsumes it; otherwise remove every stored
// cut the candidate subsumes, then admit it (up to cutStoreLimit).
func (m *Manager) tryAddCut(store *[]Cut, queue *[]Cut, leaves []Leaf, maxLeaves, cutStoreLimit int) {
	if len(leaves) > maxLeaves {
		return
	}
	cand := newCut(leaves)

	for _, existing := range *store {
		if existing.subsetOf(cand) {
			return
		}
	}

	kept := (*store)[:0:0]
	for _, existing := range *store {
		if !cand.subsetOf(existing) {
			kept = append(kept, existing)
		}
	}
	*store = kept

	if len(*store) >= cutStoreLimit {
		return
	}

	*store = append(*store, cand)
	*queue = append(*queue, cand)
}
