// SPDX-License-Identifier: MIT

package aig

import (
	"fmt"

	"github.com/ivycore/aig/internal/arena"
)

// Manager owns the node arena, the ordered Pi/Po sequences, the
// constant-1 node, the structural hash table, the current traversal
// epoch, and (optionally) the fanout index and required-level vector.
//
// All operations on one Manager must happen from the same logical
// owner; there is no internal locking (§5).
type Manager struct {
	arena *arena.Arena[Node]

	hash *hashTable

	pis []NodeID
	poIDs []NodeID // Po node ids in creation order; driving edge lives on the node itself

	latches []NodeID

	travCounter uint32

	fanoutEnabled bool

	requiredLevel []int32 // optional, parallel to node ids; nil when not computed

	// nObjs/nCreated/nDeleted are manager-wide bookkeeping
	// (SPEC_FULL.md §3.1): nObjs backs NumNodes/NumAnds; nCreated and
	// nDeleted are running tallies that no Stats value reports.
	nObjs     [9]int
	nCreated  int
	nDeleted  int

	valid bool // cleared by a detected cycle; §7 "Cycle detected"

	cfg Config

	npn     *npnCache
	library *replacementLibrary
}

// ManagerStart allocates a new Manager with node id 0 reserved for
// the constant-1 node, per §4.1.
func ManagerStart(opts ...Option) *Manager {
	m := &Manager{
		arena: arena.New[Node](),
		cfg:   defaultConfig(),
		valid: true,
	}
	for _, o := range opts {
		o(&m.cfg)
	}

	m.hash = newHashTable()

	id, n := m.arena.Alloc()
	if id != 0 {
		panic("aig: constant-1 node did not receive id 0")
	}
	n.Type = TypeConst1
	n.phase = true
	n.level = 0
	m.nObjs[TypeConst1]++
	m.nCreated++

	if m.cfg.FanoutIndex {
		m.EnableFanout()
	}

	m.npn = newNPNCache()
	m.library = m.buildReplacementLibrary()

	return m
}

// ManagerStop releases the Manager. Present for symmetry with
// ManagerStart and to match the external-interface surface of §6; the
// Go garbage collector reclaims the arena once m is unreferenced.
func ManagerStop(m *Manager) {
	*m = Manager{}
}

// EnableFanout turns on fanout-ring maintenance for the remainder of
// this Manager's lifetime. Once enabled every constructor and
// replacement path maintains the rings (§4.4).
func (m *Manager) EnableFanout() {
	m.fanoutEnabled = true
}

// FanoutEnabled reports whether the fanout index is currently maintained.
func (m *Manager) FanoutEnabled() bool { return m.fanoutEnabled }

// NumNodes returns the number of live (non-tombstone) nodes.
func (m *Manager) NumNodes() int {
	total := 0
	for t, c := range m.nObjs {
		if NodeType(t) == TypeNone {
			continue
		}
		total += c
	}
	return total
}

// NumAnds returns the number of live And nodes.
func (m *Manager) NumAnds() int { return m.nObjs[TypeAnd] }

// node returns a pointer to the node record for id. It panics if id is
// out of range, which can only happen on a caller-contract violation
// (§7): Manager never hands out ids it has not allocated.
func (m *Manager) node(id NodeID) *Node {
	if int(id) >= m.arena.Len() {
		panic(fmt.Sprintf("aig: invalid node id %d", id))
	}
	return m.arena.At(id)
}

// CreatePi allocates a fresh primary input and returns its edge.
func (m *Manager) CreatePi() Edge {
	id, n := m.arena.Alloc()
	n.Type = TypePi
	n.level = 0
	m.pis = append(m.pis, id)
	m.nObjs[TypePi]++
	m.nCreated++
	return edgeOf(id, false)
}

// CreatePo appends a primary output driven by e.
func (m *Manager) CreatePo(e Edge) Edge {
	id, n := m.arena.Alloc()
	n.Type = TypePo
	n.fanin0 = e
	n.level = m.node(e.id).level
	n.phase = m.Phase(e)
	m.poIDs = append(m.poIDs, id)
	m.addFanin(id, 0, e)
	m.nObjs[TypePo]++
	m.nCreated++
	return edgeOf(id, false)
}

// Pis returns the edges of all primary inputs, in creation order.
func (m *Manager) Pis() []Edge {
	out := make([]Edge, len(m.pis))
	for i, id := range m.pis {
		out[i] = edgeOf(id, false)
	}
	return out
}

// Pos returns the driving edges of all primary outputs, in creation order.
func (m *Manager) Pos() []Edge {
	out := make([]Edge, len(m.poIDs))
	for i, id := range m.poIDs {
		out[i] = m.node(id).fanin0
	}
	return out
}

// PoNodeIDs returns the node ids of all primary outputs, in creation order.
func (m *Manager) PoNodeIDs() []NodeID {
	out := make([]NodeID, len(m.poIDs))
	copy(out, m.poIDs)
	return out
}

// Latches returns the edges of all latch nodes, in creation order.
func (m *Manager) Latches() []Edge {
	out := make([]Edge, len(m.latches))
	for i, id := range m.latches {
		out[i] = edgeOf(id, false)
	}
	return out
}

// Level returns the current level of the node e references.
func (m *Manager) Level(e Edge) int {
	return int(m.node(e.id).level)
}

// Phase returns the node's value under the all-zero-PI simulation,
// corrected for e's own complement bit (§3 invariant 4).
func (m *Manager) Phase(e Edge) bool {
	return m.node(e.id).phase != e.compl
}

// IsValid reports whether the Manager is still usable: a detected
// cycle (§7 "Cycle detected") marks it permanently invalid.
func (m *Manager) IsValid() bool { return m.valid }

func (m *Manager) nextTravID() uint32 {
	m.travCounter++
	return m.travCounter
}
