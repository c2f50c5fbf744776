// SPDX-License-Identifier: MIT

package aig

// Node is a single record of the AIG arena. Its meaning is determined
// entirely by Type; see NodeType. Fanout-ring fields follow §3/§4.4:
// fanoutHead is the head of the ring of successors that reach this
// node, and the per-side next/prev pairs link this node into the
// ring owned by whichever node it is a fanin of (one pair per fanin
// slot, since a node can be a fanin-0 of one successor and a fanin-1
// of another simultaneously).
type Node struct {
	Type NodeType

	travID uint32 // visitor epoch this node was last touched in

	markA bool
	markB bool

	exorFanout bool // at least one fanout edge reaches this node through an Exor
	phase      bool // value under the all-zero-PI simulation
	failTfo    bool // FRAIG: a SAT query touching this node's TFO timed out

	init  Init  // two-bit latch init; InitNone for non-latches
	level int32 // §3 invariant 3

	refs int32

	fanin0 Edge
	fanin1 Edge // unused (zero Edge) when Type.isOneInput()

	fanoutEnabled bool // whether the fanout index is being maintained for this node
	fanoutHead    NodeID
	fanoutAny     bool // fanoutHead is meaningful (ring is non-empty)

	ringNext [2]NodeID // this node's link, as a fanin-0/fanin-1 member, to the next ring entry
	ringPrev [2]NodeID // ... and to the previous one
	ringOn   [2]bool   // whether ringNext/ringPrev[side] is currently linked into a ring

	hasEquiv bool
	equiv    NodeID // FRAIG/choice-node equivalence pointer
}

// ghost is a stack-local, unallocated node descriptor used to probe
// the structural hash table without allocating. See §4.2/§4.5.
type ghost struct {
	typ    NodeType
	init   Init
	fanin0 Edge
	fanin1 Edge
}

// reset clears a Node back to its zero value. The arena zeroes a
// recycled record itself in Alloc and does not call reset.
func (n *Node) reset() {
	*n = Node{}
}

// isOneInput reports whether n only has a meaningful fanin0.
func (n *Node) isOneInput() bool { return n.Type.isOneInput() }
