// SPDX-License-Identifier: MIT

package aig

import "github.com/ivycore/aig/internal/arena"

// NodeID is the stable identifier of a node within a Manager's arena.
// NodeID 0 is always the constant-1 node.
type NodeID arena.Index

// Edge is a pair (node id, complement bit), small enough to pass by
// value. The complement bit means the edge is the logical inverse of
// the referenced node's own output.
type Edge struct {
	id    NodeID
	compl bool
}

// ConstZero is the always-false edge: the complemented constant-1 node.
var ConstZero = Edge{id: 0, compl: true}

// ConstOne is the always-true edge: the constant-1 node, uncomplemented.
var ConstOne = Edge{id: 0, compl: false}

// edgeOf builds an Edge pointing at id with the given complement bit.
func edgeOf(id NodeID, compl bool) Edge {
	return Edge{id: id, compl: compl}
}

// ID returns the node identifier the edge points at, ignoring phase.
func (e Edge) ID() NodeID { return e.id }

// IsComplement reports whether e is the inverted form of its node.
func (e Edge) IsComplement() bool { return e.compl }

// Regular returns e with its complement bit cleared.
func (e Edge) Regular() Edge { return Edge{id: e.id, compl: false} }

// Not returns the logical negation of e.
func (e Edge) Not() Edge { return Edge{id: e.id, compl: !e.compl} }

// NotCond returns e negated if cond is true, e unchanged otherwise.
func (e Edge) NotCond(cond bool) Edge {
	if cond {
		return e.Not()
	}
	return e
}

// IsConstZero reports whether e is the constant-0 edge.
func (e Edge) IsConstZero() bool { return e.id == 0 && e.compl }

// IsConstOne reports whether e is the constant-1 edge.
func (e Edge) IsConstOne() bool { return e.id == 0 && !e.compl }

// regularEqual reports whether a and b reference the same node,
// ignoring their complement bits.
func regularEqual(a, b Edge) bool { return a.id == b.id }

// edgeLess orders two edges by increasing node id, used by the
// canonical-ordering rules of §4.5 (and/exor fanin ordering).
func edgeLess(a, b Edge) bool { return a.id < b.id }
