// SPDX-License-Identifier: MIT

package aig

import (
	"github.com/dalzilio/rudd"

	"github.com/ivycore/aig/internal/bdd"
)

// VerifyWithBDD checks whether edges a and b denote the same Boolean
// function by building both as BDD nodes over a shared variable
// ordering (one variable per Pi, then one per latch) and comparing for
// BDD equality. It
// is an independent oracle for spot-checking FRAIG merges or rewrite
// results in tests — exact for the combinational fragment reachable
// from a and b, but not used internally by any pass (BDD blowup makes
// it unsuitable as the primary equivalence engine for arbitrary
// circuits; §4.15).
func (m *Manager) VerifyWithBDD(a, b Edge) (bool, error) {
	oracle, err := bdd.New(len(m.pis) + len(m.latches))
	if err != nil {
		return false, err
	}

	piVar := make(map[NodeID]int, len(m.pis)+len(m.latches))
	for i, id := range m.pis {
		piVar[id] = i
	}
	for i, id := range m.latches {
		piVar[id] = len(m.pis) + i
	}

	cache := make(map[NodeID]rudd.Node)
	var walk func(id NodeID) rudd.Node
	walk = func(id NodeID) rudd.Node {
		if n, ok := cache[id]; ok {
			return n
		}
		n := m.node(id)
		var result rudd.Node
		switch n.Type {
		case TypeConst1:
			result = oracle.One()
		case TypePi, TypeLatch:
			if v, ok := piVar[id]; ok {
				result = oracle.Var(v)
			} else {
				// Unreachable: every Pi and latch was given a
				// variable above, latches in the slots past the Pi
				// range.
				result = oracle.Var(int(id) % len(m.pis))
			}
		case TypeAnd:
			result = oracle.And(edgeNode(oracle, walk, n.fanin0), edgeNode(oracle, walk, n.fanin1))
		case TypeExor:
			result = oracle.Xor(edgeNode(oracle, walk, n.fanin0), edgeNode(oracle, walk, n.fanin1))
		case TypeBuf, TypePo, TypeAssert:
			result = edgeNode(oracle, walk, n.fanin0)
		}
		cache[id] = result
		return result
	}

	na := edgeNode(oracle, walk, a)
	nb := edgeNode(oracle, walk, b)
	return oracle.Equal(na, nb), nil
}

func edgeNode(oracle *bdd.Oracle, walk func(NodeID) rudd.Node, e Edge) rudd.Node {
	n := walk(e.id)
	if e.compl {
		return oracle.Not(n)
	}
	return n
}
