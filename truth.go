// SPDX-License-Identifier: MIT

package aig

// TruthTable is a 16-bit signature of a node's function over (up to)
// four ordered boolean variables, per §4.8.
type TruthTable uint16

// elementaryMasks are the five pre-encoded variable truth tables; the
// fifth (0xFFFF0000) only matters for 5-input DSD and is unused by
// the 4-input truth-table path but kept for completeness with §4.8.
var elementaryMasks = [5]uint32{0xAAAA, 0xCCCC, 0xF0F0, 0xFF00, 0xFFFF0000}

// ElementaryTruth returns the truth table of variable index i (0-3)
// among a cut's ordered leaves.
func ElementaryTruth(i int) TruthTable {
	return TruthTable(elementaryMasks[i])
}

// CutTruth computes the 16-bit truth table of root expressed over
// cut's leaves (in the cut's stored order, which must have at most 4
// entries), by walking the cone under root and combining child truth
// tables with AND/XOR and complement, per §4.8. Latch leaves and the
// cut's own leaves are modelled as fresh variables; buffers pass
// through transparently.
func (m *Manager) CutTruth(root NodeID, cut Cut) TruthTable {
	if len(cut.Leaves) > 4 {
		violate("CutTruth", "cut has more than 4 leaves")
	}

	leafTruth := make(map[NodeID]TruthTable, len(cut.Leaves))
	for i, l := range cut.Leaves {
		if l.ID() == 0 {
			continue // the constant-1 node keeps its constant truth table
		}
		leafTruth[l.ID()] = ElementaryTruth(i)
	}

	var walk func(id NodeID) TruthTable
	walk = func(id NodeID) TruthTable {
		if t, ok := leafTruth[id]; ok {
			return t
		}
		n := m.node(id)
		switch n.Type {
		case TypeConst1:
			return 0xFFFF
		case TypeBuf:
			return walk(n.fanin0.id)
		case TypeAnd:
			t0 := truthOfEdge(walk(n.fanin0.id), n.fanin0.compl)
			t1 := truthOfEdge(walk(n.fanin1.id), n.fanin1.compl)
			return t0 & t1
		case TypeExor:
			t0 := truthOfEdge(walk(n.fanin0.id), n.fanin0.compl)
			t1 := truthOfEdge(walk(n.fanin1.id), n.fanin1.compl)
			return t0 ^ t1
		default:
			// Pi / Latch not covered by the cut's own leaves, or
			// any other terminal: treat as its own fresh variable
			// is impossible mid-cone, so this indicates the cut did
			// not actually bound root — a caller-contract violation.
			violate("CutTruth", "node outside cut's leaf set reached during truth propagation")
			return 0
		}
	}

	root0 := walk(root)
	return root0
}

func truthOfEdge(t TruthTable, compl bool) TruthTable {
	if compl {
		return ^t
	}
	return t
}
