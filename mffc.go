// SPDX-License-Identifier: MIT

package aig

// MFFCSize computes the maximum fanout-free cone size of root with
// the leaves of cut pinned: it temporarily bumps every leaf's ref
// count, recursively decrements along root's transitive fanins
// counting every node that hits ref 0, then restores all ref counts
// to their prior values, per §4.8.
func (m *Manager) MFFCSize(root NodeID, cut Cut) int {
	for _, l := range cut.Leaves {
		m.node(l.ID()).refs++
	}

	count := 1 // root itself is always freed by replacing it
	epoch := m.nextTravID()
	rn := m.node(root)
	rn.travID = epoch
	var touched []NodeID
	m.mffcDescend(rn.fanin0.id, epoch, &count, &touched)
	if !rn.isOneInput() {
		m.mffcDescend(rn.fanin1.id, epoch, &count, &touched)
	}

	for _, id := range touched {
		m.node(id).refs++
	}
	for _, l := range cut.Leaves {
		m.node(l.ID()).refs--
	}

	return count
}

// mffcDescend decrements id's ref count and, if it drops to zero and
// id is itself an internal (And/Exor) node, counts it as part of the
// cone and recurses into its own fanins — the cascading-deletion walk
// of §4.8. Each node is visited at most once per epoch; every node
// whose ref count it decrements is appended to touched so the caller
// can restore it.
func (m *Manager) mffcDescend(id NodeID, epoch uint32, count *int, touched *[]NodeID) {
	n := m.node(id)
	if n.travID == epoch {
		return
	}
	n.travID = epoch

	if n.Type != TypeAnd && n.Type != TypeExor {
		return
	}

	n.refs--
	*touched = append(*touched, id)
	if n.refs == 0 {
		*count++
		m.mffcDescend(n.fanin0.id, epoch, count, touched)
		if !n.isOneInput() {
			m.mffcDescend(n.fanin1.id, epoch, count, touched)
		}
	}
}
