// SPDX-License-Identifier: MIT

package aig

import "github.com/bits-and-blooms/bitset"

// stackFrame is one entry of an explicit DFS stack, used in place of
// recursion per Design Notes §9 (cut/level/acyclicity recursion depth
// can exceed a few thousand on deep circuits).
type stackFrame struct {
	id       NodeID
	visited0 bool // fanin0 pushed
	visited1 bool // fanin1 pushed
}

// DFSCombinational walks the combinational fanin cone of every root in
// roots, calling visit once per node in post-order (fanins before the
// node that uses them), skipping nodes already seen in this epoch.
// It walks only structural fanins — Latch feedback is not followed.
func (m *Manager) DFSCombinational(roots []Edge, visit func(NodeID)) {
	epoch := m.nextTravID()
	var stack []stackFrame

	for _, r := range roots {
		if m.node(r.id).travID == epoch {
			continue
		}
		stack = append(stack, stackFrame{id: r.id})

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			n := m.node(top.id)

			if n.travID == epoch {
				stack = stack[:len(stack)-1]
				continue
			}

			if n.Type == TypeAnd || n.Type == TypeExor {
				if !top.visited0 {
					top.visited0 = true
					if m.node(n.fanin0.id).travID != epoch {
						stack = append(stack, stackFrame{id: n.fanin0.id})
						continue
					}
				}
				if !top.visited1 {
					top.visited1 = true
					if m.node(n.fanin1.id).travID != epoch {
						stack = append(stack, stackFrame{id: n.fanin1.id})
						continue
					}
				}
			} else if n.Type == TypeBuf || n.Type == TypePo || n.Type == TypeAssert {
				if !top.visited0 {
					top.visited0 = true
					if m.node(n.fanin0.id).travID != epoch {
						stack = append(stack, stackFrame{id: n.fanin0.id})
						continue
					}
				}
			}
			// Pi, Const1, Latch: terminal for combinational DFS.

			n.travID = epoch
			visit(top.id)
			stack = stack[:len(stack)-1]
		}
	}
}

// DFSSequential walks from every Po and every latch's data input,
// first collecting all latches into a separate sequence, then
// DFS-ing combinationally from each root in turn (§4.6).
func (m *Manager) DFSSequential(visit func(NodeID)) {
	roots := make([]Edge, 0, len(m.poIDs)+len(m.latches))
	for _, id := range m.poIDs {
		roots = append(roots, edgeOf(id, false))
	}
	for _, id := range m.latches {
		roots = append(roots, m.node(id).fanin0)
	}
	m.DFSCombinational(roots, visit)
}

// RecomputeLevels clears every live node's level, then recomputes it
// via a memoised (post-order) walk, treating Pi/Latch/Const1 as level
// 0, per §3 invariant 3 / §4.6.
func (m *Manager) RecomputeLevels() {
	n := m.arena.Len()
	roots := make([]Edge, 0, len(m.poIDs))
	for _, id := range m.poIDs {
		roots = append(roots, edgeOf(id, false))
	}
	for id := 0; id < n; id++ {
		nd := m.arena.At(NodeID(id))
		if nd.Type != TypeNone {
			nd.level = 0
		}
	}
	m.DFSCombinational(roots, func(id NodeID) {
		nd := m.node(id)
		nd.level = m.computeNewLevel(nd)
	})
}

// CheckAcyclic verifies the directed graph on regular structural
// edges (ignoring latch feedback) is a DAG, per §3 invariant 6. It
// uses a tri-colour walk over two bitsets (in-progress, done) using
// two epochs' worth of state rather than recursion, per Design
// Notes §9. On finding a cycle it marks the Manager invalid and
// returns a *CycleError describing the path.
func (m *Manager) CheckAcyclic() error {
	n := uint(m.arena.Len())
	inProgress := bitset.New(n)
	done := bitset.New(n)

	roots := make([]Edge, 0, len(m.poIDs))
	for _, id := range m.poIDs {
		roots = append(roots, edgeOf(id, false))
	}

	type frame struct {
		id   NodeID
		next int // which fanin to push next: 0, 1, or 2 (done)
	}

	for _, r := range roots {
		if done.Test(uint(r.id)) {
			continue
		}
		stack := []frame{{id: r.id}}
		inProgress.Set(uint(r.id))

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			nd := m.node(top.id)

			var children []NodeID
			switch nd.Type {
			case TypeAnd, TypeExor:
				children = []NodeID{nd.fanin0.id, nd.fanin1.id}
			case TypeBuf, TypePo, TypeAssert:
				children = []NodeID{nd.fanin0.id}
			default:
				children = nil
			}

			if top.next >= len(children) {
				inProgress.Clear(uint(top.id))
				done.Set(uint(top.id))
				stack = stack[:len(stack)-1]
				continue
			}

			child := children[top.next]
			top.next++

			if done.Test(uint(child)) {
				continue
			}
			if inProgress.Test(uint(child)) {
				path := make([]NodeID, len(stack))
				for i, f := range stack {
					path[i] = f.id
				}
				path = append(path, child)
				m.valid = false
				return &CycleError{Path: path}
			}

			inProgress.Set(uint(child))
			stack = append(stack, frame{id: child})
		}
	}

	return nil
}
