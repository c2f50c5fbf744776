// SPDX-License-Identifier: MIT

package aig

// newBuffer builds a transient Buf node pointing at e. Buffers are
// never structurally hashed (§3 invariant 5: they only exist
// transiently between a replace and the next buffer-propagation pass).
func (m *Manager) newBuffer(e Edge) Edge {
	id, n := m.arena.Alloc()
	n.Type = TypeBuf
	n.fanin0 = e
	n.level = m.node(e.id).level
	n.phase = m.Phase(e)
	m.addFanin(id, 0, e)
	m.nObjs[TypeBuf]++
	m.nCreated++
	return edgeOf(id, false)
}

// Replace reroutes every fanout of old to point at repl instead,
// following the lifecycle of §3: a buffer is interposed when repl has
// non-zero fanout or carries a complement, fanouts are rerouted
// through the fanout index, levels/required-levels are propagated
// when updateLevel is set, and old's MFFC is finally deleted.
//
// Replace panics (a caller-contract violation, §7) if repl's regular
// node is a Po or Buf — those node types may never serve as another
// node's fanin.
func (m *Manager) Replace(old NodeID, repl Edge, freeTopOnly, updateLevel bool) {
	if repl.id == old {
		// Replacing a node with an edge to itself (§8 invariant 8): no
		// fanout needs rerouting and old must not be torn down, so
		// this is defined as a no-op rather than interposing a buffer
		// that would immediately reference old right back.
		return
	}

	rn := m.node(repl.id)
	if rn.Type == TypePo || rn.Type == TypeBuf {
		violate("Replace", "replacement target must not be a Po or Buf")
	}

	target := repl
	if rn.refs > 0 || repl.compl {
		target = m.newBuffer(repl)
	}

	if !m.fanoutEnabled {
		m.rerouteWithoutIndex(old, target)
	} else {
		for _, succ := range m.Fanouts(edgeOf(old, false)) {
			m.rerouteOneFanin(succ, old, target)
		}
	}

	if updateLevel {
		m.propagateLevelsForward(target.id)
		m.propagateRequiredBackward(old)
	}

	m.deleteMFFC(old, freeTopOnly)
}

// rerouteOneFanin updates whichever of succ's fanin slots currently
// points at old to point at target instead. succ may itself be a Po
// node: a Po's driving edge lives in its own fanin0, so it is rerouted
// by the same code path as any other node's fanin.
func (m *Manager) rerouteOneFanin(succ NodeID, old NodeID, target Edge) {
	s := m.node(succ)
	if s.fanin0.id == old {
		compl := s.fanin0.compl
		m.removeFanin(succ, 0, s.fanin0)
		s.fanin0 = target.NotCond(compl)
		m.addFanin(succ, 0, s.fanin0)
	}
	if !s.isOneInput() && s.fanin1.id == old {
		compl := s.fanin1.compl
		m.removeFanin(succ, 1, s.fanin1)
		s.fanin1 = target.NotCond(compl)
		m.addFanin(succ, 1, s.fanin1)
	}
}

// rerouteWithoutIndex performs the same substitution as
// rerouteOneFanin but by scanning every live node, used when the
// fanout index is not being maintained.
func (m *Manager) rerouteWithoutIndex(old NodeID, target Edge) {
	n := m.arena.Len()
	for id := 0; id < n; id++ {
		s := m.arena.At(NodeID(id))
		if s.Type == TypeNone {
			continue
		}
		if s.fanin0.id == old {
			compl := s.fanin0.compl
			m.node(old).refs--
			s.fanin0 = target.NotCond(compl)
			m.node(target.id).refs++
		}
		if !s.isOneInput() && s.fanin1.id == old {
			compl := s.fanin1.compl
			m.node(old).refs--
			s.fanin1 = target.NotCond(compl)
			m.node(target.id).refs++
		}
	}
}

// propagateLevelsForward bumps levels of id's fanouts until a stable
// fixed point is reached, per §4.5.
func (m *Manager) propagateLevelsForward(id NodeID) {
	if !m.fanoutEnabled {
		return
	}
	queue := []NodeID{id}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, succ := range m.Fanouts(edgeOf(cur, false)) {
			s := m.node(succ)
			newLevel := m.computeNewLevel(s)
			if newLevel != s.level {
				s.level = newLevel
				queue = append(queue, succ)
			}
		}
	}
}

// propagateRequiredBackward pushes required-level constraints back
// through old's (former) fanins, when a required-level vector is
// being tracked.
func (m *Manager) propagateRequiredBackward(old NodeID) {
	if m.requiredLevel == nil {
		return
	}
	n := m.node(old)
	req := m.requiredLevel[old]
	m.pushRequired(n.fanin0.id, req-1)
	if !n.isOneInput() {
		m.pushRequired(n.fanin1.id, req-1)
	}
}

func (m *Manager) pushRequired(id NodeID, req int32) {
	if int(id) >= len(m.requiredLevel) {
		grown := make([]int32, int(id)+1)
		copy(grown, m.requiredLevel)
		for i := len(m.requiredLevel); i < len(grown); i++ {
			grown[i] = 1 << 30
		}
		m.requiredLevel = grown
	}
	if req < m.requiredLevel[id] {
		m.requiredLevel[id] = req
	}
}

// deleteMFFC frees n's record and, recursively, any fanin that drops
// to zero references as a result — the "MFFC" of n, per §3's deletion
// rule. freeTopOnly limits the recursion to n itself: n's fanins still
// lose n's reference but are not freed.
func (m *Manager) deleteMFFC(id NodeID, freeTopOnly bool) {
	n := m.node(id)
	if n.refs > 0 {
		return
	}
	if n.Type == TypePi || n.Type == TypePo || n.Type == TypeConst1 {
		return
	}

	if n.Type.isHashable() {
		m.hash.delete(hashKey{typ: n.Type, f0: n.fanin0, f1: n.fanin1, init: n.init})
	}

	fanins := []Edge{n.fanin0}
	if !n.isOneInput() {
		fanins = append(fanins, n.fanin1)
	}

	m.nObjs[n.Type]--
	m.nDeleted++
	n.Type = TypeNone
	m.arena.Free(id)

	for i, f := range fanins {
		side := uint8(i)
		if m.removeFanin(id, side, f) == 0 && !freeTopOnly {
			m.deleteMFFC(f.id, false)
		}
	}
}
