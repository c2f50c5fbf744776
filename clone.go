// SPDX-License-Identifier: MIT

package aig

// Clone returns a deep, independent copy of m: the arena, the
// structural hash table, and the Pi/Po/latch/required-level
// bookkeeping are all duplicated, so mutating the copy never touches
// m. This is the contract fraig relies on to satisfy spec.md §6's
// `fraig(Manager, FraigOptions) → Manager` ("returns new manager")
// without mutating its input.
//
// The NPN cache and replacement library are not duplicated. The
// library is never modified after ManagerStart, and every
// Template.Build closure takes its target *Manager as an explicit
// parameter rather than capturing one. The NPN cache keeps growing as
// either manager canonicalises new truth tables, but each entry is a
// pure function of its truth table, so entries added through one
// manager are valid for the other.
func (m *Manager) Clone() *Manager {
	out := &Manager{
		arena: m.arena.Clone(),
		hash:  m.hash.clone(),

		pis:     append([]NodeID(nil), m.pis...),
		poIDs:   append([]NodeID(nil), m.poIDs...),
		latches: append([]NodeID(nil), m.latches...),

		travCounter:   m.travCounter,
		fanoutEnabled: m.fanoutEnabled,

		nObjs:    m.nObjs,
		nCreated: m.nCreated,
		nDeleted: m.nDeleted,

		valid: m.valid,
		cfg:   m.cfg,

		npn:     m.npn,
		library: m.library,
	}
	if m.requiredLevel != nil {
		out.requiredLevel = append([]int32(nil), m.requiredLevel...)
	}
	return out
}
