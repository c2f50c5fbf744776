// SPDX-License-Identifier: MIT

package aig

// NPNClass describes the canonical form a 4-variable truth table
// reduces to under input negation, input permutation, and output
// negation (§4.9): the canonical truth table itself, the phase mask
// (bits 0-3 are input negations, bit 4 is the output negation), and
// the permutation applied (perm[i] is the original variable now
// occupying position i).
type NPNClass struct {
	Canonical TruthTable
	Phase     uint8
	Perm      [4]int
}

// npnCache memoises NPNClass by input truth table, computed on
// demand rather than loaded from a precomputed 65536-entry table
// (§4.9, resolved per DESIGN.md's Open Question notes): the table
// would have to be generated at build time with no generator
// available in this workspace, so each class is derived the first
// time it is needed and cached for the remainder of the Manager's
// lifetime.
type npnCache struct {
	entries map[TruthTable]NPNClass
}

func newNPNCache() *npnCache {
	return &npnCache{entries: make(map[TruthTable]NPNClass)}
}

var perms4 = generatePermutations4()

// generatePermutations4 enumerates all 24 permutations of {0,1,2,3}.
func generatePermutations4() [][4]int {
	var out [][4]int
	var perm [4]int
	used := [4]bool{}
	var rec func(depth int)
	rec = func(depth int) {
		if depth == 4 {
			out = append(out, perm)
			return
		}
		for v := 0; v < 4; v++ {
			if used[v] {
				continue
			}
			used[v] = true
			perm[depth] = v
			rec(depth + 1)
			used[v] = false
		}
	}
	rec(0)
	return out
}

// permuteTruth returns the truth table obtained by relabelling
// variables according to perm: the output bit for input assignment x
// moves to the position where variable perm[i] supplies bit i.
func permuteTruth(t TruthTable, perm [4]int) TruthTable {
	var out TruthTable
	for x := 0; x < 16; x++ {
		var y int
		for i := 0; i < 4; i++ {
			if x&(1<<uint(perm[i])) != 0 {
				y |= 1 << uint(i)
			}
		}
		if t&(1<<uint(x)) != 0 {
			out |= 1 << uint(y)
		}
	}
	return out
}

// negateInput flips variable v (0-3) of t: every minterm pair that
// differs only in bit v is swapped.
func negateInput(t TruthTable, v int) TruthTable {
	var out TruthTable
	for x := 0; x < 16; x++ {
		bit := (t >> uint(x)) & 1
		out |= bit << uint(x^(1<<uint(v)))
	}
	return out
}

// Canonicalize returns the NPN class of t, computing it by brute
// force over all 2^4 input negations, 4! permutations, and the
// output negation (768 candidates total) and keeping the
// lexicographically smallest resulting truth table, per §4.9. Results
// are memoised on m so repeated lookups of the same function are O(1).
func (m *Manager) Canonicalize(t TruthTable) NPNClass {
	if m.npn == nil {
		m.npn = newNPNCache()
	}
	if c, ok := m.npn.entries[t]; ok {
		return c
	}

	best := NPNClass{Canonical: ^TruthTable(0)} // larger than any real table
	for phase := 0; phase < 32; phase++ {
		cur := t
		for v := 0; v < 4; v++ {
			if phase&(1<<uint(v)) != 0 {
				cur = negateInput(cur, v)
			}
		}
		if phase&16 != 0 {
			cur = ^cur
		}
		for _, perm := range perms4 {
			cand := permuteTruth(cur, perm)
			if cand < best.Canonical {
				best = NPNClass{Canonical: cand, Phase: uint8(phase), Perm: perm}
			}
		}
	}

	m.npn.entries[t] = best
	return best
}
