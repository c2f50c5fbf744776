// SPDX-License-Identifier: MIT

package aig

// hashKey is the canonical key of a hashable node: its type, its two
// (already-canonically-ordered) fanin edges, and its latch init. Two
// ghosts/nodes with equal keys are the same object (§3 invariant 1).
type hashKey struct {
	typ  NodeType
	f0   Edge
	f1   Edge
	init Init
}

// mix blends the key fields the way dalzilio/rudd's buddy.go mixes
// (level, low, high) into one hash: multiply each id or type field by
// a distinct odd constant, xor in a distinct constant for each set
// complement bit, and xor the results together.
func (k hashKey) mix() uint64 {
	const (
		pType = 2654435761
		pF0ID = 40503
		pF0C  = 97
		pF1ID = 2246822519
		pF1C  = 101
		pInit = 3266489917
	)
	h := uint64(k.typ) * pType
	h ^= uint64(k.f0.id) * pF0ID
	if k.f0.compl {
		h ^= pF0C
	}
	h ^= uint64(k.f1.id) * pF1ID
	if k.f1.compl {
		h ^= pF1C
	}
	h ^= uint64(k.init) * pInit
	return h
}

// hashTable is an open-addressed table mapping hashKey to NodeID,
// sized to roughly twice the number of hashable nodes and resized
// (rehashed in place) whenever that ratio is exceeded. Capacity is
// always prime, per §4.3.
type hashTable struct {
	keys    []hashKey
	vals    []NodeID
	occ     []bool
	count   int
	primeIx int
}

// a short ascending list of primes used to grow the table; real
// deployments would keep extending this, but the growth factor (~2x)
// means this covers arenas well into the tens of millions of nodes.
var tablePrimes = []int{
	17, 37, 79, 163, 331, 673, 1361, 2729, 5471, 10949, 21911, 43853,
	87719, 175447, 350899, 701819, 1403641, 2807303, 5614657, 11229331,
	22458671, 44917381, 89834777, 179669557, 359339171, 718678369,
}

func newHashTable() *hashTable {
	t := &hashTable{primeIx: 0}
	cap0 := tablePrimes[0]
	t.keys = make([]hashKey, cap0)
	t.vals = make([]NodeID, cap0)
	t.occ = make([]bool, cap0)
	return t
}

func (t *hashTable) cap() int { return len(t.occ) }

// probe returns the slot index for key k, scanning linearly from its
// home slot until it finds either a matching occupied slot or the
// first empty one.
func (t *hashTable) probe(k hashKey) int {
	h := int(k.mix() % uint64(t.cap()))
	for {
		if !t.occ[h] {
			return h
		}
		if t.keys[h] == k {
			return h
		}
		h++
		if h == t.cap() {
			h = 0
		}
	}
}

// lookup returns the node mapped to k, or (0, false) on a miss — a
// miss is "no such node", not an error (§4.3).
func (t *hashTable) lookup(k hashKey) (NodeID, bool) {
	h := t.probe(k)
	if !t.occ[h] {
		return 0, false
	}
	return t.vals[h], true
}

// insert adds k -> id. The caller must already have done a lookup
// that missed; insert does not itself check for duplicates (§4.3).
func (t *hashTable) insert(k hashKey, id NodeID) {
	if (t.count+1)*2 > t.cap() {
		t.grow()
	}
	h := t.probe(k)
	t.keys[h] = k
	t.vals[h] = id
	t.occ[h] = true
	t.count++
}

// delete removes k from the table, then re-inserts every entry in the
// probe cluster following the freed slot so subsequent lookups stay
// consistent (§4.3).
func (t *hashTable) delete(k hashKey) {
	h := t.probe(k)
	if !t.occ[h] {
		return
	}
	t.occ[h] = false
	t.count--

	i := h + 1
	if i == t.cap() {
		i = 0
	}
	for t.occ[i] {
		k2, id2 := t.keys[i], t.vals[i]
		t.occ[i] = false
		t.count--
		t.insert(k2, id2)
		i++
		if i == t.cap() {
			i = 0
		}
	}
}

// clone returns a deep copy of t, independent of further inserts or
// deletes on the original (Manager.Clone's structural-hash half).
func (t *hashTable) clone() *hashTable {
	return &hashTable{
		keys:    append([]hashKey(nil), t.keys...),
		vals:    append([]NodeID(nil), t.vals...),
		occ:     append([]bool(nil), t.occ...),
		count:   t.count,
		primeIx: t.primeIx,
	}
}

func (t *hashTable) grow() {
	old := *t
	t.primeIx++
	if t.primeIx >= len(tablePrimes) {
		t.primeIx = len(tablePrimes) - 1
	}
	newCap := tablePrimes[t.primeIx]
	if newCap <= old.cap() {
		newCap = old.cap()*2 + 1
	}
	t.keys = make([]hashKey, newCap)
	t.vals = make([]NodeID, newCap)
	t.occ = make([]bool, newCap)
	t.count = 0

	for i, occ := range old.occ {
		if occ {
			t.insert(old.keys[i], old.vals[i])
		}
	}
}
