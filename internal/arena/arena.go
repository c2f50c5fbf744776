// SPDX-License-Identifier: MIT

// Package arena provides a paged, freelist-backed allocator for
// fixed-size records addressed by a stable integer Index.
//
// Unlike a sync.Pool, records never move once allocated and an Index
// remains valid for the lifetime of the Arena: the owner (a single
// logical thread, per the manager's single-owner concurrency model)
// is free to store an Index anywhere and dereference it later without
// fear of it having been handed to someone else in the meantime.
package arena

import "sync/atomic"

const pageSize = 1 << 12

// Index is a stable identifier for a record allocated from an Arena.
type Index uint32

// Arena allocates records of type T in pages of pageSize, threading a
// singly linked free list through reclaimed slots.
type Arena[T any] struct {
	pages [][]T

	// freeHead is the index of the first free slot, or freeNone.
	freeHead Index
	freeNext []Index // parallel to the dense id space; freeNext[i] is valid only while slot i is free

	totalAllocated atomic.Int64
	currentLive    atomic.Int64
}

const freeNone = Index(^uint32(0))

// New returns an empty Arena. Index 0 is reserved by convention for
// callers that need a dedicated sentinel record (the AIG manager uses
// it for the constant-1 node); New does not allocate it itself.
func New[T any]() *Arena[T] {
	return &Arena[T]{freeHead: freeNone}
}

// Len returns the number of dense slots ever handed out (allocated or
// freed); it is the upper bound on valid indices, not the live count.
func (a *Arena[T]) Len() int {
	return len(a.freeNext)
}

// Alloc returns a fresh or recycled Index together with a pointer to
// its zeroed-or-reused record.
func (a *Arena[T]) Alloc() (Index, *T) {
	a.currentLive.Add(1)

	if a.freeHead != freeNone {
		idx := a.freeHead
		a.freeHead = a.freeNext[idx]
		rec := a.at(idx)
		var zero T
		*rec = zero
		return idx, rec
	}

	a.totalAllocated.Add(1)
	idx := Index(len(a.freeNext))
	a.growTo(int(idx) + 1)
	a.freeNext = append(a.freeNext, freeNone)
	return idx, a.at(idx)
}

// Free returns idx to the free list. The record's storage is not
// zeroed until the slot is reused by Alloc.
func (a *Arena[T]) Free(idx Index) {
	a.currentLive.Add(-1)
	a.freeNext[idx] = a.freeHead
	a.freeHead = idx
}

// At returns a pointer to the record at idx. idx must have been
// returned by a prior Alloc and not yet Free'd.
func (a *Arena[T]) At(idx Index) *T {
	return a.at(idx)
}

func (a *Arena[T]) at(idx Index) *T {
	page := idx / pageSize
	off := idx % pageSize
	return &a.pages[page][off]
}

func (a *Arena[T]) growTo(n int) {
	for n > len(a.pages)*pageSize {
		a.pages = append(a.pages, make([]T, pageSize))
	}
}

// Stats returns the number of currently live (not freed) records and
// the total number of records ever allocated (including reclaimed
// slots only once, at their first allocation).
func (a *Arena[T]) Stats() (live, total int64) {
	return a.currentLive.Load(), a.totalAllocated.Load()
}

// Clone returns a deep, independent copy of a: every page is
// duplicated so mutating the copy (allocating, freeing, or writing
// through an *T) never touches a. Used by Manager.Clone to give
// passes like fraig their own working copy of the arena per spec.md
// §6's "fraig returns a new manager" contract.
func (a *Arena[T]) Clone() *Arena[T] {
	out := &Arena[T]{freeHead: a.freeHead}
	out.pages = make([][]T, len(a.pages))
	for i, p := range a.pages {
		cp := make([]T, len(p))
		copy(cp, p)
		out.pages[i] = cp
	}
	out.freeNext = append([]Index(nil), a.freeNext...)
	live, total := a.Stats()
	out.currentLive.Store(live)
	out.totalAllocated.Store(total)
	return out
}
