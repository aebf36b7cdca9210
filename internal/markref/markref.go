// Package markref implements the marked-pointer convention used by the
// ordered lock-free list in internal/list: a node's outgoing link carries,
// alongside the successor pointer, a single bit recording whether the node
// has been logically deleted.
//
// The textbook presentation of this convention (Harris 2001) steals the
// least-significant bit of the successor pointer itself. Go cannot do that
// safely: the garbage collector must always be able to see a real, untagged
// pointer value, and a uintptr with a stolen low bit is invisible to it.
// The same box-and-CAS shape is used here instead, a small immutable pair
// value, swapped in and out atomically, following the pattern the
// retrieval pack's non-blocking queue (petenewcomb's nbcq) uses for its own
// CAS'd next pointers. A single CompareAndSwap on the box is exactly as
// powerful as a single CAS on a tagged pointer would have been: it still
// atomically (a) observes the current successor and mark together, and
// (b) installs a new successor and/or mark together.
package markref

import "sync/atomic"

// Ref is the value half of a marked reference: a successor pointer plus its
// deletion mark. atomic.Value requires every payload stored in one Cell to
// have the same concrete type; every Ref[T] has that type, whether it is
// built with Of, Unmarked or a composite literal.
type Ref[T any] struct {
	Next    *T
	Deleted bool
}

// Of builds a marked reference.
func Of[T any](next *T, deleted bool) Ref[T] {
	return Ref[T]{Next: next, Deleted: deleted}
}

// Unmarked builds a live (non-deleted) reference.
func Unmarked[T any](next *T) Ref[T] {
	return Ref[T]{Next: next}
}

// Cell is an atomically readable, CAS-able slot holding a Ref[T]. The zero
// Cell is not ready for use; construct one with NewCell.
type Cell[T any] struct {
	v atomic.Value
}

// NewCell returns a Cell initialized to the given reference. A Cell must be
// seeded before any Load/CompareAndSwap call: Load on a never-stored Cell
// panics in its type assertion, and a CompareAndSwap against it never
// succeeds.
func NewCell[T any](initial Ref[T]) *Cell[T] {
	c := &Cell[T]{}
	c.v.Store(initial)
	return c
}

// Load reads the current reference.
func (c *Cell[T]) Load() Ref[T] {
	return c.v.Load().(Ref[T])
}

// Store unconditionally replaces the reference. internal/list never calls
// it (nodes are seeded through NewCell); all mutation visible to concurrent
// readers goes through CompareAndSwap.
func (c *Cell[T]) Store(r Ref[T]) {
	c.v.Store(r)
}

// CompareAndSwap atomically replaces old with new if and only if the cell
// currently holds old, returning whether the swap took place. This is the
// single primitive every list mutation (publish, logical delete, physical
// unlink) is built from.
func (c *Cell[T]) CompareAndSwap(old, new Ref[T]) bool {
	return c.v.CompareAndSwap(old, new)
}
