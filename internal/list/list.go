// Package list implements the ordered lock-free list: a per-bucket,
// singly-linked, key-sorted list with sentinel head and tail nodes,
// supporting Insert, Lookup and logical-then-physical Remove via the
// Harris/Michael splice-and-restart discipline.
//
// Every mutating operation is lock-free: at least one concurrent caller
// always makes progress, and no operation ever blocks on a mutex. Safety of
// freeing a physically unlinked node is not this package's concern, it is
// handed to the caller as a retire callback, and the caller's safe-memory-
// reclamation layer (internal/reclaim) decides when it is actually safe to
// drop the last reference.
package list

// Comparator orders keys the way a caller-supplied less-than/equal/greater
// function would: negative if a < b, zero if a == b, positive if a > b.
// Keeping this as a plain function value rather than a type constraint
// mirrors the convention btree-shaped libraries in the Go ecosystem use
// (e.g. google/btree's Less) so that List works over keys with no natural
// ordered-constraint (structs, custom types) as well as over builtins.
type Comparator[K any] func(a, b K) int

// List owns the two sentinel nodes and, transitively, every node reachable
// by following next from head.
type List[K any, V any] struct {
	cmp  Comparator[K]
	head *Node[K, V]
	tail *Node[K, V]
}

// New constructs an empty list ordered by cmp.
func New[K any, V any](cmp Comparator[K]) *List[K, V] {
	tail := newSentinel[K, V](Ref[K, V]{})
	head := newSentinel[K, V](Ref[K, V]{Next: tail})
	return &List[K, V]{cmp: cmp, head: head, tail: tail}
}

// Head returns the head sentinel. Exposed only for diagnostics, ordinary
// traversal never starts anywhere else, and no caller outside this
// package should mutate it.
func (l *List[K, V]) Head() *Node[K, V] { return l.head }

// Tail returns the tail sentinel.
func (l *List[K, V]) Tail() *Node[K, V] { return l.tail }
