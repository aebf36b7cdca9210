package list

import (
	"sync/atomic"

	"github.com/Krishna8167/tempusmap/internal/markref"
)

// Node is one entry in an ordered list: a sentinel (hasKey == false) or a
// data node carrying a key that, once constructed, never changes. Only two
// things about a live node ever mutate after construction: the value
// pointer (on an Insert update) and the next link (on logical, then
// physical, deletion).
type Node[K any, V any] struct {
	key    K
	hasKey bool

	// value indirects through a pointer so that a reader holding a stale
	// reference to this node can never observe a value torn by an
	// in-progress update; updates swap the pointer, they never mutate *V.
	value atomic.Pointer[V]

	next *markref.Cell[Node[K, V]]
}

func newDataNode[K any, V any](key K, value *V, next Ref[K, V]) *Node[K, V] {
	n := &Node[K, V]{key: key, hasKey: true}
	n.value.Store(value)
	n.next = markref.NewCell(next)
	return n
}

func newSentinel[K any, V any](next Ref[K, V]) *Node[K, V] {
	n := &Node[K, V]{}
	n.next = markref.NewCell(next)
	return n
}

// Ref is a marked reference to a Node[K, V]; see internal/markref for why
// this pair-and-CAS shape stands in for a tagged low-bit pointer.
type Ref[K any, V any] = markref.Ref[Node[K, V]]

// Key returns the node's key. Only meaningful for data nodes (HasKey true);
// sentinels carry the zero value of K.
func (n *Node[K, V]) Key() K { return n.key }

// HasKey reports whether this is a data node as opposed to a sentinel.
func (n *Node[K, V]) HasKey() bool { return n.hasKey }

// Value loads the node's current value pointer.
func (n *Node[K, V]) Value() *V { return n.value.Load() }

// Release drops this node's internal references once a safe-memory-
// reclamation layer (internal/reclaim) has proven no handle can still be
// holding a pointer to it. There is no explicit deallocator in Go: this
// just clears the node's own fields so nothing it pointed at is kept
// alive by it; the node itself becomes collectible when the reclaimer's
// own retired-object record is the last thing still referencing it.
func (n *Node[K, V]) Release() {
	n.value.Store(nil)
	n.next = nil
}
