// Package bucket implements the fixed-size bucket hash table: an array of
// independent ordered lists, each a complete instance of internal/list,
// routed to by a caller-supplied hash function. The table never resizes;
// bucket count is fixed at construction, chosen once via a functional
// option.
package bucket

import (
	"sync/atomic"

	"github.com/Krishna8167/tempusmap/internal/list"
)

// Table is a fixed array of lists, one per bucket, each independently
// lock-free. It carries no lock of its own: routing a key to its bucket
// is a pure function of the key's hash, and every bucket's list handles
// its own concurrency.
type Table[K any, V any] struct {
	buckets []*list.List[K, V]
	hash    func(K) uint64
	count   atomic.Int64
}

// New constructs a table with the given fixed bucket count, ordering
// comparator and hash function. A bucketCount below 1 is treated as 1.
func New[K any, V any](bucketCount int, cmp list.Comparator[K], hash func(K) uint64) *Table[K, V] {
	if bucketCount < 1 {
		bucketCount = 1
	}
	t := &Table[K, V]{
		buckets: make([]*list.List[K, V], bucketCount),
		hash:    hash,
	}
	for i := range t.buckets {
		t.buckets[i] = list.New[K, V](cmp)
	}
	return t
}

// bucketFor returns the list responsible for key.
func (t *Table[K, V]) bucketFor(key K) *list.List[K, V] {
	idx := t.hash(key) % uint64(len(t.buckets))
	return t.buckets[idx]
}

// Insert routes to key's bucket and inserts or updates it there, keeping
// the table's advisory live-entry count in step.
func (t *Table[K, V]) Insert(key K, value *V, retire func(*list.Node[K, V]), retireValue func(*V)) (prior *V, inserted bool) {
	prior, inserted = t.bucketFor(key).Insert(key, value, retire, retireValue)
	if inserted {
		t.count.Add(1)
	}
	return prior, inserted
}

// Lookup routes to key's bucket and returns its value, if present.
func (t *Table[K, V]) Lookup(key K, retire func(*list.Node[K, V])) (*V, bool) {
	return t.bucketFor(key).Lookup(key, retire)
}

// Remove routes to key's bucket and removes it there.
func (t *Table[K, V]) Remove(key K, retire func(*list.Node[K, V]), retireValue func(*V)) (*V, bool) {
	value, removed := t.bucketFor(key).Remove(key, retire, retireValue)
	if removed {
		t.count.Add(-1)
	}
	return value, removed
}

// Len returns the table's advisory live-entry count: a best-effort count,
// not a linearizable size. Concurrent mutations may make it momentarily
// stale by the time a caller observes it.
func (t *Table[K, V]) Len() int64 {
	return t.count.Load()
}

// Buckets returns the number of fixed buckets in the table.
func (t *Table[K, V]) Buckets() int {
	return len(t.buckets)
}

// Walk calls fn for every live entry across every bucket, in bucket order.
// Diagnostics and test use only; the table makes no iteration guarantee.
func (t *Table[K, V]) Walk(fn func(key K, value *V)) {
	for _, b := range t.buckets {
		b.Walk(fn)
	}
}

// Bucket exposes the raw list behind a bucket, for tests needing direct
// access to sentinel nodes.
func (t *Table[K, V]) Bucket(i int) *list.List[K, V] {
	return t.buckets[i]
}
