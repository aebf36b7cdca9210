package list

// Insert installs value under key if key is absent, or atomically swaps in
// value and reports the displaced value pointer if key is already present.
// retire and retireValue receive, respectively, any list node and any
// value cell that this call physically unlinked or displaced, the
// caller (internal/reclaim, via the owning Handle) decides when it is
// actually safe to let them go.
func (l *List[K, V]) Insert(key K, value *V, retire func(*Node[K, V]), retireValue func(*V)) (prior *V, inserted bool) {
	for {
		left, right := l.search(key, retire)

		if right != l.tail && l.cmp(right.key, key) == 0 {
			old := right.value.Swap(value)
			if retireValue != nil && old != nil {
				retireValue(old)
			}
			return old, false
		}

		newNode := newDataNode[K, V](key, value, Ref[K, V]{Next: right})
		if left.next.CompareAndSwap(Ref[K, V]{Next: right}, Ref[K, V]{Next: newNode}) {
			return nil, true
		}
		// A concurrent insert or delete changed left.next; the new node
		// was never published, so there is nothing to retire, just retry
		// against the narrower (or wider) position search now finds.
	}
}

// Lookup returns the value stored under key, if any. It never itself
// CASes the list, but helps prune marked runs it crosses via search.
func (l *List[K, V]) Lookup(key K, retire func(*Node[K, V])) (*V, bool) {
	_, right := l.search(key, retire)
	if right == l.tail || l.cmp(right.key, key) != 0 {
		return nil, false
	}
	return right.value.Load(), true
}

// Remove logically, then best-effort physically, deletes key. Idempotent:
// a second Remove of an already-removed key reports absent.
func (l *List[K, V]) Remove(key K, retire func(*Node[K, V]), retireValue func(*V)) (*V, bool) {
	for {
		left, right := l.search(key, retire)
		if right == l.tail || l.cmp(right.key, key) != 0 {
			return nil, false
		}

		rRef := right.next.Load()
		if rRef.Deleted {
			// Raced with a concurrent remove of the same key and lost.
			return nil, false
		}
		marked := Ref[K, V]{Next: rRef.Next, Deleted: true}
		if !right.next.CompareAndSwap(rRef, marked) {
			// Either right's successor moved or another remove beat us
			// to the mark; re-search and re-evaluate from scratch.
			continue
		}

		value := right.value.Load()
		if left.next.CompareAndSwap(Ref[K, V]{Next: right}, Ref[K, V]{Next: marked.Next}) {
			retire(right)
		} else {
			// The immediate unlink lost its race. A future caller's
			// search would eventually prune this node as part of a
			// marked run, but re-searching now shortens its live window
			// rather than leaving it for later.
			l.search(key, retire)
		}

		if retireValue != nil {
			retireValue(value)
		}
		return value, true
	}
}

// Walk calls fn for every live (unmarked) data node from head to tail,
// skipping sentinels. It makes no atomicity promise across the whole walk;
// it is for diagnostics and tests, never production traversal. The
// core makes no iteration guarantee.
func (l *List[K, V]) Walk(fn func(key K, value *V)) {
	for n := l.head.next.Load().Next; n != l.tail; {
		ref := n.next.Load()
		if !ref.Deleted {
			fn(n.key, n.value.Load())
		}
		n = ref.Next
	}
}
