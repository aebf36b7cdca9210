// Package tempusmap implements a concurrent ordered map backed by a
// fixed-size bucket table of lock-free ordered lists, with two
// interchangeable safe-memory-reclamation schemes guarding every node a
// concurrent Insert/Remove physically unlinks. See SPEC_FULL.md for the
// full specification this package implements.
package tempusmap

import (
	"sync"

	"github.com/Krishna8167/tempusmap/internal/alloc"
	"github.com/Krishna8167/tempusmap/internal/bucket"
	"github.com/Krishna8167/tempusmap/internal/list"
	"github.com/Krishna8167/tempusmap/internal/reclaim"
)

// core is the state every Handle cloned from the same Map shares: the
// bucket table itself, both reclamation schemes' shared registries (only
// the configured one is ever used), and the configuration fixed at
// construction.
type core[K any, V any] struct {
	table      *bucket.Table[K, V]
	scheme     Scheme
	registry   *reclaim.Registry
	genericMgr *reclaim.GenericManager
	cfg        *config[K, V]
}

// Handle is one thread's (or goroutine's) private access point onto a
// Map: its own reclamation-scheme participant and its own retired-node
// bookkeeping, layered over table state shared with every other handle
// cloned from the same Map. A Handle must not be used concurrently from
// more than one goroutine; give each goroutine its own handle via Clone.
type Handle[K any, V any] struct {
	core      *core[K, V]
	reclaimer reclaim.Reclaimer

	janitorOnce sync.Once
	stopJanitor chan struct{}
}

// New constructs a Map and returns its first Handle. cmp orders keys
// within each bucket; hash routes a key to one of the table's fixed
// buckets and carries no ordering meaning of its own.
func New[K any, V any](cmp Comparator[K], hash func(K) uint64, opts ...Option[K, V]) *Handle[K, V] {
	cfg := defaultConfig[K, V]()
	for _, opt := range opts {
		opt(cfg)
	}

	c := &core[K, V]{
		table:      bucket.New[K, V](cfg.buckets, cmp, hash),
		scheme:     cfg.scheme,
		registry:   reclaim.NewRegistry(),
		genericMgr: reclaim.NewGenericManager(),
		cfg:        cfg,
	}

	h := newHandle(c)
	if cfg.refresh > 0 {
		h.startJanitor(cfg.refresh)
	}
	return h
}

func newHandle[K any, V any](c *core[K, V]) *Handle[K, V] {
	var r reclaim.Reclaimer
	switch c.scheme {
	case SchemeGeneric:
		r = reclaim.NewGenericReclaimer(c.genericMgr)
	default:
		r = reclaim.NewEpochReclaimer(c.registry)
	}
	return &Handle[K, V]{core: c, reclaimer: r}
}

// Clone returns a new Handle over the same underlying Map, with its own
// independent reclamation-scheme participant. Give one clone to each
// goroutine that needs concurrent access; a Handle itself is not safe for
// concurrent use by more than one goroutine.
func (h *Handle[K, V]) Clone() *Handle[K, V] {
	c := newHandle(h.core)
	if h.core.cfg.refresh > 0 {
		c.startJanitor(h.core.cfg.refresh)
	}
	return c
}

func (h *Handle[K, V]) retireNode(n *list.Node[K, V]) {
	m := h.core.cfg.metrics
	h.reclaimer.Retire(func() {
		n.Release()
		if m != nil {
			m.RetiredBufferSize.Dec()
		}
	})
	if m != nil {
		m.RetiredBufferSize.Inc()
	}
}

func (h *Handle[K, V]) retireValue(v *V) {
	h.reclaimer.Retire(func() {
		var zero V
		*v = zero
	})
}

// Insert installs value under key, or atomically replaces it if key is
// already present. prior is the replaced value and existed is true only
// in the latter case. err is non-nil only if the runtime could not
// satisfy the allocation a new node requires.
func (h *Handle[K, V]) Insert(key K, value V) (prior V, existed bool, err error) {
	err = alloc.Safe("Insert", func() error {
		h.reclaimer.Enter()
		defer h.reclaimer.Exit()

		v := value
		old, inserted := h.core.table.Insert(key, &v, h.retireNode, h.retireValue)
		if m := h.core.cfg.metrics; m != nil {
			m.Inserts.Inc()
		}
		if !inserted {
			prior = *old
			existed = true
		}
		return nil
	})
	if err != nil {
		h.core.cfg.logger.Warnf("insert key=%v failed: %v", key, err)
	}
	return prior, existed, err
}

// Get returns the value stored under key, if any.
func (h *Handle[K, V]) Get(key K) (value V, found bool) {
	h.reclaimer.Enter()
	v, ok := h.core.table.Lookup(key, h.retireNode)
	if ok {
		value, found = *v, true
	}
	h.reclaimer.Exit()

	if m := h.core.cfg.metrics; m != nil {
		m.Lookups.Inc()
	}
	return value, found
}

// Remove deletes key if present, returning its value.
func (h *Handle[K, V]) Remove(key K) (value V, removed bool) {
	h.reclaimer.Enter()
	v, ok := h.core.table.Remove(key, h.retireNode, h.retireValue)
	if ok {
		value, removed = *v, true
	}
	h.reclaimer.Exit()

	if removed {
		if m := h.core.cfg.metrics; m != nil {
			m.Removes.Inc()
		}
	}
	return value, removed
}

// Len returns the map's advisory live-entry count: best-effort, not
// linearizable, concurrent mutations on other handles may make it stale
// by the time it is observed.
func (h *Handle[K, V]) Len() int64 { return h.core.table.Len() }

// IsEmpty reports whether Len is zero.
func (h *Handle[K, V]) IsEmpty() bool { return h.Len() == 0 }

// Reclaim runs one reclamation pass for this handle's retired nodes.
// Calling it is always safe and never required for correctness, Insert
// and Remove remain lock-free regardless, but without it (or
// WithAutoReclaim) retired nodes accumulate in this handle's private
// buffer forever.
func (h *Handle[K, V]) Reclaim() {
	h.reclaimer.TryReclaim()
	if m := h.core.cfg.metrics; m != nil {
		m.ReclaimPasses.Inc()
	}
	h.core.cfg.logger.Debugf("reclaim pass complete")
}

// Close flushes this handle's pending retirements and removes it from
// its reclamation scheme's shared registry. A closed Handle must not be
// used again; other handles cloned from the same Map are unaffected.
func (h *Handle[K, V]) Close() {
	h.janitorOnce.Do(func() {
		if h.stopJanitor != nil {
			close(h.stopJanitor)
		}
	})
	h.reclaimer.Close()
}
