package reclaim

import (
	"sync"
	"sync/atomic"
)

// notPinned marks a reader as not currently inside an operation; it is
// the maximum uint64 so it never compares less than any real epoch.
const notPinned = ^uint64(0)

// GenericManager is Scheme B's shared state: one global epoch counter
// and a registry of reader pins. Unlike EpochReclaimer's per-pair-of-
// handles counter scan, here every reader publishes the single global
// epoch it last entered at, and reclamation frees whatever was retired
// strictly before the oldest epoch any reader is still pinned to.
type GenericManager struct {
	epoch     atomic.Uint64
	readers   sync.Map // *GenericReclaimer -> uint64 pinned epoch
	retiredMu sync.Mutex
	retired   map[uint64][]func()
}

// NewGenericManager returns a fresh, empty manager. One GenericManager is
// shared by every handle configured for Scheme B.
func NewGenericManager() *GenericManager {
	return &GenericManager{retired: make(map[uint64][]func())}
}

// GenericReclaimer is one handle's participation in a GenericManager.
type GenericReclaimer struct {
	mgr *GenericManager
}

// NewGenericReclaimer registers a new reader with mgr.
func NewGenericReclaimer(mgr *GenericManager) *GenericReclaimer {
	g := &GenericReclaimer{mgr: mgr}
	mgr.readers.Store(g, notPinned)
	return g
}

// Enter pins this reader at the manager's current epoch.
func (g *GenericReclaimer) Enter() {
	g.mgr.readers.Store(g, g.mgr.epoch.Load())
}

// Exit unpins this reader.
func (g *GenericReclaimer) Exit() {
	g.mgr.readers.Store(g, notPinned)
}

// Retire files release under the manager's current epoch. It becomes
// eligible for reclamation once every reader has moved past that epoch.
func (g *GenericReclaimer) Retire(release func()) {
	e := g.mgr.epoch.Load()
	g.mgr.retiredMu.Lock()
	g.mgr.retired[e] = append(g.mgr.retired[e], release)
	g.mgr.retiredMu.Unlock()
}

// TryReclaim advances the global epoch by one, then frees every batch of
// retirements filed under an epoch strictly less than the oldest epoch
// any reader is currently pinned to. A reader that is not pinned at all
// places no lower bound on what can be freed.
func (g *GenericReclaimer) TryReclaim() {
	next := g.mgr.epoch.Add(1)

	minPinned := next
	g.mgr.readers.Range(func(_, v any) bool {
		if e := v.(uint64); e != notPinned && e < minPinned {
			minPinned = e
		}
		return true
	})

	g.mgr.retiredMu.Lock()
	defer g.mgr.retiredMu.Unlock()
	for epoch, batch := range g.mgr.retired {
		if epoch >= minPinned {
			continue
		}
		for _, release := range batch {
			release()
		}
		delete(g.mgr.retired, epoch)
	}
}

// Close flushes this reader's view of reclaimable work and removes it
// from the manager. Any retirements still blocked behind another live
// reader remain in the manager for that reader's own TryReclaim to free.
func (g *GenericReclaimer) Close() {
	g.TryReclaim()
	g.mgr.readers.Delete(g)
}
