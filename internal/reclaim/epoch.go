package reclaim

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// counter is one handle's quiescent-state epoch: even means the handle is
// between operations, odd means it is inside one. Enter and Exit both
// just add 1, the parity flip is the whole signal.
type counter struct {
	v atomic.Uint64
}

func (c *counter) load() uint64 { return c.v.Load() }
func (c *counter) flip()        { c.v.Add(1) }

// Registry is the shared set of live handles' counters that every
// EpochReclaimer scans when deciding whether a retirement is safe to run.
// Membership changes (handle creation, handle Close) are rare relative to
// every handle's own Enter/Exit, so a plain RWMutex, read-locked by the
// scan, write-locked only at (de)registration, is the right tool.
type Registry struct {
	mu      sync.RWMutex
	members map[*counter]struct{}
}

// NewRegistry returns an empty registry. One Registry is shared by every
// Handle over the same map.
func NewRegistry() *Registry {
	return &Registry{members: make(map[*counter]struct{})}
}

func (r *Registry) register(c *counter) {
	r.mu.Lock()
	r.members[c] = struct{}{}
	r.mu.Unlock()
}

func (r *Registry) unregister(c *counter) {
	r.mu.Lock()
	delete(r.members, c)
	r.mu.Unlock()
}

func (r *Registry) others(self *counter) []*counter {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*counter, 0, len(r.members))
	for c := range r.members {
		if c != self {
			out = append(out, c)
		}
	}
	return out
}

// EpochReclaimer is Scheme A, the reference design: a private counter
// registered into a shared Registry, and a private buffer
// of retirements that TryReclaim only ever frees once every other
// registered counter has either moved on from, or never shared, the
// epoch it was in when the scan began.
type EpochReclaimer struct {
	registry *Registry
	counter  *counter
	retired  []func()
}

// NewEpochReclaimer registers a new counter in registry and returns a
// reclaimer for it. Call Close when the owning handle is done.
func NewEpochReclaimer(registry *Registry) *EpochReclaimer {
	c := &counter{}
	registry.register(c)
	return &EpochReclaimer{registry: registry, counter: c}
}

// Enter marks this handle active; call once at the start of every
// Insert/Lookup/Remove.
func (e *EpochReclaimer) Enter() { e.counter.flip() }

// Exit marks this handle quiescent; call once at the end of every
// Insert/Lookup/Remove, including on every return path.
func (e *EpochReclaimer) Exit() { e.counter.flip() }

// Retire defers release until a TryReclaim call proves no other handle
// can still observe the object it closes over.
func (e *EpochReclaimer) Retire(release func()) {
	e.retired = append(e.retired, release)
}

// TryReclaim scans every other registered counter once. A counter that
// was already even (quiescent) at scan time can never have been mid-
// traversal of a node retired before the scan, so it clears immediately.
// A counter caught odd (active) is spun on, with runtime.Gosched so the
// wait yields rather than burning a core, until it either advances past
// that epoch or goes quiescent itself; only then is it provably done
// with whatever it was holding when the scan started. Once every other
// counter has cleared, every retirement queued before this call is safe
// to run, in order.
func (e *EpochReclaimer) TryReclaim() {
	if len(e.retired) == 0 {
		return
	}
	others := e.registry.others(e.counter)
	atScan := make([]uint64, len(others))
	for i, c := range others {
		atScan[i] = c.load()
	}
	for i, c := range others {
		snap := atScan[i]
		if snap%2 == 0 {
			continue
		}
		for c.load() == snap {
			runtime.Gosched()
		}
	}

	pending := e.retired
	e.retired = nil
	for _, release := range pending {
		release()
	}
}

// Close flushes any pending retirements and removes this handle's
// counter from the registry. The handle must not call Enter/Exit again
// after Close.
func (e *EpochReclaimer) Close() {
	e.TryReclaim()
	e.registry.unregister(e.counter)
}
