package reclaim

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEpochReclaimerRunsRetiredWorkOnceQuiescent(t *testing.T) {
	registry := NewRegistry()
	r := NewEpochReclaimer(registry)
	defer r.Close()

	var ran atomic.Bool
	r.Enter()
	r.Retire(func() { ran.Store(true) })
	r.Exit()

	r.TryReclaim()
	assert.True(t, ran.Load())
}

func TestEpochReclaimerWaitsForActiveHandle(t *testing.T) {
	registry := NewRegistry()
	a := NewEpochReclaimer(registry)
	b := NewEpochReclaimer(registry)
	defer a.Close()

	var ran atomic.Bool
	a.Enter()
	a.Retire(func() { ran.Store(true) })
	a.Exit()

	b.Enter() // now odd: mid-operation

	done := make(chan struct{})
	go func() {
		a.TryReclaim()
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("TryReclaim returned while another handle was still mid-operation")
	case <-time.After(50 * time.Millisecond):
	}

	b.Exit() // back to quiescent; the scan should now unblock

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("TryReclaim did not unblock after the other handle went quiescent")
	}
	assert.True(t, ran.Load())
}

func TestEpochReclaimerCloseUnregisters(t *testing.T) {
	registry := NewRegistry()
	r := NewEpochReclaimer(registry)
	r.Close()

	assert.Empty(t, registry.others(nil))
}

func TestEpochReclaimerConcurrentEnterExit(t *testing.T) {
	registry := NewRegistry()
	const handles = 32

	var wg sync.WaitGroup
	reclaimers := make([]*EpochReclaimer, handles)
	for i := range reclaimers {
		reclaimers[i] = NewEpochReclaimer(registry)
	}

	wg.Add(handles)
	for _, r := range reclaimers {
		r := r
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				r.Enter()
				r.Exit()
			}
		}()
	}
	wg.Wait()

	for _, r := range reclaimers {
		r.Close()
	}
}

func TestGenericReclaimerRunsRetiredWorkOnceUnpinned(t *testing.T) {
	mgr := NewGenericManager()
	r := NewGenericReclaimer(mgr)
	defer r.Close()

	var ran atomic.Bool
	r.Enter()
	r.Retire(func() { ran.Store(true) })
	r.Exit()

	r.TryReclaim()
	require.True(t, ran.Load())
}

func TestGenericReclaimerWaitsForPinnedReader(t *testing.T) {
	mgr := NewGenericManager()
	a := NewGenericReclaimer(mgr)
	b := NewGenericReclaimer(mgr)
	defer a.Close()
	defer b.Close()

	a.Enter()
	a.Retire(func() {})
	a.Exit()

	b.Enter() // pins the manager's current epoch

	var ran atomic.Bool
	a.Retire(func() { ran.Store(true) })
	a.TryReclaim()
	assert.False(t, ran.Load(), "a retirement filed at or after a pinned reader's epoch must not run yet")

	b.Exit()
	a.TryReclaim()
	assert.True(t, ran.Load())
}
