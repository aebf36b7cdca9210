package markref

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellLoadStore(t *testing.T) {
	type payload struct{ n int }
	cell := NewCell(Unmarked(&payload{n: 1}))

	got := cell.Load()
	require.NotNil(t, got.Next)
	assert.Equal(t, 1, got.Next.n)
	assert.False(t, got.Deleted)

	cell.Store(Of(&payload{n: 2}, true))
	got = cell.Load()
	assert.Equal(t, 2, got.Next.n)
	assert.True(t, got.Deleted)
}

func TestCellCompareAndSwap(t *testing.T) {
	type payload struct{ n int }
	a := &payload{n: 1}
	b := &payload{n: 2}
	cell := NewCell(Unmarked(a))

	ok := cell.CompareAndSwap(Unmarked(b), Unmarked(b))
	assert.False(t, ok, "CAS against a stale expected value must fail")

	ok = cell.CompareAndSwap(Unmarked(a), Unmarked(b))
	assert.True(t, ok)
	assert.Equal(t, b, cell.Load().Next)
}

// TestCellCompareAndSwapUnderContention exercises the CAS-retry-loop
// shape every caller of Cell builds on top of: exactly one of many
// concurrent compare-and-swap attempts against the same expected value
// succeeds.
func TestCellCompareAndSwapUnderContention(t *testing.T) {
	type payload struct{ n int }
	initial := &payload{n: 0}
	cell := NewCell(Unmarked(initial))

	const racers = 64
	var wg sync.WaitGroup
	var mu sync.Mutex
	successes := 0
	wg.Add(racers)
	for i := 0; i < racers; i++ {
		i := i
		go func() {
			defer wg.Done()
			if cell.CompareAndSwap(Unmarked(initial), Unmarked(&payload{n: i})) {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes, "exactly one CAS against the same expected value must win")
}
