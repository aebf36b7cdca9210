package bucket

import (
	"cmp"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Krishna8167/tempusmap/internal/keyhash"
	"github.com/Krishna8167/tempusmap/internal/list"
)

func noopRetire(*list.Node[int, string]) {}

func TestTableInsertLookupRemove(t *testing.T) {
	tbl := New[int, string](8, cmp.Compare[int], keyhash.Int())

	for i := 0; i < 20; i++ {
		v := fmt.Sprintf("v%d", i)
		_, inserted := tbl.Insert(i, &v, noopRetire, nil)
		require.True(t, inserted)
	}
	assert.Equal(t, int64(20), tbl.Len())

	for i := 0; i < 20; i++ {
		v, found := tbl.Lookup(i, noopRetire)
		require.True(t, found)
		assert.Equal(t, fmt.Sprintf("v%d", i), *v)
	}

	for i := 0; i < 10; i++ {
		_, removed := tbl.Remove(i, noopRetire, nil)
		require.True(t, removed)
	}
	assert.Equal(t, int64(10), tbl.Len())
}

func TestTableRoutesDistinctKeysToFixedBuckets(t *testing.T) {
	tbl := New[int, string](4, cmp.Compare[int], keyhash.Int())
	assert.Equal(t, 4, tbl.Buckets())

	v := "x"
	tbl.Insert(7, &v, noopRetire, nil)
	found := 0
	for i := 0; i < tbl.Buckets(); i++ {
		_, ok := tbl.Bucket(i).Lookup(7, noopRetire)
		if ok {
			found++
		}
	}
	assert.Equal(t, 1, found, "an inserted key must be found in exactly one of the table's fixed buckets")
}

func TestTableWalkVisitsEveryBucket(t *testing.T) {
	tbl := New[int, string](8, cmp.Compare[int], keyhash.Int())
	want := map[int]string{}
	for i := 0; i < 50; i++ {
		v := fmt.Sprintf("v%d", i)
		tbl.Insert(i, &v, noopRetire, nil)
		want[i] = v
	}

	got := map[int]string{}
	tbl.Walk(func(k int, v *string) { got[k] = *v })
	assert.Equal(t, want, got)
}

func TestTableSingleBucket(t *testing.T) {
	tbl := New[int, string](0, cmp.Compare[int], keyhash.Int())
	assert.Equal(t, 1, tbl.Buckets(), "bucketCount < 1 must fall back to a single bucket")
}
