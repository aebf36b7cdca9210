package alloc

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeReturnsErrorUnchanged(t *testing.T) {
	want := errors.New("boom")
	err := Safe("Insert", func() error { return want })
	assert.Equal(t, want, err)
}

func TestSafeReturnsNilOnSuccess(t *testing.T) {
	err := Safe("Insert", func() error { return nil })
	assert.NoError(t, err)
}

func TestSafeRecoversOutOfMemoryPanic(t *testing.T) {
	err := Safe("Insert", func() error {
		panic(errors.New("runtime: out of memory"))
	})
	require.Error(t, err)
	var allocErr *Error
	require.ErrorAs(t, err, &allocErr)
	assert.Equal(t, "Insert", allocErr.Op)
}

func TestSafePropagatesOtherPanics(t *testing.T) {
	defer func() {
		r := recover()
		require.NotNil(t, r, "a non-OOM panic must propagate, not be swallowed")
	}()
	Safe("Insert", func() error {
		panic("not an allocation failure")
	})
}
