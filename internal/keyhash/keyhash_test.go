package keyhash

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashersAreDeterministic(t *testing.T) {
	assert.Equal(t, String()("hello"), String()("hello"))
	assert.Equal(t, Bytes()([]byte("hello")), Bytes()([]byte("hello")))
	assert.Equal(t, Int()(42), Int()(42))
	assert.Equal(t, Int64()(-7), Int64()(-7))
	assert.Equal(t, Uint64()(7), Uint64()(7))
	assert.Equal(t, Float64()(3.14), Float64()(3.14))
}

func TestHashersDistinguishDistinctKeys(t *testing.T) {
	assert.NotEqual(t, String()("a"), String()("b"))
	assert.NotEqual(t, Int()(1), Int()(2))
}

