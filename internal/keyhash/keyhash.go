// Package keyhash provides the stable key-to-bucket hashing used by
// internal/bucket to route a key to one of the table's fixed lists. The
// default hashers are xxhash-backed; callers with keys of a kind this
// package does not special-case supply their own Hasher.
package keyhash

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Hasher maps a key to a uint64 used only to select a bucket index; it
// carries no ordering meaning and need not agree with any Comparator.
type Hasher[K any] func(key K) uint64

// String returns a Hasher for string keys.
func String() Hasher[string] {
	return func(key string) uint64 {
		return xxhash.Sum64String(key)
	}
}

// Bytes returns a Hasher for []byte keys.
func Bytes() Hasher[[]byte] {
	return func(key []byte) uint64 {
		return xxhash.Sum64(key)
	}
}

// Int returns a Hasher for int keys.
func Int() Hasher[int] {
	return func(key int) uint64 {
		return hashUint64(uint64(key))
	}
}

// Int64 returns a Hasher for int64 keys.
func Int64() Hasher[int64] {
	return func(key int64) uint64 {
		return hashUint64(uint64(key))
	}
}

// Uint64 returns a Hasher for uint64 keys.
func Uint64() Hasher[uint64] {
	return hashUint64
}

// Float64 returns a Hasher for float64 keys, grounded on the key's IEEE-754
// bit pattern so that equal floats (including -0/+0, which compare equal)
// hash identically.
func Float64() Hasher[float64] {
	return func(key float64) uint64 {
		if key == 0 {
			key = 0 // -0 and +0 compare equal; hash both as +0
		}
		return hashUint64(math.Float64bits(key))
	}
}

func hashUint64(v uint64) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return xxhash.Sum64(buf[:])
}
