package hyperloglog

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	metro "github.com/dgryski/go-metro"
	"github.com/segmentio/fasthash/fnv1a"
	"github.com/spaolacci/murmur3"
)

// HashFunc maps a key to a uniformly distributed 64-bit value.
type HashFunc[K any] func(K) uint64

const metroSeed = 1337

// XXHashString hashes s with xxHash64. It is the default string hasher.
func XXHashString(s string) uint64 {
	return xxhash.Sum64String(s)
}

// XXHashBytes hashes b with xxHash64.
func XXHashBytes(b []byte) uint64 {
	return xxhash.Sum64(b)
}

// Murmur3String hashes s with the 64-bit half of MurmurHash3 x64_128.
func Murmur3String(s string) uint64 {
	return murmur3.Sum64([]byte(s))
}

// Murmur3Int64 hashes the little-endian encoding of v with MurmurHash3. It is
// the default int64 hasher.
func Murmur3Int64(v int64) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(v))
	return murmur3.Sum64(buf[:])
}

// MetroString hashes s with MetroHash64.
func MetroString(s string) uint64 {
	return metro.Hash64([]byte(s), metroSeed)
}

// FNV1aString hashes s with 64-bit FNV-1a. FNV has weak avalanche on short
// keys, prefer one of the other hashers unless compatibility requires it.
func FNV1aString(s string) uint64 {
	return fnv1a.HashString64(s)
}
