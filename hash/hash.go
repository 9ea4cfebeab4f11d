// Package hash computes content hashes of ops.
package hash

import (
	"sync"

	"github.com/zeebo/blake3"
)

// Size of a content hash in bytes.
const Size = 32

var pool = &sync.Pool{
	New: func() any {
		return blake3.New()
	},
}

// GetHasher gets a blake3 hasher from the pool. The hasher must be returned
// with PutHasher once it is no longer used.
func GetHasher() *blake3.Hasher {
	return pool.Get().(*blake3.Hasher)
}

// PutHasher resets the hasher and returns it to the pool.
func PutHasher(hasher *blake3.Hasher) {
	hasher.Reset()
	pool.Put(hasher)
}

// Sum returns the blake3 sum of the concatenation of chunks.
func Sum(chunks ...[]byte) (rst [Size]byte) {
	hh := GetHasher()
	defer PutHasher(hh)
	for _, chunk := range chunks {
		hh.Write(chunk)
	}
	hh.Sum(rst[:0])
	return rst
}
