package identifier

import (
	"github.com/minio/highwayhash"
)

var key = []byte("0123456789ABCDEF0123456789ABCDEF")

// Hash computes a deterministic 64-bit digest of data.
// The key is fixed so the digest is stable across processes and machines.
func Hash(data []byte) (uint64, error) {
	hash, err := highwayhash.New64(key)
	if err != nil {
		return 0, err
	}
	_, err = hash.Write(data)
	return hash.Sum64(), err
}
