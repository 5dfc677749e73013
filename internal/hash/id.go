package hash

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Text computes the xxHash64 fingerprint of a section's text.
func Text(text string) uint64 {
	return xxhash.Sum64String(text)
}

// Key computes the xxHash64 of a (MAT, MF, MT) triple, each encoded as a
// big-endian uint32.
func Key(mat, mf, mt int) uint64 {
	var buf [12]byte
	binary.BigEndian.PutUint32(buf[0:], uint32(mat))
	binary.BigEndian.PutUint32(buf[4:], uint32(mf))
	binary.BigEndian.PutUint32(buf[8:], uint32(mt))

	return xxhash.Sum64(buf[:])
}

// Combine folds section fingerprints into one tape fingerprint. The result
// depends on the order of the inputs.
func Combine(ids ...uint64) uint64 {
	d := xxhash.New()
	var buf [8]byte
	for _, id := range ids {
		binary.BigEndian.PutUint64(buf[:], id)
		_, _ = d.Write(buf[:])
	}

	return d.Sum64()
}
