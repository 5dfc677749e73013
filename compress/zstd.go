package compress

// ZstdCompressor produces standard zstd frames. It is the default codec for
// archived tapes and snapshots.
//
// The implementation is selected at build time: the pure Go
// klauspost/compress encoder by default, or the cgo gozstd binding when built
// with the gozstd tag.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a zstd codec.
//
// Example:
//
//	codec := NewZstdCompressor()
//	packed, err := codec.Compress([]byte(text))
//	if err != nil {
//		return err
//	}
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
