// Package compress provides the compression codecs used for ENDF-6 tape
// files and snapshots.
//
// ENDF-6 text is highly repetitive (fixed columns, padded fields, repeated
// MAT/MF/MT tags), so general-purpose compressors shrink it by a factor of
// five to ten. Four codecs are available, selected by format.CompressionType:
//
//   - None: bytes are passed through unchanged
//   - Zstd: best ratio; output is a standard zstd frame readable by the zstd CLI
//   - S2: fast Snappy-compatible block format
//   - LZ4: LZ4 frame format readable by the lz4 CLI
//
// Files written by tape.WriteFile pick the codec from the file extension
// (.zst, .s2, .lz4); Detect recognizes zstd and LZ4 frames from their magic
// numbers so that compressed input can be loaded without an extension hint.
//
// # Usage
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	if err != nil {
//	    return err
//	}
//	packed, err := codec.Compress([]byte(text))
//
// All codecs are safe for concurrent use. The zstd codec pools its encoders
// and decoders with sync.Pool. Building with the gozstd tag (and cgo enabled)
// switches zstd to the cgo binding of the reference library.
package compress
