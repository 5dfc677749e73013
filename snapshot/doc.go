// Package snapshot stores a whole tape as one self-verifying blob.
//
// A snapshot is a short frame header followed by the tape encoded as
// deterministic CBOR and compressed with one of the codecs of package
// compress:
//
//	magic "ESNP" | version (1 byte) | compression (1 byte) | payload
//
// The payload carries a BLAKE3 digest of the section content. Decode
// recomputes it and fails with errs.ErrDigestMismatch when the sections were
// altered. Equal tapes always encode to identical bytes, so snapshots can be
// compared or deduplicated by content.
package snapshot
