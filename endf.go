// Package endf reads, edits and writes ENDF-6 nuclear data tapes.
//
// A tape is stored as an immutable mapping from (MAT, MF, MT) section keys to
// the verbatim text of each section. Parsing a tape and writing it back
// reproduces the original sections byte for byte; only the control records
// (SEND, FEND, MEND, TEND) are regenerated.
//
// # Basic Usage
//
// Reading a tape and listing its content:
//
//	import "github.com/arloliu/endf"
//
//	t, err := endf.ReadFile("n-001_H_001.endf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for k := range t.All() {
//	    fmt.Println(k)
//	}
//
// Editing one field and saving a compressed copy:
//
//	t, err = t.ChangeValue(endf.NewKey(125, 3, 1), 2, record.C2, 0)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = t.WriteFile("n-001_H_001.endf.zst")
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the tape and
// snapshot packages. For fine-grained control use them directly:
//
//   - record: the 80-column line and field codec
//   - section: structured codecs per MF family
//   - tape: the section store, parser and serializer
//   - snapshot: self-verifying binary snapshots of a tape
//   - sectiondb: a persistent library of tapes on disk
//   - njoy: the NJOY processing pipeline
package endf

import (
	"io"

	"github.com/arloliu/endf/format"
	"github.com/arloliu/endf/snapshot"
	"github.com/arloliu/endf/tape"
)

// Tape is an immutable ENDF-6 section store. See tape.Tape.
type Tape = tape.Tape

// Key identifies a section by MAT, MF and MT.
type Key = tape.Key

// Entry pairs a key with the text of its section.
type Entry = tape.Entry

// Filter selects sections by MAT, MF and MT. Empty lists match everything.
type Filter = tape.Filter

// NewKey returns the section key (mat, mf, mt).
func NewKey(mat, mf, mt int) Key {
	return tape.NewKey(mat, mf, mt)
}

// ParseKey parses a key written as "125/3/1" or "MAT125/MF3/MT1".
func ParseKey(s string) (Key, error) {
	return tape.ParseKey(s)
}

// New builds a tape from section entries.
//
// Returns an error if a key is not positive or two entries share a key.
func New(entries ...Entry) (Tape, error) {
	return tape.New(entries...)
}

// Parse reads a whole tape from r.
//
// Parameters:
//   - r: the tape text with LF or CRLF line endings
//   - opts: parse options such as tape.WithDuplicatePolicy or tape.WithLogger
//
// Returns an error wrapping errs.ErrMalformedRecord with the offending line
// number when a line cannot be decoded.
func Parse(r io.Reader, opts ...tape.Option) (Tape, error) {
	return tape.Parse(r, opts...)
}

// ParseString parses a tape held in memory.
//
// Example:
//
//	t, err := endf.ParseString(text)
//	if err != nil {
//	    return err
//	}
//	kind, err := t.Kind()
func ParseString(text string, opts ...tape.Option) (Tape, error) {
	return tape.ParseString(text, opts...)
}

// FromBytes parses a tape that may be compressed or packed in a zip archive.
// The format is detected from the content.
func FromBytes(data []byte, opts ...tape.Option) (Tape, error) {
	return tape.FromBytes(data, opts...)
}

// ReadFile loads a tape from disk, decompressing .zst, .s2 and .lz4 files and
// extracting the first tape of a .zip archive.
func ReadFile(path string, opts ...tape.Option) (Tape, error) {
	return tape.ReadFile(path, opts...)
}

// Snapshot encodes t as a self-verifying binary snapshot.
//
// The payload is compressed with zstd. Use snapshot.Encode with
// snapshot.WithCompression to pick another codec.
func Snapshot(t Tape) ([]byte, error) {
	return snapshot.Encode(t, snapshot.WithCompression(format.CompressionZstd))
}

// Restore decodes a snapshot produced by Snapshot or snapshot.Encode.
//
// Returns an error wrapping errs.ErrDigestMismatch when the sections do not
// match the digest recorded at encode time.
func Restore(data []byte) (Tape, error) {
	return snapshot.Decode(data)
}
