// Package errs defines the sentinel errors returned by the endf packages.
//
// Errors are wrapped with context by the packages that return them, so callers
// should match with errors.Is rather than comparing directly.
package errs

import "errors"

// Record codec errors.
var (
	// ErrInvalidField is returned when an 11-column field cannot be decoded.
	ErrInvalidField = errors.New("invalid ENDF-6 field")
	// ErrMalformedRecord is returned when a line's MAT/MF/MT columns are not integers.
	ErrMalformedRecord = errors.New("malformed ENDF-6 record")
	// ErrUnexpectedEnd is returned when a record walker needs more lines than the section has.
	ErrUnexpectedEnd = errors.New("unexpected end of section")
	// ErrFieldOverflow is returned when a value does not fit in 11 columns.
	ErrFieldOverflow = errors.New("value does not fit in an 11-column field")
)

// Section store errors.
var (
	// ErrSectionNotFound is returned when the requested (MAT, MF, MT) is not in the tape.
	ErrSectionNotFound = errors.New("section not found")
	// ErrAmbiguousKind is returned when the kind of a multi-material tape is requested.
	ErrAmbiguousKind = errors.New("kind is ambiguous for more than one MAT")
	// ErrDuplicateSection is returned when a tape repeats a section non-adjacently
	// and the reject policy is active.
	ErrDuplicateSection = errors.New("duplicate section")
	// ErrNotPendf is returned when a PENDF merge is attempted with a tape of another kind.
	ErrNotPendf = errors.New("tape is not a PENDF")
	// ErrInvalidKey is returned when a key has a non-positive MAT, MF or MT.
	ErrInvalidKey = errors.New("invalid section key")
)

// Section codec errors.
var (
	// ErrUnsupportedSection is returned when no reader is registered for an MF/MT.
	ErrUnsupportedSection = errors.New("unsupported section")
	// ErrSectionMismatch is returned when a writer gets a section of the wrong type.
	ErrSectionMismatch = errors.New("section type does not match codec")
)

// Boundary errors.
var (
	// ErrExternalTool is returned when the external processing tool fails or
	// does not produce the expected output.
	ErrExternalTool = errors.New("external processing tool failed")
	// ErrDigestMismatch is returned when a snapshot's content digest does not verify.
	ErrDigestMismatch = errors.New("snapshot digest mismatch")
	// ErrInvalidSnapshot is returned when snapshot bytes cannot be decoded.
	ErrInvalidSnapshot = errors.New("invalid snapshot")
	// ErrNoTapeInArchive is returned when an archive holds no matching entry.
	ErrNoTapeInArchive = errors.New("no tape found in archive")
	// ErrInvalidConfig is returned when a processing configuration fails validation.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrLibraryNotFound is returned when a section library holds no library of that name.
	ErrLibraryNotFound = errors.New("library not found")
	// ErrInvalidLibrary is returned for an empty library name or one containing a NUL byte.
	ErrInvalidLibrary = errors.New("invalid library name")
)
