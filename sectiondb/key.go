package sectiondb

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/arloliu/endf/errs"
	"github.com/arloliu/endf/tape"
)

// Key layout. Library names are NUL-terminated so that one name is never a
// key prefix of another.
//
//	'm' name            library metadata (CBOR)
//	's' name 0x00 MAT MF MT   section text, numbers as big-endian uint32
const (
	metaPrefix    byte = 'm'
	sectionPrefix byte = 's'

	numberSize = 4
)

func validateName(lib string) error {
	if lib == "" || strings.IndexByte(lib, 0) >= 0 {
		return fmt.Errorf("%w: %q", errs.ErrInvalidLibrary, lib)
	}

	return nil
}

func metaKey(lib string) []byte {
	return append([]byte{metaPrefix}, lib...)
}

// sectionBounds returns the [lower, upper) range of lib's section keys.
func sectionBounds(lib string) (lower, upper []byte) {
	lower = make([]byte, 0, len(lib)+2)
	lower = append(lower, sectionPrefix)
	lower = append(lower, lib...)
	upper = append(append([]byte(nil), lower...), 1)
	lower = append(lower, 0)

	return lower, upper
}

func sectionKey(lib string, k tape.Key) []byte {
	key, _ := sectionBounds(lib)
	key = binary.BigEndian.AppendUint32(key, uint32(k.MAT))
	key = binary.BigEndian.AppendUint32(key, uint32(k.MF))
	key = binary.BigEndian.AppendUint32(key, uint32(k.MT))

	return key
}

// decodeSectionKey extracts the section key from a full database key with
// the given library prefix length.
func decodeSectionKey(key []byte, prefixLen int) (tape.Key, error) {
	rest := key[prefixLen:]
	if len(rest) != 3*numberSize {
		return tape.Key{}, fmt.Errorf("corrupt section key %x", key)
	}

	return tape.NewKey(
		int(binary.BigEndian.Uint32(rest[0:])),
		int(binary.BigEndian.Uint32(rest[numberSize:])),
		int(binary.BigEndian.Uint32(rest[2*numberSize:])),
	), nil
}
