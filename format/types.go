// Package format holds the small enumerations shared across the endf packages:
// the tape kinds recognized from the MF1/MT451 header and the compression
// codecs used for tape files and snapshots.
package format

import (
	"path/filepath"
	"strings"
)

type (
	Kind            uint8
	CompressionType uint8
)

const (
	KindUnknown Kind = 0x0 // KindUnknown is a tape whose header flags match no known kind.
	KindEndf6   Kind = 0x1 // KindEndf6 is an evaluated ENDF-6 tape.
	KindPendf   Kind = 0x2 // KindPendf is a pointwise (reconstructed) ENDF tape.
	KindGendf   Kind = 0x3 // KindGendf is a multigroup GROUPR output tape.
	KindErrorr  Kind = 0x4 // KindErrorr is a multigroup ERRORR covariance tape.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

// NLIB values written by NJOY into the MF1/MT451 header of processed tapes.
const (
	NLIBGendf        = -1
	NLIBErrorr       = -11
	NLIBErrorrLegacy = -12
)

// ClassifyKind maps the NLIB and LRP header flags to a tape kind.
//
// NLIB in {-11, -12} is ERRORR, NLIB == -1 is GENDF; otherwise LRP == 2 marks a
// PENDF and LRP in {0, 1} an evaluated ENDF-6 tape.
func ClassifyKind(nlib, lrp int) Kind {
	switch {
	case nlib == NLIBErrorr || nlib == NLIBErrorrLegacy:
		return KindErrorr
	case nlib == NLIBGendf:
		return KindGendf
	case lrp == 2:
		return KindPendf
	case lrp == 0 || lrp == 1:
		return KindEndf6
	default:
		return KindUnknown
	}
}

func (k Kind) String() string {
	switch k {
	case KindEndf6:
		return "endf6"
	case KindPendf:
		return "pendf"
	case KindGendf:
		return "gendf"
	case KindErrorr:
		return "errorr"
	default:
		return "unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// ParseCompression parses a compression name as accepted on the command line.
// Matching is case-insensitive; "" and "none" both select CompressionNone.
func ParseCompression(name string) (CompressionType, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return CompressionNone, true
	case "zstd", "zst":
		return CompressionZstd, true
	case "s2":
		return CompressionS2, true
	case "lz4":
		return CompressionLZ4, true
	default:
		return 0, false
	}
}

// CompressionFromPath picks the compression codec implied by a file extension.
// Unknown extensions (".endf", ".pendf", ".txt", ...) are uncompressed.
func CompressionFromPath(path string) CompressionType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zst", ".zstd":
		return CompressionZstd
	case ".s2":
		return CompressionS2
	case ".lz4":
		return CompressionLZ4
	default:
		return CompressionNone
	}
}
