package tape

import (
	"fmt"
	"os"

	"github.com/arloliu/endf/archive"
	"github.com/arloliu/endf/compress"
	"github.com/arloliu/endf/format"
)

// ReadFile parses the tape stored at path. Files ending in .zst, .s2 or .lz4
// are decompressed first; other files go through FromBytes.
func ReadFile(path string, opts ...Option) (Tape, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Tape{}, err
	}

	ct := format.CompressionFromPath(path)
	if ct == format.CompressionNone {
		return FromBytes(data, opts...)
	}

	codec, err := compress.GetCodec(ct)
	if err != nil {
		return Tape{}, err
	}
	text, err := codec.Decompress(data)
	if err != nil {
		return Tape{}, fmt.Errorf("%s: %w", path, err)
	}

	return ParseBytes(text, opts...)
}

// FromBytes parses a tape from a blob that may be plain text, a zstd or LZ4
// frame, or a zip archive holding the tape.
func FromBytes(data []byte, opts ...Option) (Tape, error) {
	if archive.IsZip(data) {
		m, err := archive.FirstTape(data)
		if err != nil {
			return Tape{}, err
		}

		return ParseString(m.Text, opts...)
	}

	if ct := compress.Detect(data); ct != format.CompressionNone {
		codec, err := compress.GetCodec(ct)
		if err != nil {
			return Tape{}, err
		}
		text, err := codec.Decompress(data)
		if err != nil {
			return Tape{}, err
		}

		return ParseBytes(text, opts...)
	}

	return ParseBytes(data, opts...)
}

// WriteFile serializes the tape to path, compressed according to the file
// extension.
func (t Tape) WriteFile(path string, opts ...Option) error {
	data, err := t.Bytes(opts...)
	if err != nil {
		return err
	}

	codec, err := compress.GetCodec(format.CompressionFromPath(path))
	if err != nil {
		return err
	}
	out, err := codec.Compress(data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	return os.WriteFile(path, out, 0o644)
}
