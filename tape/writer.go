package tape

import (
	"io"
	"unicode/utf8"

	"github.com/arloliu/endf/internal/pool"
	"github.com/arloliu/endf/record"
)

// titleMAT is the MAT number carried by the title record.
const titleMAT = 1

// Write serializes the tape to w.
//
// Sections are written in (MAT, MF, MT) order, each followed by a SEND
// record; each MF group ends with FEND, each material with MEND, and the
// tape with TEND. Non-ASCII characters in section text are replaced by '?'.
func (t Tape) Write(w io.Writer, opts ...Option) error {
	cfg, err := newConfig(opts)
	if err != nil {
		return err
	}

	bb := pool.GetTapeBuffer()
	defer pool.PutTapeBuffer(bb)

	t.encode(bb, cfg)
	_, err = bb.WriteTo(w)

	return err
}

// WriteTo implements io.WriterTo with the default options.
func (t Tape) WriteTo(w io.Writer) (int64, error) {
	bb := pool.GetTapeBuffer()
	defer pool.PutTapeBuffer(bb)

	cfg, _ := newConfig(nil)
	t.encode(bb, cfg)

	return bb.WriteTo(w)
}

// Bytes serializes the tape into a new byte slice.
func (t Tape) Bytes(opts ...Option) ([]byte, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	bb := pool.GetTapeBuffer()
	defer pool.PutTapeBuffer(bb)

	t.encode(bb, cfg)
	out := make([]byte, bb.Len())
	copy(out, bb.Bytes())

	return out, nil
}

// Format serializes the tape into a string.
func (t Tape) Format(opts ...Option) (string, error) {
	b, err := t.Bytes(opts...)
	if err != nil {
		return "", err
	}

	return string(b), nil
}

// String serializes the tape with the default options.
func (t Tape) String() string {
	s, _ := t.Format()
	return s
}

func (t Tape) encode(bb *pool.ByteBuffer, cfg *config) {
	if !cfg.skipTitle {
		title := t.title
		if cfg.titleSet {
			title = cfg.title
		}
		bb.WriteLine(record.FormatLine(asciiSafe(title), titleMAT, 0, 0, 0))
	}

	keys := t.Keys()
	for i, k := range keys {
		text := asciiSafe(t.sections[k])
		if cfg.renumber {
			text = record.Renumber(text)
		}
		bb.WriteLine(text)
		bb.WriteLine(record.SendLine(k.MAT, k.MF, cfg.zeroControl))

		last := i == len(keys)-1
		if last || keys[i+1].MAT != k.MAT || keys[i+1].MF != k.MF {
			bb.WriteLine(record.FendLine(k.MAT, cfg.zeroControl))
		}
		if last || keys[i+1].MAT != k.MAT {
			bb.WriteLine(record.MendLine(cfg.zeroControl))
		}
	}

	bb.WriteLine(record.TendLine(cfg.zeroControl))
}

// asciiSafe replaces every non-ASCII character, and every byte of an invalid
// UTF-8 sequence, with '?'.
func asciiSafe(s string) string {
	ascii := true
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			ascii = false
			break
		}
	}
	if ascii {
		return s
	}

	out := make([]byte, 0, len(s))
	for _, r := range s {
		if r >= utf8.RuneSelf {
			out = append(out, '?')
			continue
		}
		out = append(out, byte(r))
	}

	return string(out)
}
