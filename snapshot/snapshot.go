package snapshot

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
	"github.com/zeebo/blake3"

	"github.com/arloliu/endf/compress"
	"github.com/arloliu/endf/errs"
	"github.com/arloliu/endf/format"
	"github.com/arloliu/endf/internal/options"
	"github.com/arloliu/endf/tape"
)

const (
	// Version is the frame version written by Encode.
	Version = 1

	magic      = "ESNP"
	headerSize = len(magic) + 2
)

// Digest is the 32-byte BLAKE3 digest of a tape's sections.
type Digest [32]byte

// String returns the digest in hex.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// digestKey separates snapshot digests from any other BLAKE3 use of the
// same bytes.
var digestKey = [32]byte{
	'e', 'n', 'd', 'f', '.', 's', 'n', 'a', 'p', 's', 'h', 'o', 't', '.',
	's', 'e', 'c', 't', 'i', 'o', 'n', 's',
}

// Sum computes the digest of t's sections in key order. The title is not
// covered.
func Sum(t tape.Tape) Digest {
	h, err := blake3.NewKeyed(digestKey[:])
	if err != nil {
		panic("snapshot: BLAKE3 keyed hash initialization failed: " + err.Error())
	}

	var hdr [20]byte
	for k, text := range t.All() {
		binary.BigEndian.PutUint32(hdr[0:], uint32(k.MAT))
		binary.BigEndian.PutUint32(hdr[4:], uint32(k.MF))
		binary.BigEndian.PutUint32(hdr[8:], uint32(k.MT))
		binary.BigEndian.PutUint64(hdr[12:], uint64(len(text)))
		_, _ = h.Write(hdr[:])
		_, _ = io.WriteString(h, text)
	}

	var d Digest
	copy(d[:], h.Sum(nil))

	return d
}

// document is the CBOR payload.
type document struct {
	Title    string    `cbor:"1,keyasint"`
	Sections []section `cbor:"2,keyasint"`
	Digest   []byte    `cbor:"3,keyasint"`
}

type section struct {
	_    struct{} `cbor:",toarray"`
	MAT  int
	MF   int
	MT   int
	Text string
}

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("snapshot: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		MaxArrayElements: 1 << 24,
	}.DecMode()
	if err != nil {
		panic("snapshot: CBOR decoder initialization failed: " + err.Error())
	}
}

type config struct {
	compression format.CompressionType
}

// Option configures Encode.
type Option = options.Option[*config]

// WithCompression selects the payload codec. The default is zstd.
func WithCompression(ct format.CompressionType) Option {
	return options.New(func(c *config) error {
		if _, err := compress.GetCodec(ct); err != nil {
			return err
		}
		c.compression = ct

		return nil
	})
}

// Encode builds a snapshot of t.
func Encode(t tape.Tape, opts ...Option) ([]byte, error) {
	cfg, err := options.Build(config{compression: format.CompressionZstd}, opts...)
	if err != nil {
		return nil, err
	}

	doc := document{Title: t.Title(), Sections: make([]section, 0, t.Len())}
	for k, text := range t.All() {
		doc.Sections = append(doc.Sections, section{MAT: k.MAT, MF: k.MF, MT: k.MT, Text: text})
	}
	sum := Sum(t)
	doc.Digest = sum[:]

	payload, err := encMode.Marshal(&doc)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}

	codec, err := compress.GetCodec(cfg.compression)
	if err != nil {
		return nil, err
	}
	body, err := codec.Compress(payload)
	if err != nil {
		return nil, fmt.Errorf("compress snapshot: %w", err)
	}

	out := make([]byte, 0, headerSize+len(body))
	out = append(out, magic...)
	out = append(out, Version, byte(cfg.compression))
	out = append(out, body...)

	return out, nil
}

// Info describes a snapshot without rebuilding the tape.
type Info struct {
	Version     int
	Compression format.CompressionType
	Title       string
	Sections    int
	Digest      Digest
}

// Inspect decodes the frame and payload of a snapshot. The digest is
// returned as stored, not verified.
func Inspect(data []byte) (Info, error) {
	ct, doc, err := decode(data)
	if err != nil {
		return Info{}, err
	}

	info := Info{Version: int(data[len(magic)]), Compression: ct, Title: doc.Title, Sections: len(doc.Sections)}
	copy(info.Digest[:], doc.Digest)

	return info, nil
}

// Decode rebuilds the tape held by a snapshot.
//
// Returns errs.ErrInvalidSnapshot when the frame or payload cannot be
// decoded and errs.ErrDigestMismatch when the sections do not match the
// stored digest.
func Decode(data []byte) (tape.Tape, error) {
	_, doc, err := decode(data)
	if err != nil {
		return tape.Tape{}, err
	}

	entries := make([]tape.Entry, len(doc.Sections))
	for i, s := range doc.Sections {
		entries[i] = tape.Entry{Key: tape.NewKey(s.MAT, s.MF, s.MT), Text: s.Text}
	}

	t, err := tape.New(entries...)
	if err != nil {
		return tape.Tape{}, fmt.Errorf("%w: %w", errs.ErrInvalidSnapshot, err)
	}
	t = t.SetTitle(doc.Title)

	sum := Sum(t)
	if !bytes.Equal(sum[:], doc.Digest) {
		return tape.Tape{}, fmt.Errorf("%w: stored %x, computed %s", errs.ErrDigestMismatch, doc.Digest, sum)
	}

	return t, nil
}

func decode(data []byte) (format.CompressionType, *document, error) {
	if len(data) < headerSize || !bytes.HasPrefix(data, []byte(magic)) {
		return 0, nil, fmt.Errorf("%w: missing frame header", errs.ErrInvalidSnapshot)
	}
	if v := data[len(magic)]; v != Version {
		return 0, nil, fmt.Errorf("%w: unsupported version %d", errs.ErrInvalidSnapshot, v)
	}

	ct := format.CompressionType(data[len(magic)+1])
	codec, err := compress.GetCodec(ct)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %w", errs.ErrInvalidSnapshot, err)
	}

	payload, err := codec.Decompress(data[headerSize:])
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %w", errs.ErrInvalidSnapshot, err)
	}

	var doc document
	if err := decMode.Unmarshal(payload, &doc); err != nil {
		return 0, nil, fmt.Errorf("%w: %w", errs.ErrInvalidSnapshot, err)
	}

	return ct, &doc, nil
}
