// Package archive extracts ENDF-6 tapes from zip archives, the form in which
// most evaluated nuclear data libraries are distributed. It works on blobs
// that were already fetched; it does no network I/O.
package archive

import (
	"bytes"
	"fmt"
	"io"
	"path"
	"slices"
	"strings"

	"github.com/klauspost/compress/zip"

	"github.com/arloliu/endf/errs"
)

// maxMemberSize bounds the uncompressed size of one member.
const maxMemberSize = 1 << 30

var zipMagic = []byte("PK\x03\x04")

// tapeExtensions are member suffixes recognized as tapes when no name is
// given.
var tapeExtensions = []string{".endf", ".endf6", ".pendf", ".gendf", ".errorr", ".dat", ".txt", ".asc"}

// IsZip reports whether blob starts with a zip local file header.
func IsZip(blob []byte) bool {
	return bytes.HasPrefix(blob, zipMagic)
}

// Member is one extracted file.
type Member struct {
	Name string
	Text string
}

// ExtractText returns the text of the member called name. The name is
// matched against the full member path first and then against its base
// name.
//
// Returns errs.ErrNoTapeInArchive when no member matches.
func ExtractText(blob []byte, name string) (string, error) {
	zr, err := open(blob)
	if err != nil {
		return "", err
	}

	var match *zip.File
	for _, f := range zr.File {
		if f.Name == name {
			match = f
			break
		}
		if match == nil && path.Base(f.Name) == name {
			match = f
		}
	}
	if match == nil {
		return "", fmt.Errorf("%w: no member %q", errs.ErrNoTapeInArchive, name)
	}

	return read(match)
}

// ExtractAll returns every regular member in archive order.
func ExtractAll(blob []byte) ([]Member, error) {
	zr, err := open(blob)
	if err != nil {
		return nil, err
	}

	members := make([]Member, 0, len(zr.File))
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		text, err := read(f)
		if err != nil {
			return nil, err
		}
		members = append(members, Member{Name: f.Name, Text: text})
	}

	return members, nil
}

// FirstTape returns the first member that looks like a tape: a known tape
// extension, or the only member of the archive.
//
// Returns errs.ErrNoTapeInArchive when nothing qualifies.
func FirstTape(blob []byte) (Member, error) {
	zr, err := open(blob)
	if err != nil {
		return Member{}, err
	}

	var files []*zip.File
	for _, f := range zr.File {
		if !f.FileInfo().IsDir() {
			files = append(files, f)
		}
	}

	for _, f := range files {
		ext := strings.ToLower(path.Ext(f.Name))
		if slices.Contains(tapeExtensions, ext) || len(files) == 1 {
			text, err := read(f)
			if err != nil {
				return Member{}, err
			}

			return Member{Name: f.Name, Text: text}, nil
		}
	}

	return Member{}, fmt.Errorf("%w: %d members, none with a tape extension", errs.ErrNoTapeInArchive, len(files))
}

// Create builds a zip archive holding the given members, deflate compressed.
func Create(members ...Member) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, m := range members {
		w, err := zw.Create(m.Name)
		if err != nil {
			return nil, fmt.Errorf("create member %s: %w", m.Name, err)
		}
		if _, err := io.WriteString(w, m.Text); err != nil {
			return nil, fmt.Errorf("write member %s: %w", m.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close archive: %w", err)
	}

	return buf.Bytes(), nil
}

func open(blob []byte) (*zip.Reader, error) {
	zr, err := zip.NewReader(bytes.NewReader(blob), int64(len(blob)))
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}

	return zr, nil
}

func read(f *zip.File) (string, error) {
	if f.UncompressedSize64 > maxMemberSize {
		return "", fmt.Errorf("member %s: %d bytes exceeds limit", f.Name, f.UncompressedSize64)
	}

	rc, err := f.Open()
	if err != nil {
		return "", fmt.Errorf("open member %s: %w", f.Name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, maxMemberSize))
	if err != nil {
		return "", fmt.Errorf("read member %s: %w", f.Name, err)
	}

	return string(data), nil
}
