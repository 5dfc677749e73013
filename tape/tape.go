package tape

import (
	"fmt"
	"iter"
	"maps"
	"slices"
	"strings"

	"github.com/arloliu/endf/errs"
	"github.com/arloliu/endf/internal/hash"
)

// Tape is an immutable ENDF-6 section store.
//
// The zero value is an empty tape. The section map is never written after a
// Tape is built; mutators copy it.
type Tape struct {
	title    string
	sections map[Key]string
}

// New builds a tape from entries, later entries overwriting earlier ones.
func New(entries ...Entry) (Tape, error) {
	return Tape{}.AddSections(entries...)
}

func (t Tape) with(sections map[Key]string) Tape {
	return Tape{title: t.title, sections: sections}
}

func (t Tape) clone(extra int) map[Key]string {
	m := make(map[Key]string, len(t.sections)+extra)
	maps.Copy(m, t.sections)

	return m
}

// normalizeText drops trailing line terminators so that the serializer can
// append its own.
func normalizeText(text string) string {
	return strings.TrimRight(text, "\r\n")
}

// Title returns the title line's text columns, trailing blanks removed.
func (t Tape) Title() string {
	return t.title
}

// SetTitle returns a copy of the tape with a new title.
func (t Tape) SetTitle(title string) Tape {
	return Tape{title: title, sections: t.sections}
}

// Len returns the number of sections.
func (t Tape) Len() int {
	return len(t.sections)
}

// IsEmpty reports whether the tape holds no sections.
func (t Tape) IsEmpty() bool {
	return len(t.sections) == 0
}

// Has reports whether the tape holds section k.
func (t Tape) Has(k Key) bool {
	_, ok := t.sections[k]
	return ok
}

// Text returns the text of section k.
//
// Returns errs.ErrSectionNotFound when k is absent.
func (t Tape) Text(k Key) (string, error) {
	text, ok := t.sections[k]
	if !ok {
		return "", fmt.Errorf("%w: %s", errs.ErrSectionNotFound, k)
	}

	return text, nil
}

// Section returns the text of section (mat, mf, mt).
func (t Tape) Section(mat, mf, mt int) (string, error) {
	return t.Text(NewKey(mat, mf, mt))
}

// Keys returns all keys in ascending (MAT, MF, MT) order.
func (t Tape) Keys() []Key {
	keys := slices.Collect(maps.Keys(t.sections))
	slices.SortFunc(keys, Key.Compare)

	return keys
}

// All iterates over the sections in key order.
func (t Tape) All() iter.Seq2[Key, string] {
	return func(yield func(Key, string) bool) {
		for _, k := range t.Keys() {
			if !yield(k, t.sections[k]) {
				return
			}
		}
	}
}

// Entries returns all sections in key order.
func (t Tape) Entries() []Entry {
	entries := make([]Entry, 0, len(t.sections))
	for k, text := range t.All() {
		entries = append(entries, Entry{Key: k, Text: text})
	}

	return entries
}

// MAT returns the distinct material numbers in ascending order.
func (t Tape) MAT() []int {
	return t.distinct(func(k Key) int { return k.MAT })
}

// MF returns the distinct file numbers in ascending order.
func (t Tape) MF() []int {
	return t.distinct(func(k Key) int { return k.MF })
}

// MT returns the distinct reaction numbers in ascending order.
func (t Tape) MT() []int {
	return t.distinct(func(k Key) int { return k.MT })
}

func (t Tape) distinct(field func(Key) int) []int {
	seen := make(map[int]struct{})
	for k := range t.sections {
		seen[field(k)] = struct{}{}
	}

	return slices.Sorted(maps.Keys(seen))
}

// AddSection returns a tape with section (mat, mf, mt) set to text,
// replacing any previous section with that key.
//
// Returns errs.ErrInvalidKey unless all three numbers are positive.
func (t Tape) AddSection(mat, mf, mt int, text string) (Tape, error) {
	return t.AddSections(Entry{Key: NewKey(mat, mf, mt), Text: text})
}

// AddSections returns a tape with all entries added in argument order, so a
// later entry wins over an earlier one with the same key. Every key is
// validated before any section is added.
func (t Tape) AddSections(entries ...Entry) (Tape, error) {
	for _, e := range entries {
		if err := e.Key.validate(); err != nil {
			return t, err
		}
	}

	m := t.clone(len(entries))
	for _, e := range entries {
		m[e.Key] = normalizeText(e.Text)
	}

	return t.with(m), nil
}

// DeleteSection returns a tape without section k.
//
// Returns errs.ErrSectionNotFound when k is absent, unless IgnoreMissing is
// given.
func (t Tape) DeleteSection(k Key, opts ...Option) (Tape, error) {
	return t.DeleteSections([]Key{k}, opts...)
}

// DeleteSections returns a tape without the given keys. All keys are checked
// before anything is removed.
func (t Tape) DeleteSections(keys []Key, opts ...Option) (Tape, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return t, err
	}

	if !cfg.ignoreMissing {
		for _, k := range keys {
			if !t.Has(k) {
				return t, fmt.Errorf("%w: %s", errs.ErrSectionNotFound, k)
			}
		}
	}

	m := t.clone(0)
	for _, k := range keys {
		delete(m, k)
	}

	return t.with(m), nil
}

// Merge returns a tape holding the sections of t and of every other tape,
// applied left to right so that later tapes win on key collisions. The
// title of t is kept.
func (t Tape) Merge(others ...Tape) Tape {
	extra := 0
	for _, o := range others {
		extra += o.Len()
	}

	m := t.clone(extra)
	for _, o := range others {
		maps.Copy(m, o.sections)
	}

	return t.with(m)
}

// FilterBy returns a tape holding only the sections matching f. An empty
// result is a valid tape.
func (t Tape) FilterBy(f Filter) Tape {
	m := make(map[Key]string)
	for k, text := range t.sections {
		if f.Match(k) {
			m[k] = text
		}
	}

	return t.with(m)
}

// Equal reports whether both tapes hold the same sections with the same
// text. Titles are not compared.
func (t Tape) Equal(o Tape) bool {
	return maps.Equal(t.sections, o.sections)
}

// Fingerprint returns the xxHash64 of section k's text.
func (t Tape) Fingerprint(k Key) (uint64, error) {
	text, err := t.Text(k)
	if err != nil {
		return 0, err
	}

	return hash.Text(text), nil
}

// Sum returns a fingerprint of the whole tape: its keys and section texts in
// key order. Tapes with equal sections have equal sums.
func (t Tape) Sum() uint64 {
	ids := make([]uint64, 0, 2*len(t.sections))
	for k, text := range t.All() {
		ids = append(ids, hash.Key(k.MAT, k.MF, k.MT), hash.Text(text))
	}

	return hash.Combine(ids...)
}
