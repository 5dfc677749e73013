package tape

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/arloliu/endf/errs"
)

// Key identifies a section by its material, file and reaction numbers.
type Key struct {
	MAT int
	MF  int
	MT  int
}

// NewKey returns the key (mat, mf, mt).
func NewKey(mat, mf, mt int) Key {
	return Key{MAT: mat, MF: mf, MT: mt}
}

// String formats the key as MAT125/MF3/MT102.
func (k Key) String() string {
	return fmt.Sprintf("MAT%d/MF%d/MT%d", k.MAT, k.MF, k.MT)
}

// Valid reports whether all three numbers are positive. Only valid keys are
// stored in a Tape.
func (k Key) Valid() bool {
	return k.MAT > 0 && k.MF > 0 && k.MT > 0
}

// Compare orders keys by MAT, then MF, then MT.
func (k Key) Compare(o Key) int {
	if c := cmp.Compare(k.MAT, o.MAT); c != 0 {
		return c
	}
	if c := cmp.Compare(k.MF, o.MF); c != 0 {
		return c
	}

	return cmp.Compare(k.MT, o.MT)
}

func (k Key) validate() error {
	if !k.Valid() {
		return fmt.Errorf("%w: %s", errs.ErrInvalidKey, k)
	}

	return nil
}

// ParseKey parses "125/3/102", "125,3,102" or "MAT125/MF3/MT102".
func ParseKey(s string) (Key, error) {
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == '/' || r == ',' || r == ':' })
	if len(parts) != 3 {
		return Key{}, fmt.Errorf("%w: %q", errs.ErrInvalidKey, s)
	}

	var nums [3]int
	for i, prefix := range []string{"MAT", "MF", "MT"} {
		p := strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(parts[i])), prefix)
		n, err := strconv.Atoi(p)
		if err != nil {
			return Key{}, fmt.Errorf("%w: %q", errs.ErrInvalidKey, s)
		}
		nums[i] = n
	}

	k := NewKey(nums[0], nums[1], nums[2])
	if err := k.validate(); err != nil {
		return Key{}, err
	}

	return k, nil
}

// Entry is a section key with its text.
type Entry struct {
	Key  Key
	Text string
}

// Filter selects sections by allowed MAT, MF and MT numbers. A nil or empty
// set allows every value.
type Filter struct {
	MAT []int
	MF  []int
	MT  []int
}

// Match reports whether k passes the filter.
func (f Filter) Match(k Key) bool {
	return allowed(f.MAT, k.MAT) && allowed(f.MF, k.MF) && allowed(f.MT, k.MT)
}

func allowed(set []int, v int) bool {
	return len(set) == 0 || slices.Contains(set, v)
}

// ByMAT returns a filter selecting the given materials.
func ByMAT(mats ...int) Filter {
	return Filter{MAT: mats}
}

// ByMF returns a filter selecting the given files.
func ByMF(mfs ...int) Filter {
	return Filter{MF: mfs}
}
