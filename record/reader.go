package record

import (
	"fmt"
	"strings"

	"github.com/arloliu/endf/errs"
)

// Reader walks the lines of one section and decodes records in order.
type Reader struct {
	lines []string
	pos   int
}

// NewReader creates a Reader over the lines of a section's text.
func NewReader(text string) *Reader {
	var lines []string
	if text != "" {
		lines = strings.Split(strings.TrimRight(text, "\n"), "\n")
	}

	return &Reader{lines: lines}
}

// Len returns the total number of lines.
func (r *Reader) Len() int {
	return len(r.lines)
}

// Remaining returns the number of lines not consumed yet.
func (r *Reader) Remaining() int {
	return len(r.lines) - r.pos
}

// CapHint bounds a capacity taken from a record count by the number of
// fields left in the section. Negative counts give 0.
func (r *Reader) CapHint(n int) int {
	return max(0, min(n, r.Remaining()*NumFields))
}

// CheckCount validates a count of records that each take at least one of
// the remaining lines.
func (r *Reader) CheckCount(name string, n int) error {
	if n < 0 {
		return r.wrap(fmt.Errorf("%w: negative %s %d", errs.ErrInvalidField, name, n))
	}
	if n > r.Remaining() {
		return r.wrap(fmt.Errorf("%w: %w: %s=%d with %d lines left",
			errs.ErrInvalidField, errs.ErrUnexpectedEnd, name, n, r.Remaining()))
	}

	return nil
}

func (r *Reader) checkValues(n int) error {
	if left := r.Remaining() * NumFields; n > left {
		return r.wrap(fmt.Errorf("%w: %w: %d values declared, room for %d",
			errs.ErrInvalidField, errs.ErrUnexpectedEnd, n, left))
	}

	return nil
}

// Pos returns the 1-based number of the next line to be read.
func (r *Reader) Pos() int {
	return r.pos + 1
}

// Control returns the MAT, MF and MT columns of the first line.
func (r *Reader) Control() (mat, mf, mt int, err error) {
	if len(r.lines) == 0 {
		return 0, 0, 0, errs.ErrUnexpectedEnd
	}

	return ControlKey(r.lines[0])
}

func (r *Reader) next() (string, error) {
	if r.pos >= len(r.lines) {
		return "", fmt.Errorf("%w: need line %d of %d", errs.ErrUnexpectedEnd, r.pos+1, len(r.lines))
	}
	line := r.lines[r.pos]
	r.pos++

	return DataPart(strings.TrimRight(line, "\r")), nil
}

func (r *Reader) wrap(err error) error {
	return fmt.Errorf("line %d: %w", r.pos, err)
}

// ReadText reads a TEXT record and returns its 66 data columns unchanged.
func (r *Reader) ReadText() (string, error) {
	return r.next()
}

// ReadCont reads a CONT or HEAD record.
func (r *Reader) ReadCont() (Cont, error) {
	data, err := r.next()
	if err != nil {
		return Cont{}, err
	}

	c, err := parseCont(data)
	if err != nil {
		return Cont{}, r.wrap(err)
	}

	return c, nil
}

func parseCont(data string) (Cont, error) {
	var (
		c   Cont
		err error
	)
	if c.C1, err = ParseFloat(C1.Slice(data)); err != nil {
		return c, err
	}
	if c.C2, err = ParseFloat(C2.Slice(data)); err != nil {
		return c, err
	}
	if c.L1, err = ParseInt(L1.Slice(data)); err != nil {
		return c, err
	}
	if c.L2, err = ParseInt(L2.Slice(data)); err != nil {
		return c, err
	}
	if c.N1, err = ParseInt(N1.Slice(data)); err != nil {
		return c, err
	}
	if c.N2, err = ParseInt(N2.Slice(data)); err != nil {
		return c, err
	}

	return c, nil
}

// ReadList reads a LIST record with N1 items.
func (r *Reader) ReadList() (List, error) {
	head, err := r.ReadCont()
	if err != nil {
		return List{}, err
	}
	if head.N1 < 0 {
		return List{}, r.wrap(fmt.Errorf("%w: negative NPL %d", errs.ErrInvalidField, head.N1))
	}

	items, err := r.readFloats(head.N1)
	if err != nil {
		return List{}, err
	}

	return List{C1: head.C1, C2: head.C2, L1: head.L1, L2: head.L2, N2: head.N2, B: items}, nil
}

// ReadTab1 reads a TAB1 record with N1 interpolation ranges and N2 points.
func (r *Reader) ReadTab1() (Tab1, error) {
	head, err := r.ReadCont()
	if err != nil {
		return Tab1{}, err
	}
	if head.N1 < 0 || head.N2 < 0 {
		return Tab1{}, r.wrap(fmt.Errorf("%w: negative NR/NP %d/%d", errs.ErrInvalidField, head.N1, head.N2))
	}

	interp, err := r.readInterpolation(head.N1)
	if err != nil {
		return Tab1{}, err
	}

	pairs, err := r.readFloats(2 * head.N2)
	if err != nil {
		return Tab1{}, err
	}
	x := make([]float64, head.N2)
	y := make([]float64, head.N2)
	for i := range head.N2 {
		x[i] = pairs[2*i]
		y[i] = pairs[2*i+1]
	}

	return Tab1{C1: head.C1, C2: head.C2, L1: head.L1, L2: head.L2, Interp: interp, X: x, Y: y}, nil
}

// ReadTab2 reads a TAB2 record with N1 interpolation ranges over N2 records.
func (r *Reader) ReadTab2() (Tab2, error) {
	head, err := r.ReadCont()
	if err != nil {
		return Tab2{}, err
	}
	if head.N1 < 0 || head.N2 < 0 {
		return Tab2{}, r.wrap(fmt.Errorf("%w: negative NR/NZ %d/%d", errs.ErrInvalidField, head.N1, head.N2))
	}

	interp, err := r.readInterpolation(head.N1)
	if err != nil {
		return Tab2{}, err
	}

	return Tab2{C1: head.C1, C2: head.C2, L1: head.L1, L2: head.L2, NZ: head.N2, Interp: interp}, nil
}

func (r *Reader) readInterpolation(nr int) (Interpolation, error) {
	ints, err := r.readInts(2 * nr)
	if err != nil {
		return Interpolation{}, err
	}

	in := Interpolation{NBT: make([]int, nr), INT: make([]int, nr)}
	for i := range nr {
		in.NBT[i] = ints[2*i]
		in.INT[i] = ints[2*i+1]
	}

	return in, nil
}

// readFloats reads n floats laid out six per line.
func (r *Reader) readFloats(n int) ([]float64, error) {
	if err := r.checkValues(n); err != nil {
		return nil, err
	}
	out := make([]float64, 0, r.CapHint(n))
	for len(out) < n {
		data, err := r.next()
		if err != nil {
			return nil, err
		}
		for f := range NumFields {
			if len(out) == n {
				break
			}
			v, err := ParseFloat(Field(f).Slice(data))
			if err != nil {
				return nil, r.wrap(err)
			}
			out = append(out, v)
		}
	}

	return out, nil
}

// readInts reads n integers laid out six per line.
func (r *Reader) readInts(n int) ([]int, error) {
	if err := r.checkValues(n); err != nil {
		return nil, err
	}
	out := make([]int, 0, r.CapHint(n))
	for len(out) < n {
		data, err := r.next()
		if err != nil {
			return nil, err
		}
		for f := range NumFields {
			if len(out) == n {
				break
			}
			v, err := ParseInt(Field(f).Slice(data))
			if err != nil {
				return nil, r.wrap(err)
			}
			out = append(out, v)
		}
	}

	return out, nil
}
