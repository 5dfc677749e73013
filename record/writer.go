package record

import (
	"fmt"
	"strings"

	"github.com/arloliu/endf/errs"
	"github.com/arloliu/endf/internal/pool"
)

// Writer builds the text of one section record by record.
//
// Lines are numbered 1..n in the NS column. The first error encountered is
// kept and returned by Text; later writes are ignored once an error is set.
type Writer struct {
	mat   int
	mf    int
	mt    int
	lines []string
	err   error
}

// NewWriter creates a Writer for section (mat, mf, mt).
func NewWriter(mat, mf, mt int) *Writer {
	return &Writer{mat: mat, mf: mf, mt: mt}
}

// Len returns the number of lines written so far.
func (w *Writer) Len() int {
	return len(w.lines)
}

// Err returns the first error encountered, if any.
func (w *Writer) Err() error {
	return w.err
}

// Text returns the section text, lines joined with "\n" and no trailing newline.
func (w *Writer) Text() (string, error) {
	if w.err != nil {
		return "", w.err
	}

	return w.String(), nil
}

// String returns the section text written so far, ignoring any error.
func (w *Writer) String() string {
	bb := pool.GetLineBuffer()
	defer pool.PutLineBuffer(bb)

	bb.Grow(len(w.lines) * (LineWidth + 1))
	for i, data := range w.lines {
		if i > 0 {
			_ = bb.WriteByte('\n')
		}
		_, _ = bb.WriteString(FormatLine(data, w.mat, w.mf, w.mt, i+1))
	}

	return bb.String()
}

func (w *Writer) fail(err error) {
	if w.err == nil {
		w.err = err
	}
}

func (w *Writer) checkInts(vals ...int) bool {
	for _, v := range vals {
		if err := CheckInt(v); err != nil {
			w.fail(fmt.Errorf("line %d: %w", len(w.lines)+1, err))
			return false
		}
	}

	return true
}

// WriteText writes a TEXT record. Text longer than 66 columns is cut.
func (w *Writer) WriteText(text string) {
	if w.err != nil {
		return
	}
	w.lines = append(w.lines, DataPart(text))
}

// WriteCont writes a CONT or HEAD record.
func (w *Writer) WriteCont(c Cont) {
	if w.err != nil || !w.checkInts(c.L1, c.L2, c.N1, c.N2) {
		return
	}
	w.lines = append(w.lines, formatCont(c))
}

func formatCont(c Cont) string {
	return FormatFloat(c.C1) + FormatFloat(c.C2) +
		FormatInt(c.L1) + FormatInt(c.L2) + FormatInt(c.N1) + FormatInt(c.N2)
}

// WriteList writes a LIST record; N1 is taken from len(l.B).
func (w *Writer) WriteList(l List) {
	w.WriteCont(Cont{C1: l.C1, C2: l.C2, L1: l.L1, L2: l.L2, N1: len(l.B), N2: l.N2})
	w.writeFloats(l.B)
}

// WriteTab1 writes a TAB1 record; NR and NP are taken from the slices.
func (w *Writer) WriteTab1(t Tab1) {
	if w.err != nil {
		return
	}
	if len(t.X) != len(t.Y) {
		w.fail(fmt.Errorf("%w: TAB1 has %d x values and %d y values", errs.ErrInvalidField, len(t.X), len(t.Y)))
		return
	}
	if !w.validInterpolation(t.Interp) {
		return
	}

	w.WriteCont(Cont{C1: t.C1, C2: t.C2, L1: t.L1, L2: t.L2, N1: t.Interp.NR(), N2: len(t.X)})
	w.writeInterpolation(t.Interp)

	pairs := make([]float64, 0, 2*len(t.X))
	for i := range t.X {
		pairs = append(pairs, t.X[i], t.Y[i])
	}
	w.writeFloats(pairs)
}

// WriteTab2 writes a TAB2 record; NR is taken from the interpolation table.
func (w *Writer) WriteTab2(t Tab2) {
	if w.err != nil || !w.validInterpolation(t.Interp) {
		return
	}

	w.WriteCont(Cont{C1: t.C1, C2: t.C2, L1: t.L1, L2: t.L2, N1: t.Interp.NR(), N2: t.NZ})
	w.writeInterpolation(t.Interp)
}

func (w *Writer) validInterpolation(in Interpolation) bool {
	if len(in.NBT) != len(in.INT) {
		w.fail(fmt.Errorf("%w: %d NBT values and %d INT values", errs.ErrInvalidField, len(in.NBT), len(in.INT)))
		return false
	}

	return true
}

func (w *Writer) writeInterpolation(in Interpolation) {
	ints := make([]int, 0, 2*in.NR())
	for i := range in.NBT {
		ints = append(ints, in.NBT[i], in.INT[i])
	}
	w.writeInts(ints)
}

func (w *Writer) writeFloats(vals []float64) {
	if w.err != nil {
		return
	}

	var sb strings.Builder
	for i, v := range vals {
		sb.WriteString(FormatFloat(v))
		if (i+1)%NumFields == 0 {
			w.lines = append(w.lines, sb.String())
			sb.Reset()
		}
	}
	if sb.Len() > 0 {
		w.lines = append(w.lines, DataPart(sb.String()))
	}
}

func (w *Writer) writeInts(vals []int) {
	if w.err != nil || !w.checkInts(vals...) {
		return
	}

	var sb strings.Builder
	for i, v := range vals {
		sb.WriteString(FormatInt(v))
		if (i+1)%NumFields == 0 {
			w.lines = append(w.lines, sb.String())
			sb.Reset()
		}
	}
	if sb.Len() > 0 {
		w.lines = append(w.lines, DataPart(sb.String()))
	}
}
