package tape

import (
	"fmt"

	"github.com/arloliu/endf/errs"
	"github.com/arloliu/endf/format"
	"github.com/arloliu/endf/section"
)

// MergePendf returns a tape where every MF3 section and every MF1/MT451
// header come from pendf. All other sections of t are kept, so the result
// is itself a PENDF.
//
// Returns errs.ErrNotPendf when pendf does not classify as a PENDF tape.
func (t Tape) MergePendf(pendf Tape) (Tape, error) {
	kind, err := pendf.Kind()
	if err != nil {
		return t, fmt.Errorf("%w: %w", errs.ErrNotPendf, err)
	}
	if kind != format.KindPendf {
		return t, fmt.Errorf("%w: tape is %s", errs.ErrNotPendf, kind)
	}

	keep := make(map[Key]string, len(t.sections))
	for k, text := range t.sections {
		if k.MF != 3 {
			keep[k] = text
		}
	}

	out := t.with(keep)
	out = out.Merge(pendf.FilterBy(ByMF(3)))
	out = out.Merge(pendf.FilterBy(Filter{MF: []int{1}, MT: []int{section.MTInfo}}))

	return out, nil
}
