package tape

import (
	"fmt"
	"strings"

	"github.com/arloliu/endf/errs"
	"github.com/arloliu/endf/format"
	"github.com/arloliu/endf/record"
	"github.com/arloliu/endf/section"
)

// Kind classifies a single-material tape as ENDF-6, PENDF, GENDF or ERRORR
// from the NLIB and LRP fields of its MF1/MT451 header.
//
// Returns errs.ErrAmbiguousKind unless the tape holds exactly one material,
// and errs.ErrSectionNotFound when the header is missing.
func (t Tape) Kind() (format.Kind, error) {
	mats := t.MAT()
	if len(mats) != 1 {
		return format.KindUnknown, fmt.Errorf("%w: tape holds %d materials %v", errs.ErrAmbiguousKind, len(mats), mats)
	}

	return t.KindOf(mats[0])
}

// KindOf classifies material mat of a tape that may hold several materials.
func (t Tape) KindOf(mat int) (format.Kind, error) {
	text, err := t.Section(mat, 1, section.MTInfo)
	if err != nil {
		return format.KindUnknown, err
	}

	first, _, _ := strings.Cut(text, "\n")
	data := record.DataPart(first)

	lrp, err := record.ParseInt(record.L1.Slice(data))
	if err != nil {
		return format.KindUnknown, fmt.Errorf("%w: LRP of MAT%d header: %w", errs.ErrMalformedRecord, mat, err)
	}
	nlib, err := record.ParseInt(record.N1.Slice(data))
	if err != nil {
		return format.KindUnknown, fmt.Errorf("%w: NLIB of MAT%d header: %w", errs.ErrMalformedRecord, mat, err)
	}

	return format.ClassifyKind(nlib, lrp), nil
}

// SubLibrary returns NSUB of the first material's header: 10 for incident
// neutron data, 11 for neutron-induced fission yields, 4 for decay data.
func (t Tape) SubLibrary() (int, error) {
	mats := t.MAT()
	if len(mats) == 0 {
		return 0, fmt.Errorf("%w: empty tape has no header", errs.ErrSectionNotFound)
	}

	text, err := t.Section(mats[0], 1, section.MTInfo)
	if err != nil {
		return 0, err
	}

	info, err := section.ReadInfo(text)
	if err != nil {
		return 0, err
	}

	return info.NSUB, nil
}

// registryFor returns the codecs that apply to material mat. Materials
// without a readable header use the ENDF-6 layouts.
func (t Tape) registryFor(mat int) section.Registry {
	kind, err := t.KindOf(mat)
	if err != nil {
		return section.ForKind(format.KindEndf6)
	}

	return section.ForKind(kind)
}
