package section

import (
	"fmt"

	"github.com/arloliu/endf/errs"
	"github.com/arloliu/endf/format"
	"github.com/arloliu/endf/record"
)

// GroupStructure is the MF1/MT451 section of an ERRORR tape: the energy
// group boundaries used by every other section of the material.
type GroupStructure struct {
	MAT int

	ZA   float64
	AWR  float64
	LRP  int
	NLIB int

	Temperature float64
	// Boundaries holds NG+1 ascending group boundaries (eV).
	Boundaries []float64
}

var _ Section = (*GroupStructure)(nil)

// Key implements Section.
func (s *GroupStructure) Key() (int, int, int) {
	return s.MAT, 1, MTInfo
}

// Groups returns the number of energy groups.
func (s *GroupStructure) Groups() int {
	return max(len(s.Boundaries)-1, 0)
}

// Kind classifies the tape from the header flags.
func (s *GroupStructure) Kind() format.Kind {
	return format.ClassifyKind(s.NLIB, s.LRP)
}

// ReadGroupStructure decodes an ERRORR MF1/MT451 section.
func ReadGroupStructure(text string) (*GroupStructure, error) {
	r := record.NewReader(text)
	mat, _, _, err := r.Control()
	if err != nil {
		return nil, wrapRead(1, text, err)
	}

	head, err := r.ReadCont()
	if err != nil {
		return nil, wrapRead(1, text, err)
	}

	l, err := r.ReadList()
	if err != nil {
		return nil, wrapRead(1, text, err)
	}

	return &GroupStructure{
		MAT:         mat,
		ZA:          head.C1,
		AWR:         head.C2,
		LRP:         head.L1,
		NLIB:        head.N1,
		Temperature: l.C1,
		Boundaries:  l.B,
	}, nil
}

// WriteGroupStructure encodes an ERRORR MF1/MT451 section.
func WriteGroupStructure(s *GroupStructure) (string, error) {
	w := record.NewWriter(s.MAT, 1, MTInfo)
	w.WriteCont(record.Cont{C1: s.ZA, C2: s.AWR, L1: s.LRP, N1: s.NLIB})
	w.WriteList(record.List{C1: s.Temperature, L1: s.Groups(), B: s.Boundaries})

	return w.Text()
}

// GroupCrossSection is an MF3 section of an ERRORR tape: one value per
// energy group.
type GroupCrossSection struct {
	MAT int
	MT  int

	ZA  float64
	AWR float64

	XS []float64
}

var _ Section = (*GroupCrossSection)(nil)

// Key implements Section.
func (s *GroupCrossSection) Key() (int, int, int) {
	return s.MAT, 3, s.MT
}

// ReadGroupCrossSection decodes an ERRORR MF3 section.
func ReadGroupCrossSection(text string) (*GroupCrossSection, error) {
	r := record.NewReader(text)
	mat, _, mt, err := r.Control()
	if err != nil {
		return nil, wrapRead(3, text, err)
	}

	head, err := r.ReadCont()
	if err != nil {
		return nil, wrapRead(3, text, err)
	}

	l, err := r.ReadList()
	if err != nil {
		return nil, wrapRead(3, text, err)
	}

	return &GroupCrossSection{MAT: mat, MT: mt, ZA: head.C1, AWR: head.C2, XS: l.B}, nil
}

// WriteGroupCrossSection encodes an ERRORR MF3 section.
func WriteGroupCrossSection(s *GroupCrossSection) (string, error) {
	w := record.NewWriter(s.MAT, 3, s.MT)
	w.WriteCont(record.Cont{C1: s.ZA, C2: s.AWR})
	w.WriteList(record.List{B: s.XS})

	return w.Text()
}

// GroupRow is one row of a group covariance matrix. Values start at column
// First (1-based) and the columns before it are zero.
type GroupRow struct {
	Group  int
	First  int
	Values []float64
}

// GroupCovarianceBlock holds the covariance matrix between the section's
// reaction and reaction (MAT1, MT1).
type GroupCovarianceBlock struct {
	MAT1   int
	MT1    int
	Groups int
	Rows   []GroupRow
}

// Dense expands the block into a Groups x Groups matrix in row-major order.
func (b GroupCovarianceBlock) Dense() []float64 {
	m := make([]float64, b.Groups*b.Groups)
	for _, row := range b.Rows {
		if row.Group < 1 || row.Group > b.Groups {
			continue
		}
		base := (row.Group - 1) * b.Groups
		for j, v := range row.Values {
			col := row.First - 1 + j
			if col >= 0 && col < b.Groups {
				m[base+col] = v
			}
		}
	}

	return m
}

// GroupCovariance is an MF31, MF33 or MF35 section of an ERRORR tape.
type GroupCovariance struct {
	MAT int
	MF  int
	MT  int

	ZA  float64
	AWR float64

	Blocks []GroupCovarianceBlock
}

var _ Section = (*GroupCovariance)(nil)

// Key implements Section.
func (s *GroupCovariance) Key() (int, int, int) {
	return s.MAT, s.MF, s.MT
}

// ReadGroupCovariance decodes an ERRORR covariance section. Rows of a block
// are read until the row of the last group.
func ReadGroupCovariance(text string) (*GroupCovariance, error) {
	s, err := readGroupCovariance(text)
	if err != nil {
		return nil, wrapRead(33, text, err)
	}

	return s, nil
}

func readGroupCovariance(text string) (*GroupCovariance, error) {
	r := record.NewReader(text)
	mat, mf, mt, err := r.Control()
	if err != nil {
		return nil, err
	}

	head, err := r.ReadCont()
	if err != nil {
		return nil, err
	}
	if err := r.CheckCount("NL", head.N2); err != nil {
		return nil, err
	}

	s := &GroupCovariance{MAT: mat, MF: mf, MT: mt, ZA: head.C1, AWR: head.C2}
	for range head.N2 {
		c, err := r.ReadCont()
		if err != nil {
			return nil, err
		}
		if c.N2 < 0 {
			return nil, fmt.Errorf("%w: NG=%d", errs.ErrInvalidField, c.N2)
		}
		block := GroupCovarianceBlock{MAT1: c.L1, MT1: c.L2, Groups: c.N2}
		for block.Groups > 0 {
			l, err := r.ReadList()
			if err != nil {
				return nil, err
			}
			block.Rows = append(block.Rows, GroupRow{Group: l.N2, First: l.L2, Values: l.B})
			if l.N2 >= block.Groups {
				break
			}
		}
		s.Blocks = append(s.Blocks, block)
	}

	return s, nil
}

// WriteGroupCovariance encodes an ERRORR covariance section.
func WriteGroupCovariance(s *GroupCovariance) (string, error) {
	w := record.NewWriter(s.MAT, s.MF, s.MT)
	w.WriteCont(record.Cont{C1: s.ZA, C2: s.AWR, N2: len(s.Blocks)})
	for _, b := range s.Blocks {
		w.WriteCont(record.Cont{L1: b.MAT1, L2: b.MT1, N2: b.Groups})
		for _, row := range b.Rows {
			w.WriteList(record.List{L1: len(row.Values), L2: row.First, N2: row.Group, B: row.Values})
		}
	}

	return w.Text()
}
