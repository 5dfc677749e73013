package section

import (
	"fmt"

	"github.com/arloliu/endf/errs"
	"github.com/arloliu/endf/record"
)

// Angular representation flags (LTT).
const (
	LTTIsotropic = 0
	LTTLegendre  = 1
	LTTTabulated = 2
	LTTMixed     = 3
)

// LegendreDistribution holds Legendre coefficients at one incident energy.
type LegendreDistribution struct {
	T      float64
	E      float64
	LT     int
	Coeffs []float64
}

// TabulatedDistribution holds a probability table over cosine at one
// incident energy.
type TabulatedDistribution struct {
	T      float64
	E      float64
	LT     int
	Interp record.Interpolation
	Mu     []float64
	F      []float64
}

// AngularDistribution is an MF4 section: secondary-particle angular
// distributions.
type AngularDistribution struct {
	MAT int
	MT  int

	ZA  float64
	AWR float64
	LVT int
	LTT int

	// Transformation is the LVT=1 transformation matrix of order NM.
	Transformation []float64
	NM             int
	LI             int
	LCT            int

	LegendreInterp record.Interpolation
	Legendre       []LegendreDistribution

	TabulatedInterp record.Interpolation
	Tabulated       []TabulatedDistribution
}

var _ Section = (*AngularDistribution)(nil)

// Key implements Section.
func (s *AngularDistribution) Key() (int, int, int) {
	return s.MAT, 4, s.MT
}

func (s *AngularDistribution) hasLegendre() bool {
	return s.LTT == LTTLegendre || s.LTT == LTTMixed
}

func (s *AngularDistribution) hasTabulated() bool {
	return s.LTT == LTTTabulated || s.LTT == LTTMixed
}

// ReadAngularDistribution decodes an MF4 section.
func ReadAngularDistribution(text string) (*AngularDistribution, error) {
	s, err := readAngularDistribution(text)
	if err != nil {
		return nil, wrapRead(4, text, err)
	}

	return s, nil
}

func readAngularDistribution(text string) (*AngularDistribution, error) {
	r := record.NewReader(text)
	mat, _, mt, err := r.Control()
	if err != nil {
		return nil, err
	}

	head, err := r.ReadCont()
	if err != nil {
		return nil, err
	}
	s := &AngularDistribution{MAT: mat, MT: mt, ZA: head.C1, AWR: head.C2, LVT: head.L1, LTT: head.L2}
	if s.LTT < LTTIsotropic || s.LTT > LTTMixed {
		return nil, fmt.Errorf("%w: LTT=%d", errs.ErrInvalidField, s.LTT)
	}

	if s.LVT == 1 {
		l, err := r.ReadList()
		if err != nil {
			return nil, err
		}
		s.LI, s.LCT, s.NM, s.Transformation = l.L1, l.L2, l.N2, l.B
	} else {
		c, err := r.ReadCont()
		if err != nil {
			return nil, err
		}
		s.LI, s.LCT, s.NM = c.L1, c.L2, c.N2
	}

	if s.hasLegendre() {
		tab, err := r.ReadTab2()
		if err != nil {
			return nil, err
		}
		if err := r.CheckCount("NE", tab.NZ); err != nil {
			return nil, err
		}
		s.LegendreInterp = tab.Interp
		s.Legendre = make([]LegendreDistribution, 0, r.CapHint(tab.NZ))
		for range tab.NZ {
			l, err := r.ReadList()
			if err != nil {
				return nil, err
			}
			s.Legendre = append(s.Legendre, LegendreDistribution{T: l.C1, E: l.C2, LT: l.L1, Coeffs: l.B})
		}
	}

	if s.hasTabulated() {
		tab, err := r.ReadTab2()
		if err != nil {
			return nil, err
		}
		if err := r.CheckCount("NE", tab.NZ); err != nil {
			return nil, err
		}
		s.TabulatedInterp = tab.Interp
		s.Tabulated = make([]TabulatedDistribution, 0, r.CapHint(tab.NZ))
		for range tab.NZ {
			t, err := r.ReadTab1()
			if err != nil {
				return nil, err
			}
			s.Tabulated = append(s.Tabulated, TabulatedDistribution{
				T: t.C1, E: t.C2, LT: t.L1, Interp: t.Interp, Mu: t.X, F: t.Y,
			})
		}
	}

	return s, nil
}

// WriteAngularDistribution encodes an MF4 section.
func WriteAngularDistribution(s *AngularDistribution) (string, error) {
	w := record.NewWriter(s.MAT, 4, s.MT)
	w.WriteCont(record.Cont{C1: s.ZA, C2: s.AWR, L1: s.LVT, L2: s.LTT})
	if s.LVT == 1 {
		w.WriteList(record.List{C2: s.AWR, L1: s.LI, L2: s.LCT, N2: s.NM, B: s.Transformation})
	} else {
		w.WriteCont(record.Cont{C2: s.AWR, L1: s.LI, L2: s.LCT, N2: s.NM})
	}

	if s.hasLegendre() {
		w.WriteTab2(record.Tab2{NZ: len(s.Legendre), Interp: s.LegendreInterp})
		for _, d := range s.Legendre {
			w.WriteList(record.List{C1: d.T, C2: d.E, L1: d.LT, B: d.Coeffs})
		}
	}

	if s.hasTabulated() {
		w.WriteTab2(record.Tab2{NZ: len(s.Tabulated), Interp: s.TabulatedInterp})
		for _, d := range s.Tabulated {
			w.WriteTab1(record.Tab1{C1: d.T, C2: d.E, L1: d.LT, Interp: d.Interp, X: d.Mu, Y: d.F})
		}
	}

	return w.Text()
}
