package section

import (
	"fmt"

	"github.com/arloliu/endf/errs"
	"github.com/arloliu/endf/record"
)

// NCBlock is an NC-type sub-subsection: a CONT carrying LTY followed by a
// LIST whose layout depends on LTY.
type NCBlock struct {
	LTY  int
	List record.List
}

// CovarianceSubsection holds the covariances between the section's reaction
// and reaction (MAT1, MT1).
type CovarianceSubsection struct {
	XMF1  float64
	XLFS1 float64
	MAT1  int
	MT1   int
	NC    []NCBlock
	// NI holds the NI-type sub-subsections; LB is L2 of each list.
	NI []record.List
}

// Covariance is an MF31 or MF33 section.
type Covariance struct {
	MAT int
	MF  int
	MT  int

	ZA  float64
	AWR float64
	MTL int

	Subsections []CovarianceSubsection
}

var _ Section = (*Covariance)(nil)

// Key implements Section.
func (s *Covariance) Key() (int, int, int) {
	return s.MAT, s.MF, s.MT
}

// Subsection returns the subsection correlating with (mat1, mt1). A mat1 of
// zero matches the section's own material.
func (s *Covariance) Subsection(mat1, mt1 int) (CovarianceSubsection, bool) {
	for _, sub := range s.Subsections {
		if sub.MAT1 == mat1 && sub.MT1 == mt1 {
			return sub, true
		}
	}

	return CovarianceSubsection{}, false
}

// ReadCovariance decodes an MF31 or MF33 section.
func ReadCovariance(text string) (*Covariance, error) {
	s, err := readCovariance(text)
	if err != nil {
		return nil, wrapRead(33, text, err)
	}

	return s, nil
}

func readCovariance(text string) (*Covariance, error) {
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

	s := &Covariance{MAT: mat, MF: mf, MT: mt, ZA: head.C1, AWR: head.C2, MTL: head.L2}
	s.Subsections = make([]CovarianceSubsection, 0, r.CapHint(head.N2))
	for range head.N2 {
		c, err := r.ReadCont()
		if err != nil {
			return nil, err
		}
		if c.N1 < 0 || c.N2 < 0 {
			return nil, fmt.Errorf("%w: NC=%d NI=%d", errs.ErrInvalidField, c.N1, c.N2)
		}
		if err := r.CheckCount("NC+NI", c.N1+c.N2); err != nil {
			return nil, err
		}

		sub := CovarianceSubsection{XMF1: c.C1, XLFS1: c.C2, MAT1: c.L1, MT1: c.L2}
		for range c.N1 {
			lty, err := r.ReadCont()
			if err != nil {
				return nil, err
			}
			l, err := r.ReadList()
			if err != nil {
				return nil, err
			}
			sub.NC = append(sub.NC, NCBlock{LTY: lty.L2, List: l})
		}
		for range c.N2 {
			l, err := r.ReadList()
			if err != nil {
				return nil, err
			}
			sub.NI = append(sub.NI, l)
		}
		s.Subsections = append(s.Subsections, sub)
	}

	return s, nil
}

// WriteCovariance encodes an MF31 or MF33 section.
func WriteCovariance(s *Covariance) (string, error) {
	w := record.NewWriter(s.MAT, s.MF, s.MT)
	w.WriteCont(record.Cont{C1: s.ZA, C2: s.AWR, L2: s.MTL, N2: len(s.Subsections)})
	for _, sub := range s.Subsections {
		w.WriteCont(record.Cont{
			C1: sub.XMF1, C2: sub.XLFS1, L1: sub.MAT1, L2: sub.MT1,
			N1: len(sub.NC), N2: len(sub.NI),
		})
		for _, nc := range sub.NC {
			w.WriteCont(record.Cont{L2: nc.LTY})
			w.WriteList(nc.List)
		}
		for _, ni := range sub.NI {
			w.WriteList(ni)
		}
	}

	return w.Text()
}

// EnergyCovariance is an MF35 section: covariances of secondary energy
// distributions, one block per incident-energy range.
type EnergyCovariance struct {
	MAT int
	MT  int

	ZA  float64
	AWR float64

	// Blocks holds one LIST per energy range: E1, E2 in C1/C2, LS and LB in
	// L1/L2, the outgoing energies and covariance values in B.
	Blocks []record.List
}

var _ Section = (*EnergyCovariance)(nil)

// Key implements Section.
func (s *EnergyCovariance) Key() (int, int, int) {
	return s.MAT, 35, s.MT
}

// ReadEnergyCovariance decodes an MF35 section.
func ReadEnergyCovariance(text string) (*EnergyCovariance, error) {
	r := record.NewReader(text)
	mat, _, mt, err := r.Control()
	if err != nil {
		return nil, wrapRead(35, text, err)
	}

	head, err := r.ReadCont()
	if err != nil {
		return nil, wrapRead(35, text, err)
	}
	if err := r.CheckCount("NK", head.N1); err != nil {
		return nil, wrapRead(35, text, err)
	}

	s := &EnergyCovariance{MAT: mat, MT: mt, ZA: head.C1, AWR: head.C2}
	s.Blocks = make([]record.List, 0, r.CapHint(head.N1))
	for range head.N1 {
		l, err := r.ReadList()
		if err != nil {
			return nil, wrapRead(35, text, err)
		}
		s.Blocks = append(s.Blocks, l)
	}

	return s, nil
}

// WriteEnergyCovariance encodes an MF35 section.
func WriteEnergyCovariance(s *EnergyCovariance) (string, error) {
	w := record.NewWriter(s.MAT, 35, s.MT)
	w.WriteCont(record.Cont{C1: s.ZA, C2: s.AWR, N1: len(s.Blocks)})
	for _, b := range s.Blocks {
		w.WriteList(b)
	}

	return w.Text()
}
