package section

import (
	"github.com/arloliu/endf/record"
)

// CrossSection is an MF3 section: a reaction cross section tabulated over
// incident energy.
type CrossSection struct {
	MAT int
	MT  int

	ZA  float64
	AWR float64
	// PFLAG is L2 of the HEAD record, the PENDF processing flag.
	PFLAG int

	QM float64 // mass-difference Q value (eV)
	QI float64 // reaction Q value (eV)
	LR int     // complex breakup flag

	Interp record.Interpolation
	Energy []float64
	XS     []float64
}

var _ Section = (*CrossSection)(nil)

// Key implements Section.
func (s *CrossSection) Key() (int, int, int) {
	return s.MAT, 3, s.MT
}

// ReadCrossSection decodes an MF3 section.
func ReadCrossSection(text string) (*CrossSection, error) {
	r := record.NewReader(text)
	mat, _, mt, err := r.Control()
	if err != nil {
		return nil, wrapRead(3, text, err)
	}

	head, err := r.ReadCont()
	if err != nil {
		return nil, wrapRead(3, text, err)
	}

	tab, err := r.ReadTab1()
	if err != nil {
		return nil, wrapRead(3, text, err)
	}

	return &CrossSection{
		MAT:    mat,
		MT:     mt,
		ZA:     head.C1,
		AWR:    head.C2,
		PFLAG:  head.L2,
		QM:     tab.C1,
		QI:     tab.C2,
		LR:     tab.L2,
		Interp: tab.Interp,
		Energy: tab.X,
		XS:     tab.Y,
	}, nil
}

// WriteCrossSection encodes an MF3 section.
func WriteCrossSection(s *CrossSection) (string, error) {
	w := record.NewWriter(s.MAT, 3, s.MT)
	w.WriteCont(record.Cont{C1: s.ZA, C2: s.AWR, L2: s.PFLAG})
	w.WriteTab1(record.Tab1{C1: s.QM, C2: s.QI, L2: s.LR, Interp: s.Interp, X: s.Energy, Y: s.XS})

	return w.Text()
}
