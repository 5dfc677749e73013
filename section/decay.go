package section

import (
	"fmt"

	"github.com/arloliu/endf/errs"
	"github.com/arloliu/endf/record"
)

// decayModeWidth is the number of values per decay mode.
const decayModeWidth = 6

// spectrumWidth is the number of values in a spectrum header list.
const spectrumWidth = 6

// DecayMode is one decay branch of a radionuclide.
type DecayMode struct {
	RTYP float64 // decay type, digits encode successive decays
	RFS  float64 // isomeric state of the daughter
	Q    float64
	DQ   float64
	BR   float64 // branching ratio
	DBR  float64
}

// DiscreteLine is one discrete radiation line of a decay spectrum.
type DiscreteLine struct {
	ER  float64
	DER float64
	// Values holds the NT line parameters (RTYP, TYPE, RI, dRI, ...).
	Values []float64
}

// ContinuousSpectrum is the continuous part of a decay spectrum.
type ContinuousSpectrum struct {
	RTYP   float64
	LCOV   int
	Interp record.Interpolation
	E      []float64
	P      []float64
	// Covariance holds the raw LCOV covariance list, when present.
	Covariance *record.List
}

// Spectrum is the radiation spectrum of one particle type.
type Spectrum struct {
	STYP  float64 // radiation type
	LCON  int     // 0 discrete, 1 continuous, 2 both
	FD    float64 // discrete normalization factor
	DFD   float64
	ERAV  float64 // average decay energy
	DERAV float64
	FC    float64 // continuous normalization factor
	DFC   float64

	Lines      []DiscreteLine
	Continuous *ContinuousSpectrum
}

// DecayData is the MF8/MT457 radioactive decay data section.
type DecayData struct {
	MAT int

	ZA   float64
	AWR  float64
	LIS  int
	LISO int
	NST  int // 1 for stable nuclides

	HalfLife  float64
	DHalfLife float64
	// Energies holds the average decay energies and their uncertainties,
	// in (value, uncertainty) pairs.
	Energies []float64

	SPI float64 // spin
	PAR float64 // parity

	Modes   []DecayMode
	Spectra []Spectrum
}

var _ Section = (*DecayData)(nil)

// Key implements Section.
func (s *DecayData) Key() (int, int, int) {
	return s.MAT, 8, MTDecay
}

// Stable reports whether the nuclide is flagged stable.
func (s *DecayData) Stable() bool {
	return s.NST == 1
}

// ReadDecayData decodes an MF8/MT457 section.
func ReadDecayData(text string) (*DecayData, error) {
	s, err := readDecayData(text)
	if err != nil {
		return nil, wrapRead(8, text, err)
	}

	return s, nil
}

func readDecayData(text string) (*DecayData, error) {
	r := record.NewReader(text)
	mat, _, _, err := r.Control()
	if err != nil {
		return nil, err
	}

	head, err := r.ReadCont()
	if err != nil {
		return nil, err
	}
	s := &DecayData{MAT: mat, ZA: head.C1, AWR: head.C2, LIS: head.L1, LISO: head.L2, NST: head.N1}
	nsp := head.N2

	l, err := r.ReadList()
	if err != nil {
		return nil, err
	}
	s.HalfLife, s.DHalfLife, s.Energies = l.C1, l.C2, l.B

	l, err = r.ReadList()
	if err != nil {
		return nil, err
	}
	s.SPI, s.PAR = l.C1, l.C2
	if l.N2 < 0 {
		return nil, fmt.Errorf("%w: NDK=%d", errs.ErrInvalidField, l.N2)
	}
	if l.N2 > 0 && len(l.B) != decayModeWidth*l.N2 {
		return nil, fmt.Errorf("%w: decay mode list has %d values for NDK=%d", errs.ErrMalformedRecord, len(l.B), l.N2)
	}
	s.Modes = make([]DecayMode, l.N2)
	for i := range l.N2 {
		v := l.B[decayModeWidth*i : decayModeWidth*(i+1)]
		s.Modes[i] = DecayMode{RTYP: v[0], RFS: v[1], Q: v[2], DQ: v[3], BR: v[4], DBR: v[5]}
	}

	if err := r.CheckCount("NSP", nsp); err != nil {
		return nil, err
	}
	s.Spectra = make([]Spectrum, 0, r.CapHint(nsp))
	for range nsp {
		sp, err := readSpectrum(r)
		if err != nil {
			return nil, err
		}
		s.Spectra = append(s.Spectra, sp)
	}

	return s, nil
}

func readSpectrum(r *record.Reader) (Spectrum, error) {
	l, err := r.ReadList()
	if err != nil {
		return Spectrum{}, err
	}
	if len(l.B) < spectrumWidth {
		return Spectrum{}, fmt.Errorf("%w: spectrum header has %d values", errs.ErrMalformedRecord, len(l.B))
	}

	sp := Spectrum{
		STYP: l.C2, LCON: l.L1,
		FD: l.B[0], DFD: l.B[1], ERAV: l.B[2], DERAV: l.B[3], FC: l.B[4], DFC: l.B[5],
	}
	ner := l.N2

	if sp.LCON != 1 {
		if err := r.CheckCount("NER", ner); err != nil {
			return Spectrum{}, err
		}
		sp.Lines = make([]DiscreteLine, 0, r.CapHint(ner))
		for range ner {
			dl, err := r.ReadList()
			if err != nil {
				return Spectrum{}, err
			}
			sp.Lines = append(sp.Lines, DiscreteLine{ER: dl.C1, DER: dl.C2, Values: dl.B})
		}
	}

	if sp.LCON != 0 {
		t, err := r.ReadTab1()
		if err != nil {
			return Spectrum{}, err
		}
		cs := &ContinuousSpectrum{RTYP: t.C1, LCOV: t.L2, Interp: t.Interp, E: t.X, P: t.Y}
		if cs.LCOV != 0 {
			cov, err := r.ReadList()
			if err != nil {
				return Spectrum{}, err
			}
			cs.Covariance = &cov
		}
		sp.Continuous = cs
	}

	return sp, nil
}

// WriteDecayData encodes an MF8/MT457 section. A nuclide without decay
// modes is written with a single all-zero mode record.
func WriteDecayData(s *DecayData) (string, error) {
	w := record.NewWriter(s.MAT, 8, MTDecay)
	w.WriteCont(record.Cont{C1: s.ZA, C2: s.AWR, L1: s.LIS, L2: s.LISO, N1: s.NST, N2: len(s.Spectra)})
	w.WriteList(record.List{C1: s.HalfLife, C2: s.DHalfLife, B: s.Energies})

	modes := make([]float64, 0, decayModeWidth*max(len(s.Modes), 1))
	for _, m := range s.Modes {
		modes = append(modes, m.RTYP, m.RFS, m.Q, m.DQ, m.BR, m.DBR)
	}
	ndk := len(s.Modes)
	if ndk == 0 {
		modes = make([]float64, decayModeWidth)
	}
	w.WriteList(record.List{C1: s.SPI, C2: s.PAR, N2: ndk, B: modes})

	for _, sp := range s.Spectra {
		if err := writeSpectrum(w, sp); err != nil {
			return "", err
		}
	}

	return w.Text()
}

func writeSpectrum(w *record.Writer, sp Spectrum) error {
	ner := len(sp.Lines)
	if sp.LCON == 1 {
		ner = 0
	}
	w.WriteList(record.List{
		C2: sp.STYP, L1: sp.LCON, N2: ner,
		B: []float64{sp.FD, sp.DFD, sp.ERAV, sp.DERAV, sp.FC, sp.DFC},
	})

	if sp.LCON != 1 {
		for _, dl := range sp.Lines {
			w.WriteList(record.List{C1: dl.ER, C2: dl.DER, B: dl.Values})
		}
	}

	if sp.LCON != 0 {
		cs := sp.Continuous
		if cs == nil {
			return fmt.Errorf("%w: spectrum with LCON=%d has no continuous part", errs.ErrInvalidField, sp.LCON)
		}
		w.WriteTab1(record.Tab1{C1: cs.RTYP, L2: cs.LCOV, Interp: cs.Interp, X: cs.E, Y: cs.P})
		if cs.LCOV != 0 && cs.Covariance != nil {
			w.WriteList(*cs.Covariance)
		}
	}

	return nil
}
