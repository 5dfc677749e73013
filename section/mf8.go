package section

import (
	"fmt"

	"github.com/arloliu/endf/errs"
	"github.com/arloliu/endf/record"
)

// MF8 section numbers.
const (
	MTIndependentYields = 454
	MTDecay             = 457
	MTCumulativeYields  = 459
)

// fpsWidth is the number of values per fission product in a yield list.
const fpsWidth = 4

// FissionProduct is one fission product entry of a yield table.
type FissionProduct struct {
	ZAFP float64 // ZA of the product
	FPS  float64 // isomeric state
	Y    float64 // yield
	DY   float64 // yield uncertainty
}

// YieldTable lists fission product yields at one incident energy.
type YieldTable struct {
	E        float64
	I        int // interpolation to the next energy
	Products []FissionProduct
}

// FissionYields is an MF8 section with MT454 (independent) or MT459
// (cumulative) fission product yields.
type FissionYields struct {
	MAT int
	MT  int

	ZA  float64
	AWR float64

	Energies []YieldTable
}

var _ Section = (*FissionYields)(nil)

// Key implements Section.
func (s *FissionYields) Key() (int, int, int) {
	return s.MAT, 8, s.MT
}

// ReadFissionYields decodes an MF8 MT454/MT459 section.
func ReadFissionYields(text string) (*FissionYields, error) {
	s, err := readFissionYields(text)
	if err != nil {
		return nil, wrapRead(8, text, err)
	}

	return s, nil
}

func readFissionYields(text string) (*FissionYields, error) {
	r := record.NewReader(text)
	mat, _, mt, err := r.Control()
	if err != nil {
		return nil, err
	}

	head, err := r.ReadCont()
	if err != nil {
		return nil, err
	}
	if err := r.CheckCount("LE+1", head.L1); err != nil {
		return nil, err
	}

	s := &FissionYields{MAT: mat, MT: mt, ZA: head.C1, AWR: head.C2}
	s.Energies = make([]YieldTable, 0, r.CapHint(head.L1))
	for range head.L1 {
		l, err := r.ReadList()
		if err != nil {
			return nil, err
		}
		if l.N2 < 0 {
			return nil, fmt.Errorf("%w: NFP=%d", errs.ErrInvalidField, l.N2)
		}
		if len(l.B) != fpsWidth*l.N2 {
			return nil, fmt.Errorf("%w: yield list has %d values for NFP=%d", errs.ErrMalformedRecord, len(l.B), l.N2)
		}

		table := YieldTable{E: l.C1, I: l.L1, Products: make([]FissionProduct, l.N2)}
		for i := range l.N2 {
			v := l.B[fpsWidth*i : fpsWidth*(i+1)]
			table.Products[i] = FissionProduct{ZAFP: v[0], FPS: v[1], Y: v[2], DY: v[3]}
		}
		s.Energies = append(s.Energies, table)
	}

	return s, nil
}

// WriteFissionYields encodes an MF8 MT454/MT459 section.
func WriteFissionYields(s *FissionYields) (string, error) {
	w := record.NewWriter(s.MAT, 8, s.MT)
	w.WriteCont(record.Cont{C1: s.ZA, C2: s.AWR, L1: len(s.Energies)})
	for _, table := range s.Energies {
		b := make([]float64, 0, fpsWidth*len(table.Products))
		for _, p := range table.Products {
			b = append(b, p.ZAFP, p.FPS, p.Y, p.DY)
		}
		w.WriteList(record.List{C1: table.E, L1: table.I, N2: len(table.Products), B: b})
	}

	return w.Text()
}
