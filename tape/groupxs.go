package tape

import (
	"fmt"
	"slices"

	"github.com/arloliu/endf/errs"
	"github.com/arloliu/endf/format"
	"github.com/arloliu/endf/section"
)

// GroupTable holds multigroup cross sections from an ERRORR tape on one
// shared energy group structure.
type GroupTable struct {
	// Boundaries holds the NG+1 ascending group boundaries (eV).
	Boundaries []float64
	// Reactions lists the MF3 keys of the columns in key order.
	Reactions []Key
	// XS[i] holds the NG group values of Reactions[i].
	XS [][]float64
}

// Groups returns the number of energy groups.
func (g *GroupTable) Groups() int {
	return max(len(g.Boundaries)-1, 0)
}

// Column returns the group values of reaction (mat, mt).
func (g *GroupTable) Column(mat, mt int) ([]float64, bool) {
	i := slices.Index(g.Reactions, NewKey(mat, 3, mt))
	if i < 0 {
		return nil, false
	}

	return g.XS[i], true
}

// At returns the value of reaction (mat, mt) in the group holding energy e.
// The upper boundary belongs to the last group.
func (g *GroupTable) At(mat, mt int, e float64) (float64, bool) {
	xs, ok := g.Column(mat, mt)
	n := g.Groups()
	if !ok || n == 0 || e < g.Boundaries[0] || e > g.Boundaries[n] {
		return 0, false
	}

	i, found := slices.BinarySearch(g.Boundaries, e)
	if !found {
		i--
	}

	return xs[min(i, n-1)], true
}

// GroupCrossSections collects the MF3 group cross sections of the ERRORR
// materials selected by f. The MF of f is ignored. Every selected material
// must share the group boundaries of its MF1/MT451 section.
//
// A selection without cross sections gives an empty table and a warning.
// Returns errs.ErrSectionMismatch when a material is not ERRORR, when
// boundaries differ between materials or when a section does not hold one
// value per group.
func (t Tape) GroupCrossSections(f Filter, opts ...Option) (*GroupTable, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	f.MF = []int{3}
	keys := t.FilterBy(f).Keys()

	table := &GroupTable{}
	bounds := make(map[int][]float64)
	for _, k := range keys {
		eg, ok := bounds[k.MAT]
		if !ok {
			if eg, err = t.groupBoundaries(k.MAT); err != nil {
				return nil, err
			}
			if table.Boundaries == nil {
				table.Boundaries = eg
			} else if !slices.Equal(table.Boundaries, eg) {
				return nil, fmt.Errorf("%w: MAT%d group boundaries differ from MAT%d", errs.ErrSectionMismatch, k.MAT, keys[0].MAT)
			}
			bounds[k.MAT] = eg
		}

		sec, err := t.ReadSection(k.MAT, k.MF, k.MT)
		if err != nil {
			return nil, err
		}
		xs, ok := sec.(*section.GroupCrossSection)
		if !ok {
			return nil, fmt.Errorf("%w: %s is %T", errs.ErrSectionMismatch, k, sec)
		}
		if len(xs.XS) != len(eg)-1 {
			return nil, fmt.Errorf("%w: %s has %d values for %d groups", errs.ErrSectionMismatch, k, len(xs.XS), len(eg)-1)
		}

		table.Reactions = append(table.Reactions, k)
		table.XS = append(table.XS, xs.XS)
	}

	if len(table.Reactions) == 0 {
		cfg.logger.Warn("requested group cross sections were not found", "mat", f.MAT, "mt", f.MT)
	}

	return table, nil
}

// groupBoundaries reads the group structure of ERRORR material mat.
func (t Tape) groupBoundaries(mat int) ([]float64, error) {
	kind, err := t.KindOf(mat)
	if err != nil {
		return nil, err
	}
	if kind != format.KindErrorr {
		return nil, fmt.Errorf("%w: MAT%d is %s, not errorr", errs.ErrSectionMismatch, mat, kind)
	}

	sec, err := t.ReadSection(mat, 1, section.MTInfo)
	if err != nil {
		return nil, err
	}
	gs, ok := sec.(*section.GroupStructure)
	if !ok || gs.Groups() == 0 {
		return nil, fmt.Errorf("%w: MAT%d has no group structure", errs.ErrSectionMismatch, mat)
	}

	return gs.Boundaries, nil
}
