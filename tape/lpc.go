package tape

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/arloliu/endf/errs"
	"github.com/arloliu/endf/record"
	"github.com/arloliu/endf/section"
)

// minLegendreOrder is the fewest coefficients written back per energy.
const minLegendreOrder = 4

// LegendreRow is the Legendre expansion of an MF4 angular distribution at
// one incident energy. Coeffs[0] is the P0 coefficient, always 1.
type LegendreRow struct {
	MAT    int
	MT     int
	E      float64
	Coeffs []float64
}

// LegendreCoefficients collects the Legendre coefficients of every MF4
// section, ordered by MAT, MT and energy. All rows share the length of the
// highest order found, padded with zeros.
//
// Sections whose energy interpolation is not lin-lin are skipped with a
// warning. Returns errs.ErrSectionNotFound when no coefficients remain.
func (t Tape) LegendreCoefficients(opts ...Option) ([]LegendreRow, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	var rows []LegendreRow
	width := 0
	for _, k := range t.FilterBy(ByMF(4)).Keys() {
		ad, err := t.angular(k)
		if err != nil {
			return nil, err
		}
		if ad == nil || len(ad.Legendre) == 0 {
			continue
		}
		if !linLin(ad.LegendreInterp) {
			cfg.logger.Warn("skipping Legendre coefficients with non lin-lin energy interpolation",
				"key", k.String(), "int", ad.LegendreInterp.INT)

			continue
		}

		for _, d := range ad.Legendre {
			coeffs := append([]float64{1}, d.Coeffs...)
			width = max(width, len(coeffs))
			rows = append(rows, LegendreRow{MAT: k.MAT, MT: k.MT, E: d.E, Coeffs: coeffs})
		}
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no Legendre coefficients", errs.ErrSectionNotFound)
	}

	for i := range rows {
		if n := len(rows[i].Coeffs); n < width {
			rows[i].Coeffs = append(rows[i].Coeffs, make([]float64, width-n)...)
		}
	}
	slices.SortStableFunc(rows, compareRows)

	return rows, nil
}

// ApplyLegendre returns a tape whose MF4 Legendre coefficients are replaced
// by rows. Energies missing from a section are inserted with T and LT set to
// zero; the energy interpolation becomes a single lin-lin range.
//
// Trailing zero coefficients are dropped, keeping at least four per energy.
// Rows whose (MAT, MT) has no MF4 section with Legendre data are ignored.
// The directory is not updated.
func (t Tape) ApplyLegendre(rows []LegendreRow) (Tape, error) {
	groups := make(map[Key][]LegendreRow)
	for _, row := range rows {
		k := NewKey(row.MAT, 4, row.MT)
		groups[k] = append(groups[k], row)
	}

	out := t
	for _, k := range sortedKeys(groups) {
		ad, err := t.angular(k)
		if err != nil {
			return t, err
		}
		if ad == nil || (ad.LTT != section.LTTLegendre && ad.LTT != section.LTTMixed) {
			continue
		}

		for _, row := range groups[k] {
			d := section.LegendreDistribution{E: row.E, Coeffs: trimCoefficients(row.Coeffs)}
			i, found := slices.BinarySearchFunc(ad.Legendre, row.E, func(l section.LegendreDistribution, e float64) int {
				return cmp.Compare(l.E, e)
			})
			if found {
				d.T, d.LT = ad.Legendre[i].T, ad.Legendre[i].LT
				ad.Legendre[i] = d
			} else {
				ad.Legendre = slices.Insert(ad.Legendre, i, d)
			}
		}
		ad.LegendreInterp = record.LinLin(len(ad.Legendre))

		if out, err = out.WriteSection(ad); err != nil {
			return t, err
		}
	}

	return out, nil
}

// angular decodes the MF4 section k, or returns nil when it is absent or
// holds no angular distribution.
func (t Tape) angular(k Key) (*section.AngularDistribution, error) {
	if !t.Has(k) {
		return nil, nil
	}

	sec, err := t.ReadSection(k.MAT, k.MF, k.MT, AllowUnsupported())
	if err != nil {
		return nil, err
	}
	ad, _ := sec.(*section.AngularDistribution)

	return ad, nil
}

func linLin(in record.Interpolation) bool {
	return len(in.INT) > 0 && !slices.ContainsFunc(in.INT, func(i int) bool { return i != 2 })
}

// trimCoefficients drops P0 and the trailing zeros of a row.
func trimCoefficients(coeffs []float64) []float64 {
	n := len(coeffs) - 1
	for n > 0 && coeffs[n] == 0 {
		n--
	}
	n = max(n, minLegendreOrder)

	out := make([]float64, n)
	if len(coeffs) > 1 {
		copy(out, coeffs[1:])
	}

	return out
}

func compareRows(a, b LegendreRow) int {
	return cmp.Or(cmp.Compare(a.MAT, b.MAT), cmp.Compare(a.MT, b.MT), cmp.Compare(a.E, b.E))
}

func sortedKeys[V any](m map[Key]V) []Key {
	keys := make([]Key, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, Key.Compare)

	return keys
}
