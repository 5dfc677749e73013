package section

import (
	"testing"

	"github.com/arloliu/endf/errs"
	"github.com/stretchr/testify/require"
)

func crossSectionText() string {
	return lines(125, 3, 102,
		row(zaH, awrH, 0, 99, 0, 0),
		row(" 2.224648+6", " 2.224648+6", 0, 0, 1, 4),
		ints(4, 2),
		" 1.000000-5 1.672869+1 2.530000-2 3.320000-1 1.000000+6 3.000000-5",
		" 2.000000+7 2.800000-5",
	)
}

func TestReadCrossSection(t *testing.T) {
	s, err := ReadCrossSection(crossSectionText())
	require.NoError(t, err)

	require.Equal(t, 125, s.MAT)
	require.Equal(t, 102, s.MT)
	require.Equal(t, 99, s.PFLAG)
	require.InDelta(t, 2.224648e6, s.QM, 1e-3)
	require.InDelta(t, 2.224648e6, s.QI, 1e-3)
	require.Equal(t, []int{4}, s.Interp.NBT)
	require.Equal(t, []int{2}, s.Interp.INT)
	require.Len(t, s.Energy, 4)
	require.InDelta(t, 0.332, s.XS[1], 1e-12)
}

func TestWriteCrossSection_RoundTrip(t *testing.T) {
	text := crossSectionText()
	s, err := ReadCrossSection(text)
	require.NoError(t, err)

	requireRoundTrip(t, text, func() (string, error) { return WriteCrossSection(s) })
}

func TestWriteCrossSection_LengthMismatch(t *testing.T) {
	s := &CrossSection{MAT: 125, MT: 1, Energy: []float64{1, 2}, XS: []float64{1}}

	_, err := WriteCrossSection(s)
	require.ErrorIs(t, err, errs.ErrInvalidField)
}
