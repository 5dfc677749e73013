package section

import (
	"testing"

	"github.com/arloliu/endf/errs"
	"github.com/arloliu/endf/record"
	"github.com/stretchr/testify/require"
)

func stableDecayText() string {
	return lines(125, 8, 457,
		row(zaH, awrH, 0, 0, 1, 0),
		row(zero, zero, 0, 0, 6, 0),
		" 0.000000+0 0.000000+0 0.000000+0 0.000000+0 0.000000+0 0.000000+0",
		row(" 5.000000-1", " 1.000000+0", 0, 0, 6, 0),
		" 0.000000+0 0.000000+0 0.000000+0 0.000000+0 0.000000+0 0.000000+0",
	)
}

func cesiumDecayText() string {
	return lines(3700, 8, 457,
		row(" 5.513700+4", " 1.364000+2", 0, 0, 0, 1),
		row(" 9.492000+8", " 2.000000+6", 0, 0, 6, 0),
		" 1.870000+5 1.000000+3 6.600000+5 2.000000+3 0.000000+0 0.000000+0",
		row(" 3.500000+0", " 1.000000+0", 0, 0, 6, 1),
		" 1.000000+0 1.000000+0 5.141000+5 1.000000+2 1.000000+0 0.000000+0",
		row(zero, zero, 0, 0, 6, 1),
		" 1.000000+0 0.000000+0 6.600000+5 2.000000+3 0.000000+0 0.000000+0",
		row(" 6.616570+5", " 3.000000+0", 0, 0, 6, 0),
		" 1.000000+0 0.000000+0 8.510000-1 2.000000-3 0.000000+0 0.000000+0",
	)
}

func TestReadDecayData_Stable(t *testing.T) {
	s, err := ReadDecayData(stableDecayText())
	require.NoError(t, err)

	require.True(t, s.Stable())
	require.Empty(t, s.Modes)
	require.Empty(t, s.Spectra)
	require.InDelta(t, 0.5, s.SPI, 1e-12)

	requireRoundTrip(t, stableDecayText(), func() (string, error) { return WriteDecayData(s) })
}

func TestReadDecayData_Discrete(t *testing.T) {
	s, err := ReadDecayData(cesiumDecayText())
	require.NoError(t, err)

	require.False(t, s.Stable())
	require.InDelta(t, 9.492e8, s.HalfLife, 1)
	require.Len(t, s.Energies, 6)
	require.Equal(t, []DecayMode{{RTYP: 1, RFS: 1, Q: 514100, DQ: 100, BR: 1, DBR: 0}}, s.Modes)
	require.Len(t, s.Spectra, 1)

	sp := s.Spectra[0]
	require.Equal(t, 0, sp.LCON)
	require.Nil(t, sp.Continuous)
	require.Len(t, sp.Lines, 1)
	require.InDelta(t, 661657.0, sp.Lines[0].ER, 1e-6)
	require.InDelta(t, 0.851, sp.Lines[0].Values[2], 1e-12)

	requireRoundTrip(t, cesiumDecayText(), func() (string, error) { return WriteDecayData(s) })
}

func TestWriteDecayData_Continuous(t *testing.T) {
	s := &DecayData{
		MAT: 3800, ZA: 38090, AWR: 89.1,
		HalfLife: 9.1e8,
		Energies: []float64{1.9e5, 1e3, 0, 0, 0, 0},
		Modes:    []DecayMode{{RTYP: 1, Q: 5.46e5, BR: 1}},
		Spectra: []Spectrum{{
			STYP: 1, LCON: 1, FC: 1, ERAV: 1.9e5,
			Continuous: &ContinuousSpectrum{
				RTYP:   1,
				Interp: record.LinLin(2),
				E:      []float64{0, 5.46e5},
				P:      []float64{1e-6, 0},
			},
		}},
	}

	text, err := WriteDecayData(s)
	require.NoError(t, err)

	back, err := ReadDecayData(text)
	require.NoError(t, err)
	require.Len(t, back.Spectra, 1)
	require.NotNil(t, back.Spectra[0].Continuous)
	require.Equal(t, []float64{0, 5.46e5}, back.Spectra[0].Continuous.E)

	t.Run("MissingContinuous", func(t *testing.T) {
		s.Spectra[0].Continuous = nil
		_, err := WriteDecayData(s)
		require.ErrorIs(t, err, errs.ErrInvalidField)
	})
}
