package tape

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/endf/errs"
	"github.com/arloliu/endf/format"
	"github.com/arloliu/endf/section"
)

var twoGroups = []float64{1e-5, 0.625, 2e7}

// errorrTape builds an ERRORR material with one MF3 section per entry of xs.
func errorrTape(t *testing.T, mat int, eg []float64, xs map[int][]float64) Tape {
	t.Helper()

	tp, err := Tape{}.WriteSection(&section.GroupStructure{
		MAT: mat, ZA: 1001, AWR: 0.999167, NLIB: format.NLIBErrorr, Boundaries: eg,
	})
	require.NoError(t, err)
	for mt, values := range xs {
		tp, err = tp.WriteSection(&section.GroupCrossSection{MAT: mat, MT: mt, ZA: 1001, AWR: 0.999167, XS: values})
		require.NoError(t, err)
	}

	return tp
}

func TestGroupCrossSections(t *testing.T) {
	tp := errorrTape(t, 125, twoGroups, map[int][]float64{
		1:   {20.4, 3.9},
		2:   {20.3, 3.8},
		102: {0.33, 0.1},
	})

	table, err := tp.GroupCrossSections(Filter{MT: []int{102, 1}})
	require.NoError(t, err)

	require.Equal(t, twoGroups, table.Boundaries)
	require.Equal(t, 2, table.Groups())
	require.Equal(t, []Key{NewKey(125, 3, 1), NewKey(125, 3, 102)}, table.Reactions)
	require.Equal(t, [][]float64{{20.4, 3.9}, {0.33, 0.1}}, table.XS)

	col, ok := table.Column(125, 102)
	require.True(t, ok)
	require.Equal(t, []float64{0.33, 0.1}, col)
	_, ok = table.Column(125, 2)
	require.False(t, ok)
}

func TestGroupTable_At(t *testing.T) {
	table, err := errorrTape(t, 125, twoGroups, map[int][]float64{1: {20.4, 3.9}}).GroupCrossSections(Filter{})
	require.NoError(t, err)

	tests := []struct {
		name string
		e    float64
		want float64
		ok   bool
	}{
		{"Lowest boundary", 1e-5, 20.4, true},
		{"Inside first group", 0.1, 20.4, true},
		{"Inner boundary", 0.625, 3.9, true},
		{"Inside last group", 1e6, 3.9, true},
		{"Highest boundary", 2e7, 3.9, true},
		{"Below range", 1e-6, 0, false},
		{"Above range", 3e7, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := table.At(125, 1, tt.e)
			require.Equal(t, tt.ok, ok)
			require.InDelta(t, tt.want, got, 1e-12)
		})
	}

	_, ok := table.At(125, 18, 1)
	require.False(t, ok)
}

func TestGroupCrossSections_Empty(t *testing.T) {
	tp := errorrTape(t, 125, twoGroups, map[int][]float64{1: {20.4, 3.9}})

	logger, buf := captureLogs()
	table, err := tp.GroupCrossSections(Filter{MT: []int{18}}, WithLogger(logger))
	require.NoError(t, err)
	require.Empty(t, table.Reactions)
	require.Contains(t, buf.String(), "not found")
}

func TestGroupCrossSections_Mismatch(t *testing.T) {
	tests := map[string]Tape{
		"ENDF-6 material": hydrogen(t),
		"Wrong length":    errorrTape(t, 125, twoGroups, map[int][]float64{1: {1, 2, 3}}),
		"Different boundaries": errorrTape(t, 125, twoGroups, map[int][]float64{1: {1, 2}}).Merge(
			errorrTape(t, 128, []float64{1e-5, 2e7}, map[int][]float64{1: {1}})),
	}

	for name, tp := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := tp.GroupCrossSections(Filter{})
			require.ErrorIs(t, err, errs.ErrSectionMismatch)
		})
	}
}
