package tape

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/endf/errs"
	"github.com/arloliu/endf/section"
)

func TestReadSection(t *testing.T) {
	tp := hydrogen(t)

	sec, err := tp.ReadSection(125, 3, 102)
	require.NoError(t, err)
	xs, ok := sec.(*section.CrossSection)
	require.True(t, ok)
	require.Equal(t, 102, xs.MT)
	require.InDelta(t, 2.224648e6, xs.QI, 1e-6)
	require.Equal(t, []float64{1e-5, 2e7}, xs.Energy)

	sec, err = tp.ReadSection(125, 1, section.MTInfo)
	require.NoError(t, err)
	info, ok := sec.(*section.Info)
	require.True(t, ok)
	require.Equal(t, 10, info.NSUB)
	require.Len(t, info.Records, tp.Len())

	sec, err = tp.ReadSection(125, 4, 2)
	require.NoError(t, err)
	require.IsType(t, &section.AngularDistribution{}, sec)
}

func TestReadSection_Unsupported(t *testing.T) {
	tp := hydrogen(t)

	_, err := tp.ReadSection(125, 6, 102)
	require.ErrorIs(t, err, errs.ErrUnsupportedSection)

	sec, err := tp.ReadSection(125, 6, 102, AllowUnsupported())
	require.NoError(t, err)
	require.Nil(t, sec)

	_, err = tp.ReadSection(125, 3, 18, AllowUnsupported())
	require.ErrorIs(t, err, errs.ErrSectionNotFound)
}

func TestWriteSection(t *testing.T) {
	tp := hydrogen(t)

	sec, err := tp.ReadSection(125, 3, 1)
	require.NoError(t, err)
	xs := sec.(*section.CrossSection)
	xs.MT = 18
	xs.XS = []float64{2.5, 0.5}

	out, err := tp.WriteSection(xs)
	require.NoError(t, err)
	require.False(t, tp.Has(NewKey(125, 3, 18)))

	back, err := out.ReadSection(125, 3, 18)
	require.NoError(t, err)
	require.Equal(t, xs, back)

	same, err := tp.ReadSection(125, 3, 1)
	require.NoError(t, err)
	unchanged, err := tp.WriteSection(same)
	require.NoError(t, err)
	require.True(t, tp.Equal(unchanged))

	_, err = tp.WriteSection(nil)
	require.ErrorIs(t, err, errs.ErrSectionMismatch)
}

func TestReadSection_Errorr(t *testing.T) {
	tp, err := New(
		Entry{Key: NewKey(125, 1, 451), Text: lines(125, 1, 451,
			row(zaH, awrH, 2, 0, -11, 0),
			row(zero, zero, 2, 0, 3, 0),
			" 1.000000-5 1.000000+5 2.000000+7",
		)},
		Entry{Key: NewKey(125, 3, 102), Text: lines(125, 3, 102,
			row(zaH, awrH, 0, 0, 0, 0),
			row(zero, zero, 0, 0, 2, 0),
			" 2.000000+1 1.000000+0",
		)},
	)
	require.NoError(t, err)

	sec, err := tp.ReadSection(125, 1, section.MTInfo)
	require.NoError(t, err)
	gs, ok := sec.(*section.GroupStructure)
	require.True(t, ok)
	require.Equal(t, 2, gs.Groups())

	sec, err = tp.ReadSection(125, 3, 102)
	require.NoError(t, err)
	gxs, ok := sec.(*section.GroupCrossSection)
	require.True(t, ok)
	require.Equal(t, []float64{20, 1}, gxs.XS)

	out, err := tp.WriteSection(gxs)
	require.NoError(t, err)
	require.True(t, tp.Equal(out))
}
