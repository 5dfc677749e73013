package tape

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/endf/errs"
	"github.com/arloliu/endf/section"
)

func readInfo(t *testing.T, tp Tape, mat int) *section.Info {
	t.Helper()

	text, err := tp.Section(mat, 1, section.MTInfo)
	require.NoError(t, err)
	info, err := section.ReadInfo(text)
	require.NoError(t, err)

	return info
}

func TestUpdateDirectory_Idempotent(t *testing.T) {
	tp := hydrogen(t)

	updated, err := tp.UpdateDirectory()
	require.NoError(t, err)
	require.True(t, tp.Equal(updated))
	require.Equal(t, tp.Title(), updated.Title())
}

func TestUpdateDirectory_AfterDelete(t *testing.T) {
	tp, err := hydrogen(t).DeleteSection(NewKey(125, 3, 102))
	require.NoError(t, err)

	updated, err := tp.UpdateDirectory()
	require.NoError(t, err)

	info := readInfo(t, updated, 125)
	_, ok := info.Record(3, 102)
	require.False(t, ok)
	require.Len(t, info.Records, 6)

	self, ok := info.Record(1, section.MTInfo)
	require.True(t, ok)
	require.Equal(t, 11, self.NC)
	require.Equal(t, info.LineCount(), self.NC)

	header, err := updated.Section(125, 1, section.MTInfo)
	require.NoError(t, err)
	require.Equal(t, self.NC, strings.Count(header, "\n")+1)
}

func TestUpdateDirectory_NewSection(t *testing.T) {
	logger, logs := captureLogs()
	text := lines(125, 3, 18, row(zaH, awrH, 0, 0, 0, 0), row(zero, zero, 0, 0, 0, 0))

	tp, err := hydrogen(t).AddSection(125, 3, 18, text)
	require.NoError(t, err)

	updated, err := tp.UpdateDirectory(WithLogger(logger))
	require.NoError(t, err)

	rec, ok := readInfo(t, updated, 125).Record(3, 18)
	require.True(t, ok)
	require.Equal(t, section.DirectoryRecord{MF: 3, MT: 18, NC: 2, MOD: 0}, rec)
	require.Contains(t, logs.String(), "MAT125/MF3/MT18")
}

func TestUpdateDirectory_KeepsMOD(t *testing.T) {
	tp := hydrogen(t)

	info := readInfo(t, tp, 125)
	for i := range info.Records {
		info.Records[i].MOD = 2
	}
	tp, err := tp.WriteSection(info)
	require.NoError(t, err)

	updated, err := tp.UpdateDirectory()
	require.NoError(t, err)
	for _, rec := range readInfo(t, updated, 125).Records {
		require.Equal(t, 2, rec.MOD, "MF%d/MT%d", rec.MF, rec.MT)
	}
}

func TestUpdateDirectory_Description(t *testing.T) {
	updated, err := hydrogen(t).UpdateDirectory(WithDescription(" first line", " second line"))
	require.NoError(t, err)

	info := readInfo(t, updated, 125)
	require.Len(t, info.Description, 2)
	require.Equal(t, " second line", strings.TrimRight(info.Description[1], " "))

	self, ok := info.Record(1, section.MTInfo)
	require.True(t, ok)
	require.Equal(t, 4+2+len(info.Records), self.NC)
}

func TestUpdateDirectory_MultipleMaterials(t *testing.T) {
	tp, err := hydrogen(t).Merge(deuterium(t)).DeleteSection(NewKey(128, 3, 102))
	require.NoError(t, err)

	updated, err := tp.UpdateDirectory()
	require.NoError(t, err)

	h, err := updated.Section(125, 1, section.MTInfo)
	require.NoError(t, err)
	want, err := hydrogen(t).Section(125, 1, section.MTInfo)
	require.NoError(t, err)
	require.Equal(t, want, h)

	_, ok := readInfo(t, updated, 128).Record(3, 102)
	require.False(t, ok)
}

func TestUpdateDirectory_SkipsErrorr(t *testing.T) {
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

	updated, err := tp.UpdateDirectory()
	require.NoError(t, err)
	require.True(t, tp.Equal(updated))
}

func TestUpdateDirectory_MissingHeader(t *testing.T) {
	tp, err := hydrogen(t).DeleteSection(NewKey(125, 1, 451))
	require.NoError(t, err)

	_, err = tp.UpdateDirectory()
	require.ErrorIs(t, err, errs.ErrSectionNotFound)
}
