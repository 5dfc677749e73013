package snapshot

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/endf/errs"
	"github.com/arloliu/endf/format"
	"github.com/arloliu/endf/record"
	"github.com/arloliu/endf/tape"
)

func entry(mat, mf, mt int, rows ...string) tape.Entry {
	var text string
	for i, r := range rows {
		if i > 0 {
			text += "\n"
		}
		text += record.FormatLine(r, mat, mf, mt, i+1)
	}

	return tape.Entry{Key: tape.NewKey(mat, mf, mt), Text: text}
}

func sampleTape(t *testing.T) tape.Tape {
	t.Helper()

	tp, err := tape.New(
		entry(125, 1, 451, " 1.001000+3 9.991673-1          1          0          0          5"),
		entry(125, 3, 1,
			" 1.001000+3 9.991673-1          0          0          0          0",
			" 0.000000+0 0.000000+0          0          0          1          2",
			"          2          2",
			" 1.000000-5 3.720000+1 2.000000+7 4.800000-1",
		),
		entry(128, 3, 2, " 1.002000+3 1.996800+0          0          0          0          0"),
	)
	require.NoError(t, err)

	return tp.SetTitle(" snapshot test tape")
}

func TestRoundTrip(t *testing.T) {
	tp := sampleTape(t)

	for _, ct := range []format.CompressionType{
		format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4,
	} {
		t.Run(ct.String(), func(t *testing.T) {
			data, err := Encode(tp, WithCompression(ct))
			require.NoError(t, err)
			require.Equal(t, []byte("ESNP"), data[:4])
			require.Equal(t, byte(ct), data[5])

			back, err := Decode(data)
			require.NoError(t, err)
			require.True(t, tp.Equal(back))
			require.Equal(t, tp.Title(), back.Title())
		})
	}
}

func TestEncode_Deterministic(t *testing.T) {
	a, err := Encode(sampleTape(t))
	require.NoError(t, err)

	entries := sampleTape(t).Entries()
	reversed := make([]tape.Entry, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		reversed = append(reversed, entries[i])
	}
	tp, err := tape.New(reversed...)
	require.NoError(t, err)

	b, err := Encode(tp.SetTitle(" snapshot test tape"))
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestSum(t *testing.T) {
	tp := sampleTape(t)
	require.Equal(t, Sum(tp), Sum(tp.SetTitle("another title")))
	require.Len(t, Sum(tp).String(), 64)

	other, err := tp.DeleteSection(tape.NewKey(128, 3, 2))
	require.NoError(t, err)
	require.NotEqual(t, Sum(tp), Sum(other))

	require.NotEqual(t, Sum(tape.Tape{}), Sum(tp))
}

func TestDecode_Tampered(t *testing.T) {
	data, err := Encode(sampleTape(t), WithCompression(format.CompressionNone))
	require.NoError(t, err)

	tampered := bytes.Replace(data, []byte("3.720000+1"), []byte("3.720000+2"), 1)
	require.NotEqual(t, data, tampered)

	_, err = Decode(tampered)
	require.ErrorIs(t, err, errs.ErrDigestMismatch)
}

func TestDecode_Invalid(t *testing.T) {
	valid, err := Encode(sampleTape(t), WithCompression(format.CompressionNone))
	require.NoError(t, err)

	badVersion := bytes.Clone(valid)
	badVersion[4] = 9
	badCodec := bytes.Clone(valid)
	badCodec[5] = 0x7f

	tests := map[string][]byte{
		"empty":       nil,
		"short":       []byte("ESN"),
		"wrong magic": []byte("XXXX\x01\x01"),
		"header only": []byte(magic + "\x01\x01"),
		"bad version": badVersion,
		"bad codec":   badCodec,
		"truncated":   valid[:len(valid)-3],
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(data)
			require.ErrorIs(t, err, errs.ErrInvalidSnapshot)
		})
	}
}

func TestInspect(t *testing.T) {
	tp := sampleTape(t)
	data, err := Encode(tp, WithCompression(format.CompressionS2))
	require.NoError(t, err)

	info, err := Inspect(data)
	require.NoError(t, err)
	require.Equal(t, Info{
		Version:     Version,
		Compression: format.CompressionS2,
		Title:       tp.Title(),
		Sections:    3,
		Digest:      Sum(tp),
	}, info)
}

func TestWithCompression_Invalid(t *testing.T) {
	_, err := Encode(sampleTape(t), WithCompression(format.CompressionType(0)))
	require.Error(t, err)
}

func BenchmarkEncode(b *testing.B) {
	var entries []tape.Entry
	for mt := 1; mt <= 200; mt++ {
		rows := make([]string, 40)
		for i := range rows {
			rows[i] = fmt.Sprintf(" 1.000000-5 %10.4e 2.000000+7 4.800000-1", float64(i*mt))
		}
		entries = append(entries, entry(9237, 3, mt, rows...))
	}
	tp, err := tape.New(entries...)
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	for b.Loop() {
		if _, err := Encode(tp); err != nil {
			b.Fatal(err)
		}
	}
}
