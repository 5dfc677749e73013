package tape

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	zaH  = " 1.001000+3"
	awrH = " 9.991673-1"
	zaD  = " 1.002000+3"
	awrD = " 1.996800+0"
	zero = " 0.000000+0"
)

// lines builds canonical section text from data parts.
func lines(mat, mf, mt int, data ...string) string {
	out := make([]string, len(data))
	for i, d := range data {
		out[i] = fmt.Sprintf("%-66s%4d%2d%3d%5d", d, mat, mf, mt, i+1)
	}

	return strings.Join(out, "\n")
}

// row builds a CONT-shaped data part; empty float fields are left blank.
func row(c1, c2 string, vals ...int) string {
	var sb strings.Builder
	for _, f := range []string{c1, c2} {
		if f == "" {
			f = strings.Repeat(" ", 11)
		}
		sb.WriteString(f)
	}
	for _, n := range vals {
		fmt.Fprintf(&sb, "%11d", n)
	}

	return sb.String()
}

func ints(vals ...int) string {
	var sb strings.Builder
	for _, n := range vals {
		fmt.Fprintf(&sb, "%11d", n)
	}

	return sb.String()
}

// xs builds a two-point MF3 section.
func xs(mat, mt int, za, awr, q, y1, y2 string) Entry {
	return Entry{Key: NewKey(mat, 3, mt), Text: lines(mat, 3, mt,
		row(za, awr, 0, 0, 0, 0),
		row(q, q, 0, 0, 1, 2),
		ints(2, 2),
		" 1.000000-5"+y1+" 2.000000+7"+y2,
	)}
}

// withHeader prepends an MF1/MT451 section whose directory matches body.
// body must be sorted by key.
func withHeader(mat int, za, awr string, lrp, nlib int, body []Entry) []Entry {
	const nwd = 1
	head := []string{
		row(za, awr, lrp, 0, nlib, 5),
		row(zero, zero, 0, 0, 0, 6),
		row(" 1.000000+0", " 2.000000+7", 0, 0, 10, 8),
		row(zero, zero, 0, 0, nwd, len(body)+1),
		fmt.Sprintf(" MAT %d test evaluation", mat),
		row("", "", 1, 451, 4+nwd+len(body)+1, 0),
	}
	for _, e := range body {
		head = append(head, row("", "", e.Key.MF, e.Key.MT, strings.Count(e.Text, "\n")+1, 0))
	}

	header := Entry{Key: NewKey(mat, 1, 451), Text: lines(mat, 1, 451, head...)}

	return append([]Entry{header}, body...)
}

func hydrogenEntries(lrp int) []Entry {
	return withHeader(125, zaH, awrH, lrp, 0, []Entry{
		{Key: NewKey(125, 2, 151), Text: lines(125, 2, 151,
			row(zaH, awrH, 0, 0, 1, 0),
			row(zaH, " 1.000000+0", 0, 0, 1, 0),
			row(" 1.000000-5", " 1.000000+5", 0, 0, 0, 0),
			row(" 5.000000-1", " 1.276553+0", 0, 0, 0, 0),
		)},
		xs(125, 1, zaH, awrH, zero, " 3.720000+1", " 4.800000-1"),
		xs(125, 2, zaH, awrH, zero, " 2.043634+1", " 4.800000-1"),
		xs(125, 102, zaH, awrH, " 2.224648+6", " 1.672869+1", " 2.800000-5"),
		{Key: NewKey(125, 4, 2), Text: lines(125, 4, 2,
			row(zaH, awrH, 0, 1, 0, 0),
			row(zero, awrH, 0, 2, 0, 0),
			row(zero, zero, 0, 0, 1, 2),
			ints(2, 2),
			row(zero, " 1.000000-5", 0, 0, 2, 0),
			" 1.000000-3 2.000000-4",
			row(zero, " 2.000000+7", 0, 0, 2, 0),
			" 5.000000-2 1.000000-2",
		)},
		{Key: NewKey(125, 6, 102), Text: lines(125, 6, 102,
			row(zaH, awrH, 0, 2, 1, 0),
			row(" 1.000000+0", zero, 0, 1, 1, 2),
		)},
	})
}

func deuteriumEntries() []Entry {
	return withHeader(128, zaD, awrD, 1, 0, []Entry{
		xs(128, 1, zaD, awrD, zero, " 3.400000+0", " 2.100000-1"),
		xs(128, 2, zaD, awrD, zero, " 3.390000+0", " 2.000000-1"),
		xs(128, 102, zaD, awrD, " 6.257230+6", " 1.000000-1", " 5.000000-6"),
	})
}

func hydrogen(t testing.TB) Tape {
	t.Helper()

	tp, err := New(hydrogenEntries(1)...)
	require.NoError(t, err)

	return tp.SetTitle(" hydrogen test tape")
}

func hydrogenPendf(t testing.TB) Tape {
	t.Helper()

	entries := withHeader(125, zaH, awrH, 2, 0, []Entry{
		xs(125, 1, zaH, awrH, zero, " 3.700000+1", " 4.700000-1"),
		xs(125, 2, zaH, awrH, zero, " 2.040000+1", " 4.700000-1"),
		xs(125, 102, zaH, awrH, " 2.224648+6", " 1.670000+1", " 2.700000-5"),
	})
	tp, err := New(entries...)
	require.NoError(t, err)

	return tp
}

func deuterium(t testing.TB) Tape {
	t.Helper()

	tp, err := New(deuteriumEntries()...)
	require.NoError(t, err)

	return tp
}

// captureLogs returns a logger writing text records into the returned buffer.
func captureLogs() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, nil)), &buf
}
