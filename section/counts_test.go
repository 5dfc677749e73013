package section

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/endf/errs"
)

// huge is a count that fits the 11-column field but no section can hold.
const huge = 99999999999

func TestRead_MalformedCounts(t *testing.T) {
	const (
		zaU  = " 9.223500+4"
		awrU = " 2.330248+2"
		e0   = " 2.530000-2"
	)
	info := func(nwd, nxc int) string {
		return lines(125, 1, 451,
			row(zaH, awrH, 1, 0, 0, 5),
			row(zero, zero, 0, 0, 0, 6),
			row(" 1.000000+0", " 2.000000+7", 0, 0, 10, 8),
			row(zero, zero, 0, 0, nwd, nxc),
		)
	}
	legendre := func(nz int, tail ...string) string {
		return lines(125, 4, 2, append([]string{
			row(zaH, awrH, 0, 1, 0, 0),
			row(zero, awrH, 0, 2, 0, 0),
			row(zero, zero, 0, 0, 1, nz),
			ints(1, 2),
		}, tail...)...)
	}
	decay := func(nsp, ndk int, tail ...string) string {
		return lines(3525, 8, 457, append([]string{
			row(" 3.504500+4", " 3.461200+1", 0, 0, 0, nsp),
			row(" 1.000000+3", zero, 0, 0, 0, 0),
			row(zero, zero, 0, 0, 0, ndk),
		}, tail...)...)
	}

	cases := map[string]struct {
		text string
		read func(string) error
	}{
		"MF1 negative NWD": {
			text: info(-1, 2),
			read: func(s string) error { _, err := ReadInfo(s); return err },
		},
		"MF1 oversized NXC": {
			text: info(0, huge),
			read: func(s string) error { _, err := ReadInfo(s); return err },
		},
		"MF3 negative NP": {
			text: lines(125, 3, 1, row(zaH, awrH, 0, 0, 0, 0), row(zero, zero, 0, 0, 1, -2), ints(2, 2)),
			read: func(s string) error { _, err := ReadCrossSection(s); return err },
		},
		"MF3 oversized NP": {
			text: lines(125, 3, 1, row(zaH, awrH, 0, 0, 0, 0), row(zero, zero, 0, 0, 1, huge), ints(2, 2)),
			read: func(s string) error { _, err := ReadCrossSection(s); return err },
		},
		"MF3 oversized NR": {
			text: lines(125, 3, 1, row(zaH, awrH, 0, 0, 0, 0), row(zero, zero, 0, 0, huge, 2)),
			read: func(s string) error { _, err := ReadCrossSection(s); return err },
		},
		"MF4 negative NZ": {
			text: legendre(-1),
			read: func(s string) error { _, err := ReadAngularDistribution(s); return err },
		},
		"MF4 oversized NZ": {
			text: legendre(huge),
			read: func(s string) error { _, err := ReadAngularDistribution(s); return err },
		},
		"MF4 negative NL": {
			text: legendre(1, row(zero, " 1.000000-5", 0, 0, -3, 0)),
			read: func(s string) error { _, err := ReadAngularDistribution(s); return err },
		},
		"MF4 oversized NL": {
			text: legendre(1, row(zero, " 1.000000-5", 0, 0, huge, 0)),
			read: func(s string) error { _, err := ReadAngularDistribution(s); return err },
		},
		"MF8 negative LE+1": {
			text: lines(9228, 8, 454, row(zaU, awrU, -1, 0, 0, 0)),
			read: func(s string) error { _, err := ReadFissionYields(s); return err },
		},
		"MF8 oversized LE+1": {
			text: lines(9228, 8, 454, row(zaU, awrU, huge, 0, 0, 0)),
			read: func(s string) error { _, err := ReadFissionYields(s); return err },
		},
		"MF8 negative NFP": {
			text: lines(9228, 8, 454, row(zaU, awrU, 1, 0, 0, 0), row(e0, zero, 0, 0, 0, -1)),
			read: func(s string) error { _, err := ReadFissionYields(s); return err },
		},
		"MF8/457 negative NDK": {
			text: decay(0, -1),
			read: func(s string) error { _, err := ReadDecayData(s); return err },
		},
		"MF8/457 negative NSP": {
			text: decay(-1, 0),
			read: func(s string) error { _, err := ReadDecayData(s); return err },
		},
		"MF8/457 oversized NSP": {
			text: decay(huge, 0),
			read: func(s string) error { _, err := ReadDecayData(s); return err },
		},
		"MF8/457 negative NER": {
			text: decay(1, 0,
				row(zero, zero, 0, 0, 6, -1),
				" 1.000000+0 0.000000+0 0.000000+0 0.000000+0 0.000000+0 0.000000+0",
			),
			read: func(s string) error { _, err := ReadDecayData(s); return err },
		},
		"MF33 negative NL": {
			text: lines(125, 33, 1, row(zaH, awrH, 0, 1, 0, -1)),
			read: func(s string) error { _, err := ReadCovariance(s); return err },
		},
		"MF33 oversized NI": {
			text: lines(125, 33, 1, row(zaH, awrH, 0, 1, 0, 1), row(zero, zero, 0, 1, 0, huge)),
			read: func(s string) error { _, err := ReadCovariance(s); return err },
		},
		"MF35 negative NK": {
			text: lines(125, 35, 18, row(zaH, awrH, 0, 0, -1, 0)),
			read: func(s string) error { _, err := ReadEnergyCovariance(s); return err },
		},
		"ERRORR negative NG": {
			text: lines(125, 33, 1, row(zaH, awrH, 0, 0, 0, 1), row(zero, zero, 125, 1, 0, -1)),
			read: func(s string) error { _, err := ReadGroupCovariance(s); return err },
		},
		"ERRORR oversized boundaries": {
			text: lines(125, 1, 451, row(zaH, awrH, 0, 0, -11, 0), row(zero, zero, 2, 0, huge, 0)),
			read: func(s string) error { _, err := ReadGroupStructure(s); return err },
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			var err error
			require.NotPanics(t, func() { err = tc.read(tc.text) })
			require.ErrorIs(t, err, errs.ErrInvalidField)
		})
	}
}
