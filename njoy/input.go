package njoy

import (
	"fmt"
	"strconv"
	"strings"
)

// Mode selects the product of a run.
type Mode uint8

const (
	// ModePendf stops after the pointwise stages and keeps tape30.
	ModePendf Mode = iota
	// ModeErrorr also runs ERRORR and keeps tape33.
	ModeErrorr
	// ModeAce also runs ACER and keeps the ACE file tape50 with its xsdir
	// line in tape70.
	ModeAce
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModePendf:
		return "pendf"
	case ModeErrorr:
		return "errorr"
	case ModeAce:
		return "ace"
	default:
		return "unknown"
	}
}

// Output unit numbers.
const (
	unitEndfIn   = 20
	unitEndf     = -21
	unitFirstPen = -22
	unitPendf    = 30
	unitErrorr   = 33
	unitAce      = 50
	unitXSDir    = 70
)

// OutputTape returns the file name the run's product is read from.
func (m Mode) OutputTape() string {
	switch m {
	case ModeErrorr:
		return fmt.Sprintf("tape%d", unitErrorr)
	case ModeAce:
		return fmt.Sprintf("tape%d", unitAce)
	default:
		return fmt.Sprintf("tape%d", unitPendf)
	}
}

// xsdirTape is the file ACER writes the xsdir entry to.
func xsdirTape() string {
	return fmt.Sprintf("tape%d", unitXSDir)
}

type deck struct {
	sb strings.Builder
}

func (d *deck) card(format string, args ...any) {
	fmt.Fprintf(&d.sb, format, args...)
	d.sb.WriteByte('\n')
}

func num(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += "."
	}

	return s
}

// BuildInput renders the NJOY input deck processing material mat.
//
// The ENDF tape is converted to blocked binary with MODER, reconstructed by
// RECONR, passed through the enabled stages and written to tape30 with
// MODER. ModeErrorr appends an ERRORR run writing tape33; ModeAce appends
// an ACER run writing tape50 and tape70.
func BuildInput(mat int, mode Mode, cfg Config) (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", err
	}
	if mat <= 0 {
		return "", fmt.Errorf("invalid material %d", mat)
	}

	tol := cfg.Err
	if mode == ModeErrorr {
		tol = cfg.Errorr.Err
	}
	temp := num(cfg.Temperature)
	stages := cfg.effectiveStages()

	var d deck
	d.card("moder")
	d.card("%d %d /", unitEndfIn, unitEndf)

	pendf := unitFirstPen
	d.card("reconr")
	d.card("%d %d /", unitEndf, pendf)
	d.card("'%s'/", cfg.Title)
	d.card("%d 0 0 /", mat)
	d.card("%s 0. /", num(tol))
	d.card("0/")

	// advance returns the input and output units of the next stage.
	advance := func() (int, int) {
		in := pendf
		pendf--
		return in, pendf
	}

	if stages.Broadr {
		in, out := advance()
		d.card("broadr")
		d.card("%d %d %d /", unitEndf, in, out)
		d.card("%d 1 0 0 0. /", mat)
		d.card("%s /", num(tol))
		d.card("%s /", temp)
		d.card("0 /")
	}
	if stages.Thermr {
		in, out := advance()
		d.card("thermr")
		d.card("0 %d %d /", in, out)
		d.card("0 %d 20 1 1 0 0 1 221 0 /", mat)
		d.card("%s /", temp)
		d.card("%s 4.0 /", num(tol))
	}
	if stages.Heatr {
		in, out := advance()
		d.card("heatr")
		d.card("%d %d %d /", unitEndf, in, out)
		d.card("%d 0 /", mat)
	}
	if stages.Gaspr {
		in, out := advance()
		d.card("gaspr")
		d.card("%d %d %d /", unitEndf, in, out)
	}
	if stages.Purr {
		in, out := advance()
		d.card("purr")
		d.card("%d %d %d /", unitEndf, in, out)
		d.card("%d 1 1 20 32 /", mat)
		d.card("%s /", temp)
		d.card("1.0e10 /")
		d.card("0 /")
	}
	if stages.Unresr {
		in, out := advance()
		d.card("unresr")
		d.card("%d %d %d /", unitEndf, in, out)
		d.card("%d 1 1 0 /", mat)
		d.card("%s /", temp)
		d.card("1.0e10 /")
		d.card("0 /")
	}

	d.card("moder")
	d.card("%d %d /", pendf, unitPendf)

	if mode == ModeErrorr {
		ec := cfg.Errorr
		d.card("errorr")
		d.card("%d %d 0 %d 0 /", unitEndf, pendf, unitErrorr)
		d.card("%d %d %d 0 1 /", mat, ec.IGN, ec.IWT)
		d.card("0 %s /", temp)
		d.card("0 %d /", ec.MFCov)
		if ec.IGN == 1 {
			d.card("%d /", len(ec.EK)-1)
			bounds := make([]string, len(ec.EK))
			for i, e := range ec.EK {
				bounds[i] = fmt.Sprintf("%.5e", e)
			}
			d.card("%s /", strings.Join(bounds, " "))
		}
	}

	if mode == ModeAce {
		d.card("acer")
		d.card("%d %d 0 %d %d /", unitEndf, pendf, unitAce, unitXSDir)
		d.card("1 0 1 .%02d /", cfg.Ace.Suffix)
		d.card("'%s'/", cfg.Title)
		d.card("%d %s /", mat, temp)
		d.card("1 1 /")
		d.card("/")
	}

	d.card("stop")

	return d.sb.String(), nil
}
