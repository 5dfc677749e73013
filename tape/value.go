package tape

import (
	"fmt"
	"math"
	"strings"

	"github.com/arloliu/endf/errs"
	"github.com/arloliu/endf/record"
)

// GetValue reads one field of one line of section k. Lines are numbered from
// 1. Integer fields (L1..N2) are returned as exact float64 values.
func (t Tape) GetValue(k Key, line int, field record.Field) (float64, error) {
	if field > record.N2 {
		return 0, fmt.Errorf("%w: %s", errs.ErrInvalidField, field)
	}

	text, err := t.Text(k)
	if err != nil {
		return 0, err
	}

	lines := strings.Split(text, "\n")
	if line < 1 || line > len(lines) {
		return 0, fmt.Errorf("%w: line %d of %s with %d lines", errs.ErrInvalidField, line, k, len(lines))
	}

	raw := field.Slice(record.DataPart(lines[line-1]))
	if field.IsFloat() {
		v, err := record.ParseFloat(raw)
		if err != nil {
			return 0, fmt.Errorf("%s line %d %s: %w", k, line, field, err)
		}

		return v, nil
	}

	n, err := record.ParseInt(raw)
	if err != nil {
		return 0, fmt.Errorf("%s line %d %s: %w", k, line, field, err)
	}

	return float64(n), nil
}

// ChangeValue returns a tape where one field of one line of section k holds
// v. C1 and C2 are written as ENDF floats; L1..N2 require an integral v.
// The rest of the line, control columns included, is left untouched.
func (t Tape) ChangeValue(k Key, line int, field record.Field, v float64) (Tape, error) {
	if field > record.N2 {
		return t, fmt.Errorf("%w: %s", errs.ErrInvalidField, field)
	}

	text, err := t.Text(k)
	if err != nil {
		return t, err
	}

	lines := strings.Split(text, "\n")
	if line < 1 || line > len(lines) {
		return t, fmt.Errorf("%w: line %d of %s with %d lines", errs.ErrInvalidField, line, k, len(lines))
	}

	var encoded string
	if field.IsFloat() {
		encoded = record.FormatFloat(v)
	} else {
		if v != math.Trunc(v) || math.Abs(v) > 1e11 {
			return t, fmt.Errorf("%w: %s needs an integer, got %g", errs.ErrInvalidField, field, v)
		}
		n := int(v)
		if err := record.CheckInt(n); err != nil {
			return t, err
		}
		encoded = record.FormatInt(n)
	}

	old := lines[line-1]
	data := record.DataPart(old)
	start := int(field) * record.FieldWidth
	data = data[:start] + encoded + data[start+record.FieldWidth:]
	if len(old) > record.DataWidth {
		data += old[record.DataWidth:]
	}
	lines[line-1] = data

	return t.AddSection(k.MAT, k.MF, k.MT, strings.Join(lines, "\n"))
}
