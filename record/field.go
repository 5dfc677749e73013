package record

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/arloliu/endf/errs"
)

// Column layout of an ENDF-6 line.
const (
	FieldWidth   = 11 // FieldWidth is the width of each of the six data fields.
	NumFields    = 6  // NumFields is the number of data fields per line.
	DataWidth    = FieldWidth * NumFields
	MATWidth     = 4
	MFWidth      = 2
	MTWidth      = 3
	NSWidth      = 5
	ControlWidth = DataWidth + MATWidth + MFWidth + MTWidth
	LineWidth    = ControlWidth + NSWidth
)

// Field identifies one of the six data fields of a line.
type Field uint8

const (
	C1 Field = iota
	C2
	L1
	L2
	N1
	N2
)

func (f Field) String() string {
	switch f {
	case C1:
		return "C1"
	case C2:
		return "C2"
	case L1:
		return "L1"
	case L2:
		return "L2"
	case N1:
		return "N1"
	case N2:
		return "N2"
	default:
		return fmt.Sprintf("Field(%d)", uint8(f))
	}
}

// IsFloat reports whether the field holds a floating-point value in CONT-like
// records. C1 and C2 are floats, L1 through N2 are integers.
func (f Field) IsFloat() bool {
	return f == C1 || f == C2
}

// ParseField parses a field name such as "C1" or "n2".
func ParseField(name string) (Field, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "C1":
		return C1, nil
	case "C2":
		return C2, nil
	case "L1":
		return L1, nil
	case "L2":
		return L2, nil
	case "N1":
		return N1, nil
	case "N2":
		return N2, nil
	default:
		return 0, fmt.Errorf("%w: unknown field name %q", errs.ErrInvalidField, name)
	}
}

// Slice returns the 11 columns of field f from a line's data part. Short data
// is treated as blank-padded.
func (f Field) Slice(data string) string {
	start := int(f) * FieldWidth
	end := start + FieldWidth
	if start >= len(data) {
		return ""
	}
	if end > len(data) {
		end = len(data)
	}

	return data[start:end]
}

// ParseFloat decodes an ENDF-6 floating-point field.
//
// Blank fields decode to 0. Besides the exponent-less form ("1.001000+3"), the
// function accepts "E"/"D" exponents and plain decimals. Blanks inside the
// field are ignored. Infinities, NaN and values beyond the float64 range are
// rejected.
func ParseFloat(field string) (float64, error) {
	s := strings.ReplaceAll(field, " ", "")
	if s == "" {
		return 0, nil
	}

	if strings.ContainsAny(s, "eEdD") {
		s = strings.NewReplacer("d", "e", "D", "e").Replace(s)
	} else if i := exponentIndex(s); i > 0 {
		s = s[:i] + "e" + s[i:]
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, fmt.Errorf("%w: float %q", errs.ErrInvalidField, field)
	}

	return v, nil
}

// exponentIndex returns the position of the last sign that starts an
// exponent, or -1 when the value has no exponent.
func exponentIndex(s string) int {
	i := strings.LastIndexAny(s, "+-")
	if i <= 0 {
		return -1
	}

	return i
}

// FormatFloat encodes x as an 11-column ENDF-6 float without the exponent letter.
//
// The mantissa keeps as many digits as fit: seven significant digits for a
// one-digit exponent, six for two digits and five for three. Positive values
// start with a blank. Non-finite values are written right-aligned as Go
// formats them, which no ENDF reader accepts; callers should not store them.
func FormatFloat(x float64) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return fmt.Sprintf("%*s", FieldWidth, strconv.FormatFloat(x, 'g', -1, 64))
	}
	if x == 0 {
		return " 0.000000+0"
	}

	width := FieldWidth
	if x > 0 {
		width--
	}

	var body string
	for prec := 6; prec >= 0; prec-- {
		body = compactExponent(strconv.FormatFloat(x, 'e', prec, 64))
		if len(body) > width {
			continue
		}
		if _, err := ParseFloat(body); err != nil {
			// rounded past math.MaxFloat64
			body = compactExponent(truncateMantissa(x, prec))
		}

		break
	}

	return fmt.Sprintf("%*s", FieldWidth, body)
}

// truncateMantissa formats x like strconv's 'e' format with prec decimals,
// dropping the extra digits instead of rounding them.
func truncateMantissa(x float64, prec int) string {
	s := strconv.FormatFloat(x, 'e', 17, 64)
	e := strings.IndexByte(s, 'e')
	end := strings.IndexByte(s, '.') + 1 + prec
	if prec == 0 {
		end--
	}

	return s[:end] + s[e:]
}

// compactExponent turns Go's "1.001000e+03" into "1.001000+3".
func compactExponent(s string) string {
	i := strings.IndexByte(s, 'e')
	if i < 0 {
		return s
	}

	digits := strings.TrimLeft(s[i+2:], "0")
	if digits == "" {
		digits = "0"
	}

	return s[:i] + s[i+1:i+2] + digits
}

// ParseInt decodes an integer field; blank fields decode to 0.
func ParseInt(field string) (int, error) {
	s := strings.TrimSpace(field)
	if s == "" {
		return 0, nil
	}

	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: integer %q", errs.ErrInvalidField, field)
	}

	return v, nil
}

// FormatInt encodes n right-aligned in 11 columns. Values that need more than
// 11 columns are returned unpadded; use CheckInt to reject them beforehand.
func FormatInt(n int) string {
	return fmt.Sprintf("%*d", FieldWidth, n)
}

// CheckInt returns ErrFieldOverflow when n does not fit in an integer field.
func CheckInt(n int) error {
	if n > 99999999999 || n < -9999999999 {
		return fmt.Errorf("%w: %d", errs.ErrFieldOverflow, n)
	}

	return nil
}
