package record

import (
	"fmt"
	"strings"

	"github.com/arloliu/endf/errs"
)

// SendNS is the sequence number carried by section-end (SEND) records.
const SendNS = 99999

// Line is one decoded ENDF-6 line.
type Line struct {
	Data string // Data holds columns 1-66, blank-padded to DataWidth.
	MAT  int
	MF   int
	MT   int
	NS   int
}

// SplitLine decodes a raw line into its data part and control columns.
//
// Lines shorter than 80 columns are treated as blank-padded. A malformed NS
// column is ignored (NS = 0) since many tapes omit or reuse it; malformed MAT,
// MF or MT columns return ErrMalformedRecord.
func SplitLine(line string) (Line, error) {
	mat, mf, mt, err := ControlKey(line)
	if err != nil {
		return Line{}, err
	}

	ns := 0
	if len(line) > ControlWidth {
		ns, _ = ParseInt(column(line, ControlWidth, LineWidth))
	}

	return Line{
		Data: DataPart(line),
		MAT:  mat,
		MF:   mf,
		MT:   mt,
		NS:   ns,
	}, nil
}

// ControlKey decodes the MAT, MF and MT columns of a line.
func ControlKey(line string) (mat, mf, mt int, err error) {
	mat, err = ParseInt(column(line, DataWidth, DataWidth+MATWidth))
	if err != nil {
		return 0, 0, 0, fmt.Errorf("%w: MAT column: %w", errs.ErrMalformedRecord, err)
	}
	mf, err = ParseInt(column(line, DataWidth+MATWidth, DataWidth+MATWidth+MFWidth))
	if err != nil {
		return 0, 0, 0, fmt.Errorf("%w: MF column: %w", errs.ErrMalformedRecord, err)
	}
	mt, err = ParseInt(column(line, DataWidth+MATWidth+MFWidth, ControlWidth))
	if err != nil {
		return 0, 0, 0, fmt.Errorf("%w: MT column: %w", errs.ErrMalformedRecord, err)
	}

	return mat, mf, mt, nil
}

// DataPart returns columns 1-66 of a line, blank-padded to DataWidth.
func DataPart(line string) string {
	if len(line) >= DataWidth {
		return line[:DataWidth]
	}

	return line + strings.Repeat(" ", DataWidth-len(line))
}

func column(line string, start, end int) string {
	if start >= len(line) {
		return ""
	}
	if end > len(line) {
		end = len(line)
	}

	return line[start:end]
}

// FormatLine builds an 80-column line. The data part is blank-padded or cut to
// 66 columns and NS wraps modulo 100000.
func FormatLine(data string, mat, mf, mt, ns int) string {
	if len(data) > DataWidth {
		data = data[:DataWidth]
	}

	return fmt.Sprintf("%-*s%*d%*d%*d%*d",
		DataWidth, data,
		MATWidth, mat,
		MFWidth, mf,
		MTWidth, mt,
		NSWidth, ns%100000,
	)
}

// Renumber rewrites the NS column of every line of a section to 1..n.
func Renumber(text string) string {
	if text == "" {
		return text
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		mat, mf, mt, err := ControlKey(line)
		if err != nil {
			continue
		}
		lines[i] = FormatLine(DataPart(line), mat, mf, mt, i+1)
	}

	return strings.Join(lines, "\n")
}

// ZeroData is the data part of a control record written with explicit zeros.
var ZeroData = FormatFloat(0) + FormatFloat(0) + FormatInt(0) + FormatInt(0) + FormatInt(0) + FormatInt(0)

// ControlLine builds a SEND/FEND/MEND/TEND control record. With zero set, the
// data fields are written as explicit zeros; otherwise they are blank.
func ControlLine(mat, mf, mt, ns int, zero bool) string {
	data := ""
	if zero {
		data = ZeroData
	}

	return FormatLine(data, mat, mf, mt, ns)
}

// SendLine returns the section-end record (MAT, MF, 0, 99999).
func SendLine(mat, mf int, zero bool) string {
	return ControlLine(mat, mf, 0, SendNS, zero)
}

// FendLine returns the file-end record (MAT, 0, 0, 0).
func FendLine(mat int, zero bool) string {
	return ControlLine(mat, 0, 0, 0, zero)
}

// MendLine returns the material-end record (0, 0, 0, 0).
func MendLine(zero bool) string {
	return ControlLine(0, 0, 0, 0, zero)
}

// TendLine returns the tape-end record (-1, 0, 0, 0).
func TendLine(zero bool) string {
	return ControlLine(-1, 0, 0, 0, zero)
}
