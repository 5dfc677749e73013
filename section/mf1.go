package section

import (
	"fmt"
	"strings"

	"github.com/arloliu/endf/errs"
	"github.com/arloliu/endf/format"
	"github.com/arloliu/endf/record"
)

// MTInfo is the MT number of the descriptive header section in MF1.
const MTInfo = 451

// infoFixedLines is the number of CONT records before the description.
const infoFixedLines = 4

// DirectoryRecord is one entry of the MF1/MT451 directory: a section of the
// material with its record count and modification number.
type DirectoryRecord struct {
	MF  int
	MT  int
	NC  int
	MOD int
}

// Info is the MF1/MT451 header of a material.
type Info struct {
	MAT int

	ZA   float64
	AWR  float64
	LRP  int // LRP is the resonance-parameter flag (2 in PENDF tapes).
	LFI  int
	NLIB int
	NMOD int

	ELIS float64
	STA  float64
	LIS  int
	LISO int
	NFOR int

	AWI  float64
	EMAX float64
	LREL int
	NSUB int
	NVER int

	TEMP float64
	LDRV int

	// Description holds the NWD free-text lines, 66 columns each.
	Description []string
	// Records is the directory, one entry per section of the material.
	Records []DirectoryRecord
}

var _ Section = (*Info)(nil)

// Key implements Section.
func (s *Info) Key() (int, int, int) {
	return s.MAT, 1, MTInfo
}

// Kind classifies the tape this header belongs to from NLIB and LRP.
func (s *Info) Kind() format.Kind {
	return format.ClassifyKind(s.NLIB, s.LRP)
}

// LineCount returns the number of lines the encoded section occupies.
func (s *Info) LineCount() int {
	return infoFixedLines + len(s.Description) + len(s.Records)
}

// Record returns the directory entry for (mf, mt).
func (s *Info) Record(mf, mt int) (DirectoryRecord, bool) {
	for _, rec := range s.Records {
		if rec.MF == mf && rec.MT == mt {
			return rec, true
		}
	}

	return DirectoryRecord{}, false
}

// ReadInfo decodes an MF1/MT451 section.
func ReadInfo(text string) (*Info, error) {
	s, err := readInfo(text)
	if err != nil {
		return nil, wrapRead(1, text, err)
	}

	return s, nil
}

func readInfo(text string) (*Info, error) {
	r := record.NewReader(text)
	mat, _, _, err := r.Control()
	if err != nil {
		return nil, err
	}

	s := &Info{MAT: mat}

	head, err := r.ReadCont()
	if err != nil {
		return nil, err
	}
	s.ZA, s.AWR, s.LRP, s.LFI, s.NLIB, s.NMOD = head.C1, head.C2, head.L1, head.L2, head.N1, head.N2

	c, err := r.ReadCont()
	if err != nil {
		return nil, err
	}
	s.ELIS, s.STA, s.LIS, s.LISO, s.NFOR = c.C1, c.C2, c.L1, c.L2, c.N2

	c, err = r.ReadCont()
	if err != nil {
		return nil, err
	}
	s.AWI, s.EMAX, s.LREL, s.NSUB, s.NVER = c.C1, c.C2, c.L1, c.N1, c.N2

	c, err = r.ReadCont()
	if err != nil {
		return nil, err
	}
	s.TEMP, s.LDRV = c.C1, c.L1
	nwd, nxc := c.N1, c.N2
	if nwd < 0 || nxc < 0 {
		return nil, fmt.Errorf("%w: NWD=%d NXC=%d", errs.ErrInvalidField, nwd, nxc)
	}

	if err := r.CheckCount("NWD+NXC", nwd+nxc); err != nil {
		return nil, err
	}
	s.Description = make([]string, 0, r.CapHint(nwd))
	for range nwd {
		line, err := r.ReadText()
		if err != nil {
			return nil, err
		}
		s.Description = append(s.Description, line)
	}

	s.Records = make([]DirectoryRecord, 0, r.CapHint(nxc))
	for range nxc {
		c, err := r.ReadCont()
		if err != nil {
			return nil, err
		}
		s.Records = append(s.Records, DirectoryRecord{MF: c.L1, MT: c.L2, NC: c.N1, MOD: c.N2})
	}

	return s, nil
}

// directoryPrefix blanks the C1 and C2 columns of directory records.
var directoryPrefix = strings.Repeat(" ", 2*record.FieldWidth)

// WriteInfo encodes an MF1/MT451 section. NWD and NXC are taken from the
// lengths of Description and Records.
func WriteInfo(s *Info) (string, error) {
	w := record.NewWriter(s.MAT, 1, MTInfo)
	w.WriteCont(record.Cont{C1: s.ZA, C2: s.AWR, L1: s.LRP, L2: s.LFI, N1: s.NLIB, N2: s.NMOD})
	w.WriteCont(record.Cont{C1: s.ELIS, C2: s.STA, L1: s.LIS, L2: s.LISO, N2: s.NFOR})
	w.WriteCont(record.Cont{C1: s.AWI, C2: s.EMAX, L1: s.LREL, N1: s.NSUB, N2: s.NVER})
	w.WriteCont(record.Cont{C1: s.TEMP, L1: s.LDRV, N1: len(s.Description), N2: len(s.Records)})

	for _, line := range s.Description {
		w.WriteText(line)
	}

	for _, rec := range s.Records {
		if err := record.CheckInt(rec.NC); err != nil {
			return "", err
		}
		w.WriteText(directoryPrefix +
			record.FormatInt(rec.MF) + record.FormatInt(rec.MT) +
			record.FormatInt(rec.NC) + record.FormatInt(rec.MOD))
	}

	return w.Text()
}
