package tape

import (
	"strings"

	"github.com/arloliu/endf/format"
	"github.com/arloliu/endf/section"
)

// UpdateDirectory regenerates the MF1/MT451 directory of every material:
// one record per remaining section with its current line count, the MOD
// numbers of the previous directory carried over. The header's own record
// counts 4 CONT lines, the description, the directory and itself.
//
// A section missing from the previous directory gets MOD 0 and a logged
// warning. WithDescription replaces the description text. Materials of
// GENDF and ERRORR tapes carry no directory and are left alone.
//
// Returns errs.ErrSectionNotFound when an ENDF-6 material has no header.
func (t Tape) UpdateDirectory(opts ...Option) (Tape, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return t, err
	}

	m := t.clone(0)
	for _, mat := range t.MAT() {
		kind, err := t.KindOf(mat)
		if err != nil {
			return t, err
		}
		if kind == format.KindGendf || kind == format.KindErrorr {
			continue
		}

		info, err := section.ReadInfo(t.sections[NewKey(mat, 1, section.MTInfo)])
		if err != nil {
			return t, err
		}

		if cfg.descriptionSet {
			info.Description = cfg.description
		}
		info.Records = t.directory(mat, info, cfg)

		updated, err := section.WriteInfo(info)
		if err != nil {
			return t, err
		}
		m[NewKey(mat, 1, section.MTInfo)] = updated
	}

	return t.with(m), nil
}

func (t Tape) directory(mat int, prev *section.Info, cfg *config) []section.DirectoryRecord {
	mods := make(map[Key]int, len(prev.Records))
	for _, rec := range prev.Records {
		mods[NewKey(mat, rec.MF, rec.MT)] = rec.MOD
	}

	modOf := func(k Key) int {
		mod, ok := mods[k]
		if !ok {
			cfg.logger.Warn("directory has no entry for section, using MOD 0", "key", k.String())
		}

		return mod
	}

	var records []section.DirectoryRecord
	for _, k := range t.FilterBy(ByMAT(mat)).Keys() {
		if k.MF == 1 && k.MT == section.MTInfo {
			continue
		}
		records = append(records, section.DirectoryRecord{
			MF:  k.MF,
			MT:  k.MT,
			NC:  lineCount(t.sections[k]),
			MOD: modOf(k),
		})
	}

	self := NewKey(mat, 1, section.MTInfo)
	nc := 4 + len(prev.Description) + len(records) + 1

	return append([]section.DirectoryRecord{{MF: 1, MT: section.MTInfo, NC: nc, MOD: modOf(self)}}, records...)
}

func lineCount(text string) int {
	if text == "" {
		return 0
	}

	return strings.Count(text, "\n") + 1
}
