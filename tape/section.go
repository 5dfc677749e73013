package tape

import (
	"fmt"

	"github.com/arloliu/endf/errs"
	"github.com/arloliu/endf/section"
)

// ReadSection decodes section (mat, mf, mt) into its structured form. The
// codec registry is chosen from the material's kind, so ERRORR tapes decode
// with the ERRORR layouts.
//
// Returns errs.ErrSectionNotFound when the section is absent and
// errs.ErrUnsupportedSection when no codec handles it. With AllowUnsupported
// an unsupported section gives a nil Section and no error.
func (t Tape) ReadSection(mat, mf, mt int, opts ...Option) (section.Section, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	text, err := t.Section(mat, mf, mt)
	if err != nil {
		return nil, err
	}

	reg := t.registryFor(mat)
	if !reg.Supports(mf, mt) {
		if cfg.allowUnsupported {
			return nil, nil
		}

		return nil, fmt.Errorf("%w: %s in %s tape", errs.ErrUnsupportedSection, NewKey(mat, mf, mt), reg.Name())
	}

	return reg.Read(text)
}

// WriteSection encodes sec and returns a tape with it stored under its key.
// The directory is not updated; call UpdateDirectory afterwards.
func (t Tape) WriteSection(sec section.Section) (Tape, error) {
	if sec == nil {
		return t, fmt.Errorf("%w: nil section", errs.ErrSectionMismatch)
	}

	text, err := section.ForSection(sec).Write(sec)
	if err != nil {
		return t, err
	}

	mat, mf, mt := sec.Key()

	return t.AddSection(mat, mf, mt, text)
}
