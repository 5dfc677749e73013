package tape

import (
	"fmt"
	"io"
	"strings"

	"github.com/arloliu/endf/errs"
	"github.com/arloliu/endf/internal/collision"
	"github.com/arloliu/endf/record"
)

// Parse reads a whole tape from r.
func Parse(r io.Reader, opts ...Option) (Tape, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Tape{}, fmt.Errorf("read tape: %w", err)
	}

	return ParseString(string(data), opts...)
}

// ParseBytes parses a tape held in memory.
func ParseBytes(data []byte, opts ...Option) (Tape, error) {
	return ParseString(string(data), opts...)
}

// ParseString parses the text of a tape.
//
// The first line is taken as the title unless it carries a section key. A
// title whose MAT field is not a number is logged and dropped. Lines whose
// MAT, MF or MT is not positive are control records and are discarded.
// Consecutive lines with the same key form one block; repeated keys are
// resolved by the duplicate policy. Empty input gives an empty tape.
//
// Returns errs.ErrMalformedRecord for a body line with non-numeric control
// columns, and errs.ErrDuplicateSection under DuplicateReject.
func ParseString(text string, opts ...Option) (Tape, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return Tape{}, err
	}

	p := parser{
		cfg:      cfg,
		sections: make(map[Key]string),
		tracker:  collision.NewTracker[Key](),
	}
	if err := p.run(text); err != nil {
		return Tape{}, err
	}

	return Tape{title: p.title, sections: p.sections}, nil
}

type parser struct {
	cfg      *config
	title    string
	sections map[Key]string
	tracker  *collision.Tracker[Key]

	block      []string
	blockKey   Key
	blockStart int
}

func (p *parser) run(text string) error {
	if text == "" {
		return nil
	}

	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	for i, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		lineNo := i + 1

		if i == 0 && p.takeTitle(line) {
			continue
		}
		if strings.TrimSpace(line) == "" {
			if err := p.flush(); err != nil {
				return err
			}

			continue
		}

		mat, mf, mt, err := record.ControlKey(line)
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}

		k := NewKey(mat, mf, mt)
		if !k.Valid() {
			if err := p.flush(); err != nil {
				return err
			}

			continue
		}

		if len(p.block) > 0 && k != p.blockKey {
			if err := p.flush(); err != nil {
				return err
			}
		}
		if len(p.block) == 0 {
			p.blockKey = k
			p.blockStart = lineNo
		}
		p.block = append(p.block, line)
	}

	return p.flush()
}

// takeTitle consumes the first line unless it belongs to a section.
func (p *parser) takeTitle(line string) bool {
	mat, mf, mt, err := record.ControlKey(line)
	if err != nil {
		p.cfg.logger.Warn("dropping title line with malformed MAT field",
			"line", 1, "error", err)
		p.title = strings.TrimRight(record.DataPart(line), " ")

		return true
	}
	if NewKey(mat, mf, mt).Valid() {
		return false
	}
	p.title = strings.TrimRight(record.DataPart(line), " ")

	return true
}

func (p *parser) flush() error {
	if len(p.block) == 0 {
		return nil
	}

	k := p.blockKey
	text := strings.Join(p.block, "\n")
	p.block = p.block[:0]

	switch p.tracker.Track(k, text) {
	case collision.New:
		p.sections[k] = text
		return nil
	case collision.Identical:
		if p.cfg.duplicates == DuplicateReject {
			return fmt.Errorf("%w: %s repeated at line %d", errs.ErrDuplicateSection, k, p.blockStart)
		}
		p.cfg.logger.Warn("section repeated with identical text",
			"key", k.String(), "line", p.blockStart)
	case collision.Conflict:
		switch p.cfg.duplicates {
		case DuplicateReject:
			return fmt.Errorf("%w: %s repeated at line %d", errs.ErrDuplicateSection, k, p.blockStart)
		case DuplicateLastWins:
			p.cfg.logger.Warn("section repeated with different text, keeping the last block",
				"key", k.String(), "line", p.blockStart)
			p.sections[k] = text
		default:
			p.cfg.logger.Warn("section repeated with different text, appending the block",
				"key", k.String(), "line", p.blockStart)
			p.sections[k] += "\n" + text
		}
	}

	return nil
}
