package tape

import (
	"fmt"
	"log/slog"

	"github.com/arloliu/endf/errs"
	"github.com/arloliu/endf/internal/options"
)

// DuplicatePolicy decides what the parser does when a section key shows up
// in two non-adjacent blocks of a tape.
type DuplicatePolicy uint8

const (
	// DuplicateMerge keeps a single copy of identical blocks and appends the
	// lines of a block that differs. A warning is logged in both cases.
	DuplicateMerge DuplicatePolicy = iota
	// DuplicateLastWins replaces the earlier block with the later one.
	DuplicateLastWins
	// DuplicateReject fails the parse with errs.ErrDuplicateSection.
	DuplicateReject
)

// String returns the policy name.
func (p DuplicatePolicy) String() string {
	switch p {
	case DuplicateMerge:
		return "merge"
	case DuplicateLastWins:
		return "last-wins"
	case DuplicateReject:
		return "reject"
	default:
		return "unknown"
	}
}

// ParseDuplicatePolicy parses a policy name as printed by String.
func ParseDuplicatePolicy(name string) (DuplicatePolicy, error) {
	for _, p := range []DuplicatePolicy{DuplicateMerge, DuplicateLastWins, DuplicateReject} {
		if p.String() == name {
			return p, nil
		}
	}

	return 0, fmt.Errorf("unknown duplicate policy %q", name)
}

type config struct {
	logger *slog.Logger

	duplicates DuplicatePolicy

	title            string
	titleSet         bool
	skipTitle        bool
	renumber         bool
	zeroControl      bool
	ignoreMissing    bool
	allowUnsupported bool

	description    []string
	descriptionSet bool
}

// Option configures parsing, serialization and store operations. Options
// that do not apply to an operation are ignored by it.
type Option = options.Option[*config]

func newConfig(opts []Option) (*config, error) {
	cfg := &config{duplicates: DuplicateMerge}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}

	return cfg, nil
}

// WithLogger sets the logger used for warnings about malformed titles,
// duplicate sections and incomplete directories. The default is
// slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return options.NoError(func(c *config) {
		c.logger = logger
	})
}

// WithDuplicatePolicy sets how Parse handles repeated section keys.
func WithDuplicatePolicy(p DuplicatePolicy) Option {
	return options.New(func(c *config) error {
		if p > DuplicateReject {
			return fmt.Errorf("%w: duplicate policy %d", errs.ErrInvalidField, p)
		}
		c.duplicates = p

		return nil
	})
}

// WithTitle overrides the title line written by the serializer. Text past
// column 66 is cut.
func WithTitle(title string) Option {
	return options.NoError(func(c *config) {
		c.title = title
		c.titleSet = true
		c.skipTitle = false
	})
}

// WithoutTitle makes the serializer start directly with the first section.
func WithoutTitle() Option {
	return options.NoError(func(c *config) {
		c.skipTitle = true
	})
}

// WithRenumber makes the serializer rewrite the NS column of every section
// as 1..n.
func WithRenumber() Option {
	return options.NoError(func(c *config) {
		c.renumber = true
	})
}

// WithZeroControlRecords makes the serializer fill the data columns of SEND,
// FEND, MEND and TEND records with zeros instead of blanks.
func WithZeroControlRecords() Option {
	return options.NoError(func(c *config) {
		c.zeroControl = true
	})
}

// IgnoreMissing turns a delete of an absent key into a no-op.
func IgnoreMissing() Option {
	return options.NoError(func(c *config) {
		c.ignoreMissing = true
	})
}

// AllowUnsupported makes ReadSection return a nil section instead of
// errs.ErrUnsupportedSection when no codec handles the MF/MT.
func AllowUnsupported() Option {
	return options.NoError(func(c *config) {
		c.allowUnsupported = true
	})
}

// WithDescription replaces the free-text description of every MF1/MT451
// section rewritten by UpdateDirectory.
func WithDescription(lines ...string) Option {
	return options.NoError(func(c *config) {
		c.description = lines
		c.descriptionSet = true
	})
}
