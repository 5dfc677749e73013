package sectiondb

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/fxamacker/cbor/v2"
	"github.com/segmentio/ksuid"

	"github.com/arloliu/endf/errs"
	"github.com/arloliu/endf/internal/options"
	"github.com/arloliu/endf/tape"
)

// Library describes one imported tape.
type Library struct {
	Name     string    `cbor:"1,keyasint" yaml:"name"`
	ImportID string    `cbor:"2,keyasint" yaml:"import_id"`
	Imported time.Time `cbor:"3,keyasint" yaml:"imported"`
	Title    string    `cbor:"4,keyasint" yaml:"title"`
	Sections int       `cbor:"5,keyasint" yaml:"sections"`
	MAT      []int     `cbor:"6,keyasint" yaml:"mat"`
	Sum      uint64    `cbor:"7,keyasint" yaml:"sum"`
}

type config struct {
	logger *slog.Logger
	sync   bool
}

// Option configures Open.
type Option = options.Option[*config]

// WithLogger sets the logger for import and delete events. The default is
// slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return options.NoError(func(c *config) {
		c.logger = logger
	})
}

// WithSync makes every write wait for the write-ahead log to reach disk.
func WithSync() Option {
	return options.NoError(func(c *config) {
		c.sync = true
	})
}

// DB is a persistent store of named tapes, one key per section. It is safe
// for concurrent use.
type DB struct {
	db     *pebble.DB
	logger *slog.Logger
	wo     *pebble.WriteOptions
}

// Open opens or creates the database in dir.
func Open(dir string, opts ...Option) (*DB, error) {
	cfg, err := options.Build(config{}, opts...)
	if err != nil {
		return nil, err
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}

	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("open section library %s: %w", dir, err)
	}

	wo := pebble.NoSync
	if cfg.sync {
		wo = pebble.Sync
	}

	return &DB{db: db, logger: cfg.logger, wo: wo}, nil
}

// Close flushes and closes the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Import stores t under lib, replacing any tape previously stored there.
func (d *DB) Import(lib string, t tape.Tape) (Library, error) {
	if err := validateName(lib); err != nil {
		return Library{}, err
	}

	meta := Library{
		Name:     lib,
		ImportID: ksuid.New().String(),
		Imported: time.Now().UTC().Truncate(time.Second),
		Title:    t.Title(),
		Sections: t.Len(),
		MAT:      t.MAT(),
		Sum:      t.Sum(),
	}
	encoded, err := cbor.Marshal(&meta)
	if err != nil {
		return Library{}, fmt.Errorf("encode library %s: %w", lib, err)
	}

	b := d.db.NewBatch()
	defer b.Close()

	lower, upper := sectionBounds(lib)
	if err := b.DeleteRange(lower, upper, nil); err != nil {
		return Library{}, err
	}
	for k, text := range t.All() {
		if err := b.Set(sectionKey(lib, k), []byte(text), nil); err != nil {
			return Library{}, err
		}
	}
	if err := b.Set(metaKey(lib), encoded, nil); err != nil {
		return Library{}, err
	}
	if err := b.Commit(d.wo); err != nil {
		return Library{}, fmt.Errorf("import library %s: %w", lib, err)
	}

	d.logger.Info("imported library", "library", lib, "sections", meta.Sections, "import_id", meta.ImportID)

	return meta, nil
}

// Library returns the metadata of lib.
//
// Returns errs.ErrLibraryNotFound when nothing is stored under lib.
func (d *DB) Library(lib string) (Library, error) {
	if err := validateName(lib); err != nil {
		return Library{}, err
	}

	value, closer, err := d.db.Get(metaKey(lib))
	if errors.Is(err, pebble.ErrNotFound) {
		return Library{}, fmt.Errorf("%w: %s", errs.ErrLibraryNotFound, lib)
	}
	if err != nil {
		return Library{}, err
	}
	defer closer.Close()

	var meta Library
	if err := cbor.Unmarshal(value, &meta); err != nil {
		return Library{}, fmt.Errorf("decode library %s: %w", lib, err)
	}

	return meta, nil
}

// Load rebuilds the sections of lib that match f. An empty filter loads the
// whole tape, title included.
func (d *DB) Load(lib string, f tape.Filter) (tape.Tape, error) {
	meta, err := d.Library(lib)
	if err != nil {
		return tape.Tape{}, err
	}

	lower, upper := sectionBounds(lib)
	if len(f.MAT) == 1 {
		lower = sectionKey(lib, tape.NewKey(f.MAT[0], 0, 0))
		upper = sectionKey(lib, tape.NewKey(f.MAT[0]+1, 0, 0))
	}

	it, err := d.db.NewIter(&pebble.IterOptions{LowerBound: lower, UpperBound: upper})
	if err != nil {
		return tape.Tape{}, err
	}

	prefixLen := len(lib) + 2
	var entries []tape.Entry
	for it.First(); it.Valid(); it.Next() {
		k, err := decodeSectionKey(it.Key(), prefixLen)
		if err != nil {
			_ = it.Close()
			return tape.Tape{}, err
		}
		if !f.Match(k) {
			continue
		}
		entries = append(entries, tape.Entry{Key: k, Text: string(it.Value())})
	}
	if err := it.Close(); err != nil {
		return tape.Tape{}, err
	}

	t, err := tape.New(entries...)
	if err != nil {
		return tape.Tape{}, err
	}

	return t.SetTitle(meta.Title), nil
}

// Delete removes lib and all its sections.
//
// Returns errs.ErrLibraryNotFound when nothing is stored under lib.
func (d *DB) Delete(lib string) error {
	if _, err := d.Library(lib); err != nil {
		return err
	}

	b := d.db.NewBatch()
	defer b.Close()

	lower, upper := sectionBounds(lib)
	if err := b.DeleteRange(lower, upper, nil); err != nil {
		return err
	}
	if err := b.Delete(metaKey(lib), nil); err != nil {
		return err
	}
	if err := b.Commit(d.wo); err != nil {
		return fmt.Errorf("delete library %s: %w", lib, err)
	}

	d.logger.Info("deleted library", "library", lib)

	return nil
}

// Libraries lists every stored library ordered by name; metadata keys sort
// bytewise by name.
func (d *DB) Libraries() ([]Library, error) {
	it, err := d.db.NewIter(&pebble.IterOptions{
		LowerBound: []byte{metaPrefix},
		UpperBound: []byte{metaPrefix + 1},
	})
	if err != nil {
		return nil, err
	}

	var libs []Library
	for it.First(); it.Valid(); it.Next() {
		var meta Library
		if err := cbor.Unmarshal(it.Value(), &meta); err != nil {
			_ = it.Close()
			return nil, fmt.Errorf("decode library %s: %w", it.Key()[1:], err)
		}
		libs = append(libs, meta)
	}
	if err := it.Close(); err != nil {
		return nil, err
	}

	return libs, nil
}
