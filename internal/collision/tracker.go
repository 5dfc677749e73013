package collision

import "github.com/arloliu/endf/internal/hash"

// Status classifies a tracked block against the blocks seen before it.
type Status uint8

const (
	// New means the key has not been seen.
	New Status = iota
	// Identical means the key was seen with exactly the same text.
	Identical
	// Conflict means the key was seen with different text.
	Conflict
)

// Tracker detects section keys that appear in more than one block of a tape.
// Texts are compared by their xxHash64 fingerprint.
type Tracker[K comparable] struct {
	seen       map[K]uint64
	duplicates []K
}

// NewTracker creates an empty tracker.
func NewTracker[K comparable]() *Tracker[K] {
	return &Tracker[K]{seen: make(map[K]uint64)}
}

// Track records a block of text for key and reports how it relates to the
// previous block with the same key.
func (t *Tracker[K]) Track(key K, text string) Status {
	id := hash.Text(text)
	prev, ok := t.seen[key]
	t.seen[key] = id
	if !ok {
		return New
	}

	t.duplicates = append(t.duplicates, key)
	if prev == id {
		return Identical
	}

	return Conflict
}

// Duplicates returns the keys seen more than once, in the order the repeats
// were found.
func (t *Tracker[K]) Duplicates() []K {
	return t.duplicates
}

// Count returns the number of distinct keys tracked.
func (t *Tracker[K]) Count() int {
	return len(t.seen)
}

// Reset clears the tracker for reuse, keeping its map capacity.
func (t *Tracker[K]) Reset() {
	clear(t.seen)
	t.duplicates = t.duplicates[:0]
}
