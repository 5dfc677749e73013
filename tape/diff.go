package tape

// Change describes how one section differs between two tapes.
type Change uint8

const (
	Added Change = iota + 1
	Removed
	Modified
)

// String returns a one-character marker as used by diff tools.
func (c Change) String() string {
	switch c {
	case Added:
		return "+"
	case Removed:
		return "-"
	case Modified:
		return "~"
	default:
		return "?"
	}
}

// Difference is one entry of a Diff.
type Difference struct {
	Key    Key
	Change Change
}

// Diff lists the sections that differ from t to other, in key order.
// Section texts are compared byte for byte.
func (t Tape) Diff(other Tape) []Difference {
	var diffs []Difference
	for _, k := range t.Merge(other).Keys() {
		a, inT := t.sections[k]
		b, inOther := other.sections[k]

		switch {
		case !inT:
			diffs = append(diffs, Difference{Key: k, Change: Added})
		case !inOther:
			diffs = append(diffs, Difference{Key: k, Change: Removed})
		case a != b:
			diffs = append(diffs, Difference{Key: k, Change: Modified})
		}
	}

	return diffs
}
