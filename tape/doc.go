// Package tape implements the ENDF-6 section store: an immutable mapping from
// (MAT, MF, MT) keys to the verbatim text of each section, together with the
// parser that builds it from a tape and the serializer that writes it back.
//
// # Parsing
//
//	t, err := tape.ParseString(text)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(t.MAT(), t.Len())
//
// The first line of a tape is its title. Control records (SEND, FEND, MEND,
// TEND) are recognized by a zero or negative MAT, MF or MT and are dropped;
// the serializer regenerates them.
//
// # Value semantics
//
// A Tape is never modified in place. Every mutator returns a new Tape and the
// receiver keeps its sections, so a Tape can be shared between goroutines
// without locking:
//
//	t2, err := t.AddSection(125, 3, 1, text)
//	// t still holds the old MF3/MT1 section
//
// # Structured access
//
// ReadSection decodes a section into the struct of its MF family from package
// section, and WriteSection stores the encoded form back. UpdateDirectory
// regenerates the MF1/MT451 directory after sections were added or removed.
//
// # Files
//
// ReadFile and WriteFile choose a compression codec from the file extension
// (.zst, .s2, .lz4). FromBytes also recognizes zip archives holding a tape.
package tape
