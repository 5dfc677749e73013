// Package record implements the ENDF-6 record codec: the fixed-column field
// encoding and the structured records (CONT, LIST, TAB1, TAB2, TEXT) that every
// section is built from.
//
// # Line Layout
//
// Every ENDF-6 line is 80 columns wide:
//
//	Columns | Width | Content
//	--------|-------|-----------------------------------------------
//	 1-66   | 6×11  | Data fields C1, C2, L1, L2, N1, N2 (or TEXT)
//	67-70   | 4     | MAT material number
//	71-72   | 2     | MF file number
//	73-75   | 3     | MT section number
//	76-80   | 5     | NS line sequence number
//
// # Numeric Fields
//
// Floating-point fields use the Fortran form without the exponent letter:
// "1.001000+3" is 1.001×10^3 and "9.991673-1" is 0.9991673. ParseFloat also
// accepts explicit exponents ("1.0E+03", "1.0D+03") and plain decimals, and
// decodes blank fields to zero. FormatFloat always produces exactly 11 columns:
//
//	FormatFloat(1001.0)    // " 1.001000+3"
//	FormatFloat(-2.5e-12)  // "-2.50000-12"
//	FormatFloat(0)         // " 0.000000+0"
//
// Integer fields are right-aligned in 11 columns; blanks decode to zero.
//
// # Structured Records
//
// A section is a sequence of records. Reader walks the lines of one section
// and decodes records in order; Writer appends records and numbers the lines:
//
//	r := record.NewReader(text)
//	head, _ := r.ReadCont()
//	xs, _ := r.ReadTab1()
//
//	w := record.NewWriter(mat, 3, 102)
//	w.WriteCont(head)
//	w.WriteTab1(xs)
//	text := w.String()
//
// Reader and Writer are exact inverses for canonically formatted sections.
package record
