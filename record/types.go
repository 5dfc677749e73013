package record

// Cont is a CONT record, also used for HEAD records: two floats and four
// integers on a single line.
type Cont struct {
	C1 float64
	C2 float64
	L1 int
	L2 int
	N1 int
	N2 int
}

// List is a LIST record: a CONT-like header whose N1 field is the number of
// items in B, followed by the items six per line.
type List struct {
	C1 float64
	C2 float64
	L1 int
	L2 int
	N2 int
	B  []float64
}

// NPL returns the number of items, written in the N1 field.
func (l List) NPL() int {
	return len(l.B)
}

// Interpolation is the (NBT, INT) table of a TAB1 or TAB2 record. Range i
// ends at point NBT[i] and is interpolated with law INT[i].
type Interpolation struct {
	NBT []int
	INT []int
}

// NR returns the number of interpolation ranges.
func (in Interpolation) NR() int {
	return len(in.NBT)
}

// LinLin returns a single lin-lin range covering np points.
func LinLin(np int) Interpolation {
	return Interpolation{NBT: []int{np}, INT: []int{2}}
}

// Tab1 is a TAB1 record: a header, an interpolation table and NP (x, y) pairs.
type Tab1 struct {
	C1     float64
	C2     float64
	L1     int
	L2     int
	Interp Interpolation
	X      []float64
	Y      []float64
}

// NP returns the number of tabulated points.
func (t Tab1) NP() int {
	return len(t.X)
}

// Tab2 is a TAB2 record: a header and an interpolation table over NZ
// subsequent records.
type Tab2 struct {
	C1     float64
	C2     float64
	L1     int
	L2     int
	NZ     int
	Interp Interpolation
}
