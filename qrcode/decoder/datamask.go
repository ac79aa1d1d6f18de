package decoder

// DataMaskFunc reports whether the module at (row, col) is inverted by a
// mask pattern.
type DataMaskFunc func(row, col int) bool

// DataMasks holds the eight mask patterns indexed by their 3-bit id.
var DataMasks = [8]DataMaskFunc{
	func(row, col int) bool { return (row+col)%2 == 0 },
	func(row, col int) bool { return row%2 == 0 },
	func(row, col int) bool { return col%3 == 0 },
	func(row, col int) bool { return (row+col)%3 == 0 },
	func(row, col int) bool { return (row/2+col/3)%2 == 0 },
	func(row, col int) bool { return (row*col)%2+(row*col)%3 == 0 },
	func(row, col int) bool { return ((row*col)%2+(row*col)%3)%2 == 0 },
	func(row, col int) bool { return ((row+col)%2+(row*col)%3)%2 == 0 },
}
