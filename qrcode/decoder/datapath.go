package decoder

// WalkDataPath calls visit for every cell of a dimension×dimension symbol in
// data placement order: two-column strides from the right edge leftwards,
// alternating upwards and downwards, right column before left, skipping the
// vertical timing column. visit receives x (column) and y (row) and is
// expected to ignore function pattern cells itself.
func WalkDataPath(dimension int, visit func(x, y int)) {
	readingUp := true
	for j := dimension - 1; j > 0; j -= 2 {
		if j == 6 {
			j--
		}
		for count := 0; count < dimension; count++ {
			i := count
			if readingUp {
				i = dimension - 1 - count
			}
			for col := 0; col < 2; col++ {
				visit(j-col, i)
			}
		}
		readingUp = !readingUp
	}
}
