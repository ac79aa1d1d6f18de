package encoder

import (
	"fmt"

	"github.com/louisgthier/image-processing/bitutil"
	"github.com/louisgthier/image-processing/qrcode/decoder"
)

// CellTag records what a module of a symbol under construction holds.
type CellTag uint8

const (
	CellFree CellTag = iota
	CellStructural
	CellReserved
	CellData
)

func (t CellTag) String() string {
	switch t {
	case CellFree:
		return "free"
	case CellStructural:
		return "structural"
	case CellReserved:
		return "reserved"
	case CellData:
		return "data"
	}
	return "?"
}

// Position detection pattern (7x7 finder pattern)
var positionDetectionPattern = [7][7]byte{
	{1, 1, 1, 1, 1, 1, 1},
	{1, 0, 0, 0, 0, 0, 1},
	{1, 0, 1, 1, 1, 0, 1},
	{1, 0, 1, 1, 1, 0, 1},
	{1, 0, 1, 1, 1, 0, 1},
	{1, 0, 0, 0, 0, 0, 1},
	{1, 1, 1, 1, 1, 1, 1},
}

// Position adjustment pattern (5x5 alignment pattern)
var positionAdjustmentPattern = [5][5]byte{
	{1, 1, 1, 1, 1},
	{1, 0, 0, 0, 1},
	{1, 0, 1, 0, 1},
	{1, 0, 0, 0, 1},
	{1, 1, 1, 1, 1},
}

// Builder lays a symbol out on a grid of tagged modules. Every module starts
// free and is written once; structural modules are never touched again.
// Coordinates are x (column), y (row).
type Builder struct {
	version   *decoder.Version
	dimension int
	tags      []CellTag
	matrix    *bitutil.BitMatrix
}

// NewBuilder creates an empty grid sized for version.
func NewBuilder(version *decoder.Version) *Builder {
	dimension := version.DimensionForVersion()
	return &Builder{
		version:   version,
		dimension: dimension,
		tags:      make([]CellTag, dimension*dimension),
		matrix:    bitutil.NewBitMatrix(dimension),
	}
}

// Dimension returns the side of the symbol in modules.
func (b *Builder) Dimension() int { return b.dimension }

// Tag returns the tag of the module at (x, y).
func (b *Builder) Tag(x, y int) CellTag { return b.tags[y*b.dimension+x] }

// place writes a module that must still be free.
func (b *Builder) place(x, y int, dark bool, tag CellTag) {
	i := y*b.dimension + x
	if b.tags[i] != CellFree {
		panic(fmt.Sprintf("encoder: module (%d,%d) already %s", x, y, b.tags[i]))
	}
	b.tags[i] = tag
	b.matrix.SetBool(x, y, dark)
}

// PlaceFunctionPatterns places finders, separators, alignment patterns,
// timing strips and the dark module, then reserves the format strips (and
// the version areas from version 7 on).
func (b *Builder) PlaceFunctionPatterns() {
	size := b.dimension

	b.embedPositionDetectionPattern(0, 0)
	b.embedPositionDetectionPattern(size-7, 0)
	b.embedPositionDetectionPattern(0, size-7)

	b.embedHorizontalSeparator(0, 7)
	b.embedHorizontalSeparator(size-8, 7)
	b.embedHorizontalSeparator(0, size-8)

	b.embedVerticalSeparator(7, 0)
	b.embedVerticalSeparator(size-8, 0)
	b.embedVerticalSeparator(7, size-7)

	b.embedPositionAdjustmentPatterns()
	b.embedTimingPatterns()

	// Dark module at row 4v+9, column 8.
	b.place(8, size-8, true, CellStructural)

	b.reserveFormatAreas()
	if b.version.Number >= 7 {
		for i := 0; i < 6; i++ {
			for j := 0; j < 3; j++ {
				b.place(i, size-11+j, false, CellReserved)
				b.place(size-11+j, i, false, CellReserved)
			}
		}
	}
}

func (b *Builder) embedPositionDetectionPattern(xStart, yStart int) {
	for y := 0; y < 7; y++ {
		for x := 0; x < 7; x++ {
			b.place(xStart+x, yStart+y, positionDetectionPattern[y][x] == 1, CellStructural)
		}
	}
}

func (b *Builder) embedHorizontalSeparator(xStart, yStart int) {
	for x := 0; x < 8; x++ {
		b.place(xStart+x, yStart, false, CellStructural)
	}
}

func (b *Builder) embedVerticalSeparator(xStart, yStart int) {
	for y := 0; y < 7; y++ {
		b.place(xStart, yStart+y, false, CellStructural)
	}
}

func (b *Builder) embedPositionAdjustmentPatterns() {
	centers := b.version.AlignmentPatternCenters
	for _, cy := range centers {
		for _, cx := range centers {
			if b.overlapsStructure(cx-2, cy-2, 5) {
				continue
			}
			for y := 0; y < 5; y++ {
				for x := 0; x < 5; x++ {
					b.place(cx-2+x, cy-2+y, positionAdjustmentPattern[y][x] == 1, CellStructural)
				}
			}
		}
	}
}

func (b *Builder) overlapsStructure(left, top, side int) bool {
	for y := top; y < top+side; y++ {
		for x := left; x < left+side; x++ {
			if b.Tag(x, y) == CellStructural {
				return true
			}
		}
	}
	return false
}

func (b *Builder) embedTimingPatterns() {
	for i := 8; i < b.dimension-8; i++ {
		dark := i%2 == 0
		if b.Tag(i, 6) == CellFree {
			b.place(i, 6, dark, CellStructural)
		}
		if b.Tag(6, i) == CellFree {
			b.place(6, i, dark, CellStructural)
		}
	}
}

// formatCoordinates lists the (x, y) cells of both format copies, most
// significant bit first.
func formatCoordinates(size int) (first, second [15][2]int) {
	first = [15][2]int{
		{0, 8}, {1, 8}, {2, 8}, {3, 8}, {4, 8}, {5, 8}, {7, 8}, {8, 8},
		{8, 7}, {8, 5}, {8, 4}, {8, 3}, {8, 2}, {8, 1}, {8, 0},
	}
	for i := 0; i < 7; i++ {
		second[i] = [2]int{8, size - 1 - i}
	}
	for i := 0; i < 8; i++ {
		second[7+i] = [2]int{size - 8 + i, 8}
	}
	return first, second
}

func (b *Builder) reserveFormatAreas() {
	first, second := formatCoordinates(b.dimension)
	for _, coords := range [][15][2]int{first, second} {
		for _, c := range coords {
			b.place(c[0], c[1], false, CellReserved)
		}
	}
}

// PlaceData fills every free module along the data path with the next bit
// of bits, XORed with the mask. Modules left over once bits is exhausted
// carry 0 before masking.
func (b *Builder) PlaceData(bits *bitutil.BitArray, maskPattern int) {
	mask := decoder.DataMasks[maskPattern]
	bitIndex := 0
	decoder.WalkDataPath(b.dimension, func(x, y int) {
		if b.Tag(x, y) != CellFree {
			return
		}
		var bit bool
		if bitIndex < bits.Size() {
			bit = bits.Get(bitIndex)
			bitIndex++
		}
		b.place(x, y, bit != mask(y, x), CellData)
	})
}

// PlaceFormat writes the 15-bit format word for ecLevel and maskPattern into
// both reserved strips.
func (b *Builder) PlaceFormat(ecLevel decoder.ErrorCorrectionLevel, maskPattern int) {
	word := decoder.FormatBits(ecLevel, maskPattern)
	first, second := formatCoordinates(b.dimension)
	for i := 0; i < 15; i++ {
		dark := word&(1<<uint(14-i)) != 0
		for _, c := range [][2]int{first[i], second[i]} {
			if b.Tag(c[0], c[1]) != CellReserved {
				panic(fmt.Sprintf("encoder: format module (%d,%d) is %s", c[0], c[1], b.Tag(c[0], c[1])))
			}
			b.matrix.SetBool(c[0], c[1], dark)
		}
	}
}

// Matrix returns a copy of the modules placed so far.
func (b *Builder) Matrix() *bitutil.BitMatrix {
	return b.matrix.Clone()
}

// BuildMatrix lays out a complete symbol from interleaved codeword bits.
func BuildMatrix(dataBits *bitutil.BitArray, ecLevel decoder.ErrorCorrectionLevel,
	version *decoder.Version, maskPattern int) *bitutil.BitMatrix {
	b := NewBuilder(version)
	b.PlaceFunctionPatterns()
	b.PlaceFormat(ecLevel, maskPattern)
	b.PlaceData(dataBits, maskPattern)
	return b.matrix
}
