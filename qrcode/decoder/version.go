package decoder

import (
	"fmt"

	"github.com/louisgthier/image-processing/bitutil"
	"github.com/louisgthier/image-processing/qrcode/ecc"

	imgproc "github.com/louisgthier/image-processing"
)

const (
	// MaxVersion is the largest version the reader accepts. Every version up
	// to it shares the same character count widths.
	MaxVersion = 9
	// MaxEncodeVersion is the largest version the encoder produces.
	MaxEncodeVersion = 6
)

// ECB represents a single error-correction block specification.
type ECB struct {
	Count         int
	DataCodewords int
}

// ECBlocks represents a set of error-correction blocks for one EC level.
type ECBlocks struct {
	ECCodewordsPerBlock int
	Blocks              []ECB
}

// NumBlocks returns the total number of blocks.
func (ecb *ECBlocks) NumBlocks() int {
	total := 0
	for _, b := range ecb.Blocks {
		total += b.Count
	}
	return total
}

// TotalECCodewords returns the total number of error-correction codewords.
func (ecb *ECBlocks) TotalECCodewords() int {
	return ecb.ECCodewordsPerBlock * ecb.NumBlocks()
}

// NumDataCodewords returns the data codewords summed over all blocks.
func (ecb *ECBlocks) NumDataCodewords() int {
	total := 0
	for _, b := range ecb.Blocks {
		total += b.Count * b.DataCodewords
	}
	return total
}

// Version represents a QR code version.
type Version struct {
	Number                  int
	AlignmentPatternCenters []int
	ECBlocksArray           [4]ECBlocks // L, M, Q, H
	TotalCodewords          int
}

// DimensionForVersion returns the module dimension for this version.
func (v *Version) DimensionForVersion() int {
	return 17 + 4*v.Number
}

// ECBlocksForLevel returns the ECBlocks for the given error correction level.
func (v *Version) ECBlocksForLevel(ecLevel ErrorCorrectionLevel) *ECBlocks {
	return &v.ECBlocksArray[int(ecLevel)]
}

// Layout flattens the block table for ecLevel into the form the ECC bridge
// consumes.
func (v *Version) Layout(ecLevel ErrorCorrectionLevel) ecc.Layout {
	ecBlocks := v.ECBlocksForLevel(ecLevel)
	data := make([]int, 0, ecBlocks.NumBlocks())
	for _, block := range ecBlocks.Blocks {
		for i := 0; i < block.Count; i++ {
			data = append(data, block.DataCodewords)
		}
	}
	return ecc.Layout{ECCodewordsPerBlock: ecBlocks.ECCodewordsPerBlock, DataCodewords: data}
}

// DataBits returns the length of the padded data stream at ecLevel.
func (v *Version) DataBits(ecLevel ErrorCorrectionLevel) int {
	return 8 * v.ECBlocksForLevel(ecLevel).NumDataCodewords()
}

// Capacity returns the number of characters of the given mode that fit in a
// single segment at ecLevel.
func (v *Version) Capacity(ecLevel ErrorCorrectionLevel, mode Mode) int {
	countBits, err := mode.CharacterCountBits(v)
	if err != nil {
		return 0
	}
	available := v.DataBits(ecLevel) - 4 - countBits
	if available < 0 {
		return 0
	}
	switch mode {
	case ModeAlphanumeric:
		n := (available / 11) * 2
		if available%11 >= 6 {
			n++
		}
		return n
	case ModeByte:
		return available / 8
	}
	return 0
}

// BuildFunctionPattern builds a BitMatrix indicating function pattern modules.
func (v *Version) BuildFunctionPattern() *bitutil.BitMatrix {
	dimension := v.DimensionForVersion()
	bm := bitutil.NewBitMatrix(dimension)

	// Top left finder pattern + separator + format
	bm.SetRegion(0, 0, 9, 9)
	// Top right finder pattern + separator + format
	bm.SetRegion(dimension-8, 0, 8, 9)
	// Bottom left finder pattern + separator + format
	bm.SetRegion(0, dimension-8, 9, 8)

	// Alignment patterns
	max := len(v.AlignmentPatternCenters)
	for x := 0; x < max; x++ {
		i := v.AlignmentPatternCenters[x] - 2
		for y := 0; y < max; y++ {
			if (x != 0 || (y != 0 && y != max-1)) && (x != max-1 || y != 0) {
				bm.SetRegion(v.AlignmentPatternCenters[y]-2, i, 5, 5)
			}
		}
	}

	// Vertical timing pattern
	bm.SetRegion(6, 9, 1, dimension-17)
	// Horizontal timing pattern
	bm.SetRegion(9, 6, dimension-17, 1)

	if v.Number > 6 {
		// Version info, top right
		bm.SetRegion(dimension-11, 0, 3, 6)
		// Version info, bottom left
		bm.SetRegion(0, dimension-11, 6, 3)
	}

	return bm
}

// String returns the version number.
func (v *Version) String() string {
	return fmt.Sprintf("%d", v.Number)
}

// GetVersionForNumber returns the Version for the given version number.
// Numbers in 10..40 are valid QR Code versions this package cannot read.
func GetVersionForNumber(number int) (*Version, error) {
	if number < 1 || number > 40 {
		return nil, errInvalidVersion
	}
	if number > MaxVersion {
		return nil, fmt.Errorf("%w: version %d", imgproc.ErrUnsupportedMode, number)
	}
	return &versions[number-1], nil
}

// GetVersionForDimension returns the Version for a symbol of the given side.
func GetVersionForDimension(dimension int) (*Version, error) {
	if dimension < 21 || dimension%4 != 1 {
		return nil, fmt.Errorf("%w: invalid dimension %d", imgproc.ErrFormat, dimension)
	}
	return GetVersionForNumber((dimension - 17) / 4)
}

// ChooseVersion returns the smallest version up to maxVersion whose capacity
// at ecLevel holds length characters of mode.
func ChooseVersion(length int, ecLevel ErrorCorrectionLevel, mode Mode, maxVersion int) (*Version, bool) {
	for n := 1; n <= maxVersion && n <= MaxVersion; n++ {
		v := &versions[n-1]
		if v.Capacity(ecLevel, mode) >= length {
			return v, true
		}
	}
	return nil, false
}

func newVersion(number int, align []int, l, m, q, h ECBlocks) Version {
	v := Version{
		Number:                  number,
		AlignmentPatternCenters: align,
		ECBlocksArray:           [4]ECBlocks{l, m, q, h},
	}
	total := 0
	ecCodewords := l.ECCodewordsPerBlock
	for _, block := range l.Blocks {
		total += block.Count * (block.DataCodewords + ecCodewords)
	}
	v.TotalCodewords = total
	return v
}

func eb(ecCW int, blocks ...ECB) ECBlocks {
	return ECBlocks{ECCodewordsPerBlock: ecCW, Blocks: blocks}
}

func b(count, dataCodewords int) ECB {
	return ECB{Count: count, DataCodewords: dataCodewords}
}

// versions holds the readable range, 1 through MaxVersion.
var versions = [MaxVersion]Version{
	newVersion(1, nil, eb(7, b(1, 19)), eb(10, b(1, 16)), eb(13, b(1, 13)), eb(17, b(1, 9))),
	newVersion(2, []int{6, 18}, eb(10, b(1, 34)), eb(16, b(1, 28)), eb(22, b(1, 22)), eb(28, b(1, 16))),
	newVersion(3, []int{6, 22}, eb(15, b(1, 55)), eb(26, b(1, 44)), eb(18, b(2, 17)), eb(22, b(2, 13))),
	newVersion(4, []int{6, 26}, eb(20, b(1, 80)), eb(18, b(2, 32)), eb(26, b(2, 24)), eb(16, b(4, 9))),
	newVersion(5, []int{6, 30}, eb(26, b(1, 108)), eb(24, b(2, 43)), eb(18, b(2, 15), b(2, 16)), eb(22, b(2, 11), b(2, 12))),
	newVersion(6, []int{6, 34}, eb(18, b(2, 68)), eb(16, b(4, 27)), eb(24, b(4, 19)), eb(28, b(4, 15))),
	newVersion(7, []int{6, 22, 38}, eb(20, b(2, 78)), eb(18, b(4, 31)), eb(18, b(2, 14), b(4, 15)), eb(26, b(4, 13), b(1, 14))),
	newVersion(8, []int{6, 24, 42}, eb(24, b(2, 97)), eb(22, b(2, 38), b(2, 39)), eb(22, b(4, 18), b(2, 19)), eb(26, b(4, 14), b(2, 15))),
	newVersion(9, []int{6, 26, 46}, eb(30, b(2, 116)), eb(22, b(3, 36), b(2, 37)), eb(20, b(4, 16), b(4, 17)), eb(24, b(4, 12), b(4, 13))),
}
