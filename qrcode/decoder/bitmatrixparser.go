package decoder

import (
	"fmt"

	"github.com/louisgthier/image-processing/bitutil"

	imgproc "github.com/louisgthier/image-processing"
)

// BitMatrixParser reads format information and codewords from a sampled
// module matrix. The matrix is never modified.
type BitMatrixParser struct {
	bitMatrix        *bitutil.BitMatrix
	parsedVersion    *Version
	parsedFormatInfo *FormatInformation
}

// NewBitMatrixParser creates a new parser for the given BitMatrix.
func NewBitMatrixParser(bitMatrix *bitutil.BitMatrix) (*BitMatrixParser, error) {
	dimension := bitMatrix.Height()
	if dimension != bitMatrix.Width() || dimension < 21 || (dimension&0x03) != 1 {
		return nil, fmt.Errorf("%w: %dx%d is not a symbol size", imgproc.ErrFormat,
			bitMatrix.Width(), dimension)
	}
	return &BitMatrixParser{bitMatrix: bitMatrix}, nil
}

// ReadFormatInformation reads format info from both of its locations and
// returns the nearest valid word.
func (p *BitMatrixParser) ReadFormatInformation() (*FormatInformation, error) {
	if p.parsedFormatInfo != nil {
		return p.parsedFormatInfo, nil
	}

	first, second := ReadFormatWords(p.bitMatrix)
	p.parsedFormatInfo = DecodeFormatInformation(first, second)
	if p.parsedFormatInfo != nil {
		return p.parsedFormatInfo, nil
	}
	return nil, fmt.Errorf("%w: format information unreadable", imgproc.ErrFormat)
}

// ReadFormatWords returns the raw 15-bit format words around the top-left
// finder and split between the other two finders, most significant bit first.
func ReadFormatWords(bm *bitutil.BitMatrix) (first, second int) {
	copyBit := func(x, y, acc int) int {
		if bm.Get(x, y) {
			return (acc << 1) | 0x1
		}
		return acc << 1
	}

	for i := 0; i < 6; i++ {
		first = copyBit(i, 8, first)
	}
	first = copyBit(7, 8, first)
	first = copyBit(8, 8, first)
	first = copyBit(8, 7, first)
	for j := 5; j >= 0; j-- {
		first = copyBit(8, j, first)
	}

	dimension := bm.Height()
	jMin := dimension - 7
	for j := dimension - 1; j >= jMin; j-- {
		second = copyBit(8, j, second)
	}
	for i := dimension - 8; i < dimension; i++ {
		second = copyBit(i, 8, second)
	}
	return first, second
}

// ReadVersion derives the version from the matrix side. Version information
// areas are not decoded.
func (p *BitMatrixParser) ReadVersion() (*Version, error) {
	if p.parsedVersion != nil {
		return p.parsedVersion, nil
	}
	version, err := GetVersionForDimension(p.bitMatrix.Height())
	if err != nil {
		return nil, err
	}
	p.parsedVersion = version
	return version, nil
}

// ReadCodewords reads the codewords from the bit matrix, undoing the data
// mask on every cell it visits.
func (p *BitMatrixParser) ReadCodewords() ([]byte, error) {
	version, err := p.ReadVersion()
	if err != nil {
		return nil, err
	}
	formatInfo, err := p.ReadFormatInformation()
	if err != nil {
		return nil, err
	}

	mask := DataMasks[formatInfo.DataMask]
	functionPattern := version.BuildFunctionPattern()

	result := make([]byte, version.TotalCodewords)
	resultOffset := 0
	currentByte := 0
	bitsRead := 0

	WalkDataPath(p.bitMatrix.Height(), func(x, y int) {
		if functionPattern.Get(x, y) || resultOffset >= len(result) {
			return
		}
		bitsRead++
		currentByte <<= 1
		if p.bitMatrix.Get(x, y) != mask(y, x) {
			currentByte |= 1
		}
		if bitsRead == 8 {
			result[resultOffset] = byte(currentByte)
			resultOffset++
			bitsRead = 0
			currentByte = 0
		}
	})

	if resultOffset != version.TotalCodewords {
		return nil, fmt.Errorf("%w: read %d of %d codewords", imgproc.ErrFormat,
			resultOffset, version.TotalCodewords)
	}
	return result, nil
}
