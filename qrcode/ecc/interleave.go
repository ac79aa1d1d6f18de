package ecc

import (
	"fmt"

	"github.com/louisgthier/image-processing/bitutil"

	imgproc "github.com/louisgthier/image-processing"
)

// Layout describes how a symbol's codewords split into Reed-Solomon blocks.
// DataCodewords holds one entry per block, shorter blocks first.
type Layout struct {
	ECCodewordsPerBlock int
	DataCodewords       []int
}

// NumDataCodewords returns the data codewords summed over all blocks.
func (l Layout) NumDataCodewords() int {
	total := 0
	for _, n := range l.DataCodewords {
		total += n
	}
	return total
}

// NumTotalCodewords returns the data and correction codewords of the symbol.
func (l Layout) NumTotalCodewords() int {
	return l.NumDataCodewords() + l.ECCodewordsPerBlock*len(l.DataCodewords)
}

// Block is one Reed-Solomon block: its data codewords followed by its
// correction codewords.
type Block struct {
	NumDataCodewords int
	Codewords        []byte
}

// Data returns the data portion of the block.
func (b Block) Data() []byte { return b.Codewords[:b.NumDataCodewords] }

// Check returns the correction portion of the block.
func (b Block) Check() []byte { return b.Codewords[b.NumDataCodewords:] }

// Protect splits a padded data stream into blocks, appends correction bytes
// to each and interleaves the result: data codewords column by column across
// blocks, then correction codewords the same way.
func (c *Codec) Protect(stream *bitutil.BitArray, layout Layout) (*bitutil.BitArray, error) {
	numDataBytes := layout.NumDataCodewords()
	if stream.SizeInBytes() != numDataBytes {
		return nil, fmt.Errorf("%w: stream holds %d bytes, layout expects %d",
			imgproc.ErrInvalidContent, stream.SizeInBytes(), numDataBytes)
	}

	blocks := make([]Block, len(layout.DataCodewords))
	maxNumDataBytes := 0
	offset := 0
	for i, n := range layout.DataCodewords {
		codewords := make([]byte, n+layout.ECCodewordsPerBlock)
		stream.ToBytes(8*offset, codewords, 0, n)
		copy(codewords[n:], c.Encode(codewords[:n], layout.ECCodewordsPerBlock))
		blocks[i] = Block{NumDataCodewords: n, Codewords: codewords}
		if n > maxNumDataBytes {
			maxNumDataBytes = n
		}
		offset += n
	}

	result := &bitutil.BitArray{}
	for i := 0; i < maxNumDataBytes; i++ {
		for _, block := range blocks {
			if i < block.NumDataCodewords {
				result.AppendBits(uint32(block.Codewords[i]), 8)
			}
		}
	}
	for i := 0; i < layout.ECCodewordsPerBlock; i++ {
		for _, block := range blocks {
			result.AppendBits(uint32(block.Check()[i]), 8)
		}
	}

	if result.SizeInBytes() != layout.NumTotalCodewords() {
		return nil, fmt.Errorf("%w: interleaved size mismatch", imgproc.ErrInvalidContent)
	}
	return result, nil
}

// Deinterleave separates interleaved codewords read from a symbol into their
// original blocks.
func Deinterleave(rawCodewords []byte, layout Layout) ([]Block, error) {
	if len(rawCodewords) < layout.NumTotalCodewords() {
		return nil, fmt.Errorf("%w: read %d codewords, layout expects %d",
			imgproc.ErrFormat, len(rawCodewords), layout.NumTotalCodewords())
	}

	result := make([]Block, len(layout.DataCodewords))
	maxData := 0
	for i, n := range layout.DataCodewords {
		result[i] = Block{
			NumDataCodewords: n,
			Codewords:        make([]byte, n+layout.ECCodewordsPerBlock),
		}
		if n > maxData {
			maxData = n
		}
	}

	offset := 0
	for i := 0; i < maxData; i++ {
		for j := range result {
			if i < result[j].NumDataCodewords {
				result[j].Codewords[i] = rawCodewords[offset]
				offset++
			}
		}
	}
	for i := 0; i < layout.ECCodewordsPerBlock; i++ {
		for j := range result {
			result[j].Codewords[result[j].NumDataCodewords+i] = rawCodewords[offset]
			offset++
		}
	}
	return result, nil
}

// Recover de-interleaves raw codewords, corrects each block and returns the
// concatenated data codewords with the total number of errors corrected.
func (c *Codec) Recover(rawCodewords []byte, layout Layout) ([]byte, int, error) {
	blocks, err := Deinterleave(rawCodewords, layout)
	if err != nil {
		return nil, 0, err
	}
	out := make([]byte, 0, layout.NumDataCodewords())
	corrected := 0
	for i, block := range blocks {
		n, err := c.Decode(block.Data(), block.Check())
		if err != nil {
			return nil, 0, fmt.Errorf("block %d: %w", i, err)
		}
		corrected += n
		out = append(out, block.Data()...)
	}
	return out, corrected, nil
}
