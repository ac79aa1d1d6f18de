// Package bitutil provides the bit containers used while building and
// reading QR Code symbols.
package bitutil

import "strings"

const loadFactor = 0.75

// BitArray is a growable sequence of bits packed into uint32 words. Bit 0 is
// the first bit appended.
type BitArray struct {
	bits []uint32
	size int
}

// NewBitArrayFromBytes creates a BitArray holding every bit of b, most
// significant bit of each byte first.
func NewBitArrayFromBytes(b []byte) *BitArray {
	ba := &BitArray{}
	ba.AppendBytes(b)
	return ba
}

// Size returns the number of bits in the array.
func (ba *BitArray) Size() int {
	return ba.size
}

// SizeInBytes returns the number of bytes needed to hold the bits.
func (ba *BitArray) SizeInBytes() int {
	return (ba.size + 7) / 8
}

func (ba *BitArray) ensureCapacity(newSize int) {
	if newSize > len(ba.bits)*32 {
		newBits := makeArray(int(float64(newSize) / loadFactor))
		copy(newBits, ba.bits)
		ba.bits = newBits
	}
}

// Get returns true if bit i is set.
func (ba *BitArray) Get(i int) bool {
	return (ba.bits[i/32] & (1 << uint(i&0x1F))) != 0
}

// AppendBit appends a single bit.
func (ba *BitArray) AppendBit(bit bool) {
	ba.ensureCapacity(ba.size + 1)
	if bit {
		ba.bits[ba.size/32] |= 1 << uint(ba.size&0x1F)
	}
	ba.size++
}

// AppendBits appends the least-significant numBits bits of value, from most
// significant to least significant.
func (ba *BitArray) AppendBits(value uint32, numBits int) {
	if numBits < 0 || numBits > 32 {
		panic("bitarray: numBits must be between 0 and 32")
	}
	nextSize := ba.size
	ba.ensureCapacity(nextSize + numBits)
	for numBitsLeft := numBits - 1; numBitsLeft >= 0; numBitsLeft-- {
		if (value & (1 << uint(numBitsLeft))) != 0 {
			ba.bits[nextSize/32] |= 1 << uint(nextSize&0x1F)
		}
		nextSize++
	}
	ba.size = nextSize
}

// AppendBytes appends every byte of b, most significant bit first.
func (ba *BitArray) AppendBytes(b []byte) {
	ba.ensureCapacity(ba.size + 8*len(b))
	for _, v := range b {
		ba.AppendBits(uint32(v), 8)
	}
}

// ToBytes packs numBytes bytes starting at bitOffset into array[offset:],
// most significant bit first. Bits past the end read as zero.
func (ba *BitArray) ToBytes(bitOffset int, array []byte, offset, numBytes int) {
	for i := 0; i < numBytes; i++ {
		theByte := byte(0)
		for j := 0; j < 8; j++ {
			if bitOffset < ba.size && ba.Get(bitOffset) {
				theByte |= 1 << uint(7-j)
			}
			bitOffset++
		}
		array[offset+i] = theByte
	}
}

// Bytes packs the whole array into bytes, zero-filling the last one.
func (ba *BitArray) Bytes() []byte {
	out := make([]byte, ba.SizeInBytes())
	ba.ToBytes(0, out, 0, len(out))
	return out
}

// String returns a representation using 'X' for set and '.' for unset bits,
// grouped by byte.
func (ba *BitArray) String() string {
	var sb strings.Builder
	sb.Grow(ba.size + ba.size/8 + 1)
	for i := 0; i < ba.size; i++ {
		if i&0x07 == 0 {
			sb.WriteByte(' ')
		}
		if ba.Get(i) {
			sb.WriteByte('X')
		} else {
			sb.WriteByte('.')
		}
	}
	return sb.String()
}

func makeArray(size int) []uint32 {
	return make([]uint32, (size+31)/32)
}
