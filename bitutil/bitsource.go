package bitutil

import (
	"errors"
	"fmt"
)

// ErrNotEnoughBits is returned when a read runs past the end of the data.
var ErrNotEnoughBits = errors.New("bitutil: not enough bits")

// BitSource reads big-endian fields of arbitrary width from a byte slice:
// mode indicators, character counts and character values.
type BitSource struct {
	data []byte
	pos  int // next bit, counted from the top of data[0]
}

// NewBitSource creates a BitSource positioned at the first bit of data.
func NewBitSource(data []byte) *BitSource {
	return &BitSource{data: data}
}

// Available returns the number of unread bits.
func (bs *BitSource) Available() int {
	return 8*len(bs.data) - bs.pos
}

// ReadBits reads an n-bit field, 1 <= n <= 32. Nothing is consumed on error.
func (bs *BitSource) ReadBits(n int) (int, error) {
	if n < 1 || n > 32 {
		return 0, fmt.Errorf("bitutil: cannot read a %d-bit field", n)
	}
	if n > bs.Available() {
		return 0, fmt.Errorf("%w: need %d, have %d", ErrNotEnoughBits, n, bs.Available())
	}
	v := 0
	for end := bs.pos + n; bs.pos < end; bs.pos++ {
		bit := bs.data[bs.pos>>3] >> uint(7-bs.pos&7) & 1
		v = v<<1 | int(bit)
	}
	return v, nil
}

// ReadBytes reads n consecutive 8-bit fields.
func (bs *BitSource) ReadBytes(n int) ([]byte, error) {
	if 8*n > bs.Available() {
		return nil, fmt.Errorf("%w: need %d bytes, have %d bits", ErrNotEnoughBits, n, bs.Available())
	}
	out := make([]byte, n)
	for i := range out {
		v, _ := bs.ReadBits(8)
		out[i] = byte(v)
	}
	return out, nil
}
