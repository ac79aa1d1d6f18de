// Package ecc bridges QR Code bit streams to external Reed-Solomon codecs:
// rsc.io/qr/gf256 produces correction bytes and github.com/maruel/rs repairs
// received blocks.
package ecc

import (
	"fmt"

	"github.com/maruel/rs"
	"rsc.io/qr/gf256"

	imgproc "github.com/louisgthier/image-processing"
)

// qrFieldPoly is x^8 + x^4 + x^3 + x^2 + 1, the QR Code GF(256) polynomial.
const qrFieldPoly = 0x11d

// Codec produces and checks Reed-Solomon correction bytes over the QR Code
// field. It holds no per-call state and is safe for concurrent use.
type Codec struct {
	field   *gf256.Field
	decoder rs.Decoder
}

// NewCodec creates a Codec.
func NewCodec() *Codec {
	return &Codec{
		field:   gf256.NewField(qrFieldPoly, 2),
		decoder: rs.NewDecoder(rs.QRCodeField256),
	}
}

// Encode returns numEC correction bytes for data.
func (c *Codec) Encode(data []byte, numEC int) []byte {
	check := make([]byte, numEC)
	gf256.NewRSEncoder(c.field, numEC).ECC(data, check)
	return check
}

// Decode repairs data in place using its correction bytes and returns the
// number of errors corrected.
func (c *Codec) Decode(data, check []byte) (int, error) {
	n, err := c.decoder.Decode(data, check)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", imgproc.ErrUncorrectable, err)
	}
	return n, nil
}
