// Package internal provides the result types shared between the detector,
// the decoder and the qrcode driver.
package internal

// DecoderResult encapsulates the result of decoding a matrix of bits.
type DecoderResult struct {
	RawBytes        []byte
	NumBits         int
	Text            string
	ByteSegments    [][]byte
	ECLevel         string
	Version         int
	Mode            string
	MaskPattern     int
	ErrorsCorrected int
}

// NewDecoderResult creates a DecoderResult with the basic fields.
func NewDecoderResult(rawBytes []byte, text string, byteSegments [][]byte, ecLevel string) *DecoderResult {
	numBits := 0
	if rawBytes != nil {
		numBits = 8 * len(rawBytes)
	}
	return &DecoderResult{
		RawBytes:     rawBytes,
		NumBits:      numBits,
		Text:         text,
		ByteSegments: byteSegments,
		ECLevel:      ecLevel,
		MaskPattern:  -1,
	}
}
