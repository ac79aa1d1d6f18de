package decoder

import (
	"fmt"

	"github.com/louisgthier/image-processing/bitutil"
	"github.com/louisgthier/image-processing/internal"
	"github.com/louisgthier/image-processing/qrcode/ecc"
)

// Decoder decodes QR code module matrices.
type Decoder struct {
	codec *ecc.Codec
}

// NewDecoder creates a new QR code Decoder.
func NewDecoder() *Decoder {
	return &Decoder{codec: ecc.NewCodec()}
}

// Decode decodes a BitMatrix into a DecoderResult. characterSet names the
// encoding of byte segments; empty lets the decoder guess.
func (d *Decoder) Decode(bits *bitutil.BitMatrix, characterSet string) (*internal.DecoderResult, error) {
	parser, err := NewBitMatrixParser(bits)
	if err != nil {
		return nil, err
	}
	version, err := parser.ReadVersion()
	if err != nil {
		return nil, err
	}
	formatInfo, err := parser.ReadFormatInformation()
	if err != nil {
		return nil, err
	}
	ecLevel := formatInfo.ECLevel

	codewords, err := parser.ReadCodewords()
	if err != nil {
		return nil, err
	}

	data, errorsCorrected, err := d.codec.Recover(codewords, version.Layout(ecLevel))
	if err != nil {
		return nil, fmt.Errorf("version %d-%s: %w", version.Number, ecLevel, err)
	}

	result, err := DecodeBitStream(data, version, ecLevel, characterSet)
	if err != nil {
		return nil, err
	}
	result.ErrorsCorrected = errorsCorrected
	result.MaskPattern = int(formatInfo.DataMask)
	return result, nil
}
