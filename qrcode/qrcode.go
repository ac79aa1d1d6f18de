package qrcode

import (
	imgproc "github.com/louisgthier/image-processing"
	"github.com/louisgthier/image-processing/qrcode/encoder"
)

// Encode encodes text with default options.
func Encode(text string) (*encoder.Symbol, error) {
	return NewWriter().EncodeSymbol(text, nil)
}

// Decode locates and decodes the QR code in image with default options.
func Decode(image imgproc.Raster) (string, error) {
	res, err := NewReader().Decode(image, nil)
	if err != nil {
		return "", err
	}
	return res.Text, nil
}
