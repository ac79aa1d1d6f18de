package qrcode

import (
	"github.com/sirupsen/logrus"

	imgproc "github.com/louisgthier/image-processing"
	"github.com/louisgthier/image-processing/bitutil"
	"github.com/louisgthier/image-processing/qrcode/encoder"
)

// Writer encodes QR codes. It is safe for concurrent use.
type Writer struct {
	log logrus.FieldLogger
}

var _ imgproc.Writer = (*Writer)(nil)

// NewWriter creates a new QR code Writer logging to the standard logger.
func NewWriter() *Writer {
	return NewWriterWithLogger(logrus.StandardLogger())
}

// NewWriterWithLogger creates a new QR code Writer logging to log.
func NewWriterWithLogger(log logrus.FieldLogger) *Writer {
	return &Writer{log: log}
}

// EncodeSymbol encodes contents into an unscaled symbol.
func (w *Writer) EncodeSymbol(contents string, opts *imgproc.EncodeOptions) (*encoder.Symbol, error) {
	sym, err := encoder.Encode(contents, opts)
	if err != nil {
		return nil, err
	}
	entry := w.log.WithFields(logrus.Fields{
		"version":   sym.Version.Number,
		"dimension": sym.Matrix.Width(),
		"mode":      sym.Mode.String(),
		"length":    len(sym.Content),
	})
	if sym.Truncated {
		entry.Warn("content truncated to symbol capacity")
	} else {
		entry.Debug("qr code encoded")
	}
	return sym, nil
}

// Encode encodes the given contents into a QR code BitMatrix scaled by
// opts.Scale and surrounded by opts.Margin light modules.
func (w *Writer) Encode(contents string, opts *imgproc.EncodeOptions) (*bitutil.BitMatrix, error) {
	sym, err := w.EncodeSymbol(contents, opts)
	if err != nil {
		return nil, err
	}
	return imgproc.ScaleMatrix(sym.Matrix, opts.ScaleOrDefault(), opts.MarginOrDefault()), nil
}

// Render encodes contents and writes the symbol into a new raster.
func (w *Writer) Render(contents string, opts *imgproc.EncodeOptions) (*imgproc.Image, error) {
	sym, err := w.EncodeSymbol(contents, opts)
	if err != nil {
		return nil, err
	}
	return imgproc.RenderMatrix(sym.Matrix, opts.ScaleOrDefault(), opts.MarginOrDefault()), nil
}
