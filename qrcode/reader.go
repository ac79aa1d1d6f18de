// Package qrcode provides QR code reading and writing.
package qrcode

import (
	"github.com/sirupsen/logrus"

	imgproc "github.com/louisgthier/image-processing"
	"github.com/louisgthier/image-processing/bitutil"
	"github.com/louisgthier/image-processing/internal"
	"github.com/louisgthier/image-processing/qrcode/decoder"
	"github.com/louisgthier/image-processing/qrcode/detector"
)

// Reader locates and decodes QR codes in rasters. It holds no per-call
// state and is safe for concurrent use.
type Reader struct {
	dec *decoder.Decoder
	log logrus.FieldLogger
}

var _ imgproc.Reader = (*Reader)(nil)

// NewReader creates a new QR code Reader logging to the standard logger.
func NewReader() *Reader {
	return NewReaderWithLogger(logrus.StandardLogger())
}

// NewReaderWithLogger creates a new QR code Reader logging to log.
func NewReaderWithLogger(log logrus.FieldLogger) *Reader {
	return &Reader{
		dec: decoder.NewDecoder(),
		log: log,
	}
}

// Decode locates and decodes a QR code in the given image.
func (r *Reader) Decode(image imgproc.Raster, opts *imgproc.DecodeOptions) (*imgproc.Result, error) {
	loc := detector.NewLocalizer(image, opts)
	detectorResult, err := loc.Locate()
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"width":  image.Width(),
			"height": image.Height(),
			"state":  loc.State().String(),
		}).Debug("qr code not located")
		return nil, err
	}
	r.log.WithFields(logrus.Fields{
		"dimension":   detectorResult.Bits.Width(),
		"module_size": detectorResult.ModuleSize,
	}).Debug("qr code located")

	return r.decode(detectorResult, opts)
}

// DecodeMatrix decodes an already sampled module matrix.
func (r *Reader) DecodeMatrix(bits *bitutil.BitMatrix, opts *imgproc.DecodeOptions) (*imgproc.Result, error) {
	return r.decode(internal.NewDetectorResult(bits, nil, 1), opts)
}

func (r *Reader) decode(detectorResult *internal.DetectorResult, opts *imgproc.DecodeOptions) (*imgproc.Result, error) {
	dr, err := r.dec.Decode(detectorResult.Bits, opts.Charset())
	if err != nil {
		r.log.WithError(err).WithField("dimension", detectorResult.Bits.Width()).Debug("qr code decode failed")
		return nil, err
	}

	result := imgproc.NewResult(dr.Text, dr.RawBytes, detectorResult.Points)
	result.Version = dr.Version
	result.ECLevel = dr.ECLevel
	result.Mode = dr.Mode
	result.MaskPattern = dr.MaskPattern
	result.ErrorsCorrected = dr.ErrorsCorrected
	result.ModuleSize = detectorResult.ModuleSize

	r.log.WithFields(logrus.Fields{
		"version":          dr.Version,
		"ec_level":         dr.ECLevel,
		"mask":             dr.MaskPattern,
		"errors_corrected": dr.ErrorsCorrected,
	}).Debug("qr code decoded")
	return result, nil
}
