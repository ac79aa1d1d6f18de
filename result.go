// Package imgproc holds the raster container, options, results and errors
// shared by the QR Code encoder and reader.
package imgproc

import "time"

// ResultPoint represents a point of interest in a raster, in pixels.
type ResultPoint struct {
	X, Y float64
}

// Result encapsulates the result of decoding a symbol.
type Result struct {
	Text            string
	RawBytes        []byte
	Version         int
	ECLevel         string
	Mode            string
	MaskPattern     int
	ErrorsCorrected int
	ModuleSize      float64
	Points          []ResultPoint
	Timestamp       time.Time
}

// NewResult creates a Result stamped with the current time.
func NewResult(text string, rawBytes []byte, points []ResultPoint) *Result {
	return &Result{
		Text:      text,
		RawBytes:  rawBytes,
		Points:    points,
		Timestamp: time.Now(),
	}
}
