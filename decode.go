package imgproc

// Default sampling thresholds.
const (
	// DefaultDarkThreshold bounds how far a sample may sit from pure black
	// (or pure white) and still count as clearly dark (or light) while
	// locating finder patterns.
	DefaultDarkThreshold = 16

	// DefaultSampleThreshold splits dark from light when resampling module
	// centres.
	DefaultSampleThreshold = 127
)

// DecodeOptions configures symbol localization and decoding.
type DecodeOptions struct {
	// DarkThreshold overrides DefaultDarkThreshold when positive.
	DarkThreshold int

	// SampleThreshold overrides DefaultSampleThreshold when positive.
	SampleThreshold int

	// CharacterSet names the encoding of byte-mode segments. Empty means
	// guess between UTF-8 and ISO-8859-1.
	CharacterSet string
}

// Thresholds returns the dark and sample thresholds, applying defaults.
func (o *DecodeOptions) Thresholds() (dark, sample int) {
	dark, sample = DefaultDarkThreshold, DefaultSampleThreshold
	if o == nil {
		return
	}
	if o.DarkThreshold > 0 {
		dark = o.DarkThreshold
	}
	if o.SampleThreshold > 0 {
		sample = o.SampleThreshold
	}
	return
}

// Charset returns the configured character set, or "" when unset.
func (o *DecodeOptions) Charset() string {
	if o == nil {
		return ""
	}
	return o.CharacterSet
}

// Reader locates and decodes a symbol in a raster.
type Reader interface {
	// Decode attempts to locate and decode a symbol in image.
	Decode(image Raster, opts *DecodeOptions) (*Result, error)
}
