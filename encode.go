package imgproc

import "github.com/louisgthier/image-processing/bitutil"

// Default rendering parameters.
const (
	DefaultScale     = 4
	DefaultQuietZone = 4
)

// EncodeOptions configures symbol encoding and rendering.
type EncodeOptions struct {
	// Mode selects the data mode: "alphanumeric" (the default) or "byte".
	Mode string

	// FoldCase converts lowercase letters to uppercase before alphanumeric
	// encoding.
	FoldCase bool

	// Strict rejects content longer than the largest supported capacity
	// instead of truncating it.
	Strict bool

	// Margin specifies the quiet zone in modules around the symbol.
	Margin *int

	// Scale is the number of pixels per module when rendering.
	Scale int
}

// ScaleOrDefault returns the configured scale, or DefaultScale.
func (o *EncodeOptions) ScaleOrDefault() int {
	if o == nil || o.Scale < 1 {
		return DefaultScale
	}
	return o.Scale
}

// MarginOrDefault returns the configured quiet zone, or DefaultQuietZone.
func (o *EncodeOptions) MarginOrDefault() int {
	if o == nil || o.Margin == nil || *o.Margin < 0 {
		return DefaultQuietZone
	}
	return *o.Margin
}

// Writer encodes text into a rendered module matrix.
type Writer interface {
	// Encode encodes contents and returns the symbol scaled and surrounded by
	// its quiet zone.
	Encode(contents string, opts *EncodeOptions) (*bitutil.BitMatrix, error)
}
