package imgproc

import "errors"

var (
	// ErrNotFound is returned when no QR code can be located in a raster.
	// It is an ordinary negative result, not a failure.
	ErrNotFound = errors.New("qr code not found")

	// ErrInvalidContent is returned when text cannot be encoded: a character
	// outside the mode's alphabet, empty content, or content that does not fit
	// when truncation is disabled.
	ErrInvalidContent = errors.New("invalid content")

	// ErrUnsupportedMode is returned when a decoded mode indicator is not
	// alphanumeric or byte, or the symbol version is outside the tables.
	ErrUnsupportedMode = errors.New("unsupported mode")

	// ErrUncorrectable is returned when Reed-Solomon decoding reports more
	// errors than the correction bytes can repair.
	ErrUncorrectable = errors.New("uncorrectable data")

	// ErrFormat is returned when a located symbol has impossible geometry or
	// unreadable format information.
	ErrFormat = errors.New("format error")
)
