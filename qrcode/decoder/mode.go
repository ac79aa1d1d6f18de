package decoder

import (
	"fmt"
	"strings"

	imgproc "github.com/louisgthier/image-processing"
)

// Mode represents a QR code data encoding mode.
type Mode int

const (
	ModeTerminator   Mode = 0x00
	ModeAlphanumeric Mode = 0x02
	ModeByte         Mode = 0x04
)

// characterCountBits holds the count width for versions 1 through 9.
var characterCountBits = map[Mode]int{
	ModeTerminator:   0,
	ModeAlphanumeric: 9,
	ModeByte:         8,
}

// ModeForBits returns the Mode for the given 4-bit value.
func ModeForBits(bits int) (Mode, error) {
	switch bits {
	case 0x0:
		return ModeTerminator, nil
	case 0x2:
		return ModeAlphanumeric, nil
	case 0x4:
		return ModeByte, nil
	}
	return 0, fmt.Errorf("%w: mode indicator %04b", imgproc.ErrUnsupportedMode, bits)
}

// ParseMode maps a configuration name to a Mode. The empty string selects
// alphanumeric.
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(name) {
	case "", "alphanumeric", "alnum":
		return ModeAlphanumeric, nil
	case "byte", "8bit":
		return ModeByte, nil
	}
	return 0, fmt.Errorf("%w: mode %q", imgproc.ErrUnsupportedMode, name)
}

// CharacterCountBits returns the number of bits used to encode the character
// count for this mode in the given version.
func (m Mode) CharacterCountBits(version *Version) (int, error) {
	if version.Number > MaxVersion {
		return 0, fmt.Errorf("%w: version %d", imgproc.ErrUnsupportedMode, version.Number)
	}
	n, ok := characterCountBits[m]
	if !ok {
		return 0, fmt.Errorf("%w: mode %d", imgproc.ErrUnsupportedMode, int(m))
	}
	return n, nil
}

// Bits returns the 4-bit encoding of this mode.
func (m Mode) Bits() int {
	return int(m)
}

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeTerminator:
		return "terminator"
	case ModeAlphanumeric:
		return "alphanumeric"
	case ModeByte:
		return "byte"
	}
	return "unknown"
}
