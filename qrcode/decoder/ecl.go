// Package decoder reads QR Code module matrices back into text. It also owns
// the version, format and mode tables shared with the encoder.
package decoder

// ErrorCorrectionLevel is one of the four correction levels, ordered from
// least to most redundant.
type ErrorCorrectionLevel int

const (
	ECLevelL ErrorCorrectionLevel = iota
	ECLevelM
	ECLevelQ
	ECLevelH
)

var (
	// ecLevelBits holds the format-word bits of each level, indexed by level.
	ecLevelBits  = [4]int{0x01, 0x00, 0x03, 0x02}
	ecLevelNames = [4]string{"L", "M", "Q", "H"}
	// ecLevelForBits inverts ecLevelBits.
	ecLevelForBits = [4]ErrorCorrectionLevel{ECLevelM, ECLevelL, ECLevelH, ECLevelQ}
)

func (ecl ErrorCorrectionLevel) valid() bool {
	return ecl >= ECLevelL && ecl <= ECLevelH
}

// Bits returns the two bits stored in the format word.
func (ecl ErrorCorrectionLevel) Bits() int {
	if !ecl.valid() {
		return 0
	}
	return ecLevelBits[ecl]
}

func (ecl ErrorCorrectionLevel) String() string {
	if !ecl.valid() {
		return "?"
	}
	return ecLevelNames[ecl]
}

// ECLevelForBits maps the two format-word bits to a level.
func ECLevelForBits(bits int) (ErrorCorrectionLevel, error) {
	if bits < 0 || bits > 3 {
		return 0, errInvalidECLevel
	}
	return ecLevelForBits[bits], nil
}
