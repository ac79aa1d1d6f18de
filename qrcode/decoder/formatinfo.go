package decoder

import "math/bits"

const (
	formatInfoMaskQR = 0x5412
	// formatInfoPoly is the BCH(15,5) generator x^10+x^8+x^5+x^4+x^2+x+1.
	formatInfoPoly = 0x537
)

// FormatInformation encapsulates a QR code's format info (EC level + data mask).
type FormatInformation struct {
	ECLevel  ErrorCorrectionLevel
	DataMask byte
}

// FormatBits returns the masked 15-bit format word for ecLevel and mask:
// the five data bits followed by their BCH remainder, XORed with 0x5412.
func FormatBits(ecLevel ErrorCorrectionLevel, mask int) uint16 {
	data := uint32(ecLevel.Bits()<<3 | (mask & 0x07))
	rem := data << 10
	for i := 14; i >= 10; i-- {
		if rem&(1<<uint(i)) != 0 {
			rem ^= formatInfoPoly << uint(i-10)
		}
	}
	return uint16((data<<10 | rem) ^ formatInfoMaskQR)
}

// formatInfoDecodeLookup pairs each masked format word with its 5 data bits.
var formatInfoDecodeLookup = buildFormatLookup()

func buildFormatLookup() [32][2]int {
	var table [32][2]int
	for info := 0; info < 32; info++ {
		ecLevel, _ := ECLevelForBits(info >> 3)
		table[info] = [2]int{int(FormatBits(ecLevel, info&0x07)), info}
	}
	return table
}

func newFormatInformation(formatInfo int) *FormatInformation {
	ecLevel, _ := ECLevelForBits((formatInfo >> 3) & 0x03)
	return &FormatInformation{
		ECLevel:  ecLevel,
		DataMask: byte(formatInfo & 0x07),
	}
}

// DecodeFormatInformation decodes format information from the two copies
// read off a symbol. It returns nil when neither copy is within three bits of
// a valid word.
func DecodeFormatInformation(maskedFormatInfo1, maskedFormatInfo2 int) *FormatInformation {
	bestDifference := 32
	bestFormatInfo := 0
	for _, entry := range formatInfoDecodeLookup {
		target := entry[0]
		if target == maskedFormatInfo1 || target == maskedFormatInfo2 {
			return newFormatInformation(entry[1])
		}
		bitsDiff := bits.OnesCount(uint(maskedFormatInfo1 ^ target))
		if bitsDiff < bestDifference {
			bestFormatInfo = entry[1]
			bestDifference = bitsDiff
		}
		if maskedFormatInfo1 != maskedFormatInfo2 {
			bitsDiff = bits.OnesCount(uint(maskedFormatInfo2 ^ target))
			if bitsDiff < bestDifference {
				bestFormatInfo = entry[1]
				bestDifference = bitsDiff
			}
		}
	}
	if bestDifference <= 3 {
		return newFormatInformation(bestFormatInfo)
	}
	return nil
}
