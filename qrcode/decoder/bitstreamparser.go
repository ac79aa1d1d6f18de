package decoder

import (
	"fmt"
	"strings"

	imgproc "github.com/louisgthier/image-processing"
	"github.com/louisgthier/image-processing/bitutil"
	"github.com/louisgthier/image-processing/charset"
	"github.com/louisgthier/image-processing/internal"
)

// AlphanumericChars is the 45-character alphanumeric alphabet, indexed by
// code value.
const AlphanumericChars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ $%*+-./:"

// DecodeBitStream decodes corrected data codewords into a DecoderResult.
// Segments are read until a terminator or until fewer than four bits remain.
func DecodeBitStream(bytes []byte, version *Version, ecLevel ErrorCorrectionLevel, characterSet string) (*internal.DecoderResult, error) {
	bs := bitutil.NewBitSource(bytes)
	var result strings.Builder
	result.Grow(50)
	var byteSegments [][]byte
	var modes []string

	for bs.Available() >= 4 {
		modeBits, err := bs.ReadBits(4)
		if err != nil {
			return nil, truncated("mode indicator", err)
		}
		mode, err := ModeForBits(modeBits)
		if err != nil {
			return nil, err
		}
		if mode == ModeTerminator {
			break
		}

		countBits, err := mode.CharacterCountBits(version)
		if err != nil {
			return nil, err
		}
		count, err := bs.ReadBits(countBits)
		if err != nil {
			return nil, truncated("character count", err)
		}
		switch mode {
		case ModeAlphanumeric:
			if err := decodeAlphanumericSegment(bs, &result, count); err != nil {
				return nil, err
			}
		case ModeByte:
			seg, err := decodeByteSegment(bs, &result, count, characterSet)
			if err != nil {
				return nil, err
			}
			byteSegments = append(byteSegments, seg)
		}
		modes = append(modes, mode.String())
	}

	r := internal.NewDecoderResult(bytes, result.String(), byteSegments, ecLevel.String())
	r.Version = version.Number
	r.Mode = strings.Join(modes, "+")
	return r, nil
}

func decodeByteSegment(bs *bitutil.BitSource, result *strings.Builder, count int, characterSet string) ([]byte, error) {
	readBytes, err := bs.ReadBytes(count)
	if err != nil {
		return nil, truncated("byte segment", err)
	}

	text, err := charset.DecodeBytes(readBytes, charset.GuessEncoding(readBytes, characterSet))
	if err != nil {
		return nil, err
	}
	result.WriteString(text)
	return readBytes, nil
}

// truncated reports a field cut off by the end of the data codewords.
func truncated(field string, err error) error {
	return fmt.Errorf("%w: %s: %w", imgproc.ErrFormat, field, err)
}

func toAlphaNumericChar(value int) (byte, error) {
	if value >= len(AlphanumericChars) {
		return 0, fmt.Errorf("%w: alphanumeric value %d", imgproc.ErrFormat, value)
	}
	return AlphanumericChars[value], nil
}

func decodeAlphanumericSegment(bs *bitutil.BitSource, result *strings.Builder, count int) error {
	for count > 1 {
		nextTwo, err := bs.ReadBits(11)
		if err != nil {
			return truncated("alphanumeric segment", err)
		}
		c1, err := toAlphaNumericChar(nextTwo / 45)
		if err != nil {
			return err
		}
		c2, err := toAlphaNumericChar(nextTwo % 45)
		if err != nil {
			return err
		}
		result.WriteByte(c1)
		result.WriteByte(c2)
		count -= 2
	}
	if count == 1 {
		val, err := bs.ReadBits(6)
		if err != nil {
			return truncated("alphanumeric segment", err)
		}
		c, err := toAlphaNumericChar(val)
		if err != nil {
			return err
		}
		result.WriteByte(c)
	}
	return nil
}
