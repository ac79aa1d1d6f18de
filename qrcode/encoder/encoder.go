// Package encoder turns text into QR Code module matrices.
package encoder

import (
	"fmt"
	"strings"
	"unicode/utf8"

	imgproc "github.com/louisgthier/image-processing"
	"github.com/louisgthier/image-processing/bitutil"
	"github.com/louisgthier/image-processing/charset"
	"github.com/louisgthier/image-processing/qrcode/decoder"
	"github.com/louisgthier/image-processing/qrcode/ecc"
)

// Encoded symbols always use the lowest correction level and a fixed mask.
const (
	DefaultECLevel     = decoder.ECLevelL
	DefaultMaskPattern = 0
)

// Symbol holds an encoded QR code.
type Symbol struct {
	Content     string
	Mode        decoder.Mode
	ECLevel     decoder.ErrorCorrectionLevel
	Version     *decoder.Version
	MaskPattern int
	Matrix      *bitutil.BitMatrix
	// Truncated is set when Content is a prefix of the requested text.
	Truncated bool
}

// alphanumericTable maps ASCII values to alphanumeric codes.
var alphanumericTable = [128]int{
	-1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1,
	-1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1,
	36, -1, -1, -1, 37, 38, -1, -1, -1, -1, 39, 40, -1, 41, 42, 43,
	0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 44, -1, -1, -1, -1, -1,
	-1, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24,
	25, 26, 27, 28, 29, 30, 31, 32, 33, 34, 35, -1, -1, -1, -1, -1,
	-1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1,
	-1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1,
}

// GetAlphanumericCode returns the alphanumeric code for a character, or -1.
func GetAlphanumericCode(code rune) int {
	if code >= 0 && code < 128 {
		return alphanumericTable[code]
	}
	return -1
}

var codec = ecc.NewCodec()

// Encode encodes content into a Symbol. opts may be nil.
func Encode(content string, opts *imgproc.EncodeOptions) (*Symbol, error) {
	var modeName string
	var foldCase, strict bool
	if opts != nil {
		modeName, foldCase, strict = opts.Mode, opts.FoldCase, opts.Strict
	}
	mode, err := decoder.ParseMode(modeName)
	if err != nil {
		return nil, err
	}
	if content == "" {
		return nil, fmt.Errorf("%w: empty content", imgproc.ErrInvalidContent)
	}
	if foldCase && mode == decoder.ModeAlphanumeric {
		content = strings.ToUpper(content)
	}

	payload, err := payloadFor(content, mode)
	if err != nil {
		return nil, err
	}

	ecLevel := DefaultECLevel
	maxVersion, _ := decoder.GetVersionForNumber(decoder.MaxEncodeVersion)
	truncated := false
	if limit := maxVersion.Capacity(ecLevel, mode); len(payload) > limit {
		if strict {
			return nil, fmt.Errorf("%w: %d characters exceed capacity %d",
				imgproc.ErrInvalidContent, len(payload), limit)
		}
		payload = payload[:limit]
		truncated = true
	}

	version, ok := decoder.ChooseVersion(len(payload), ecLevel, mode, decoder.MaxEncodeVersion)
	if !ok {
		return nil, fmt.Errorf("%w: data too large", imgproc.ErrInvalidContent)
	}

	bits, err := dataStream(payload, mode, version, ecLevel)
	if err != nil {
		return nil, err
	}
	finalBits, err := codec.Protect(bits, version.Layout(ecLevel))
	if err != nil {
		return nil, err
	}

	text := string(payload)
	if mode == decoder.ModeByte {
		text, _ = charset.DecodeBytes(payload, charset.ISO8859_1)
	}
	return &Symbol{
		Content:     text,
		Mode:        mode,
		ECLevel:     ecLevel,
		Version:     version,
		MaskPattern: DefaultMaskPattern,
		Matrix:      BuildMatrix(finalBits, ecLevel, version, DefaultMaskPattern),
		Truncated:   truncated,
	}, nil
}

// payloadFor validates content against mode and returns one byte per
// character.
func payloadFor(content string, mode decoder.Mode) ([]byte, error) {
	if mode == decoder.ModeByte {
		return charset.EncodeLatin1(content)
	}
	out := make([]byte, 0, utf8.RuneCountInString(content))
	for i, r := range content {
		if GetAlphanumericCode(r) == -1 {
			return nil, fmt.Errorf("%w: %q at offset %d is not alphanumeric",
				imgproc.ErrInvalidContent, r, i)
		}
		out = append(out, byte(r))
	}
	return out, nil
}

// dataStream builds the padded data codeword stream: mode indicator,
// character count, segment data, terminator and pad bytes.
func dataStream(payload []byte, mode decoder.Mode, version *decoder.Version,
	ecLevel decoder.ErrorCorrectionLevel) (*bitutil.BitArray, error) {
	bits := &bitutil.BitArray{}
	bits.AppendBits(uint32(mode.Bits()), 4)
	countBits, err := mode.CharacterCountBits(version)
	if err != nil {
		return nil, err
	}
	bits.AppendBits(uint32(len(payload)), countBits)

	switch mode {
	case decoder.ModeAlphanumeric:
		appendAlphanumericBytes(payload, bits)
	case decoder.ModeByte:
		bits.AppendBytes(payload)
	}

	if err := terminateBits(version.ECBlocksForLevel(ecLevel).NumDataCodewords(), bits); err != nil {
		return nil, err
	}
	return bits, nil
}

func terminateBits(numDataBytes int, bits *bitutil.BitArray) error {
	capacity := numDataBytes * 8
	if bits.Size() > capacity {
		return fmt.Errorf("%w: data bits exceed capacity", imgproc.ErrInvalidContent)
	}

	// Terminator mode
	for i := 0; i < 4 && bits.Size() < capacity; i++ {
		bits.AppendBit(false)
	}

	// Pad to byte boundary
	numBitsInLastByte := bits.Size() & 0x07
	if numBitsInLastByte > 0 {
		for i := numBitsInLastByte; i < 8; i++ {
			bits.AppendBit(false)
		}
	}

	// Pad with alternating bytes
	numPaddingBytes := numDataBytes - bits.SizeInBytes()
	for i := 0; i < numPaddingBytes; i++ {
		if i%2 == 0 {
			bits.AppendBits(0xEC, 8)
		} else {
			bits.AppendBits(0x11, 8)
		}
	}
	return nil
}

func appendAlphanumericBytes(content []byte, bits *bitutil.BitArray) {
	length := len(content)
	for i := 0; i < length; i += 2 {
		code1 := GetAlphanumericCode(rune(content[i]))
		if i+1 < length {
			code2 := GetAlphanumericCode(rune(content[i+1]))
			bits.AppendBits(uint32(code1*45+code2), 11)
		} else {
			bits.AppendBits(uint32(code1), 6)
		}
	}
}

// String returns a visual representation of the symbol.
func (s *Symbol) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "version %d-%s mask %d %s %q\n", s.Version.Number, s.ECLevel, s.MaskPattern, s.Mode, s.Content)
	sb.WriteString(s.Matrix.StringWithChars("##", "  "))
	return sb.String()
}
