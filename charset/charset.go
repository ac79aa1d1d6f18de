// Package charset converts QR Code byte segments between their on-symbol
// encodings and UTF-8.
package charset

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"

	imgproc "github.com/louisgthier/image-processing"
)

// Canonical names returned by GuessEncoding.
const (
	ISO8859_1 = "ISO-8859-1"
	UTF8      = "UTF-8"
	ShiftJIS  = "Shift_JIS"
)

var encodings = map[string]encoding.Encoding{
	"iso-8859-1":   charmap.ISO8859_1,
	"iso8859_1":    charmap.ISO8859_1,
	"latin1":       charmap.ISO8859_1,
	"windows-1252": charmap.Windows1252,
	"cp1252":       charmap.Windows1252,
	"shift_jis":    japanese.ShiftJIS,
	"sjis":         japanese.ShiftJIS,
	"gb18030":      simplifiedchinese.GB18030,
	"gb2312":       simplifiedchinese.GB18030,
	"gbk":          simplifiedchinese.GBK,
}

// Lookup returns the encoding registered under name. UTF-8 and unknown names
// return nil and false.
func Lookup(name string) (encoding.Encoding, bool) {
	enc, ok := encodings[strings.ToLower(name)]
	return enc, ok
}

// IsUTF8 reports whether name denotes UTF-8.
func IsUTF8(name string) bool {
	switch strings.ToLower(name) {
	case "utf-8", "utf8":
		return true
	}
	return false
}

// DecodeBytes converts bytes from the given encoding to UTF-8.
func DecodeBytes(data []byte, name string) (string, error) {
	if IsUTF8(name) {
		if !utf8.Valid(data) {
			return "", fmt.Errorf("%w: invalid UTF-8 byte segment", imgproc.ErrFormat)
		}
		return string(data), nil
	}
	enc, ok := Lookup(name)
	if !ok {
		return "", fmt.Errorf("%w: unknown character set %q", imgproc.ErrUnsupportedMode, name)
	}
	decoded, _, err := transform.Bytes(enc.NewDecoder(), data)
	if err != nil {
		return "", fmt.Errorf("%w: %s byte segment: %v", imgproc.ErrFormat, name, err)
	}
	return string(decoded), nil
}

// EncodeLatin1 converts s to ISO-8859-1 bytes. Characters above U+00FF fail
// with ErrInvalidContent.
func EncodeLatin1(s string) ([]byte, error) {
	for i, r := range s {
		if r > 0xFF {
			return nil, fmt.Errorf("%w: %q at offset %d is outside ISO-8859-1",
				imgproc.ErrInvalidContent, r, i)
		}
	}
	out, _, err := transform.Bytes(charmap.ISO8859_1.NewEncoder(), []byte(s))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", imgproc.ErrInvalidContent, err)
	}
	return out, nil
}

// GuessEncoding picks the encoding of a byte segment. A non-empty hint wins.
// Otherwise bytes that form valid multi-byte UTF-8 are UTF-8, long runs of
// Shift_JIS double-byte characters are Shift_JIS, and everything else is
// ISO-8859-1.
func GuessEncoding(data []byte, hint string) string {
	if hint != "" {
		return hint
	}
	if utf8.Valid(data) {
		for _, c := range data {
			if c >= 0x80 {
				return UTF8
			}
		}
		return ISO8859_1
	}
	if looksShiftJIS(data) {
		return ShiftJIS
	}
	return ISO8859_1
}

// looksShiftJIS reports whether data is well-formed Shift_JIS holding a run
// of at least three double-byte or half-width katakana characters.
func looksShiftJIS(data []byte) bool {
	run, maxRun := 0, 0
	for i := 0; i < len(data); i++ {
		c := data[i]
		switch {
		case c < 0x80:
			run = 0
			continue
		case c == 0x80 || c == 0xA0 || c > 0xEF:
			return false
		case c > 0xA0 && c < 0xE0:
			run++
		default:
			if i+1 >= len(data) {
				return false
			}
			i++
			t := data[i]
			if t < 0x40 || t == 0x7F || t > 0xFC {
				return false
			}
			run++
		}
		if run > maxRun {
			maxRun = run
		}
	}
	return maxRun >= 3
}
