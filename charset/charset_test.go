package charset

import (
	"errors"
	"testing"

	imgproc "github.com/louisgthier/image-processing"
)

func TestGuessEncoding(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		hint string
		want string
	}{
		{"ascii", []byte("HELLO"), "", ISO8859_1},
		{"latin1", []byte{'c', 'a', 'f', 0xE9}, "", ISO8859_1},
		{"utf8", []byte("café"), "", UTF8},
		{"sjis", []byte{0x82, 0xA0, 0x82, 0xA2, 0x82, 0xA4}, "", ShiftJIS},
		{"hint", []byte("HELLO"), "Shift_JIS", "Shift_JIS"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := GuessEncoding(tc.data, tc.hint); got != tc.want {
				t.Errorf("GuessEncoding() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestDecodeBytes(t *testing.T) {
	got, err := DecodeBytes([]byte{'c', 'a', 'f', 0xE9}, ISO8859_1)
	if err != nil || got != "café" {
		t.Fatalf("latin1: got %q, %v", got, err)
	}
	got, err = DecodeBytes([]byte{0x82, 0xA0}, ShiftJIS)
	if err != nil || got != "あ" {
		t.Fatalf("sjis: got %q, %v", got, err)
	}
	if _, err := DecodeBytes([]byte{0xFF}, UTF8); !errors.Is(err, imgproc.ErrFormat) {
		t.Errorf("invalid utf8: expected ErrFormat, got %v", err)
	}
	if _, err := DecodeBytes([]byte("x"), "EBCDIC"); !errors.Is(err, imgproc.ErrUnsupportedMode) {
		t.Errorf("unknown charset: expected ErrUnsupportedMode, got %v", err)
	}
}

func TestEncodeLatin1(t *testing.T) {
	got, err := EncodeLatin1("café")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "caf\xe9" {
		t.Errorf("EncodeLatin1() = %x", got)
	}
	if _, err := EncodeLatin1("あ"); !errors.Is(err, imgproc.ErrInvalidContent) {
		t.Errorf("expected ErrInvalidContent, got %v", err)
	}
}
