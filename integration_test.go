package imgproc_test

import (
	"bytes"
	"path/filepath"
	"testing"

	imgproc "github.com/louisgthier/image-processing"
	"github.com/louisgthier/image-processing/qrcode"
)

func encodeAndDecode(t *testing.T, content string, opts *imgproc.EncodeOptions) string {
	t.Helper()

	// Encode
	matrix, err := qrcode.NewWriter().Encode(content, opts)
	if err != nil {
		t.Fatalf("Encode(%q) failed: %v", content, err)
	}
	if matrix.Width() == 0 || matrix.Height() == 0 {
		t.Fatalf("encoded matrix is empty")
	}

	// Convert to raster and decode
	img := imgproc.MatrixToImage(matrix)
	result, err := qrcode.NewReader().Decode(img, nil)
	if err != nil {
		t.Fatalf("Decode(%q) failed: %v", content, err)
	}
	return result.Text
}

func TestRoundTripAlphanumeric(t *testing.T) {
	content := "HELLO WORLD"
	decoded := encodeAndDecode(t, content, nil)
	if decoded != content {
		t.Errorf("round-trip: got %q, want %q", decoded, content)
	}
}

func TestRoundTripDigits(t *testing.T) {
	content := "1234567890"
	decoded := encodeAndDecode(t, content, &imgproc.EncodeOptions{Scale: 1})
	if decoded != content {
		t.Errorf("digits round-trip: got %q, want %q", decoded, content)
	}
}

func TestRoundTripByteMode(t *testing.T) {
	content := "Hello, World!"
	decoded := encodeAndDecode(t, content, &imgproc.EncodeOptions{Mode: "byte", Scale: 3})
	if decoded != content {
		t.Errorf("byte round-trip: got %q, want %q", decoded, content)
	}
}

func TestRoundTripNoQuietZone(t *testing.T) {
	margin := 0
	content := "EDGE"
	decoded := encodeAndDecode(t, content, &imgproc.EncodeOptions{Margin: &margin})
	if decoded != content {
		t.Errorf("round-trip without quiet zone: got %q, want %q", decoded, content)
	}
}

func TestRoundTripThroughFiles(t *testing.T) {
	dir := t.TempDir()
	img, err := qrcode.NewWriter().Render("FILE 42", nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"qr.png", "qr.bmp"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := img.Save(path); err != nil {
				t.Fatalf("Save: %v", err)
			}
			loaded, err := imgproc.Open(path)
			if err != nil {
				t.Fatalf("Open: %v", err)
			}
			if loaded.Width() != img.Width() || loaded.Height() != img.Height() {
				t.Fatalf("size: got %dx%d, want %dx%d",
					loaded.Width(), loaded.Height(), img.Width(), img.Height())
			}
			text, err := qrcode.Decode(loaded)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if text != "FILE 42" {
				t.Errorf("got %q", text)
			}
		})
	}
}

func TestRoundTripThroughStreams(t *testing.T) {
	img, err := qrcode.NewWriter().Render("STREAM", &imgproc.EncodeOptions{Scale: 2})
	if err != nil {
		t.Fatal(err)
	}
	for name, encode := range map[string]func(*bytes.Buffer) error{
		"png": func(b *bytes.Buffer) error { return img.EncodePNG(b) },
		"bmp": func(b *bytes.Buffer) error { return img.EncodeBMP(b) },
	} {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := encode(&buf); err != nil {
				t.Fatalf("encode: %v", err)
			}
			loaded, err := imgproc.Decode(&buf)
			if err != nil {
				t.Fatalf("decode raster: %v", err)
			}
			text, err := qrcode.Decode(loaded)
			if err != nil {
				t.Fatalf("decode symbol: %v", err)
			}
			if text != "STREAM" {
				t.Errorf("got %q", text)
			}
		})
	}
}

func TestPastedSymbol(t *testing.T) {
	symbol, err := qrcode.NewWriter().Render("PASTE", &imgproc.EncodeOptions{Scale: 3})
	if err != nil {
		t.Fatal(err)
	}
	canvas := imgproc.NewImage(symbol.Width()+57, symbol.Height()+31)
	canvas.Paste(symbol, 19, 40)
	text, err := qrcode.Decode(canvas)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if text != "PASTE" {
		t.Errorf("got %q", text)
	}
}
