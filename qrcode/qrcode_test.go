package qrcode

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/boombuler/barcode"
	bqr "github.com/boombuler/barcode/qr"
	"github.com/makiuchi-d/gozxing"
	zxingqr "github.com/makiuchi-d/gozxing/qrcode"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	imgproc "github.com/louisgthier/image-processing"
	"github.com/louisgthier/image-processing/bitutil"
	"github.com/louisgthier/image-processing/qrcode/decoder"
	"github.com/louisgthier/image-processing/qrcode/ecc"
	"github.com/louisgthier/image-processing/qrcode/encoder"
)

func TestRoundTripHelloWorld(t *testing.T) {
	sym, err := Encode("HELLO WORLD")
	require.NoError(t, err)
	assert.Equal(t, 21, sym.Matrix.Width())

	img := imgproc.RenderMatrix(sym.Matrix, imgproc.DefaultScale, imgproc.DefaultQuietZone)
	text, err := Decode(img)
	require.NoError(t, err)
	assert.Equal(t, "HELLO WORLD", text)
}

func TestRoundTripAlphanumeric(t *testing.T) {
	testRoundTrip(t, "HELLO WORLD", nil)
}

func TestRoundTripByte(t *testing.T) {
	testRoundTrip(t, "Hello, World! This is a test.", &imgproc.EncodeOptions{Mode: "byte"})
}

func TestRoundTripFoldCase(t *testing.T) {
	w := NewWriter()
	img, err := w.Render("lower case", &imgproc.EncodeOptions{FoldCase: true})
	require.NoError(t, err)
	res, err := NewReader().Decode(img, nil)
	require.NoError(t, err)
	assert.Equal(t, "LOWER CASE", res.Text)
}

func TestRoundTripVersions(t *testing.T) {
	alphabet := strings.Repeat("0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ $%*+-./:", 5)
	for _, n := range []int{1, 25, 47, 77, 114, 154, 195} {
		content := alphabet[:n]
		t.Run(strconv.Itoa(n), func(t *testing.T) {
			testRoundTrip(t, content, nil)
		})
	}
}

func TestRoundTripScalesAndOffsets(t *testing.T) {
	sym, err := Encode("SCALE TEST")
	require.NoError(t, err)
	r := NewReader()
	for scale := 1; scale <= 6; scale++ {
		rendered := imgproc.RenderMatrix(sym.Matrix, scale, 2)
		for _, off := range [][2]int{{0, 0}, {13, 5}, {7, 29}} {
			canvas := imgproc.NewImage(rendered.Width()+off[0]+11, rendered.Height()+off[1]+3)
			canvas.Paste(rendered, off[1], off[0])
			res, err := r.Decode(canvas, nil)
			require.NoError(t, err, "scale %d offset %v", scale, off)
			assert.Equal(t, "SCALE TEST", res.Text)
			assert.InDelta(t, float64(scale), res.ModuleSize, 1e-9)
		}
	}
}

func TestWriterEncode(t *testing.T) {
	w := NewWriter()
	margin := 2
	result, err := w.Encode("HELLO", &imgproc.EncodeOptions{Scale: 3, Margin: &margin})
	require.NoError(t, err)
	assert.Equal(t, (21+4)*3, result.Width())
	assert.Equal(t, (21+4)*3, result.Height())
	assert.False(t, result.Get(5, 5), "quiet zone must be light")
	assert.True(t, result.Get(6, 6), "finder corner must be dark")

	result, err = w.Encode("HELLO", nil)
	require.NoError(t, err)
	assert.Equal(t, (21+2*imgproc.DefaultQuietZone)*imgproc.DefaultScale, result.Width())
}

func TestWriterEmptyContents(t *testing.T) {
	_, err := NewWriter().Encode("", nil)
	if !errors.Is(err, imgproc.ErrInvalidContent) {
		t.Fatalf("expected ErrInvalidContent, got %v", err)
	}
}

func TestDecodeNotFound(t *testing.T) {
	_, err := Decode(imgproc.NewImage(120, 80))
	assert.ErrorIs(t, err, imgproc.ErrNotFound)
}

func TestDecodeCorrectsDamagedModules(t *testing.T) {
	sym, err := Encode("HELLO WORLD")
	require.NoError(t, err)
	damaged := sym.Matrix.Clone()
	// Bit 0 of codeword 0 and bit 4 of codeword 1.
	damaged.Flip(20, 20)
	damaged.Flip(20, 14)
	res, err := NewReader().DecodeMatrix(damaged, nil)
	require.NoError(t, err)
	assert.Equal(t, "HELLO WORLD", res.Text)
	assert.Positive(t, res.ErrorsCorrected)
}

func TestDecodeUncorrectable(t *testing.T) {
	sym, err := Encode("HELLO WORLD")
	require.NoError(t, err)
	damaged := sym.Matrix.Clone()
	// Invert the first six codewords: the two rightmost column pairs below
	// the top-right finder area.
	for y := 9; y < 21; y++ {
		for x := 17; x < 21; x++ {
			damaged.Flip(x, y)
		}
	}
	_, err = NewReader().DecodeMatrix(damaged, nil)
	assert.ErrorIs(t, err, imgproc.ErrUncorrectable)
}

func TestDecodeUnsupportedMode(t *testing.T) {
	v, err := decoder.GetVersionForNumber(1)
	require.NoError(t, err)
	stream := &bitutil.BitArray{}
	stream.AppendBits(0x1, 4) // numeric
	stream.AppendBits(3, 10)
	stream.AppendBits(123, 10)
	for stream.Size() < v.DataBits(decoder.ECLevelL) {
		stream.AppendBit(false)
	}
	protected, err := ecc.NewCodec().Protect(stream, v.Layout(decoder.ECLevelL))
	require.NoError(t, err)
	matrix := encoder.BuildMatrix(protected, decoder.ECLevelL, v, 3)

	_, err = NewReader().DecodeMatrix(matrix, nil)
	assert.ErrorIs(t, err, imgproc.ErrUnsupportedMode)
}

func TestDecodeLargeVersionUnsupported(t *testing.T) {
	_, err := NewReader().DecodeMatrix(bitutil.NewBitMatrix(57), nil)
	assert.ErrorIs(t, err, imgproc.ErrUnsupportedMode)
}

func TestDecodeThirdPartySymbol(t *testing.T) {
	for _, content := range []string{"HELLO WORLD", "BOOMBULER 0123456789 $%*+-./:"} {
		bc, err := bqr.Encode(content, bqr.L, bqr.AlphaNumeric)
		require.NoError(t, err)
		side := bc.Bounds().Dx()
		scaled, err := barcode.Scale(bc, side*4, side*4)
		require.NoError(t, err)

		canvas := imgproc.NewImage(side*4+40, side*4+40)
		canvas.Paste(imgproc.FromImage(scaled), 20, 20)
		res, err := NewReader().Decode(canvas, nil)
		require.NoError(t, err, "content %q", content)
		assert.Equal(t, content, res.Text)
		assert.Equal(t, "L", res.ECLevel)
	}
}

func TestThirdPartyReaderDecodesSymbol(t *testing.T) {
	for _, content := range []string{"HELLO WORLD", strings.Repeat("INTEROP 42 ", 10)} {
		img, err := NewWriter().Render(content, nil)
		require.NoError(t, err)
		bmp, err := gozxing.NewBinaryBitmapFromImage(img.NRGBA())
		require.NoError(t, err)
		hints := map[gozxing.DecodeHintType]interface{}{
			gozxing.DecodeHintType_PURE_BARCODE: true,
		}
		result, err := zxingqr.NewQRCodeReader().Decode(bmp, hints)
		require.NoError(t, err, "content %q", content)
		assert.Equal(t, content, result.GetText())
	}
}

func TestReaderLogsDecode(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	img, err := NewWriterWithLogger(logger).Render("LOGGED", nil)
	require.NoError(t, err)
	res, err := NewReaderWithLogger(logger).Decode(img, nil)
	require.NoError(t, err)
	assert.Equal(t, "LOGGED", res.Text)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "qr code decoded", entry.Message)
	assert.Equal(t, 1, entry.Data["version"])
	assert.Equal(t, 0, entry.Data["errors_corrected"])

	hook.Reset()
	_, err = NewReaderWithLogger(logger).Decode(imgproc.NewImage(30, 30), nil)
	require.Error(t, err)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "qr code not located", hook.LastEntry().Message)
}

func TestWriterWarnsOnTruncation(t *testing.T) {
	logger, hook := test.NewNullLogger()
	sym, err := NewWriterWithLogger(logger).EncodeSymbol(strings.Repeat("A", 300), nil)
	require.NoError(t, err)
	assert.True(t, sym.Truncated)
	require.Len(t, hook.Entries, 1)
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func testRoundTrip(t *testing.T, content string, opts *imgproc.EncodeOptions) {
	t.Helper()

	img, err := NewWriter().Render(content, opts)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	res, err := NewReader().Decode(img, nil)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if res.Text != content {
		t.Errorf("round-trip mismatch: got %q, want %q", res.Text, content)
	}
}
