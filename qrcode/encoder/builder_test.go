package encoder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/louisgthier/image-processing/bitutil"
	"github.com/louisgthier/image-processing/qrcode/decoder"
)

func builderFor(t *testing.T, version int) *Builder {
	t.Helper()
	v, err := decoder.GetVersionForNumber(version)
	require.NoError(t, err)
	b := NewBuilder(v)
	b.PlaceFunctionPatterns()
	return b
}

func TestFunctionPatternsMatchDecoder(t *testing.T) {
	for n := 1; n <= decoder.MaxVersion; n++ {
		b := builderFor(t, n)
		v, _ := decoder.GetVersionForNumber(n)
		want := v.BuildFunctionPattern()
		got := bitutil.NewBitMatrix(b.Dimension())
		for y := 0; y < b.Dimension(); y++ {
			for x := 0; x < b.Dimension(); x++ {
				if b.Tag(x, y) != CellFree {
					got.Set(x, y)
				}
			}
		}
		if !want.Equals(got) {
			t.Errorf("version %d: builder function modules differ from decoder\nwant:\n%s\ngot:\n%s",
				n, want, got)
		}
	}
}

func TestFinderPatterns(t *testing.T) {
	b := builderFor(t, 2)
	m := b.Matrix()
	size := b.Dimension()
	for _, origin := range [][2]int{{0, 0}, {size - 7, 0}, {0, size - 7}} {
		for y := 0; y < 7; y++ {
			for x := 0; x < 7; x++ {
				ring := x == 0 || y == 0 || x == 6 || y == 6
				core := x >= 2 && x <= 4 && y >= 2 && y <= 4
				assert.Equal(t, ring || core, m.Get(origin[0]+x, origin[1]+y),
					"finder at %v module (%d,%d)", origin, x, y)
				assert.Equal(t, CellStructural, b.Tag(origin[0]+x, origin[1]+y))
			}
		}
	}
	// Separators are light.
	for i := 0; i < 8; i++ {
		assert.False(t, m.Get(i, 7))
		assert.False(t, m.Get(7, i))
		assert.False(t, m.Get(size-1-i, 7))
		assert.False(t, m.Get(i, size-8))
	}
}

func TestAlignmentPattern(t *testing.T) {
	b := builderFor(t, 2)
	m := b.Matrix()
	// Version 2 has one alignment pattern, centred on (18, 18).
	assert.True(t, m.Get(18, 18))
	assert.False(t, m.Get(17, 18))
	assert.False(t, m.Get(19, 17))
	assert.True(t, m.Get(16, 16))
	assert.True(t, m.Get(20, 20))
	assert.Equal(t, CellStructural, b.Tag(16, 20))
	assert.Equal(t, CellFree, b.Tag(15, 15))
}

func TestTimingAndDarkModule(t *testing.T) {
	for _, n := range []int{1, 3, 6} {
		b := builderFor(t, n)
		m := b.Matrix()
		size := b.Dimension()
		for i := 8; i <= size-9; i++ {
			assert.Equal(t, i%2 == 0, m.Get(i, 6), "version %d row 6 col %d", n, i)
			assert.Equal(t, i%2 == 0, m.Get(6, i), "version %d col 6 row %d", n, i)
		}
		// Row 4v+9, column 8.
		assert.True(t, m.Get(8, 4*n+9))
		assert.Equal(t, CellStructural, b.Tag(8, 4*n+9))
	}
}

func TestFormatAreasReserved(t *testing.T) {
	b := builderFor(t, 1)
	first, second := formatCoordinates(21)
	for i := 0; i < 15; i++ {
		assert.Equal(t, CellReserved, b.Tag(first[i][0], first[i][1]))
		assert.Equal(t, CellReserved, b.Tag(second[i][0], second[i][1]))
	}
	assert.Equal(t, CellStructural, b.Tag(6, 8), "timing crosses the format strip")
}

func TestPlaceTwicePanics(t *testing.T) {
	b := builderFor(t, 1)
	assert.Panics(t, func() { b.place(0, 0, false, CellData) })
	assert.Panics(t, func() { b.PlaceFunctionPatterns() })
}

func TestPlaceDataFillsEveryFreeModule(t *testing.T) {
	b := builderFor(t, 2)
	bits := &bitutil.BitArray{}
	bits.AppendBits(0xFF, 8)
	b.PlaceData(bits, 0)
	dataCells := 0
	for y := 0; y < b.Dimension(); y++ {
		for x := 0; x < b.Dimension(); x++ {
			require.NotEqual(t, CellFree, b.Tag(x, y), "module (%d,%d) left free", x, y)
			if b.Tag(x, y) == CellData {
				dataCells++
			}
		}
	}
	v, _ := decoder.GetVersionForNumber(2)
	// 44 codewords plus 7 remainder bits.
	assert.Equal(t, 8*v.TotalCodewords+7, dataCells)

	m := b.Matrix()
	// The first bit lands bottom-right; a 1 under mask 0 at an even
	// coordinate sum is flipped to light.
	assert.False(t, m.Get(24, 24))
	assert.True(t, m.Get(23, 24))
}
