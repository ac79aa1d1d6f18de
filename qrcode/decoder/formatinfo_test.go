package decoder_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/louisgthier/image-processing/bitutil"
	"github.com/louisgthier/image-processing/qrcode/decoder"
	"github.com/louisgthier/image-processing/qrcode/encoder"
)

func TestFormatCopiesAgree(t *testing.T) {
	levels := []decoder.ErrorCorrectionLevel{decoder.ECLevelL, decoder.ECLevelM, decoder.ECLevelQ, decoder.ECLevelH}
	for n := 1; n <= decoder.MaxVersion; n++ {
		v, err := decoder.GetVersionForNumber(n)
		require.NoError(t, err)
		for _, ecl := range levels {
			for mask := 0; mask < 8; mask++ {
				t.Run(fmt.Sprintf("%d-%s-mask%d", n, ecl, mask), func(t *testing.T) {
					m := encoder.BuildMatrix(&bitutil.BitArray{}, ecl, v, mask)
					first, second := decoder.ReadFormatWords(m)
					assert.Equal(t, int(decoder.FormatBits(ecl, mask)), first)
					assert.Equal(t, first, second)

					fromFirst := decoder.DecodeFormatInformation(first, first)
					fromSecond := decoder.DecodeFormatInformation(second, second)
					require.NotNil(t, fromFirst)
					require.NotNil(t, fromSecond)
					assert.Equal(t, *fromFirst, *fromSecond)
					assert.Equal(t, ecl, fromFirst.ECLevel)
					assert.Equal(t, byte(mask), fromFirst.DataMask)
				})
			}
		}
	}
}
