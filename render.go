package imgproc

import "github.com/louisgthier/image-processing/bitutil"

// ScaleMatrix enlarges a module matrix so that every module covers
// scale×scale cells and surrounds it with margin light modules.
func ScaleMatrix(input *bitutil.BitMatrix, scale, margin int) *bitutil.BitMatrix {
	if scale < 1 {
		scale = 1
	}
	if margin < 0 {
		margin = 0
	}
	outputWidth := (input.Width() + 2*margin) * scale
	outputHeight := (input.Height() + 2*margin) * scale
	output := bitutil.NewBitMatrixWithSize(outputWidth, outputHeight)
	for inputY := 0; inputY < input.Height(); inputY++ {
		outputY := (inputY + margin) * scale
		for inputX := 0; inputX < input.Width(); inputX++ {
			if input.Get(inputX, inputY) {
				output.SetRegion((inputX+margin)*scale, outputY, scale, scale)
			}
		}
	}
	return output
}

// MatrixToImage converts a bit matrix into a raster where set bits are black
// and unset bits are white.
func MatrixToImage(matrix *bitutil.BitMatrix) *Image {
	img := NewImage(matrix.Width(), matrix.Height())
	for y := 0; y < matrix.Height(); y++ {
		for x := 0; x < matrix.Width(); x++ {
			if matrix.Get(x, y) {
				img.Set(y, x, black)
			}
		}
	}
	return img
}

// RenderMatrix writes a symbol back into pixel form.
func RenderMatrix(matrix *bitutil.BitMatrix, scale, margin int) *Image {
	return MatrixToImage(ScaleMatrix(matrix, scale, margin))
}
