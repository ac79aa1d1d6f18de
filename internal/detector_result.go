package internal

import (
	imgproc "github.com/louisgthier/image-processing"
	"github.com/louisgthier/image-processing/bitutil"
)

// DetectorResult holds the module matrix sampled from a raster, the centres
// of the three finder patterns (top-left, top-right, bottom-left) in pixel
// coordinates, and the module pitch in pixels.
type DetectorResult struct {
	Bits       *bitutil.BitMatrix
	Points     []imgproc.ResultPoint
	ModuleSize float64
}

// NewDetectorResult creates a new DetectorResult.
func NewDetectorResult(bits *bitutil.BitMatrix, points []imgproc.ResultPoint, moduleSize float64) *DetectorResult {
	return &DetectorResult{Bits: bits, Points: points, ModuleSize: moduleSize}
}
