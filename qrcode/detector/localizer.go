// Package detector locates an upright, uniformly scaled QR code in a raster
// and samples it into a module matrix.
package detector

import (
	"fmt"
	"math"

	imgproc "github.com/louisgthier/image-processing"
	"github.com/louisgthier/image-processing/bitutil"
	"github.com/louisgthier/image-processing/internal"
)

// State is a step of the localization progression.
type State int

const (
	Scanning State = iota
	CandidateFound
	Validated
	Extracted
)

func (s State) String() string {
	switch s {
	case Scanning:
		return "scanning"
	case CandidateFound:
		return "candidate-found"
	case Validated:
		return "validated"
	case Extracted:
		return "extracted"
	}
	return "unknown"
}

// FinderPattern is a finder located in module space, with the pixel centre
// computed from the symbol origin and pitch.
type FinderPattern struct {
	X, Y                float64
	EstimatedModuleSize float64
}

// tone classifies one sample.
type tone int

const (
	ambiguous tone = iota
	dark
	light
)

// Localizer finds the top-left finder pattern by scanning rows for a dark
// run, validates it module by module, then measures the symbol from the
// top-right and bottom-left finders. A Localizer is single use.
type Localizer struct {
	image           imgproc.Raster
	darkThreshold   int
	sampleThreshold int

	state     State
	originX   int
	originY   int
	pitch     float64
	dimension int
}

// NewLocalizer creates a Localizer over image. opts may be nil.
func NewLocalizer(image imgproc.Raster, opts *imgproc.DecodeOptions) *Localizer {
	darkThreshold, sampleThreshold := opts.Thresholds()
	return &Localizer{
		image:           image,
		darkThreshold:   darkThreshold,
		sampleThreshold: sampleThreshold,
	}
}

// State returns the state the last Locate call stopped in: Extracted on
// success, Scanning when no symbol was found.
func (l *Localizer) State() State { return l.state }

// Locate runs the localization and returns the sampled module matrix.
func (l *Localizer) Locate() (*internal.DetectorResult, error) {
	width, height := l.image.Width(), l.image.Height()
	for y := 0; y < height; y++ {
		for x := 0; x < width; {
			l.state = Scanning
			if l.toneAt(y, x) != dark {
				x++
				continue
			}
			run := l.darkRun(y, x)
			if run >= 7 && l.tryCandidate(x, y, run) {
				return l.extract(), nil
			}
			x += run
		}
	}
	return nil, fmt.Errorf("%w: no finder pattern in %dx%d raster", imgproc.ErrNotFound, width, height)
}

// tryCandidate walks CandidateFound and Validated for a dark run starting
// at (x, y). On success the Localizer holds the symbol geometry.
func (l *Localizer) tryCandidate(x, y, run int) bool {
	l.state = CandidateFound
	l.originX, l.originY = x, y
	l.pitch = float64(run) / 7
	if !l.validateFinder(0, 0, 1, 1) {
		return false
	}

	l.state = Validated
	dimension, ok := l.findTopRight()
	if !ok {
		return false
	}
	if !l.validateFinder(0, dimension-7, 1, -1) {
		return false
	}
	l.dimension = dimension
	return true
}

// findTopRight scans module row 0 rightwards for the top-right finder and
// returns the symbol dimension it implies.
func (l *Localizer) findTopRight() (int, bool) {
	for m := 8; ; m++ {
		t := l.moduleTone(m, 0)
		if t == ambiguous {
			return 0, false
		}
		if t != dark || l.moduleTone(m-1, 0) == dark {
			continue
		}
		if !l.validateFinder(m, 0, -1, 1) {
			continue
		}
		dimension := m + 7
		if dimension >= 21 && dimension%4 == 1 {
			return dimension, true
		}
	}
}

// validateFinder checks the 7×7 finder whose top-left module is (mx, my),
// together with its separator: one light column on the sepX side and one
// light row on the sepY side (+1 right/below, -1 left/above).
func (l *Localizer) validateFinder(mx, my, sepX, sepY int) bool {
	for y := 0; y < 7; y++ {
		for x := 0; x < 7; x++ {
			ring := x == 0 || y == 0 || x == 6 || y == 6
			core := x >= 2 && x <= 4 && y >= 2 && y <= 4
			want := light
			if ring || core {
				want = dark
			}
			if l.moduleTone(mx+x, my+y) != want {
				return false
			}
		}
	}
	sepCol := mx + 7
	if sepX < 0 {
		sepCol = mx - 1
	}
	sepRow := my + 7
	if sepY < 0 {
		sepRow = my - 1
	}
	for i := 0; i < 7; i++ {
		if l.moduleTone(sepCol, my+i) != light || l.moduleTone(mx+i, sepRow) != light {
			return false
		}
	}
	return l.moduleTone(sepCol, sepRow) == light
}

// moduleCenter returns the pixel sampled for module (mx, my).
func (l *Localizer) moduleCenter(mx, my int) (px, py int) {
	px = l.originX + int(math.Floor((float64(mx)+0.5)*l.pitch))
	py = l.originY + int(math.Floor((float64(my)+0.5)*l.pitch))
	return px, py
}

func (l *Localizer) moduleTone(mx, my int) tone {
	px, py := l.moduleCenter(mx, my)
	if px < 0 || py < 0 || px >= l.image.Width() || py >= l.image.Height() {
		return ambiguous
	}
	return l.toneAt(py, px)
}

func (l *Localizer) toneAt(row, col int) tone {
	lo, hi := imgproc.Channels(l.image.At(row, col))
	switch {
	case int(hi) < l.darkThreshold:
		return dark
	case int(lo) > 255-l.darkThreshold:
		return light
	}
	return ambiguous
}

func (l *Localizer) darkRun(row, col int) int {
	n := 0
	for col+n < l.image.Width() && l.toneAt(row, col+n) == dark {
		n++
	}
	return n
}

// extract resamples every module centre into a matrix.
func (l *Localizer) extract() *internal.DetectorResult {
	bits := bitutil.NewBitMatrix(l.dimension)
	for my := 0; my < l.dimension; my++ {
		for mx := 0; mx < l.dimension; mx++ {
			px, py := l.moduleCenter(mx, my)
			_, hi := imgproc.Channels(l.image.At(py, px))
			if int(hi) < l.sampleThreshold {
				bits.Set(mx, my)
			}
		}
	}
	l.state = Extracted
	return internal.NewDetectorResult(bits, l.finderCenters(), l.pitch)
}

// finderCenters returns the pixel centres of the top-left, top-right and
// bottom-left finders.
func (l *Localizer) finderCenters() []imgproc.ResultPoint {
	patterns := []FinderPattern{
		{X: 3.5, Y: 3.5},
		{X: float64(l.dimension) - 3.5, Y: 3.5},
		{X: 3.5, Y: float64(l.dimension) - 3.5},
	}
	points := make([]imgproc.ResultPoint, len(patterns))
	for i, fp := range patterns {
		fp.EstimatedModuleSize = l.pitch
		points[i] = imgproc.ResultPoint{
			X: float64(l.originX) + fp.X*fp.EstimatedModuleSize,
			Y: float64(l.originY) + fp.Y*fp.EstimatedModuleSize,
		}
	}
	return points
}
