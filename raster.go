package imgproc

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/disintegration/imaging"
	"golang.org/x/image/bmp"
)

// Raster is a rectangular grid of color samples addressed by row and column.
// Channels range over 0-255.
type Raster interface {
	Width() int
	Height() int
	At(row, col int) color.NRGBA
	Set(row, col int, c color.NRGBA)
}

var (
	black = color.NRGBA{A: 0xFF}
	white = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
)

// Image is a Raster backed by an *image.NRGBA whose origin is (0, 0).
type Image struct {
	pix *image.NRGBA
}

// NewImage creates a blank white raster of the given size.
func NewImage(width, height int) *Image {
	if width < 1 || height < 1 {
		panic(fmt.Sprintf("imgproc: invalid raster size %dx%d", width, height))
	}
	return &Image{pix: imaging.New(width, height, white)}
}

// FromImage copies any image.Image into a new raster.
func FromImage(img image.Image) *Image {
	return &Image{pix: imaging.Clone(img)}
}

// Open reads a raster from a file. The format is chosen from the contents;
// BMP, PNG, JPEG, GIF and TIFF are understood.
func Open(path string) (*Image, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open raster: %w", err)
	}
	return FromImage(img), nil
}

// Decode reads a raster from a stream.
func Decode(r io.Reader) (*Image, error) {
	img, err := imaging.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode raster: %w", err)
	}
	return FromImage(img), nil
}

// Save writes the raster to a file. The format follows the file extension.
func (m *Image) Save(path string) error {
	return imaging.Save(m.pix, path)
}

// EncodePNG writes the raster as PNG.
func (m *Image) EncodePNG(w io.Writer) error {
	return imaging.Encode(w, m.pix, imaging.PNG)
}

// EncodeBMP writes the raster as a 24-bit BMP.
func (m *Image) EncodeBMP(w io.Writer) error {
	return bmp.Encode(w, m.pix)
}

// NRGBA exposes the underlying image.
func (m *Image) NRGBA() *image.NRGBA { return m.pix }

// Width returns the width in pixels.
func (m *Image) Width() int { return m.pix.Bounds().Dx() }

// Height returns the height in pixels.
func (m *Image) Height() int { return m.pix.Bounds().Dy() }

// At returns the sample at (row, col).
func (m *Image) At(row, col int) color.NRGBA {
	return m.pix.NRGBAAt(col, row)
}

// Set stores the sample at (row, col).
func (m *Image) Set(row, col int, c color.NRGBA) {
	m.pix.SetNRGBA(col, row, c)
}

// Paste copies src onto m with its top-left corner at (row, col). Parts of
// src falling outside m are clipped.
func (m *Image) Paste(src *Image, row, col int) {
	m.pix = imaging.Paste(m.pix, src.pix, image.Pt(col, row))
}

// Flatten composites c over a white background.
func Flatten(c color.NRGBA) color.NRGBA {
	if c.A == 0xFF {
		return c
	}
	a := uint32(c.A)
	blend := func(v uint8) uint8 {
		return uint8((uint32(v)*a + 0xFF*(0xFF-a)) / 0xFF)
	}
	return color.NRGBA{R: blend(c.R), G: blend(c.G), B: blend(c.B), A: 0xFF}
}

// Channels returns the smallest and largest channel of a flattened sample.
func Channels(c color.NRGBA) (lo, hi uint8) {
	c = Flatten(c)
	lo, hi = c.R, c.R
	for _, v := range [2]uint8{c.G, c.B} {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}
