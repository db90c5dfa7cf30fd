package texgen

import (
	"fmt"
	"image"
	"image/color"
)

// PixelGrid is a row-major grid of RGB triples, top row first.
// Every row holds width*3 bytes.
type PixelGrid [][]byte

// NewPixelGrid returns a zeroed (black) grid.
func NewPixelGrid(width, height int) PixelGrid {
	if width < 0 || height < 0 {
		return nil
	}
	buf := make([]byte, width*3*height)
	p := make(PixelGrid, height)
	for y := range height {
		p[y] = buf[y*width*3 : (y+1)*width*3 : (y+1)*width*3]
	}
	return p
}

// PixelGridFromImage copies img into a new grid. Alpha is discarded.
func PixelGridFromImage(img image.Image) PixelGrid {
	bounds := img.Bounds()
	p := NewPixelGrid(bounds.Dx(), bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
			p.Set(x-bounds.Min.X, y-bounds.Min.Y, c.R, c.G, c.B)
		}
	}
	return p
}

// Validate reports ErrInvalidDimensions unless p has exactly height rows of width pixels.
func (p PixelGrid) Validate(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if uint64(width) > 1<<31-1 || uint64(height) > 1<<31-1 {
		return fmt.Errorf("%w: %dx%d exceeds 2^31-1", ErrInvalidDimensions, width, height)
	}
	if len(p) != height {
		return fmt.Errorf("%w: got %d rows, want %d", ErrInvalidDimensions, len(p), height)
	}
	for y, row := range p {
		if len(row) != width*3 {
			return fmt.Errorf("%w: row %d has %d bytes, want %d", ErrInvalidDimensions, y, len(row), width*3)
		}
	}
	return nil
}

// Set stores the pixel at (x, y).
func (p PixelGrid) Set(x, y int, r, g, b uint8) {
	row := p[y]
	row[x*3] = r
	row[x*3+1] = g
	row[x*3+2] = b
}

// At returns the pixel at (x, y).
func (p PixelGrid) At(x, y int) (r, g, b uint8) {
	row := p[y]
	return row[x*3], row[x*3+1], row[x*3+2]
}
