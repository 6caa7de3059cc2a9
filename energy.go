package scarve

import (
	"image"
	"image/color"
)

// EnergyTable holds the dual-gradient energy of every pixel of an
// image in a flat, row-major table.
type EnergyTable struct {
	Width  int
	Height int
	Cells  []float64
}

// NewEnergyTable computes the dual-gradient energy of every pixel of
// the source image. Pixels on the border wrap around to the opposite
// edge, so the table is defined for images down to a single pixel.
func NewEnergyTable(img *image.NRGBA) *EnergyTable {
	dx, dy := img.Bounds().Dx(), img.Bounds().Dy()
	et := &EnergyTable{
		Width:  dx,
		Height: dy,
		Cells:  make([]float64, dx*dy),
	}

	for y := 0; y < dy; y++ {
		for x := 0; x < dx; x++ {
			left := img.NRGBAAt((x-1+dx)%dx, y)
			right := img.NRGBAAt((x+1)%dx, y)
			up := img.NRGBAAt(x, (y-1+dy)%dy)
			down := img.NRGBAAt(x, (y+1)%dy)

			et.set(x, y, dualGradient(left, right)+dualGradient(up, down))
		}
	}
	return et
}

// get returns the energy value of the point.
func (et *EnergyTable) get(x, y int) float64 {
	px := x + y*et.Width
	return et.Cells[px]
}

// set sets the energy value of the point.
func (et *EnergyTable) set(x, y int, v float64) {
	idx := x + y*et.Width
	et.Cells[idx] = v
}

// dualGradient sums up the squared differences of the red, green and
// blue channels between two opposite neighboring pixels.
func dualGradient(a, b color.NRGBA) float64 {
	dr := float64(a.R) - float64(b.R)
	dg := float64(a.G) - float64(b.G)
	db := float64(a.B) - float64(b.B)

	return dr*dr + dg*dg + db*db
}
