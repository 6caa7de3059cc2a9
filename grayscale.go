package scarve

import (
	"image"
	"image/color"

	"gonum.org/v1/gonum/floats"
)

// Grayscale renders the energy table as a grayscale image where the
// brightness of each pixel is proportional to its energy. The cell
// values are rescaled so that the highest energy maps to white; a
// table holding no energy at all renders black.
func (et *EnergyTable) Grayscale() *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, et.Width, et.Height))

	var max float64
	if len(et.Cells) > 0 {
		max = floats.Max(et.Cells)
	}

	for x := 0; x < et.Width; x++ {
		for y := 0; y < et.Height; y++ {
			var lum float64
			if max > 0 {
				lum = et.get(x, y) * 256 / max
			}
			if lum > 255 {
				lum = 255
			}
			pixel := color.NRGBA{R: uint8(lum), G: uint8(lum), B: uint8(lum), A: 0xff}
			dst.SetNRGBA(x, y, pixel)
		}
	}
	return dst
}
