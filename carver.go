package scarve

import (
	"errors"
	"fmt"
	"image"
)

// ErrDegenerateGrid is returned when a seam is requested over a grid
// with no rows or no columns left.
var ErrDegenerateGrid = errors.New("grid has no rows or columns")

// Carver holds the cumulative seam costs of the current grid in a
// flat, row-major table.
type Carver struct {
	Width  int
	Height int
	Costs  []float64
}

// NewCarver returns an initialized Carver structure.
func NewCarver(width, height int) *Carver {
	return &Carver{
		width,
		height,
		make([]float64, width*height),
	}
}

// get returns the cumulative cost of the point.
func (c *Carver) get(x, y int) float64 {
	px := x + y*c.Width
	return c.Costs[px]
}

// set sets the cumulative cost of the point.
func (c *Carver) set(x, y int, v float64) {
	idx := x + y*c.Width
	c.Costs[idx] = v
}

// FindVerticalSeam locates the connected top-to-bottom path with the
// lowest total energy based on the following logic:
//
//   - traverse the table from the second row to the last row and
//     compute the cumulative minimum cost for all possible connected
//     seams for each entry (x, y), summing up the pixel energy with
//     the lowest cost among the three neighbors of the previous row.
//
//   - walk back up from the cheapest entry of the bottom row, at each
//     row preferring the straight predecessor, then the left one,
//     then the right one, lower cost winning.
func (c *Carver) FindVerticalSeam(et *EnergyTable) (Seam, error) {
	if c.Width == 0 || c.Height == 0 {
		return Seam{}, fmt.Errorf("unable to find a vertical seam: %w", ErrDegenerateGrid)
	}

	for x := 0; x < c.Width; x++ {
		c.set(x, 0, et.get(x, 0))
	}
	for y := 1; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			min := c.get(x, y-1)
			if x > 0 && c.get(x-1, y-1) < min {
				min = c.get(x-1, y-1)
			}
			if x < c.Width-1 && c.get(x+1, y-1) < min {
				min = c.get(x+1, y-1)
			}
			c.set(x, y, et.get(x, y)+min)
		}
	}

	// Pick the cheapest entry of the bottom row. On equal cost the
	// leftmost one wins.
	px, total := 0, c.get(0, c.Height-1)
	for x := 1; x < c.Width; x++ {
		if c.get(x, c.Height-1) < total {
			px, total = x, c.get(x, c.Height-1)
		}
	}

	path := make([]int, c.Height)
	path[c.Height-1] = px

	for y := c.Height - 2; y >= 0; y-- {
		px = path[y+1]
		best, cost := px, c.get(px, y)
		if px > 0 && c.get(px-1, y) < cost {
			best, cost = px-1, c.get(px-1, y)
		}
		if px < c.Width-1 && c.get(px+1, y) < cost {
			best = px + 1
		}
		path[y] = best
	}

	return Seam{Orientation: Vertical, Energy: total, Path: path}, nil
}

// FindHorizontalSeam locates the connected left-to-right path with the
// lowest total energy. It mirrors the vertical search with the roles
// of rows and columns swapped: the cumulative table is filled column
// by column and the backtracking walks from the cheapest entry of the
// rightmost column, preferring the straight predecessor, then the
// upper one, then the lower one.
func (c *Carver) FindHorizontalSeam(et *EnergyTable) (Seam, error) {
	if c.Width == 0 || c.Height == 0 {
		return Seam{}, fmt.Errorf("unable to find a horizontal seam: %w", ErrDegenerateGrid)
	}

	for y := 0; y < c.Height; y++ {
		c.set(0, y, et.get(0, y))
	}
	for x := 1; x < c.Width; x++ {
		for y := 0; y < c.Height; y++ {
			min := c.get(x-1, y)
			if y > 0 && c.get(x-1, y-1) < min {
				min = c.get(x-1, y-1)
			}
			if y < c.Height-1 && c.get(x-1, y+1) < min {
				min = c.get(x-1, y+1)
			}
			c.set(x, y, et.get(x, y)+min)
		}
	}

	// Pick the cheapest entry of the rightmost column. On equal cost
	// the topmost one wins.
	py, total := 0, c.get(c.Width-1, 0)
	for y := 1; y < c.Height; y++ {
		if c.get(c.Width-1, y) < total {
			py, total = y, c.get(c.Width-1, y)
		}
	}

	path := make([]int, c.Width)
	path[c.Width-1] = py

	for x := c.Width - 2; x >= 0; x-- {
		py = path[x+1]
		best, cost := py, c.get(x, py)
		if py > 0 && c.get(x, py-1) < cost {
			best, cost = py-1, c.get(x, py-1)
		}
		if py < c.Height-1 && c.get(x, py+1) < cost {
			best = py + 1
		}
		path[x] = best
	}

	return Seam{Orientation: Horizontal, Energy: total, Path: path}, nil
}

// RemoveSeam compacts the image by dropping the seam pixels and
// shifting the remainder of each row (vertical seams) or column
// (horizontal seams) inward. It returns a new image one column or one
// row smaller than the source.
func (c *Carver) RemoveSeam(img *image.NRGBA, seam Seam) (*image.NRGBA, error) {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()

	switch seam.Orientation {
	case Vertical:
		if len(seam.Path) != h {
			return nil, fmt.Errorf("vertical seam length %d does not match image height %d", len(seam.Path), h)
		}
		dst := image.NewNRGBA(image.Rect(0, 0, w-1, h))
		for y := 0; y < h; y++ {
			x := seam.Path[y]
			if x < 0 || x >= w {
				return nil, fmt.Errorf("seam column %d out of range at row %d", x, y)
			}
			si := img.PixOffset(0, y)
			di := dst.PixOffset(0, y)
			copy(dst.Pix[di:di+x*4], img.Pix[si:si+x*4])
			copy(dst.Pix[di+x*4:di+(w-1)*4], img.Pix[si+(x+1)*4:si+w*4])
		}
		return dst, nil
	case Horizontal:
		if len(seam.Path) != w {
			return nil, fmt.Errorf("horizontal seam length %d does not match image width %d", len(seam.Path), w)
		}
		dst := image.NewNRGBA(image.Rect(0, 0, w, h-1))
		for x := 0; x < w; x++ {
			y := seam.Path[x]
			if y < 0 || y >= h {
				return nil, fmt.Errorf("seam row %d out of range at column %d", y, x)
			}
			for yy := 0; yy < y; yy++ {
				dst.SetNRGBA(x, yy, img.NRGBAAt(x, yy))
			}
			for yy := y; yy < h-1; yy++ {
				dst.SetNRGBA(x, yy, img.NRGBAAt(x, yy+1))
			}
		}
		return dst, nil
	}
	return nil, fmt.Errorf("unknown seam orientation %d", seam.Orientation)
}
