package scarve

import (
	"fmt"
	"image"
	"image/color"
)

// seamColor is the color the replayed seam pixels are painted with.
var seamColor = color.NRGBA{R: 0xff, A: 0xff}

// Visualize replays the recorded seams over the carved image and
// returns an image restored to the original dimensions where every
// removed pixel slot is painted red. The history is replayed in
// reverse removal order: each seam re-inserts one row or column by
// shifting the pixels beyond it outward, so the grid grows back one
// seam at a time until it reaches the original size.
func (sh SeamHistory) Visualize(carved *image.NRGBA, origWidth, origHeight int) (*image.NRGBA, error) {
	curW, curH := carved.Bounds().Dx(), carved.Bounds().Dy()
	if curW > origWidth || curH > origHeight {
		return nil, fmt.Errorf("carved image %dx%d exceeds the original size %dx%d",
			curW, curH, origWidth, origHeight)
	}

	dst := image.NewNRGBA(image.Rect(0, 0, origWidth, origHeight))
	for y := 0; y < curH; y++ {
		si := carved.PixOffset(0, y)
		di := dst.PixOffset(0, y)
		copy(dst.Pix[di:di+curW*4], carved.Pix[si:si+curW*4])
	}

	for i := len(sh) - 1; i >= 0; i-- {
		seam := sh[i]
		switch seam.Orientation {
		case Vertical:
			if curW == origWidth {
				return nil, fmt.Errorf("seam replay exceeds the original width %d", origWidth)
			}
			if len(seam.Path) != curH {
				return nil, fmt.Errorf("vertical seam length %d does not match replay height %d",
					len(seam.Path), curH)
			}
			for y := 0; y < curH; y++ {
				x := seam.Path[y]
				if x < 0 || x > curW {
					return nil, fmt.Errorf("seam column %d out of range at row %d", x, y)
				}
				off := dst.PixOffset(x, y)
				end := dst.PixOffset(curW, y)
				copy(dst.Pix[off+4:end+4], dst.Pix[off:end])
				dst.SetNRGBA(x, y, seamColor)
			}
			curW++
		case Horizontal:
			if curH == origHeight {
				return nil, fmt.Errorf("seam replay exceeds the original height %d", origHeight)
			}
			if len(seam.Path) != curW {
				return nil, fmt.Errorf("horizontal seam length %d does not match replay width %d",
					len(seam.Path), curW)
			}
			for x := 0; x < curW; x++ {
				yp := seam.Path[x]
				if yp < 0 || yp > curH {
					return nil, fmt.Errorf("seam row %d out of range at column %d", yp, x)
				}
				for y := curH; y > yp; y-- {
					dst.SetNRGBA(x, y, dst.NRGBAAt(x, y-1))
				}
				dst.SetNRGBA(x, yp, seamColor)
			}
			curH++
		default:
			return nil, fmt.Errorf("unknown seam orientation %d", seam.Orientation)
		}
	}

	if curW != origWidth || curH != origHeight {
		return nil, fmt.Errorf("replayed size %dx%d does not match the original size %dx%d",
			curW, curH, origWidth, origHeight)
	}
	return dst, nil
}
