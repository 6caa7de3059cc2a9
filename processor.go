package scarve

import (
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/disintegration/imaging"
)

// ErrInvalidDimensions is returned when the requested target size does
// not fit inside the source image on both axes.
var ErrInvalidDimensions = errors.New("invalid target dimensions")

// ProgressFunc is invoked after every removed seam with the number of
// seams removed so far and the total number of seams to remove.
type ProgressFunc func(completed, total int)

// SeamCarver is an interface that wraps the Carve method. It takes the
// source image as parameter and returns the resized image together
// with the history of the removed seams.
type SeamCarver interface {
	Carve(img *image.NRGBA) (*image.NRGBA, SeamHistory, error)
}

var _ SeamCarver = (*Processor)(nil)

// Processor options
type Processor struct {
	NewWidth   int
	NewHeight  int
	OnProgress ProgressFunc
}

// Carve is the main entry point for the image resize operation. It
// removes the lowest energy seams one by one until the image reaches
// the requested width and height, recomputing the energy table after
// every removal. While seams of both orientations are still pending,
// the two candidates are compared and the horizontal one is removed
// only when its total energy is strictly lower, so on equal cost the
// vertical seam wins. Each removal is reported through the OnProgress
// callback when one is set.
func (p *Processor) Carve(img *image.NRGBA) (*image.NRGBA, SeamHistory, error) {
	width, height := img.Bounds().Dx(), img.Bounds().Dy()

	if p.NewWidth < 1 || p.NewWidth > width {
		return nil, nil, fmt.Errorf("%w: width %d must be between 1 and %d",
			ErrInvalidDimensions, p.NewWidth, width)
	}
	if p.NewHeight < 1 || p.NewHeight > height {
		return nil, nil, fmt.Errorf("%w: height %d must be between 1 and %d",
			ErrInvalidDimensions, p.NewHeight, height)
	}

	remVert := width - p.NewWidth    // vertical seams still to remove
	remHoriz := height - p.NewHeight // horizontal seams still to remove
	total := remVert + remHoriz

	var completed int
	history := make(SeamHistory, 0, total)

	for remVert > 0 || remHoriz > 0 {
		et := NewEnergyTable(img)
		c := NewCarver(et.Width, et.Height)

		var seam Seam
		switch {
		case remVert > 0 && remHoriz > 0:
			vs, err := c.FindVerticalSeam(et)
			if err != nil {
				return nil, nil, err
			}
			hs, err := c.FindHorizontalSeam(et)
			if err != nil {
				return nil, nil, err
			}
			if hs.Energy < vs.Energy {
				seam = hs
			} else {
				seam = vs
			}
		case remVert > 0:
			vs, err := c.FindVerticalSeam(et)
			if err != nil {
				return nil, nil, err
			}
			seam = vs
		default:
			hs, err := c.FindHorizontalSeam(et)
			if err != nil {
				return nil, nil, err
			}
			seam = hs
		}

		res, err := c.RemoveSeam(img, seam)
		if err != nil {
			return nil, nil, err
		}
		img = res

		if seam.Orientation == Vertical {
			remVert--
		} else {
			remHoriz--
		}

		history = append(history, seam)
		completed++
		if p.OnProgress != nil {
			p.OnProgress(completed, total)
		}
	}

	return img, history, nil
}

// Process carves the image read from r and encodes the result into w.
// We are using the io package, since we can provide different input
// and output types, as long as they implement the io.Reader and
// io.Writer interface.
func (p *Processor) Process(r io.Reader, w io.Writer) error {
	src, err := imaging.Decode(r)
	if err != nil {
		return err
	}

	res, _, err := p.Carve(imgToNRGBA(src))
	if err != nil {
		return err
	}

	return encodeImg(w, res)
}
