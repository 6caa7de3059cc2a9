package scarve

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVisualize_ReplaysSingleSeam(t *testing.T) {
	assert := assert.New(t)

	src := grayImage(3, 1, func(x, y int) uint8 {
		return []uint8{10, 130, 250}[x]
	})
	seam := Seam{Orientation: Vertical, Path: []int{1}}

	c := NewCarver(3, 1)
	carved, err := c.RemoveSeam(src, seam)
	require.NoError(t, err)

	replay, err := SeamHistory{seam}.Visualize(carved, 3, 1)
	require.NoError(t, err)

	// The surviving pixels shift back to their original slots and the
	// carved one leaves a red mark behind.
	assert.Equal(color.NRGBA{R: 10, G: 10, B: 10, A: 0xff}, replay.NRGBAAt(0, 0))
	assert.Equal(seamColor, replay.NRGBAAt(1, 0))
	assert.Equal(color.NRGBA{R: 250, G: 250, B: 250, A: 0xff}, replay.NRGBAAt(2, 0))
}

func TestVisualize_MarksEveryRemovedPixel(t *testing.T) {
	assert := assert.New(t)

	const origW, origH = 8, 8
	img := grayImage(origW, origH, func(x, y int) uint8 {
		return uint8((x*41 + y*13) % 251)
	})

	p.NewWidth = 6
	p.NewHeight = 5

	res, history, err := p.Carve(img)
	require.NoError(t, err)

	replay, err := history.Visualize(res, origW, origH)
	require.NoError(t, err)
	assert.Equal(origW, replay.Bounds().Dx())
	assert.Equal(origH, replay.Bounds().Dy())

	var reds int
	for y := 0; y < origH; y++ {
		for x := 0; x < origW; x++ {
			if replay.NRGBAAt(x, y) == seamColor {
				reds++
			}
		}
	}
	// Every removed pixel slot is painted, one per seam line.
	assert.Equal(origW*origH-6*5, reds)
}

func TestVisualize_ValidatesReconciliation(t *testing.T) {
	assert := assert.New(t)

	carved := image.NewNRGBA(image.Rect(0, 0, 4, 4))

	// The history does not grow the image back to the original size.
	_, err := SeamHistory{}.Visualize(carved, 6, 6)
	assert.Error(err)

	// Carved image larger than the claimed original.
	_, err = SeamHistory{}.Visualize(carved, 3, 3)
	assert.Error(err)

	// Seam length disagreeing with the replay height.
	bad := SeamHistory{{Orientation: Vertical, Path: []int{0, 0}}}
	_, err = bad.Visualize(carved, 5, 4)
	assert.Error(err)

	// More seams than the original size can absorb.
	over := SeamHistory{
		{Orientation: Vertical, Path: []int{0, 0, 0, 0}},
		{Orientation: Vertical, Path: []int{0, 0, 0, 0}},
	}
	_, err = over.Visualize(carved, 5, 4)
	assert.Error(err)
}
