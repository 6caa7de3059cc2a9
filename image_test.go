package scarve

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"os"
	"path/filepath"
	"testing"

	"github.com/scarve/scarve/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImage_ImgToNRGBA(t *testing.T) {
	rect := image.Rect(-1, -1, 3, 3)

	testCases := []struct {
		name  string
		img   image.Image
		delta int
	}{
		{name: "NRGBA", img: fillImage(image.NewNRGBA(rect)), delta: 0},
		{name: "RGBA", img: fillImage(image.NewRGBA(rect)), delta: 0},
		{name: "YCbCr-444", img: makeYCbCrImage(rect, image.YCbCrSubsampleRatio444), delta: 2},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := imgToNRGBA(tc.img)

			assert.Equal(t, image.Point{}, got.Bounds().Min)
			assert.Equal(t, rect.Dx(), got.Bounds().Dx())
			assert.Equal(t, rect.Dy(), got.Bounds().Dy())

			for y := 0; y < rect.Dy(); y++ {
				for x := 0; x < rect.Dx(); x++ {
					want := color.NRGBAModel.Convert(tc.img.At(rect.Min.X+x, rect.Min.Y+y)).(color.NRGBA)
					if !closeColors(got.NRGBAAt(x, y), want, tc.delta) {
						t.Errorf("pixel (%d, %d): got %v want %v", x, y, got.NRGBAAt(x, y), want)
					}
				}
			}
		})
	}
}

func TestImage_EncodeToWriter(t *testing.T) {
	img := grayImage(4, 3, func(x, y int) uint8 {
		return uint8(20*x + 5*y)
	})

	// Non file writers fall back to the JPEG encoder.
	var buf bytes.Buffer
	require.NoError(t, encodeImg(&buf, img))

	_, format, err := image.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
}

func TestImage_EncodeByExtension(t *testing.T) {
	img := grayImage(4, 3, func(x, y int) uint8 {
		return uint8(20*x + 5*y)
	})

	testCases := []struct {
		fname  string
		format string
	}{
		{fname: "out.png", format: "png"},
		{fname: "out.bmp", format: "bmp"},
		{fname: "out.jpg", format: "jpeg"},
		{fname: "out.jpeg", format: "jpeg"},
		{fname: "out", format: "jpeg"},
	}

	for _, tc := range testCases {
		t.Run(tc.fname, func(t *testing.T) {
			fname := filepath.Join(t.TempDir(), tc.fname)
			f, err := os.Create(fname)
			require.NoError(t, err)

			require.NoError(t, encodeImg(f, img))
			require.NoError(t, f.Close())

			r, err := os.Open(fname)
			require.NoError(t, err)
			defer r.Close()

			_, format, err := image.Decode(r)
			require.NoError(t, err)
			assert.Equal(t, tc.format, format)
		})
	}
}

func TestImage_EncodeRejectsUnknownExtension(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))

	f, err := os.Create(filepath.Join(t.TempDir(), "out.txt"))
	require.NoError(t, err)
	defer f.Close()

	assert.Error(t, encodeImg(f, img))
}

// fillImage covers the image with a deterministic color pattern.
func fillImage(img draw.Image) image.Image {
	rect := img.Bounds()
	i := 0
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			img.Set(x, y, color.NRGBA{
				R: uint8(i * 17 % 256),
				G: uint8(i * 29 % 256),
				B: uint8(i * 43 % 256),
				A: 0xff,
			})
			i++
		}
	}
	return img
}

// makeYCbCrImage builds an YCbCr image with a deterministic color pattern.
func makeYCbCrImage(rect image.Rectangle, sr image.YCbCrSubsampleRatio) *image.YCbCr {
	img := image.NewYCbCr(rect, sr)
	i := 0
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			iy := img.YOffset(x, y)
			ic := img.COffset(x, y)
			img.Y[iy], img.Cb[ic], img.Cr[ic] = color.RGBToYCbCr(
				uint8(i*17%256), uint8(i*29%256), uint8(i*43%256))
			i++
		}
	}
	return img
}

// closeColors reports whether the two colors match within the given
// per-channel tolerance.
func closeColors(a, b color.NRGBA, delta int) bool {
	return utils.Abs(int(a.R)-int(b.R)) <= delta &&
		utils.Abs(int(a.G)-int(b.G)) <= delta &&
		utils.Abs(int(a.B)-int(b.B)) <= delta &&
		utils.Abs(int(a.A)-int(b.A)) <= delta
}
