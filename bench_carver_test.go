package scarve

import (
	"testing"
)

func Benchmark_Carver(b *testing.B) {
	img := grayImage(256, 256, func(x, y int) uint8 {
		return uint8((x*37 + y*101) % 251)
	})
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		et := NewEnergyTable(img)
		c := NewCarver(et.Width, et.Height)

		seam, err := c.FindVerticalSeam(et)
		if err != nil {
			b.FailNow()
		}
		if _, err := c.RemoveSeam(img, seam); err != nil {
			b.FailNow()
		}
	}
}
