package pattern

import (
	"math/rand/v2"

	"github.com/setanarut/texgen"
)

const staticMax = 200

// Static is grey TV-static noise: every pixel is (v, v, v) with v uniform in [0, 200].
func Static(r *rand.Rand, width, height int) texgen.PixelGrid {
	p := texgen.NewPixelGrid(width, height)
	for y := range height {
		for x := range width {
			v := uint8(between(r, 0, staticMax))
			p.Set(x, y, v, v, v)
		}
	}
	return p
}
