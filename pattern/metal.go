package pattern

import (
	"math/rand/v2"

	"github.com/setanarut/texgen"
)

const (
	metalBase   = 60
	metalJitter = 15

	hScratchChance = 0.03
	vScratchChance = 0.01
)

// Metal is scratched dark metal with a slight blue tint.
// Scratches replace the base brightness; a vertical scratch overrides a horizontal one.
func Metal(r *rand.Rand, width, height int) texgen.PixelGrid {
	p := texgen.NewPixelGrid(width, height)
	for y := range height {
		for x := range width {
			base := metalBase + between(r, -metalJitter, metalJitter)
			if r.Float64() < hScratchChance {
				base = between(r, 100, 160)
			}
			if r.Float64() < vScratchChance {
				base = between(r, 80, 140)
			}
			p.Set(x, y, uint8(base), uint8(base+2), uint8(base+4))
		}
	}
	return p
}
