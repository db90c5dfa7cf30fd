// Package pattern provides seeded pixel-pattern generators for placeholder textures.
package pattern

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/setanarut/texgen"
)

var ErrUnknownPattern = errors.New("pattern: unknown pattern")

// Generator fills a new width x height grid, drawing all randomness from r.
type Generator interface {
	Generate(r *rand.Rand, width, height int) texgen.PixelGrid
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(r *rand.Rand, width, height int) texgen.PixelGrid

func (f GeneratorFunc) Generate(r *rand.Rand, width, height int) texgen.PixelGrid {
	return f(r, width, height)
}

var registry = map[string]Generator{
	"static": GeneratorFunc(Static),
	"metal":  GeneratorFunc(Metal),
}

// NewRand returns a PCG generator seeded with seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

// Lookup returns the generator registered under name.
func Lookup(name string) (Generator, error) {
	g, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownPattern, name, Names())
	}
	return g, nil
}

// Names returns the registered pattern names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// between returns a uniform int in [lo, hi].
func between(r *rand.Rand, lo, hi int) int {
	return lo + r.IntN(hi-lo+1)
}
