package main

import (
	"image"
	"image/color"
	"log"
	"math/rand/v2"

	"github.com/setanarut/texgen"
	"github.com/setanarut/texgen/pattern"
)

func main() {
	r := pattern.NewRand(42)

	if err := texgen.Save("static.png", 600, 200, pattern.Static(r, 600, 200)); err != nil {
		log.Fatal(err)
	}

	b, err := (&texgen.Encoder{CompressionLevel: texgen.BestSpeed}).EncodeImage(generateNoiseImage(r, 600, 200))
	if err != nil {
		log.Fatal(err)
	}
	if err := texgen.WriteFile("noise.png", b); err != nil {
		log.Fatal(err)
	}
}

func generateNoiseImage(r *rand.Rand, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := range height {
		for x := range width {
			img.SetRGBA(x, y, noisePalette[r.IntN(len(noisePalette))])
		}
	}
	return img
}

var noisePalette = []color.RGBA{
	{R: 0, G: 0, B: 0, A: 255},   // Black
	{R: 255, G: 0, B: 0, A: 255}, // Red
	{R: 0, G: 255, B: 0, A: 255}, // Green
	{R: 0, G: 0, B: 255, A: 255}, // Blue
}
