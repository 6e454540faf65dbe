package imgsniff

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// AverageColor decodes data fully and returns the average color of its
// pixels, downscaling first so large images cost a bounded amount of
// work. cmd/htmldump prints it as a hex swatch for each embedded image.
func AverageColor(data []byte) (color.RGBA, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return color.RGBA{}, fmt.Errorf("imgsniff: decode: %w", err)
	}

	const sampleSize = 8
	dst := image.NewRGBA(image.Rect(0, 0, sampleSize, sampleSize))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)

	var rSum, gSum, bSum, aSum uint64
	n := uint64(sampleSize * sampleSize)
	for y := 0; y < sampleSize; y++ {
		for x := 0; x < sampleSize; x++ {
			r, g, b, a := dst.At(x, y).RGBA()
			rSum += uint64(r >> 8)
			gSum += uint64(g >> 8)
			bSum += uint64(b >> 8)
			aSum += uint64(a >> 8)
		}
	}
	return color.RGBA{
		R: uint8(rSum / n),
		G: uint8(gSum / n),
		B: uint8(bSum / n),
		A: uint8(aSum / n),
	}, nil
}
