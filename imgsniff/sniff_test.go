package imgsniff

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func encodeTestPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 10), G: uint8(y * 10), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func TestSniffPNGDimensions(t *testing.T) {
	t.Parallel()
	data := encodeTestPNG(t, 16, 9)
	info, err := Sniff(data)
	if err != nil {
		t.Fatalf("Sniff: %v", err)
	}
	if info.Format != "png" {
		t.Fatalf("Format = %q, want png", info.Format)
	}
	if info.Width != 16 || info.Height != 9 {
		t.Fatalf("dims = %dx%d, want 16x9", info.Width, info.Height)
	}
}

func TestSniffGarbageFails(t *testing.T) {
	t.Parallel()
	if _, err := Sniff([]byte("not an image")); err == nil {
		t.Fatal("expected an error for non-image data")
	}
}

func TestAverageColorSolidFill(t *testing.T) {
	t.Parallel()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.RGBA{R: 10, G: 20, B: 30, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	avg, err := AverageColor(buf.Bytes())
	if err != nil {
		t.Fatalf("AverageColor: %v", err)
	}
	if avg.R != 10 || avg.G != 20 || avg.B != 30 {
		t.Fatalf("avg = %+v, want {10 20 30 255}", avg)
	}
}
