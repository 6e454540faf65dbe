// Package imgsniff identifies an image's format and pixel dimensions from
// its encoded bytes (Sniff, which never decodes pixel data), and samples a
// fully decoded image's average color (AverageColor).
package imgsniff

import (
	"bytes"
	"fmt"
	"image"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// Info is what Sniff could determine about an encoded image buffer.
type Info struct {
	Format string
	Width  int
	Height int
}

// Sniff reads just enough of data to identify its format and dimensions.
// It never decodes pixel data.
func Sniff(data []byte) (*Info, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("imgsniff: %w", err)
	}
	return &Info{Format: format, Width: cfg.Width, Height: cfg.Height}, nil
}
