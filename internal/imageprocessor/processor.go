package imageprocessor

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Info is what an upload reports about its pixels
type Info struct {
	Width  int
	Height int
	Format string // jpeg, png, gif, webp, bmp, tiff
}

// Probe reads only the image header. Non-image payloads return an error; callers
// treat that as "dimensions unknown".
func Probe(data []byte) (Info, error) {
	if len(data) == 0 {
		return Info{}, fmt.Errorf("empty payload")
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Info{}, fmt.Errorf("failed to decode image header: %w", err)
	}
	return Info{Width: cfg.Width, Height: cfg.Height, Format: format}, nil
}

// Dimensions is Probe reduced to nullable width/height. It never fails.
func Dimensions(data []byte) (width, height *int) {
	info, err := Probe(data)
	if err != nil || info.Width <= 0 || info.Height <= 0 {
		return nil, nil
	}
	return &info.Width, &info.Height
}
