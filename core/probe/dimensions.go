// Package probe reads pixel dimensions from image headers.
package probe

import (
	"bytes"
	"image"
	_ "image/gif"  // register GIF decoder for image.DecodeConfig
	_ "image/jpeg" // register JPEG decoder for image.DecodeConfig
	_ "image/png"  // register PNG decoder for image.DecodeConfig

	_ "golang.org/x/image/bmp"  // register BMP decoder for image.DecodeConfig
	_ "golang.org/x/image/tiff" // register TIFF decoder for image.DecodeConfig
	_ "golang.org/x/image/webp" // register WebP decoder for image.DecodeConfig
)

// Dimensions returns the width and height of the image in data, or ok=false
// when no registered decoder accepts it. It never panics on malformed input.
func Dimensions(data []byte) (width, height uint32, ok bool) {
	defer func() {
		if recover() != nil {
			width, height, ok = 0, 0, false
		}
	}()

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil || cfg.Width <= 0 || cfg.Height <= 0 {
		return 0, 0, false
	}
	return uint32(cfg.Width), uint32(cfg.Height), true
}
