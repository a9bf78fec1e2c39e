// Package imageprocessor re-encodes accepted images to a capped
// resolution and format, giving storage and bandwidth a predictable
// ceiling independent of the source.
package imageprocessor

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"io"

	_ "image/gif"
	_ "image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// Processor fits images inside a square bounding box and encodes JPEG.
type Processor struct {
	maxDimension int
	quality      int // JPEG quality (1-100)
}

func NewProcessor(maxDimension, quality int) *Processor {
	if maxDimension <= 0 {
		maxDimension = 2048
	}
	if quality <= 0 || quality > 100 {
		quality = 80
	}
	return &Processor{
		maxDimension: maxDimension,
		quality:      quality,
	}
}

// Process decodes any registered format, resizes to fit within the
// bounding box without upscaling smaller images, and encodes JPEG at
// the fixed quality.
func (p *Processor) Process(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	resized := p.fit(img)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: p.quality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}

	return buf.Bytes(), nil
}

// fit scales an image down to the bounding box, preserving aspect
// ratio. Images already inside the box pass through untouched.
func (p *Processor) fit(img image.Image) image.Image {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if width <= p.maxDimension && height <= p.maxDimension {
		return img
	}

	newWidth := p.maxDimension
	newHeight := p.maxDimension
	ratio := float64(width) / float64(height)

	if ratio > 1 {
		newHeight = int(float64(p.maxDimension) / ratio)
	} else {
		newWidth = int(float64(p.maxDimension) * ratio)
	}
	if newWidth < 1 {
		newWidth = 1
	}
	if newHeight < 1 {
		newHeight = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}

// Dimensions returns the decoded width and height of an image.
func Dimensions(reader io.Reader) (width, height int, err error) {
	cfg, _, err := image.DecodeConfig(reader)
	if err != nil {
		return 0, 0, fmt.Errorf("decode image config: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}
