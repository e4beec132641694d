package renderer

import (
	"image"
	"image/color"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// Framebuffer holds the raw per-pixel sample sums of a render in one
// contiguous row-major buffer. Row 0 is the bottom of the image.
type Framebuffer struct {
	Width           int
	Height          int
	SamplesPerPixel int
	pixels          []core.Vec3
}

// NewFramebuffer allocates a zeroed framebuffer
func NewFramebuffer(width, height, samplesPerPixel int) *Framebuffer {
	return &Framebuffer{
		Width:           width,
		Height:          height,
		SamplesPerPixel: samplesPerPixel,
		pixels:          make([]core.Vec3, width*height),
	}
}

// Row returns the writable cells of one row. Callers must own the row.
func (f *Framebuffer) Row(row int) []core.Vec3 {
	start := row * f.Width
	return f.pixels[start : start+f.Width]
}

// Sum returns the raw sample sum stored for a pixel
func (f *Framebuffer) Sum(col, row int) core.Vec3 {
	return f.pixels[row*f.Width+col]
}

// Color returns the encoded 8-bit color for a pixel
func (f *Framebuffer) Color(col, row int) color.RGBA {
	return EncodeColor(f.Sum(col, row), f.SamplesPerPixel)
}

// Image converts the framebuffer into an image with the top row first
func (f *Framebuffer) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for row := 0; row < f.Height; row++ {
		y := f.Height - 1 - row
		for col := 0; col < f.Width; col++ {
			img.SetRGBA(col, y, f.Color(col, row))
		}
	}
	return img
}
