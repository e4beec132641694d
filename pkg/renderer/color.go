package renderer

import (
	"image/color"
	"math"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// EncodeColor converts an accumulated sample sum into an 8-bit color: the
// sum is averaged, gamma corrected with gamma 2, clamped to [0, 0.999] and
// quantized to [0, 255].
func EncodeColor(sum core.Vec3, samplesPerPixel int) color.RGBA {
	scale := 1.0 / float64(samplesPerPixel)
	return color.RGBA{
		R: encodeChannel(sum.X * scale),
		G: encodeChannel(sum.Y * scale),
		B: encodeChannel(sum.Z * scale),
		A: 255,
	}
}

func encodeChannel(linear float64) uint8 {
	// NaN and negative values encode as black
	if !(linear > 0) {
		return 0
	}
	return uint8(256 * math.Min(math.Sqrt(linear), 0.999))
}
