package palette

import (
	"image/color"
	"math"
)

// RGB is an opaque 8-bit colour produced by a palette.
type RGB struct {
	R, G, B uint8
}

// Color converts the value to the standard color.Color interface.
// Alpha is always fully opaque.
func (c RGB) Color() color.Color {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// Invert returns the channel-wise complement of c.
func (c RGB) Invert() RGB {
	return Invert(c)
}

// Invert returns (255-r, 255-g, 255-b). It is a post-transform applied after
// palette lookup and composes with every palette.
func Invert(c RGB) RGB {
	return RGB{R: 255 - c.R, G: 255 - c.G, B: 255 - c.B}
}

// Common colours.
var (
	Black = RGB{0, 0, 0}
	White = RGB{255, 255, 255}
)

// HSLToRGB converts a hue in degrees and saturation/lightness in percent to
// an RGB colour.
//
// The hue does not need to be wrapped into [0, 360): multi-cycle palettes
// pass hues well beyond 360 on purpose. Saturation and lightness are
// expected in [0, 100]; results outside the channel range are clamped.
func HSLToRGB(h, s, l float64) RGB {
	s /= 100
	l /= 100

	a := s * math.Min(l, 1-l)
	f := func(n float64) float64 {
		k := math.Mod(n+h/30, 12)
		return l - a*math.Max(-1, math.Min(k-3, math.Min(9-k, 1)))
	}

	return rgb(255*f(0), 255*f(8), 255*f(4))
}

// rgb builds a colour from unclamped float channels.
func rgb(r, g, b float64) RGB {
	return RGB{R: clampChannel(r), G: clampChannel(g), B: clampChannel(b)}
}

// clampChannel rounds v to the nearest integer and restricts it to [0, 255].
// NaN maps to 0.
func clampChannel(v float64) uint8 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(math.Round(v))
}
