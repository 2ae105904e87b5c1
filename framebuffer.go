package mandelbrot

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	xdraw "golang.org/x/image/draw"

	"github.com/maikkel/mandelbrot/internal/parallel"
)

// Framebuffer is a square RGBA frame, 4 bytes per pixel, row-major.
// A freshly created framebuffer is opaque black.
//
// Framebuffer implements image.Image.
type Framebuffer struct {
	size int
	data []uint8
}

// NewFramebuffer creates an opaque black size x size framebuffer.
// Non-positive sizes yield an empty framebuffer.
func NewFramebuffer(size int) *Framebuffer {
	size = max(size, 0)
	fb := &Framebuffer{
		size: size,
		data: make([]uint8, size*size*parallel.BytesPerPixel),
	}
	fb.Clear(color.RGBA{A: 255})
	return fb
}

// Size returns the width and height of the frame in pixels.
func (f *Framebuffer) Size() int {
	return f.size
}

// Data returns the raw pixel data. Callers must not modify it while the
// framebuffer is owned by a Coordinator.
func (f *Framebuffer) Data() []uint8 {
	return f.data
}

// RGBAAt returns the colour of pixel (x, y), or transparent black outside
// the frame.
func (f *Framebuffer) RGBAAt(x, y int) color.RGBA {
	if x < 0 || x >= f.size || y < 0 || y >= f.size {
		return color.RGBA{}
	}
	i := (y*f.size + x) * parallel.BytesPerPixel
	return color.RGBA{R: f.data[i+0], G: f.data[i+1], B: f.data[i+2], A: f.data[i+3]}
}

// Clear fills the frame with c.
func (f *Framebuffer) Clear(c color.RGBA) {
	for i := 0; i < len(f.data); i += parallel.BytesPerPixel {
		f.data[i+0] = c.R
		f.data[i+1] = c.G
		f.data[i+2] = c.B
		f.data[i+3] = c.A
	}
}

// Clone returns a deep copy.
func (f *Framebuffer) Clone() *Framebuffer {
	data := make([]uint8, len(f.data))
	copy(data, f.data)
	return &Framebuffer{size: f.size, data: data}
}

// composite copies a rendered band into its rows. Bands of one frame cover
// disjoint rows, so concurrent composites of different bands do not race.
func (f *Framebuffer) composite(b parallel.Band, pixels []byte) error {
	if b.Width != f.size || b.Start < 0 || b.End > f.size || len(pixels) != b.ByteSize() {
		return fmt.Errorf("%w: %d bytes for rows [%d, %d) of width %d in a %d-pixel frame",
			ErrInvalidBand, len(pixels), b.Start, b.End, b.Width, f.size)
	}
	copy(f.data[b.FrameOffset():], pixels)
	return nil
}

// ToImage returns a copy of the frame as an image.RGBA.
func (f *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.size, f.size))
	copy(img.Pix, f.data)
	return img
}

// Scaled returns the frame magnified by an integer factor with
// nearest-neighbour sampling, the way it is presented on screen.
// A scale below 2 returns an unscaled copy.
func (f *Framebuffer) Scaled(scale int) *image.RGBA {
	if scale < 2 {
		return f.ToImage()
	}
	n := f.size * scale
	dst := image.NewRGBA(image.Rect(0, 0, n, n))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), f.view(), f.Bounds(), xdraw.Src, nil)
	return dst
}

// view wraps the pixel data as an image.RGBA without copying.
func (f *Framebuffer) view() *image.RGBA {
	return &image.RGBA{Pix: f.data, Stride: f.size * parallel.BytesPerPixel, Rect: f.Bounds()}
}

// EncodePNG writes the frame, magnified by scale, as PNG.
func (f *Framebuffer) EncodePNG(w io.Writer, scale int) error {
	return png.Encode(w, f.Scaled(scale))
}

// SavePNG saves the frame, magnified by scale, to a PNG file.
func (f *Framebuffer) SavePNG(path string, scale int) (err error) {
	file, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()
	return f.EncodePNG(file, scale)
}

// At implements the image.Image interface.
func (f *Framebuffer) At(x, y int) color.Color {
	return f.RGBAAt(x, y)
}

// Bounds implements the image.Image interface.
func (f *Framebuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, f.size, f.size)
}

// ColorModel implements the image.Image interface.
func (f *Framebuffer) ColorModel() color.Model {
	return color.RGBAModel
}
