package mandelbrot

import (
	"bytes"
	"errors"
	"testing"

	"github.com/maikkel/mandelbrot/internal/parallel"
	"github.com/maikkel/mandelbrot/palette"
)

// testView is a small, fast view used across the package tests.
func testView() ViewState {
	v := DefaultView()
	v.Resolution = MinResolution
	v.MaxIteration = 20
	return v
}

// renderFrame renders a whole view as a single band.
func renderFrame(t testing.TB, v ViewState) []byte {
	t.Helper()
	res := RenderBand(v.request(parallel.Band{Start: 0, End: v.Resolution, Width: v.Resolution}))
	if res.Err != nil {
		t.Fatalf("RenderBand() error = %v", res.Err)
	}
	out := make([]byte, len(res.Pixels))
	copy(out, res.Pixels)
	return out
}

func pixelAt(pix []byte, res, x, y int) [4]byte {
	i := (y*res + x) * 4
	return [4]byte{pix[i], pix[i+1], pix[i+2], pix[i+3]}
}

func TestRenderBand_Scenario(t *testing.T) {
	req := Request{
		Resolution:   256,
		Zoom:         1,
		CenterX:      -0.5,
		CenterY:      0,
		StartRow:     0,
		EndRow:       256,
		Palette:      palette.Monochrome,
		MaxIteration: 50,
	}
	res := RenderBand(req)
	if res.Err != nil {
		t.Fatalf("RenderBand() error = %v", res.Err)
	}
	if len(res.Pixels) != 256*256*4 {
		t.Fatalf("len(Pixels) = %d, want %d", len(res.Pixels), 256*256*4)
	}
	if res.StartRow != 0 || res.EndRow != 256 {
		t.Errorf("rows = [%d, %d), want [0, 256)", res.StartRow, res.EndRow)
	}

	// The centre pixel samples (-0.5, 0), inside the main cardioid.
	if got := pixelAt(res.Pixels, 256, 128, 128); got != [4]byte{0, 0, 0, 255} {
		t.Errorf("centre pixel = %v, want opaque black", got)
	}

	// The corner samples (-2.25, -1.75), which escapes after one step:
	// 1/50 of the grey ramp.
	if got := pixelAt(res.Pixels, 256, 0, 0); got != [4]byte{5, 5, 5, 255} {
		t.Errorf("corner pixel = %v, want {5 5 5 255}", got)
	}

	for i := 3; i < len(res.Pixels); i += 4 {
		if res.Pixels[i] != 255 {
			t.Fatalf("alpha at byte %d = %d, want 255", i, res.Pixels[i])
		}
	}
}

func TestRenderBand_BandMatchesFrameRows(t *testing.T) {
	v := testView()
	full := renderFrame(t, v)

	req := v.request(parallel.Band{Start: 100, End: 140})
	res := RenderBand(req)
	if res.Err != nil {
		t.Fatalf("RenderBand() error = %v", res.Err)
	}

	stride := v.Resolution * 4
	want := full[100*stride : 140*stride]
	if !bytes.Equal(res.Pixels, want) {
		t.Error("band pixels differ from the same rows of a full frame")
	}
}

func TestRenderBand_Invert(t *testing.T) {
	v := testView()
	v.Palette = palette.Fire
	plain := renderFrame(t, v)
	v.Invert = true
	inverted := renderFrame(t, v)

	for i := 0; i < len(plain); i += 4 {
		for k := range 3 {
			if inverted[i+k] != 255-plain[i+k] {
				t.Fatalf("byte %d = %d, want %d", i+k, inverted[i+k], 255-plain[i+k])
			}
		}
		if inverted[i+3] != 255 {
			t.Fatalf("inverted alpha at %d = %d", i+3, inverted[i+3])
		}
	}
}

func TestRenderBand_EmptyBand(t *testing.T) {
	req := testView().request(parallel.Band{Start: 256, End: 256})
	res := RenderBand(req)
	if res.Err != nil {
		t.Fatalf("RenderBand(empty) error = %v", res.Err)
	}
	if len(res.Pixels) != 0 {
		t.Errorf("len(Pixels) = %d, want 0", len(res.Pixels))
	}
}

func TestRenderBand_Deterministic(t *testing.T) {
	v := testView()
	v.Palette = palette.Neon3
	if !bytes.Equal(renderFrame(t, v), renderFrame(t, v)) {
		t.Error("two renders of the same view differ")
	}
}

func TestRenderBand_InvalidRequest(t *testing.T) {
	valid := testView().request(parallel.Band{Start: 0, End: 10})

	tests := []struct {
		name   string
		mutate func(*Request)
		want   error
	}{
		{"zero resolution", func(r *Request) { r.Resolution = 0 }, ErrInvalidResolution},
		{"negative start", func(r *Request) { r.StartRow = -1 }, ErrInvalidBand},
		{"end before start", func(r *Request) { r.StartRow, r.EndRow = 5, 4 }, ErrInvalidBand},
		{"end past frame", func(r *Request) { r.EndRow = 257 }, ErrInvalidBand},
		{"zero zoom", func(r *Request) { r.Zoom = 0 }, ErrInvalidZoom},
		{"unknown palette", func(r *Request) { r.Palette = palette.ID(palette.Count) }, ErrInvalidPalette},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			res := RenderBand(req)
			if !errors.Is(res.Err, tt.want) {
				t.Errorf("RenderBand() error = %v, want %v", res.Err, tt.want)
			}
			if res.Pixels != nil {
				t.Error("failed RenderBand returned pixels")
			}
		})
	}
}

func BenchmarkRenderBand(b *testing.B) {
	v := DefaultView()
	v.Resolution = 512
	v.MaxIteration = 200
	req := v.request(parallel.Band{Start: 0, End: 64})

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		res := RenderBand(req)
		parallel.PutBuffer(res.Pixels)
	}
}
