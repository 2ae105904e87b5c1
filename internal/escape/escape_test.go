package escape

import (
	"math"
	"testing"
)

func TestIterate_KnownPoints(t *testing.T) {
	tests := []struct {
		name   string
		x0, y0 float64
		max    int
		check  func(got int) bool
		expect string
	}{
		{"origin is interior", 0, 0, 100, func(got int) bool { return got == 100 }, "== 100"},
		{"main cardioid", -0.5, 0, 500, func(got int) bool { return got == 500 }, "== 500"},
		{"period-2 bulb", -1, 0, 500, func(got int) bool { return got == 500 }, "== 500"},
		{"far outside escapes immediately", 2, 2, 100, func(got int) bool { return got < 10 }, "< 10"},
		{"just outside on real axis", 0.5, 0, 1000, func(got int) bool { return got < 1000 }, "< 1000"},
		{"tip of antenna", -2, 0, 200, func(got int) bool { return got == 200 }, "== 200"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Iterate(tt.x0, tt.y0, tt.max)
			if !tt.check(got) {
				t.Errorf("Iterate(%v, %v, %d) = %d, want %s", tt.x0, tt.y0, tt.max, got, tt.expect)
			}
		})
	}
}

func TestIterate_Deterministic(t *testing.T) {
	points := [][2]float64{
		{0, 0}, {-0.75, 0.1}, {0.285, 0.01}, {-1.25, 0.02}, {0.3, 0.5}, {-0.7436, 0.1318},
	}
	for _, p := range points {
		first := Iterate(p[0], p[1], 2000)
		for range 5 {
			if got := Iterate(p[0], p[1], 2000); got != first {
				t.Fatalf("Iterate(%v, %v) not deterministic: %d then %d", p[0], p[1], first, got)
			}
		}
	}
}

func TestIterate_Bounded(t *testing.T) {
	for _, maxIter := range []int{1, 2, 7, 50, 333} {
		for ix := -40; ix <= 40; ix++ {
			for iy := -40; iy <= 40; iy++ {
				x0 := float64(ix) / 16
				y0 := float64(iy) / 16
				got := Iterate(x0, y0, maxIter)
				if got < 0 || got > maxIter {
					t.Fatalf("Iterate(%v, %v, %d) = %d, out of [0, %d]", x0, y0, maxIter, got, maxIter)
				}
			}
		}
	}
}

func TestIterate_NonPositiveCap(t *testing.T) {
	for _, maxIter := range []int{0, -1, -100} {
		if got := Iterate(0, 0, maxIter); got != 0 {
			t.Errorf("Iterate(0, 0, %d) = %d, want 0", maxIter, got)
		}
	}
}

func TestIterate_NonFinite(t *testing.T) {
	inputs := [][2]float64{
		{math.NaN(), 0},
		{0, math.NaN()},
		{math.Inf(1), 0},
		{math.Inf(-1), math.Inf(1)},
		{math.MaxFloat64, math.MaxFloat64},
	}
	for _, in := range inputs {
		got := Iterate(in[0], in[1], 100)
		if got < 0 || got > 100 {
			t.Errorf("Iterate(%v, %v, 100) = %d, out of range", in[0], in[1], got)
		}
		if got == 100 {
			t.Errorf("Iterate(%v, %v, 100) classified as interior", in[0], in[1])
		}
	}
}

func TestInterior(t *testing.T) {
	if !Interior(50, 50) {
		t.Error("Interior(50, 50) = false, want true")
	}
	if Interior(49, 50) {
		t.Error("Interior(49, 50) = true, want false")
	}
}

func BenchmarkIterate_Interior(b *testing.B) {
	b.ReportAllocs()
	for b.Loop() {
		Iterate(-0.5, 0, 1000)
	}
}

func BenchmarkIterate_Boundary(b *testing.B) {
	b.ReportAllocs()
	for b.Loop() {
		Iterate(-0.7436447860, 0.1318252536, 1000)
	}
}
