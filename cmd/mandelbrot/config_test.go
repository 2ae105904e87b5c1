package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/maikkel/mandelbrot"
	"github.com/maikkel/mandelbrot/palette"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mandelbrot.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.ViewState() != mandelbrot.DefaultView() {
		t.Errorf("ViewState() = %+v, want default view", cfg.ViewState())
	}
	if cfg.Render.Output != "mandelbrot.png" {
		t.Errorf("Render.Output = %q", cfg.Render.Output)
	}
	if cfg.Render.BandTimeoutDuration() != mandelbrot.DefaultBandTimeout {
		t.Errorf("BandTimeoutDuration() = %v", cfg.Render.BandTimeoutDuration())
	}
	if cfg.Watch.DebounceDuration() != 250*time.Millisecond {
		t.Errorf("DebounceDuration() = %v", cfg.Watch.DebounceDuration())
	}
}

func TestLoadConfig_Parses(t *testing.T) {
	path := writeConfig(t, `
[view]
center_x = -0.7453
center_y = 0.1127
zoom = 250.0
resolution = 512
max_iteration = 3000
palette = "neon2"
invert = true
display_scale = 2

[render]
output = "deep.png"
workers = 6
band_timeout = 1500

[watch]
debounce = 100
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	want := mandelbrot.ViewState{
		CenterX:      -0.7453,
		CenterY:      0.1127,
		Zoom:         250,
		Resolution:   512,
		MaxIteration: 3000,
		Palette:      palette.Neon2,
		Invert:       true,
		DisplayScale: 2,
	}
	if got := cfg.ViewState(); got != want {
		t.Errorf("ViewState() = %+v, want %+v", got, want)
	}
	if cfg.Render.Output != "deep.png" || cfg.Render.Workers != 6 {
		t.Errorf("Render = %+v", cfg.Render)
	}
	if got := cfg.Render.BandTimeoutDuration(); got != 1500*time.Millisecond {
		t.Errorf("BandTimeoutDuration() = %v", got)
	}
	if got := cfg.Watch.DebounceDuration(); got != 100*time.Millisecond {
		t.Errorf("DebounceDuration() = %v", got)
	}
}

func TestLoadConfig_PartialKeepsDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "[view]\nzoom = 8.0\n"))
	if err != nil {
		t.Fatal(err)
	}
	v := cfg.ViewState()
	if v.Zoom != 8 || v.Resolution != 1024 || v.Palette != palette.Sine {
		t.Errorf("ViewState() = %+v", v)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"syntax", "[view\nzoom = 1"},
		{"unknown palette", "[view]\npalette = \"plaid\"\n"},
		{"wrong type", "[view]\nresolution = \"big\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.body)
			_, err := LoadConfig(path)
			if err == nil {
				t.Fatal("LoadConfig() = nil error")
			}
			if !strings.Contains(err.Error(), path) {
				t.Errorf("error %q does not name the file", err)
			}
		})
	}
}

func TestBandTimeoutDuration(t *testing.T) {
	tests := []struct {
		ms   int
		want time.Duration
	}{
		{0, mandelbrot.DefaultBandTimeout},
		{250, 250 * time.Millisecond},
		{-1, 0},
	}
	for _, tt := range tests {
		if got := (RenderConfig{BandTimeout: tt.ms}).BandTimeoutDuration(); got != tt.want {
			t.Errorf("BandTimeoutDuration(%d) = %v, want %v", tt.ms, got, tt.want)
		}
	}
}

func TestArgs_Apply(t *testing.T) {
	x, z := 0.25, 16.0
	args := Args{
		Workers:    3,
		Palette:    "fire",
		Iterations: 64,
		Size:       256,
		Scale:      4,
		Invert:     true,
		CenterX:    &x,
		Zoom:       &z,
	}
	cfg := defaultConfig()
	if err := args.apply(cfg); err != nil {
		t.Fatalf("apply() error = %v", err)
	}

	v := cfg.ViewState()
	if v.Palette != palette.Fire || v.MaxIteration != 64 || v.Resolution != 256 ||
		v.DisplayScale != 4 || !v.Invert || v.CenterX != 0.25 || v.CenterY != 0 || v.Zoom != 16 {
		t.Errorf("ViewState() = %+v", v)
	}
	if cfg.Render.Workers != 3 {
		t.Errorf("Render.Workers = %d, want 3", cfg.Render.Workers)
	}

	bad := Args{Palette: "plaid"}
	if err := bad.apply(defaultConfig()); !errors.Is(err, palette.ErrUnknown) {
		t.Errorf("apply() with unknown palette = %v, want %v", err, palette.ErrUnknown)
	}
}

func TestConfig_CommandsReachView(t *testing.T) {
	cfg := defaultConfig()
	cfg.View.Resolution = 256
	cfg.View.MaxIteration = 10
	cfg.View.Palette = palette.Snowball
	cfg.View.CenterX = 0.1

	c, err := mandelbrot.NewCoordinator(mandelbrot.WithView(mandelbrot.ViewState{
		Zoom: 3, Resolution: 256, MaxIteration: 10, DisplayScale: 1,
	}), mandelbrot.WithWorkers(2))
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := c.Apply(ctx, cfg.Commands()...); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if got := c.View(); got != cfg.ViewState() {
		t.Errorf("View() = %+v, want %+v", got, cfg.ViewState())
	}
	if err := c.Wait(ctx); err != nil {
		t.Fatal(err)
	}
}

func TestParsePoint(t *testing.T) {
	v := mandelbrot.DefaultView()
	v.Resolution = 512
	v.DisplayScale = 2

	tests := []struct {
		in      string
		x, y    float64
		wantErr bool
	}{
		{"", 512, 512, false},
		{"10,20", 10, 20, false},
		{" 3.5 , 7 ", 3.5, 7, false},
		{"10", 0, 0, true},
		{"a,1", 0, 0, true},
		{"1,b", 0, 0, true},
	}
	for _, tt := range tests {
		x, y, err := parsePoint(tt.in, v)
		if (err != nil) != tt.wantErr {
			t.Errorf("parsePoint(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && (x != tt.x || y != tt.y) {
			t.Errorf("parsePoint(%q) = (%v, %v), want (%v, %v)", tt.in, x, y, tt.x, tt.y)
		}
	}
}

// =============================================================================
// Debouncer
// =============================================================================

func TestDebouncer_Coalesces(t *testing.T) {
	var fired atomic.Int64
	done := make(chan string, 4)
	d := newDebouncer(30*time.Millisecond, func(path string) {
		fired.Add(1)
		done <- path
	})
	defer d.stop()

	for range 5 {
		d.trigger("a.toml")
	}

	select {
	case got := <-done:
		if got != "a.toml" {
			t.Errorf("fired for %q, want a.toml", got)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("debouncer never fired")
	}

	time.Sleep(60 * time.Millisecond)
	if n := fired.Load(); n != 1 {
		t.Errorf("fired %d times, want 1", n)
	}
}

func TestDebouncer_Stop(t *testing.T) {
	var fired atomic.Int64
	d := newDebouncer(20*time.Millisecond, func(string) { fired.Add(1) })

	d.trigger("a.toml")
	d.trigger("b.toml")
	d.stop()

	time.Sleep(60 * time.Millisecond)
	if n := fired.Load(); n != 0 {
		t.Errorf("fired %d times after stop, want 0", n)
	}
}
