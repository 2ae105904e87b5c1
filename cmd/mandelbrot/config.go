package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/maikkel/mandelbrot"
	"github.com/maikkel/mandelbrot/palette"
)

type ViewConfig struct {
	CenterX      float64    `toml:"center_x"`
	CenterY      float64    `toml:"center_y"`
	Zoom         float64    `toml:"zoom"`
	Resolution   int        `toml:"resolution"`
	MaxIteration int        `toml:"max_iteration"`
	Palette      palette.ID `toml:"palette"`
	Invert       bool       `toml:"invert"`
	DisplayScale int        `toml:"display_scale"`
}

type RenderConfig struct {
	Output      string `toml:"output"`
	Workers     int    `toml:"workers"`      // 0 = one per CPU
	BandTimeout int    `toml:"band_timeout"` // milliseconds, 0 = default (30s), negative = none
}

func (r RenderConfig) BandTimeoutDuration() time.Duration {
	switch {
	case r.BandTimeout > 0:
		return time.Duration(r.BandTimeout) * time.Millisecond
	case r.BandTimeout < 0:
		return 0
	}
	return mandelbrot.DefaultBandTimeout
}

type WatchConfig struct {
	Debounce int `toml:"debounce"` // milliseconds, 0 = default (250ms)
}

func (w WatchConfig) DebounceDuration() time.Duration {
	if w.Debounce > 0 {
		return time.Duration(w.Debounce) * time.Millisecond
	}
	return 250 * time.Millisecond
}

type Config struct {
	View   ViewConfig   `toml:"view"`
	Render RenderConfig `toml:"render"`
	Watch  WatchConfig  `toml:"watch"`
}

func defaultConfig() *Config {
	v := mandelbrot.DefaultView()
	return &Config{
		View: ViewConfig{
			CenterX:      v.CenterX,
			CenterY:      v.CenterY,
			Zoom:         v.Zoom,
			Resolution:   v.Resolution,
			MaxIteration: v.MaxIteration,
			Palette:      v.Palette,
			Invert:       v.Invert,
			DisplayScale: v.DisplayScale,
		},
		Render: RenderConfig{
			Output: "mandelbrot.png",
		},
	}
}

// LoadConfig reads a TOML config on top of the defaults. A missing file
// yields the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := defaultConfig()

	_, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// ViewState converts the [view] section.
func (c *Config) ViewState() mandelbrot.ViewState {
	return mandelbrot.ViewState{
		CenterX:      c.View.CenterX,
		CenterY:      c.View.CenterY,
		Zoom:         c.View.Zoom,
		Resolution:   c.View.Resolution,
		MaxIteration: c.View.MaxIteration,
		Palette:      c.View.Palette,
		Invert:       c.View.Invert,
		DisplayScale: c.View.DisplayScale,
	}
}

// Commands returns the commands that move a coordinator to the [view]
// section, for applying a reloaded config as one mutation.
func (c *Config) Commands() []mandelbrot.Command {
	v := c.View
	return []mandelbrot.Command{
		mandelbrot.SetResolution(v.Resolution),
		mandelbrot.SetDisplayScale(v.DisplayScale),
		mandelbrot.SetPalette(v.Palette),
		mandelbrot.SetInvert(v.Invert),
		mandelbrot.SetMaxIteration(v.MaxIteration),
		mandelbrot.SetZoom(v.Zoom),
		mandelbrot.SetCenter(v.CenterX, v.CenterY),
	}
}

// Options returns the coordinator options for this config.
func (c *Config) Options() []mandelbrot.Option {
	return []mandelbrot.Option{
		mandelbrot.WithView(c.ViewState()),
		mandelbrot.WithWorkers(c.Render.Workers),
		mandelbrot.WithBandTimeout(c.Render.BandTimeoutDuration()),
	}
}
