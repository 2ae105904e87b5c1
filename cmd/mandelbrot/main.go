// Command mandelbrot renders the Mandelbrot set to PNG files.
//
// Usage:
//
//	mandelbrot render [-o out.png] [--zoom-in N --at X,Y]
//	mandelbrot watch [-o out.png]
//	mandelbrot palettes
//
// Settings come from a TOML file (--config, default mandelbrot.toml) and
// are overridden by flags.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/alexflint/go-arg"

	"github.com/maikkel/mandelbrot"
	"github.com/maikkel/mandelbrot/palette"
)

type RenderCmd struct {
	Output string `arg:"-o,--output" help:"PNG file to write (default: [render] output)"`
	ZoomIn int    `arg:"--zoom-in" help:"wheel steps to zoom in before rendering"`
	At     string `arg:"--at" help:"screen point X,Y to zoom around (default: frame centre)"`
}

type WatchCmd struct {
	Output string `arg:"-o,--output" help:"PNG file rewritten after each render (default: [render] output)"`
}

type PalettesCmd struct{}

type Args struct {
	Config  string `arg:"-c,--config" default:"mandelbrot.toml" help:"path to config file (TOML)"`
	Verbose bool   `arg:"-v,--verbose" help:"log render diagnostics to stderr"`

	Workers    int      `arg:"-w,--workers" help:"band workers, 0 = one per CPU"`
	Palette    string   `arg:"-p,--palette" help:"palette name or id"`
	Iterations int      `arg:"-n,--iterations" help:"iteration cap (2-10000)"`
	Size       int      `arg:"-s,--size" help:"frame size in pixels (256-2048)"`
	Scale      int      `arg:"--scale" help:"display scale applied to the PNG (1-8)"`
	Invert     bool     `arg:"--invert" help:"invert colours"`
	CenterX    *float64 `arg:"--center-x" help:"real part of the frame centre"`
	CenterY    *float64 `arg:"--center-y" help:"imaginary part of the frame centre"`
	Zoom       *float64 `arg:"-z,--zoom" help:"zoom factor, 1 shows the whole set"`

	Render   *RenderCmd   `arg:"subcommand:render" help:"render one frame"`
	Watch    *WatchCmd    `arg:"subcommand:watch" help:"re-render whenever the config file changes"`
	Palettes *PalettesCmd `arg:"subcommand:palettes" help:"list palettes"`
}

func (Args) Description() string {
	return "Parallel escape-time renderer for the Mandelbrot set.\n"
}

func (Args) Version() string {
	return "mandelbrot " + mandelbrot.Version
}

// apply overrides config values with the flags that were given.
func (a *Args) apply(cfg *Config) error {
	if a.Workers != 0 {
		cfg.Render.Workers = a.Workers
	}
	if a.Palette != "" {
		id, err := palette.Parse(a.Palette)
		if err != nil {
			return err
		}
		cfg.View.Palette = id
	}
	if a.Iterations != 0 {
		cfg.View.MaxIteration = a.Iterations
	}
	if a.Size != 0 {
		cfg.View.Resolution = a.Size
	}
	if a.Scale != 0 {
		cfg.View.DisplayScale = a.Scale
	}
	if a.Invert {
		cfg.View.Invert = true
	}
	if a.CenterX != nil {
		cfg.View.CenterX = *a.CenterX
	}
	if a.CenterY != nil {
		cfg.View.CenterY = *a.CenterY
	}
	if a.Zoom != nil {
		cfg.View.Zoom = *a.Zoom
	}
	return nil
}

// load reads the config file and applies the flag overrides.
func (a *Args) load() (*Config, error) {
	cfg, err := LoadConfig(a.Config)
	if err != nil {
		return nil, err
	}
	if err := a.apply(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func main() {
	var args Args
	p := arg.MustParse(&args)
	if p.Subcommand() == nil {
		p.Fail("missing subcommand: render, watch or palettes")
	}

	level := slog.LevelInfo
	if args.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	mandelbrot.SetLogger(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var err error
	switch {
	case args.Palettes != nil:
		listPalettes(os.Stdout)
	case args.Render != nil:
		err = runRender(ctx, &args, args.Render)
	case args.Watch != nil:
		err = runWatch(ctx, &args, args.Watch, logger)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func runRender(ctx context.Context, args *Args, cmd *RenderCmd) error {
	cfg, err := args.load()
	if err != nil {
		return err
	}
	out := cmd.Output
	if out == "" {
		out = cfg.Render.Output
	}

	c, err := mandelbrot.NewCoordinator(cfg.Options()...)
	if err != nil {
		return err
	}
	defer c.Close()

	if cmd.ZoomIn > 0 {
		v := c.View()
		x, y, err := parsePoint(cmd.At, v)
		if err != nil {
			return err
		}
		ct := mandelbrot.NewController(c)
		for range cmd.ZoomIn {
			if err := ct.Wheel(ctx, x, y, -1); err != nil {
				return err
			}
		}
		if err := c.Wait(ctx); err != nil {
			return err
		}
	} else if _, err := c.Render(ctx); err != nil {
		return err
	}

	v := c.View()
	if err := c.Snapshot().SavePNG(out, v.DisplayScale); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}
	printReport(os.Stdout, out, v, c.Stats(), c.Workers())
	return nil
}

// parsePoint parses "X,Y" in screen pixels. An empty string selects the
// frame centre.
func parsePoint(s string, v mandelbrot.ViewState) (x, y float64, err error) {
	if s == "" {
		mid := float64(v.Resolution*v.DisplayScale) / 2
		return mid, mid, nil
	}
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, fmt.Errorf("invalid point %q: want X,Y", s)
	}
	if x, err = strconv.ParseFloat(strings.TrimSpace(xs), 64); err != nil {
		return 0, 0, fmt.Errorf("invalid point %q: %w", s, err)
	}
	if y, err = strconv.ParseFloat(strings.TrimSpace(ys), 64); err != nil {
		return 0, 0, fmt.Errorf("invalid point %q: %w", s, err)
	}
	return x, y, nil
}
