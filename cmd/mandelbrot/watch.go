package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/maikkel/mandelbrot"
)

// debouncer coalesces rapid event bursts into a single callback per file.
type debouncer struct {
	mu     sync.Mutex
	timers map[string]*time.Timer
	delay  time.Duration
	onFire func(path string)
}

func newDebouncer(delay time.Duration, onFire func(path string)) *debouncer {
	return &debouncer{
		timers: make(map[string]*time.Timer),
		delay:  delay,
		onFire: onFire,
	}
}

func (d *debouncer) trigger(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if t, ok := d.timers[path]; ok {
		t.Reset(d.delay)
		return
	}
	d.timers[path] = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		delete(d.timers, path)
		d.mu.Unlock()
		d.onFire(path)
	})
}

func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for path, t := range d.timers {
		t.Stop()
		delete(d.timers, path)
	}
}

// runWatch renders the configured view, then re-applies the config file
// each time it changes and rewrites the PNG after every completed render.
func runWatch(ctx context.Context, args *Args, cmd *WatchCmd, logger *slog.Logger) error {
	cfg, err := args.load()
	if err != nil {
		return err
	}
	out := cmd.Output
	if out == "" {
		out = cfg.Render.Output
	}

	configPath, err := filepath.Abs(args.Config)
	if err != nil {
		return err
	}

	// Frames are written by the event loop, not on the render worker.
	frames := make(chan mandelbrot.Frame, 1)
	onFrame := func(f mandelbrot.Frame) {
		select {
		case frames <- f:
		default:
			logger.Warn("frame not saved, writer busy", "generation", f.Generation)
		}
	}

	c, err := mandelbrot.NewCoordinator(append(cfg.Options(), mandelbrot.WithFrameHandler(onFrame))...)
	if err != nil {
		return err
	}
	defer c.Close()

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer w.Close()

	// Watch the directory so editors that replace the file atomically keep
	// being seen.
	if err := w.Add(filepath.Dir(configPath)); err != nil {
		return fmt.Errorf("watching %s: %w", configPath, err)
	}

	db := newDebouncer(cfg.Watch.DebounceDuration(), func(path string) {
		reload(ctx, c, args, path, logger)
	})
	defer db.stop()

	c.Request()
	logger.Info("watching config", "path", configPath, "output", out)

	for {
		select {
		case <-ctx.Done():
			logger.Info("shutting down")
			return nil

		case f := <-frames:
			if err := f.Image.SavePNG(out, f.View.DisplayScale); err != nil {
				logger.Error("writing frame", "path", out, "err", err)
				continue
			}
			printReport(os.Stdout, out, f.View, c.Stats(), c.Workers())

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != configPath {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				db.trigger(ev.Name)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher", "err", err)
		}
	}
}

// reload applies the config at path to c as one mutation. Invalid configs
// are logged and leave the view unchanged.
func reload(ctx context.Context, c *mandelbrot.Coordinator, args *Args, path string, logger *slog.Logger) {
	if _, err := os.Stat(path); err != nil {
		return
	}
	cfg, err := LoadConfig(path)
	if err == nil {
		err = args.apply(cfg)
	}
	if err != nil {
		logger.Error("reloading config", "path", path, "err", err)
		return
	}
	if err := c.Apply(ctx, cfg.Commands()...); err != nil {
		logger.Error("applying config", "path", path, "err", err)
		return
	}
	logger.Info("config reloaded", "path", path)
}
