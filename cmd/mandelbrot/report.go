package main

import (
	"io"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/maikkel/mandelbrot"
	"github.com/maikkel/mandelbrot/palette"
)

var printer = message.NewPrinter(language.English)

// printReport writes the telemetry line shown after a render.
func printReport(w io.Writer, path string, v mandelbrot.ViewState, st mandelbrot.Stats, workers int) {
	printer.Fprintf(w, "%s: %d×%d px, zoom %g, centre %.12g%+.12gi, %d iterations, %v, %d workers, %v (%d renders, %d dropped)\n",
		path,
		v.Resolution*v.DisplayScale, v.Resolution*v.DisplayScale,
		v.Zoom,
		v.CenterX, v.CenterY,
		v.MaxIteration,
		v.Palette,
		workers,
		st.LastDuration.Round(time.Millisecond),
		st.Renders, st.Dropped)
}

func listPalettes(w io.Writer) {
	for _, id := range palette.All() {
		printer.Fprintf(w, "%2d  %v\n", uint8(id), id)
	}
}
