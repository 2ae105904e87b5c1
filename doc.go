// Package mandelbrot renders escape-time images of the Mandelbrot set in
// parallel.
//
// # Overview
//
// A frame is a square grid of pixels mapped onto a region of the complex
// plane. Each pixel is coloured by how many iterations of z² + c its point
// takes to escape the radius-2 disc, looked up in one of the palettes of
// package palette. The frame is split into horizontal row bands, one per
// worker, which render independently and are composited back into the frame.
//
// # Quick Start
//
//	c, err := mandelbrot.NewCoordinator()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer c.Close()
//
//	fb, err := c.Render(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fb.SavePNG("mandelbrot.png", 1)
//
// # Interaction
//
// The view is changed through commands applied to the Coordinator:
//
//	c.Apply(ctx, mandelbrot.SetPalette(palette.Fire), mandelbrot.SetMaxIteration(500))
//	c.Apply(ctx, mandelbrot.ZoomAt(x, y, true))
//
// Every successful Apply requests a render. Requests that arrive while a
// render is in flight are coalesced into a single trailing render, so a burst
// of wheel or drag events draws the latest view once instead of queueing a
// render per event. Controller maps pointer events to these commands.
//
// # Coordinate System
//
// Pixel (0, 0) is the top-left corner of the frame and maps to
// (CenterX - span/2, CenterY - span/2) with span = 3.5/Zoom. X increases to
// the right along the real axis, Y increases downward along the imaginary
// axis.
//
// # Logging
//
// The package is silent by default. See SetLogger.
package mandelbrot

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
