// Package escape implements the escape-time test for the Mandelbrot set.
//
// The kernel iterates z = z² + c starting from z = 0 with c = (x0, y0) and
// counts how many steps the orbit stays inside the radius-2 disc. It keeps
// the squares of both components between steps so each iteration costs three
// multiplications instead of five.
//
// All functions are pure and safe for concurrent use.
package escape

// Bailout is the squared escape radius. An orbit with x² + y² > Bailout is
// known to diverge.
const Bailout = 4.0

// Iterate returns the number of iterations the orbit of (x0, y0) needed to
// leave the escape radius, capped at maxIteration.
//
// A return value equal to maxIteration means the point did not escape within
// the cap and is treated as interior. A non-positive maxIteration yields 0.
// Non-finite inputs escape after a single iteration since every comparison
// with NaN is false.
func Iterate(x0, y0 float64, maxIteration int) int {
	var x, y, xSquare, ySquare float64
	iteration := 0

	for xSquare+ySquare <= Bailout && iteration < maxIteration {
		y = 2*x*y + y0
		x = xSquare - ySquare + x0

		xSquare = x * x
		ySquare = y * y

		iteration++
	}

	return iteration
}

// Interior reports whether an iteration count returned by Iterate marks a
// point that never escaped.
func Interior(iteration, maxIteration int) bool {
	return iteration >= maxIteration
}
