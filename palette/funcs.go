package palette

import "math"

// ratio returns iteration/maxIteration as a float.
func ratio(iteration, maxIteration int) float64 {
	return float64(iteration) / float64(maxIteration)
}

// gray returns an achromatic colour.
func gray(v float64) RGB {
	return rgb(v, v, v)
}

// monochrome is a linear grayscale ramp; interior points are black.
func monochrome(iteration, maxIteration int) RGB {
	if iteration == maxIteration {
		return Black
	}
	return gray(ratio(iteration, maxIteration) * 255)
}

// hueCycles sweeps the hue wheel `turns` times across the iteration range.
// Interior points get lightness 0, which is black.
func hueCycles(iteration, maxIteration int, turns float64) RGB {
	hue := ratio(iteration, maxIteration) * 360 * turns
	lightness := 0.0
	if iteration < maxIteration {
		lightness = 50
	}
	return HSLToRGB(hue, 100, lightness)
}

func rainbow(iteration, maxIteration int) RGB {
	return hueCycles(iteration, maxIteration, 1)
}

func doubleRainbow(iteration, maxIteration int) RGB {
	return hueCycles(iteration, maxIteration, 2)
}

func ultraRainbow(iteration, maxIteration int) RGB {
	return hueCycles(iteration, maxIteration, 10)
}

// fire runs black → red → orange → yellow → white in four stages.
func fire(iteration, maxIteration int) RGB {
	if iteration == maxIteration {
		return Black
	}

	t := ratio(iteration, maxIteration)
	switch {
	case t < 0.3:
		return rgb(math.Floor(255*(t/0.3)), 0, 0)
	case t < 0.6:
		return rgb(255, math.Floor(128*((t-0.3)/0.3)), 0)
	case t < 0.9:
		return rgb(255, math.Floor(255*((t-0.6)/0.3)), 0)
	default:
		return rgb(255, 255, math.Floor(255*((t-0.9)/0.1)))
	}
}

// oscillate maps sin(k·π·t) from [-1, 1] to [0, 255].
func oscillate(k, t float64) float64 {
	return math.Floor(127.5 * (1 + math.Sin(k*math.Pi*t)))
}

// sine oscillates each channel at a different frequency.
func sine(iteration, maxIteration int) RGB {
	if iteration == maxIteration {
		return Black
	}
	t := ratio(iteration, maxIteration)
	return rgb(oscillate(3, t), oscillate(5, t), oscillate(7, t))
}

// grayTwist decays brightness exponentially away from the set. The interior
// is not special-cased and comes out white.
func grayTwist(iteration, maxIteration int) RGB {
	t := ratio(iteration, maxIteration)
	return gray(math.Floor(255 * math.Exp(-5*(1-t))))
}

// smooth uses a logarithmically smoothed iteration count raised to a
// different power per channel. Iteration 0 smooths to +Inf and clamps to
// white; the interior is not special-cased and lands just below white.
func smooth(iteration, maxIteration int) RGB {
	n := float64(iteration)
	smoothIter := n + 1 - math.Log(math.Log2(math.Sqrt(n+1)))
	t := smoothIter / float64(maxIteration)
	return rgb(
		math.Floor(255*math.Pow(t, 0.5)),
		math.Floor(255*math.Pow(t, 0.75)),
		math.Floor(255*t),
	)
}

// pulse is |floor(255·sin(k·π·t))|, the truncate-then-fold used by the
// neon palettes.
func pulse(k, t float64) float64 {
	return math.Abs(math.Floor(255 * math.Sin(k*math.Pi*t)))
}

// neon, neon2 and neon3 are phase-shifted sinusoids. Their interior falls
// on a multiple of π and is near black.
func neon(iteration, maxIteration int) RGB {
	t := ratio(iteration, maxIteration)
	return rgb(pulse(2, t), pulse(4, t), pulse(6, t))
}

func neon2(iteration, maxIteration int) RGB {
	t := ratio(iteration, maxIteration)
	return rgb(
		math.Floor(255*math.Abs(math.Sin(3*math.Pi*t))),
		math.Floor(255*math.Abs(math.Sin(4*math.Pi*t))),
		math.Floor(255*math.Abs(math.Sin(5*math.Pi*t))),
	)
}

func neon3(iteration, maxIteration int) RGB {
	t := ratio(iteration, maxIteration)
	return rgb(pulse(3, t), pulse(5, t), pulse(7, t))
}

// snowball is a pale, almost white ramp.
func snowball(iteration, maxIteration int) RGB {
	t := ratio(iteration, maxIteration)
	return rgb(
		math.Floor(255*(0.8+0.2*t)),
		math.Floor(255*(0.8+0.1*t)),
		math.Floor(255*(0.9+0.1*t)),
	)
}

// test is an icy blue ramp.
func test(iteration, maxIteration int) RGB {
	t := ratio(iteration, maxIteration)
	return rgb(math.Floor(64*t), math.Floor(128*t), math.Floor(255*t))
}
