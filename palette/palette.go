// Package palette maps escape-time iteration counts to colours.
//
// A palette is selected by an ID. Each ID dispatches to a named, pure
// function of (iteration, maxIteration); the same inputs always give the
// same colour. Every channel is rounded and clamped to [0, 255], so a
// palette never produces out-of-range bytes even when its formula does
// (for instance at iteration 0 for Smooth, or iteration == maxIteration for
// GrayTwist).
//
// Colour inversion is not part of any palette. Apply Invert after lookup:
//
//	c := palette.Fire.Color(it, maxIt)
//	if invert {
//		c = c.Invert()
//	}
package palette

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ID selects a palette.
type ID uint8

// Available palettes. The numeric values are stable and used as
// palette identifiers at the mutation boundary (0..12).
const (
	Monochrome ID = iota
	Rainbow
	DoubleRainbow
	UltraRainbow
	Fire
	Sine
	GrayTwist
	Smooth
	Neon
	Neon2
	Neon3
	Snowball
	Test

	count
)

// Count is the number of available palettes.
const Count = int(count)

// ErrUnknown is returned by Parse for names that match no palette.
var ErrUnknown = errors.New("palette: unknown palette")

var names = [count]string{
	Monochrome:    "Monochrome",
	Rainbow:       "Rainbow",
	DoubleRainbow: "DoubleRainbow",
	UltraRainbow:  "UltraRainbow",
	Fire:          "Fire",
	Sine:          "Sine",
	GrayTwist:     "GrayTwist",
	Smooth:        "Smooth",
	Neon:          "Neon",
	Neon2:         "Neon2",
	Neon3:         "Neon3",
	Snowball:      "Snowball",
	Test:          "Test",
}

// Func is the signature shared by all palettes.
type Func func(iteration, maxIteration int) RGB

// Valid reports whether id names an existing palette.
func (id ID) Valid() bool {
	return id < count
}

// String returns the palette name, or "ID(n)" for unknown values.
func (id ID) String() string {
	if !id.Valid() {
		return fmt.Sprintf("ID(%d)", uint8(id))
	}
	return names[id]
}

// Func returns the palette function for id, or nil if id is not valid.
func (id ID) Func() Func {
	switch id {
	case Monochrome:
		return monochrome
	case Rainbow:
		return rainbow
	case DoubleRainbow:
		return doubleRainbow
	case UltraRainbow:
		return ultraRainbow
	case Fire:
		return fire
	case Sine:
		return sine
	case GrayTwist:
		return grayTwist
	case Smooth:
		return smooth
	case Neon:
		return neon
	case Neon2:
		return neon2
	case Neon3:
		return neon3
	case Snowball:
		return snowball
	case Test:
		return test
	default:
		return nil
	}
}

// Color returns the colour for an iteration count. Unknown ids yield Black.
func (id ID) Color(iteration, maxIteration int) RGB {
	fn := id.Func()
	if fn == nil {
		return Black
	}
	return fn(iteration, maxIteration)
}

// Parse looks up a palette by name (case-insensitive) or by its numeric id.
func Parse(s string) (ID, error) {
	s = strings.TrimSpace(s)
	for i, name := range names {
		if strings.EqualFold(name, s) {
			return ID(i), nil
		}
	}

	if n, err := strconv.Atoi(s); err == nil && n >= 0 && n < Count {
		return ID(n), nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknown, s)
}

// All returns every palette id in numeric order.
func All() []ID {
	ids := make([]ID, Count)
	for i := range ids {
		ids[i] = ID(i)
	}
	return ids
}

// MarshalText implements encoding.TextMarshaler.
func (id ID) MarshalText() ([]byte, error) {
	if !id.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknown, uint8(id))
	}
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler so palettes can be named
// in configuration files.
func (id *ID) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*id = v
	return nil
}
