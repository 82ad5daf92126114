package units

import (
	"fmt"
	"strconv"
	"strings"
)

// DPI is the fixed pixel density used for every physical conversion.
const DPI = 96.0

// Unit identifies a measurement unit.
type Unit string

const (
	Pixel      Unit = "px"
	Millimetre Unit = "mm"
	Centimetre Unit = "cm"
	Inch       Unit = "inch"
)

// Parse maps user input onto a Unit. Unrecognised values return ok=false.
func Parse(raw string) (Unit, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "px", "pixel", "pixels":
		return Pixel, true
	case "mm", "millimetre", "millimeter":
		return Millimetre, true
	case "cm", "centimetre", "centimeter":
		return Centimetre, true
	case "in", "inch", "inches":
		return Inch, true
	default:
		return "", false
	}
}

// Valid reports whether u is one of the known units.
func (u Unit) Valid() bool {
	_, ok := Parse(string(u))
	return ok
}

// Abbrev returns the short suffix shown next to values ("in" for inches).
func (u Unit) Abbrev() string {
	if u == Inch {
		return "in"
	}
	return string(u)
}

// FromPixels converts a pixel distance into unit. Unknown units are treated
// as pixels.
func FromPixels(px float64, unit Unit) float64 {
	switch normalise(unit) {
	case Millimetre:
		return px * 25.4 / DPI
	case Centimetre:
		return px * 2.54 / DPI
	case Inch:
		return px / DPI
	default:
		return px
	}
}

// ToPixels converts a value expressed in unit into pixels. Unknown units are
// treated as pixels.
func ToPixels(value float64, unit Unit) float64 {
	switch normalise(unit) {
	case Millimetre:
		return value * DPI / 25.4
	case Centimetre:
		return value * DPI / 2.54
	case Inch:
		return value * DPI
	default:
		return value
	}
}

// Format renders a pixel distance in unit for display, e.g. "215.9 mm".
func Format(px float64, unit Unit) string {
	u := normalise(unit)
	value := FromPixels(px, u)
	return strconv.FormatFloat(value, 'f', precision(u), 64) + " " + u.Abbrev()
}

// FormatPoint renders a pointer position for status displays.
func FormatPoint(x, y float64, unit Unit) string {
	u := normalise(unit)
	p := precision(u)
	return fmt.Sprintf("%s, %s %s",
		strconv.FormatFloat(FromPixels(x, u), 'f', p, 64),
		strconv.FormatFloat(FromPixels(y, u), 'f', p, 64),
		u.Abbrev(),
	)
}

func precision(u Unit) int {
	switch u {
	case Millimetre:
		return 1
	case Centimetre:
		return 2
	case Inch:
		return 3
	default:
		return 0
	}
}

func normalise(unit Unit) Unit {
	if u, ok := Parse(string(unit)); ok {
		return u
	}
	return Pixel
}
