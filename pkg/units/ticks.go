package units

import (
	"math"
	"strconv"
)

type stepRule struct {
	max  float64
	step float64
}

// Thresholds are expressed in the unit itself; the last entry applies to any
// larger extent.
var stepTables = map[Unit][]stepRule{
	Millimetre: {{50, 1}, {200, 5}, {500, 10}, {math.Inf(1), 20}},
	Centimetre: {{5, 0.1}, {20, 0.5}, {50, 1}, {math.Inf(1), 2}},
	Inch:       {{2, 0.125}, {8, 0.25}, {20, 0.5}, {math.Inf(1), 1}},
	Pixel:      {{100, 10}, {500, 50}, {1000, 100}, {math.Inf(1), 200}},
}

// TickStep returns the ruler step, in unit, for a visible extent measured in
// the same unit.
func TickStep(extent float64, unit Unit) float64 {
	rules := stepTables[normalise(unit)]
	for _, rule := range rules {
		if extent <= rule.max {
			return rule.step
		}
	}
	return rules[len(rules)-1].step
}

// Tick is a single ruler mark.
type Tick struct {
	// Pixel is the offset from the ruler origin in pixels.
	Pixel float64
	Value float64
	Label string
	Major bool
}

// Ticks lays out ruler marks covering extentPx pixels. Every fifth tick is
// major and carries a label.
func Ticks(extentPx float64, unit Unit) []Tick {
	if extentPx <= 0 || math.IsNaN(extentPx) || math.IsInf(extentPx, 0) {
		return nil
	}
	u := normalise(unit)
	extent := FromPixels(extentPx, u)
	step := TickStep(extent, u)
	count := int(math.Floor(extent/step + 1e-9))

	ticks := make([]Tick, 0, count+1)
	for i := 0; i <= count; i++ {
		value := float64(i) * step
		tick := Tick{
			Pixel: ToPixels(value, u),
			Value: value,
			Major: i%5 == 0,
		}
		if tick.Major {
			tick.Label = strconv.FormatFloat(round(value, 3), 'f', -1, 64)
		}
		ticks = append(ticks, tick)
	}
	return ticks
}

func round(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
