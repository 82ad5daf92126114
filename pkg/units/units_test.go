package units

import (
	"math"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	values := []float64{0, 1, 33.3, 96, 850, 12345.678}
	for _, unit := range []Unit{Pixel, Millimetre, Centimetre, Inch} {
		for _, px := range values {
			got := ToPixels(FromPixels(px, unit), unit)
			if math.Abs(got-px) > 1e-9 {
				t.Fatalf("%s round trip of %v: got %v", unit, px, got)
			}
		}
	}
}

func TestConversions(t *testing.T) {
	tests := []struct {
		name string
		px   float64
		unit Unit
		want float64
	}{
		{name: "inch", px: 96, unit: Inch, want: 1},
		{name: "mm", px: 96, unit: Millimetre, want: 25.4},
		{name: "cm", px: 96, unit: Centimetre, want: 2.54},
		{name: "px identity", px: 42, unit: Pixel, want: 42},
		{name: "unknown falls back to px", px: 42, unit: Unit("furlong"), want: 42},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := FromPixels(tc.px, tc.unit)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Fatalf("FromPixels(%v, %s) = %v, want %v", tc.px, tc.unit, got, tc.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	for raw, want := range map[string]Unit{"in": Inch, "Inch": Inch, "MM": Millimetre, " cm ": Centimetre, "px": Pixel} {
		got, ok := Parse(raw)
		if !ok || got != want {
			t.Fatalf("Parse(%q) = %q, %v", raw, got, ok)
		}
	}
	if _, ok := Parse("pt"); ok {
		t.Fatalf("expected pt to be rejected")
	}
}

func TestTickStep(t *testing.T) {
	tests := []struct {
		extent float64
		unit   Unit
		want   float64
	}{
		{50, Millimetre, 1},
		{51, Millimetre, 5},
		{200, Millimetre, 5},
		{500, Millimetre, 10},
		{501, Millimetre, 20},
		{5, Centimetre, 0.1},
		{20, Centimetre, 0.5},
		{50, Centimetre, 1},
		{80, Centimetre, 2},
		{2, Inch, 0.125},
		{8, Inch, 0.25},
		{20, Inch, 0.5},
		{21, Inch, 1},
		{100, Pixel, 10},
		{500, Pixel, 50},
		{1000, Pixel, 100},
		{1001, Pixel, 200},
	}
	for _, tc := range tests {
		if got := TickStep(tc.extent, tc.unit); got != tc.want {
			t.Fatalf("TickStep(%v, %s) = %v, want %v", tc.extent, tc.unit, got, tc.want)
		}
	}
}

func TestTicksLabelsMajorMarks(t *testing.T) {
	ticks := Ticks(96*2, Inch)
	if len(ticks) != 17 {
		t.Fatalf("expected 17 ticks for 2in at 0.125, got %d", len(ticks))
	}
	if !ticks[0].Major || ticks[0].Label != "0" {
		t.Fatalf("unexpected first tick %#v", ticks[0])
	}
	if ticks[5].Label != "0.625" || ticks[5].Pixel != 60 {
		t.Fatalf("unexpected fifth tick %#v", ticks[5])
	}
	if ticks[1].Major || ticks[1].Label != "" {
		t.Fatalf("minor tick should not be labelled: %#v", ticks[1])
	}
	if Ticks(0, Inch) != nil {
		t.Fatalf("expected no ticks for zero extent")
	}
}

func TestFormat(t *testing.T) {
	if got := Format(96, Inch); got != "1.000 in" {
		t.Fatalf("Format inch = %q", got)
	}
	if got := Format(96, Millimetre); got != "25.4 mm" {
		t.Fatalf("Format mm = %q", got)
	}
	if got := FormatPoint(96, 48, Centimetre); got != "2.54, 1.27 cm" {
		t.Fatalf("FormatPoint = %q", got)
	}
}
