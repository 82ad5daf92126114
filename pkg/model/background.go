package model

import (
	"encoding/json"
	"fmt"
)

// Background element discriminators.
const (
	ElementLine  = "line"
	ElementLabel = "label"
)

// BackgroundElement holds exactly one of Line or Label.
type BackgroundElement struct {
	Line  *Line
	Label *Label
}

// LineElement wraps a line.
func LineElement(l Line) BackgroundElement {
	return BackgroundElement{Line: &l}
}

// LabelElement wraps a label.
func LabelElement(l Label) BackgroundElement {
	return BackgroundElement{Label: &l}
}

// Kind returns the discriminator, or "" for an empty element.
func (e BackgroundElement) Kind() string {
	switch {
	case e.Line != nil:
		return ElementLine
	case e.Label != nil:
		return ElementLabel
	default:
		return ""
	}
}

type lineJSON struct {
	Type string `json:"type"`
	Line
}

type labelJSON struct {
	Type string `json:"type"`
	Label
}

// MarshalJSON flattens the variant and adds its "type" tag.
func (e BackgroundElement) MarshalJSON() ([]byte, error) {
	switch {
	case e.Line != nil:
		return json.Marshal(lineJSON{Type: ElementLine, Line: *e.Line})
	case e.Label != nil:
		return json.Marshal(labelJSON{Type: ElementLabel, Label: *e.Label})
	default:
		return nil, fmt.Errorf("model: background element has no variant")
	}
}

// UnmarshalJSON selects the variant from the "type" tag.
func (e *BackgroundElement) UnmarshalJSON(data []byte) error {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return fmt.Errorf("model: decode background element: %w", err)
	}
	switch probe.Type {
	case ElementLine:
		var v lineJSON
		if err := json.Unmarshal(data, &v); err != nil {
			return fmt.Errorf("model: decode line: %w", err)
		}
		*e = LineElement(v.Line)
	case ElementLabel:
		var v labelJSON
		if err := json.Unmarshal(data, &v); err != nil {
			return fmt.Errorf("model: decode label: %w", err)
		}
		*e = LabelElement(v.Label)
	default:
		return fmt.Errorf("model: unknown background element type %q", probe.Type)
	}
	return nil
}

type elementYAML struct {
	Type        string  `yaml:"type"`
	X1          float64 `yaml:"x1,omitempty"`
	Y1          float64 `yaml:"y1,omitempty"`
	X2          float64 `yaml:"x2,omitempty"`
	Y2          float64 `yaml:"y2,omitempty"`
	Stroke      string  `yaml:"stroke,omitempty"`
	StrokeWidth float64 `yaml:"strokeWidth,omitempty"`
	Text        string  `yaml:"text,omitempty"`
	X           float64 `yaml:"x,omitempty"`
	Y           float64 `yaml:"y,omitempty"`
	FontSize    float64 `yaml:"fontSize,omitempty"`
	Color       string  `yaml:"color,omitempty"`
}

// MarshalYAML mirrors MarshalJSON for YAML documents.
func (e BackgroundElement) MarshalYAML() (any, error) {
	switch {
	case e.Line != nil:
		l := e.Line
		return elementYAML{Type: ElementLine, X1: l.X1, Y1: l.Y1, X2: l.X2, Y2: l.Y2, Stroke: l.Stroke, StrokeWidth: l.StrokeWidth}, nil
	case e.Label != nil:
		l := e.Label
		return elementYAML{Type: ElementLabel, Text: l.Text, X: l.X, Y: l.Y, FontSize: l.FontSize, Color: l.Color}, nil
	default:
		return nil, fmt.Errorf("model: background element has no variant")
	}
}

// UnmarshalYAML mirrors UnmarshalJSON for YAML documents.
func (e *BackgroundElement) UnmarshalYAML(unmarshal func(any) error) error {
	var raw elementYAML
	if err := unmarshal(&raw); err != nil {
		return fmt.Errorf("model: decode background element: %w", err)
	}
	switch raw.Type {
	case ElementLine:
		*e = LineElement(Line{X1: raw.X1, Y1: raw.Y1, X2: raw.X2, Y2: raw.Y2, Stroke: raw.Stroke, StrokeWidth: raw.StrokeWidth})
	case ElementLabel:
		*e = LabelElement(Label{Text: raw.Text, X: raw.X, Y: raw.Y, FontSize: raw.FontSize, Color: raw.Color})
	default:
		return fmt.Errorf("model: unknown background element type %q", raw.Type)
	}
	return nil
}
