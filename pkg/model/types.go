package model

import "time"

// FieldType identifies the role of a field on a check.
type FieldType string

const (
	FieldPayee        FieldType = "payee"
	FieldAmountNumber FieldType = "amount-number"
	FieldAmountText   FieldType = "amount-text"
	FieldDate         FieldType = "date"
	FieldMemo         FieldType = "memo"
	FieldSignature    FieldType = "signature"
	// FieldText is free-form text with no reactive behaviour.
	FieldText FieldType = "text"
)

// CheckFieldTypes lists the six typed roles every check layout carries, in
// canonical order.
func CheckFieldTypes() []FieldType {
	return []FieldType{
		FieldPayee,
		FieldAmountNumber,
		FieldAmountText,
		FieldDate,
		FieldMemo,
		FieldSignature,
	}
}

// Known reports whether t is one of the recognised field types.
func (t FieldType) Known() bool {
	switch t {
	case FieldPayee, FieldAmountNumber, FieldAmountText, FieldDate, FieldMemo, FieldSignature, FieldText:
		return true
	default:
		return false
	}
}

// TextAlign is the horizontal alignment of field text.
type TextAlign string

const (
	AlignLeft   TextAlign = "left"
	AlignCenter TextAlign = "center"
	AlignRight  TextAlign = "right"
)

// Valid reports whether a is a supported alignment.
func (a TextAlign) Valid() bool {
	return a == AlignLeft || a == AlignCenter || a == AlignRight
}

// FieldConfig holds the static attributes of a field. It doubles as the
// FieldSnapshot stored in EditorState.
type FieldConfig struct {
	ID          string    `json:"id" yaml:"id" validate:"required"`
	Type        FieldType `json:"type" yaml:"type" validate:"required"`
	Text        string    `json:"text" yaml:"text,omitempty"`
	X           float64   `json:"x" yaml:"x"`
	Y           float64   `json:"y" yaml:"y"`
	Width       float64   `json:"width" yaml:"width" validate:"gte=0"`
	Height      float64   `json:"height" yaml:"height" validate:"gte=0"`
	FontSize    float64   `json:"fontSize" yaml:"fontSize" validate:"gte=0"`
	FontFamily  string    `json:"fontFamily" yaml:"fontFamily"`
	Color       string    `json:"color" yaml:"color"`
	Required    bool      `json:"required" yaml:"required"`
	TextAlign   TextAlign `json:"textAlign" yaml:"textAlign,omitempty"`
	Placeholder string    `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
}

// FieldSnapshot is a live field's attributes without its behaviour handle.
type FieldSnapshot = FieldConfig

// Size is a canvas extent in pixels.
type Size struct {
	Width  float64 `json:"width" yaml:"width" validate:"gt=0"`
	Height float64 `json:"height" yaml:"height" validate:"gt=0"`
}

// Line is a decorative stroke.
type Line struct {
	X1          float64 `json:"x1" yaml:"x1"`
	Y1          float64 `json:"y1" yaml:"y1"`
	X2          float64 `json:"x2" yaml:"x2"`
	Y2          float64 `json:"y2" yaml:"y2"`
	Stroke      string  `json:"stroke" yaml:"stroke"`
	StrokeWidth float64 `json:"strokeWidth" yaml:"strokeWidth"`
}

// Label is decorative, non-editable text.
type Label struct {
	Text     string  `json:"text" yaml:"text"`
	X        float64 `json:"x" yaml:"x"`
	Y        float64 `json:"y" yaml:"y"`
	FontSize float64 `json:"fontSize" yaml:"fontSize"`
	Color    string  `json:"color" yaml:"color"`
}

// Background groups the decorative elements of a template.
type Background struct {
	Lines  []Line  `json:"lines" yaml:"lines"`
	Labels []Label `json:"labels" yaml:"labels"`
}

// Elements flattens the background into draw order: lines, then labels.
func (b Background) Elements() []BackgroundElement {
	out := make([]BackgroundElement, 0, len(b.Lines)+len(b.Labels))
	for _, line := range b.Lines {
		out = append(out, LineElement(line))
	}
	for _, label := range b.Labels {
		out = append(out, LabelElement(label))
	}
	return out
}

// BackgroundFromElements is the inverse of Background.Elements.
func BackgroundFromElements(elements []BackgroundElement) Background {
	bg := Background{Lines: []Line{}, Labels: []Label{}}
	for _, el := range elements {
		switch {
		case el.Line != nil:
			bg.Lines = append(bg.Lines, *el.Line)
		case el.Label != nil:
			bg.Labels = append(bg.Labels, *el.Label)
		}
	}
	return bg
}

// TemplateConfig is a serialisable check layout blueprint.
type TemplateConfig struct {
	Name            string        `json:"name" yaml:"name"`
	NameLocal       string        `json:"nameCn,omitempty" yaml:"nameCn,omitempty"`
	Size            Size          `json:"size" yaml:"size"`
	BackgroundColor string        `json:"backgroundColor" yaml:"backgroundColor"`
	Fields          []FieldConfig `json:"fields" yaml:"fields" validate:"unique=ID,dive"`
	Background      Background    `json:"background" yaml:"background"`
	Version         string        `json:"version,omitempty" yaml:"version,omitempty"`
	Created         *time.Time    `json:"created,omitempty" yaml:"created,omitempty"`
}

// Clone returns a deep copy of the template.
func (t TemplateConfig) Clone() TemplateConfig {
	out := t
	out.Fields = append([]FieldConfig(nil), t.Fields...)
	out.Background.Lines = append([]Line(nil), t.Background.Lines...)
	out.Background.Labels = append([]Label(nil), t.Background.Labels...)
	if t.Created != nil {
		created := *t.Created
		out.Created = &created
	}
	return out
}

// TemplateSummary is the listing view of a template.
type TemplateSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	NameLocal string `json:"nameCn,omitempty"`
	Size      Size   `json:"size"`
}

// EditorState is the full serialisation unit of a live canvas.
type EditorState struct {
	Size               Size                `json:"size" yaml:"size"`
	BackgroundColor    string              `json:"backgroundColor" yaml:"backgroundColor"`
	Fields             []FieldSnapshot     `json:"fields" yaml:"fields"`
	BackgroundElements []BackgroundElement `json:"backgroundElements" yaml:"backgroundElements"`
	Zoom               float64             `json:"zoom" yaml:"zoom"`
}
