package field

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/goliatone/go-checkedit/pkg/model"
)

// Property keys accepted by SetProperty.
const (
	PropText        = "text"
	PropX           = "x"
	PropY           = "y"
	PropWidth       = "width"
	PropHeight      = "height"
	PropFontSize    = "fontSize"
	PropFontFamily  = "fontFamily"
	PropColor       = "color"
	PropTextAlign   = "textAlign"
	PropRequired    = "required"
	PropPlaceholder = "placeholder"
	PropID          = "id"
	PropType        = "type"
)

// Defaults applied to zero-valued style and size attributes.
const (
	DefaultWidth      = 200.0
	DefaultHeight     = 30.0
	DefaultFontSize   = 14.0
	DefaultFontFamily = "Arial"
	DefaultColor      = "#000000"
)

var (
	// ErrUnknownProperty is returned for keys outside the property set.
	ErrUnknownProperty = errors.New("field: unknown property")
	// ErrImmutableProperty is returned when changing id or type.
	ErrImmutableProperty = errors.New("field: property is immutable")
	// ErrInvalidValue is returned when a value has the wrong type or range.
	ErrInvalidValue = errors.New("field: invalid value")
)

// Field is a positioned, styled, typed text element.
type Field struct {
	id          string
	fieldType   model.FieldType
	text        string
	x, y        float64
	width       float64
	height      float64
	fontSize    float64
	fontFamily  string
	color       string
	textAlign   model.TextAlign
	required    bool
	placeholder string

	dirty bool
}

// New creates a field from cfg. Unknown field types become free-form text and
// a missing id is generated.
func New(cfg model.FieldConfig) *Field {
	ft := cfg.Type
	if !ft.Known() {
		ft = model.FieldText
	}
	id := strings.TrimSpace(cfg.ID)
	if id == "" {
		id = string(ft) + "_" + uuid.NewString()
	}
	f := &Field{
		id:          id,
		fieldType:   ft,
		text:        cfg.Text,
		x:           cfg.X,
		y:           cfg.Y,
		width:       orDefault(cfg.Width, DefaultWidth),
		height:      orDefault(cfg.Height, DefaultHeight),
		fontSize:    orDefault(cfg.FontSize, DefaultFontSize),
		fontFamily:  cfg.FontFamily,
		color:       cfg.Color,
		textAlign:   cfg.TextAlign,
		required:    cfg.Required,
		placeholder: cfg.Placeholder,
		dirty:       true,
	}
	if f.fontFamily == "" {
		f.fontFamily = DefaultFontFamily
	}
	if f.color == "" {
		f.color = DefaultColor
	}
	if !f.textAlign.Valid() {
		f.textAlign = model.AlignLeft
	}
	return f
}

func orDefault(v, fallback float64) float64 {
	if v <= 0 {
		return fallback
	}
	return v
}

func (f *Field) ID() string                 { return f.id }
func (f *Field) Type() model.FieldType      { return f.fieldType }
func (f *Field) Text() string               { return f.text }
func (f *Field) Placeholder() string        { return f.placeholder }
func (f *Field) Required() bool             { return f.required }
func (f *Field) Position() (x, y float64)   { return f.x, f.y }
func (f *Field) Size() (w, h float64)       { return f.width, f.height }
func (f *Field) FontSize() float64          { return f.fontSize }
func (f *Field) FontFamily() string         { return f.fontFamily }
func (f *Field) Color() string              { return f.color }
func (f *Field) TextAlign() model.TextAlign { return f.textAlign }

// Dirty reports whether the field changed since the last render pass.
func (f *Field) Dirty() bool { return f.dirty }

// MarkClean acknowledges a render pass.
func (f *Field) MarkClean() { f.dirty = false }

// Snapshot returns the field's attributes as a plain record.
func (f *Field) Snapshot() model.FieldSnapshot {
	return model.FieldSnapshot{
		ID:          f.id,
		Type:        f.fieldType,
		Text:        f.text,
		X:           f.x,
		Y:           f.y,
		Width:       f.width,
		Height:      f.height,
		FontSize:    f.fontSize,
		FontFamily:  f.fontFamily,
		Color:       f.color,
		Required:    f.required,
		TextAlign:   f.textAlign,
		Placeholder: f.placeholder,
	}
}

// SetText replaces the text without running behaviours.
func (f *Field) SetText(text string) {
	if f.text == text {
		return
	}
	f.text = text
	f.dirty = true
}

// SetProperty mutates one attribute without running behaviours. On error the
// field is left untouched.
func (f *Field) SetProperty(key string, value any) error {
	switch key {
	case PropID, PropType:
		return fmt.Errorf("%w: %s", ErrImmutableProperty, key)
	case PropText:
		s, err := asString(key, value)
		if err != nil {
			return err
		}
		f.SetText(s)
		return nil
	case PropFontFamily, PropColor, PropPlaceholder:
		s, err := asString(key, value)
		if err != nil {
			return err
		}
		switch key {
		case PropFontFamily:
			f.fontFamily = s
		case PropColor:
			f.color = s
		default:
			f.placeholder = s
		}
	case PropTextAlign:
		s, err := asString(key, value)
		if err != nil {
			return err
		}
		align := model.TextAlign(s)
		if !align.Valid() {
			return fmt.Errorf("%w: %s=%q", ErrInvalidValue, key, s)
		}
		f.textAlign = align
	case PropRequired:
		b, err := asBool(key, value)
		if err != nil {
			return err
		}
		f.required = b
	case PropX, PropY, PropWidth, PropHeight, PropFontSize:
		n, err := asFloat(key, value)
		if err != nil {
			return err
		}
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return fmt.Errorf("%w: %s is not finite", ErrInvalidValue, key)
		}
		if key != PropX && key != PropY && n <= 0 {
			return fmt.Errorf("%w: %s must be positive", ErrInvalidValue, key)
		}
		switch key {
		case PropX:
			f.x = n
		case PropY:
			f.y = n
		case PropWidth:
			f.width = n
		case PropHeight:
			f.height = n
		default:
			f.fontSize = n
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownProperty, key)
	}
	f.dirty = true
	return nil
}

func asString(key string, value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case fmt.Stringer:
		return v.String(), nil
	default:
		return "", fmt.Errorf("%w: %s expects a string, got %T", ErrInvalidValue, key, value)
	}
}

func asBool(key string, value any) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return false, fmt.Errorf("%w: %s=%q", ErrInvalidValue, key, v)
		}
		return b, nil
	default:
		return false, fmt.Errorf("%w: %s expects a bool, got %T", ErrInvalidValue, key, value)
	}
}

func asFloat(key string, value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %s=%q", ErrInvalidValue, key, v)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("%w: %s expects a number, got %T", ErrInvalidValue, key, value)
	}
}
