package canvas

import (
	"context"
	"image"

	"github.com/goliatone/go-checkedit/pkg/model"
)

// Kind classifies a drawable.
type Kind int

const (
	KindField Kind = iota
	KindLine
	KindLabel
	KindImage
)

// Drawable is the description of one object on the surface. Exactly one of the
// payload fields is set, according to Kind.
type Drawable struct {
	Kind  Kind
	Field model.FieldSnapshot
	Line  model.Line
	Label model.Label
	Image *Placement
}

// Placement positions a decoded background image in canvas space.
type Placement struct {
	Image  image.Image
	Left   float64
	Top    float64
	Scale  float64
	Width  float64
	Height float64
}

// Viewport is the screen transform: screen = canvas*Zoom + Offset.
type Viewport struct {
	Zoom    float64
	OffsetX float64
	OffsetY float64
}

// Identity is the viewport used for export.
var Identity = Viewport{Zoom: 1}

// RasterOptions controls Surface.Rasterize.
type RasterOptions struct {
	// Format is "png" or "jpeg".
	Format string
	// Multiplier scales the output resolution.
	Multiplier float64
	// Placeholders draws placeholder hints in empty fields.
	Placeholders bool
}

// Surface is the 2D scene the controller draws into. Drawables keep their
// position in the stacking order when replaced; new ones go on top.
type Surface interface {
	SetSize(width, height float64)
	SetBackgroundColor(color string)
	SetViewport(v Viewport)
	Upsert(handle string, d Drawable)
	Remove(handle string)
	SendToBack(handle string)
	Rasterize(ctx context.Context, opts RasterOptions) ([]byte, error)
}

// NopSurface discards everything. Rasterize returns an empty payload.
type NopSurface struct{}

func (NopSurface) SetSize(float64, float64)  {}
func (NopSurface) SetBackgroundColor(string) {}
func (NopSurface) SetViewport(Viewport)      {}
func (NopSurface) Upsert(string, Drawable)   {}
func (NopSurface) Remove(string)             {}
func (NopSurface) SendToBack(string)         {}
func (NopSurface) Rasterize(ctx context.Context, _ RasterOptions) ([]byte, error) {
	return nil, ctx.Err()
}

const (
	fieldHandlePrefix = "field:"
	bgHandlePrefix    = "bg:"
	imageHandle       = "image"
)

// FieldHandle returns the surface handle of a field.
func FieldHandle(id string) string { return fieldHandlePrefix + id }
