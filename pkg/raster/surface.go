package raster

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/color"
	"math"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-checkedit/pkg/canvas"
	"github.com/goliatone/go-checkedit/pkg/model"
)

// ErrUnsupportedFormat is returned by Rasterize for formats other than png
// and jpeg.
var ErrUnsupportedFormat = errors.New("raster: unsupported image format")

const (
	// Backdrop painted behind field text so it stays legible over a scanned
	// background.
	fieldBackdrop    = "rgba(255,255,255,0.8)"
	placeholderColor = "#999999"
	lineSpacing      = 1.16
	jpegQuality      = 92
)

// Option configures a Surface.
type Option func(*Surface) error

// WithFontData registers a TrueType font for family. An empty family
// replaces the fallback used for every unregistered family.
func WithFontData(family string, data []byte) Option {
	return func(s *Surface) error {
		return s.fonts.register(family, data)
	}
}

// WithLogger sets the logger used for drawing problems such as bad colours.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(s *Surface) error {
		if logger != nil {
			s.logger = logger
		}
		return nil
	}
}

// Surface keeps the drawables in stacking order and paints them on demand.
type Surface struct {
	mu     sync.Mutex
	width  float64
	height float64
	bg     string
	view   canvas.Viewport
	order  []string
	items  map[string]canvas.Drawable

	fonts  *fontBook
	logger logrus.FieldLogger
}

var _ canvas.Surface = (*Surface)(nil)

// New returns an empty surface sized like a fresh editor.
func New(opts ...Option) (*Surface, error) {
	s := &Surface{
		width:  canvas.DefaultWidth,
		height: canvas.DefaultHeight,
		bg:     canvas.DefaultBackgroundColor,
		view:   canvas.Identity,
		items:  make(map[string]canvas.Drawable),
		fonts:  newFontBook(),
		logger: logrus.StandardLogger(),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Surface) SetSize(width, height float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width, s.height = width, height
}

func (s *Surface) SetBackgroundColor(c string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bg = c
}

// SetViewport records the on-screen transform. Rasterize ignores it.
func (s *Surface) SetViewport(v canvas.Viewport) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = v
}

// Viewport returns the last viewport set by the controller.
func (s *Surface) Viewport() canvas.Viewport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

func (s *Surface) Upsert(handle string, d canvas.Drawable) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[handle]; !ok {
		s.order = append(s.order, handle)
	}
	s.items[handle] = d
}

func (s *Surface) Remove(handle string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[handle]; !ok {
		return
	}
	delete(s.items, handle)
	s.order = without(s.order, handle)
}

func (s *Surface) SendToBack(handle string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[handle]; !ok {
		return
	}
	s.order = append([]string{handle}, without(s.order, handle)...)
}

// Handles lists the drawables bottom to top.
func (s *Surface) Handles() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.order...)
}

func without(order []string, handle string) []string {
	out := make([]string, 0, len(order))
	for _, h := range order {
		if h != handle {
			out = append(out, h)
		}
	}
	return out
}

type frame struct {
	width  float64
	height float64
	bg     string
	items  []canvas.Drawable
}

func (s *Surface) frame() frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	f := frame{width: s.width, height: s.height, bg: s.bg, items: make([]canvas.Drawable, 0, len(s.order))}
	for _, h := range s.order {
		f.items = append(f.items, s.items[h])
	}
	return f
}

// Rasterize paints the scene at opts.Multiplier times the canvas size with
// the identity viewport and encodes it.
func (s *Surface) Rasterize(ctx context.Context, opts canvas.RasterOptions) ([]byte, error) {
	format, err := imageFormat(opts.Format)
	if err != nil {
		return nil, err
	}
	m := opts.Multiplier
	if !(m > 0) {
		m = 1
	}
	f := s.frame()
	dc := gg.NewContext(int(math.Ceil(f.width*m)), int(math.Ceil(f.height*m)))

	if bg, err := ParseColor(f.bg); err == nil {
		dc.SetColor(bg)
	} else {
		s.logger.WithError(err).Warn("background colour ignored")
		dc.SetColor(color.White)
	}
	dc.Clear()

	for _, item := range f.items {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		switch item.Kind {
		case canvas.KindImage:
			s.drawImage(dc, item.Image, m)
		case canvas.KindLine:
			s.drawLine(dc, item.Line, m)
		case canvas.KindLabel:
			s.drawLabel(dc, item.Label, m)
		case canvas.KindField:
			s.drawField(dc, item.Field, m, opts.Placeholders)
		}
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, dc.Image(), format, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, fmt.Errorf("raster: encode: %w", err)
	}
	return buf.Bytes(), nil
}

func imageFormat(name string) (imaging.Format, error) {
	switch strings.ToLower(name) {
	case "", "png":
		return imaging.PNG, nil
	case "jpeg", "jpg":
		return imaging.JPEG, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
}

func (s *Surface) setColor(dc *gg.Context, value, fallback string) {
	c, err := ParseColor(value)
	if err != nil {
		if value != "" {
			s.logger.WithError(err).Debug("colour fallback")
		}
		c, _ = ParseColor(fallback)
	}
	dc.SetColor(c)
}

func (s *Surface) drawImage(dc *gg.Context, p *canvas.Placement, m float64) {
	if p == nil || p.Image == nil {
		return
	}
	w, h := int(math.Round(p.Width*m)), int(math.Round(p.Height*m))
	if w <= 0 || h <= 0 {
		return
	}
	scaled := imaging.Resize(p.Image, w, h, imaging.Lanczos)
	dc.DrawImage(scaled, int(math.Round(p.Left*m)), int(math.Round(p.Top*m)))
}

func (s *Surface) drawLine(dc *gg.Context, l model.Line, m float64) {
	width := l.StrokeWidth
	if width <= 0 {
		width = 1
	}
	s.setColor(dc, l.Stroke, "#000000")
	dc.SetLineWidth(width * m)
	dc.DrawLine(l.X1*m, l.Y1*m, l.X2*m, l.Y2*m)
	dc.Stroke()
}

func (s *Surface) drawLabel(dc *gg.Context, l model.Label, m float64) {
	if l.Text == "" {
		return
	}
	size := l.FontSize
	if size <= 0 {
		size = 10
	}
	dc.SetFontFace(s.fonts.face("", size*m))
	s.setColor(dc, l.Color, "#000000")
	dc.DrawStringAnchored(l.Text, l.X*m, l.Y*m, 0, 1)
}

func (s *Surface) drawField(dc *gg.Context, f model.FieldSnapshot, m float64, placeholders bool) {
	x, y, w, h := f.X*m, f.Y*m, f.Width*m, f.Height*m

	s.setColor(dc, fieldBackdrop, "#ffffff")
	dc.DrawRectangle(x, y, w, h)
	dc.Fill()

	text, ink := f.Text, f.Color
	if text == "" {
		if !placeholders || f.Placeholder == "" {
			return
		}
		text, ink = f.Placeholder, placeholderColor
	}
	dc.SetFontFace(s.fonts.face(f.FontFamily, f.FontSize*m))
	s.setColor(dc, ink, "#000000")
	dc.DrawStringWrapped(text, x, y, 0, 0, w, lineSpacing, align(f.TextAlign))
}

func align(a model.TextAlign) gg.Align {
	switch a {
	case model.AlignCenter:
		return gg.AlignCenter
	case model.AlignRight:
		return gg.AlignRight
	}
	return gg.AlignLeft
}
