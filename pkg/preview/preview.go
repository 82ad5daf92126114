package preview

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-checkedit/pkg/model"
)

// Default thumbnail size and colours.
const (
	DefaultWidth  = 300
	DefaultHeight = 150

	borderColor = "#cccccc"
	fieldFill   = "#e0e0e0"
	hintColor   = "#999999"
	fill        = 0.8
	textInset   = 5

	defaultTemplate = "thumbnail.svg.tpl"
)

// Option configures a Renderer.
type Option func(*config)

type config struct {
	baseDir string
	files   fs.FS
	name    string
	width   int
	height  int
}

// WithBaseDir loads the SVG template from a directory on disk.
func WithBaseDir(dir string) Option {
	return func(cfg *config) {
		cfg.baseDir = strings.TrimSpace(dir)
	}
}

// WithFS loads the SVG template from files.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.files = files
	}
}

// WithTemplate selects the template file name.
func WithTemplate(name string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			cfg.name = trimmed
		}
	}
}

// WithSize sets the thumbnail size in pixels.
func WithSize(width, height int) Option {
	return func(cfg *config) {
		if width > 0 && height > 0 {
			cfg.width, cfg.height = width, height
		}
	}
}

// Renderer draws template thumbnails.
type Renderer struct {
	mu     sync.Mutex
	set    *pongo2.TemplateSet
	tpl    *pongo2.Template
	name   string
	width  int
	height int
}

// New constructs a Renderer. Without options it uses the embedded template.
func New(options ...Option) (*Renderer, error) {
	cfg := &config{name: defaultTemplate, width: DefaultWidth, height: DefaultHeight}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	var loaders []pongo2.TemplateLoader
	if cfg.baseDir != "" {
		loader, err := pongo2.NewLocalFileSystemLoader(cfg.baseDir)
		if err != nil {
			return nil, fmt.Errorf("preview: create local loader: %w", err)
		}
		loaders = append(loaders, loader)
	}
	if cfg.files != nil {
		loaders = append(loaders, pongo2.NewFSLoader(cfg.files))
	}
	sub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		return nil, fmt.Errorf("preview: embedded templates: %w", err)
	}
	loaders = append(loaders, pongo2.NewFSLoader(sub))

	return &Renderer{
		set:    pongo2.NewSet("checkedit-preview", loaders...),
		name:   cfg.name,
		width:  cfg.width,
		height: cfg.height,
	}, nil
}

func (r *Renderer) template() (*pongo2.Template, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.tpl != nil {
		return r.tpl, nil
	}
	tpl, err := r.set.FromFile(r.name)
	if err != nil {
		return nil, fmt.Errorf("preview: load template %q: %w", r.name, err)
	}
	r.tpl = tpl
	return tpl, nil
}

// Render returns the SVG thumbnail of cfg.
func (r *Renderer) Render(cfg model.TemplateConfig) ([]byte, error) {
	if r == nil || r.set == nil {
		return nil, errors.New("preview: renderer is nil")
	}
	if !(cfg.Size.Width > 0) || !(cfg.Size.Height > 0) {
		return nil, fmt.Errorf("preview: template %q has no size", cfg.Name)
	}
	tpl, err := r.template()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := tpl.ExecuteWriter(r.scene(cfg), &buf); err != nil {
		return nil, fmt.Errorf("preview: execute %q: %w", r.name, err)
	}
	return buf.Bytes(), nil
}

type rect struct{ X, Y, W, H string }

type lineView struct{ X1, Y1, X2, Y2, Stroke, Width string }

type labelView struct{ X, Y, Size, Color, Text string }

type fieldView struct {
	X, Y, W, H   string
	Text         string
	TextX, TextY string
	Size         string
	Anchor       string
}

// scene fits the template into 80% of the thumbnail, centred.
func (r *Renderer) scene(cfg model.TemplateConfig) pongo2.Context {
	w, h := float64(r.width), float64(r.height)
	scale := math.Min(w/cfg.Size.Width, h/cfg.Size.Height) * fill
	offX := (w - cfg.Size.Width*scale) / 2
	offY := (h - cfg.Size.Height*scale) / 2
	px := func(v float64) float64 { return offX + v*scale }
	py := func(v float64) float64 { return offY + v*scale }

	background := cfg.BackgroundColor
	if background == "" {
		background = "#ffffff"
	}

	lines := make([]lineView, 0, len(cfg.Background.Lines))
	for _, l := range cfg.Background.Lines {
		stroke := l.Stroke
		if stroke == "" {
			stroke = borderColor
		}
		lines = append(lines, lineView{
			X1: num(px(l.X1)), Y1: num(py(l.Y1)), X2: num(px(l.X2)), Y2: num(py(l.Y2)),
			Stroke: stroke, Width: num(math.Max(l.StrokeWidth, 1) * scale),
		})
	}

	labels := make([]labelView, 0, len(cfg.Background.Labels))
	for _, l := range cfg.Background.Labels {
		color := l.Color
		if color == "" {
			color = "#000000"
		}
		labels = append(labels, labelView{
			X: num(px(l.X)), Y: num(py(l.Y)), Size: num(l.FontSize * scale), Color: color, Text: l.Text,
		})
	}

	fields := make([]fieldView, 0, len(cfg.Fields))
	for _, f := range cfg.Fields {
		x, y, fw, fh := px(f.X), py(f.Y), f.Width*scale, f.Height*scale
		size := f.FontSize * scale
		view := fieldView{
			X: num(x), Y: num(y), W: num(fw), H: num(fh),
			Text:   f.Placeholder,
			TextX:  num(x + textInset),
			TextY:  num(y + fh/2 + size/3),
			Size:   num(size),
			Anchor: "start",
		}
		if f.TextAlign == model.AlignRight {
			view.TextX = num(x + fw - textInset)
			view.Anchor = "end"
		}
		fields = append(fields, view)
	}

	return pongo2.Context{
		"width":      r.width,
		"height":     r.height,
		"background": background,
		"border":     borderColor,
		"fieldFill":  fieldFill,
		"hint":       hintColor,
		"frame":      rect{X: num(offX), Y: num(offY), W: num(cfg.Size.Width * scale), H: num(cfg.Size.Height * scale)},
		"lines":      lines,
		"labels":     labels,
		"fields":     fields,
	}
}

func num(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
