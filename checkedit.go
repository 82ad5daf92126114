// Package checkedit wires the check editor packages into a ready-to-use
// Editor: a canvas controller drawing onto a raster surface, a template
// catalog, a locale and the export formats.
package checkedit

import (
	"context"
	"fmt"
	"io/fs"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-checkedit/pkg/canvas"
	"github.com/goliatone/go-checkedit/pkg/export"
	"github.com/goliatone/go-checkedit/pkg/locale"
	"github.com/goliatone/go-checkedit/pkg/raster"
	"github.com/goliatone/go-checkedit/pkg/templates"
)

// DefaultLocale is the locale used when none is configured.
const DefaultLocale = "zh-TW"

type settings struct {
	locale      string
	locales     *locale.Registry
	templateFS  fs.FS
	fonts       []font
	logger      logrus.FieldLogger
	now         func() time.Time
	exporters   *export.Registry
	placeholder bool
}

type font struct {
	family string
	data   []byte
}

// Option configures NewEditor.
type Option func(*settings)

// WithLocale selects the amount-in-words and date locale by BCP-47 tag.
// Tags without a registered match still work and format raw digits.
func WithLocale(tag string) Option {
	return func(s *settings) {
		s.locale = tag
	}
}

// WithLocales replaces the locale registry used to resolve WithLocale.
func WithLocales(reg *locale.Registry) Option {
	return func(s *settings) {
		if reg != nil {
			s.locales = reg
		}
	}
}

// WithTemplateFS registers every JSON or YAML template in fsys next to the
// built-in layouts.
func WithTemplateFS(fsys fs.FS) Option {
	return func(s *settings) {
		s.templateFS = fsys
	}
}

// WithFont registers TrueType data for a font family. An empty family sets
// the fallback face, which should cover CJK glyphs for Chinese checks.
func WithFont(family string, data []byte) Option {
	return func(s *settings) {
		s.fonts = append(s.fonts, font{family: family, data: data})
	}
}

// WithLogger sets the logger shared by every component.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the clock used for default dates and template stamps.
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		if now != nil {
			s.now = now
		}
	}
}

// WithExporters replaces the export format registry.
func WithExporters(reg *export.Registry) Option {
	return func(s *settings) {
		if reg != nil {
			s.exporters = reg
		}
	}
}

// WithExportPlaceholders draws placeholder hints into exported images.
func WithExportPlaceholders(enabled bool) Option {
	return func(s *settings) {
		s.placeholder = enabled
	}
}

// Editor bundles a controller with the pieces it was built from.
type Editor struct {
	Controller *canvas.Controller
	Catalog    *templates.Catalog
	Locale     *locale.Locale
	Surface    *raster.Surface
	Exporters  *export.Registry

	logger logrus.FieldLogger
}

// NewEditor builds an Editor. Without options it uses the zh-TW locale, the
// built-in templates and the Go Regular font.
func NewEditor(options ...Option) (*Editor, error) {
	s := settings{
		locale: DefaultLocale,
		logger: logrus.StandardLogger(),
		now:    time.Now,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&s)
	}
	if s.locales == nil {
		s.locales = locale.NewRegistry()
	}
	if s.exporters == nil {
		s.exporters = export.DefaultRegistry()
	}

	loc := s.locales.Resolve(s.locale)
	catalog := templates.NewCatalog(templates.WithLocale(loc), templates.WithClock(s.now))
	if _, err := catalog.LoadFS(s.templateFS); err != nil {
		return nil, fmt.Errorf("checkedit: load templates: %w", err)
	}

	surfaceOpts := []raster.Option{raster.WithLogger(s.logger)}
	for _, f := range s.fonts {
		surfaceOpts = append(surfaceOpts, raster.WithFontData(f.family, f.data))
	}
	surface, err := raster.New(surfaceOpts...)
	if err != nil {
		return nil, fmt.Errorf("checkedit: surface: %w", err)
	}

	controller := canvas.New(
		canvas.WithSurface(surface),
		canvas.WithCatalog(catalog),
		canvas.WithLocale(loc),
		canvas.WithLogger(s.logger),
		canvas.WithClock(s.now),
		canvas.WithExportPlaceholders(s.placeholder),
	)

	return &Editor{
		Controller: controller,
		Catalog:    catalog,
		Locale:     loc,
		Surface:    surface,
		Exporters:  s.exporters,
		logger:     s.logger,
	}, nil
}

// Export renders the canvas in the named format ("png", "jpeg", "jpg" or
// "pdf") and returns the bytes with their content type.
func (e *Editor) Export(ctx context.Context, format string) ([]byte, string, error) {
	exporter, err := e.Exporters.Get(format)
	if err != nil {
		return nil, "", err
	}
	data, err := exporter.Export(ctx, e.Controller)
	if err != nil {
		return nil, "", err
	}
	return data, exporter.ContentType(), nil
}

// Batch prints one check per row of the loaded layout into a PDF.
func (e *Editor) Batch(ctx context.Context, rows []map[string]any, maxRows int) (export.BatchResult, error) {
	return export.Batch(ctx, e.Controller, rows, export.BatchOptions{
		MaxRows: maxRows,
		Logger:  e.logger,
	})
}
