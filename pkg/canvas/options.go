package canvas

import (
	"image"
	"io"
	"time"

	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-checkedit/pkg/field"
	"github.com/goliatone/go-checkedit/pkg/locale"
	"github.com/goliatone/go-checkedit/pkg/templates"
)

// Decoder turns an encoded image into pixels.
type Decoder func(r io.Reader) (image.Image, error)

// DecodeImage decodes any format imaging understands, honouring EXIF
// orientation so photographed checks come out upright.
func DecodeImage(r io.Reader) (image.Image, error) {
	return imaging.Decode(r, imaging.AutoOrientation(true))
}

// Option customises a Controller.
type Option func(*Controller)

// WithSurface sets the rendering surface.
func WithSurface(s Surface) Option {
	return func(c *Controller) {
		if s != nil {
			c.surface = s
		}
	}
}

// WithCatalog sets the template catalog.
func WithCatalog(cat *templates.Catalog) Option {
	return func(c *Controller) {
		c.catalog = cat
	}
}

// WithLocale sets the locale used by field reactions and batch defaults.
func WithLocale(loc *locale.Locale) Option {
	return func(c *Controller) {
		c.locale = loc
	}
}

// WithBehaviors replaces the field reaction registry.
func WithBehaviors(b *field.Behaviors) Option {
	return func(c *Controller) {
		c.behaviors = b
	}
}

// WithLogger sets the logger.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithClock overrides the time source used for batch date defaults.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// WithDecoder overrides background image decoding.
func WithDecoder(d Decoder) Option {
	return func(c *Controller) {
		if d != nil {
			c.decode = d
		}
	}
}

// WithAliases replaces the batch population alias table.
func WithAliases(t AliasTable) Option {
	return func(c *Controller) {
		if t != nil {
			c.aliases = t
		}
	}
}

// WithExportMultiplier overrides the 2x export supersampling.
func WithExportMultiplier(m float64) Option {
	return func(c *Controller) {
		if m > 0 {
			c.multiplier = m
		}
	}
}

// WithExportPlaceholders makes exports draw placeholder hints in empty fields.
func WithExportPlaceholders(enabled bool) Option {
	return func(c *Controller) {
		c.exportPlaceholders = enabled
	}
}
