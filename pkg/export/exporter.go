package export

import (
	"context"
	"fmt"

	"github.com/goliatone/go-checkedit/pkg/canvas"
)

// Exporter renders the controller's current layout.
type Exporter interface {
	Name() string
	ContentType() string
	Extension() string
	Export(ctx context.Context, c *canvas.Controller) ([]byte, error)
}

// Image exports the canvas as a raster image through the controller's
// surface.
type Image struct {
	format      string
	contentType string
}

// PNG returns the png exporter.
func PNG() Image { return Image{format: "png", contentType: "image/png"} }

// JPEG returns the jpeg exporter.
func JPEG() Image { return Image{format: "jpeg", contentType: "image/jpeg"} }

func (i Image) Name() string        { return i.format }
func (i Image) ContentType() string { return i.contentType }
func (i Image) Extension() string   { return "." + i.format }

func (i Image) Export(ctx context.Context, c *canvas.Controller) ([]byte, error) {
	if c == nil {
		return nil, fmt.Errorf("export: controller is required")
	}
	return c.ExportAsImage(ctx, i.format)
}

// PDF exports the canvas as a one page A4 landscape document.
type PDF struct {
	Layout PageLayout
}

func (PDF) Name() string        { return "pdf" }
func (PDF) ContentType() string { return "application/pdf" }
func (PDF) Extension() string   { return ".pdf" }

func (p PDF) Export(ctx context.Context, c *canvas.Controller) ([]byte, error) {
	if c == nil {
		return nil, fmt.Errorf("export: controller is required")
	}
	img, err := c.ExportAsImage(ctx, "png")
	if err != nil {
		return nil, err
	}
	doc := NewDocument(p.Layout)
	if err := doc.AddPage(img); err != nil {
		return nil, err
	}
	return doc.Bytes()
}
