package export

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/jung-kurt/gofpdf"
)

// PageLayout positions the check image on each PDF page. Lengths are in
// millimetres. A zero Height keeps the image aspect ratio.
type PageLayout struct {
	Orientation string
	Size        string
	X           float64
	Y           float64
	Width       float64
	Height      float64
}

// DefaultPageLayout places a 250mm wide image 20mm from the top-left corner
// of an A4 landscape page.
var DefaultPageLayout = PageLayout{Orientation: "L", Size: "A4", X: 20, Y: 20, Width: 250}

func (l PageLayout) withDefaults() PageLayout {
	if l == (PageLayout{}) {
		return DefaultPageLayout
	}
	if l.Orientation == "" {
		l.Orientation = DefaultPageLayout.Orientation
	}
	if l.Size == "" {
		l.Size = DefaultPageLayout.Size
	}
	if l.Width <= 0 && l.Height <= 0 {
		l.Width = DefaultPageLayout.Width
	}
	return l
}

// Document accumulates one check image per page.
type Document struct {
	pdf    *gofpdf.Fpdf
	layout PageLayout
	pages  int
}

// NewDocument starts an empty PDF.
func NewDocument(layout PageLayout) *Document {
	layout = layout.withDefaults()
	pdf := gofpdf.New(layout.Orientation, "mm", layout.Size, "")
	pdf.SetCreator("go-checkedit", true)
	return &Document{pdf: pdf, layout: layout}
}

// AddPage appends a page holding the PNG image data.
func (d *Document) AddPage(png []byte) error {
	name := "check-" + strconv.Itoa(d.pages+1)
	opts := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
	d.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(png))
	if err := d.pdf.Error(); err != nil {
		return fmt.Errorf("export: page %d: %w", d.pages+1, err)
	}
	d.pdf.AddPage()
	d.pdf.ImageOptions(name, d.layout.X, d.layout.Y, d.layout.Width, d.layout.Height, false, opts, 0, "")
	if err := d.pdf.Error(); err != nil {
		return fmt.Errorf("export: page %d: %w", d.pages+1, err)
	}
	d.pages++
	return nil
}

// Pages returns the number of pages added so far.
func (d *Document) Pages() int { return d.pages }

// Bytes closes the document and returns the PDF.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("export: write pdf: %w", err)
	}
	return buf.Bytes(), nil
}
