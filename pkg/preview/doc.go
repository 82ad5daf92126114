// Package preview renders small SVG thumbnails of templates for pickers and
// listings. Geometry is computed in Go; the markup lives in a pongo2
// template that callers may override.
package preview
