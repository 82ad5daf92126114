// Package export turns the state of a canvas.Controller into files: raster
// images, single-page PDFs and multi-page batch PDFs with one check per row.
//
// Exporters are looked up by name in a Registry so transports such as the
// CLI can offer every format without knowing about each one.
package export
