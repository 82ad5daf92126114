// Package raster implements canvas.Surface on top of fogleman/gg so a check
// layout can be exported as PNG or JPEG without a browser.
//
// Text is drawn with TrueType faces. The Go fonts are registered for every
// family by default; register a CJK face with WithFontData to render
// Traditional Chinese amount words.
package raster
