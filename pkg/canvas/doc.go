// Package canvas implements the editor controller: it owns the live field set
// of one check layout, the selection, the zoom and pan viewport, decorative
// background elements and an optional background image, and it serialises
// the whole editor into a model.EditorState and back.
//
// Drawing is delegated to a Surface. The controller keeps drawables in sync by
// handle ("field:<id>", "bg:<n>", "image") and flushes changed fields after
// every operation, so a Surface never observes a half-applied reaction.
//
// A Controller is safe for concurrent use. Background image decoding is the
// only work done off the caller's goroutine; its result is applied only if no
// clear, template load, import or reset happened in the meantime.
package canvas
