// Package model defines the serialisable data shapes shared by the editor
// packages: field configurations, template blueprints with their decorative
// background, and the EditorState snapshot that round-trips a live canvas.
//
// JSON keys are stable and shared with other implementations of the editor, so
// struct tags here are part of the public contract. BackgroundElement is a
// tagged union encoded with a "type" discriminator of "line" or "label".
package model
