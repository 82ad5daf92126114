package canvas

import "errors"

var (
	// ErrFieldNotFound is returned for unknown field ids.
	ErrFieldNotFound = errors.New("canvas: field not found")
	// ErrDuplicateField is returned when adding a field whose id is taken.
	ErrDuplicateField = errors.New("canvas: duplicate field id")
	// ErrNoSelection is returned by selection operations with nothing selected.
	ErrNoSelection = errors.New("canvas: no field selected")
	// ErrInvalidSize is returned for non-positive canvas dimensions.
	ErrInvalidSize = errors.New("canvas: invalid canvas size")
	// ErrInvalidState is returned by ImportCanvasData for unusable snapshots.
	ErrInvalidState = errors.New("canvas: invalid editor state")
	// ErrStaleImage rejects an image load overtaken by a clear, load or reset.
	ErrStaleImage = errors.New("canvas: image load superseded")
	// ErrNoCatalog is returned by template operations without a catalog.
	ErrNoCatalog = errors.New("canvas: no template catalog configured")
)
