package canvas

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-checkedit/pkg/model"
)

// ExportCanvasData serialises the editor. The background image is not part
// of the snapshot.
func (c *Controller) ExportCanvasData() model.EditorState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return model.EditorState{
		Size:               c.size,
		BackgroundColor:    c.bgColor,
		Fields:             c.snapshotsLocked(),
		BackgroundElements: append([]model.BackgroundElement{}, c.elements...),
		Zoom:               c.view.zoom,
	}
}

// ImportCanvasData rebuilds the editor from state. Fields with unknown types
// become free-form text. A zero zoom keeps the current zoom; anything else is
// clamped. The snapshot is checked before anything changes.
func (c *Controller) ImportCanvasData(state model.EditorState) error {
	if !(state.Size.Width > 0) || !(state.Size.Height > 0) {
		return fmt.Errorf("%w: size %vx%v", ErrInvalidState, state.Size.Width, state.Size.Height)
	}
	seen := make(map[string]struct{}, len(state.Fields))
	for _, f := range state.Fields {
		if f.ID == "" {
			continue
		}
		if _, dup := seen[f.ID]; dup {
			return fmt.Errorf("%w: duplicate field id %q", ErrInvalidState, f.ID)
		}
		seen[f.ID] = struct{}{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.clearFieldsLocked()
	c.removeImageLocked()
	if err := c.setSizeLocked(state.Size.Width, state.Size.Height); err != nil {
		return err
	}
	c.bgColor = state.BackgroundColor
	c.surface.SetBackgroundColor(c.bgColor)

	var coerced int
	for _, snap := range state.Fields {
		if !snap.Type.Known() {
			coerced++
		}
		if _, err := c.addFieldLocked(snap); err != nil {
			return err
		}
	}
	c.flushLocked()
	c.setElementsLocked(state.BackgroundElements)

	if state.Zoom != 0 {
		c.view = viewport{zoom: ClampZoom(state.Zoom)}
		c.surface.SetViewport(c.view.export())
	}

	entry := c.logger.WithFields(logrus.Fields{"fields": len(state.Fields), "elements": len(state.BackgroundElements)})
	if coerced > 0 {
		entry.WithField("freeform", coerced).Info("editor state imported with unknown field types")
	} else {
		entry.Debug("editor state imported")
	}
	return nil
}
