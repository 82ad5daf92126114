package canvas

import "math"

// Zoom limits and step factors.
const (
	MinZoom        = 0.1
	MaxZoom        = 5.0
	ZoomStep       = 1.2
	WheelZoomBase  = 0.999
	defaultZoomPos = 0.0
)

type viewport struct {
	zoom       float64
	offX, offY float64

	panning bool
	lastX   float64
	lastY   float64
}

func (v viewport) export() Viewport {
	return Viewport{Zoom: v.zoom, OffsetX: v.offX, OffsetY: v.offY}
}

// ClampZoom limits z to [MinZoom, MaxZoom]. NaN maps to 1.
func ClampZoom(z float64) float64 {
	if math.IsNaN(z) {
		return 1
	}
	return math.Min(MaxZoom, math.Max(MinZoom, z))
}

// zoomAt changes the zoom keeping the canvas point under (px, py) fixed on
// screen.
func (v *viewport) zoomAt(px, py, z float64) {
	next := ClampZoom(z)
	ratio := next / v.zoom
	v.offX = px - (px-v.offX)*ratio
	v.offY = py - (py-v.offY)*ratio
	v.zoom = next
}

// Zoom returns the current zoom factor.
func (c *Controller) Zoom() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view.zoom
}

// Viewport returns the current screen transform.
func (c *Controller) Viewport() Viewport {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view.export()
}

// SetZoom sets the zoom factor anchored at the canvas origin and returns the
// applied (clamped) value.
func (c *Controller) SetZoom(z float64) float64 {
	return c.ZoomAt(defaultZoomPos, defaultZoomPos, z)
}

// ZoomAt sets the zoom factor keeping the screen point (x, y) fixed.
func (c *Controller) ZoomAt(x, y, z float64) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view.zoomAt(x, y, z)
	c.surface.SetViewport(c.view.export())
	return c.view.zoom
}

// ZoomIn multiplies the zoom by ZoomStep.
func (c *Controller) ZoomIn() float64 {
	return c.SetZoom(c.Zoom() * ZoomStep)
}

// ZoomOut divides the zoom by ZoomStep.
func (c *Controller) ZoomOut() float64 {
	return c.SetZoom(c.Zoom() / ZoomStep)
}

// Wheel applies a mouse wheel delta anchored at the cursor. Positive deltas
// zoom out.
func (c *Controller) Wheel(deltaY, x, y float64) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view.zoomAt(x, y, c.view.zoom*math.Pow(WheelZoomBase, deltaY))
	c.surface.SetViewport(c.view.export())
	return c.view.zoom
}

// FitToScreen zooms so the canvas fits a container of the given size without
// ever enlarging past 100%, and resets the pan.
func (c *Controller) FitToScreen(containerWidth, containerHeight float64) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	z := math.Min(containerWidth/c.size.Width, containerHeight/c.size.Height)
	z = math.Min(z, 1)
	c.view = viewport{zoom: ClampZoom(z)}
	c.surface.SetViewport(c.view.export())
	return c.view.zoom
}

// BeginPan starts a drag pan at screen point (x, y).
func (c *Controller) BeginPan(x, y float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view.panning = true
	c.view.lastX, c.view.lastY = x, y
}

// PanTo moves the viewport by the distance dragged since the last call. It
// does nothing unless a pan is in progress.
func (c *Controller) PanTo(x, y float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.view.panning {
		return
	}
	c.view.offX += x - c.view.lastX
	c.view.offY += y - c.view.lastY
	c.view.lastX, c.view.lastY = x, y
	c.surface.SetViewport(c.view.export())
}

// EndPan finishes a drag pan.
func (c *Controller) EndPan() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view.panning = false
}

// Panning reports whether a drag pan is in progress.
func (c *Controller) Panning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view.panning
}

// Pan shifts the viewport by (dx, dy) screen pixels.
func (c *Controller) Pan(dx, dy float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view.offX += dx
	c.view.offY += dy
	c.surface.SetViewport(c.view.export())
}

// ScreenToCanvas maps a screen point to canvas coordinates.
func (c *Controller) ScreenToCanvas(x, y float64) (float64, float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return (x - c.view.offX) / c.view.zoom, (y - c.view.offY) / c.view.zoom
}
