package canvas

import (
	"context"
	"fmt"
	"image"
	"io"
	"math"

	"github.com/sirupsen/logrus"
)

// ImageLoad is a single-shot result of LoadBackgroundImage.
type ImageLoad struct {
	done      chan struct{}
	placement Placement
	err       error
}

// Done is closed once the load resolved or failed.
func (l *ImageLoad) Done() <-chan struct{} { return l.done }

// Wait blocks until the load finishes or ctx ends.
func (l *ImageLoad) Wait(ctx context.Context) (Placement, error) {
	select {
	case <-l.done:
		return l.placement, l.err
	case <-ctx.Done():
		return Placement{}, ctx.Err()
	}
}

func (l *ImageLoad) finish(p Placement, err error) {
	l.placement = p
	l.err = err
	close(l.done)
}

// LoadBackgroundImage decodes r on a separate goroutine and places the image
// behind everything else, scaled uniformly to fit the canvas and centred.
// r must stay readable until the load is done. A decode failure, a cancelled
// ctx, or a clear/load/import/reset in the meantime rejects the load and
// leaves the editor untouched.
func (c *Controller) LoadBackgroundImage(ctx context.Context, r io.Reader) *ImageLoad {
	load := &ImageLoad{done: make(chan struct{})}

	c.mu.Lock()
	gen := c.generation
	decode := c.decode
	c.mu.Unlock()

	go func() {
		img, err := decode(r)
		if err != nil {
			c.logger.WithError(err).Warn("background image decode failed")
			load.finish(Placement{}, fmt.Errorf("canvas: decode background image: %w", err))
			return
		}
		if err := ctx.Err(); err != nil {
			load.finish(Placement{}, err)
			return
		}

		c.mu.Lock()
		defer c.mu.Unlock()
		if c.generation != gen {
			c.logger.WithFields(logrus.Fields{"started": gen, "current": c.generation}).Debug("dropping stale background image")
			load.finish(Placement{}, ErrStaleImage)
			return
		}
		p := fitImage(img, c.size.Width, c.size.Height)
		c.image = &p
		c.surface.Upsert(imageHandle, Drawable{Kind: KindImage, Image: &p})
		c.surface.SendToBack(imageHandle)
		load.finish(p, nil)
	}()
	return load
}

// BackgroundImage returns the current image placement.
func (c *Controller) BackgroundImage() (Placement, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.image == nil {
		return Placement{}, false
	}
	return *c.image, true
}

// RemoveBackgroundImage drops the background image, if any.
func (c *Controller) RemoveBackgroundImage() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeImageLocked()
}

func (c *Controller) removeImageLocked() {
	if c.image == nil {
		return
	}
	c.image = nil
	c.surface.Remove(imageHandle)
}

func fitImage(img image.Image, canvasWidth, canvasHeight float64) Placement {
	bounds := img.Bounds()
	iw, ih := float64(bounds.Dx()), float64(bounds.Dy())
	scale := 1.0
	if iw > 0 && ih > 0 {
		scale = math.Min(canvasWidth/iw, canvasHeight/ih)
	}
	w, h := iw*scale, ih*scale
	return Placement{
		Image:  img,
		Left:   (canvasWidth - w) / 2,
		Top:    (canvasHeight - h) / 2,
		Scale:  scale,
		Width:  w,
		Height: h,
	}
}
