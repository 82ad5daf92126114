package canvas

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-checkedit/pkg/field"
	"github.com/goliatone/go-checkedit/pkg/locale"
	"github.com/goliatone/go-checkedit/pkg/model"
	"github.com/goliatone/go-checkedit/pkg/templates"
	"github.com/goliatone/go-checkedit/pkg/units"
)

// Defaults for a fresh controller.
const (
	DefaultWidth           = 800.0
	DefaultHeight          = 350.0
	DefaultBackgroundColor = "#ffffff"
	DefaultExportFormat    = "png"
	ExportMultiplier       = 2.0
)

// Properties is the view-model of the selected field shown in a property
// panel. Positions are rounded to whole pixels.
type Properties struct {
	Text       string  `json:"text"`
	FontSize   float64 `json:"fontSize"`
	Color      string  `json:"color"`
	FontFamily string  `json:"fontFamily"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
}

// Controller is the live editor for one check layout.
type Controller struct {
	mu sync.Mutex

	surface            Surface
	catalog            *templates.Catalog
	locale             *locale.Locale
	behaviors          *field.Behaviors
	logger             logrus.FieldLogger
	now                func() time.Time
	decode             Decoder
	aliases            AliasTable
	multiplier         float64
	exportPlaceholders bool

	size     model.Size
	bgColor  string
	fields   map[string]*field.Field
	order    []string
	elements []model.BackgroundElement
	image    *Placement
	selected string

	view viewport
	// generation moves on every clear, template load, import and reset.
	generation uint64
}

// New constructs a controller. Without options it draws nowhere, uses the
// built-in templates and the zh-TW locale.
func New(options ...Option) *Controller {
	c := &Controller{
		surface:    NopSurface{},
		now:        time.Now,
		decode:     DecodeImage,
		multiplier: ExportMultiplier,
		size:       model.Size{Width: DefaultWidth, Height: DefaultHeight},
		bgColor:    DefaultBackgroundColor,
		fields:     make(map[string]*field.Field),
		view:       viewport{zoom: 1},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	if c.locale == nil {
		if c.catalog != nil {
			c.locale = c.catalog.Locale()
		} else {
			c.locale = locale.TraditionalChinese()
		}
	}
	if c.catalog == nil {
		c.catalog = templates.NewCatalog(templates.WithLocale(c.locale))
	}
	if c.behaviors == nil {
		c.behaviors = field.NewBehaviors()
	}
	if c.logger == nil {
		c.logger = logrus.StandardLogger()
	}
	if c.aliases == nil {
		c.aliases = DefaultAliases()
	}
	c.surface.SetSize(c.size.Width, c.size.Height)
	c.surface.SetBackgroundColor(c.bgColor)
	c.surface.SetViewport(c.view.export())
	return c
}

// Locale returns the controller's locale.
func (c *Controller) Locale() *locale.Locale { return c.locale }

// Catalog returns the controller's template catalog.
func (c *Controller) Catalog() *templates.Catalog { return c.catalog }

// Generation returns the current session generation.
func (c *Controller) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

// SetCanvasSize resizes the canvas. Fields keep their absolute positions.
func (c *Controller) SetCanvasSize(width, height float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.setSizeLocked(width, height)
}

// SetCanvasSizeIn resizes the canvas using physical units, rounding to whole
// pixels.
func (c *Controller) SetCanvasSizeIn(width, height float64, unit units.Unit) error {
	return c.SetCanvasSize(
		math.Round(units.ToPixels(width, unit)),
		math.Round(units.ToPixels(height, unit)),
	)
}

func (c *Controller) setSizeLocked(width, height float64) error {
	if !(width > 0) || !(height > 0) || math.IsInf(width, 0) || math.IsInf(height, 0) {
		return fmt.Errorf("%w: %vx%v", ErrInvalidSize, width, height)
	}
	c.size = model.Size{Width: width, Height: height}
	c.surface.SetSize(width, height)
	return nil
}

// CanvasSize returns the canvas extent in pixels.
func (c *Controller) CanvasSize() model.Size {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.size
}

// SetBackgroundColor sets the canvas fill colour.
func (c *Controller) SetBackgroundColor(color string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bgColor = color
	c.surface.SetBackgroundColor(color)
}

// BackgroundColor returns the canvas fill colour.
func (c *Controller) BackgroundColor() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bgColor
}

// ClearAllFields removes every field. It is idempotent.
func (c *Controller) ClearAllFields() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearFieldsLocked()
}

func (c *Controller) clearFieldsLocked() {
	for _, id := range c.order {
		c.surface.Remove(FieldHandle(id))
	}
	c.fields = make(map[string]*field.Field)
	c.order = nil
	c.selected = ""
	c.generation++
}

// AddField creates a field from cfg and selects it.
func (c *Controller) AddField(cfg model.FieldConfig) (model.FieldSnapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	f, err := c.addFieldLocked(cfg)
	if err != nil {
		return model.FieldSnapshot{}, err
	}
	c.selected = f.ID()
	c.flushLocked()
	return f.Snapshot(), nil
}

// AddFieldOfType creates a field of type ft with the catalog's defaults at
// (x, y) and selects it.
func (c *Controller) AddFieldOfType(ft model.FieldType, x, y float64) (model.FieldSnapshot, error) {
	cfg, err := c.catalog.CreateFieldConfig(ft, x, y)
	if err != nil {
		return model.FieldSnapshot{}, err
	}
	return c.AddField(cfg)
}

func (c *Controller) addFieldLocked(cfg model.FieldConfig) (*field.Field, error) {
	f := field.New(cfg)
	if _, exists := c.fields[f.ID()]; exists {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateField, f.ID())
	}
	c.fields[f.ID()] = f
	c.order = append(c.order, f.ID())
	return f, nil
}

// RemoveField deletes a field. Unknown ids are ignored.
func (c *Controller) RemoveField(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeFieldLocked(id)
}

func (c *Controller) removeFieldLocked(id string) {
	if _, ok := c.fields[id]; !ok {
		return
	}
	delete(c.fields, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	if c.selected == id {
		c.selected = ""
	}
	c.surface.Remove(FieldHandle(id))
}

// Field returns the snapshot of one field.
func (c *Controller) Field(id string) (model.FieldSnapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	f, ok := c.fields[id]
	if !ok {
		return model.FieldSnapshot{}, false
	}
	return f.Snapshot(), true
}

// Fields returns snapshots of every field in insertion order.
func (c *Controller) Fields() []model.FieldSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotsLocked()
}

func (c *Controller) snapshotsLocked() []model.FieldSnapshot {
	out := make([]model.FieldSnapshot, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.fields[id].Snapshot())
	}
	return out
}

// SetProperty changes one attribute of a field. Text changes run the field's
// reaction, including updates to sibling fields, before returning.
func (c *Controller) SetProperty(id, key string, value any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.setPropertyLocked(id, key, value)
}

func (c *Controller) setPropertyLocked(id, key string, value any) error {
	f, ok := c.fields[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrFieldNotFound, id)
	}
	err := c.behaviors.Set(f, key, value, field.Env{Locale: c.locale, Peers: c.liveLocked()})
	c.flushLocked()
	return err
}

func (c *Controller) liveLocked() []*field.Field {
	out := make([]*field.Field, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.fields[id])
	}
	return out
}

// flushLocked is the render pass: every dirty field is pushed to the surface.
func (c *Controller) flushLocked() {
	for _, id := range c.order {
		f := c.fields[id]
		if !f.Dirty() {
			continue
		}
		c.surface.Upsert(FieldHandle(id), Drawable{Kind: KindField, Field: f.Snapshot()})
		f.MarkClean()
	}
}

// Select makes id the active field.
func (c *Controller) Select(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.fields[id]; !ok {
		return fmt.Errorf("%w: %q", ErrFieldNotFound, id)
	}
	c.selected = id
	return nil
}

// Deselect clears the selection.
func (c *Controller) Deselect() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selected = ""
}

// Selected returns the selected field.
func (c *Controller) Selected() (model.FieldSnapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.selected == "" {
		return model.FieldSnapshot{}, false
	}
	return c.fields[c.selected].Snapshot(), true
}

// Properties returns the property panel view of the selection.
func (c *Controller) Properties() (Properties, bool) {
	snap, ok := c.Selected()
	if !ok {
		return Properties{}, false
	}
	return Properties{
		Text:       snap.Text,
		FontSize:   snap.FontSize,
		Color:      snap.Color,
		FontFamily: snap.FontFamily,
		X:          math.Round(snap.X),
		Y:          math.Round(snap.Y),
	}, true
}

// UpdateSelected is SetProperty on the selected field.
func (c *Controller) UpdateSelected(key string, value any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.selected == "" {
		return ErrNoSelection
	}
	return c.setPropertyLocked(c.selected, key, value)
}

// RemoveSelected deletes the selected field.
func (c *Controller) RemoveSelected() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.selected == "" {
		return ErrNoSelection
	}
	c.removeFieldLocked(c.selected)
	return nil
}

// DrawTemplateBackground replaces every decorative element with bg. Lines are
// drawn before labels and all decorations sit below the fields.
func (c *Controller) DrawTemplateBackground(bg model.Background) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setElementsLocked(bg.Elements())
}

// BackgroundElements returns the decorative elements in draw order.
func (c *Controller) BackgroundElements() []model.BackgroundElement {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]model.BackgroundElement(nil), c.elements...)
}

func (c *Controller) setElementsLocked(elements []model.BackgroundElement) {
	for i := range c.elements {
		c.surface.Remove(bgHandle(i))
	}
	c.elements = append([]model.BackgroundElement(nil), elements...)
	for i, el := range c.elements {
		d := Drawable{Kind: KindLine}
		switch {
		case el.Line != nil:
			d.Line = *el.Line
		case el.Label != nil:
			d.Kind = KindLabel
			d.Label = *el.Label
		default:
			continue
		}
		c.surface.Upsert(bgHandle(i), d)
	}
	for i := len(c.elements) - 1; i >= 0; i-- {
		c.surface.SendToBack(bgHandle(i))
	}
	if c.image != nil {
		c.surface.SendToBack(imageHandle)
	}
}

func bgHandle(i int) string { return bgHandlePrefix + strconv.Itoa(i) }

// LoadTemplate replaces the editor content with a catalog template.
func (c *Controller) LoadTemplate(id string) error {
	if c.catalog == nil {
		return ErrNoCatalog
	}
	cfg, err := c.catalog.Get(id)
	if err != nil {
		return err
	}
	if err := c.LoadTemplateConfig(cfg); err != nil {
		return err
	}
	c.logger.WithFields(logrus.Fields{"template": id, "fields": len(cfg.Fields)}).Debug("template loaded")
	return nil
}

// LoadTemplateConfig replaces the editor content with cfg: size, fields,
// background colour and decorations. Nothing is selected afterwards.
func (c *Controller) LoadTemplateConfig(cfg model.TemplateConfig) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	seen := make(map[string]struct{}, len(cfg.Fields))
	for _, fc := range cfg.Fields {
		if _, dup := seen[fc.ID]; dup && fc.ID != "" {
			return fmt.Errorf("%w: %q", ErrDuplicateField, fc.ID)
		}
		seen[fc.ID] = struct{}{}
	}
	if err := c.setSizeLocked(cfg.Size.Width, cfg.Size.Height); err != nil {
		return err
	}
	c.clearFieldsLocked()
	color := cfg.BackgroundColor
	if color == "" {
		color = DefaultBackgroundColor
	}
	c.bgColor = color
	c.surface.SetBackgroundColor(color)
	for _, fc := range cfg.Fields {
		if _, err := c.addFieldLocked(fc); err != nil {
			return err
		}
	}
	c.flushLocked()
	c.setElementsLocked(cfg.Background.Elements())
	return nil
}

// ExportTemplate snapshots the editor as a reusable template named name.
func (c *Controller) ExportTemplate(name string) model.TemplateConfig {
	return c.catalog.FromEditorState(c.ExportCanvasData(), name)
}

// ExportAsImage rasterises fields, decorations and the background image at
// the export multiplier. The viewport does not affect the output.
func (c *Controller) ExportAsImage(ctx context.Context, format string) ([]byte, error) {
	if format == "" {
		format = DefaultExportFormat
	}
	c.mu.Lock()
	c.flushLocked()
	opts := RasterOptions{Format: format, Multiplier: c.multiplier, Placeholders: c.exportPlaceholders}
	surface := c.surface
	c.mu.Unlock()

	data, err := surface.Rasterize(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("canvas: export %s: %w", format, err)
	}
	return data, nil
}

// Reset returns the editor to an empty default canvas.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearFieldsLocked()
	c.setElementsLocked(nil)
	c.removeImageLocked()
	c.bgColor = DefaultBackgroundColor
	c.surface.SetBackgroundColor(c.bgColor)
	_ = c.setSizeLocked(DefaultWidth, DefaultHeight)
	c.view = viewport{zoom: 1}
	c.surface.SetViewport(c.view.export())
}
