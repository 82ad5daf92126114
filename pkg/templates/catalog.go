package templates

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-checkedit/pkg/locale"
	"github.com/goliatone/go-checkedit/pkg/model"
)

var (
	// ErrNotFound is returned for unknown template ids.
	ErrNotFound = errors.New("templates: template not found")
	// ErrUnknownFieldType is returned by CreateFieldConfig for types without
	// defaults.
	ErrUnknownFieldType = errors.New("templates: unknown field type")
	// ErrInvalidTemplate is returned when a document is not a usable template.
	ErrInvalidTemplate = errors.New("templates: invalid template")
	// ErrReadOnly is returned when replacing or removing a built-in template.
	ErrReadOnly = errors.New("templates: built-in templates are read-only")
)

type entry struct {
	id      string
	cfg     model.TemplateConfig
	builtin bool
}

// Option customises a Catalog.
type Option func(*Catalog)

// WithLocale sets the locale used for new field placeholders.
func WithLocale(loc *locale.Locale) Option {
	return func(c *Catalog) {
		c.locale = loc
	}
}

// WithClock overrides the time source used for ids and timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Catalog) {
		if now != nil {
			c.now = now
		}
	}
}

// WithoutBuiltins starts the catalog empty.
func WithoutBuiltins() Option {
	return func(c *Catalog) {
		c.skipBuiltins = true
	}
}

// Catalog stores templates by id.
type Catalog struct {
	mu           sync.RWMutex
	entries      map[string]entry
	order        []string
	locale       *locale.Locale
	now          func() time.Time
	skipBuiltins bool

	idMu   sync.Mutex
	lastID int64
}

// NewCatalog builds a catalog seeded with the hk, cn and us templates.
func NewCatalog(options ...Option) *Catalog {
	c := &Catalog{
		entries: make(map[string]entry),
		now:     time.Now,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	if c.locale == nil {
		c.locale = locale.TraditionalChinese()
	}
	if !c.skipBuiltins {
		for _, e := range builtins() {
			e.builtin = true
			c.entries[e.id] = e
			c.order = append(c.order, e.id)
		}
	}
	return c
}

// Locale returns the locale the catalog was built with.
func (c *Catalog) Locale() *locale.Locale {
	return c.locale
}

// Get returns a copy of the template registered under id.
func (c *Catalog) Get(id string) (model.TemplateConfig, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[strings.TrimSpace(id)]
	if !ok {
		return model.TemplateConfig{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return e.cfg.Clone(), nil
}

// Has reports whether id is registered.
func (c *Catalog) Has(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.entries[id]
	return ok
}

// List returns summaries with built-ins first in their fixed order, then user
// templates sorted by id.
func (c *Catalog) List() []model.TemplateSummary {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var builtinIDs, userIDs []string
	for _, id := range c.order {
		if c.entries[id].builtin {
			builtinIDs = append(builtinIDs, id)
		} else {
			userIDs = append(userIDs, id)
		}
	}
	sort.Strings(userIDs)

	out := make([]model.TemplateSummary, 0, len(c.order))
	for _, id := range append(builtinIDs, userIDs...) {
		cfg := c.entries[id].cfg
		out = append(out, model.TemplateSummary{
			ID:        id,
			Name:      cfg.Name,
			NameLocal: cfg.NameLocal,
			Size:      cfg.Size,
		})
	}
	return out
}

// Register stores a user template after validating it. Re-registering a user
// id replaces it; built-in ids cannot be replaced.
func (c *Catalog) Register(id string, cfg model.TemplateConfig) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("%w: template id is required", ErrInvalidTemplate)
	}
	if err := Validate(cfg); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.entries[id]; ok {
		if existing.builtin {
			return fmt.Errorf("%w: %q", ErrReadOnly, id)
		}
	} else {
		c.order = append(c.order, id)
	}
	c.entries[id] = entry{id: id, cfg: cfg.Clone()}
	return nil
}

// Remove deletes a user template.
func (c *Catalog) Remove(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	if e.builtin {
		return fmt.Errorf("%w: %q", ErrReadOnly, id)
	}
	delete(c.entries, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}

// nextStamp returns a millisecond timestamp strictly greater than any it
// returned before.
func (c *Catalog) nextStamp() int64 {
	c.idMu.Lock()
	defer c.idMu.Unlock()
	stamp := c.now().UnixMilli()
	if stamp <= c.lastID {
		stamp = c.lastID + 1
	}
	c.lastID = stamp
	return stamp
}
