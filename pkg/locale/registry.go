package locale

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
)

// Registry resolves BCP-47 tags to locales. Related tags (zh-HK, zh-Hant,
// en-GB) match the closest registered locale.
type Registry struct {
	mu      sync.RWMutex
	locales []*Locale
	matcher language.Matcher
}

// NewRegistry constructs a registry holding the zh-TW and en locales.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.MustRegister(TraditionalChinese())
	reg.MustRegister(English())
	return reg
}

// Register adds a locale. Registering the same tag twice is an error.
func (r *Registry) Register(loc *Locale) error {
	if loc == nil {
		return fmt.Errorf("locale: locale is required")
	}
	if loc.tag == language.Und {
		return fmt.Errorf("locale: locale tag is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.locales {
		if existing.tag == loc.tag {
			return fmt.Errorf("locale: %q already registered", loc.tag)
		}
	}
	r.locales = append(r.locales, loc)
	tags := make([]language.Tag, len(r.locales))
	for i, l := range r.locales {
		tags[i] = l.tag
	}
	r.matcher = language.NewMatcher(tags)
	return nil
}

// MustRegister panics on registration failure.
func (r *Registry) MustRegister(loc *Locale) {
	if err := r.Register(loc); err != nil {
		panic(err)
	}
}

// Lookup returns the registered locale that best matches tag.
func (r *Registry) Lookup(tag string) (*Locale, bool) {
	if r == nil {
		return nil, false
	}
	parsed, err := language.Parse(strings.TrimSpace(tag))
	if err != nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.matcher == nil {
		return nil, false
	}
	_, idx, confidence := r.matcher.Match(parsed)
	if confidence == language.No {
		return nil, false
	}
	return r.locales[idx], true
}

// Resolve behaves like Lookup but never fails: unknown tags yield a Raw
// locale.
func (r *Registry) Resolve(tag string) *Locale {
	if loc, ok := r.Lookup(tag); ok {
		return loc
	}
	return Raw(tag)
}

// Tags lists the registered tags in sorted order.
func (r *Registry) Tags() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.locales))
	for i, l := range r.locales {
		out[i] = l.tag.String()
	}
	sort.Strings(out)
	return out
}
