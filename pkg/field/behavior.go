package field

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-checkedit/pkg/locale"
	"github.com/goliatone/go-checkedit/pkg/model"
)

// Env is what a behaviour may observe and touch besides its own field.
type Env struct {
	Locale *locale.Locale
	// Peers is the live field set of the canvas, including the field itself.
	Peers []*Field
}

// Reaction runs after a field's text changed.
type Reaction func(f *Field, env Env)

// Matcher decides whether a reaction applies to a field.
type Matcher func(f *Field) bool

// MatchType matches fields of the given type.
func MatchType(ft model.FieldType) Matcher {
	return func(f *Field) bool { return f != nil && f.Type() == ft }
}

type rule struct {
	name     string
	priority int
	match    Matcher
	react    Reaction
	order    int
}

// Behaviors resolves the reactive behaviour of a field. Higher priority wins;
// ties fall back to registration order. A field matching no rule is inert.
type Behaviors struct {
	mu    sync.RWMutex
	rules []rule
}

// NewBehaviors returns a registry with the amount-number, amount-text and date
// reactions registered.
func NewBehaviors() *Behaviors {
	b := &Behaviors{}
	b.Register("amount-number", 0, MatchType(model.FieldAmountNumber), ReactAmountNumber)
	b.Register("amount-text", 0, MatchType(model.FieldAmountText), ReactAmountText)
	b.Register("date", 0, MatchType(model.FieldDate), ReactDate)
	return b
}

// Register adds a reaction. The latest registration with equal priority loses
// to earlier ones.
func (b *Behaviors) Register(name string, priority int, match Matcher, react Reaction) {
	if b == nil || match == nil || react == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.rules = append(b.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    match,
		react:    react,
		order:    len(b.rules),
	})
}

// Resolve returns the reaction for f, if any.
func (b *Behaviors) Resolve(f *Field) (string, Reaction, bool) {
	if b == nil || f == nil {
		return "", nil, false
	}
	b.mu.RLock()
	rules := append([]rule(nil), b.rules...)
	b.mu.RUnlock()
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(f) {
			return entry.name, entry.react, true
		}
	}
	return "", nil, false
}

// Set applies SetProperty and, when the text changed, runs the field's
// reaction before returning.
func (b *Behaviors) Set(f *Field, key string, value any, env Env) error {
	if err := f.SetProperty(key, value); err != nil {
		return err
	}
	if key != PropText {
		return nil
	}
	if _, react, ok := b.Resolve(f); ok {
		react(f, env)
	}
	return nil
}

// ReactAmountNumber reformats the field's own number and rewrites every other
// amount-text field in words.
func ReactAmountNumber(f *Field, env Env) {
	amount, ok := locale.ParseAmount(f.Text())
	if !ok {
		return
	}
	f.SetText(env.Locale.FormatNumber(amount))
	words := env.Locale.AmountToWords(amount)
	for _, peer := range env.Peers {
		if peer == nil || peer == f || peer.Type() != model.FieldAmountText {
			continue
		}
		peer.SetText(words)
	}
}

// ReactAmountText treats digits typed into the field as shorthand for the
// written amount.
func ReactAmountText(f *Field, env Env) {
	amount, ok := locale.ParseDigits(f.Text())
	if !ok || !amount.IsPositive() {
		return
	}
	f.SetText(env.Locale.AmountToWords(amount))
}

// ReactDate normalises a parseable date into the locale's long form.
func ReactDate(f *Field, env Env) {
	t, ok := locale.ParseDate(f.Text())
	if !ok {
		return
	}
	f.SetText(env.Locale.FormatDate(t))
}
