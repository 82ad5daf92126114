package templates

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-checkedit/pkg/model"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// sanitizeText strips markup from text that came from an untrusted template
// document. Entities are decoded again so "A & B" survives unchanged.
func sanitizeText(raw string) string {
	if raw == "" || !strings.ContainsAny(raw, "<>&") {
		return raw
	}
	return html.UnescapeString(textSanitizer().Sanitize(raw))
}

func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}

func sanitizeTemplate(cfg *model.TemplateConfig) {
	cfg.Name = sanitizeText(cfg.Name)
	cfg.NameLocal = sanitizeText(cfg.NameLocal)
	for i := range cfg.Fields {
		cfg.Fields[i].Text = sanitizeText(cfg.Fields[i].Text)
		cfg.Fields[i].Placeholder = sanitizeText(cfg.Fields[i].Placeholder)
	}
	for i := range cfg.Background.Labels {
		cfg.Background.Labels[i].Text = sanitizeText(cfg.Background.Labels[i].Text)
	}
}
