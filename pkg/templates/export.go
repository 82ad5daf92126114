package templates

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-checkedit/pkg/model"
)

// Template document defaults.
const (
	FormatVersion          = "1.0"
	DefaultTemplateName    = "Custom Template"
	DefaultBackgroundColor = "#ffffff"
)

// Export wraps a template with the format version, a creation timestamp and
// defaults for missing name and background colour.
func (c *Catalog) Export(cfg model.TemplateConfig) model.TemplateConfig {
	out := cfg.Clone()
	out.Version = FormatVersion
	if strings.TrimSpace(out.Name) == "" {
		out.Name = DefaultTemplateName
	}
	if strings.TrimSpace(out.BackgroundColor) == "" {
		out.BackgroundColor = DefaultBackgroundColor
	}
	if out.Fields == nil {
		out.Fields = []model.FieldConfig{}
	}
	if out.Background.Lines == nil {
		out.Background.Lines = []model.Line{}
	}
	if out.Background.Labels == nil {
		out.Background.Labels = []model.Label{}
	}
	created := c.now().UTC()
	out.Created = &created
	return out
}

// FromEditorState snapshots a live editor as a reusable template. Field text
// is not part of a layout and is dropped.
func (c *Catalog) FromEditorState(state model.EditorState, name string) model.TemplateConfig {
	fields := make([]model.FieldConfig, len(state.Fields))
	for i, f := range state.Fields {
		f.Text = ""
		if !f.TextAlign.Valid() {
			f.TextAlign = model.AlignLeft
		}
		fields[i] = f
	}
	return c.Export(model.TemplateConfig{
		Name:            name,
		Size:            state.Size,
		BackgroundColor: state.BackgroundColor,
		Fields:          fields,
		Background:      model.BackgroundFromElements(state.BackgroundElements),
	})
}

// Marshal encodes a template as indented JSON.
func Marshal(cfg model.TemplateConfig) ([]byte, error) {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("templates: marshal: %w", err)
	}
	return data, nil
}

// Import parses a JSON or YAML template document. Documents without "size" or
// "fields" are rejected, as are documents that fail validation. Text content
// is stripped of markup.
func Import(data []byte) (model.TemplateConfig, error) {
	return parseTemplate(data, "document")
}

func parseTemplate(data []byte, source string) (model.TemplateConfig, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return model.TemplateConfig{}, fmt.Errorf("%w: %s is empty", ErrInvalidTemplate, source)
	}

	var (
		probe map[string]any
		cfg   model.TemplateConfig
	)
	if err := json.Unmarshal(data, &probe); err == nil {
		if err := requireKeys(probe, source); err != nil {
			return model.TemplateConfig{}, err
		}
		if err := json.Unmarshal(data, &cfg); err != nil {
			return model.TemplateConfig{}, fmt.Errorf("%w: %s: %v", ErrInvalidTemplate, source, err)
		}
	} else if err := yaml.Unmarshal(data, &probe); err == nil && probe != nil {
		if err := requireKeys(probe, source); err != nil {
			return model.TemplateConfig{}, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return model.TemplateConfig{}, fmt.Errorf("%w: %s: %v", ErrInvalidTemplate, source, err)
		}
	} else {
		return model.TemplateConfig{}, fmt.Errorf("%w: %s: invalid JSON or YAML", ErrInvalidTemplate, source)
	}

	sanitizeTemplate(&cfg)
	if err := Validate(cfg); err != nil {
		return model.TemplateConfig{}, fmt.Errorf("%s: %w", source, err)
	}
	return cfg, nil
}

func requireKeys(doc map[string]any, source string) error {
	for _, key := range []string{"size", "fields"} {
		if v, ok := doc[key]; !ok || v == nil {
			return fmt.Errorf("%w: %s is missing %q", ErrInvalidTemplate, source, key)
		}
	}
	return nil
}
