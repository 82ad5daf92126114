package testsupport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-checkedit/pkg/model"
	"github.com/goliatone/go-checkedit/pkg/templates"
)

// LoadTemplate reads a JSON or YAML template fixture. Testing helpers fail
// the test on error to keep callers concise.
func LoadTemplate(t *testing.T, path string) model.TemplateConfig {
	t.Helper()

	cfg, err := LoadTemplateFromPath(path)
	if err != nil {
		t.Fatalf("load template: %v", err)
	}
	return cfg
}

// LoadTemplateFromPath returns a template without requiring testing.T.
func LoadTemplateFromPath(path string) (model.TemplateConfig, error) {
	if path == "" {
		return model.TemplateConfig{}, errors.New("testsupport: template path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return model.TemplateConfig{}, fmt.Errorf("testsupport: read template: %w", err)
	}
	cfg, err := templates.Import(data)
	if err != nil {
		return model.TemplateConfig{}, fmt.Errorf("testsupport: import template: %w", err)
	}
	return cfg, nil
}

// MustLoadEditorState loads a JSON editor snapshot fixture.
func MustLoadEditorState(t *testing.T, path string) model.EditorState {
	t.Helper()

	state, err := LoadEditorState(path)
	if err != nil {
		t.Fatalf("load editor state: %v", err)
	}
	return state
}

// LoadEditorState reads a JSON editor snapshot, returning an error for
// callers managing setup outside of *testing.T.
func LoadEditorState(path string) (model.EditorState, error) {
	if path == "" {
		return model.EditorState{}, errors.New("testsupport: editor state path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return model.EditorState{}, fmt.Errorf("testsupport: read editor state: %w", err)
	}
	var out model.EditorState
	if err := json.Unmarshal(data, &out); err != nil {
		return model.EditorState{}, fmt.Errorf("testsupport: unmarshal editor state: %w", err)
	}
	return out, nil
}

// WriteGolden writes value as indented JSON when UPDATE_GOLDENS is set.
func WriteGolden(t *testing.T, path string, value any) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	WriteMaybeGolden(t, path, payload)
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
