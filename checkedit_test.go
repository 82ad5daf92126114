package checkedit

import (
	"bytes"
	"image"
	_ "image/png"
	"testing"
	"testing/fstest"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/goliatone/go-checkedit/pkg/testsupport"
)

func newEditor(t *testing.T, opts ...Option) *Editor {
	t.Helper()
	logger, _ := test.NewNullLogger()
	clock := func() time.Time { return time.Date(2024, 5, 4, 9, 0, 0, 0, time.UTC) }
	opts = append([]Option{WithLogger(logger), WithClock(clock)}, opts...)
	editor, err := NewEditor(opts...)
	if err != nil {
		t.Fatalf("NewEditor: %v", err)
	}
	return editor
}

func TestNewEditorDefaults(t *testing.T) {
	editor := newEditor(t)
	if got := editor.Locale.Tag(); got != "zh-TW" {
		t.Fatalf("expected zh-TW locale, got %q", got)
	}
	for _, id := range []string{"hk", "cn", "us"} {
		if !editor.Catalog.Has(id) {
			t.Fatalf("expected built-in %q", id)
		}
	}
	if diff := cmp.Diff([]string{"jpeg", "pdf", "png"}, editor.Exporters.List()); diff != "" {
		t.Fatalf("exporters mismatch (-want +got):\n%s", diff)
	}
}

func TestNewEditorLoadsTemplateFS(t *testing.T) {
	fsys := fstest.MapFS{
		"payroll.json": {Data: []byte(`{"name": "Payroll", "size": {"width": 500, "height": 200}, "fields": []}`)},
	}
	editor := newEditor(t, WithTemplateFS(fsys), WithLocale("en-GB"))
	if !editor.Catalog.Has("payroll") {
		t.Fatalf("expected payroll template")
	}
	if got := editor.Locale.Tag(); got != "en" {
		t.Fatalf("expected en locale, got %q", got)
	}

	broken := fstest.MapFS{"bad.json": {Data: []byte(`{"name": "Bad"}`)}}
	if _, err := NewEditor(WithTemplateFS(broken)); err == nil {
		t.Fatalf("expected error for template without size")
	}
}

func TestEditorStateFixtureRoundTrip(t *testing.T) {
	want := testsupport.MustLoadEditorState(t, "testdata/state.json")
	editor := newEditor(t)
	if err := editor.Controller.ImportCanvasData(want); err != nil {
		t.Fatalf("ImportCanvasData: %v", err)
	}
	got := editor.Controller.ExportCanvasData()
	if diff := testsupport.CompareGolden(want, got); diff != "" {
		t.Fatalf("state mismatch (-want +got):\n%s", diff)
	}

	data, contentType, err := editor.Export(testsupport.Context(), "png")
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if contentType != "image/png" {
		t.Fatalf("unexpected content type %q", contentType)
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cfg.Width != 1700 || cfg.Height != 700 {
		t.Fatalf("expected 1700x700 export, got %dx%d", cfg.Width, cfg.Height)
	}

	if _, _, err := editor.Export(testsupport.Context(), "tiff"); err == nil {
		t.Fatalf("expected unknown format error")
	}
}

func TestEditorBatch(t *testing.T) {
	editor := newEditor(t)
	if err := editor.Controller.LoadTemplate("hk"); err != nil {
		t.Fatalf("LoadTemplate: %v", err)
	}
	rows := []map[string]any{
		{"payee": "Alice", "amount": 1000.0},
		{"收款人": "陳大文", "金額": "250.50"},
	}
	result, err := editor.Batch(testsupport.Context(), rows, 10)
	if err != nil {
		t.Fatalf("Batch: %v", err)
	}
	if result.Pages != 2 || !bytes.HasPrefix(result.PDF, []byte("%PDF")) {
		t.Fatalf("unexpected batch result: %d pages", result.Pages)
	}
	if _, err := editor.Batch(testsupport.Context(), rows, 1); err == nil {
		t.Fatalf("expected batch limit error")
	}
}
