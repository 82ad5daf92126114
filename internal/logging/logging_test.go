package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func TestNewWithOutput(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWithOutput(&buf, "warn", "json")
	if err != nil {
		t.Fatalf("NewWithOutput: %v", err)
	}
	logger.Info("hidden")
	logger.WithField("id", "hk").Warn("shown")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("expected one JSON line, got %q: %v", buf.String(), err)
	}
	if line["msg"] != "shown" || line["id"] != "hk" {
		t.Fatalf("unexpected entry %v", line)
	}

	if _, err := NewWithOutput(&buf, "chatty", "json"); err == nil {
		t.Fatalf("expected level error")
	}
	if _, err := NewWithOutput(&buf, "info", "xml"); err == nil {
		t.Fatalf("expected format error")
	}
}

func TestError(t *testing.T) {
	logger, hook := test.NewNullLogger()
	Error(logger, "export", "Batch", "row 3", map[string]any{"payee": "x"}, errors.New("boom"))
	Error(logger, "export", "Batch", "row 4", nil, nil)

	if len(hook.Entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(hook.Entries))
	}
	entry := hook.LastEntry()
	if entry.Level != logrus.ErrorLevel || entry.Message != "boom" {
		t.Fatalf("unexpected entry %v %q", entry.Level, entry.Message)
	}
	want := logrus.Fields{
		"module":   "export",
		"funcName": "Batch",
		"context":  "row 3",
		"data":     map[string]any{"payee": "x"},
	}
	if diff := cmp.Diff(want, entry.Data); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}
