package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadFrom("", filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	yamlPath := writeFile(t, dir, "checkedit.yaml", `
locale: en
default_template: us
max_batch: 10
store:
  driver: sqlite
  dsn: file.db
log:
  level: debug
`)
	envPath := writeFile(t, dir, "test.env", "CHECKEDIT_LOG_FORMAT=text\nCHECKEDIT_ADDR=:9999\n")
	t.Setenv("CHECKEDIT_MAX_BATCH", "20")
	t.Setenv("CHECKEDIT_ADDR", ":7000")
	t.Cleanup(func() {
		os.Unsetenv("CHECKEDIT_LOG_FORMAT")
	})

	cfg, err := LoadFrom(yamlPath, envPath)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	want := Default()
	want.Locale = "en"
	want.DefaultTemplate = "us"
	want.MaxBatch = 20
	want.Store = Store{Driver: "sqlite", Path: "checkedit-templates.json", DSN: "file.db"}
	want.Log = Log{Level: "debug", Format: "text"}
	want.Server.Addr = ":7000"
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		env  map[string]string
	}{
		{name: "unknown driver", yaml: "store:\n  driver: mongo\n"},
		{name: "sqlite without dsn", yaml: "store:\n  driver: sqlite\n"},
		{name: "bad batch", env: map[string]string{"CHECKEDIT_MAX_BATCH": "many"}},
		{name: "zero batch", env: map[string]string{"CHECKEDIT_MAX_BATCH": "0"}},
		{name: "bad level", env: map[string]string{"CHECKEDIT_LOG_LEVEL": "loud"}},
		{name: "broken yaml", yaml: "locale: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := ""
			if tt.yaml != "" {
				path = writeFile(t, t.TempDir(), "c.yaml", tt.yaml)
			}
			if _, err := LoadFrom(path); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}
