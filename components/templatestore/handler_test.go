package templatestore

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/goliatone/go-checkedit/pkg/model"
	"github.com/goliatone/go-checkedit/pkg/storage"
)

type listResponse struct {
	Data []Entry `json:"data"`
}

type entryResponse struct {
	Data Entry `json:"data"`
}

type templateResponse struct {
	Data model.TemplateConfig `json:"data"`
}

func newStore(t *testing.T) storage.Store {
	t.Helper()
	s, err := storage.OpenFile(filepath.Join(t.TempDir(), "templates.json"))
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func newTestHandler(t *testing.T, fns ...OptionFn) http.Handler {
	t.Helper()
	logger, _ := test.NewNullLogger()
	base := []OptionFn{WithStore(newStore(t)), WithLogger(logger)}
	return NewHandler(append(base, fns...)...)
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

const customTemplate = `{
  "name": "Office <b>Rent</b>",
  "size": {"width": 600, "height": 250},
  "fields": [
    {"id": "payee", "type": "payee", "x": 10, "y": 20, "width": 200, "height": 30, "fontSize": 14}
  ]
}`

func TestHandler_ListsBuiltinsWithoutStore(t *testing.T) {
	logger, _ := test.NewNullLogger()
	h := NewHandler(WithLogger(logger))
	rec := do(t, h, http.MethodGet, "/api/templates", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("expected JSON content-type, got %q", ct)
	}
	var payload listResponse
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	var ids []string
	for _, e := range payload.Data {
		ids = append(ids, e.ID)
		if !e.Builtin || e.Size == nil {
			t.Fatalf("unexpected built-in entry %#v", e)
		}
	}
	if diff := cmp.Diff([]string{"hk", "cn", "us"}, ids); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}

	if rec := do(t, h, http.MethodPost, "/api/templates", customTemplate); rec.Code != http.StatusNotImplemented {
		t.Fatalf("expected 501 without a store, got %d", rec.Code)
	}
}

func TestHandler_SaveGetDelete(t *testing.T) {
	h := newTestHandler(t)

	rec := do(t, h, http.MethodPost, "/api/templates", customTemplate)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body)
	}
	var created entryResponse
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if created.Data.ID == "" || created.Data.Name != "Office Rent" {
		t.Fatalf("unexpected created entry %#v", created.Data)
	}

	rec = do(t, h, http.MethodGet, "/api/templates/"+created.Data.ID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var got templateResponse
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if got.Data.Size.Width != 600 || len(got.Data.Fields) != 1 {
		t.Fatalf("unexpected template %#v", got.Data)
	}

	var listed listResponse
	rec = do(t, h, http.MethodGet, "/api/templates", "")
	_ = json.NewDecoder(rec.Body).Decode(&listed)
	if len(listed.Data) != 4 || listed.Data[3].ID != created.Data.ID || listed.Data[3].Builtin {
		t.Fatalf("stored template missing from listing: %#v", listed.Data)
	}

	rec = do(t, h, http.MethodGet, "/api/templates/"+created.Data.ID+"/preview", "")
	if rec.Code != http.StatusOK || rec.Header().Get("Content-Type") != "image/svg+xml" {
		t.Fatalf("preview failed: %d %q", rec.Code, rec.Header().Get("Content-Type"))
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("<svg")) {
		t.Fatalf("preview is not svg: %q", rec.Body.String())
	}

	if rec := do(t, h, http.MethodDelete, "/api/templates/"+created.Data.ID, ""); rec.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rec.Code)
	}
	if rec := do(t, h, http.MethodGet, "/api/templates/"+created.Data.ID, ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestHandler_Errors(t *testing.T) {
	h := newTestHandler(t, WithMaxBodyBytes(64))
	tests := []struct {
		name   string
		method string
		target string
		body   string
		want   int
	}{
		{name: "builtin is read only", method: http.MethodDelete, target: "/api/templates/hk", want: http.StatusForbidden},
		{name: "builtin cannot be replaced", method: http.MethodPut, target: "/api/templates/us", body: customTemplate, want: http.StatusForbidden},
		{name: "missing template", method: http.MethodGet, target: "/api/templates/nope", want: http.StatusNotFound},
		{name: "missing delete", method: http.MethodDelete, target: "/api/templates/nope", want: http.StatusNotFound},
		{name: "invalid document", method: http.MethodPost, target: "/api/templates", body: `{"name":"x"}`, want: http.StatusBadRequest},
		{name: "body too large", method: http.MethodPost, target: "/api/templates", body: customTemplate, want: http.StatusRequestEntityTooLarge},
		{name: "method not allowed", method: http.MethodPatch, target: "/api/templates", want: http.StatusMethodNotAllowed},
		{name: "builtin preview", method: http.MethodGet, target: "/api/templates/cn/preview", want: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, tt.method, tt.target, tt.body)
			if rec.Code != tt.want {
				t.Fatalf("expected status %d, got %d: %s", tt.want, rec.Code, rec.Body)
			}
		})
	}
}

func TestHandler_PutReplaces(t *testing.T) {
	h := newTestHandler(t)
	if rec := do(t, h, http.MethodPut, "/api/templates/office", customTemplate); rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body)
	}
	renamed := strings.Replace(customTemplate, "Office <b>Rent</b>", "Office", 1)
	rec := do(t, h, http.MethodPut, "/api/templates/office", renamed)
	var entry entryResponse
	_ = json.NewDecoder(rec.Body).Decode(&entry)
	if entry.Data.ID != "office" || entry.Data.Name != "Office" {
		t.Fatalf("unexpected entry %#v", entry.Data)
	}
}

func TestHandler_TokenGuard(t *testing.T) {
	h := newTestHandler(t, WithGuard(TokenGuard("s3cret")))
	if rec := do(t, h, http.MethodGet, "/api/templates", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
	req := httptest.NewRequest(http.MethodGet, "/api/templates", nil)
	req.Header.Set("Authorization", "Bearer s3cret")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}
