package templatestore

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-checkedit/pkg/model"
	"github.com/goliatone/go-checkedit/pkg/preview"
	"github.com/goliatone/go-checkedit/pkg/storage"
	"github.com/goliatone/go-checkedit/pkg/templates"
)

var errNoStore = errors.New("templatestore: no store configured")

// Entry is one row of the listing.
type Entry struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	NameLocal string      `json:"nameCn,omitempty"`
	Builtin   bool        `json:"builtin"`
	Size      *model.Size `json:"size,omitempty"`
	Created   *time.Time  `json:"created,omitempty"`
}

type dataResponse struct {
	Data any `json:"data"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Handler builds a net/http handler with default options plus any overrides.
// It is an alias of NewHandler to match the recommended component API surface.
func Handler(fns ...OptionFn) http.Handler {
	return NewHandler(fns...)
}

func NewHandler(fns ...OptionFn) http.Handler {
	opts := NewOptions(fns...)
	return HandlerWithOptions(opts)
}

// HandlerWithOptions builds the handler from a pre-constructed Options value.
// Routes are rooted at opts.RoutePath.
func HandlerWithOptions(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	h := &handler{opts: opts}
	if h.opts.Preview == nil {
		renderer, err := preview.New()
		if err != nil {
			opts.Logger.WithError(err).Warn("template previews disabled")
		}
		h.opts.Preview = renderer
	}

	root := mountPath("", opts.RoutePath)
	mux := http.NewServeMux()
	mux.HandleFunc("GET "+root, h.list)
	mux.HandleFunc("POST "+root, h.create)
	mux.HandleFunc("GET "+root+"/{id}", h.get)
	mux.HandleFunc("PUT "+root+"/{id}", h.put)
	mux.HandleFunc("DELETE "+root+"/{id}", h.remove)
	mux.HandleFunc("GET "+root+"/{id}/preview", h.preview)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r == nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		if opts.Guard != nil {
			if err := opts.Guard(r); err != nil {
				writeGuardError(w, err)
				return
			}
		}
		mux.ServeHTTP(w, r)
	})
}

type handler struct {
	opts Options
}

func (h *handler) list(w http.ResponseWriter, r *http.Request) {
	var out []Entry
	for _, s := range h.opts.Catalog.List() {
		size := s.Size
		out = append(out, Entry{ID: s.ID, Name: s.Name, NameLocal: s.NameLocal, Builtin: true, Size: &size})
	}
	if h.opts.Store != nil {
		stored, err := h.opts.Store.List(r.Context())
		if err != nil {
			h.fail(w, r, err)
			return
		}
		for _, s := range stored {
			created := s.Created
			out = append(out, Entry{ID: s.ID, Name: s.Name, Created: &created})
		}
	}
	if out == nil {
		out = []Entry{}
	}
	writeJSON(w, http.StatusOK, dataResponse{Data: out})
}

func (h *handler) get(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.lookup(r, r.PathValue("id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dataResponse{Data: cfg})
}

func (h *handler) lookup(r *http.Request, id string) (model.TemplateConfig, error) {
	if h.opts.Catalog.Has(id) {
		return h.opts.Catalog.Get(id)
	}
	if h.opts.Store == nil {
		return model.TemplateConfig{}, storage.ErrNotFound
	}
	rec, err := h.opts.Store.Load(r.Context(), id)
	if err != nil {
		return model.TemplateConfig{}, err
	}
	return rec.Template, nil
}

func (h *handler) create(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, "", http.StatusCreated)
}

func (h *handler) put(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if h.opts.Catalog.Has(id) {
		h.fail(w, r, templates.ErrReadOnly)
		return
	}
	h.save(w, r, id, http.StatusOK)
}

func (h *handler) save(w http.ResponseWriter, r *http.Request, id string, status int) {
	if h.opts.Store == nil {
		h.fail(w, r, errNoStore)
		return
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.opts.MaxBodyBytes))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	cfg, err := templates.Import(body)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	rec, err := h.opts.Store.Save(r.Context(), storage.Record{ID: id, Name: cfg.Name, Template: cfg})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.opts.Logger.WithFields(logrus.Fields{"id": rec.ID, "name": rec.Name}).Info("template saved")
	created := rec.Created
	writeJSON(w, status, dataResponse{Data: Entry{ID: rec.ID, Name: rec.Name, Created: &created}})
}

func (h *handler) remove(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if h.opts.Catalog.Has(id) {
		h.fail(w, r, templates.ErrReadOnly)
		return
	}
	if h.opts.Store == nil {
		h.fail(w, r, storage.ErrNotFound)
		return
	}
	if err := h.opts.Store.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) preview(w http.ResponseWriter, r *http.Request) {
	if h.opts.Preview == nil {
		writeJSON(w, http.StatusNotImplemented, errorResponse{Error: "previews are disabled"})
		return
	}
	cfg, err := h.lookup(r, r.PathValue("id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	svg, err := h.opts.Preview.Render(cfg)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(svg)
}

func (h *handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	code := statusFor(err)
	if code >= http.StatusInternalServerError {
		h.opts.Logger.WithError(err).WithFields(logrus.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
		}).Error("template request failed")
		writeJSON(w, code, errorResponse{Error: http.StatusText(code)})
		return
	}
	writeJSON(w, code, errorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.Is(err, storage.ErrNotFound), errors.Is(err, templates.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, templates.ErrReadOnly):
		return http.StatusForbidden
	case errors.Is(err, templates.ErrInvalidTemplate), errors.Is(err, storage.ErrInvalidRecord):
		return http.StatusBadRequest
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, errNoStore):
		return http.StatusNotImplemented
	}
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode()
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(v)
}
