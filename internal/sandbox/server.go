package sandbox

import (
	"encoding/json"
	"log"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	"recordboard/internal/model"
)

// CollectionPath is where NewServer mounts the collection.
const CollectionPath = "/users"

// Failure injects errors into a share of requests. Methods limits injection to
// the listed HTTP methods; empty means every method.
type Failure struct {
	Rate    float64
	Code    int
	Methods []string
}

func (f Failure) applies(method string) bool {
	if f.Rate <= 0 {
		return false
	}
	if len(f.Methods) == 0 {
		return true
	}
	for _, m := range f.Methods {
		if strings.EqualFold(m, method) {
			return true
		}
	}
	return false
}

type options struct {
	latency time.Duration
	failure Failure
}

type Option func(*options)

// WithLatency delays every request by d.
func WithLatency(d time.Duration) Option {
	return func(o *options) { o.latency = d }
}

// WithFailure enables failure injection.
func WithFailure(f Failure) Option {
	return func(o *options) { o.failure = f }
}

// NewServer exposes store as a JSON collection under CollectionPath, plus a health check.
func NewServer(store *Store, opts ...Option) http.Handler {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route(CollectionPath, func(r chi.Router) {
		r.Use(o.middleware)
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, store.List())
		})
		r.Post("/", func(w http.ResponseWriter, r *http.Request) {
			draft, ok := decodeDraft(w, r)
			if !ok {
				return
			}
			writeJSON(w, http.StatusCreated, store.Create(draft))
		})
		r.Put("/{id}", func(w http.ResponseWriter, r *http.Request) {
			id, ok := bindID(w, r)
			if !ok {
				return
			}
			draft, ok := decodeDraft(w, r)
			if !ok {
				return
			}
			rec, found := store.Update(id, draft)
			if !found {
				writeJSON(w, http.StatusNotFound, map[string]string{"message": "record not found"})
				return
			}
			writeJSON(w, http.StatusOK, rec)
		})
		r.Delete("/{id}", func(w http.ResponseWriter, r *http.Request) {
			id, ok := bindID(w, r)
			if !ok {
				return
			}
			if !store.Delete(id) {
				writeJSON(w, http.StatusNotFound, map[string]string{"message": "record not found"})
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{})
		})
	})
	return r
}

func (o *options) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if o.latency > 0 {
			time.Sleep(o.latency)
		}
		if o.failure.applies(r.Method) && rand.Float64() < o.failure.Rate {
			status := o.failure.Code
			if status == 0 {
				status = http.StatusInternalServerError
			}
			log.Printf("[sandbox] failure injected: %s %s -> %d", r.Method, r.URL.Path, status)
			http.Error(w, "failure injected", status)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bindID(w http.ResponseWriter, r *http.Request) (int, bool) {
	var id int
	if err := runtime.BindStyledParameterWithLocation("simple", false, "id", runtime.ParamLocationPath, chi.URLParam(r, "id"), &id); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		return 0, false
	}
	return id, true
}

func decodeDraft(w http.ResponseWriter, r *http.Request) (model.Draft, bool) {
	defer r.Body.Close()
	var d model.Draft
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		return model.Draft{}, false
	}
	return d, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
