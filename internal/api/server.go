package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"recordboard/internal/model"
)

// Board is the state machine behind the page and the JSON API.
type Board interface {
	Load(ctx context.Context) (model.State, error)
	Submit(ctx context.Context) (model.State, error)
	Delete(ctx context.Context, id int) (model.State, error)
	EnterEditModeByID(id int) (model.State, error)
	CancelEdit() (model.State, error)
	SetDraft(draft model.Draft) (model.State, error)
	Snapshot() (model.State, error)
}

type Options struct {
	// CORSOrigins applies to /api only. Empty means any origin.
	CORSOrigins []string
}

// NewServer wires the page and the JSON API into a router and exposes a health check.
func NewServer(board Board, opts Options) http.Handler {
	h := &handlers{board: board}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/", h.page)
	r.Post("/submit", h.submitForm)
	r.Post("/cancel", h.cancelForm)
	r.Post("/records/{id}/edit", h.editForm)
	r.Post("/records/{id}/delete", h.deleteForm)

	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: origins,
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
			MaxAge:         300,
		}))
		r.Get("/state", h.getState)
		r.Get("/records", h.getRecords)
		r.Put("/draft", h.putDraft)
		r.Post("/submit", h.postSubmit)
		r.Post("/reload", h.postReload)
		r.Post("/cancel", h.postCancel)
		r.Post("/records/{id}/edit", h.postEdit)
		r.Delete("/records/{id}", h.deleteRecord)
	})
	return r
}
