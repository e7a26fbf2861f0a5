package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	"recordboard/internal/engine"
	"recordboard/internal/model"
)

type handlers struct {
	board Board
}

// stateBody is the JSON shape of the board state.
type stateBody struct {
	model.State
	SubmitLabel string `json:"submitLabel"`
}

type errorBody struct {
	Error string     `json:"error"`
	State *stateBody `json:"state,omitempty"`
}

func newStateBody(st model.State) *stateBody {
	return &stateBody{State: st, SubmitLabel: model.SubmitLabel(st.Mode)}
}

// page renders the board. A failed snapshot is the only error the page ever shows.
func (h *handlers) page(w http.ResponseWriter, r *http.Request) {
	st, err := h.board.Snapshot()
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := renderPage(w, st); err != nil {
		log.Printf("[api] render page: %v", err)
	}
}

func (h *handlers) submitForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	draft := model.Draft{Name: r.PostForm.Get("name"), Email: r.PostForm.Get("email")}
	if _, err := h.board.SetDraft(draft); err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	if _, err := h.board.Submit(r.Context()); isLoopError(err) {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	redirectHome(w, r)
}

func (h *handlers) cancelForm(w http.ResponseWriter, r *http.Request) {
	if _, err := h.board.CancelEdit(); err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	redirectHome(w, r)
}

func (h *handlers) editForm(w http.ResponseWriter, r *http.Request) {
	id, err := bindID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if _, err := h.board.EnterEditModeByID(id); err != nil {
		status := http.StatusServiceUnavailable
		if errors.Is(err, engine.ErrUnknownRecord) {
			status = http.StatusNotFound
		}
		http.Error(w, err.Error(), status)
		return
	}
	redirectHome(w, r)
}

func (h *handlers) deleteForm(w http.ResponseWriter, r *http.Request) {
	id, err := bindID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if _, err := h.board.Delete(r.Context(), id); isLoopError(err) {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	redirectHome(w, r)
}

func (h *handlers) getState(w http.ResponseWriter, r *http.Request) {
	st, err := h.board.Snapshot()
	h.respond(w, st, err)
}

func (h *handlers) getRecords(w http.ResponseWriter, r *http.Request) {
	st, err := h.board.Snapshot()
	if err != nil {
		h.respond(w, st, err)
		return
	}
	writeJSON(w, http.StatusOK, st.Records)
}

func (h *handlers) putDraft(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	var draft model.Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: fmt.Sprintf("decode draft: %v", err)})
		return
	}
	st, err := h.board.SetDraft(draft)
	h.respond(w, st, err)
}

func (h *handlers) postSubmit(w http.ResponseWriter, r *http.Request) {
	st, err := h.board.Submit(r.Context())
	h.respond(w, st, err)
}

func (h *handlers) postReload(w http.ResponseWriter, r *http.Request) {
	st, err := h.board.Load(r.Context())
	h.respond(w, st, err)
}

func (h *handlers) postCancel(w http.ResponseWriter, r *http.Request) {
	st, err := h.board.CancelEdit()
	h.respond(w, st, err)
}

func (h *handlers) postEdit(w http.ResponseWriter, r *http.Request) {
	id, err := bindID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
		return
	}
	st, err := h.board.EnterEditModeByID(id)
	h.respond(w, st, err)
}

func (h *handlers) deleteRecord(w http.ResponseWriter, r *http.Request) {
	id, err := bindID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
		return
	}
	st, err := h.board.Delete(r.Context(), id)
	h.respond(w, st, err)
}

// respond maps board errors onto status codes. Upstream failures answer 502 and
// carry the unchanged state.
func (h *handlers) respond(w http.ResponseWriter, st model.State, err error) {
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, newStateBody(st))
	case isLoopError(err):
		writeJSON(w, http.StatusServiceUnavailable, errorBody{Error: err.Error()})
	case errors.Is(err, engine.ErrUnknownRecord):
		writeJSON(w, http.StatusNotFound, errorBody{Error: err.Error(), State: newStateBody(st)})
	default:
		writeJSON(w, http.StatusBadGateway, errorBody{Error: err.Error(), State: newStateBody(st)})
	}
}

func isLoopError(err error) bool {
	return errors.Is(err, engine.ErrBusy) || errors.Is(err, engine.ErrClosed)
}

func bindID(r *http.Request) (int, error) {
	var id int
	if err := runtime.BindStyledParameterWithLocation("simple", false, "id", runtime.ParamLocationPath, chi.URLParam(r, "id"), &id); err != nil {
		return 0, fmt.Errorf("invalid format for parameter id: %w", err)
	}
	return id, nil
}

func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[api] encode response: %v", err)
	}
}
