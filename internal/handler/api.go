package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hamzaabialal/github-clone/internal/model"
	"github.com/hamzaabialal/github-clone/internal/visitor"
)

// APIHandler exposes the search and profile flows as JSON.
type APIHandler struct {
	search   Searcher
	profiles ProfileLoader
	logger   *slog.Logger
}

// NewAPIHandler creates an APIHandler.
func NewAPIHandler(search Searcher, profiles ProfileLoader, logger *slog.Logger) *APIHandler {
	return &APIHandler{
		search:   search,
		profiles: profiles,
		logger:   logger,
	}
}

// HandleSearch runs a user search.
//
// HTTP: GET /api/search?q=<query>&type=&location=&followers=
//
// RESPONSE FORMAT:
//
//	{"query":"torvalds","filters":{...},"state":"success","items":[...]}
//
// A blank q answers with state "idle" and no items.
func (h *APIHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := model.SearchFilters{
		Type:         q.Get("type"),
		Location:     q.Get("location"),
		MinFollowers: q.Get("followers"),
	}
	visitorID, _ := visitor.IDFromContext(r.Context())

	result, err := h.search.Search(r.Context(), visitorID, q.Get("q"), filters)
	if err != nil {
		if clientGone(r, err) {
			return
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// HandleUser returns a profile with its repositories.
//
// HTTP: GET /api/users/{login}?language=<lang>
func (h *APIHandler) HandleUser(w http.ResponseWriter, r *http.Request) {
	login := chi.URLParam(r, "login")
	visitorID, _ := visitor.IDFromContext(r.Context())

	view, err := h.profiles.Load(r.Context(), visitorID, login, r.URL.Query().Get("language"))
	if err != nil {
		if clientGone(r, err) {
			return
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
