// Package handler contains the HTTP handlers: the server-rendered pages,
// the theme toggle, and the JSON endpoints.
//
// HANDLER RESPONSIBILITIES:
//  1. Parse the request (path params, query string, form values)
//  2. Call the service layer
//  3. Write the response (status code, headers, body)
//
// Handlers hold no business logic. They depend on small interfaces
// (Searcher, ProfileLoader, ThemeSwitcher) which the service package
// satisfies; tests substitute fakes.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/hamzaabialal/github-clone/internal/apperror"
	"github.com/hamzaabialal/github-clone/internal/model"
	"github.com/hamzaabialal/github-clone/internal/visitor"
)

// Searcher runs user searches. Implemented by *service.SearchService.
type Searcher interface {
	Search(ctx context.Context, visitorID, query string, filters model.SearchFilters) (*model.SearchResult, error)
}

// ProfileLoader loads profile pages. Implemented by *service.ProfileService.
type ProfileLoader interface {
	Load(ctx context.Context, visitorID, login, language string) (*model.ProfileView, error)
}

// ThemeSwitcher reads and flips a visitor's theme. Implemented by
// *service.ThemeService.
type ThemeSwitcher interface {
	Current(ctx context.Context, visitorID string) model.Theme
	Toggle(ctx context.Context, visitorID string) (model.Theme, error)
}

const siteName = "GitHubClone"

// landingPage is the data for landing.html.
type landingPage struct {
	Result       *model.SearchResult
	AccountTypes []string
	Error        string
}

// Searched reports whether a search has settled, which hides the feature
// panel and shows the results section.
func (p landingPage) Searched() bool {
	return p.Result != nil && p.Result.State == model.StateSuccess
}

// profilePage is the data for profile.html.
type profilePage struct {
	View *model.ProfileView
}

// errorPage is the data for error.html.
type errorPage struct {
	Message string
}

// PageHandler serves the HTML pages.
type PageHandler struct {
	renderer *Renderer
	search   Searcher
	profiles ProfileLoader
	themes   ThemeSwitcher
	logger   *slog.Logger
}

// NewPageHandler creates a PageHandler.
func NewPageHandler(renderer *Renderer, search Searcher, profiles ProfileLoader, themes ThemeSwitcher, logger *slog.Logger) *PageHandler {
	return &PageHandler{
		renderer: renderer,
		search:   search,
		profiles: profiles,
		themes:   themes,
		logger:   logger,
	}
}

// HandleLanding serves the landing page.
//
// HTTP: GET /?search=<q>&type=<All|Users|Organizations>&location=<text>&followers=<n>
//
// With a search parameter the search runs as part of this request, so
// links like /?search=torvalds arrive with results already rendered.
// Without one the page is idle and shows the feature panel.
func (h *PageHandler) HandleLanding(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := q.Get("search")
	filters := model.SearchFilters{
		Type:         q.Get("type"),
		Location:     q.Get("location"),
		MinFollowers: q.Get("followers"),
	}
	visitorID, _ := visitor.IDFromContext(r.Context())

	page := landingPage{
		Result: &model.SearchResult{
			Query:   query,
			Filters: filters,
			State:   model.StateIdle,
			Items:   []model.UserSummary{},
		},
		AccountTypes: []string{model.AccountTypeAny, model.AccountTypeUsers, model.AccountTypeOrganizations},
	}
	status := http.StatusOK

	result, err := h.search.Search(r.Context(), visitorID, query, filters)
	switch {
	case err == nil:
		page.Result = result
	case clientGone(r, err):
		return
	case errors.Is(err, apperror.ErrValidation):
		status = http.StatusBadRequest
		page.Error = messageFor(err)
	default:
		h.renderError(w, r, err)
		return
	}

	h.render(w, r, status, pageLanding, siteName, strings.TrimSpace(query), page)
}

// HandleProfile serves a user's profile page.
//
// HTTP: GET /user/{login}?language=<lang>
func (h *PageHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	login := chi.URLParam(r, "login")
	language := r.URL.Query().Get("language")
	visitorID, _ := visitor.IDFromContext(r.Context())

	view, err := h.profiles.Load(r.Context(), visitorID, login, language)
	if err != nil {
		if clientGone(r, err) {
			return
		}
		h.renderError(w, r, err)
		return
	}

	title := view.Profile.DisplayName() + " · " + siteName
	h.render(w, r, http.StatusOK, pageProfile, title, "", profilePage{View: view})
}

// HandleNotFound renders the error view for unknown routes.
func (h *PageHandler) HandleNotFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusNotFound, pageError, "Not found · "+siteName, "",
		errorPage{Message: "Page not found"})
}

// renderError shows the terminal error view with a "Go Back Home" link.
func (h *PageHandler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	status, _ := statusFor(err)

	msg := messageFor(err)
	switch {
	case errors.Is(err, apperror.ErrNotFound):
		msg = "User not found"
	case errors.Is(err, apperror.ErrSuperseded):
		msg = "This page was replaced by a newer request"
	}
	if status >= http.StatusInternalServerError {
		h.logger.Error("page request failed",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
	}

	h.render(w, r, status, pageError, "Error · "+siteName, "", errorPage{Message: msg})
}

func (h *PageHandler) render(w http.ResponseWriter, r *http.Request, status int, page, title, headerQuery string, data any) {
	visitorID, _ := visitor.IDFromContext(r.Context())
	h.renderer.Render(w, status, page, layout{
		Title:       title,
		Theme:       h.themes.Current(r.Context(), visitorID),
		ReturnTo:    r.URL.RequestURI(),
		HeaderQuery: headerQuery,
		Page:        data,
	})
}
