package handler_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/hamzaabialal/github-clone/internal/handler"
	"github.com/hamzaabialal/github-clone/internal/model"
	"github.com/hamzaabialal/github-clone/internal/visitor"
)

// MockSearcher records the last search and returns a canned answer.
type MockSearcher struct {
	CapturedVisitor string
	CapturedQuery   string
	CapturedFilters model.SearchFilters
	Calls           int
	ReturnRes       *model.SearchResult
	ReturnErr       error
}

func (m *MockSearcher) Search(_ context.Context, visitorID, query string, filters model.SearchFilters) (*model.SearchResult, error) {
	m.Calls++
	m.CapturedVisitor = visitorID
	m.CapturedQuery = query
	m.CapturedFilters = filters
	if m.ReturnErr != nil {
		return nil, m.ReturnErr
	}
	if m.ReturnRes != nil {
		return m.ReturnRes, nil
	}
	return &model.SearchResult{Query: query, Filters: filters, State: model.StateIdle, Items: []model.UserSummary{}}, nil
}

// MockProfiles returns a canned profile view.
type MockProfiles struct {
	CapturedLogin    string
	CapturedLanguage string
	ReturnView       *model.ProfileView
	ReturnErr        error
}

func (m *MockProfiles) Load(_ context.Context, _ string, login, language string) (*model.ProfileView, error) {
	m.CapturedLogin = login
	m.CapturedLanguage = language
	if m.ReturnErr != nil {
		return nil, m.ReturnErr
	}
	return m.ReturnView, nil
}

// MockThemes keeps themes in a map.
type MockThemes struct {
	mu        sync.Mutex
	themes    map[string]model.Theme
	ToggleErr error
}

func NewMockThemes() *MockThemes {
	return &MockThemes{themes: make(map[string]model.Theme)}
}

func (m *MockThemes) Current(_ context.Context, visitorID string) model.Theme {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.themes[visitorID]; ok {
		return t
	}
	return model.DefaultTheme
}

func (m *MockThemes) Toggle(ctx context.Context, visitorID string) (model.Theme, error) {
	if m.ToggleErr != nil {
		return "", m.ToggleErr
	}
	next := m.Current(ctx, visitorID).Toggle()
	m.mu.Lock()
	m.themes[visitorID] = next
	m.mu.Unlock()
	return next, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testRouter wires the handlers the same way the server does, minus the
// cookie middleware; requests carry their visitor ID via withVisitor.
func testRouter(t *testing.T, search handler.Searcher, profiles handler.ProfileLoader, themes handler.ThemeSwitcher) http.Handler {
	t.Helper()

	renderer, err := handler.NewRenderer("../../web/templates", testLogger())
	require.NoError(t, err)

	pages := handler.NewPageHandler(renderer, search, profiles, themes, testLogger())
	api := handler.NewAPIHandler(search, profiles, testLogger())
	theme := handler.NewThemeHandler(themes, testLogger())

	r := chi.NewRouter()
	r.Get("/", pages.HandleLanding)
	r.Get("/user/{login}", pages.HandleProfile)
	r.Post("/theme/toggle", theme.HandleToggle)
	r.Get("/api/search", api.HandleSearch)
	r.Get("/api/users/{login}", api.HandleUser)
	r.NotFound(pages.HandleNotFound)
	return r
}

func withVisitor(req *http.Request, id string) *http.Request {
	return req.WithContext(visitor.WithID(req.Context(), id))
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}
