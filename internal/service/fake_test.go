package service

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/hamzaabialal/github-clone/internal/apperror"
	"github.com/hamzaabialal/github-clone/internal/model"
)

// =========================================================================
// FAKE GITHUB API
// =========================================================================
//
// fakeAPI implements github.API in memory. It records every call so tests
// can assert how many requests a flow issued and with what arguments.
// The optional hooks let a test block or fail a particular call.

type fakeAPI struct {
	mu sync.Mutex

	users    []model.UserSummary
	profiles map[string]*model.UserProfile
	repos    map[string][]model.Repository

	searchErr error
	userErr   error
	reposErr  error

	// searchHook runs inside SearchUsers before returning; tests use it to
	// block a call until they release it.
	searchHook func(ctx context.Context, q string) error

	searchCalls []string
	userCalls   []string
	repoCalls   []string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		profiles: make(map[string]*model.UserProfile),
		repos:    make(map[string][]model.Repository),
	}
}

func (f *fakeAPI) SearchUsers(ctx context.Context, q string) ([]model.UserSummary, error) {
	f.mu.Lock()
	f.searchCalls = append(f.searchCalls, q)
	hook := f.searchHook
	f.mu.Unlock()

	if hook != nil {
		if err := hook(ctx, q); err != nil {
			return nil, err
		}
	}
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.users, nil
}

func (f *fakeAPI) GetUser(_ context.Context, login string) (*model.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.userCalls = append(f.userCalls, login)
	if f.userErr != nil {
		return nil, f.userErr
	}
	p, ok := f.profiles[login]
	if !ok {
		return nil, apperror.NotFound("user", login)
	}
	return p, nil
}

func (f *fakeAPI) ListRepos(_ context.Context, login string) ([]model.Repository, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.repoCalls = append(f.repoCalls, login)
	if f.reposErr != nil {
		return nil, f.reposErr
	}
	return f.repos[login], nil
}

func (f *fakeAPI) searchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.searchCalls)
}

// =========================================================================
// FAKE THEME STORE
// =========================================================================

type memThemeStore struct {
	mu      sync.Mutex
	themes  map[string]string
	getErr  error
	saveErr error
	saves   int
}

func newMemThemeStore() *memThemeStore {
	return &memThemeStore{themes: make(map[string]string)}
}

func (m *memThemeStore) GetTheme(_ context.Context, visitorID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return "", m.getErr
	}
	t, ok := m.themes[visitorID]
	if !ok {
		return "", apperror.NotFound("theme preference", visitorID)
	}
	return t, nil
}

func (m *memThemeStore) SaveTheme(_ context.Context, visitorID string, theme model.Theme) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.themes[visitorID] = string(theme)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
