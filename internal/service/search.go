// Package service contains the business logic layer of the application.
//
// THE THREE-LAYER ARCHITECTURE:
//
//	Handler (HTTP layer)     → parses requests, renders pages / JSON
//	Service (business layer) → validates input, calls GitHub, shapes view state
//	github / repository      → talks to the GitHub API / the SQLite database
//
// Services take interfaces (github.API, repository.ThemeRepository), never
// concrete types, so tests inject fakes and the CLI reuses the same code
// as the web server.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hamzaabialal/github-clone/internal/apperror"
	"github.com/hamzaabialal/github-clone/internal/github"
	"github.com/hamzaabialal/github-clone/internal/metrics"
	"github.com/hamzaabialal/github-clone/internal/model"
	"github.com/hamzaabialal/github-clone/internal/supersede"
)

// SearchService runs user searches.
type SearchService struct {
	api     github.API
	tickets *supersede.Group
	logger  *slog.Logger
}

// NewSearchService creates a SearchService. tickets may be shared with other
// services; keys are namespaced per view.
func NewSearchService(api github.API, tickets *supersede.Group, logger *slog.Logger) *SearchService {
	return &SearchService{
		api:     api,
		tickets: tickets,
		logger:  logger,
	}
}

// Search runs one search for a visitor.
//
// OUTCOMES:
//   - blank query → StateIdle, nothing is sent to GitHub
//   - bad filter  → apperror.ErrValidation, nothing is sent
//   - GitHub fails (network, status, JSON) → logged, StateSuccess with no
//     items. The page shows its normal empty state; the failure is not
//     surfaced beyond that.
//   - a newer search from the same visitor started meanwhile →
//     apperror.ErrSuperseded, and the stale items are thrown away
//
// visitorID may be empty (e.g. the CLI); such searches never supersede
// each other.
func (s *SearchService) Search(ctx context.Context, visitorID, query string, filters model.SearchFilters) (*model.SearchResult, error) {
	result := &model.SearchResult{
		Query:   query,
		Filters: filters,
		State:   model.StateIdle,
		Items:   []model.UserSummary{},
	}

	q, err := github.BuildSearchQuery(query, filters)
	if err != nil {
		return nil, err
	}
	if q == "" {
		return result, nil
	}

	ticket := s.tickets.Begin(ctx, ticketKey(visitorID, "search"))
	defer ticket.Done()

	users, err := s.api.SearchUsers(ticket.Context(), q)

	// Checked before looking at err: a superseded search usually fails with
	// context.Canceled, and that must not be logged as a GitHub failure.
	if !ticket.Current() {
		metrics.Searches.WithLabelValues("superseded").Inc()
		return nil, apperror.Superseded("search")
	}

	if err != nil {
		if errors.Is(err, context.Canceled) && ctx.Err() != nil {
			// The visitor went away; nobody will see this result.
			return nil, fmt.Errorf("searching users: %w", err)
		}
		s.logger.Error("user search failed",
			slog.String("query", strings.TrimSpace(query)),
			slog.String("error", err.Error()),
		)
		metrics.Searches.WithLabelValues("failed").Inc()
		result.State = model.StateSuccess
		return result, nil
	}

	s.logger.Info("user search completed",
		slog.String("query", strings.TrimSpace(query)),
		slog.Int("results", len(users)),
	)
	metrics.Searches.WithLabelValues("success").Inc()

	result.State = model.StateSuccess
	result.Items = users
	return result, nil
}

// ticketKey namespaces a visitor's tickets per view. An anonymous caller
// gets the empty key, which never supersedes.
func ticketKey(visitorID, view string) string {
	if visitorID == "" {
		return ""
	}
	return visitorID + "/" + view
}
