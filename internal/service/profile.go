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

// ProfileService loads a user's profile page data.
type ProfileService struct {
	api     github.API
	tickets *supersede.Group
	logger  *slog.Logger
}

// NewProfileService creates a ProfileService.
func NewProfileService(api github.API, tickets *supersede.Group, logger *slog.Logger) *ProfileService {
	return &ProfileService{
		api:     api,
		tickets: tickets,
		logger:  logger,
	}
}

// Load fetches the profile, then the repositories, and builds the view for
// the selected language.
//
// FLOW:
//  1. GET the profile. If that fails the page is the terminal error view:
//     apperror.ErrNotFound for an unknown login, apperror.ErrUpstream for
//     anything else. The repository request is NOT made.
//  2. GET the repositories. A failure here is logged and treated as "no
//     repositories"; the page still renders the profile.
//  3. Derive the language options and the filtered list.
//
// If a newer profile load from the same visitor starts in the meantime,
// this one returns apperror.ErrSuperseded.
func (s *ProfileService) Load(ctx context.Context, visitorID, login, language string) (*model.ProfileView, error) {
	login = strings.TrimSpace(login)
	if login == "" {
		return nil, apperror.ValidationFailed("login", "login is required")
	}

	ticket := s.tickets.Begin(ctx, ticketKey(visitorID, "profile"))
	defer ticket.Done()
	tctx := ticket.Context()

	// --- Step 1: profile ---
	profile, err := s.api.GetUser(tctx, login)
	if !ticket.Current() {
		metrics.ProfileLoads.WithLabelValues("superseded").Inc()
		return nil, apperror.Superseded("profile")
	}
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			s.logger.Info("profile not found", slog.String("login", login))
			metrics.ProfileLoads.WithLabelValues("not_found").Inc()
			return nil, err
		}
		if errors.Is(err, context.Canceled) && ctx.Err() != nil {
			return nil, fmt.Errorf("loading profile %s: %w", login, err)
		}
		s.logger.Error("profile fetch failed",
			slog.String("login", login),
			slog.String("error", err.Error()),
		)
		metrics.ProfileLoads.WithLabelValues("failed").Inc()
		return nil, apperror.Upstream("Failed to fetch user data", err)
	}

	// --- Step 2: repositories ---
	repos, err := s.api.ListRepos(tctx, login)
	if !ticket.Current() {
		metrics.ProfileLoads.WithLabelValues("superseded").Inc()
		return nil, apperror.Superseded("profile")
	}
	if err != nil {
		s.logger.Warn("repository fetch failed, showing none",
			slog.String("login", login),
			slog.String("error", err.Error()),
		)
		metrics.ProfileLoads.WithLabelValues("repos_failed").Inc()
		repos = []model.Repository{}
	} else {
		metrics.ProfileLoads.WithLabelValues("success").Inc()
	}

	// --- Step 3: derived view ---
	return BuildProfileView(profile, repos, language), nil
}

// BuildProfileView assembles the derived view state from source data.
func BuildProfileView(profile *model.UserProfile, repos []model.Repository, language string) *model.ProfileView {
	if language == "" {
		language = model.AllLanguages
	}
	if repos == nil {
		repos = []model.Repository{}
	}
	return &model.ProfileView{
		Profile:          profile,
		Repositories:     repos,
		Languages:        LanguageOptions(repos),
		SelectedLanguage: language,
		Visible:          FilterByLanguage(repos, language),
	}
}
