package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hamzaabialal/github-clone/internal/apperror"
	"github.com/hamzaabialal/github-clone/internal/metrics"
	"github.com/hamzaabialal/github-clone/internal/model"
	"github.com/hamzaabialal/github-clone/internal/repository"
)

// ThemeService holds the theme preference of every visitor.
//
// There is no package-level "current theme": the service is constructed in
// server.New, handed to the handlers that need it, and the storage is an
// injected repository.ThemeRepository. Tests pass an in-memory fake.
type ThemeService struct {
	store  repository.ThemeRepository
	logger *slog.Logger
}

// NewThemeService creates a ThemeService.
func NewThemeService(store repository.ThemeRepository, logger *slog.Logger) *ThemeService {
	return &ThemeService{
		store:  store,
		logger: logger,
	}
}

// Current returns the visitor's theme.
//
// It never fails: a missing row, an unreadable database, or a stored value
// that is neither "light" nor "dark" all yield model.DefaultTheme. A page
// should not break because the preference could not be read.
func (s *ThemeService) Current(ctx context.Context, visitorID string) model.Theme {
	if visitorID == "" {
		return model.DefaultTheme
	}

	raw, err := s.store.GetTheme(ctx, visitorID)
	if err != nil {
		if !errors.Is(err, apperror.ErrNotFound) {
			s.logger.Warn("reading theme preference failed",
				slog.String("visitorID", visitorID),
				slog.String("error", err.Error()),
			)
		}
		return model.DefaultTheme
	}

	theme, err := model.ParseTheme(raw)
	if err != nil {
		s.logger.Warn("ignoring invalid stored theme",
			slog.String("visitorID", visitorID),
			slog.String("value", raw),
		)
		return model.DefaultTheme
	}
	return theme
}

// Toggle flips the visitor's theme, persists it, and returns the new value.
func (s *ThemeService) Toggle(ctx context.Context, visitorID string) (model.Theme, error) {
	if visitorID == "" {
		return "", apperror.ValidationFailed("visitor", "visitor ID is required")
	}

	next := s.Current(ctx, visitorID).Toggle()
	if err := s.store.SaveTheme(ctx, visitorID, next); err != nil {
		s.logger.Error("saving theme preference failed",
			slog.String("visitorID", visitorID),
			slog.String("error", err.Error()),
		)
		return "", fmt.Errorf("toggling theme: %w", err)
	}

	metrics.ThemeToggles.WithLabelValues(next.String()).Inc()
	s.logger.Info("theme toggled",
		slog.String("visitorID", visitorID),
		slog.String("theme", next.String()),
	)
	return next, nil
}
