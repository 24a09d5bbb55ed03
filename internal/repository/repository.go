package repository

import (
	"context"

	"github.com/hamzaabialal/github-clone/internal/model"
)

// ThemeRepository persists one theme preference per visitor.
//
// Get returns apperror.ErrNotFound when the visitor never stored one. The
// raw stored string is returned as-is; deciding what an invalid value means
// is the service's job.
type ThemeRepository interface {
	GetTheme(ctx context.Context, visitorID string) (string, error)
	SaveTheme(ctx context.Context, visitorID string, theme model.Theme) error
}
