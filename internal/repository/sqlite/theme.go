package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/hamzaabialal/github-clone/internal/apperror"
	"github.com/hamzaabialal/github-clone/internal/model"
	"github.com/hamzaabialal/github-clone/internal/repository"
)

// compile-time check that *DB implements repository.ThemeRepository
var _ repository.ThemeRepository = (*DB)(nil)

// GetTheme returns the raw stored theme for a visitor.
// Returns apperror.ErrNotFound if the visitor has never toggled.
func (db *DB) GetTheme(ctx context.Context, visitorID string) (string, error) {
	var theme string
	err := db.conn.QueryRowContext(ctx,
		`SELECT theme FROM theme_preferences WHERE visitor_id = ?`,
		visitorID,
	).Scan(&theme)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", apperror.NotFound("theme preference", visitorID)
		}
		return "", fmt.Errorf("sqlite: getting theme for %s: %w", visitorID, err)
	}
	return theme, nil
}

// SaveTheme inserts or updates a visitor's theme.
//
// ON CONFLICT ... DO UPDATE keeps the original created_at, which
// INSERT OR REPLACE would reset because it deletes the old row first.
func (db *DB) SaveTheme(ctx context.Context, visitorID string, theme model.Theme) error {
	now := time.Now()
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO theme_preferences (visitor_id, theme, created_at, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(visitor_id) DO UPDATE SET theme = excluded.theme, updated_at = excluded.updated_at`,
		visitorID,
		string(theme),
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("sqlite: saving theme for %s: %w", visitorID, err)
	}
	return nil
}
