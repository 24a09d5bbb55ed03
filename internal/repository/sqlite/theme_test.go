package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/hamzaabialal/github-clone/internal/apperror"
	"github.com/hamzaabialal/github-clone/internal/model"
)

// newTestDB creates an in-memory database for one test.
// Each test gets a fresh, empty database.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}
	// t.Cleanup is like defer, but scoped to the test (works in subtests too).
	t.Cleanup(func() { db.Close() })
	return db
}

func TestGetTheme_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.GetTheme(context.Background(), "cv37rs3pp9olc6atsptg")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("GetTheme() error = %v, want ErrNotFound", err)
	}
}

func TestSaveTheme_ThenGet(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if err := db.SaveTheme(ctx, "visitor-a", model.ThemeLight); err != nil {
		t.Fatalf("SaveTheme() error = %v", err)
	}

	got, err := db.GetTheme(ctx, "visitor-a")
	if err != nil {
		t.Fatalf("GetTheme() error = %v", err)
	}
	if got != "light" {
		t.Errorf("GetTheme() = %q, want %q", got, "light")
	}
}

func TestSaveTheme_Overwrites(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	for _, th := range []model.Theme{model.ThemeLight, model.ThemeDark, model.ThemeLight} {
		if err := db.SaveTheme(ctx, "visitor-a", th); err != nil {
			t.Fatalf("SaveTheme(%s) error = %v", th, err)
		}
	}

	got, err := db.GetTheme(ctx, "visitor-a")
	if err != nil {
		t.Fatalf("GetTheme() error = %v", err)
	}
	if got != "light" {
		t.Errorf("GetTheme() = %q, want last saved %q", got, "light")
	}

	var rows int
	if err := db.conn.QueryRow(`SELECT COUNT(*) FROM theme_preferences`).Scan(&rows); err != nil {
		t.Fatalf("counting rows: %v", err)
	}
	if rows != 1 {
		t.Errorf("rows = %d, want 1 (upsert, not insert)", rows)
	}
}

func TestSaveTheme_VisitorsAreIsolated(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if err := db.SaveTheme(ctx, "visitor-a", model.ThemeLight); err != nil {
		t.Fatal(err)
	}
	if err := db.SaveTheme(ctx, "visitor-b", model.ThemeDark); err != nil {
		t.Fatal(err)
	}

	a, _ := db.GetTheme(ctx, "visitor-a")
	b, _ := db.GetTheme(ctx, "visitor-b")
	if a != "light" || b != "dark" {
		t.Errorf("got a=%q b=%q, want light/dark", a, b)
	}
}

func TestGetTheme_ReturnsRawValue(t *testing.T) {
	db := newTestDB(t)

	// Simulate a hand-edited row; validation is the service's job.
	if _, err := db.conn.Exec(
		`INSERT INTO theme_preferences (visitor_id, theme) VALUES (?, ?)`,
		"visitor-a", "purple",
	); err != nil {
		t.Fatal(err)
	}

	got, err := db.GetTheme(context.Background(), "visitor-a")
	if err != nil {
		t.Fatalf("GetTheme() error = %v", err)
	}
	if got != "purple" {
		t.Errorf("GetTheme() = %q, want raw %q", got, "purple")
	}
}

func TestNew_FilePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.db")
	ctx := context.Background()

	db, err := New(path)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := db.SaveTheme(ctx, "visitor-a", model.ThemeLight); err != nil {
		t.Fatal(err)
	}
	db.Close()

	// Reopening runs migrations again; they must be idempotent.
	db, err = New(path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer db.Close()

	got, err := db.GetTheme(ctx, "visitor-a")
	if err != nil {
		t.Fatalf("GetTheme() error = %v", err)
	}
	if got != "light" {
		t.Errorf("GetTheme() = %q after reopen, want %q", got, "light")
	}
}
