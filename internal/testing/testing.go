// package testing contains shared testing utilities
package testing

import (
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"os"
	"testing"
	"time"

	"github.com/okhester/ludex/internal/models"
	"github.com/okhester/ludex/internal/shared"
)

// SetupTestDB opens an in-memory sqlite database with the full schema applied.
// The database is closed automatically when the test finishes.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	return db
}

// StrPtr returns a pointer to s.
func StrPtr(s string) *string { return &s }

// IntPtr returns a pointer to i.
func IntPtr(i int) *int { return &i }

// FloatPtr returns a pointer to f.
func FloatPtr(f float64) *float64 { return &f }

// LegacyGameFixture builds a legacy record with sensible defaults, suitable
// for mutation by individual tests.
func LegacyGameFixture(id, title string, userID *string) models.LegacyGame {
	now := time.Now().UTC()
	return models.LegacyGame{
		ID:        id,
		UserID:    userID,
		Title:     title,
		PlayCount: 0,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// InsertLegacyGame writes a legacy record directly into the games table,
// bypassing the repositories. Used to seed pre-consolidation state.
func InsertLegacyGame(t *testing.T, db *sql.DB, g models.LegacyGame) {
	t.Helper()

	var categories any
	if len(g.Categories) > 0 {
		data, err := json.Marshal(g.Categories)
		if err != nil {
			t.Fatalf("Failed to encode categories: %v", err)
		}
		categories = string(data)
	}

	_, err := db.Exec(`
		INSERT INTO games (
			id, user_id, title, year, min_players, max_players,
			play_time_min, play_time_max, box_art_path, description, categories,
			bgg_rating, bgg_rank, suggested_age,
			play_count, rating, review, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		g.ID, g.UserID, g.Title, g.Year, g.MinPlayers, g.MaxPlayers,
		g.PlayTimeMin, g.PlayTimeMax, g.BoxArtPath, g.Description, categories,
		g.BGGRating, g.BGGRank, g.SuggestedAge,
		g.PlayCount, g.Rating, g.Review, g.CreatedAt, g.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("Failed to insert legacy game %q: %v", g.Title, err)
	}
}

// InsertUser writes a user row directly, bypassing the repositories.
func InsertUser(t *testing.T, db *sql.DB, id, email, name string) {
	t.Helper()

	now := time.Now().UTC()
	_, err := db.Exec(
		"INSERT INTO users (id, sequence, email, name, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
		id, 0, email, name, now, now,
	)
	if err != nil {
		t.Fatalf("Failed to insert user %q: %v", email, err)
	}
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("Path is not a directory: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
