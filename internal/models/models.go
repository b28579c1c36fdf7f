package models

import (
	"fmt"
	"time"

	"github.com/okhester/ludex/internal/shared"
)

// LegacyGame is one row of the flat pre-split games table: a (user, game)
// pairing holding both shared metadata and per-user tracking fields.
//
// Legacy rows are the immutable source of truth for the consolidation run;
// they are only ever read, never mutated.
type LegacyGame struct {
	ID           string    `json:"id"`
	UserID       *string   `json:"user_id,omitempty"`
	Title        string    `json:"title"`
	Year         *int      `json:"year,omitempty"`
	MinPlayers   *int      `json:"min_players,omitempty"`
	MaxPlayers   *int      `json:"max_players,omitempty"`
	PlayTimeMin  *int      `json:"play_time_min,omitempty"`
	PlayTimeMax  *int      `json:"play_time_max,omitempty"`
	BoxArtPath   *string   `json:"box_art_path,omitempty"`
	Description  *string   `json:"description,omitempty"`
	Categories   []string  `json:"categories,omitempty"`
	BGGRating    *float64  `json:"bgg_rating,omitempty"`
	BGGRank      *int      `json:"bgg_rank,omitempty"`
	SuggestedAge *int      `json:"suggested_age,omitempty"`
	PlayCount    int       `json:"play_count"`
	Rating       *int      `json:"rating,omitempty"`
	Review       *string   `json:"review,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasUser reports whether the row is associated with an owning user.
// Rows without one predate account linking and produce no library entry.
func (g *LegacyGame) HasUser() bool {
	return g.UserID != nil && *g.UserID != ""
}

// NormalizedTitle returns the deduplication key for this row's title.
func (g *LegacyGame) NormalizedTitle() string {
	return shared.NormalizeTitle(g.Title)
}

// SharedGameData is the subset of game metadata that generalizes across all
// users: no user id, no per-user tracking fields.
type SharedGameData struct {
	Title        string   `json:"title"`
	Year         *int     `json:"year,omitempty"`
	MinPlayers   *int     `json:"min_players,omitempty"`
	MaxPlayers   *int     `json:"max_players,omitempty"`
	PlayTimeMin  *int     `json:"play_time_min,omitempty"`
	PlayTimeMax  *int     `json:"play_time_max,omitempty"`
	BoxArtPath   *string  `json:"box_art_path,omitempty"`
	Description  *string  `json:"description,omitempty"`
	Categories   []string `json:"categories,omitempty"`
	BGGRating    *float64 `json:"bgg_rating,omitempty"`
	BGGRank      *int     `json:"bgg_rank,omitempty"`
	SuggestedAge *int     `json:"suggested_age,omitempty"`
}

// SharedDataFrom extracts the shared metadata of a legacy row, leaving the
// per-user fields behind.
func SharedDataFrom(g LegacyGame) SharedGameData {
	return SharedGameData{
		Title:        g.Title,
		Year:         g.Year,
		MinPlayers:   g.MinPlayers,
		MaxPlayers:   g.MaxPlayers,
		PlayTimeMin:  g.PlayTimeMin,
		PlayTimeMax:  g.PlayTimeMax,
		BoxArtPath:   g.BoxArtPath,
		Description:  g.Description,
		Categories:   g.Categories,
		BGGRating:    g.BGGRating,
		BGGRank:      g.BGGRank,
		SuggestedAge: g.SuggestedAge,
	}
}

// Validate checks that the shared metadata can be persisted as a catalog row.
func (d *SharedGameData) Validate() error {
	if shared.NormalizeTitle(d.Title) == "" {
		return fmt.Errorf("%w: title is required", shared.ErrInvalidInput)
	}
	return nil
}

// CatalogGame is one row of the shared, deduplicated catalog.
type CatalogGame struct {
	SharedGameData

	ID              string    `json:"id"`
	Sequence        int       `json:"sequence"`
	NormalizedTitle string    `json:"normalized_title"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// LibraryGame links a user to a catalog entry and holds that user's personal
// tracking data. At most one row exists per (user, catalog game) pair.
type LibraryGame struct {
	ID        string    `json:"id"`
	Sequence  int       `json:"sequence"`
	UserID    string    `json:"user_id"`
	GameID    string    `json:"game_id"`
	PlayCount int       `json:"play_count"`
	Rating    *int      `json:"rating,omitempty"`
	Review    *string   `json:"review,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate checks the library row's data before insert.
func (l *LibraryGame) Validate() error {
	if l.UserID == "" {
		return fmt.Errorf("%w: user id is required", shared.ErrInvalidInput)
	}
	if l.GameID == "" {
		return fmt.Errorf("%w: game id is required", shared.ErrInvalidInput)
	}
	if l.PlayCount < 0 {
		return fmt.Errorf("%w: play count cannot be negative", shared.ErrInvalidInput)
	}
	if l.Rating != nil && (*l.Rating < 1 || *l.Rating > 10) {
		return fmt.Errorf("%w: rating must be between 1 and 10", shared.ErrInvalidInput)
	}
	return nil
}

// User is an account that library rows reference.
type User struct {
	ID        string     `json:"id"`
	Sequence  int        `json:"sequence"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// Validate checks the user's data before insert.
func (u *User) Validate() error {
	if u.Email == "" {
		return fmt.Errorf("%w: email is required", shared.ErrInvalidInput)
	}
	if u.Name == "" {
		return fmt.Errorf("%w: name is required", shared.ErrInvalidInput)
	}
	return nil
}
