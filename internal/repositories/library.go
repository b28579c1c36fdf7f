package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/okhester/ludex/internal/models"
	"github.com/okhester/ludex/internal/shared"
)

// LibraryGameRepository persists the per-user library join rows.
//
// Create is idempotent by detection: a pre-existing (user, game) pair is
// reported as [shared.ErrAlreadyExists] instead of inserting a duplicate,
// which is what makes the consolidation run safe to re-run.
type LibraryGameRepository struct {
	db *sql.DB
}

// NewLibraryGameRepository creates a new LibraryGameRepository with the given database connection
func NewLibraryGameRepository(db *sql.DB) *LibraryGameRepository {
	return &LibraryGameRepository{db: db}
}

// Ready reports whether the library_games table exists. The migration
// preflight refuses to run against a store where it is missing.
func (r *LibraryGameRepository) Ready() (bool, error) {
	return tableExists(r.db, "library_games")
}

// Exists reports whether a library row already links the user to the catalog game.
func (r *LibraryGameRepository) Exists(userID, gameID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(
		"SELECT EXISTS(SELECT 1 FROM library_games WHERE user_id = ? AND game_id = ?)",
		userID, gameID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check library entry: %w", err)
	}
	return exists, nil
}

// Create inserts a new library row with generated ID and sequence.
//
// Returns [shared.ErrAlreadyExists] when the (user, game) pair is already
// linked, found either by the existence check or by the unique constraint.
func (r *LibraryGameRepository) Create(entry *models.LibraryGame) error {
	if err := entry.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	exists, err := r.Exists(entry.UserID, entry.GameID)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: library entry for user %s and game %s", shared.ErrAlreadyExists, entry.UserID, entry.GameID)
	}

	sequence, err := NextSequence(r.db, "library_games")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	now := time.Now()
	entry.ID = shared.GenerateID()
	entry.Sequence = sequence
	entry.CreatedAt = now
	entry.UpdatedAt = now

	query := `
		INSERT INTO library_games (id, sequence, user_id, game_id, play_count, rating, review, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		entry.ID,
		entry.Sequence,
		entry.UserID,
		entry.GameID,
		entry.PlayCount,
		entry.Rating,
		entry.Review,
		entry.CreatedAt,
		entry.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: library entry for user %s and game %s", shared.ErrAlreadyExists, entry.UserID, entry.GameID)
		}
		return fmt.Errorf("failed to insert library entry: %w", err)
	}

	return nil
}

// ListByUser retrieves a user's library rows ordered by sequence.
func (r *LibraryGameRepository) ListByUser(userID string) ([]models.LibraryGame, error) {
	query := `
		SELECT id, sequence, user_id, game_id, play_count, rating, review, created_at, updated_at
		FROM library_games
		WHERE user_id = ?
		ORDER BY sequence ASC
	`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query library entries: %w", err)
	}
	defer rows.Close()

	var entries []models.LibraryGame
	for rows.Next() {
		var (
			entry  models.LibraryGame
			rating sql.NullInt64
			review sql.NullString
		)
		err := rows.Scan(
			&entry.ID, &entry.Sequence, &entry.UserID, &entry.GameID,
			&entry.PlayCount, &rating, &review, &entry.CreatedAt, &entry.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan library entry: %w", err)
		}
		if rating.Valid {
			entry.Rating = intPtr(rating)
		}
		if review.Valid {
			entry.Review = &review.String
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return entries, nil
}

// Count returns the number of library rows.
func (r *LibraryGameRepository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM library_games").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count library entries: %w", err)
	}
	return count, nil
}
