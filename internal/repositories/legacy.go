package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/okhester/ludex/internal/models"
)

// LegacyGameRepository provides read-only access to the flat pre-split games
// table. The consolidation run treats these rows as its immutable source of
// truth; nothing in this repository mutates them.
type LegacyGameRepository struct {
	db *sql.DB
}

// NewLegacyGameRepository creates a new LegacyGameRepository with the given database connection
func NewLegacyGameRepository(db *sql.DB) *LegacyGameRepository {
	return &LegacyGameRepository{db: db}
}

// HasLegacyShape reports whether the games table still has its pre-split
// shape, identified by the presence of the user_id column. A store where the
// table is absent or already reshaped reads as false, which the migration
// preflight treats as "nothing to do".
func (r *LegacyGameRepository) HasLegacyShape() (bool, error) {
	exists, err := tableExists(r.db, "games")
	if err != nil || !exists {
		return false, err
	}

	var hasUserColumn bool
	err = r.db.QueryRow(
		"SELECT EXISTS(SELECT 1 FROM pragma_table_info('games') WHERE name = 'user_id')",
	).Scan(&hasUserColumn)
	if err != nil {
		return false, fmt.Errorf("failed to inspect games table shape: %w", err)
	}

	return hasUserColumn, nil
}

// ListOrderedByTitle retrieves every legacy row ordered by title, which keeps
// records sharing a title adjacent in migration progress output.
func (r *LegacyGameRepository) ListOrderedByTitle() ([]models.LegacyGame, error) {
	query := `
		SELECT id, user_id, title, year, min_players, max_players, play_time_min,
			play_time_max, box_art_path, description, categories, bgg_rating,
			bgg_rank, suggested_age, play_count, rating, review, created_at, updated_at
		FROM games
		ORDER BY title ASC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query legacy games: %w", err)
	}
	defer rows.Close()

	var games []models.LegacyGame
	for rows.Next() {
		game, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		games = append(games, *game)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return games, nil
}

// Count returns the number of legacy rows.
func (r *LegacyGameRepository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM games").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count legacy games: %w", err)
	}
	return count, nil
}

// scanRow scans a row from [sql.Rows] into a [models.LegacyGame]
func (r *LegacyGameRepository) scanRow(rows *sql.Rows) (*models.LegacyGame, error) {
	var (
		id           string
		userID       sql.NullString
		title        string
		year         sql.NullInt64
		minPlayers   sql.NullInt64
		maxPlayers   sql.NullInt64
		playTimeMin  sql.NullInt64
		playTimeMax  sql.NullInt64
		boxArtPath   sql.NullString
		description  sql.NullString
		categories   sql.NullString
		bggRating    sql.NullFloat64
		bggRank      sql.NullInt64
		suggestedAge sql.NullInt64
		playCount    int
		rating       sql.NullInt64
		review       sql.NullString
		createdAt    time.Time
		updatedAt    time.Time
	)

	err := rows.Scan(
		&id, &userID, &title, &year, &minPlayers, &maxPlayers, &playTimeMin,
		&playTimeMax, &boxArtPath, &description, &categories, &bggRating,
		&bggRank, &suggestedAge, &playCount, &rating, &review, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan legacy game: %w", err)
	}

	categoryList, err := decodeCategories(categories)
	if err != nil {
		return nil, err
	}

	game := models.LegacyGame{
		ID:         id,
		Title:      title,
		Categories: categoryList,
		PlayCount:  playCount,
		CreatedAt:  createdAt,
		UpdatedAt:  updatedAt,
	}

	if userID.Valid {
		game.UserID = &userID.String
	}
	if year.Valid {
		game.Year = intPtr(year)
	}
	if minPlayers.Valid {
		game.MinPlayers = intPtr(minPlayers)
	}
	if maxPlayers.Valid {
		game.MaxPlayers = intPtr(maxPlayers)
	}
	if playTimeMin.Valid {
		game.PlayTimeMin = intPtr(playTimeMin)
	}
	if playTimeMax.Valid {
		game.PlayTimeMax = intPtr(playTimeMax)
	}
	if boxArtPath.Valid {
		game.BoxArtPath = &boxArtPath.String
	}
	if description.Valid {
		game.Description = &description.String
	}
	if bggRating.Valid {
		game.BGGRating = &bggRating.Float64
	}
	if bggRank.Valid {
		game.BGGRank = intPtr(bggRank)
	}
	if suggestedAge.Valid {
		game.SuggestedAge = intPtr(suggestedAge)
	}
	if rating.Valid {
		game.Rating = intPtr(rating)
	}
	if review.Valid {
		game.Review = &review.String
	}

	return &game, nil
}

// intPtr converts a valid [sql.NullInt64] to an *int.
func intPtr(n sql.NullInt64) *int {
	v := int(n.Int64)
	return &v
}
