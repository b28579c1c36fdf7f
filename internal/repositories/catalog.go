package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/okhester/ludex/internal/models"
	"github.com/okhester/ludex/internal/shared"
)

// CatalogGameRepository persists the shared, deduplicated game catalog.
//
// Catalog rows are unique by normalized title; the UNIQUE constraint on
// normalized_title is the storage-level guarantee, with the consolidation
// engine's resolver cache acting purely as a fast path.
type CatalogGameRepository struct {
	db *sql.DB
}

// NewCatalogGameRepository creates a new CatalogGameRepository with the given database connection
func NewCatalogGameRepository(db *sql.DB) *CatalogGameRepository {
	return &CatalogGameRepository{db: db}
}

// Create inserts a new catalog row for the given shared metadata and returns it.
//
// A pre-existing row with the same normalized title surfaces as
// [shared.ErrAlreadyExists] via the unique constraint.
func (r *CatalogGameRepository) Create(data models.SharedGameData) (*models.CatalogGame, error) {
	if err := data.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	sequence, err := NextSequence(r.db, "catalog_games")
	if err != nil {
		return nil, fmt.Errorf("failed to generate sequence: %w", err)
	}

	now := time.Now()
	game := models.CatalogGame{
		SharedGameData:  data,
		ID:              shared.GenerateID(),
		Sequence:        sequence,
		NormalizedTitle: shared.NormalizeTitle(data.Title),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	categories, err := encodeCategories(data.Categories)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO catalog_games (
			id, sequence, title, normalized_title, year, min_players, max_players,
			play_time_min, play_time_max, box_art_path, description, categories,
			bgg_rating, bgg_rank, suggested_age, created_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		game.ID,
		game.Sequence,
		game.Title,
		game.NormalizedTitle,
		game.Year,
		game.MinPlayers,
		game.MaxPlayers,
		game.PlayTimeMin,
		game.PlayTimeMax,
		game.BoxArtPath,
		game.Description,
		categories,
		game.BGGRating,
		game.BGGRank,
		game.SuggestedAge,
		game.CreatedAt,
		game.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: catalog entry for %q", shared.ErrAlreadyExists, game.NormalizedTitle)
		}
		return nil, fmt.Errorf("failed to insert catalog game: %w", err)
	}

	return &game, nil
}

// Titles retrieves the id and display title of every catalog row.
func (r *CatalogGameRepository) Titles() ([]models.CatalogTitle, error) {
	rows, err := r.db.Query("SELECT id, title FROM catalog_games")
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog titles: %w", err)
	}
	defer rows.Close()

	var titles []models.CatalogTitle
	for rows.Next() {
		var t models.CatalogTitle
		if err := rows.Scan(&t.ID, &t.Title); err != nil {
			return nil, fmt.Errorf("failed to scan catalog title: %w", err)
		}
		titles = append(titles, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return titles, nil
}

// Get retrieves a catalog row by ID
func (r *CatalogGameRepository) Get(id string) (*models.CatalogGame, error) {
	query := `
		SELECT id, sequence, title, normalized_title, year, min_players, max_players,
			play_time_min, play_time_max, box_art_path, description, categories,
			bgg_rating, bgg_rank, suggested_age, created_at, updated_at
		FROM catalog_games
		WHERE id = ?
	`

	var (
		game         models.CatalogGame
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
	)

	err := r.db.QueryRow(query, id).Scan(
		&game.ID, &game.Sequence, &game.Title, &game.NormalizedTitle,
		&year, &minPlayers, &maxPlayers, &playTimeMin, &playTimeMax,
		&boxArtPath, &description, &categories, &bggRating, &bggRank,
		&suggestedAge, &game.CreatedAt, &game.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", shared.ErrGameNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog game: %w", err)
	}

	game.Categories, err = decodeCategories(categories)
	if err != nil {
		return nil, err
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

	return &game, nil
}

// Count returns the number of catalog rows.
func (r *CatalogGameRepository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM catalog_games").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count catalog games: %w", err)
	}
	return count, nil
}
