package tasks

import "github.com/okhester/ludex/internal/models"

// Action identifies the outcome of migrating a single legacy record.
type Action string

const (
	// ActionCreatedCatalogEntry marks the record whose group created a new
	// catalog row. At most one record per group carries it.
	ActionCreatedCatalogEntry Action = "created_catalog_entry"
	// ActionReusedCatalogEntry marks the first successfully attached record
	// of a group that resolved to a pre-existing catalog row.
	ActionReusedCatalogEntry Action = "reused_catalog_entry"
	// ActionCreatedLibraryEntry marks the remaining records of a group whose
	// library rows were inserted.
	ActionCreatedLibraryEntry Action = "created_library_entry"
	// ActionSkipped marks records needing no write: either the library row
	// already existed or the record has no owning user.
	ActionSkipped Action = "skipped"
	// ActionFailed marks records whose group resolution or library insert failed.
	ActionFailed Action = "failed"
)

// MigrationResult is the outcome of migrating one legacy record. Created
// exactly once per record and never mutated afterwards.
type MigrationResult struct {
	LegacyGameID   string `json:"legacy_game_id"`
	Title          string `json:"title"`
	Action         Action `json:"action"`
	CatalogGameID  string `json:"catalog_game_id,omitempty"`
	LibraryEntryID string `json:"library_entry_id,omitempty"`
	Success        bool   `json:"success"`
	Error          string `json:"error,omitempty"`
}

// MigrationSummary aggregates a full consolidation run: counts plus the
// ordered per-record results, one per legacy row.
type MigrationSummary struct {
	TotalRecords          int               `json:"total_records"`
	UniqueGamesCreated    int               `json:"unique_games_created"`
	LibraryEntriesCreated int               `json:"library_entries_created"`
	Skipped               int               `json:"skipped"`
	Failed                int               `json:"failed"`
	Results               []MigrationResult `json:"results"`
}

// Succeeded reports whether the run completed without any failed record.
func (s *MigrationSummary) Succeeded() bool {
	return s.Failed == 0
}

func failedResult(rec models.LegacyGame, catalogID string, err error) MigrationResult {
	return MigrationResult{
		LegacyGameID:  rec.ID,
		Title:         rec.Title,
		Action:        ActionFailed,
		CatalogGameID: catalogID,
		Error:         err.Error(),
	}
}

func skippedResult(rec models.LegacyGame, catalogID string) MigrationResult {
	return MigrationResult{
		LegacyGameID:  rec.ID,
		Title:         rec.Title,
		Action:        ActionSkipped,
		CatalogGameID: catalogID,
		Success:       true,
	}
}

func createdResult(rec models.LegacyGame, action Action, catalogID, entryID string) MigrationResult {
	return MigrationResult{
		LegacyGameID:   rec.ID,
		Title:          rec.Title,
		Action:         action,
		CatalogGameID:  catalogID,
		LibraryEntryID: entryID,
		Success:        true,
	}
}
