package tasks

import (
	"context"
	"errors"
	"fmt"

	"github.com/okhester/ludex/internal/models"
	"github.com/okhester/ludex/internal/shared"
	"golang.org/x/time/rate"
)

// LegacySource reads the flat pre-split games table.
type LegacySource interface {
	// HasLegacyShape reports whether the source table still has its
	// pre-split shape. False means the store is already consolidated.
	HasLegacyShape() (bool, error)
	// ListOrderedByTitle retrieves every legacy row ordered by title.
	ListOrderedByTitle() ([]models.LegacyGame, error)
}

// CatalogStore reads and writes the shared deduplicated catalog.
type CatalogStore interface {
	// Titles retrieves the id and display title of every catalog row.
	Titles() ([]models.CatalogTitle, error)
	// Create inserts a catalog row, surfacing [shared.ErrAlreadyExists]
	// when one with the same normalized title is already present.
	Create(data models.SharedGameData) (*models.CatalogGame, error)
	// Get retrieves a catalog row by id.
	Get(id string) (*models.CatalogGame, error)
}

// LibraryStore reads and writes the per-user library join rows.
type LibraryStore interface {
	// Ready reports whether the join table exists.
	Ready() (bool, error)
	// Create inserts a library row, surfacing [shared.ErrAlreadyExists]
	// when the (user, game) pair is already linked.
	Create(entry *models.LibraryGame) error
	// ListByUser retrieves a user's library rows.
	ListByUser(userID string) ([]models.LibraryGame, error)
}

// MigrationEngine defines the catalog consolidation operations.
type MigrationEngine interface {
	// Run performs a full consolidation of the legacy games table into the
	// shared catalog and per-user library rows, producing one result per
	// legacy record.
	Run(ctx context.Context, progress chan<- ProgressUpdate) (*MigrationSummary, error)
}

// CatalogEngine implements [MigrationEngine] over the backing store
// repositories. A CatalogEngine is single-use-per-run but reusable across
// runs; the resolver cache is created fresh inside Run.
type CatalogEngine struct {
	legacy  LegacySource
	catalog CatalogStore
	library LibraryStore
	limiter *rate.Limiter
}

// EngineOpts contains dependencies and settings for creating a [CatalogEngine].
type EngineOpts struct {
	Legacy  LegacySource
	Catalog CatalogStore
	Library LibraryStore
	// WriteRate limits store writes to this many per second. Zero disables
	// throttling, appropriate for local databases.
	WriteRate float64
}

// NewCatalogEngine creates a new CatalogEngine with the provided stores.
func NewCatalogEngine(opts EngineOpts) *CatalogEngine {
	var limiter *rate.Limiter
	if opts.WriteRate > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.WriteRate), 1)
	}

	return &CatalogEngine{
		legacy:  opts.Legacy,
		catalog: opts.Catalog,
		library: opts.Library,
		limiter: limiter,
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *CatalogEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full or closed, skip this update
	}
}

// Run performs a full catalog consolidation.
//
// Fatal preconditions (missing join table, unreadable source) return an
// error before any write. Everything else is absorbed into the summary:
// a catalog failure fails its whole group, a library failure fails only its
// record, pre-existing rows and user-less records are successful skips. The
// summary always holds exactly one result per fetched legacy record.
func (e *CatalogEngine) Run(ctx context.Context, progress chan<- ProgressUpdate) (*MigrationSummary, error) {
	if e.legacy == nil || e.catalog == nil || e.library == nil {
		return nil, fmt.Errorf("%w: engine stores not initialized", shared.ErrInvalidInput)
	}

	// Preflight: the destination must exist before anything is read.
	e.sendProgress(progress, preflightUpdate())

	ready, err := e.library.Ready()
	if err != nil {
		return nil, fmt.Errorf("failed to check library schema: %w", err)
	}
	if !ready {
		return nil, fmt.Errorf("%w: library_games table is missing, run 'ludex setup database' first", shared.ErrSchemaNotReady)
	}

	legacyShape, err := e.legacy.HasLegacyShape()
	if err != nil {
		return nil, fmt.Errorf("failed to inspect source shape: %w", err)
	}

	summary := &MigrationSummary{Results: []MigrationResult{}}
	if !legacyShape {
		// Already consolidated: an idempotent no-op.
		e.sendProgress(progress, summaryUpdate(summary))
		return summary, nil
	}

	e.sendProgress(progress, fetchRecordsUpdate())
	records, err := e.legacy.ListOrderedByTitle()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch legacy records: %w", err)
	}

	summary.TotalRecords = len(records)
	if len(records) == 0 {
		e.sendProgress(progress, summaryUpdate(summary))
		return summary, nil
	}

	groups := GroupByTitle(records)
	e.sendProgress(progress, groupRecordsUpdate(len(records), len(groups)))

	resolver := NewResolver(e.catalog, e.limiter)

	for i, group := range groups {
		e.sendProgress(progress, resolveGroupUpdate(i+1, len(groups), group))

		best := SelectBest(group.Records)
		catalogID, isNew, err := resolver.ResolveOrCreate(ctx, models.SharedDataFrom(best))
		if err != nil {
			// Fail-fast within the group; the run continues with the next one.
			for _, rec := range group.Records {
				result := failedResult(rec, "", err)
				summary.Failed++
				summary.Results = append(summary.Results, result)
				e.sendProgress(progress, recordResultUpdate(result))
			}
			continue
		}
		if isNew {
			summary.UniqueGamesCreated++
		}

		// The first record attached in the group carries the catalog-level
		// action; the rest record plain library-entry creation.
		catalogAction := ActionReusedCatalogEntry
		if isNew {
			catalogAction = ActionCreatedCatalogEntry
		}

		for _, rec := range group.Records {
			result := e.attach(ctx, rec, catalogID, catalogAction)
			switch result.Action {
			case ActionFailed:
				summary.Failed++
			case ActionSkipped:
				summary.Skipped++
			default:
				summary.LibraryEntriesCreated++
				catalogAction = ActionCreatedLibraryEntry
			}
			summary.Results = append(summary.Results, result)
			e.sendProgress(progress, recordResultUpdate(result))
		}
	}

	e.sendProgress(progress, summaryUpdate(summary))
	return summary, nil
}

// attach writes the library row linking one legacy record's user to the
// resolved catalog id, mapping the outcome to a [MigrationResult].
func (e *CatalogEngine) attach(ctx context.Context, rec models.LegacyGame, catalogID string, action Action) MigrationResult {
	if !rec.HasUser() {
		// Pre-migration rows not yet associated with any user get no
		// library entry.
		return skippedResult(rec, catalogID)
	}

	if e.limiter != nil {
		if err := e.limiter.Wait(ctx); err != nil {
			return failedResult(rec, catalogID, err)
		}
	}

	entry := &models.LibraryGame{
		UserID:    *rec.UserID,
		GameID:    catalogID,
		PlayCount: rec.PlayCount,
		Rating:    rec.Rating,
		Review:    rec.Review,
	}

	err := e.library.Create(entry)
	if errors.Is(err, shared.ErrAlreadyExists) {
		return skippedResult(rec, catalogID)
	}
	if err != nil {
		return failedResult(rec, catalogID, err)
	}

	return createdResult(rec, action, catalogID, entry.ID)
}
