package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/okhester/ludex/internal/formatter"
	"github.com/okhester/ludex/internal/models"
	"github.com/okhester/ludex/internal/shared"
	"golang.org/x/time/rate"
)

// BulkExportOpts contains configuration for bulk shelf exports.
type BulkExportOpts struct {
	Format     string  // Export format: json, csv, markdown, txt
	OutputDir  string  // Base output directory (default: shelf_export_{epoch})
	NumWorkers int     // Concurrent workers (default: 4)
	RateLimit  float64 // Shelf reads per second (default: unlimited)
}

// ShelfExportJob carries one user's assembled shelf to an export worker.
type ShelfExportJob struct {
	User  models.User
	Shelf *models.Shelf
}

// ShelfExportResult is the outcome of exporting a single user's shelf.
type ShelfExportResult struct {
	UserID  string
	Email   string
	Success bool
	Files   []string
	Error   error
}

// BulkExportResult contains all data from a bulk shelf export.
type BulkExportResult struct {
	TotalUsers        int
	SuccessfulExports int
	FailedExports     int
	OutputDirectory   string
	Results           []ShelfExportResult
	ManifestPath      string
}

// BuildShelf assembles a user's library view: every library row joined with
// its catalog entry.
func (e *CatalogEngine) BuildShelf(user models.User) (*models.Shelf, error) {
	entries, err := e.library.ListByUser(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load library entries: %w", err)
	}

	shelf := &models.Shelf{User: user, Items: make([]models.ShelfItem, 0, len(entries))}
	for _, entry := range entries {
		game, err := e.catalog.Get(entry.GameID)
		if err != nil {
			return nil, fmt.Errorf("failed to load catalog entry %s: %w", entry.GameID, err)
		}
		shelf.Items = append(shelf.Items, models.ShelfItem{Game: *game, Entry: entry})
	}

	return shelf, nil
}

// BulkExport exports the shelves of multiple users concurrently with rate
// limiting and progress tracking.
//
// Unlike the consolidation run, exports only read the store, so a worker
// pool is safe here. Partial failures are recorded per user and a manifest
// summarizing the export is written to the output directory.
func (e *CatalogEngine) BulkExport(
	ctx context.Context,
	prog chan<- ProgressUpdate,
	users []models.User,
	opts BulkExportOpts,
) (*BulkExportResult, error) {
	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("shelf_export_%d", time.Now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 4
	}
	if opts.NumWorkers > 8 {
		opts.NumWorkers = 8
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &BulkExportResult{
		TotalUsers:      len(users),
		OutputDirectory: opts.OutputDir,
		Results:         make([]ShelfExportResult, 0, len(users)),
	}

	var limiter *rate.Limiter
	if opts.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	}

	jobs := make(chan ShelfExportJob, len(users))
	results := make(chan ShelfExportResult, len(users))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go e.exportWorker(ctx, &wg, jobs, results, opts)
	}

	go func() {
		for i, user := range users {
			select {
			case <-ctx.Done():
				close(jobs)
				return
			default:
			}

			if limiter != nil {
				if err := limiter.Wait(ctx); err != nil {
					close(jobs)
					return
				}
			}

			e.sendProgress(prog, exportingShelfUpdate(i+1, len(users), user.Email))

			shelf, err := e.BuildShelf(user)
			if err != nil {
				results <- ShelfExportResult{
					UserID:  user.ID,
					Email:   user.Email,
					Success: false,
					Error:   fmt.Errorf("failed to build shelf: %w", err),
				}
				continue
			}

			jobs <- ShelfExportJob{User: user, Shelf: shelf}
		}
		close(jobs)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		result.Results = append(result.Results, res)

		if res.Success {
			result.SuccessfulExports++
			e.sendProgress(prog, exportCompletedUpdate(completed, len(users), res.Email, len(res.Files)))
		} else {
			result.FailedExports++
			e.sendProgress(prog, exportFailedUpdate(completed, len(users), res.Email, res.Error))
		}
	}

	manifestPath := filepath.Join(opts.OutputDir, "export_manifest.json")
	if err := writeExportManifest(result, opts.Format, manifestPath); err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath
	return result, nil
}

// exportWorker is a worker goroutine that exports shelves from the jobs channel.
func (e *CatalogEngine) exportWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	jobs <-chan ShelfExportJob,
	results chan<- ShelfExportResult,
	opts BulkExportOpts,
) {
	defer wg.Done()

	for job := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}

		results <- exportSingleShelf(job, opts)
	}
}

// exportSingleShelf writes a single shelf to the appropriate format.
func exportSingleShelf(j ShelfExportJob, opts BulkExportOpts) ShelfExportResult {
	result := ShelfExportResult{
		UserID:  j.User.ID,
		Email:   j.User.Email,
		Success: false,
		Files:   []string{},
	}

	base := filepath.Join(opts.OutputDir, j.User.ID)

	switch opts.Format {
	case "csv":
		csvRes, err := formatter.WriteCSVExport(j.Shelf, base)
		if err != nil {
			result.Error = fmt.Errorf("CSV export failed: %w", err)
			return result
		}
		result.Files = []string{csvRes.ShelfFile, csvRes.MetadataFile}
		result.Success = true

	case "markdown":
		mdRes, err := formatter.WriteMarkdownExport(j.Shelf, base)
		if err != nil {
			result.Error = fmt.Errorf("markdown export failed: %w", err)
			return result
		}
		result.Files = mdRes.Files
		result.Success = true

	case "txt":
		txtPath, err := formatter.WriteTextExport(j.Shelf, base+"_shelf.txt")
		if err != nil {
			result.Error = fmt.Errorf("text export failed: %w", err)
			return result
		}
		result.Files = []string{txtPath}
		result.Success = true

	case "json":
		fallthrough
	default:
		jsonPath := base + ".json"
		data, err := shared.MarshalJSON(j.Shelf, true)
		if err != nil {
			result.Error = fmt.Errorf("JSON marshal failed: %w", err)
			return result
		}
		if err := os.WriteFile(jsonPath, data, 0644); err != nil {
			result.Error = fmt.Errorf("JSON write failed: %w", err)
			return result
		}
		result.Files = []string{jsonPath}
		result.Success = true
	}
	return result
}

// exportManifest is the serializable form of a [BulkExportResult].
type exportManifest struct {
	GeneratedAt       time.Time             `json:"generated_at"`
	Format            string                `json:"format"`
	TotalUsers        int                   `json:"total_users"`
	SuccessfulExports int                   `json:"successful_exports"`
	FailedExports     int                   `json:"failed_exports"`
	Results           []exportManifestEntry `json:"results"`
}

type exportManifestEntry struct {
	UserID  string   `json:"user_id"`
	Email   string   `json:"email"`
	Success bool     `json:"success"`
	Files   []string `json:"files,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// writeExportManifest writes the export summary JSON alongside the exports.
func writeExportManifest(result *BulkExportResult, format, path string) error {
	manifest := exportManifest{
		GeneratedAt:       time.Now(),
		Format:            format,
		TotalUsers:        result.TotalUsers,
		SuccessfulExports: result.SuccessfulExports,
		FailedExports:     result.FailedExports,
		Results:           make([]exportManifestEntry, 0, len(result.Results)),
	}

	for _, res := range result.Results {
		entry := exportManifestEntry{
			UserID:  res.UserID,
			Email:   res.Email,
			Success: res.Success,
			Files:   res.Files,
		}
		if res.Error != nil {
			entry.Error = res.Error.Error()
		}
		manifest.Results = append(manifest.Results, entry)
	}

	data, err := shared.MarshalJSON(manifest, true)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	return nil
}
