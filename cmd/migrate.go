package main

import (
	"context"

	"github.com/okhester/ludex/internal/repositories"
	"github.com/okhester/ludex/internal/tasks"
	"github.com/urfave/cli/v3"
)

// MigrateRun runs the full catalog consolidation: legacy records are grouped
// by title, merged into the shared catalog, and linked back to their owners.
func (r *Runner) MigrateRun(ctx context.Context, cmd *cli.Command) error {
	asJSON := cmd.Bool("json")

	db, cleanup, err := r.connect()
	if err != nil {
		return err
	}
	defer cleanup()

	engine := r.buildEngine(db)

	r.logger.Info("starting catalog consolidation", "database", r.config.Database.Path)
	if !asJSON {
		r.writePlain("Starting catalog consolidation...\n\n")
	}

	// Progress channel and goroutine to handle updates
	progressCh := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			if asJSON {
				continue
			}
			switch update.Phase {
			case tasks.Preflight, tasks.FetchRecords:
				r.writePlain("📥 %s\n", update.Message)
			case tasks.GroupRecords:
				r.writePlain("🗂  %s\n", update.Message)
			case tasks.ResolveGroup:
				r.writePlain("\n🔍 %s\n", update.Message)
			case tasks.WriteEntry:
				r.writePlain("   %s\n", update.Message)
			}
		}
	}()

	summary, err := engine.Run(ctx, progressCh)
	close(progressCh)
	<-done

	if err != nil {
		return err
	}

	if asJSON {
		if err := r.writeJSON(summary, true); err != nil {
			return err
		}
	} else {
		r.writePlain("\n")
		r.writePlainHeader("Consolidation Complete!")
		r.writePlain("Records processed: %d\n", summary.TotalRecords)
		r.writePlain("Catalog entries created: %d\n", summary.UniqueGamesCreated)
		r.writePlain("Library entries created: %d\n", summary.LibraryEntriesCreated)
		r.writePlain("Skipped: %d\n", summary.Skipped)
		r.writePlain("Failed: %d\n", summary.Failed)

		if summary.Failed > 0 {
			r.writePlain("\nFailed records:\n")
			for _, res := range summary.Results {
				if !res.Success {
					r.writePlain("  - %s (%s): %s\n", res.Title, res.LegacyGameID, res.Error)
				}
			}
		}
	}

	if !summary.Succeeded() {
		return cli.Exit("consolidation completed with failures", 1)
	}

	return nil
}

// migrationStatus is the report printed by MigrateStatus.
type migrationStatus struct {
	SchemaReady    bool `json:"schema_ready"`
	LegacyShape    bool `json:"legacy_shape"`
	LegacyRecords  int  `json:"legacy_records"`
	CatalogGames   int  `json:"catalog_games"`
	LibraryEntries int  `json:"library_entries"`
}

// MigrateStatus reports whether the database still carries the legacy shape
// and how much data sits on each side of the split.
func (r *Runner) MigrateStatus(ctx context.Context, cmd *cli.Command) error {
	asJSON := cmd.Bool("json")

	db, cleanup, err := r.connect()
	if err != nil {
		return err
	}
	defer cleanup()

	legacy := repositories.NewLegacyGameRepository(db)
	catalog := repositories.NewCatalogGameRepository(db)
	library := repositories.NewLibraryGameRepository(db)

	var status migrationStatus

	if status.SchemaReady, err = library.Ready(); err != nil {
		return err
	}
	if status.LegacyShape, err = legacy.HasLegacyShape(); err != nil {
		return err
	}
	if status.LegacyShape {
		if status.LegacyRecords, err = legacy.Count(); err != nil {
			return err
		}
	}
	if status.SchemaReady {
		if status.CatalogGames, err = catalog.Count(); err != nil {
			return err
		}
		if status.LibraryEntries, err = library.Count(); err != nil {
			return err
		}
	}

	if asJSON {
		return r.writeJSON(status, true)
	}

	r.writePlainHeader("Migration Status")
	if !status.SchemaReady {
		r.writePlain("Schema: not ready (run 'ludex setup database')\n")
		return nil
	}

	if status.LegacyShape {
		r.writePlain("Legacy records pending: %d\n", status.LegacyRecords)
	} else {
		r.writePlain("Legacy shape: absent (already consolidated)\n")
	}
	r.writePlain("Catalog games: %d\n", status.CatalogGames)
	r.writePlain("Library entries: %d\n", status.LibraryEntries)
	return nil
}

// migrateCommand handles catalog consolidation operations.
func migrateCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Consolidate the legacy per-user catalog into the shared library",
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Run the full consolidation",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Print the run summary as JSON",
					},
				},
				Action: r.MigrateRun,
			},
			{
				Name:  "status",
				Usage: "Show pending legacy records and catalog counts",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Print the status as JSON",
					},
				},
				Action: r.MigrateStatus,
			},
			{
				Name:   "ui",
				Usage:  "Run the consolidation interactively",
				Action: r.TUI,
			},
		},
	}
}
