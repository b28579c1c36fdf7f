package main

import (
	"context"
	"fmt"

	"github.com/okhester/ludex/internal/formatter"
	"github.com/okhester/ludex/internal/repositories"
	"github.com/okhester/ludex/internal/shared"
	"github.com/okhester/ludex/internal/tasks"
	"github.com/urfave/cli/v3"
)

// LibraryExport exports one user's shelf, or every user's with --all.
func (r *Runner) LibraryExport(ctx context.Context, cmd *cli.Command) error {
	email := cmd.String("email")
	format := cmd.String("format")
	output := cmd.String("output")
	all := cmd.Bool("all")

	if !all && email == "" {
		return fmt.Errorf("%w: either --email or --all must be provided", shared.ErrMissingArgument)
	}
	if all && email != "" {
		return fmt.Errorf("%w: cannot specify both --email and --all", shared.ErrInvalidArgument)
	}

	db, cleanup, err := r.connect()
	if err != nil {
		return err
	}
	defer cleanup()

	engine := r.buildEngine(db)
	users := repositories.NewUserRepository(db)

	if all {
		return r.exportAllShelves(ctx, cmd, engine, users, format, output)
	}

	user, err := users.GetByEmail(email)
	if err != nil {
		return err
	}

	shelf, err := engine.BuildShelf(*user)
	if err != nil {
		return err
	}

	r.logger.Info("exporting shelf", "user", user.Email, "games", len(shelf.Items), "format", format)

	switch format {
	case "csv":
		result, err := formatter.WriteCSVExport(shelf, output)
		if err != nil {
			return err
		}
		r.writePlain("✓ Exported shelf to %s (metadata: %s)\n", result.ShelfFile, result.MetadataFile)
	case "markdown":
		result, err := formatter.WriteMarkdownExport(shelf, output)
		if err != nil {
			return err
		}
		r.writePlain("✓ Exported shelf to %s\n", result.Directory)
	case "txt":
		path, err := formatter.WriteTextExport(shelf, output)
		if err != nil {
			return err
		}
		r.writePlain("✓ Exported shelf to %s\n", path)
	case "json":
		return r.writeJSON(shelf, true)
	default:
		return fmt.Errorf("%w: unknown format '%s' (expected json, csv, markdown, or txt)", shared.ErrInvalidFlag, format)
	}

	return nil
}

// exportAllShelves runs the concurrent bulk export across every user.
func (r *Runner) exportAllShelves(
	ctx context.Context,
	cmd *cli.Command,
	engine *tasks.CatalogEngine,
	users *repositories.UserRepository,
	format, output string,
) error {
	list, err := users.List()
	if err != nil {
		return err
	}
	if len(list) == 0 {
		r.writePlain("No users to export.\n")
		return nil
	}

	progressCh := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			r.writePlain("%s\n", update.Message)
		}
	}()

	result, err := engine.BulkExport(ctx, progressCh, list, tasks.BulkExportOpts{
		Format:     format,
		OutputDir:  output,
		NumWorkers: int(cmd.Int("workers")),
		RateLimit:  cmd.Float64("rate"),
	})
	close(progressCh)
	<-done

	if err != nil {
		return err
	}

	r.writePlain("\n")
	r.writePlainHeader("Bulk Export Complete!")
	r.writePlain("Users: %d\n", result.TotalUsers)
	r.writePlain("Succeeded: %d\n", result.SuccessfulExports)
	r.writePlain("Failed: %d\n", result.FailedExports)
	r.writePlain("Output: %s\n", result.OutputDirectory)
	r.writePlain("Manifest: %s\n", result.ManifestPath)

	if result.FailedExports > 0 {
		r.writePlain("\nFailed exports:\n")
		for _, res := range result.Results {
			if !res.Success {
				r.writePlain("  - %s: %v\n", res.Email, res.Error)
			}
		}
		return cli.Exit("bulk export completed with failures", 1)
	}

	return nil
}

// libraryCommand handles shelf export operations.
func libraryCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "library",
		Usage: "Work with consolidated user libraries",
		Commands: []*cli.Command{
			{
				Name:  "export",
				Usage: "Export a user's shelf (or all shelves with --all)",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "email",
						Usage: "Email of the user to export",
					},
					&cli.BoolFlag{
						Name:  "all",
						Usage: "Export every user's shelf",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format (json, csv, markdown, txt)",
						Value:   "json",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output path (base filename, or directory with --all)",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Concurrent export workers with --all",
						Value: 4,
					},
					&cli.Float64Flag{
						Name:  "rate",
						Usage: "Shelf reads per second with --all (0 = unlimited)",
					},
				},
				Action: r.LibraryExport,
			},
		},
	}
}
