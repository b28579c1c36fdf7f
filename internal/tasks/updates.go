package tasks

import "fmt"

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	Preflight Phase = iota
	FetchRecords
	GroupRecords
	ResolveGroup
	WriteEntry
	Summarize
	ExportShelves
)

func (p Phase) String() string {
	switch p {
	case Preflight:
		return "preflight"
	case FetchRecords:
		return "fetch_records"
	case GroupRecords:
		return "group_records"
	case ResolveGroup:
		return "resolve_group"
	case WriteEntry:
		return "write_entry"
	case Summarize:
		return "summarize"
	case ExportShelves:
		return "export_shelves"
	default:
		return ""
	}
}

func preflightUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   Preflight,
		Step:    1,
		Total:   1,
		Message: "Checking store schema...",
	}
}

func fetchRecordsUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchRecords,
		Step:    1,
		Total:   1,
		Message: "Fetching legacy game records...",
	}
}

func groupRecordsUpdate(records, groups int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   GroupRecords,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Grouped %d records into %d distinct titles", records, groups),
	}
}

func resolveGroupUpdate(step, total int, group GameGroup) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ResolveGroup,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s (%d records)", step, total, group.Title, len(group.Records)),
		Data:    group,
	}
}

func recordResultUpdate(result MigrationResult) ProgressUpdate {
	marker := "✓"
	if !result.Success {
		marker = "✗"
	} else if result.Action == ActionSkipped {
		marker = "↻"
	}

	message := fmt.Sprintf("  %s %s (%s)", marker, result.Title, result.Action)
	if result.Error != "" {
		message = fmt.Sprintf("%s: %s", message, result.Error)
	}

	return ProgressUpdate{
		Phase:   WriteEntry,
		Step:    1,
		Total:   1,
		Message: message,
		Data:    result,
	}
}

func summaryUpdate(summary *MigrationSummary) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Summarize,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Processed %d records: %d catalog entries created, %d library entries, %d skipped, %d failed",
			summary.TotalRecords, summary.UniqueGamesCreated, summary.LibraryEntriesCreated, summary.Skipped, summary.Failed),
		Data: summary,
	}
}

func exportingShelfUpdate(step, total int, email string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportShelves,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Exporting shelf: %s...", step, total, email),
	}
}

func exportCompletedUpdate(step, total int, email string, filesCount int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportShelves,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s (%d files)", step, total, email, filesCount),
	}
}

func exportFailedUpdate(step, total int, email string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportShelves,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, email, err),
	}
}
