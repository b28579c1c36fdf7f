// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for catalog consolidation:
//  1. [RecordListView] : Browse the legacy records pending consolidation
//  2. [ConfirmView] : Confirm the consolidation run
//  3. [MigrateView] : Monitor real-time progress updates
//  4. [ResultView] : Display the run summary and failed records
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// Progress updates flow through a channel from the CatalogEngine, providing non-blocking status reporting during the run.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, y/n, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
