package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/okhester/ludex/internal/models"
	"github.com/okhester/ludex/internal/tasks"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgRecordsFetched MsgKind = iota
	MsgProgressUpdate
	MsgMigrateComplete
)

// recordsPayload is the data carried by [MsgRecordsFetched]
type recordsPayload struct {
	records []models.LegacyGame
	err     error
}

// migratePayload is the data carried by [MsgMigrateComplete]
type migratePayload struct {
	summary *tasks.MigrationSummary
	err     error
}

// recordsFetchedMsg is the constructor for [MsgRecordsFetched]
func recordsFetchedMsg(records []models.LegacyGame, err error) Msg {
	return Msg{kind: MsgRecordsFetched, data: recordsPayload{records, err}}
}

// progressUpdateMsg is the constructor for [MsgProgressUpdate]
func progressUpdateMsg(update tasks.ProgressUpdate) Msg {
	return Msg{kind: MsgProgressUpdate, data: update}
}

// migrateCompleteMsg is the constructor for [MsgMigrateComplete]
func migrateCompleteMsg(summary *tasks.MigrationSummary, err error) Msg {
	return Msg{kind: MsgMigrateComplete, data: migratePayload{summary, err}}
}
