package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/okhester/ludex/internal/models"
	"github.com/okhester/ludex/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	RecordListView ViewState = iota
	ConfirmView
	MigrateView
	ResultView
)

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	view         ViewState
	legacy       tasks.LegacySource
	engine       *tasks.CatalogEngine
	width        int
	height       int
	recordList   list.Model
	records      []models.LegacyGame
	progressChan chan tasks.ProgressUpdate
	progress     tasks.ProgressUpdate
	summary      *tasks.MigrationSummary
	err          error
	help         help.Model
	keys         keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, legacy tasks.LegacySource, engine *tasks.CatalogEngine) *Model {
	return &Model{
		ctx:    ctx,
		view:   RecordListView,
		legacy: legacy,
		engine: engine,
		help:   help.New(),
		keys:   newKeyMap(),
	}
}

// Init initializes the TUI by fetching the pending legacy records.
func (m *Model) Init() tea.Cmd {
	return m.fetchRecords()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.recordList.Width() == 0 {
			m.recordList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case RecordListView:
			return m.handleRecordListKeys(msg)
		case ConfirmView:
			return m.handleConfirmKeys(msg)
		case ResultView:
			return m.handleResultKeys(msg)
		}

	case Msg:
		return m.handleAppMsg(msg)
	}

	return m.updateLists(msg)
}

// handleAppMsg dispatches the application [Msg] union.
func (m *Model) handleAppMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgRecordsFetched:
		payload := msg.data.(recordsPayload)
		if payload.err != nil {
			m.err = payload.err
			return m, tea.Quit
		}
		m.records = payload.records
		items := make([]list.Item, len(payload.records))
		for i, rec := range payload.records {
			items[i] = recordItem{game: rec}
		}
		m.recordList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.recordList.Title = "Legacy Records"
		m.recordList.SetSize(m.width-4, m.height-8)
		return m, nil

	case MsgProgressUpdate:
		m.progress = msg.data.(tasks.ProgressUpdate)
		return m, m.waitForProgress()

	case MsgMigrateComplete:
		payload := msg.data.(migratePayload)
		m.summary = payload.summary
		m.err = payload.err
		m.view = ResultView
		return m, nil
	}

	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil && m.view != ResultView {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case RecordListView:
		return m.renderRecordList()
	case ConfirmView:
		return m.renderConfirm()
	case MigrateView:
		return m.renderMigrate()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

func (m *Model) handleRecordListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "enter":
		if len(m.records) > 0 {
			m.view = ConfirmView
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.recordList, cmd = m.recordList.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "n", "esc":
		m.view = RecordListView
		return m, nil
	case "y":
		m.view = MigrateView
		return m, m.startMigration()
	}
	return m, nil
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "r":
		m.view = RecordListView
		m.summary = nil
		m.err = nil
		return m, m.fetchRecords()
	}
	return m, nil
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.view == RecordListView {
		m.recordList, cmd = m.recordList.Update(msg)
	}
	return m, cmd
}

func (m *Model) fetchRecords() tea.Cmd {
	return func() tea.Msg {
		records, err := m.legacy.ListOrderedByTitle()
		return recordsFetchedMsg(records, err)
	}
}

func (m *Model) startMigration() tea.Cmd {
	m.progressChan = make(chan tasks.ProgressUpdate, 50)

	go func() {
		summary, err := m.engine.Run(m.ctx, m.progressChan)
		m.summary = summary
		m.err = err
		close(m.progressChan)
	}()

	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	return func() tea.Msg {
		if m.progressChan == nil {
			return migrateCompleteMsg(m.summary, m.err)
		}

		update, ok := <-m.progressChan
		if !ok {
			m.progressChan = nil
			return migrateCompleteMsg(m.summary, m.err)
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) renderRecordList() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.recordList.View(), helpView)
}

func (m *Model) renderConfirm() string {
	title := styles.title.Render(fmt.Sprintf("Consolidate %d legacy records into the shared catalog?", len(m.records)))
	info := "\nDuplicate titles are merged, keeping the most complete record.\nUser ratings, reviews, and play counts are preserved.\n"

	helpKeys := []key.Binding{m.keys.yes, m.keys.no, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n%s", title, info, helpView)
}

func (m *Model) renderMigrate() string {
	title := styles.title.Render("Consolidating Catalog")

	var phase string
	switch m.progress.Phase {
	case tasks.Preflight:
		phase = "Checking schema..."
	case tasks.FetchRecords:
		phase = "Fetching legacy records..."
	case tasks.GroupRecords:
		phase = "Grouping records by title..."
	case tasks.ResolveGroup:
		phase = fmt.Sprintf("Resolving groups (%d/%d)", m.progress.Step, m.progress.Total)
	case tasks.WriteEntry:
		phase = fmt.Sprintf("Writing library entries (%d/%d)", m.progress.Step, m.progress.Total)
	case tasks.Summarize:
		phase = "Summarizing..."
	default:
		phase = "Processing..."
	}

	return fmt.Sprintf("%s\n\n%s\n%s", title, phase, m.progress.Message)
}

func (m *Model) renderResult() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Consolidation failed: %v\n\nPress r to retry, q to quit", m.err))
	}

	if m.summary == nil {
		return styles.err.Render("No summary available\n\nPress r to retry, q to quit")
	}

	title := styles.ok.Render("✓ Consolidation Complete!")
	info := fmt.Sprintf(
		"\nRecords processed: %d\nCatalog entries created: %d\nLibrary entries created: %d\nSkipped: %d",
		m.summary.TotalRecords,
		m.summary.UniqueGamesCreated,
		m.summary.LibraryEntriesCreated,
		m.summary.Skipped,
	)

	var failed string
	if m.summary.Failed > 0 {
		failed = fmt.Sprintf("\n\n%s", styles.warn.Render(fmt.Sprintf("Failed %d records:", m.summary.Failed)))
		for _, res := range m.summary.Results {
			if !res.Success {
				failed += fmt.Sprintf("\n  • %s (%s)", res.Title, res.LegacyGameID)
			}
		}
	}

	helpKeys := []key.Binding{m.keys.restart, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s%s\n\n%s", title, info, failed, helpView)
}
