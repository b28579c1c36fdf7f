package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/okhester/ludex/internal/models"
	"github.com/okhester/ludex/internal/shared"
)

var (
	_ list.Item = recordItem{}
)

// recordItem wraps [models.LegacyGame] to implement [list.Item].
type recordItem struct {
	game models.LegacyGame
}

func (i recordItem) FilterValue() string { return i.game.Title }
func (i recordItem) Title() string {
	if i.game.Year != nil {
		return fmt.Sprintf("%s (%d)", i.game.Title, *i.game.Year)
	}
	return i.game.Title
}
func (i recordItem) Description() string {
	desc := fmt.Sprintf("%s players", shared.FormatPlayerRange(i.game.MinPlayers, i.game.MaxPlayers))
	if !i.game.HasUser() {
		desc = fmt.Sprintf("%s • no owner", desc)
	}
	return desc
}
