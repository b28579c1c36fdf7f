package tasks

import (
	"github.com/okhester/ludex/internal/models"
	"github.com/okhester/ludex/internal/shared"
)

// GameGroup collects the legacy records sharing one normalized title.
//
// Title keeps the original casing of the first record seen for the key.
// Every group built by [GroupByTitle] has at least one record, and every
// input record lands in exactly one group.
type GameGroup struct {
	Title           string
	NormalizedTitle string
	Records         []models.LegacyGame
}

// GroupByTitle partitions legacy records into groups sharing a normalized
// title, in first-occurrence order of each key. Total over any input,
// including the empty list.
func GroupByTitle(records []models.LegacyGame) []GameGroup {
	index := make(map[string]int, len(records))
	var groups []GameGroup

	for _, rec := range records {
		key := shared.NormalizeTitle(rec.Title)
		if i, ok := index[key]; ok {
			groups[i].Records = append(groups[i].Records, rec)
			continue
		}
		index[key] = len(groups)
		groups = append(groups, GameGroup{
			Title:           rec.Title,
			NormalizedTitle: key,
			Records:         []models.LegacyGame{rec},
		})
	}

	return groups
}
