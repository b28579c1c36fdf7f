package tasks

import "github.com/okhester/ludex/internal/models"

// Completeness weights. A field counts only when populated: non-nil, and
// additionally non-empty for description and categories.
const (
	weightYear         = 2
	weightMinPlayers   = 1
	weightMaxPlayers   = 1
	weightPlayTimeMin  = 1
	weightPlayTimeMax  = 1
	weightBoxArt       = 3
	weightDescription  = 3
	weightCategories   = 2
	weightBGGRating    = 2
	weightBGGRank      = 2
	weightSuggestedAge = 1
)

// completenessScore sums the weights of a record's populated metadata fields.
func completenessScore(g models.LegacyGame) int {
	score := 0
	if g.Year != nil {
		score += weightYear
	}
	if g.MinPlayers != nil {
		score += weightMinPlayers
	}
	if g.MaxPlayers != nil {
		score += weightMaxPlayers
	}
	if g.PlayTimeMin != nil {
		score += weightPlayTimeMin
	}
	if g.PlayTimeMax != nil {
		score += weightPlayTimeMax
	}
	if g.BoxArtPath != nil && *g.BoxArtPath != "" {
		score += weightBoxArt
	}
	if g.Description != nil && *g.Description != "" {
		score += weightDescription
	}
	if len(g.Categories) > 0 {
		score += weightCategories
	}
	if g.BGGRating != nil {
		score += weightBGGRating
	}
	if g.BGGRank != nil {
		score += weightBGGRank
	}
	if g.SuggestedAge != nil {
		score += weightSuggestedAge
	}
	return score
}

// SelectBest picks the most complete record of a group: highest completeness
// score, with the earliest creation timestamp breaking ties (oldest data is
// treated as most authoritative). Deterministic regardless of input order.
//
// records must be non-empty; groups built by [GroupByTitle] always are.
func SelectBest(records []models.LegacyGame) models.LegacyGame {
	best := records[0]
	if len(records) == 1 {
		return best
	}

	bestScore := completenessScore(best)
	for _, cand := range records[1:] {
		score := completenessScore(cand)
		if score > bestScore || (score == bestScore && cand.CreatedAt.Before(best.CreatedAt)) {
			best = cand
			bestScore = score
		}
	}

	return best
}
