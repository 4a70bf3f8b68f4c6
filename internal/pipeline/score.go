package pipeline

import (
	"sort"
	"strings"

	"github.com/jimezsa/jobradar/internal/models"
)

// Score counts the preferred keywords present in the posting's title and
// company. Each keyword adds at most one point.
func Score(posting models.Posting, preferred []string) int {
	if len(preferred) == 0 {
		return 0
	}
	text := strings.ToLower(posting.Position + " " + posting.Company)
	score := 0
	for _, keyword := range preferred {
		if strings.Contains(text, strings.ToLower(keyword)) {
			score++
		}
	}
	return score
}

func ScoreAll(postings []models.Posting, preferred []string) []models.ScoredPosting {
	scored := make([]models.ScoredPosting, 0, len(postings))
	for _, posting := range postings {
		scored = append(scored, models.ScoredPosting{
			Posting:        posting,
			RelevanceScore: Score(posting, preferred),
		})
	}
	return scored
}

// Rank orders by descending score. Equal scores keep their current order.
func Rank(scored []models.ScoredPosting) {
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].RelevanceScore > scored[j].RelevanceScore
	})
}
