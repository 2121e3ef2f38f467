package services

import (
	"strings"

	"github.com/momentum-app/momentum/models"
)

// Scoring rules. One canonical rule set: base points by kind, one point per
// distinct upvoter (downvotes never subtract), and a single good-post bonus
// once either popularity threshold is met.
const (
	manualBasePoints  = 5
	checkInBasePoints = 3 // fallback for titles outside the keyword table

	goodPostBonus             = 10
	goodPostUpvoteThreshold   = 5
	goodPostBookmarkThreshold = 3
)

// checkInTitleScores maps well-known habit titles to their base points via
// case-insensitive prefix match.
var checkInTitleScores = []struct {
	prefix string
	points int
}{
	{"stay hydrated", 5},
	{"everyday meditation", 6},
	{"morning stretch", 3},
}

// Score maps one post and its engagement snapshot to a point total. It is
// pure: the ranking fold calls it repeatedly over a snapshot without any
// state changing underneath. The result is never negative.
func Score(p *models.Post) int {
	var points int
	switch p.Kind {
	case models.PostKindCheckIn:
		points = checkInTitlePoints(p.Title)
	case models.PostKindManual:
		points = manualBasePoints
	}

	points += len(p.Upvoters)

	if len(p.Upvoters) >= goodPostUpvoteThreshold || len(p.Bookmarkers) >= goodPostBookmarkThreshold {
		points += goodPostBonus
	}

	return points
}

func checkInTitlePoints(title string) int {
	title = strings.ToLower(strings.TrimSpace(title))
	for _, entry := range checkInTitleScores {
		if strings.HasPrefix(title, entry.prefix) {
			return entry.points
		}
	}
	return checkInBasePoints
}
