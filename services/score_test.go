package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/momentum-app/momentum/models"
	"github.com/momentum-app/momentum/services"
)

func checkInPost(title string, upvoters, bookmarkers []uint) *models.Post {
	return &models.Post{Kind: models.PostKindCheckIn, Title: title, Upvoters: upvoters, Bookmarkers: bookmarkers}
}

func TestScoreCheckInTitles(t *testing.T) {
	cases := []struct {
		title string
		want  int
	}{
		{"Stay hydrated", 5},
		{"stay hydrated today", 5}, // case-insensitive prefix
		{"Everyday Meditation", 6},
		{"Morning Stretch", 3},
		{"  Morning Stretch  ", 3},
		{"Read a book", 3}, // unknown title falls back
		{"", 3},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, services.Score(checkInPost(tc.title, nil, nil)), "title %q", tc.title)
	}
}

func TestScoreManualPost(t *testing.T) {
	p := &models.Post{Kind: models.PostKindManual, Title: "How I stay consistent"}
	assert.Equal(t, 5, services.Score(p))
}

func TestScoreUpvotesAddOnePointEach(t *testing.T) {
	p := checkInPost("Stay hydrated", []uint{1, 2, 3}, nil)
	assert.Equal(t, 8, services.Score(p))

	// Downvotes never subtract.
	p.Downvoters = []uint{4, 5, 6, 7}
	assert.Equal(t, 8, services.Score(p))
}

func TestScoreGoodPostBonus(t *testing.T) {
	// Five upvotes trip the bonus: 5 base + 5 votes + 10 bonus.
	p := checkInPost("Stay hydrated", []uint{1, 2, 3, 4, 5}, nil)
	assert.Equal(t, 20, services.Score(p))

	// Three bookmarks alone also trip it.
	p = checkInPost("Morning Stretch", nil, []uint{1, 2, 3})
	assert.Equal(t, 13, services.Score(p))

	// Both thresholds met: bonus applies once.
	p = checkInPost("Morning Stretch", []uint{1, 2, 3, 4, 5}, []uint{1, 2, 3})
	assert.Equal(t, 18, services.Score(p))
}

func TestScoreBelowThresholds(t *testing.T) {
	p := checkInPost("Stay hydrated", []uint{1, 2, 3, 4}, []uint{1, 2})
	assert.Equal(t, 9, services.Score(p))
}
