package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentum-app/momentum/models"
	"github.com/momentum-app/momentum/services"
)

func TestRankFoldsPerAuthor(t *testing.T) {
	posts := []models.Post{
		{AuthorID: 1, Kind: models.PostKindManual},                                // 5
		{AuthorID: 1, Kind: models.PostKindCheckIn, Title: "Morning Stretch"},     // 3
		{AuthorID: 2, Kind: models.PostKindCheckIn, Title: "Everyday Meditation"}, // 6
	}
	names := map[uint]string{1: "alice", 2: "bob"}

	entries := services.Rank(posts, names)
	require.Len(t, entries, 2)

	assert.Equal(t, uint(1), entries[0].AuthorID)
	assert.Equal(t, 8, entries[0].Points)
	assert.Equal(t, 1, entries[0].Rank)

	assert.Equal(t, uint(2), entries[1].AuthorID)
	assert.Equal(t, 6, entries[1].Points)
	assert.Equal(t, 2, entries[1].Rank)
}

func TestRankTieBreakByName(t *testing.T) {
	posts := []models.Post{
		{AuthorID: 7, Kind: models.PostKindManual},
		{AuthorID: 3, Kind: models.PostKindManual},
	}
	names := map[uint]string{7: "Adam", 3: "zoe"}

	entries := services.Rank(posts, names)
	require.Len(t, entries, 2)

	// Equal points order by lowercase name.
	assert.Equal(t, "Adam", entries[0].DisplayName)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, "zoe", entries[1].DisplayName)
	assert.Equal(t, 2, entries[1].Rank)
}

func TestRankTieBreakByAuthorID(t *testing.T) {
	posts := []models.Post{
		{AuthorID: 9, Kind: models.PostKindManual},
		{AuthorID: 4, Kind: models.PostKindManual},
	}
	// Neither id resolves, both fall back to the same label.
	entries := services.Rank(posts, map[uint]string{})
	require.Len(t, entries, 2)

	assert.Equal(t, services.AnonymousName, entries[0].DisplayName)
	assert.Equal(t, uint(4), entries[0].AuthorID)
	assert.Equal(t, uint(9), entries[1].AuthorID)
}

func TestRankDeterministic(t *testing.T) {
	posts := []models.Post{
		{AuthorID: 1, Kind: models.PostKindManual, Upvoters: []uint{2, 3}},
		{AuthorID: 2, Kind: models.PostKindCheckIn, Title: "Stay hydrated"},
		{AuthorID: 3, Kind: models.PostKindManual},
		{AuthorID: 2, Kind: models.PostKindManual, Bookmarkers: []uint{1, 3, 4}},
	}
	names := map[uint]string{1: "alice", 2: "bob", 3: "carol"}

	first := services.Rank(posts, names)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, services.Rank(posts, names))
	}
}

func TestRankingServiceTotal(t *testing.T) {
	store := newTestStore()
	tracker := newTestTracker(store)
	ctx := context.Background()

	// bob checks in on Morning Stretch, then earns the good-post bonus.
	res, err := tracker.CheckIn(ctx, 2, 2, "stretched for 10 minutes", "", testInstant)
	require.NoError(t, err)
	require.True(t, res.Accepted)

	ledger := services.NewEngagementLedger(store, fixedClock{at: testInstant})
	for _, voter := range []uint{1, 3, 4, 5, 6} {
		_, err := ledger.Upvote(ctx, res.Post.ID, voter)
		require.NoError(t, err)
	}

	ranking := services.NewRankingService(store)
	entries, err := ranking.Total(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	// 3 base + 5 upvotes + 10 bonus
	assert.Equal(t, uint(2), entries[0].AuthorID)
	assert.Equal(t, "bob", entries[0].DisplayName)
	assert.Equal(t, 18, entries[0].Points)
	assert.Equal(t, 1, entries[0].Rank)
}

func TestRankingServiceEmpty(t *testing.T) {
	ranking := services.NewRankingService(newTestStore())
	entries, err := ranking.Total(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}
