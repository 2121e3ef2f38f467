package services_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentum-app/momentum/models"
	"github.com/momentum-app/momentum/services"
	"github.com/momentum-app/momentum/storage"
)

func seedPost(t *testing.T, store *storage.MemoryStore) *models.Post {
	t.Helper()
	emitter := services.NewTimelineEventEmitter(fixedClock{at: testInstant})
	post, err := emitter.Emit(1, models.PostKindManual, "Hydration tips", "drink before coffee", []string{"health"}, "")
	require.NoError(t, err)
	require.NoError(t, store.CreatePost(context.Background(), post))
	return post
}

func TestUpvoteToggle(t *testing.T) {
	store := newTestStore()
	ledger := services.NewEngagementLedger(store, fixedClock{at: testInstant})
	post := seedPost(t, store)
	ctx := context.Background()

	got, err := ledger.Upvote(ctx, post.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, []uint{2}, got.Upvoters)

	// Second upvote by the same user withdraws it.
	got, err = ledger.Upvote(ctx, post.ID, 2)
	require.NoError(t, err)
	assert.Empty(t, got.Upvoters)
}

func TestVoteSetsMutuallyExclusive(t *testing.T) {
	store := newTestStore()
	ledger := services.NewEngagementLedger(store, fixedClock{at: testInstant})
	post := seedPost(t, store)
	ctx := context.Background()

	_, err := ledger.Upvote(ctx, post.ID, 2)
	require.NoError(t, err)

	got, err := ledger.Downvote(ctx, post.ID, 2)
	require.NoError(t, err)
	assert.Empty(t, got.Upvoters)
	assert.Equal(t, []uint{2}, got.Downvoters)

	got, err = ledger.Upvote(ctx, post.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, []uint{2}, got.Upvoters)
	assert.Empty(t, got.Downvoters)
}

func TestBookmarkIndependentOfVotes(t *testing.T) {
	store := newTestStore()
	ledger := services.NewEngagementLedger(store, fixedClock{at: testInstant})
	post := seedPost(t, store)
	ctx := context.Background()

	_, err := ledger.Downvote(ctx, post.ID, 2)
	require.NoError(t, err)

	got, err := ledger.Bookmark(ctx, post.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, []uint{2}, got.Bookmarkers)
	assert.Equal(t, []uint{2}, got.Downvoters)

	got, err = ledger.Bookmark(ctx, post.ID, 2)
	require.NoError(t, err)
	assert.Empty(t, got.Bookmarkers)
	assert.Equal(t, []uint{2}, got.Downvoters)
}

func TestEngagementUnknownPost(t *testing.T) {
	ledger := services.NewEngagementLedger(newTestStore(), fixedClock{at: testInstant})
	ctx := context.Background()

	_, err := ledger.Upvote(ctx, "missing", 1)
	assert.ErrorIs(t, err, services.ErrPostNotFound)
	_, err = ledger.Comment(ctx, "missing", 1, "hello")
	assert.ErrorIs(t, err, services.ErrPostNotFound)
}

func TestComment(t *testing.T) {
	store := newTestStore()
	ledger := services.NewEngagementLedger(store, fixedClock{at: testInstant})
	post := seedPost(t, store)
	ctx := context.Background()

	comment, err := ledger.Comment(ctx, post.ID, 2, "  great tip  ")
	require.NoError(t, err)
	assert.Equal(t, "great tip", comment.Text)
	assert.Equal(t, post.ID, comment.PostID)
	assert.True(t, comment.CreatedAt.Equal(testInstant))

	got, err := store.GetPost(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, got.Comments, 1)
	assert.Equal(t, "great tip", got.Comments[0].Text)
}

func TestCommentEmptyText(t *testing.T) {
	store := newTestStore()
	ledger := services.NewEngagementLedger(store, fixedClock{at: testInstant})
	post := seedPost(t, store)

	_, err := ledger.Comment(context.Background(), post.ID, 2, "   ")
	assert.ErrorIs(t, err, services.ErrEmptyComment)
}

func TestConcurrentUpvotes(t *testing.T) {
	store := newTestStore()
	ledger := services.NewEngagementLedger(store, fixedClock{at: testInstant})
	post := seedPost(t, store)
	ctx := context.Background()

	const voters = 20
	var wg sync.WaitGroup
	for i := 1; i <= voters; i++ {
		wg.Add(1)
		go func(userID uint) {
			defer wg.Done()
			_, err := ledger.Upvote(ctx, post.ID, userID)
			require.NoError(t, err)
		}(uint(i))
	}
	wg.Wait()

	got, err := store.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, voters, got.Upvotes())
}
