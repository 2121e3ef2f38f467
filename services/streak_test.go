package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentum-app/momentum/models"
	"github.com/momentum-app/momentum/services"
)

func TestCheckInFirstTime(t *testing.T) {
	store := newTestStore()
	tracker := newTestTracker(store)

	res, err := tracker.CheckIn(context.Background(), 1, 1, "drank 2L today", "", testInstant)
	require.NoError(t, err)

	assert.True(t, res.Accepted)
	assert.Equal(t, 1, res.Membership.CurrentStreak)
	require.NotNil(t, res.Membership.LastCheckInAt)
	assert.True(t, res.Membership.LastCheckInAt.Equal(testInstant))
	assert.Equal(t, "drank 2L today", res.Membership.LastNote)

	require.NotNil(t, res.Post)
	assert.Equal(t, models.PostKindCheckIn, res.Post.Kind)
	assert.Equal(t, "Stay hydrated", res.Post.Title)
	assert.Equal(t, "drank 2L today", res.Post.Body)
	require.NotNil(t, res.Post.ChallengeID)
	assert.Equal(t, uint(1), *res.Post.ChallengeID)

	posts, err := store.ListPosts(context.Background())
	require.NoError(t, err)
	assert.Len(t, posts, 1)
}

func TestCheckInSameDayDuplicate(t *testing.T) {
	store := newTestStore()
	tracker := newTestTracker(store)
	ctx := context.Background()

	first, err := tracker.CheckIn(ctx, 1, 1, "morning glass", "", testInstant)
	require.NoError(t, err)
	require.True(t, first.Accepted)

	// Same calendar day, hours later: succeeds but changes nothing.
	later := testInstant.Add(9 * time.Hour)
	second, err := tracker.CheckIn(ctx, 1, 1, "evening glass", "", later)
	require.NoError(t, err)

	assert.False(t, second.Accepted)
	assert.Nil(t, second.Post)
	assert.Equal(t, 1, second.Membership.CurrentStreak)
	assert.Equal(t, "morning glass", second.Membership.LastNote)

	posts, err := store.ListPosts(ctx)
	require.NoError(t, err)
	assert.Len(t, posts, 1)
}

func TestCheckInConsecutiveDays(t *testing.T) {
	store := newTestStore()
	tracker := newTestTracker(store)
	ctx := context.Background()

	_, err := tracker.CheckIn(ctx, 1, 1, "day one", "", testInstant)
	require.NoError(t, err)

	res, err := tracker.CheckIn(ctx, 1, 1, "day two", "", testInstant.Add(24*time.Hour))
	require.NoError(t, err)
	assert.True(t, res.Accepted)
	assert.Equal(t, 2, res.Membership.CurrentStreak)

	res, err = tracker.CheckIn(ctx, 1, 1, "day three", "", testInstant.Add(48*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 3, res.Membership.CurrentStreak)
}

func TestCheckInGapResetsStreak(t *testing.T) {
	store := newTestStore()
	tracker := newTestTracker(store)
	ctx := context.Background()

	_, err := tracker.CheckIn(ctx, 1, 1, "day one", "", testInstant)
	require.NoError(t, err)
	res, err := tracker.CheckIn(ctx, 1, 1, "day two", "", testInstant.Add(24*time.Hour))
	require.NoError(t, err)
	require.Equal(t, 2, res.Membership.CurrentStreak)

	// Skips a day, streak restarts at 1.
	res, err = tracker.CheckIn(ctx, 1, 1, "back again", "", testInstant.Add(3*24*time.Hour))
	require.NoError(t, err)
	assert.True(t, res.Accepted)
	assert.Equal(t, 1, res.Membership.CurrentStreak)
}

func TestCheckInAcrossMidnight(t *testing.T) {
	store := newTestStore()
	tracker := newTestTracker(store)
	ctx := context.Background()

	lateNight := time.Date(2024, 3, 10, 23, 59, 0, 0, time.UTC)
	earlyMorning := time.Date(2024, 3, 11, 0, 1, 0, 0, time.UTC)

	_, err := tracker.CheckIn(ctx, 1, 1, "just made it", "", lateNight)
	require.NoError(t, err)

	// Two minutes apart but on different calendar days: consecutive.
	res, err := tracker.CheckIn(ctx, 1, 1, "early bird", "", earlyMorning)
	require.NoError(t, err)
	assert.True(t, res.Accepted)
	assert.Equal(t, 2, res.Membership.CurrentStreak)
}

func TestCheckInEmptyNote(t *testing.T) {
	tracker := newTestTracker(newTestStore())

	_, err := tracker.CheckIn(context.Background(), 1, 1, "   ", "", testInstant)
	assert.ErrorIs(t, err, services.ErrEmptyNote)
}

func TestCheckInUnknownChallenge(t *testing.T) {
	tracker := newTestTracker(newTestStore())

	_, err := tracker.CheckIn(context.Background(), 1, 99, "note", "", testInstant)
	assert.ErrorIs(t, err, services.ErrChallengeNotFound)
}

func TestCheckInIndependentChallenges(t *testing.T) {
	store := newTestStore()
	tracker := newTestTracker(store)
	ctx := context.Background()

	_, err := tracker.CheckIn(ctx, 1, 1, "water", "", testInstant)
	require.NoError(t, err)
	res, err := tracker.CheckIn(ctx, 1, 2, "stretched", "", testInstant)
	require.NoError(t, err)

	// Same user, second challenge, same day: its own streak.
	assert.True(t, res.Accepted)
	assert.Equal(t, 1, res.Membership.CurrentStreak)

	posts, err := store.ListPosts(ctx)
	require.NoError(t, err)
	assert.Len(t, posts, 2)
}

func TestCheckedInToday(t *testing.T) {
	tracker := newTestTracker(newTestStore())

	at := testInstant
	m := &models.ChallengeMembership{LastCheckInAt: &at}
	assert.True(t, tracker.CheckedInToday(m, testInstant.Add(5*time.Hour)))
	assert.False(t, tracker.CheckedInToday(m, testInstant.Add(24*time.Hour)))
	assert.False(t, tracker.CheckedInToday(&models.ChallengeMembership{}, testInstant))
}

func TestCheckInConcurrentSameDay(t *testing.T) {
	store := newTestStore()
	tracker := newTestTracker(store)
	ctx := context.Background()

	const workers = 16
	accepted := make(chan bool, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := tracker.CheckIn(ctx, 1, 1, "racing", "", testInstant)
			require.NoError(t, err)
			accepted <- res.Accepted
		}()
	}
	wg.Wait()
	close(accepted)

	var wins int
	for ok := range accepted {
		if ok {
			wins++
		}
	}
	assert.Equal(t, 1, wins)

	posts, err := store.ListPosts(ctx)
	require.NoError(t, err)
	assert.Len(t, posts, 1)
}
