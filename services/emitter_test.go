package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentum-app/momentum/models"
	"github.com/momentum-app/momentum/services"
)

func TestEmitManualPost(t *testing.T) {
	emitter := services.NewTimelineEventEmitter(fixedClock{at: testInstant})

	post, err := emitter.Emit(1, models.PostKindManual, "  My routine  ", "  up at six  ", []string{"health, habits", "health"}, "")
	require.NoError(t, err)

	assert.NotEmpty(t, post.ID)
	assert.Equal(t, uint(1), post.AuthorID)
	assert.Equal(t, models.PostKindManual, post.Kind)
	assert.Equal(t, "My routine", post.Title)
	assert.Equal(t, "up at six", post.Body)
	assert.Equal(t, []string{"health", "habits"}, post.Categories)
	assert.True(t, post.CreatedAt.Equal(testInstant))
	assert.NotNil(t, post.Upvoters)
	assert.NotNil(t, post.Downvoters)
	assert.NotNil(t, post.Bookmarkers)
}

func TestEmitManualPostRequiresCategory(t *testing.T) {
	emitter := services.NewTimelineEventEmitter(fixedClock{at: testInstant})

	_, err := emitter.Emit(1, models.PostKindManual, "title", "body", nil, "")
	assert.ErrorIs(t, err, services.ErrCategoryRequired)

	_, err = emitter.Emit(1, models.PostKindManual, "title", "body", []string{"  ", ","}, "")
	assert.ErrorIs(t, err, services.ErrCategoryRequired)
}

func TestEmitDefaultTitle(t *testing.T) {
	emitter := services.NewTimelineEventEmitter(fixedClock{at: testInstant})

	post, err := emitter.Emit(1, models.PostKindManual, "", "body", []string{"misc"}, "")
	require.NoError(t, err)
	assert.Equal(t, "Untitled post", post.Title)
}

func TestEmitUniqueIDs(t *testing.T) {
	emitter := services.NewTimelineEventEmitter(fixedClock{at: testInstant})

	a, err := emitter.Emit(1, models.PostKindManual, "a", "body", []string{"misc"}, "")
	require.NoError(t, err)
	b, err := emitter.Emit(1, models.PostKindManual, "b", "body", []string{"misc"}, "")
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestCheckInEvent(t *testing.T) {
	emitter := services.NewTimelineEventEmitter(fixedClock{at: testInstant})
	challenge := &models.Challenge{ID: 3, Title: "Everyday Meditation"}

	post := emitter.CheckInEvent(7, challenge, "sat for 10 minutes", "https://cdn.example/pic.jpg", testInstant)

	assert.Equal(t, models.PostKindCheckIn, post.Kind)
	assert.Equal(t, "Everyday Meditation", post.Title)
	assert.Equal(t, "sat for 10 minutes", post.Body)
	assert.Equal(t, "https://cdn.example/pic.jpg", post.MediaURL)
	require.NotNil(t, post.ChallengeID)
	assert.Equal(t, uint(3), *post.ChallengeID)
	assert.Nil(t, post.Categories)
	assert.True(t, post.CreatedAt.Equal(testInstant))
}

func TestNormalizeCategories(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, services.NormalizeCategories([]string{" a , b", "c", "a"}))
	assert.Nil(t, services.NormalizeCategories(nil))
	assert.Nil(t, services.NormalizeCategories([]string{" ", ","}))
}
