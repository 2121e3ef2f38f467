package services_test

import (
	"time"

	"github.com/momentum-app/momentum/models"
	"github.com/momentum-app/momentum/services"
	"github.com/momentum-app/momentum/storage"
)

// fixedClock pins Now() for deterministic timestamps.
type fixedClock struct {
	at time.Time
}

func (c fixedClock) Now() time.Time { return c.at }

var testInstant = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestStore() *storage.MemoryStore {
	store := storage.NewMemoryStore()
	store.AddChallenge(models.Challenge{ID: 1, Title: "Stay hydrated", Cadence: "daily", Type: models.ChallengeTypeSystem})
	store.AddChallenge(models.Challenge{ID: 2, Title: "Morning Stretch", Cadence: "daily", Type: models.ChallengeTypeSystem})
	store.AddUser(1, "alice")
	store.AddUser(2, "bob")
	return store
}

func newTestTracker(store *storage.MemoryStore) *services.StreakTracker {
	emitter := services.NewTimelineEventEmitter(fixedClock{at: testInstant})
	return services.NewStreakTracker(store, emitter, time.UTC)
}
