package services

import (
	"context"

	"github.com/momentum-app/momentum/models"
)

// Store is the persistence collaborator the core services run against.
// storage.GormStore backs it with MySQL in production, storage.MemoryStore
// in tests.
type Store interface {
	// GetChallenge returns ErrChallengeNotFound for an unknown id.
	GetChallenge(ctx context.Context, id uint) (*models.Challenge, error)

	// MutateMembership loads (or creates, with a zero streak) the membership
	// for the given user/challenge pair and runs fn on it while holding the
	// per-key lock. The membership update and the event fn returns are
	// persisted together or not at all. When fn fails the mutation rolls
	// back, but the loaded membership is still returned so callers can
	// report its unchanged state.
	MutateMembership(ctx context.Context, userID, challengeID uint,
		fn func(m *models.ChallengeMembership) (*models.Post, error)) (*models.ChallengeMembership, *models.Post, error)

	// CreatePost persists a freshly emitted timeline event.
	CreatePost(ctx context.Context, post *models.Post) error

	// GetPost returns ErrPostNotFound for an unknown id.
	GetPost(ctx context.Context, id string) (*models.Post, error)

	// MutatePost runs fn on the post while holding its row lock, then
	// persists the result. Returns ErrPostNotFound for an unknown id.
	MutatePost(ctx context.Context, id string, fn func(p *models.Post) error) (*models.Post, error)

	// AppendComment adds one comment to the post's append-only sequence.
	AppendComment(ctx context.Context, postID string, c *models.Comment) error

	// ListPosts returns a point-in-time snapshot of all timeline events,
	// newest first.
	ListPosts(ctx context.Context) ([]models.Post, error)

	// UserNames resolves user ids to display names; unknown ids are simply
	// absent from the result.
	UserNames(ctx context.Context, ids []uint) (map[uint]string, error)
}
