package services

import (
	"context"
	"strings"

	"github.com/momentum-app/momentum/models"
	"github.com/momentum-app/momentum/utils"
)

// EngagementLedger applies upvote/downvote/bookmark toggles and comments to
// posts. Every mutation runs under the post's lock, so the invariant that a
// user is never in both voter sets holds after each operation.
type EngagementLedger struct {
	store Store
	clock Clock
}

// NewEngagementLedger wires the ledger to its store and clock.
func NewEngagementLedger(store Store, clock Clock) *EngagementLedger {
	return &EngagementLedger{store: store, clock: clock}
}

// Upvote toggles the user's upvote. Adding an upvote clears any downvote by
// the same user.
func (l *EngagementLedger) Upvote(ctx context.Context, postID string, userID uint) (*models.Post, error) {
	return l.store.MutatePost(ctx, postID, func(p *models.Post) error {
		if utils.ContainsUint(p.Upvoters, userID) {
			p.Upvoters = utils.RemoveUint(p.Upvoters, userID)
			return nil
		}
		p.Upvoters = append(p.Upvoters, userID)
		p.Downvoters = utils.RemoveUint(p.Downvoters, userID)
		return nil
	})
}

// Downvote toggles the user's downvote. Adding a downvote clears any upvote
// by the same user.
func (l *EngagementLedger) Downvote(ctx context.Context, postID string, userID uint) (*models.Post, error) {
	return l.store.MutatePost(ctx, postID, func(p *models.Post) error {
		if utils.ContainsUint(p.Downvoters, userID) {
			p.Downvoters = utils.RemoveUint(p.Downvoters, userID)
			return nil
		}
		p.Downvoters = append(p.Downvoters, userID)
		p.Upvoters = utils.RemoveUint(p.Upvoters, userID)
		return nil
	})
}

// Bookmark toggles the user's bookmark; it never touches the vote sets.
func (l *EngagementLedger) Bookmark(ctx context.Context, postID string, userID uint) (*models.Post, error) {
	return l.store.MutatePost(ctx, postID, func(p *models.Post) error {
		if utils.ContainsUint(p.Bookmarkers, userID) {
			p.Bookmarkers = utils.RemoveUint(p.Bookmarkers, userID)
		} else {
			p.Bookmarkers = append(p.Bookmarkers, userID)
		}
		return nil
	})
}

// Comment appends one comment to the post. Text must be non-blank; comments
// are never edited or removed here.
func (l *EngagementLedger) Comment(ctx context.Context, postID string, userID uint, text string) (*models.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyComment
	}

	comment := &models.Comment{
		PostID:    postID,
		UserID:    userID,
		Text:      text,
		CreatedAt: l.clock.Now(),
	}
	if err := l.store.AppendComment(ctx, postID, comment); err != nil {
		return nil, err
	}
	return comment, nil
}
