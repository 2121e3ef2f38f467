package storage

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/momentum-app/momentum/models"
	"github.com/momentum-app/momentum/services"
	"github.com/momentum-app/momentum/utils"
)

// GormStore implements services.Store on MySQL. Per-key serialization uses
// SELECT ... FOR UPDATE row locks; the membership update and the emitted
// event are written in one transaction so readers never see one without
// the other.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore wraps an initialized gorm connection.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// GetChallenge loads one challenge by id.
func (s *GormStore) GetChallenge(ctx context.Context, id uint) (*models.Challenge, error) {
	var challenge models.Challenge
	if err := s.db.WithContext(ctx).First(&challenge, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrChallengeNotFound
		}
		return nil, err
	}
	return &challenge, nil
}

// MutateMembership runs fn on the locked membership row, creating the row
// with a zero streak on first contact. The unique (user_id, challenge_id)
// index serializes concurrent first check-ins: both racers insert with
// DoNothing, then both re-select FOR UPDATE and queue on the same row.
func (s *GormStore) MutateMembership(ctx context.Context, userID, challengeID uint,
	fn func(m *models.ChallengeMembership) (*models.Post, error)) (*models.ChallengeMembership, *models.Post, error) {

	var membership *models.ChallengeMembership
	var post *models.Post

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m models.ChallengeMembership
		res := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND challenge_id = ?", userID, challengeID).
			First(&m)
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			m = models.ChallengeMembership{UserID: userID, ChallengeID: challengeID}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&m).Error; err != nil {
				return err
			}
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("user_id = ? AND challenge_id = ?", userID, challengeID).
				First(&m).Error; err != nil {
				return err
			}
		} else if res.Error != nil {
			return res.Error
		}

		loaded := m
		membership = &loaded

		p, err := fn(&m)
		if err != nil {
			return err
		}

		if err := tx.Save(&m).Error; err != nil {
			return err
		}
		*membership = m

		if p != nil {
			if err := tx.Omit(clause.Associations).Create(p).Error; err != nil {
				return err
			}
			post = p
		}
		return nil
	})
	if err != nil {
		return membership, nil, err
	}
	return membership, post, nil
}

// CreatePost persists a new timeline event.
func (s *GormStore) CreatePost(ctx context.Context, post *models.Post) error {
	return s.db.WithContext(ctx).Omit(clause.Associations).Create(post).Error
}

// GetPost loads one post with author and comments.
func (s *GormStore) GetPost(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	err := s.db.WithContext(ctx).
		Preload("Author").
		Preload("Comments", func(db *gorm.DB) *gorm.DB { return db.Order("comments.created_at ASC, comments.id ASC") }).
		Preload("Comments.User").
		Where("id = ?", id).
		First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// MutatePost runs fn on the locked post row and saves the result. The row
// lock serializes concurrent toggles on the same post.
func (s *GormStore) MutatePost(ctx context.Context, id string, fn func(p *models.Post) error) (*models.Post, error) {
	var post models.Post
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).
			First(&post)
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return services.ErrPostNotFound
		}
		if res.Error != nil {
			return res.Error
		}

		if err := fn(&post); err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Save(&post).Error
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// AppendComment inserts one comment after verifying the post exists under
// lock, so a comment can never land on a deleted post mid-request.
func (s *GormStore) AppendComment(ctx context.Context, postID string, c *models.Comment) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var exists models.Post
		res := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			Where("id = ?", postID).
			First(&exists)
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return services.ErrPostNotFound
		}
		if res.Error != nil {
			return res.Error
		}
		c.PostID = postID
		return tx.Create(c).Error
	})
}

// ListPosts returns all posts newest first. The read runs inside one
// transaction so the ranking fold sees a single consistent snapshot.
func (s *GormStore) ListPosts(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.
			Preload("Author").
			Preload("Comments", func(db *gorm.DB) *gorm.DB { return db.Order("comments.created_at ASC, comments.id ASC") }).
			Preload("Comments.User").
			Order("created_at DESC, id DESC").
			Find(&posts).Error
	})
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// UserNames resolves display names for the given ids.
func (s *GormStore) UserNames(ctx context.Context, ids []uint) (map[uint]string, error) {
	names := make(map[uint]string)
	if len(ids) == 0 {
		return names, nil
	}

	var users []models.User
	if err := s.db.WithContext(ctx).Find(&users, utils.UniqueUint(ids)).Error; err != nil {
		return nil, err
	}
	for _, u := range users {
		names[u.ID] = u.Name
	}
	return names, nil
}
