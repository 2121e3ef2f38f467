package models

import "time"

// Post kinds. Check-in posts are emitted by the streak tracker, manual
// posts are authored directly on the forum.
const (
	PostKindCheckIn = "checkin"
	PostKindManual  = "manual"
)

// Post is an immutable timeline event with mutable engagement state.
// The voter/bookmarker sets are JSON columns holding user ids; a user id
// never appears in both Upvoters and Downvoters at once. Only the
// engagement ledger mutates these sets, always under the post's row lock.
type Post struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	AuthorID    uint      `gorm:"index;not null" json:"author_id"`
	Kind        string    `gorm:"size:16;not null;default:'manual'" json:"kind"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Body        string    `gorm:"type:text;not null" json:"body"`
	MediaURL    string    `gorm:"size:1024" json:"media_url,omitempty"`
	ChallengeID *uint     `gorm:"index" json:"challenge_id,omitempty"`
	Categories  []string  `gorm:"serializer:json" json:"categories"`
	Upvoters    []uint    `gorm:"serializer:json" json:"upvoters"`
	Downvoters  []uint    `gorm:"serializer:json" json:"downvoters"`
	Bookmarkers []uint    `gorm:"serializer:json" json:"bookmarkers"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Author      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
	Comments    []Comment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"comments"`
}

// Upvotes returns the distinct upvoter count.
func (p *Post) Upvotes() int { return len(p.Upvoters) }

// Downvotes returns the distinct downvoter count.
func (p *Post) Downvotes() int { return len(p.Downvoters) }

// Bookmarks returns the distinct bookmarker count.
func (p *Post) Bookmarks() int { return len(p.Bookmarkers) }
