package models

import "time"

// Comment is one entry in a post's append-only comment sequence.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    string    `gorm:"index;size:36;not null" json:"post_id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `json:"created_at"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
}
