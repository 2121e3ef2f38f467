package models

import "time"

// Challenge type values. "friend" challenges are created by users, the
// recommended ones ship with well-known ids the client already holds.
const (
	ChallengeTypeSystem      = "system"
	ChallengeTypeFriend      = "friend"
	ChallengeTypeRecommended = "recommended"
)

// Challenge is a habit users can join and check in against daily.
type Challenge struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Cadence     string    `gorm:"size:64;not null" json:"cadence"` // e.g. "10 Min / day"
	Description string    `gorm:"type:text" json:"description"`
	Type        string    `gorm:"size:16;default:'friend'" json:"type"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
