package models

import "time"

// ChallengeMembership tracks one user's participation in one challenge.
// CurrentStreak is zero exactly when LastCheckInAt is nil; it moves only by
// +1 on a next-day check-in or back to 1 on a reset, never by more.
type ChallengeMembership struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	UserID        uint       `gorm:"uniqueIndex:idx_membership_user_challenge;not null" json:"user_id"`
	ChallengeID   uint       `gorm:"uniqueIndex:idx_membership_user_challenge;not null" json:"challenge_id"`
	CurrentStreak int        `gorm:"default:0" json:"current_streak"`
	LastCheckInAt *time.Time `json:"last_check_in_at"`
	LastNote      string     `gorm:"type:text" json:"last_note"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
