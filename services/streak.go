package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/momentum-app/momentum/models"
	"github.com/momentum-app/momentum/utils"
)

// CheckInResult reports the outcome of a check-in attempt. Accepted=false
// means the user had already checked in on the same calendar day; that is a
// successful no-op, not an error, and Post is nil in that case.
type CheckInResult struct {
	Accepted   bool                       `json:"accepted"`
	Membership models.ChallengeMembership `json:"membership"`
	Post       *models.Post               `json:"post,omitempty"`
}

// StreakTracker owns the per-(user, challenge) check-in state machine.
// All day arithmetic happens on calendar dates in a single location so a
// 23:59 check-in followed by one at 00:01 counts as consecutive days.
type StreakTracker struct {
	store   Store
	emitter *TimelineEventEmitter
	loc     *time.Location
}

// NewStreakTracker creates a tracker that resolves day boundaries in loc
// (UTC when nil).
func NewStreakTracker(store Store, emitter *TimelineEventEmitter, loc *time.Location) *StreakTracker {
	if loc == nil {
		loc = time.UTC
	}
	return &StreakTracker{store: store, emitter: emitter, loc: loc}
}

// CheckIn records one daily check-in. On acceptance the membership update
// and the emitted check-in event are persisted atomically; a same-day
// duplicate leaves everything untouched and creates no event.
func (t *StreakTracker) CheckIn(ctx context.Context, userID, challengeID uint, note, mediaURL string, occurredAt time.Time) (CheckInResult, error) {
	note = strings.TrimSpace(note)
	if note == "" {
		return CheckInResult{}, ErrEmptyNote
	}

	challenge, err := t.store.GetChallenge(ctx, challengeID)
	if err != nil {
		return CheckInResult{}, err
	}

	membership, post, err := t.store.MutateMembership(ctx, userID, challengeID,
		func(m *models.ChallengeMembership) (*models.Post, error) {
			if m.LastCheckInAt != nil && t.sameDay(*m.LastCheckInAt, occurredAt) {
				return nil, errAlreadyCheckedIn
			}

			streak := 1
			if m.LastCheckInAt != nil && t.dayGap(*m.LastCheckInAt, occurredAt) == 1 {
				streak = m.CurrentStreak + 1
			}

			at := occurredAt
			m.CurrentStreak = streak
			m.LastCheckInAt = &at
			m.LastNote = note

			return t.emitter.CheckInEvent(userID, challenge, note, mediaURL, occurredAt), nil
		})
	if err != nil {
		if errors.Is(err, errAlreadyCheckedIn) {
			result := CheckInResult{Accepted: false}
			if membership != nil {
				result.Membership = *membership
			}
			return result, nil
		}
		return CheckInResult{}, err
	}

	if utils.Sugar != nil {
		utils.Sugar.Infow("check-in accepted",
			"user_id", userID, "challenge_id", challengeID, "streak", membership.CurrentStreak)
	}

	return CheckInResult{Accepted: true, Membership: *membership, Post: post}, nil
}

// CheckedInToday reports whether the membership's last check-in falls on
// the same calendar day as now.
func (t *StreakTracker) CheckedInToday(m *models.ChallengeMembership, now time.Time) bool {
	return m.LastCheckInAt != nil && t.sameDay(*m.LastCheckInAt, now)
}

func (t *StreakTracker) sameDay(a, b time.Time) bool {
	return t.dayGap(a, b) == 0
}

// dayGap counts calendar-day boundaries crossed between the two instants.
// Civil dates are re-anchored at UTC midnight so the subtraction is exact
// regardless of DST in the configured location.
func (t *StreakTracker) dayGap(from, to time.Time) int {
	return int(civilDate(to, t.loc).Sub(civilDate(from, t.loc)) / (24 * time.Hour))
}

func civilDate(at time.Time, loc *time.Location) time.Time {
	y, m, d := at.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
