package services

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/momentum-app/momentum/models"
)

// Fallback titles when the caller supplies none, matching the forum's
// historical defaults.
const (
	defaultManualTitle  = "Untitled post"
	defaultCheckInTitle = "Check-in"
)

// TimelineEventEmitter builds immutable timeline events. It only constructs
// and validates; persisting the event is the caller's concern.
type TimelineEventEmitter struct {
	clock Clock
}

// NewTimelineEventEmitter creates an emitter using the given clock for
// event timestamps.
func NewTimelineEventEmitter(clock Clock) *TimelineEventEmitter {
	return &TimelineEventEmitter{clock: clock}
}

// Emit builds a new event with a fresh id. Manual events must carry at
// least one non-blank category; categories on check-in events are ignored.
func (e *TimelineEventEmitter) Emit(authorID uint, kind, title, body string, categories []string, mediaURL string) (*models.Post, error) {
	if kind != models.PostKindCheckIn {
		kind = models.PostKindManual
	}

	cats := NormalizeCategories(categories)
	if kind == models.PostKindManual && len(cats) == 0 {
		return nil, ErrCategoryRequired
	}
	if kind == models.PostKindCheckIn {
		cats = nil
	}

	return e.build(authorID, kind, title, body, cats, mediaURL, nil, e.clock.Now()), nil
}

// CheckInEvent builds the event for an accepted check-in: the challenge
// title becomes the event title and the note its body. The event timestamp
// is the check-in instant so streak and timeline agree on the day.
func (e *TimelineEventEmitter) CheckInEvent(authorID uint, challenge *models.Challenge, note, mediaURL string, at time.Time) *models.Post {
	return e.build(authorID, models.PostKindCheckIn, challenge.Title, note, nil, mediaURL, &challenge.ID, at)
}

func (e *TimelineEventEmitter) build(authorID uint, kind, title, body string, cats []string, mediaURL string, challengeID *uint, at time.Time) *models.Post {
	title = strings.TrimSpace(title)
	if title == "" {
		if kind == models.PostKindCheckIn {
			title = defaultCheckInTitle
		} else {
			title = defaultManualTitle
		}
	}

	return &models.Post{
		ID:          uuid.NewString(),
		AuthorID:    authorID,
		Kind:        kind,
		Title:       title,
		Body:        strings.TrimSpace(body),
		MediaURL:    mediaURL,
		ChallengeID: challengeID,
		Categories:  cats,
		Upvoters:    []uint{},
		Downvoters:  []uint{},
		Bookmarkers: []uint{},
		CreatedAt:   at,
		UpdatedAt:   at,
	}
}

// NormalizeCategories flattens comma-separated entries, trims whitespace,
// and drops blanks and duplicates while keeping first-seen order. Clients
// send either a JSON array or a single comma-joined string.
func NormalizeCategories(raw []string) []string {
	var out []string
	seen := map[string]bool{}
	for _, entry := range raw {
		for _, part := range strings.Split(entry, ",") {
			part = strings.TrimSpace(part)
			if part == "" || seen[part] {
				continue
			}
			seen[part] = true
			out = append(out, part)
		}
	}
	return out
}
