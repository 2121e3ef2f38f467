package services

import (
	"context"
	"sort"
	"strings"

	"github.com/momentum-app/momentum/models"
)

// AnonymousName labels authors whose display name cannot be resolved.
const AnonymousName = "Anonymous"

// Rank folds a snapshot of posts into per-author totals and assigns
// position-based dense ranks starting at 1. Ties order by case-insensitive
// display name, then author id, so identical input always yields identical
// output. Inputs are not mutated.
func Rank(posts []models.Post, names map[uint]string) []models.RankingEntry {
	totals := make(map[uint]int)
	for i := range posts {
		totals[posts[i].AuthorID] += Score(&posts[i])
	}

	entries := make([]models.RankingEntry, 0, len(totals))
	for authorID, points := range totals {
		name := names[authorID]
		if name == "" {
			name = AnonymousName
		}
		entries = append(entries, models.RankingEntry{
			AuthorID:    authorID,
			DisplayName: name,
			Points:      points,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Points != entries[j].Points {
			return entries[i].Points > entries[j].Points
		}
		ni := strings.ToLower(entries[i].DisplayName)
		nj := strings.ToLower(entries[j].DisplayName)
		if ni != nj {
			return ni < nj
		}
		return entries[i].AuthorID < entries[j].AuthorID
	})

	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

// RankingService derives the total ranking from a consistent snapshot of
// the post collection. There is no process-wide score cache; every call
// recomputes from the snapshot it reads.
type RankingService struct {
	store Store
}

// NewRankingService wires the aggregator to its store.
func NewRankingService(store Store) *RankingService {
	return &RankingService{store: store}
}

// Total loads one snapshot of all posts, resolves author names, and returns
// the ranked table.
func (s *RankingService) Total(ctx context.Context) ([]models.RankingEntry, error) {
	posts, err := s.store.ListPosts(ctx)
	if err != nil {
		return nil, err
	}

	var authorIDs []uint
	for i := range posts {
		authorIDs = append(authorIDs, posts[i].AuthorID)
	}
	names, err := s.store.UserNames(ctx, authorIDs)
	if err != nil {
		return nil, err
	}

	return Rank(posts, names), nil
}
