package models

// RankingEntry is one row of the total ranking. It is derived from the post
// collection on demand and never persisted.
type RankingEntry struct {
	AuthorID    uint   `json:"user_id"`
	DisplayName string `json:"name"`
	Points      int    `json:"points"`
	Rank        int    `json:"rank"`
}
