package entities

// ScoredSitter is the ranking output for one sitter: the identity columns
// plus the three scores, never persisted.
type ScoredSitter struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	ProfileScore float64 `json:"profile_score"`
	RatingsScore float64 `json:"ratings_score"`
	SearchScore  float64 `json:"search_score"`
}
