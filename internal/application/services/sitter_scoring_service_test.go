package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/petsitly/SitterSearchRanking/backend/internal/domain/entities"
)

func intp(n int64) *int64 {
	return &n
}

func TestProfileScore(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
	}{
		{name: "empty name", input: "", expected: 0},
		{name: "only numbers", input: "123456", expected: 0},
		{name: "only special characters", input: "$$%%%", expected: 0},
		{name: "lowercase letters", input: "jack", expected: 0.77},
		{name: "mixed case repeats collapse", input: "Anna", expected: 0.38},
		{name: "full name with punctuation", input: "Jane Doe.123!", expected: 1.15},
		{name: "letters scattered through noise", input: "!@A#1B$2C%3", expected: 0.58},
		{name: "Alice", input: "Alice", expected: 0.96},
		{name: "Charles", input: "Charles", expected: 1.35},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ProfileScore(tt.input))
		})
	}
}

func TestRatingsScore(t *testing.T) {
	tests := []struct {
		name     string
		sum      *int64
		count    *int64
		expected float64
	}{
		{name: "no stats at all", sum: nil, count: nil, expected: 0},
		{name: "no sum", sum: nil, count: intp(1), expected: 0},
		{name: "no count", sum: intp(1), count: nil, expected: 0},
		{name: "zero count", sum: intp(10), count: intp(0), expected: 0},
		{name: "single review", sum: intp(4), count: intp(1), expected: 4},
		{name: "two reviews", sum: intp(7), count: intp(2), expected: 3.5},
		{name: "rounding to two decimals", sum: intp(14), count: intp(3), expected: 4.67},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RatingsScore(tt.sum, tt.count))
		})
	}
}

func TestSearchScore(t *testing.T) {
	tests := []struct {
		name     string
		sitter   string
		count    *int64
		sum      *int64
		expected float64
	}{
		{name: "no scores at all", sitter: "", count: intp(0), sum: intp(0), expected: 0},
		{name: "no reviews ranks on profile", sitter: "Alice", count: intp(0), sum: intp(0), expected: 0.96},
		{name: "nil reviews ranks on profile", sitter: "Alice", count: nil, sum: nil, expected: 0.96},
		{name: "at threshold ranks on ratings", sitter: "Bob", count: intp(10), sum: intp(40), expected: 4.0},
		{name: "blended below threshold", sitter: "Charles", count: intp(3), sum: intp(15), expected: 2.45},
		{name: "blend with zero profile", sitter: "", count: intp(5), sum: intp(10), expected: 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := ProfileScore(tt.sitter)
			ratings := RatingsScore(tt.sum, tt.count)
			assert.Equal(t, tt.expected, SearchScore(profile, ratings, tt.count))
		})
	}
}

type stubSitterRepo struct {
	sitters []entities.Sitter
}

func (r *stubSitterRepo) ListAll(ctx context.Context) ([]entities.Sitter, error) {
	return r.sitters, nil
}

func TestScoreAll_MaterializesFullRecords(t *testing.T) {
	repo := &stubSitterRepo{sitters: []entities.Sitter{
		{ID: 1, Name: "Charles", Email: "charles@example.com", NumberOfReviews: intp(3), SumOfReviews: intp(15)},
		{ID: 2, Name: "Anna", Email: "anna@example.com"},
	}}
	svc := NewSitterScoringService(repo, zerolog.Nop())

	scored, err := svc.ScoreAll(context.Background())

	assert.NoError(t, err)
	assert.Len(t, scored, 2)

	assert.Equal(t, int64(1), scored[0].ID)
	assert.Equal(t, "charles@example.com", scored[0].Email)
	assert.Equal(t, 1.35, scored[0].ProfileScore)
	assert.Equal(t, 5.0, scored[0].RatingsScore)
	assert.Equal(t, 2.45, scored[0].SearchScore)

	// A sitter with no review stats ranks purely on profile.
	assert.Equal(t, 0.38, scored[1].ProfileScore)
	assert.Equal(t, 0.0, scored[1].RatingsScore)
	assert.Equal(t, 0.38, scored[1].SearchScore)
}
