package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petsitly/SitterSearchRanking/backend/internal/domain/entities"
)

func TestRank_OrdersByScoreThenName(t *testing.T) {
	scored := []entities.ScoredSitter{
		{Name: "Bob", Email: "bob@example.com", SearchScore: 2.5},
		{Name: "Anna", Email: "anna@example.com", SearchScore: 4.0},
		{Name: "Carol", Email: "carol@example.com", SearchScore: 2.5},
		{Name: "Dave", Email: "dave@example.com", SearchScore: 4.0},
	}

	ranked := Rank(scored)

	var names []string
	for _, s := range ranked {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"Anna", "Dave", "Bob", "Carol"}, names)

	// Input order untouched.
	assert.Equal(t, "Bob", scored[0].Name)
}

func TestReportService_Write(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sitter_scores.csv")
	svc := NewReportService(zerolog.Nop())

	scored := []entities.ScoredSitter{
		{Name: "Bob", Email: "bob@example.com", ProfileScore: 0.58, RatingsScore: 4, SearchScore: 4},
		{Name: "Anna", Email: "anna@example.com", ProfileScore: 0.77, RatingsScore: 4.67, SearchScore: 4.67},
	}

	require.NoError(t, svc.Write(scored, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	want := "email,name,profile_score,ratings_score,search_score\n" +
		"anna@example.com,Anna,0.77,4.67,4.67\n" +
		"bob@example.com,Bob,0.58,4.00,4.00\n"
	assert.Equal(t, want, string(data))
}

func TestReportService_Write_EmptyRanking(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sitter_scores.csv")
	svc := NewReportService(zerolog.Nop())

	require.NoError(t, svc.Write(nil, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "email,name,profile_score,ratings_score,search_score\n", string(data))
}
