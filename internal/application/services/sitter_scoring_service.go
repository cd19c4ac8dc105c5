package services

import (
	"context"
	"math"
	"strings"

	"github.com/rs/zerolog"

	"github.com/petsitly/SitterSearchRanking/backend/internal/domain/entities"
	"github.com/petsitly/SitterSearchRanking/backend/internal/domain/repositories"
)

// Sitters with at least this many reviews are ranked purely on rating
// quality; below it the profile score is blended in.
const ratingsOnlyThreshold = 10

// SitterScoringService computes the ranking scores for every sitter row.
type SitterScoringService struct {
	sitters repositories.SitterRepository
	log     zerolog.Logger
}

// NewSitterScoringService creates a scoring service.
func NewSitterScoringService(sitters repositories.SitterRepository, log zerolog.Logger) *SitterScoringService {
	return &SitterScoringService{sitters: sitters, log: log}
}

// ScoreAll loads every sitter and materializes a full result record per
// sitter: identity columns plus profile, ratings and search score.
func (s *SitterScoringService) ScoreAll(ctx context.Context) ([]entities.ScoredSitter, error) {
	sitters, err := s.sitters.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	scored := make([]entities.ScoredSitter, len(sitters))
	for i, sitter := range sitters {
		profile := ProfileScore(sitter.Name)
		ratings := RatingsScore(sitter.SumOfReviews, sitter.NumberOfReviews)
		scored[i] = entities.ScoredSitter{
			ID:           sitter.ID,
			Name:         sitter.Name,
			Email:        sitter.Email,
			ProfileScore: profile,
			RatingsScore: ratings,
			SearchScore:  SearchScore(profile, ratings, sitter.NumberOfReviews),
		}
	}

	s.log.Info().Int("sitters_scored", len(scored)).Msg("search scores computed")
	return scored, nil
}

// ProfileScore rewards alphabetic diversity of the sitter's display name:
// 5 * distinct letters / 26, rounded to two decimals. Non-alphabetic
// characters are discarded before case folding; a name with no letters
// scores 0.
func ProfileScore(name string) float64 {
	unique := make(map[rune]struct{})
	for _, r := range strings.ToLower(name) {
		if r >= 'a' && r <= 'z' {
			unique[r] = struct{}{}
		}
	}
	if len(unique) == 0 {
		return 0
	}
	return round2(5 * float64(len(unique)) / 26)
}

// RatingsScore is the mean rating across a sitter's reviews, rounded to two
// decimals. A sitter with no reviews (or a zero sum) scores 0 rather than
// "no score", so callers never divide by zero.
func RatingsScore(sumOfReviews, numberOfReviews *int64) float64 {
	if sumOfReviews == nil || numberOfReviews == nil || *sumOfReviews == 0 || *numberOfReviews == 0 {
		return 0
	}
	return round2(float64(*sumOfReviews) / float64(*numberOfReviews))
}

// SearchScore blends the two scores by review volume: new sitters rank on
// profile alone, sitters at or past the threshold on ratings alone, and in
// between a linear blend that favors rating quality as reviews accumulate.
func SearchScore(profileScore, ratingsScore float64, numberOfReviews *int64) float64 {
	if numberOfReviews == nil || *numberOfReviews == 0 {
		return profileScore
	}
	if *numberOfReviews >= ratingsOnlyThreshold {
		return ratingsScore
	}
	n := float64(*numberOfReviews)
	return round2(((ratingsOnlyThreshold-n)*profileScore + n*ratingsScore) / ratingsOnlyThreshold)
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
