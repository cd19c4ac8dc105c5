package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/petsitly/SitterSearchRanking/backend/internal/domain/repositories"
)

// ReviewStatsService merges the per-reviewee rating aggregation into the
// sitter rows. It must run after all reviews exist and before scoring.
type ReviewStatsService struct {
	sessions repositories.SessionFactory
	log      zerolog.Logger
}

// NewReviewStatsService creates a review stats service.
func NewReviewStatsService(sessions repositories.SessionFactory, log zerolog.Logger) *ReviewStatsService {
	return &ReviewStatsService{sessions: sessions, log: log}
}

// Refresh aggregates reviews by reviewee and bulk-updates the matching
// sitter rows in one transaction.
func (s *ReviewStatsService) Refresh(ctx context.Context) error {
	session, err := s.sessions.Begin(ctx)
	if err != nil {
		return err
	}

	stats, err := session.ReviewStatsByReviewee(ctx)
	if err != nil {
		_ = session.Rollback()
		return err
	}

	records := make([]repositories.Record, len(stats))
	for i, st := range stats {
		records[i] = repositories.Record{
			"id":                st.SitterID,
			"number_of_reviews": st.NumberOfReviews,
			"sum_of_reviews":    st.SumOfReviews,
		}
	}

	if err := session.Sitters().BulkUpdate(ctx, records); err != nil {
		_ = session.Rollback()
		return err
	}

	if err := session.Commit(); err != nil {
		return err
	}

	s.log.Info().Int("sitters_updated", len(records)).Msg("review stats merged into sitters")
	return nil
}
