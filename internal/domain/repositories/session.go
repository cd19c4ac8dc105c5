package repositories

import (
	"context"

	"github.com/petsitly/SitterSearchRanking/backend/internal/domain/entities"
)

// ImportSession is the single transactional store session an import run
// owns. No component commits independently; the orchestrator calls Commit
// at the two sequenced points (after entity insertion, after the
// review-stat update).
type ImportSession interface {
	Users() BulkStore
	Sitters() BulkStore
	Bookings() BulkStore
	Reviews() BulkStore
	Pets() BulkStore
	Dogs() BulkStore

	// ReviewStatsByReviewee groups all reviews by reviewee and returns
	// sum(rating) and count(rating) per sitter id.
	ReviewStatsByReviewee(ctx context.Context) ([]entities.SitterReviewStats, error)

	Commit() error
	Rollback() error
}

// SessionFactory opens store sessions.
type SessionFactory interface {
	Begin(ctx context.Context) (ImportSession, error)
}
