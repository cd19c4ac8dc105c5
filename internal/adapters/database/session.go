package database

import (
	"context"
	"database/sql"

	"github.com/doug-martin/goqu/v9"

	"github.com/petsitly/SitterSearchRanking/backend/internal/domain/entities"
	"github.com/petsitly/SitterSearchRanking/backend/internal/domain/repositories"
	"github.com/petsitly/SitterSearchRanking/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/petsitly/SitterSearchRanking/backend/pkg/errors"
)

// Table names of the import schema.
const (
	TableUsers    = "users"
	TableSitters  = "sitters"
	TableBookings = "bookings"
	TableReviews  = "reviews"
	TablePets     = "pets"
	TableDogs     = "dogs"
)

// SessionFactory opens transactional store sessions on the Postgres client.
type SessionFactory struct {
	client *postgres.Client
}

// NewSessionFactory creates a session factory.
func NewSessionFactory(client *postgres.Client) *SessionFactory {
	return &SessionFactory{client: client}
}

// Begin opens a transaction and wraps it in a store session.
func (f *SessionFactory) Begin(ctx context.Context) (repositories.ImportSession, error) {
	tx, err := f.client.BeginTx(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to begin store session", err)
	}
	return &StoreSession{tx: tx}, nil
}

// StoreSession is one transaction over the import schema. The orchestrator
// owns it exclusively for the run's duration.
type StoreSession struct {
	tx *sql.Tx
}

func (s *StoreSession) Users() repositories.BulkStore    { return NewTableStore(s.tx, TableUsers) }
func (s *StoreSession) Sitters() repositories.BulkStore  { return NewTableStore(s.tx, TableSitters) }
func (s *StoreSession) Bookings() repositories.BulkStore { return NewTableStore(s.tx, TableBookings) }
func (s *StoreSession) Reviews() repositories.BulkStore  { return NewTableStore(s.tx, TableReviews) }
func (s *StoreSession) Pets() repositories.BulkStore     { return NewTableStore(s.tx, TablePets) }
func (s *StoreSession) Dogs() repositories.BulkStore     { return NewTableStore(s.tx, TableDogs) }

// ReviewStatsByReviewee runs the store-side aggregation: reviews grouped by
// reviewee with sum and count of ratings. Reviews whose reviewee FK is null
// belong to no sitter and are excluded.
func (s *StoreSession) ReviewStatsByReviewee(ctx context.Context) ([]entities.SitterReviewStats, error) {
	query, args, err := dialect.From(TableReviews).
		Prepared(true).
		Select(
			goqu.C("reviewee").As("id"),
			goqu.SUM("rating").As("sum_of_reviews"),
			goqu.COUNT("rating").As("number_of_reviews"),
		).
		Where(goqu.C("reviewee").IsNotNull()).
		GroupBy("reviewee").
		Order(goqu.C("reviewee").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build review stats query", err)
	}

	rows, err := s.tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewSchemaError("review stats aggregation failed", err)
	}
	defer rows.Close()

	var stats []entities.SitterReviewStats
	for rows.Next() {
		var st entities.SitterReviewStats
		if err := rows.Scan(&st.SitterID, &st.SumOfReviews, &st.NumberOfReviews); err != nil {
			return nil, apperrors.NewInternalError("failed to scan review stats row", err)
		}
		stats = append(stats, st)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewSchemaError("review stats aggregation failed", err)
	}

	return stats, nil
}

// Commit commits the session transaction.
func (s *StoreSession) Commit() error {
	if err := s.tx.Commit(); err != nil {
		return apperrors.NewInternalError("failed to commit store session", err)
	}
	return nil
}

// Rollback aborts the session transaction.
func (s *StoreSession) Rollback() error {
	return s.tx.Rollback()
}
