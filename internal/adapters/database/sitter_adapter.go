package database

import (
	"context"
	"database/sql"

	"github.com/doug-martin/goqu/v9"

	"github.com/petsitly/SitterSearchRanking/backend/internal/domain/entities"
	apperrors "github.com/petsitly/SitterSearchRanking/backend/pkg/errors"
)

// SitterAdapter implements read access to sitter rows.
type SitterAdapter struct {
	run DBTX
}

// NewSitterAdapter creates a sitter adapter.
func NewSitterAdapter(run DBTX) *SitterAdapter {
	return &SitterAdapter{run: run}
}

// ListAll returns every sitter row, including the review stats merged in by
// the aggregation pass (nil until that pass has run).
func (a *SitterAdapter) ListAll(ctx context.Context) ([]entities.Sitter, error) {
	query, args, err := dialect.From(TableSitters).
		Prepared(true).
		Select("id", "name", "email", "phone_number", "image", "number_of_reviews", "sum_of_reviews").
		Order(goqu.C("id").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build sitter list query", err)
	}

	rows, err := a.run.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewSchemaError("failed to list sitters", err)
	}
	defer rows.Close()

	var sitters []entities.Sitter
	for rows.Next() {
		var (
			s               entities.Sitter
			email, phone    sql.NullString
			image           sql.NullString
			reviews, rating sql.NullInt64
		)
		if err := rows.Scan(&s.ID, &s.Name, &email, &phone, &image, &reviews, &rating); err != nil {
			return nil, apperrors.NewInternalError("failed to scan sitter row", err)
		}
		s.Email = email.String
		s.PhoneNumber = phone.String
		s.Image = image.String
		if reviews.Valid {
			n := reviews.Int64
			s.NumberOfReviews = &n
		}
		if rating.Valid {
			n := rating.Int64
			s.SumOfReviews = &n
		}
		sitters = append(sitters, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewSchemaError("failed to list sitters", err)
	}

	return sitters, nil
}
