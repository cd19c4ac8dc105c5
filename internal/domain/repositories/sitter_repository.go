package repositories

import (
	"context"

	"github.com/petsitly/SitterSearchRanking/backend/internal/domain/entities"
)

// SitterRepository defines read access to sitter rows for scoring.
type SitterRepository interface {
	ListAll(ctx context.Context) ([]entities.Sitter, error)
}
