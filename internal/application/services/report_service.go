package services

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"

	"github.com/rs/zerolog"

	"github.com/petsitly/SitterSearchRanking/backend/internal/domain/entities"
	apperrors "github.com/petsitly/SitterSearchRanking/backend/pkg/errors"
)

var reportHeader = []string{"email", "name", "profile_score", "ratings_score", "search_score"}

// ReportService serializes the final sitter ranking to a CSV artifact.
type ReportService struct {
	log zerolog.Logger
}

// NewReportService creates a report service.
func NewReportService(log zerolog.Logger) *ReportService {
	return &ReportService{log: log}
}

// Write sorts the scored sitters by search score descending (name ascending
// as the tie-break) and writes them to path with two-decimal score columns.
func (s *ReportService) Write(scored []entities.ScoredSitter, path string) error {
	ranked := Rank(scored)

	f, err := os.Create(path)
	if err != nil {
		return apperrors.NewInternalError("failed to create report file", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(reportHeader); err != nil {
		return apperrors.NewInternalError("failed to write report header", err)
	}

	for _, sitter := range ranked {
		row := []string{
			sitter.Email,
			sitter.Name,
			fmt.Sprintf("%.2f", sitter.ProfileScore),
			fmt.Sprintf("%.2f", sitter.RatingsScore),
			fmt.Sprintf("%.2f", sitter.SearchScore),
		}
		if err := w.Write(row); err != nil {
			return apperrors.NewInternalError("failed to write report row", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return apperrors.NewInternalError("failed to flush report", err)
	}

	s.log.Info().Int("sitters", len(ranked)).Str("path", path).Msg("ranking report written")
	return nil
}

// Rank returns a copy of scored ordered by search score descending, with
// name ascending breaking ties.
func Rank(scored []entities.ScoredSitter) []entities.ScoredSitter {
	ranked := make([]entities.ScoredSitter, len(scored))
	copy(ranked, scored)

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].SearchScore != ranked[j].SearchScore {
			return ranked[i].SearchScore > ranked[j].SearchScore
		}
		return ranked[i].Name < ranked[j].Name
	})

	return ranked
}
