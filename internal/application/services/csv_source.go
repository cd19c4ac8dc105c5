package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/petsitly/SitterSearchRanking/backend/pkg/errors"
)

// SourceRow is one denormalized row of the stay export: the owner and
// sitter identity column groups, the pet list and the review/booking
// columns, all describing a single stay.
type SourceRow struct {
	OwnerName         string
	OwnerEmail        string
	OwnerPhoneNumber  string
	OwnerImage        string
	SitterName        string
	SitterEmail       string
	SitterPhoneNumber string
	SitterImage       string
	Dogs              string
	Rating            int
	Text              string
	ResponseTimeMins  int
	StartDate         time.Time
	EndDate           *time.Time
}

// Column names are a fixed contract; header order is not.
var sourceColumns = []string{
	"owner", "owner_email", "owner_phone_number", "owner_image",
	"sitter", "sitter_email", "sitter_phone_number", "sitter_image",
	"dogs", "rating", "text", "response_time_minutes",
	"start_date", "end_date",
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// LoadSourceRows reads and normalizes the stay export at path. Any
// malformed numeric or date field aborts the load; there is no row-skipping
// fallback.
func LoadSourceRows(path string) ([]SourceRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to open source file", err)
	}
	defer f.Close()

	return readSourceRows(f)
}

func readSourceRows(r io.Reader) ([]SourceRow, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, apperrors.NewValidationError(fmt.Sprintf("failed to read source header: %v", err))
	}

	index := make(map[string]int, len(header))
	for i, col := range header {
		index[strings.TrimSpace(col)] = i
	}
	for _, col := range sourceColumns {
		if _, ok := index[col]; !ok {
			return nil, apperrors.NewValidationError("source file is missing column " + col)
		}
	}

	var rows []SourceRow
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, apperrors.NewValidationError(fmt.Sprintf("failed to read source row %d: %v", line+1, err))
		}
		line++

		field := func(col string) string { return record[index[col]] }

		rating, err := parseIntField(field("rating"), "rating", line)
		if err != nil {
			return nil, err
		}
		responseTime, err := parseIntField(field("response_time_minutes"), "response_time_minutes", line)
		if err != nil {
			return nil, err
		}
		startDate, err := parseDateField(field("start_date"), "start_date", line)
		if err != nil {
			return nil, err
		}
		endDate, err := parseOptionalDateField(field("end_date"), "end_date", line)
		if err != nil {
			return nil, err
		}

		rows = append(rows, SourceRow{
			OwnerName:         field("owner"),
			OwnerEmail:        field("owner_email"),
			OwnerPhoneNumber:  field("owner_phone_number"),
			OwnerImage:        field("owner_image"),
			SitterName:        field("sitter"),
			SitterEmail:       field("sitter_email"),
			SitterPhoneNumber: field("sitter_phone_number"),
			SitterImage:       field("sitter_image"),
			Dogs:              field("dogs"),
			Rating:            rating,
			Text:              field("text"),
			ResponseTimeMins:  responseTime,
			StartDate:         startDate,
			EndDate:           endDate,
		})
	}

	return rows, nil
}

func parseIntField(value, col string, line int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, apperrors.NewValidationError(fmt.Sprintf("row %d: malformed %s %q", line, col, value))
	}
	return n, nil
}

func parseDateField(value, col string, line int) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, nil
		}
	}
	return time.Time{}, apperrors.NewValidationError(fmt.Sprintf("row %d: malformed %s %q", line, col, value))
}

// parseOptionalDateField treats an empty value as an open-ended stay.
func parseOptionalDateField(value, col string, line int) (*time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	t, err := parseDateField(value, col, line)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
