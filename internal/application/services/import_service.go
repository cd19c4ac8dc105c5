package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/petsitly/SitterSearchRanking/backend/internal/domain/entities"
	"github.com/petsitly/SitterSearchRanking/backend/internal/domain/repositories"
	apperrors "github.com/petsitly/SitterSearchRanking/backend/pkg/errors"
)

// ImportSummary reports row counts per entity for one import run.
type ImportSummary struct {
	RowsRead        int `json:"rows_read"`
	UsersCreated    int `json:"users_created"`
	SittersCreated  int `json:"sitters_created"`
	BookingsCreated int `json:"bookings_created"`
	ReviewsCreated  int `json:"reviews_created"`
	PetsCreated     int `json:"pets_created"`
	DogsCreated     int `json:"dogs_created"`
}

// ImportService normalizes the stay export into the relational schema:
// identities first, then sitters, bookings, reviews and pets, so that every
// foreign key is resolvable when its row is inserted.
type ImportService struct {
	sessions repositories.SessionFactory
	log      zerolog.Logger
	now      func() time.Time
}

// NewImportService creates an import service.
func NewImportService(sessions repositories.SessionFactory, log zerolog.Logger) *ImportService {
	return &ImportService{
		sessions: sessions,
		log:      log,
		now:      time.Now,
	}
}

// Run loads the export at csvPath and commits it as one transaction. Any
// store rejection or malformed field aborts the run with nothing committed.
func (s *ImportService) Run(ctx context.Context, csvPath string) (*ImportSummary, error) {
	rows, err := LoadSourceRows(csvPath)
	if err != nil {
		return nil, err
	}
	s.log.Info().Int("rows", len(rows)).Str("path", csvPath).Msg("loaded source rows")

	session, err := s.sessions.Begin(ctx)
	if err != nil {
		return nil, err
	}

	summary, err := s.runInSession(ctx, session, rows)
	if err != nil {
		_ = session.Rollback()
		return nil, err
	}

	if err := session.Commit(); err != nil {
		return nil, err
	}

	s.log.Info().
		Int("users", summary.UsersCreated).
		Int("sitters", summary.SittersCreated).
		Int("bookings", summary.BookingsCreated).
		Int("reviews", summary.ReviewsCreated).
		Int("pets", summary.PetsCreated).
		Msg("import committed")
	return summary, nil
}

func (s *ImportService) runInSession(ctx context.Context, session repositories.ImportSession, rows []SourceRow) (*ImportSummary, error) {
	summary := &ImportSummary{RowsRead: len(rows)}

	// One wall-clock snapshot per run: confirmed_date derives from it, so
	// the computation is deterministic within the run.
	requestTime := s.now()

	identities, err := s.resolveIdentities(ctx, session.Users(), rows)
	if err != nil {
		return nil, err
	}
	summary.UsersCreated = len(identities)

	sitterRecords := extractSitters(rows, identities)
	if _, err := session.Sitters().BulkAdd(ctx, sitterRecords, false); err != nil {
		return nil, err
	}
	summary.SittersCreated = len(sitterRecords)

	bookings := extractBookings(rows, identities, requestTime)
	bookingIDs, err := session.Bookings().BulkAdd(ctx, bookingRecords(bookings), true)
	if err != nil {
		return nil, err
	}
	summary.BookingsCreated = len(bookingIDs)

	reviews, err := extractReviews(bookings, bookingIDs)
	if err != nil {
		return nil, err
	}
	if _, err := session.Reviews().BulkAdd(ctx, reviewRecords(reviews), false); err != nil {
		return nil, err
	}
	summary.ReviewsCreated = len(reviews)

	pets := extractPets(rows, identities)
	petIDs, err := session.Pets().BulkAdd(ctx, petRecords(pets), true)
	if err != nil {
		return nil, err
	}
	summary.PetsCreated = len(petIDs)

	dogs, err := extractDogs(pets, petIDs)
	if err != nil {
		return nil, err
	}
	if _, err := session.Dogs().BulkAdd(ctx, dogRecords(dogs), false); err != nil {
		return nil, err
	}
	summary.DogsCreated = len(dogs)

	return summary, nil
}

// identityRecords unions the owner and sitter column groups across all rows
// into one user per distinct record, preserving first-seen order. Dedup is
// by full-record equality (id and created_on stay zero here, the store
// assigns them): the source must guarantee one unique record per email;
// inconsistent duplicates survive here and collide on the store's unique
// email constraint instead.
func identityRecords(rows []SourceRow) []entities.User {
	seen := make(map[entities.User]struct{})
	var out []entities.User

	add := func(u entities.User) {
		if _, ok := seen[u]; !ok {
			seen[u] = struct{}{}
			out = append(out, u)
		}
	}

	for _, row := range rows {
		add(entities.User{
			Name:        row.OwnerName,
			Email:       row.OwnerEmail,
			PhoneNumber: row.OwnerPhoneNumber,
			Image:       row.OwnerImage,
		})
	}
	for _, row := range rows {
		add(entities.User{
			Name:        row.SitterName,
			Email:       row.SitterEmail,
			PhoneNumber: row.SitterPhoneNumber,
			Image:       row.SitterImage,
		})
	}

	return out
}

// resolveIdentities commits the deduplicated identities as user rows and
// returns the email to generated-id mapping every other extractor joins
// against. The sorted flag matters here: the returned ids are zipped back
// onto the input records by position.
func (s *ImportService) resolveIdentities(ctx context.Context, users repositories.BulkStore, rows []SourceRow) (map[string]int64, error) {
	recs := identityRecords(rows)

	records := make([]repositories.Record, len(recs))
	for i, u := range recs {
		records[i] = repositories.Record{
			"name":         u.Name,
			"email":        u.Email,
			"phone_number": u.PhoneNumber,
			"image":        u.Image,
		}
	}

	ids, err := users.BulkAdd(ctx, records, true)
	if err != nil {
		return nil, err
	}
	if len(ids) != len(recs) {
		return nil, apperrors.NewInternalError(
			fmt.Sprintf("user insert returned %d ids for %d records", len(ids), len(recs)), nil)
	}

	mapping := make(map[string]int64, len(ids))
	for i, id := range ids {
		mapping[recs[i].Email] = id
	}
	return mapping, nil
}

// lookupID left-joins an email against the identity mapping. A missing
// email yields a nil foreign key; the store's nullability rules decide
// whether that is fatal at insert time.
func lookupID(identities map[string]int64, email string) *int64 {
	if id, ok := identities[email]; ok {
		v := id
		return &v
	}
	return nil
}

func idKey(id *int64) string {
	if id == nil {
		return ""
	}
	return strconv.FormatInt(*id, 10)
}

// extractSitters projects the sitter column group, joins the identity
// mapping and deduplicates. Sitter rows share the user id space.
func extractSitters(rows []SourceRow, identities map[string]int64) []repositories.Record {
	seen := make(map[entities.User]struct{})
	var records []repositories.Record

	for _, row := range rows {
		key := entities.User{
			Name:        row.SitterName,
			Email:       row.SitterEmail,
			PhoneNumber: row.SitterPhoneNumber,
			Image:       row.SitterImage,
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		records = append(records, repositories.Record{
			"id":           lookupID(identities, row.SitterEmail),
			"name":         row.SitterName,
			"email":        row.SitterEmail,
			"phone_number": row.SitterPhoneNumber,
			"image":        row.SitterImage,
		})
	}

	return records
}

// bookingSource is one booking row plus the review columns that ride along
// with it: review extraction needs them next to the booking id once the
// bookings are committed.
type bookingSource struct {
	entities.Booking
	Rating int
	Text   string
}

// dedupKey covers every extracted column, confirmed_date included: rows
// differing only in response time are distinct bookings, not duplicates.
func (b bookingSource) dedupKey() string {
	var end, confirmed string
	if b.EndDate != nil {
		end = b.EndDate.Format(time.RFC3339)
	}
	if b.ConfirmedDate != nil {
		confirmed = b.ConfirmedDate.Format(time.RFC3339Nano)
	}
	return strings.Join([]string{
		idKey(b.OwnerID),
		idKey(b.SitterID),
		b.StartDate.Format(time.RFC3339),
		end,
		confirmed,
		strconv.Itoa(b.Rating),
		b.Text,
	}, "|")
}

// extractBookings projects booking columns, joins both foreign keys and
// derives confirmed_date as requestTime plus the row's response-time
// offset. Exact duplicates are dropped.
func extractBookings(rows []SourceRow, identities map[string]int64, requestTime time.Time) []bookingSource {
	seen := make(map[string]struct{})
	var out []bookingSource

	for _, row := range rows {
		confirmed := requestTime.Add(time.Duration(row.ResponseTimeMins) * time.Minute)
		b := bookingSource{
			Booking: entities.Booking{
				OwnerID:       lookupID(identities, row.OwnerEmail),
				SitterID:      lookupID(identities, row.SitterEmail),
				StartDate:     row.StartDate,
				EndDate:       row.EndDate,
				ConfirmedDate: &confirmed,
			},
			Rating: row.Rating,
			Text:   row.Text,
		}
		if _, ok := seen[b.dedupKey()]; ok {
			continue
		}
		seen[b.dedupKey()] = struct{}{}
		out = append(out, b)
	}

	return out
}

func bookingRecords(bookings []bookingSource) []repositories.Record {
	records := make([]repositories.Record, len(bookings))
	for i, b := range bookings {
		records[i] = repositories.Record{
			"sitter_id":      b.SitterID,
			"owner_id":       b.OwnerID,
			"confirmed_date": b.ConfirmedDate,
			"start_date":     b.StartDate,
			"end_date":       b.EndDate,
		}
	}
	return records
}

// extractReviews derives review rows from the committed bookings: the
// booking ids are an explicit input, positionally aligned with the booking
// sources by the store's sorted bulk-add contract.
func extractReviews(bookings []bookingSource, bookingIDs []int64) ([]entities.Review, error) {
	if len(bookingIDs) != len(bookings) {
		return nil, apperrors.NewInternalError(
			fmt.Sprintf("booking insert returned %d ids for %d records", len(bookingIDs), len(bookings)), nil)
	}

	reviews := make([]entities.Review, len(bookings))
	for i, b := range bookings {
		reviews[i] = entities.Review{
			Rating:      b.Rating,
			Description: b.Text,
			Reviewer:    b.OwnerID,
			Reviewee:    b.SitterID,
			BookingID:   bookingIDs[i],
		}
	}
	return reviews, nil
}

func reviewRecords(reviews []entities.Review) []repositories.Record {
	records := make([]repositories.Record, len(reviews))
	for i, r := range reviews {
		records[i] = repositories.Record{
			"rating":      r.Rating,
			"description": r.Description,
			"reviewer":    r.Reviewer,
			"reviewee":    r.Reviewee,
			"booking_id":  r.BookingID,
		}
	}
	return records
}

// extractPets explodes each row's pipe-delimited dog list into one record
// per name, joins the owner id and deduplicates.
func extractPets(rows []SourceRow, identities map[string]int64) []entities.Pet {
	type petKey struct {
		name  string
		owner string
	}
	seen := make(map[petKey]struct{})
	var out []entities.Pet

	for _, row := range rows {
		ownerID := lookupID(identities, row.OwnerEmail)
		for _, name := range strings.Split(row.Dogs, "|") {
			key := petKey{name: name, owner: idKey(ownerID)}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, entities.Pet{Name: name, OwnerID: ownerID})
		}
	}

	return out
}

func petRecords(pets []entities.Pet) []repositories.Record {
	records := make([]repositories.Record, len(pets))
	for i, p := range pets {
		records[i] = repositories.Record{
			"name":     p.Name,
			"owner_id": p.OwnerID,
		}
	}
	return records
}

// extractDogs builds the specialization rows, reusing the generated pet ids
// so pets and dogs stay 1:1.
func extractDogs(pets []entities.Pet, petIDs []int64) ([]entities.Dog, error) {
	if len(petIDs) != len(pets) {
		return nil, apperrors.NewInternalError(
			fmt.Sprintf("pet insert returned %d ids for %d records", len(petIDs), len(pets)), nil)
	}

	dogs := make([]entities.Dog, len(pets))
	for i, p := range pets {
		dogs[i] = entities.Dog{
			ID:      petIDs[i],
			Name:    p.Name,
			OwnerID: p.OwnerID,
		}
	}
	return dogs, nil
}

func dogRecords(dogs []entities.Dog) []repositories.Record {
	records := make([]repositories.Record, len(dogs))
	for i, d := range dogs {
		records[i] = repositories.Record{
			"id":       d.ID,
			"name":     d.Name,
			"owner_id": d.OwnerID,
		}
	}
	return records
}
