package entities

import "time"

// Review is an owner's rating of a sitter, attached to the booking it came
// from. The store enforces at most one review per (booking, reviewer,
// reviewee) triple.
type Review struct {
	ID          int64     `json:"id" db:"id"`
	Rating      int       `json:"rating" db:"rating"`
	Description string    `json:"description" db:"description"`
	Reviewer    *int64    `json:"reviewer" db:"reviewer"`
	Reviewee    *int64    `json:"reviewee" db:"reviewee"`
	BookingID   int64     `json:"booking_id" db:"booking_id"`
	CreatedOn   time.Time `json:"created_on" db:"created_on"`
}
