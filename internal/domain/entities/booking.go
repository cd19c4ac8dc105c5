package entities

import "time"

// Booking is a stay booked by an owner with a sitter. SitterID and OwnerID
// are nullable: a row whose email was absent from the identity mapping is
// still inserted and the store's FK rules decide its fate.
type Booking struct {
	ID            int64      `json:"id" db:"id"`
	SitterID      *int64     `json:"sitter_id" db:"sitter_id"`
	OwnerID       *int64     `json:"owner_id" db:"owner_id"`
	RequestDate   time.Time  `json:"request_date" db:"request_date"`
	ConfirmedDate *time.Time `json:"confirmed_date" db:"confirmed_date"`
	StartDate     time.Time  `json:"start_date" db:"start_date"`
	EndDate       *time.Time `json:"end_date" db:"end_date"`
}
