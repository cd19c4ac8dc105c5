package entities

import "time"

// Pet is one animal exploded out of a row's pipe-delimited name list.
type Pet struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	OwnerID   *int64    `json:"owner_id" db:"owner_id"`
	CreatedOn time.Time `json:"created_on" db:"created_on"`
}

// Dog is the species specialization of Pet. Dog rows reuse the pet ids
// assigned at pet insertion, so the two tables stay 1:1.
type Dog struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	OwnerID   *int64    `json:"owner_id" db:"owner_id"`
	CreatedOn time.Time `json:"created_on" db:"created_on"`
}
