package entities

import "time"

// User is the shared identity record for owners and sitters. One row exists
// per distinct email seen in either role during an import run.
type User struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Email       string    `json:"email" db:"email"`
	PhoneNumber string    `json:"phone_number" db:"phone_number"`
	Image       string    `json:"image" db:"image"`
	CreatedOn   time.Time `json:"created_on" db:"created_on"`
}
