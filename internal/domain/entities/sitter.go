package entities

// Sitter is the 1:1 extension of a User for identities that appear in the
// sitter role. It shares the users id space. NumberOfReviews and
// SumOfReviews stay nil until the review aggregation pass runs.
type Sitter struct {
	ID              int64  `json:"id" db:"id"`
	Name            string `json:"name" db:"name"`
	Email           string `json:"email" db:"email"`
	PhoneNumber     string `json:"phone_number" db:"phone_number"`
	Image           string `json:"image" db:"image"`
	NumberOfReviews *int64 `json:"number_of_reviews" db:"number_of_reviews"`
	SumOfReviews    *int64 `json:"sum_of_reviews" db:"sum_of_reviews"`
}

// SitterReviewStats is one row of the per-reviewee rating aggregation that
// gets merged back into sitters.
type SitterReviewStats struct {
	SitterID        int64 `json:"id" db:"id"`
	NumberOfReviews int64 `json:"number_of_reviews" db:"number_of_reviews"`
	SumOfReviews    int64 `json:"sum_of_reviews" db:"sum_of_reviews"`
}
