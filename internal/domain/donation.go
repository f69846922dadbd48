package domain

import "time"

// Donation is an offer of surplus food posted by a donor. Once claimed it
// becomes immutable to update and delete.
type Donation struct {
	ID          string
	Name        string
	FoodItem    string
	Quantity    int
	Location    string
	PhoneNumber string
	Address     string
	DonatedBy   string
	Claimed     bool
	ClaimedBy   *string
	CreatedAt   time.Time
}

// DonationFilter holds optional exact-match predicates for Filter. Empty
// fields are not applied.
type DonationFilter struct {
	Location string
	FoodItem string
}

// DonationPatch carries the fields an update may overwrite. Nil fields are
// left untouched.
type DonationPatch struct {
	Name        *string
	FoodItem    *string
	Quantity    *int
	Location    *string
	PhoneNumber *string
	Address     *string
}

// Empty reports whether the patch would change nothing.
func (p DonationPatch) Empty() bool {
	return p.Name == nil && p.FoodItem == nil && p.Quantity == nil &&
		p.Location == nil && p.PhoneNumber == nil && p.Address == nil
}

// DonationStats is the store-wide donation summary.
type DonationStats struct {
	Total   int64
	Claimed int64
}
