package domain

import "time"

// User represents a registered donor or recipient account.
type User struct {
	ID               string
	Username         string
	Email            string
	PasswordHash     string
	DonationsMade    int
	ClaimedDonations int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
