package domain

import "context"

// UserRepository defines access methods for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
}

// DonationRepository handles donation persistence and the claim transition.
type DonationRepository interface {
	// Create inserts the donation and increments the donor's donationsMade
	// counter in the same transaction.
	Create(ctx context.Context, donation *Donation) (*Donation, error)
	List(ctx context.Context) ([]Donation, error)
	ListByDonor(ctx context.Context, name string) ([]Donation, error)
	// Filter returns unclaimed donations matching the given predicates.
	Filter(ctx context.Context, filter DonationFilter) ([]Donation, error)
	// Update overwrites the patched fields. Returns ErrAlreadyClaimed when the
	// record is claimed and ErrNotFound when the id is unknown.
	Update(ctx context.Context, id string, patch DonationPatch) (*Donation, error)
	Delete(ctx context.Context, id string) error
	// Claim flips claimed false->true for the given claimer and increments the
	// claimer's claimedDonations counter in the same transaction. The flip is a
	// conditional update, so exactly one of two racing claims wins.
	Claim(ctx context.Context, id, claimerID string) error
	Stats(ctx context.Context) (DonationStats, error)
}
