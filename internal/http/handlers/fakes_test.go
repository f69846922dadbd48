package handlers

import (
	"context"
	"time"

	"github.com/google/uuid"

	"foodlink/internal/domain"
	"foodlink/internal/middleware"
)

func withLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, middleware.LocaleKey, locale)
}

func withCountry(ctx context.Context, country string) context.Context {
	return context.WithValue(ctx, middleware.CountryKey, country)
}

// In-memory repositories mirroring the persistence semantics, so handler
// tests can exercise full request flows without a database.

type fakeUsers struct {
	byID     map[string]*domain.User
	failWith error
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: map[string]*domain.User{}}
}

func (f *fakeUsers) seed(user domain.User) *domain.User {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	f.byID[user.ID] = &user
	return &user
}

func (f *fakeUsers) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	for _, existing := range f.byID {
		if existing.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
		if existing.Username == user.Username {
			return nil, domain.ErrUsernameTaken
		}
	}
	created := f.seed(*user)
	out := *created
	return &out, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	for _, u := range f.byID {
		if u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*domain.User, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	u, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := *u
	return &out, nil
}

type fakeDonations struct {
	users    *fakeUsers
	byID     map[string]*domain.Donation
	order    []string
	failWith error
}

func newFakeDonations(users *fakeUsers) *fakeDonations {
	return &fakeDonations{users: users, byID: map[string]*domain.Donation{}}
}

func (f *fakeDonations) seed(d domain.Donation) *domain.Donation {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	d.CreatedAt = time.Now()
	f.byID[d.ID] = &d
	f.order = append(f.order, d.ID)
	return &d
}

func (f *fakeDonations) Create(_ context.Context, donation *domain.Donation) (*domain.Donation, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	created := f.seed(*donation)
	if f.users != nil {
		if u, ok := f.users.byID[donation.DonatedBy]; ok {
			u.DonationsMade++
		}
	}
	out := *created
	return &out, nil
}

func (f *fakeDonations) List(context.Context) ([]domain.Donation, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	var items []domain.Donation
	for _, id := range f.order {
		items = append(items, *f.byID[id])
	}
	return items, nil
}

func (f *fakeDonations) ListByDonor(_ context.Context, name string) ([]domain.Donation, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	var items []domain.Donation
	for _, id := range f.order {
		if f.byID[id].Name == name {
			items = append(items, *f.byID[id])
		}
	}
	return items, nil
}

func (f *fakeDonations) Filter(_ context.Context, filter domain.DonationFilter) ([]domain.Donation, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	var items []domain.Donation
	for _, id := range f.order {
		d := f.byID[id]
		if d.Claimed {
			continue
		}
		if filter.Location != "" && d.Location != filter.Location {
			continue
		}
		if filter.FoodItem != "" && d.FoodItem != filter.FoodItem {
			continue
		}
		items = append(items, *d)
	}
	return items, nil
}

func (f *fakeDonations) Update(_ context.Context, id string, patch domain.DonationPatch) (*domain.Donation, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	d, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if d.Claimed {
		return nil, domain.ErrAlreadyClaimed
	}
	if patch.Name != nil {
		d.Name = *patch.Name
	}
	if patch.FoodItem != nil {
		d.FoodItem = *patch.FoodItem
	}
	if patch.Quantity != nil {
		d.Quantity = *patch.Quantity
	}
	if patch.Location != nil {
		d.Location = *patch.Location
	}
	if patch.PhoneNumber != nil {
		d.PhoneNumber = *patch.PhoneNumber
	}
	if patch.Address != nil {
		d.Address = *patch.Address
	}
	out := *d
	return &out, nil
}

func (f *fakeDonations) Delete(_ context.Context, id string) error {
	if f.failWith != nil {
		return f.failWith
	}
	d, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	if d.Claimed {
		return domain.ErrAlreadyClaimed
	}
	delete(f.byID, id)
	for i, oid := range f.order {
		if oid == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeDonations) Claim(_ context.Context, id, claimerID string) error {
	if f.failWith != nil {
		return f.failWith
	}
	d, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	if d.Claimed {
		return domain.ErrAlreadyClaimed
	}
	d.Claimed = true
	claimer := claimerID
	d.ClaimedBy = &claimer
	if f.users != nil {
		if u, ok := f.users.byID[claimerID]; ok {
			u.ClaimedDonations++
		}
	}
	return nil
}

func (f *fakeDonations) Stats(context.Context) (domain.DonationStats, error) {
	if f.failWith != nil {
		return domain.DonationStats{}, f.failWith
	}
	var stats domain.DonationStats
	for _, d := range f.byID {
		stats.Total++
		if d.Claimed {
			stats.Claimed++
		}
	}
	return stats, nil
}

var (
	_ domain.UserRepository     = (*fakeUsers)(nil)
	_ domain.DonationRepository = (*fakeDonations)(nil)
)
