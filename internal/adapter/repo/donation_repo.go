package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"foodlink/internal/domain"
)

var donationColumns = []string{
	"id", "name", "food_item", "quantity", "location",
	"phone_number", "address", "donated_by", "claimed", "claimed_by", "created_at",
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// DonationRepositoryPG implements domain.DonationRepository using PostgreSQL.
type DonationRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewDonationRepository creates a new donation repo.
func NewDonationRepository(pool *pgxpool.Pool) *DonationRepositoryPG {
	return &DonationRepositoryPG{pool: pool}
}

// Create inserts a new donation and increments the donor's donationsMade
// counter inside one transaction.
func (r *DonationRepositoryPG) Create(ctx context.Context, donation *domain.Donation) (*domain.Donation, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("create donation: begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	row := tx.QueryRow(ctx, `
INSERT INTO donations (name, food_item, quantity, location, phone_number, address, donated_by)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING `+columnList()+`;
`, donation.Name, donation.FoodItem, donation.Quantity, donation.Location,
		donation.PhoneNumber, donation.Address, donation.DonatedBy)

	created, err := scanDonation(row)
	if err != nil {
		return nil, fmt.Errorf("create donation: %w", err)
	}

	_, err = tx.Exec(ctx, `
UPDATE users SET donations_made = donations_made + 1, updated_at = now() WHERE id = $1
`, donation.DonatedBy)
	if err != nil {
		return nil, fmt.Errorf("create donation: increment counter: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("create donation: commit: %w", err)
	}
	return created, nil
}

// List returns every donation, newest first.
func (r *DonationRepositoryPG) List(ctx context.Context) ([]domain.Donation, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+columnList()+` FROM donations ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	return collectDonations(rows)
}

// ListByDonor returns donations whose donor display name equals name.
func (r *DonationRepositoryPG) ListByDonor(ctx context.Context, name string) ([]domain.Donation, error) {
	rows, err := r.pool.Query(ctx, `
SELECT `+columnList()+` FROM donations WHERE name = $1 ORDER BY created_at DESC
`, name)
	if err != nil {
		return nil, err
	}
	return collectDonations(rows)
}

// Filter returns unclaimed donations matching the supplied predicates.
func (r *DonationRepositoryPG) Filter(ctx context.Context, filter domain.DonationFilter) ([]domain.Donation, error) {
	query, args, err := buildFilterQuery(filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("filter donations: build query: %w", err)
	}
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collectDonations(rows)
}

func buildFilterQuery(filter domain.DonationFilter) sq.SelectBuilder {
	b := psql.Select(donationColumns...).
		From("donations").
		Where(sq.Eq{"claimed": false}).
		OrderBy("created_at DESC")
	if filter.Location != "" {
		b = b.Where(sq.Eq{"location": filter.Location})
	}
	if filter.FoodItem != "" {
		b = b.Where(sq.Eq{"food_item": filter.FoodItem})
	}
	return b
}

// Update overwrites the patched fields of an unclaimed donation. The row is
// locked for the duration of the transaction so the claimed check and the
// write cannot interleave with a concurrent claim.
func (r *DonationRepositoryPG) Update(ctx context.Context, id string, patch domain.DonationPatch) (*domain.Donation, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("update donation: begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	row := tx.QueryRow(ctx, `SELECT `+columnList()+` FROM donations WHERE id = $1 FOR UPDATE`, id)
	current, err := scanDonation(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update donation: %w", err)
	}
	if current.Claimed {
		return nil, domain.ErrAlreadyClaimed
	}

	if !patch.Empty() {
		query, args, err := buildUpdateQuery(id, patch).ToSql()
		if err != nil {
			return nil, fmt.Errorf("update donation: build query: %w", err)
		}
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return nil, fmt.Errorf("update donation: %w", err)
		}
		applyPatch(current, patch)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("update donation: commit: %w", err)
	}
	return current, nil
}

func buildUpdateQuery(id string, patch domain.DonationPatch) sq.UpdateBuilder {
	b := psql.Update("donations").Where(sq.Eq{"id": id})
	if patch.Name != nil {
		b = b.Set("name", *patch.Name)
	}
	if patch.FoodItem != nil {
		b = b.Set("food_item", *patch.FoodItem)
	}
	if patch.Quantity != nil {
		b = b.Set("quantity", *patch.Quantity)
	}
	if patch.Location != nil {
		b = b.Set("location", *patch.Location)
	}
	if patch.PhoneNumber != nil {
		b = b.Set("phone_number", *patch.PhoneNumber)
	}
	if patch.Address != nil {
		b = b.Set("address", *patch.Address)
	}
	return b
}

func applyPatch(d *domain.Donation, patch domain.DonationPatch) {
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
}

// Delete removes an unclaimed donation permanently.
func (r *DonationRepositoryPG) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM donations WHERE id = $1 AND NOT claimed`, id)
	if err != nil {
		return fmt.Errorf("delete donation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return r.resolveMiss(ctx, r.pool, id)
	}
	return nil
}

// Claim flips claimed false->true. The conditional update decides the winner
// between racing claims; the loser observes zero affected rows.
func (r *DonationRepositoryPG) Claim(ctx context.Context, id, claimerID string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("claim donation: begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	tag, err := tx.Exec(ctx, `
UPDATE donations SET claimed = true, claimed_by = $2 WHERE id = $1 AND NOT claimed
`, id, claimerID)
	if err != nil {
		return fmt.Errorf("claim donation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return r.resolveMiss(ctx, tx, id)
	}

	_, err = tx.Exec(ctx, `
UPDATE users SET claimed_donations = claimed_donations + 1, updated_at = now() WHERE id = $1
`, claimerID)
	if err != nil {
		return fmt.Errorf("claim donation: increment counter: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("claim donation: commit: %w", err)
	}
	return nil
}

// Stats recomputes donation totals from the store.
func (r *DonationRepositoryPG) Stats(ctx context.Context) (domain.DonationStats, error) {
	var stats domain.DonationStats
	row := r.pool.QueryRow(ctx, `
SELECT count(*), count(*) FILTER (WHERE claimed) FROM donations
`)
	if err := row.Scan(&stats.Total, &stats.Claimed); err != nil {
		return domain.DonationStats{}, err
	}
	return stats, nil
}

type rowQuerier interface {
	QueryRow(ctx context.Context, query string, args ...any) pgx.Row
}

// resolveMiss decides whether a zero-row conditional write means the record is
// missing or already claimed.
func (r *DonationRepositoryPG) resolveMiss(ctx context.Context, q rowQuerier, id string) error {
	var claimed bool
	err := q.QueryRow(ctx, `SELECT claimed FROM donations WHERE id = $1`, id).Scan(&claimed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}
	if claimed {
		return domain.ErrAlreadyClaimed
	}
	return domain.ErrNotFound
}

func columnList() string {
	return strings.Join(donationColumns, ", ")
}

func collectDonations(rows pgx.Rows) ([]domain.Donation, error) {
	defer rows.Close()
	var items []domain.Donation
	for rows.Next() {
		d, err := scanDonation(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func scanDonation(row pgx.Row) (*domain.Donation, error) {
	var d domain.Donation
	err := row.Scan(&d.ID, &d.Name, &d.FoodItem, &d.Quantity, &d.Location,
		&d.PhoneNumber, &d.Address, &d.DonatedBy, &d.Claimed, &d.ClaimedBy, &d.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

var _ domain.DonationRepository = (*DonationRepositoryPG)(nil)
