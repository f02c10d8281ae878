package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/cinetick/movie-booking/internal/model"
)

// ShowRepo manages persistence for the `shows` table. A show row carries
// the seat count and tier pricing the reservation engine consumes when
// initializing the show's seat inventory; after that the row is treated as
// immutable catalog data.
type ShowRepo struct {
	db *sql.DB
}

// NewShowRepo constructs a ShowRepo given a DB handle.
func NewShowRepo(db *sql.DB) *ShowRepo {
	return &ShowRepo{db: db}
}

// Create inserts a new show and populates the generated ID and DB-default
// timestamps on the given Show.
func (r *ShowRepo) Create(ctx context.Context, s *model.Show) error {
	const q = `INSERT INTO shows
	           (movie_id, starts_at, ends_at, total_seats, premium_rows, regular_price_cents, premium_price_cents)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		s.MovieID, s.StartsAt.UTC(), s.EndsAt.UTC(),
		s.TotalSeats, s.PremiumRows, s.RegularPriceCents, s.PremiumPriceCents)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)

	const sel = `SELECT created_at, updated_at FROM shows WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, s.ID).Scan(&s.CreatedAt, &s.UpdatedAt)
}

// GetByID fetches a show by id, returning ErrNotFound when absent.
func (r *ShowRepo) GetByID(ctx context.Context, id uint64) (*model.Show, error) {
	const q = `SELECT id, movie_id, starts_at, ends_at, total_seats, premium_rows,
	                  regular_price_cents, premium_price_cents, created_at, updated_at
	           FROM shows WHERE id = ?`
	var s model.Show
	if err := r.db.QueryRowContext(ctx, q, id).Scan(
		&s.ID, &s.MovieID, &s.StartsAt, &s.EndsAt, &s.TotalSeats, &s.PremiumRows,
		&s.RegularPriceCents, &s.PremiumPriceCents, &s.CreatedAt, &s.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// List returns all shows ordered by start time. Used at startup to rebuild
// the engine's seat inventories and by the catalog listing endpoint.
func (r *ShowRepo) List(ctx context.Context) ([]*model.Show, error) {
	const q = `SELECT id, movie_id, starts_at, ends_at, total_seats, premium_rows,
	                  regular_price_cents, premium_price_cents, created_at, updated_at
	           FROM shows ORDER BY starts_at, id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Show
	for rows.Next() {
		var s model.Show
		if err := rows.Scan(
			&s.ID, &s.MovieID, &s.StartsAt, &s.EndsAt, &s.TotalSeats, &s.PremiumRows,
			&s.RegularPriceCents, &s.PremiumPriceCents, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}
