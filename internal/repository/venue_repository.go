package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/cinetick/movie-booking/internal/model"
)

// VenueRepo encapsulates database queries for the `venues` table.
type VenueRepo struct {
	db *sql.DB
}

// NewVenueRepo constructs a VenueRepo with the provided DB handle.
func NewVenueRepo(db *sql.DB) *VenueRepo {
	return &VenueRepo{db: db}
}

// Create inserts a new venue. On success the venue's ID and DB-default
// timestamp fields are populated so callers receive a complete record.
func (r *VenueRepo) Create(ctx context.Context, v *model.Venue) error {
	const qInsert = "INSERT INTO venues (name, city) VALUES (?, ?)"
	res, err := r.db.ExecContext(ctx, qInsert, v.Name, v.City)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	v.ID = uint64(id)

	const qSelect = "SELECT name, city, created_at, updated_at FROM venues WHERE id = ?"
	return r.db.QueryRowContext(ctx, qSelect, v.ID).Scan(&v.Name, &v.City, &v.CreatedAt, &v.UpdatedAt)
}

// GetByID fetches a venue by its ID, returning ErrNotFound when no row
// exists.
func (r *VenueRepo) GetByID(ctx context.Context, id uint64) (*model.Venue, error) {
	const q = "SELECT id, name, city, created_at, updated_at FROM venues WHERE id = ?"
	var v model.Venue
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&v.ID, &v.Name, &v.City, &v.CreatedAt, &v.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

// List returns all venues ordered by id.
func (r *VenueRepo) List(ctx context.Context) ([]*model.Venue, error) {
	const q = "SELECT id, name, city, created_at, updated_at FROM venues ORDER BY id"
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Venue
	for rows.Next() {
		var v model.Venue
		if err := rows.Scan(&v.ID, &v.Name, &v.City, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, &v)
	}
	return out, rows.Err()
}
