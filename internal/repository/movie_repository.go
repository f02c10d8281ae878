package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/cinetick/movie-booking/internal/model"
)

// MovieRepo encapsulates database queries for the `movies` table.
type MovieRepo struct {
	db *sql.DB
}

// NewMovieRepo constructs a MovieRepo with the provided DB handle.
func NewMovieRepo(db *sql.DB) *MovieRepo {
	return &MovieRepo{db: db}
}

// Create inserts a new movie. The referenced venue must exist; a foreign
// key failure is surfaced as-is for the handler to report. On success the
// movie's ID and timestamp fields are populated.
func (r *MovieRepo) Create(ctx context.Context, m *model.Movie) error {
	const qInsert = `INSERT INTO movies (venue_id, title, description, director, genre)
	                 VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, qInsert, m.VenueID, m.Title, m.Description, m.Director, m.Genre)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)

	const qSelect = `SELECT created_at, updated_at FROM movies WHERE id = ?`
	return r.db.QueryRowContext(ctx, qSelect, m.ID).Scan(&m.CreatedAt, &m.UpdatedAt)
}

// GetByID fetches a movie by id, returning ErrNotFound when absent.
func (r *MovieRepo) GetByID(ctx context.Context, id uint64) (*model.Movie, error) {
	const q = `SELECT id, venue_id, title, description, director, genre, created_at, updated_at
	           FROM movies WHERE id = ?`
	var m model.Movie
	if err := r.db.QueryRowContext(ctx, q, id).Scan(
		&m.ID, &m.VenueID, &m.Title, &m.Description, &m.Director, &m.Genre, &m.CreatedAt, &m.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// List returns all movies ordered by id.
func (r *MovieRepo) List(ctx context.Context) ([]*model.Movie, error) {
	const q = `SELECT id, venue_id, title, description, director, genre, created_at, updated_at
	           FROM movies ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Movie
	for rows.Next() {
		var m model.Movie
		if err := rows.Scan(&m.ID, &m.VenueID, &m.Title, &m.Description, &m.Director, &m.Genre, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}
