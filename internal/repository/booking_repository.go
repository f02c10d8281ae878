package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/cinetick/movie-booking/internal/model"
)

// BookingRecord bundles a booking row with its seats for insertion in one
// transaction.
type BookingRecord struct {
	Booking model.Booking
	Seats   []model.BookingSeat
}

// BookingDetail is the joined view returned when listing a user's
// bookings: the booking row plus movie title, show schedule and seat
// codes.
type BookingDetail struct {
	BookingID        string   `json:"booking_id"`
	ShowID           uint64   `json:"show_id"`
	MovieTitle       string   `json:"movie_title"`
	StartsAt         string   `json:"starts_at"`
	Seats            []string `json:"seats"`
	TotalAmountCents uint32   `json:"total_amount_cents"`
	CreatedAt        string   `json:"created_at"`
}

// BookingRepo persists the durable booking ledger. The in-memory engine is
// the arbiter of seat state; these rows exist so confirmed bookings
// survive a restart and can be listed per user.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo constructs a BookingRepo given a DB handle.
func NewBookingRepo(db *sql.DB) *BookingRepo {
	return &BookingRepo{db: db}
}

// Create writes a booking and its seats atomically. The booking id comes
// from the engine and is the primary key; replaying the same booking is a
// duplicate-key error surfaced to the caller.
func (r *BookingRepo) Create(ctx context.Context, rec BookingRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	const qBooking = `INSERT INTO bookings (id, user_id, show_id, total_amount_cents, created_at)
	                  VALUES (?, ?, ?, ?, ?)`
	b := rec.Booking
	if _, err := tx.ExecContext(ctx, qBooking,
		b.ID, b.UserID, b.ShowID, b.TotalAmountCents, b.CreatedAt.UTC()); err != nil {
		return err
	}

	if len(rec.Seats) > 0 {
		query := `INSERT INTO booking_seats (booking_id, seat_code, price_cents) VALUES `
		args := make([]interface{}, 0, len(rec.Seats)*3)
		for i, s := range rec.Seats {
			if i > 0 {
				query += ","
			}
			query += "(?, ?, ?)"
			args = append(args, b.ID, s.SeatCode, s.PriceCents)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// SeatsByShow returns the seat codes of every booking for a show. Used at
// startup to re-mark sold seats in the rebuilt inventory.
func (r *BookingRepo) SeatsByShow(ctx context.Context, showID uint64) ([]string, error) {
	const q = `SELECT bs.seat_code
	           FROM booking_seats bs
	           JOIN bookings b ON b.id = bs.booking_id
	           WHERE b.show_id = ?`
	rows, err := r.db.QueryContext(ctx, q, showID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var codes []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		codes = append(codes, c)
	}
	return codes, rows.Err()
}

// ListByUser returns a user's bookings newest first, each with its movie
// title, show start time and seat codes.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]BookingDetail, error) {
	const q = `SELECT b.id, b.show_id, m.title, s.starts_at, b.total_amount_cents, b.created_at
	           FROM bookings b
	           JOIN shows s ON s.id = b.show_id
	           JOIN movies m ON m.id = s.movie_id
	           WHERE b.user_id = ?
	           ORDER BY b.created_at DESC, b.id`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	details := make([]BookingDetail, 0)
	index := make(map[string]int)
	for rows.Next() {
		var d BookingDetail
		var startsAt, createdAt time.Time
		if err := rows.Scan(&d.BookingID, &d.ShowID, &d.MovieTitle, &startsAt, &d.TotalAmountCents, &createdAt); err != nil {
			rows.Close()
			return nil, err
		}
		d.StartsAt = startsAt.UTC().Format(time.RFC3339)
		d.CreatedAt = createdAt.UTC().Format(time.RFC3339)
		index[d.BookingID] = len(details)
		details = append(details, d)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if len(details) == 0 {
		return details, nil
	}

	// Second query for the seat codes; attach them to their bookings.
	const qSeats = `SELECT bs.booking_id, bs.seat_code
	                FROM booking_seats bs
	                JOIN bookings b ON b.id = bs.booking_id
	                WHERE b.user_id = ?
	                ORDER BY bs.id`
	seatRows, err := r.db.QueryContext(ctx, qSeats, userID)
	if err != nil {
		return nil, err
	}
	defer seatRows.Close()
	for seatRows.Next() {
		var bookingID, code string
		if err := seatRows.Scan(&bookingID, &code); err != nil {
			return nil, err
		}
		if i, ok := index[bookingID]; ok {
			details[i].Seats = append(details[i].Seats, code)
		}
	}
	return details, seatRows.Err()
}
