package model

import "time"

// Show represents a scheduled screening of a movie.  It carries the
// seat counts and two-tier pricing consumed by the reservation engine
// when the show's seat inventory is initialized.  The catalog data is
// treated as immutable for the show's lifetime once the inventory
// exists.  This struct corresponds to a row in the `shows` table.
//
// Fields:
//  ID                – primary key identifier.
//  MovieID           – movie being screened.
//  StartsAt          – when the show begins.
//  EndsAt            – when the show ends (must be after StartsAt).
//  TotalSeats        – number of seats generated for the show.
//  PremiumRows       – trailing rows of the layout priced as premium.
//  RegularPriceCents – price of a regular seat in cents.
//  PremiumPriceCents – price of a premium seat in cents.
//  CreatedAt         – creation timestamp.
//  UpdatedAt         – last update timestamp.
type Show struct {
	ID                uint64    // shows.id
	MovieID           uint64    // shows.movie_id
	StartsAt          time.Time // shows.starts_at
	EndsAt            time.Time // shows.ends_at
	TotalSeats        uint32    // shows.total_seats
	PremiumRows       uint32    // shows.premium_rows
	RegularPriceCents uint32    // shows.regular_price_cents
	PremiumPriceCents uint32    // shows.premium_price_cents
	CreatedAt         time.Time // shows.created_at
	UpdatedAt         time.Time // shows.updated_at
}
