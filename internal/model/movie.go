package model

import "time"

// Movie represents a film listed in the catalog.  Movies belong to a
// venue and may have many scheduled shows.  This struct corresponds
// to a row in the `movies` table.
//
// Fields:
//  ID          – primary key identifier.
//  VenueID     – venue where the movie is screened.
//  Title       – movie title.
//  Description – short synopsis.
//  Director    – director name.
//  Genre       – genre label (e.g. SCI_FI).
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Movie struct {
	ID          uint64    // movies.id
	VenueID     uint64    // movies.venue_id
	Title       string    // movies.title
	Description string    // movies.description
	Director    string    // movies.director
	Genre       string    // movies.genre
	CreatedAt   time.Time // movies.created_at
	UpdatedAt   time.Time // movies.updated_at
}
