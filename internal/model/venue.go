package model

import "time"

// Venue represents a physical theatre location where movies are
// screened.  Venues are created by administrators and referenced by
// movies.  This struct corresponds to a row in the `venues` table.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – venue name (e.g. "PVR Orion").
//  City      – city the venue is located in.
//  CreatedAt – timestamp when the venue was created.
//  UpdatedAt – timestamp of last update.
type Venue struct {
	ID        uint64    // venues.id
	Name      string    // venues.name
	City      string    // venues.city
	CreatedAt time.Time // venues.created_at
	UpdatedAt time.Time // venues.updated_at
}
