package model

import "time"

// Show represents one artist performing at one venue at a given time.
// Shows are created once and never updated.  StartTime is stored in UTC
// and is the only scheduling field; whether a show is past or upcoming
// is decided when it is read.
type Show struct {
	ID        uint64    `db:"id"`         // shows.id
	ArtistID  uint64    `db:"artist_id"`  // shows.artist_id
	VenueID   uint64    `db:"venue_id"`   // shows.venue_id
	StartTime time.Time `db:"start_time"` // shows.start_time
	CreatedAt time.Time `db:"created_at"` // shows.created_at
}

// IsUpcoming reports whether the show starts at or after now.
func (s Show) IsUpcoming(now time.Time) bool {
	return !s.StartTime.Before(now)
}
