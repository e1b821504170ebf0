package model

import "time"

// Artist represents a performer that can be booked at venues.  It has
// the same shape as Venue except that LookingForVenues replaces
// LookingForTalent.  This struct corresponds to a row in the `artists`
// table.
type Artist struct {
	ID                 uint64    `db:"id"`                  // artists.id
	Name               string    `db:"name"`                // artists.name
	City               string    `db:"city"`                // artists.city
	State              string    `db:"state"`               // artists.state
	Address            string    `db:"address"`             // artists.address
	Phone              string    `db:"phone"`               // artists.phone
	Genres             Genres    `db:"genres"`              // artists.genres
	ImageLink          string    `db:"image_link"`          // artists.image_link
	FacebookLink       string    `db:"facebook_link"`       // artists.facebook_link
	WebsiteLink        string    `db:"website_link"`        // artists.website_link
	LookingForVenues   bool      `db:"looking_for_venues"`  // artists.looking_for_venues
	SeekingDescription string    `db:"seeking_description"` // artists.seeking_description
	CreatedAt          time.Time `db:"created_at"`          // artists.created_at
	UpdatedAt          time.Time `db:"updated_at"`          // artists.updated_at
}
