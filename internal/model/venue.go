package model

import "time"

// Venue represents a place that hosts shows.  A venue can have many
// shows booked at it.  This struct corresponds to a row in the
// `venues` table.
//
// Genres are stored comma separated in a single column.  SeekingDescription
// is shown only while LookingForTalent is set.
type Venue struct {
	ID                 uint64    `db:"id"`                  // venues.id
	Name               string    `db:"name"`                // venues.name
	City               string    `db:"city"`                // venues.city
	State              string    `db:"state"`               // venues.state
	Address            string    `db:"address"`             // venues.address
	Phone              string    `db:"phone"`               // venues.phone
	Genres             Genres    `db:"genres"`              // venues.genres
	ImageLink          string    `db:"image_link"`          // venues.image_link
	FacebookLink       string    `db:"facebook_link"`       // venues.facebook_link
	WebsiteLink        string    `db:"website_link"`        // venues.website_link
	LookingForTalent   bool      `db:"looking_for_talent"`  // venues.looking_for_talent
	SeekingDescription string    `db:"seeking_description"` // venues.seeking_description
	CreatedAt          time.Time `db:"created_at"`          // venues.created_at
	UpdatedAt          time.Time `db:"updated_at"`          // venues.updated_at
}
