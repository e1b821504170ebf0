package view

import (
	"github.com/iliyamo/fyyur/internal/form"
	"github.com/iliyamo/fyyur/internal/model"
)

// Template names.
const (
	Home        = "pages/home"
	Venues      = "pages/venues"
	Artists     = "pages/artists"
	Shows       = "pages/shows"
	Search      = "pages/search"
	VenuePage   = "pages/venue"
	ArtistPage  = "pages/artist"
	VenueForm   = "pages/venue_form"
	ArtistForm  = "pages/artist_form"
	ShowForm    = "pages/show_form"
	NotFound    = "errors/404"
	ServerError = "errors/500"
)

// SearchItem is one search hit.
type SearchItem struct {
	ID               uint64
	Name             string
	NumUpcomingShows int
}

// SearchPage lists search hits; Base is the path segment hits link under.
type SearchPage struct {
	Term  string
	Count int
	Base  string
	Items []SearchItem
}

// VenueDetail is the venue page.
type VenueDetail struct {
	Venue    *model.Venue
	Schedule model.Schedule
}

// ArtistDetail is the artist page.
type ArtistDetail struct {
	Artist   *model.Artist
	Schedule model.Schedule
}

// FormPage drives the create and edit pages.  Form is one of the form
// package payloads.
type FormPage struct {
	Heading string
	Action  string
	Submit  string
	Message string
	Form    any
	Errors  form.Errors
	States  []form.Choice
	Genres  []form.Choice
}

// NewFormPage fills in the choice lists.
func NewFormPage(heading, action, submit string, f any) *FormPage {
	return &FormPage{
		Heading: heading,
		Action:  action,
		Submit:  submit,
		Form:    f,
		Errors:  form.Errors{},
		States:  form.States,
		Genres:  form.Genres,
	}
}
