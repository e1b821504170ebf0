package form

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/iliyamo/fyyur/internal/model"
)

// VenueForm is the payload of the venue create and edit pages.
type VenueForm struct {
	Name               string   `form:"name" validate:"required,max=120"`
	City               string   `form:"city" validate:"required,max=120"`
	State              string   `form:"state" validate:"required,usstate"`
	Address            string   `form:"address" validate:"max=120"`
	Phone              string   `form:"phone" validate:"omitempty,phone"`
	Genres             []string `form:"genres" validate:"required,min=1,dive,genre"`
	ImageLink          string   `form:"image_link" validate:"omitempty,url,max=500"`
	FacebookLink       string   `form:"facebook_link" validate:"omitempty,url,max=120"`
	WebsiteLink        string   `form:"website_link" validate:"omitempty,url,max=120"`
	LookingForTalent   bool     `form:"looking_for_talent"`
	SeekingDescription string   `form:"seeking_description" validate:"max=500"`
}

// ArtistForm is the payload of the artist create and edit pages.
type ArtistForm struct {
	Name               string   `form:"name" validate:"required,max=120"`
	City               string   `form:"city" validate:"required,max=120"`
	State              string   `form:"state" validate:"required,usstate"`
	Address            string   `form:"address" validate:"max=120"`
	Phone              string   `form:"phone" validate:"omitempty,phone"`
	Genres             []string `form:"genres" validate:"required,min=1,dive,genre"`
	ImageLink          string   `form:"image_link" validate:"omitempty,url,max=500"`
	FacebookLink       string   `form:"facebook_link" validate:"omitempty,url,max=120"`
	WebsiteLink        string   `form:"website_link" validate:"omitempty,url,max=120"`
	LookingForVenues   bool     `form:"looking_for_venues"`
	SeekingDescription string   `form:"seeking_description" validate:"max=500"`
}

// ShowForm is the payload of the show create page.  Ids and time stay
// strings so a malformed value becomes a field error instead of a bind error.
type ShowForm struct {
	ArtistID  string `form:"artist_id" validate:"required,posint"`
	VenueID   string `form:"venue_id" validate:"required,posint"`
	StartTime string `form:"start_time" validate:"required,starttime"`
}

// StartTimeLayouts are the accepted start_time inputs, tried in order.
// Values carry no zone and are read as UTC.
var StartTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
}

var errBadStartTime = errors.New("unrecognised start time")

// ParseStartTime parses s using StartTimeLayouts.
func ParseStartTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range StartTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errBadStartTime
}

// Normalize trims surrounding whitespace from the text fields.
func (f *VenueForm) Normalize() {
	trim(&f.Name, &f.City, &f.State, &f.Address, &f.Phone,
		&f.ImageLink, &f.FacebookLink, &f.WebsiteLink, &f.SeekingDescription)
	f.State = strings.ToUpper(f.State)
}

// Normalize trims surrounding whitespace from the text fields.
func (f *ArtistForm) Normalize() {
	trim(&f.Name, &f.City, &f.State, &f.Address, &f.Phone,
		&f.ImageLink, &f.FacebookLink, &f.WebsiteLink, &f.SeekingDescription)
	f.State = strings.ToUpper(f.State)
}

func trim(fields ...*string) {
	for _, p := range fields {
		*p = strings.TrimSpace(*p)
	}
}

// Apply copies the form onto v, leaving ID and timestamps untouched.
func (f *VenueForm) Apply(v *model.Venue) {
	v.Name = f.Name
	v.City = f.City
	v.State = f.State
	v.Address = f.Address
	v.Phone = f.Phone
	v.Genres = model.Genres(append([]string(nil), f.Genres...))
	v.ImageLink = f.ImageLink
	v.FacebookLink = f.FacebookLink
	v.WebsiteLink = f.WebsiteLink
	v.LookingForTalent = f.LookingForTalent
	v.SeekingDescription = f.SeekingDescription
}

// Apply copies the form onto a, leaving ID and timestamps untouched.
func (f *ArtistForm) Apply(a *model.Artist) {
	a.Name = f.Name
	a.City = f.City
	a.State = f.State
	a.Address = f.Address
	a.Phone = f.Phone
	a.Genres = model.Genres(append([]string(nil), f.Genres...))
	a.ImageLink = f.ImageLink
	a.FacebookLink = f.FacebookLink
	a.WebsiteLink = f.WebsiteLink
	a.LookingForVenues = f.LookingForVenues
	a.SeekingDescription = f.SeekingDescription
}

// ToShow converts a validated form.  It fails only if the form was not
// validated first.
func (f *ShowForm) ToShow() (*model.Show, error) {
	artistID, err := strconv.ParseUint(strings.TrimSpace(f.ArtistID), 10, 64)
	if err != nil {
		return nil, err
	}
	venueID, err := strconv.ParseUint(strings.TrimSpace(f.VenueID), 10, 64)
	if err != nil {
		return nil, err
	}
	start, err := ParseStartTime(f.StartTime)
	if err != nil {
		return nil, err
	}
	return &model.Show{ArtistID: artistID, VenueID: venueID, StartTime: start}, nil
}

// VenueFormFrom pre-populates the edit page from a stored venue.
func VenueFormFrom(v *model.Venue) *VenueForm {
	return &VenueForm{
		Name:               v.Name,
		City:               v.City,
		State:              v.State,
		Address:            v.Address,
		Phone:              v.Phone,
		Genres:             append([]string(nil), v.Genres...),
		ImageLink:          v.ImageLink,
		FacebookLink:       v.FacebookLink,
		WebsiteLink:        v.WebsiteLink,
		LookingForTalent:   v.LookingForTalent,
		SeekingDescription: v.SeekingDescription,
	}
}

// ArtistFormFrom pre-populates the edit page from a stored artist.
func ArtistFormFrom(a *model.Artist) *ArtistForm {
	return &ArtistForm{
		Name:               a.Name,
		City:               a.City,
		State:              a.State,
		Address:            a.Address,
		Phone:              a.Phone,
		Genres:             append([]string(nil), a.Genres...),
		ImageLink:          a.ImageLink,
		FacebookLink:       a.FacebookLink,
		WebsiteLink:        a.WebsiteLink,
		LookingForVenues:   a.LookingForVenues,
		SeekingDescription: a.SeekingDescription,
	}
}

// HasGenre reports whether g is selected; used by the templates.
func (f *VenueForm) HasGenre(g string) bool { return contains(f.Genres, g) }

// HasGenre reports whether g is selected; used by the templates.
func (f *ArtistForm) HasGenre(g string) bool { return contains(f.Genres, g) }

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
