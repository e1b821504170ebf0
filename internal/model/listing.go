package model

import "time"

// VenueSummary is a venue row as shown on listing and search pages.
type VenueSummary struct {
	ID               uint64 `db:"id"`
	Name             string `db:"name"`
	City             string `db:"city"`
	State            string `db:"state"`
	NumUpcomingShows int    `db:"num_upcoming_shows"`
}

// ArtistSummary is an artist row as shown on listing and search pages.
type ArtistSummary struct {
	ID               uint64 `db:"id"`
	Name             string `db:"name"`
	City             string `db:"city"`
	State            string `db:"state"`
	NumUpcomingShows int    `db:"num_upcoming_shows"`
}

// Area groups the venues of one city.
type Area struct {
	City   string
	State  string
	Venues []VenueSummary
}

// GroupByCity buckets venues by city name.  Areas appear in the order
// their first venue appears and each area keeps the input order of its
// venues.  The area state is the state of its first venue.
func GroupByCity(venues []VenueSummary) []Area {
	areas := []Area{}
	index := map[string]int{}
	for _, v := range venues {
		i, ok := index[v.City]
		if !ok {
			i = len(areas)
			index[v.City] = i
			areas = append(areas, Area{City: v.City, State: v.State})
		}
		areas[i].Venues = append(areas[i].Venues, v)
	}
	return areas
}

// ShowSlot is a show seen from one side of the booking: on a venue page
// the counterpart is the artist, on an artist page it is the venue.
type ShowSlot struct {
	CounterpartID        uint64    `db:"counterpart_id"`
	CounterpartName      string    `db:"counterpart_name"`
	CounterpartImageLink string    `db:"counterpart_image_link"`
	StartTime            time.Time `db:"start_time"`
}

// Schedule holds the shows of a venue or artist split around a moment.
type Schedule struct {
	Past     []ShowSlot
	Upcoming []ShowSlot
}

// PastCount returns the number of past shows.
func (s Schedule) PastCount() int { return len(s.Past) }

// UpcomingCount returns the number of upcoming shows.
func (s Schedule) UpcomingCount() int { return len(s.Upcoming) }

// SplitShows puts every slot into exactly one of the past or upcoming
// lists, keeping input order.  A slot starting exactly at now is upcoming.
func SplitShows(slots []ShowSlot, now time.Time) Schedule {
	sched := Schedule{Past: []ShowSlot{}, Upcoming: []ShowSlot{}}
	for _, s := range slots {
		if s.StartTime.Before(now) {
			sched.Past = append(sched.Past, s)
		} else {
			sched.Upcoming = append(sched.Upcoming, s)
		}
	}
	return sched
}

// ShowListing is a row of the shows page.
type ShowListing struct {
	ID              uint64    `db:"id"`
	StartTime       time.Time `db:"start_time"`
	VenueID         uint64    `db:"venue_id"`
	VenueName       string    `db:"venue_name"`
	ArtistID        uint64    `db:"artist_id"`
	ArtistName      string    `db:"artist_name"`
	ArtistImageLink string    `db:"artist_image_link"`
}
