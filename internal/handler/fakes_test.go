package handler

import (
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur/internal/model"
	"github.com/iliyamo/fyyur/internal/queue"
	"github.com/iliyamo/fyyur/internal/repository"
	"github.com/iliyamo/fyyur/internal/view"
)

type fakeVenues struct {
	rows      map[uint64]*model.Venue
	shows     map[uint64][]model.ShowSlot
	upcoming  map[uint64]int
	nextID    uint64
	failWrite error
	lastNow   time.Time
	lastTerm  string
}

func newFakeVenues() *fakeVenues {
	return &fakeVenues{rows: map[uint64]*model.Venue{}, shows: map[uint64][]model.ShowSlot{}, upcoming: map[uint64]int{}, nextID: 1}
}

func (f *fakeVenues) put(v model.Venue) {
	cp := v
	f.rows[v.ID] = &cp
	if v.ID >= f.nextID {
		f.nextID = v.ID + 1
	}
}

func (f *fakeVenues) summaries(match func(*model.Venue) bool) []model.VenueSummary {
	out := []model.VenueSummary{}
	for _, v := range f.rows {
		if match(v) {
			out = append(out, model.VenueSummary{ID: v.ID, Name: v.Name, City: v.City, State: v.State, NumUpcomingShows: f.upcoming[v.ID]})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (f *fakeVenues) ListWithUpcoming(_ context.Context, now time.Time) ([]model.VenueSummary, error) {
	f.lastNow = now
	return f.summaries(func(*model.Venue) bool { return true }), nil
}

func (f *fakeVenues) Search(_ context.Context, term string, now time.Time) ([]model.VenueSummary, error) {
	f.lastNow, f.lastTerm = now, term
	t := strings.ToLower(term)
	return f.summaries(func(v *model.Venue) bool {
		return strings.Contains(strings.ToLower(v.Name+" "+v.City+", "+v.State), t)
	}), nil
}

func (f *fakeVenues) GetByID(_ context.Context, id uint64) (*model.Venue, error) {
	v, ok := f.rows[id]
	if !ok {
		return nil, repository.ErrVenueNotFound
	}
	cp := *v
	return &cp, nil
}

func (f *fakeVenues) ListShows(_ context.Context, id uint64) ([]model.ShowSlot, error) {
	return f.shows[id], nil
}

func (f *fakeVenues) Create(_ context.Context, v *model.Venue) error {
	if f.failWrite != nil {
		return f.failWrite
	}
	v.ID = f.nextID
	f.put(*v)
	return nil
}

func (f *fakeVenues) Update(_ context.Context, v *model.Venue) error {
	if f.failWrite != nil {
		return f.failWrite
	}
	old, ok := f.rows[v.ID]
	if !ok {
		return repository.ErrVenueNotFound
	}
	v.CreatedAt = old.CreatedAt
	f.put(*v)
	return nil
}

func (f *fakeVenues) Delete(_ context.Context, id uint64) error {
	if _, ok := f.rows[id]; !ok {
		return repository.ErrVenueNotFound
	}
	if len(f.shows[id]) > 0 {
		return repository.ErrVenueHasShows
	}
	if f.failWrite != nil {
		return f.failWrite
	}
	delete(f.rows, id)
	return nil
}

type fakeArtists struct {
	rows      map[uint64]*model.Artist
	shows     map[uint64][]model.ShowSlot
	nextID    uint64
	failWrite error
	lastTerm  string
}

func newFakeArtists() *fakeArtists {
	return &fakeArtists{rows: map[uint64]*model.Artist{}, shows: map[uint64][]model.ShowSlot{}, nextID: 1}
}

func (f *fakeArtists) put(a model.Artist) {
	cp := a
	f.rows[a.ID] = &cp
	if a.ID >= f.nextID {
		f.nextID = a.ID + 1
	}
}

func (f *fakeArtists) list(match func(*model.Artist) bool) []model.ArtistSummary {
	out := []model.ArtistSummary{}
	for _, a := range f.rows {
		if match(a) {
			out = append(out, model.ArtistSummary{ID: a.ID, Name: a.Name, City: a.City, State: a.State})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (f *fakeArtists) ListWithUpcoming(context.Context, time.Time) ([]model.ArtistSummary, error) {
	return f.list(func(*model.Artist) bool { return true }), nil
}

func (f *fakeArtists) Search(_ context.Context, term string, _ time.Time) ([]model.ArtistSummary, error) {
	f.lastTerm = term
	t := strings.ToLower(term)
	return f.list(func(a *model.Artist) bool {
		return strings.Contains(strings.ToLower(a.Name+" "+a.City+", "+a.State), t)
	}), nil
}

func (f *fakeArtists) GetByID(_ context.Context, id uint64) (*model.Artist, error) {
	a, ok := f.rows[id]
	if !ok {
		return nil, repository.ErrArtistNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeArtists) ListShows(_ context.Context, id uint64) ([]model.ShowSlot, error) {
	return f.shows[id], nil
}

func (f *fakeArtists) Create(_ context.Context, a *model.Artist) error {
	if f.failWrite != nil {
		return f.failWrite
	}
	a.ID = f.nextID
	f.put(*a)
	return nil
}

func (f *fakeArtists) Update(_ context.Context, a *model.Artist) error {
	if f.failWrite != nil {
		return f.failWrite
	}
	if _, ok := f.rows[a.ID]; !ok {
		return repository.ErrArtistNotFound
	}
	f.put(*a)
	return nil
}

type fakeShows struct {
	venues    *fakeVenues
	artists   *fakeArtists
	rows      []model.Show
	failWrite error
}

func (f *fakeShows) ListAll(context.Context) ([]model.ShowListing, error) {
	out := []model.ShowListing{}
	for _, s := range f.rows {
		out = append(out, model.ShowListing{ID: s.ID, StartTime: s.StartTime,
			VenueID: s.VenueID, VenueName: f.venues.rows[s.VenueID].Name,
			ArtistID: s.ArtistID, ArtistName: f.artists.rows[s.ArtistID].Name})
	}
	return out, nil
}

func (f *fakeShows) Create(_ context.Context, s *model.Show) error {
	if _, ok := f.artists.rows[s.ArtistID]; !ok {
		return repository.ErrArtistNotFound
	}
	if _, ok := f.venues.rows[s.VenueID]; !ok {
		return repository.ErrVenueNotFound
	}
	if f.failWrite != nil {
		return f.failWrite
	}
	s.ID = uint64(len(f.rows) + 1)
	f.rows = append(f.rows, *s)
	return nil
}

type fakeFlash struct {
	added   []string
	pending []string
	popErr  error
}

func (f *fakeFlash) Add(_ echo.Context, msg string) error {
	f.added = append(f.added, msg)
	return nil
}

func (f *fakeFlash) Pop(echo.Context) ([]string, error) {
	msgs := f.pending
	f.pending = nil
	return msgs, f.popErr
}

type fakePublisher struct {
	mu     sync.Mutex
	events []queue.ListingEvent
	err    error
}

func (p *fakePublisher) Publish(_ context.Context, ev queue.ListingEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

func (p *fakePublisher) all() []queue.ListingEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]queue.ListingEvent(nil), p.events...)
}

type fakeRecorder struct {
	counts map[string]int
}

func (r *fakeRecorder) Mutation(entity, op, outcome string) {
	r.counts[entity+"/"+op+"/"+outcome]++
}

// recordingRenderer keeps the last rendered page instead of executing templates.
type recordingRenderer struct {
	name string
	page view.Page
}

func (r *recordingRenderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	r.name = name
	r.page, _ = data.(view.Page)
	_, err := io.WriteString(w, name)
	return err
}
