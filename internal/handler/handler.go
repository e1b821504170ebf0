// Package handler contains the HTTP handlers of the Fyyur web app.  Each
// handler orchestrates one page: it validates input, calls the
// repositories, records side effects (flash messages, listing events,
// metrics) and renders or redirects.
package handler

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/iliyamo/fyyur/internal/flash"
	"github.com/iliyamo/fyyur/internal/model"
	"github.com/iliyamo/fyyur/internal/queue"
	"github.com/iliyamo/fyyur/internal/view"
)

// VenueStore is the venue persistence the handlers need.
type VenueStore interface {
	ListWithUpcoming(ctx context.Context, now time.Time) ([]model.VenueSummary, error)
	Search(ctx context.Context, term string, now time.Time) ([]model.VenueSummary, error)
	GetByID(ctx context.Context, id uint64) (*model.Venue, error)
	ListShows(ctx context.Context, venueID uint64) ([]model.ShowSlot, error)
	Create(ctx context.Context, v *model.Venue) error
	Update(ctx context.Context, v *model.Venue) error
	Delete(ctx context.Context, id uint64) error
}

// ArtistStore is the artist persistence the handlers need.
type ArtistStore interface {
	ListWithUpcoming(ctx context.Context, now time.Time) ([]model.ArtistSummary, error)
	Search(ctx context.Context, term string, now time.Time) ([]model.ArtistSummary, error)
	GetByID(ctx context.Context, id uint64) (*model.Artist, error)
	ListShows(ctx context.Context, artistID uint64) ([]model.ShowSlot, error)
	Create(ctx context.Context, a *model.Artist) error
	Update(ctx context.Context, a *model.Artist) error
}

// ShowStore is the show persistence the handlers need.
type ShowStore interface {
	ListAll(ctx context.Context) ([]model.ShowListing, error)
	Create(ctx context.Context, s *model.Show) error
}

// MutationRecorder counts listing mutations by outcome.
type MutationRecorder interface {
	Mutation(entity, op, outcome string)
}

type nopRecorder struct{}

func (nopRecorder) Mutation(string, string, string) {}

// Mutation outcomes.
const (
	outcomeOK       = "ok"
	outcomeInvalid  = "invalid"
	outcomeNotFound = "not_found"
	outcomeBlocked  = "blocked"
	outcomeError    = "error"
)

// checkDataMessage is shown above a form that failed validation.
const checkDataMessage = "Sorry! Please check your data."

// Handler bundles the dependencies of every page.
type Handler struct {
	Venues  VenueStore
	Artists ArtistStore
	Shows   ShowStore
	Flash   flash.Store
	Events  queue.Publisher
	Metrics MutationRecorder
	Log     zerolog.Logger
	// Now is the clock upcoming/past splits are evaluated against.
	Now func() time.Time

	publishTimeout time.Duration
	pending        sync.WaitGroup
}

// New constructs a Handler and panics if a store is missing.  A nil
// publisher or recorder disables that side effect.
func New(venues VenueStore, artists ArtistStore, shows ShowStore, fl flash.Store,
	events queue.Publisher, metrics MutationRecorder, log zerolog.Logger) *Handler {
	if venues == nil || artists == nil || shows == nil || fl == nil {
		panic("nil dependency passed to handler.New")
	}
	if events == nil {
		events = queue.NopPublisher{}
	}
	if metrics == nil {
		metrics = nopRecorder{}
	}
	return &Handler{
		Venues:         venues,
		Artists:        artists,
		Shows:          shows,
		Flash:          fl,
		Events:         events,
		Metrics:        metrics,
		Log:            log,
		Now:            time.Now,
		publishTimeout: 5 * time.Second,
	}
}

// Wait blocks until every listing event handed to the publisher has been
// sent or has failed.
func (h *Handler) Wait() {
	h.pending.Wait()
}

// render pops the visitor's flash messages into the page and renders it.
func (h *Handler) render(c echo.Context, status int, name, title string, data any) error {
	msgs, err := h.Flash.Pop(c)
	if err != nil {
		h.Log.Warn().Err(err).Msg("flash: pop failed")
	}
	return c.Render(status, name, view.Page{Title: title, Flashes: msgs, Data: data})
}

// flash queues msg for the next page.  A store failure only loses the message.
func (h *Handler) flash(c echo.Context, msg string) {
	if err := h.Flash.Add(c, msg); err != nil {
		h.Log.Warn().Err(err).Msg("flash: add failed")
	}
}

func redirect(c echo.Context, to string) error {
	return c.Redirect(http.StatusSeeOther, to)
}

// publish sends ev in the background; failures are logged by the publisher
// and never reach the client.
func (h *Handler) publish(c echo.Context, kind, entity string, id uint64, name string) {
	ev := queue.NewListingEvent(kind, entity, id, name, h.Now())
	ctx := context.WithoutCancel(c.Request().Context())
	h.pending.Add(1)
	go func() {
		defer h.pending.Done()
		ctx, cancel := context.WithTimeout(ctx, h.publishTimeout)
		defer cancel()
		_ = h.Events.Publish(ctx, ev)
	}()
}

// parseID reads the :id path parameter.  Anything that is not a positive
// integer is reported as a missing page.
func parseID(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, echo.ErrNotFound
	}
	return id, nil
}

func detailPath(base string, id uint64) string {
	return "/" + base + "/" + strconv.FormatUint(id, 10)
}
