package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur/internal/form"
	"github.com/iliyamo/fyyur/internal/queue"
	"github.com/iliyamo/fyyur/internal/repository"
	"github.com/iliyamo/fyyur/internal/view"
)

// ListShows renders every show ordered by start time.
func (h *Handler) ListShows(c echo.Context) error {
	shows, err := h.Shows.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return h.render(c, http.StatusOK, view.Shows, "Shows", shows)
}

// NewShowForm renders an empty show form.
func (h *Handler) NewShowForm(c echo.Context) error {
	return h.renderShowForm(c, http.StatusOK, newShowPage(&form.ShowForm{}))
}

// CreateShow books an artist at a venue.  An unknown artist or venue is
// reported on its form field.
func (h *Handler) CreateShow(c echo.Context) error {
	f := new(form.ShowForm)
	page := newShowPage(f)
	if !bindForm(c, f, nil, page) {
		h.Metrics.Mutation(queue.EntityShow, "create", outcomeInvalid)
		return h.renderShowForm(c, http.StatusUnprocessableEntity, page)
	}
	s, err := f.ToShow()
	if err != nil {
		return err
	}

	if err := h.Shows.Create(c.Request().Context(), s); err != nil {
		switch {
		case errors.Is(err, repository.ErrArtistNotFound):
			page.Errors["artist_id"] = "no artist with this id"
		case errors.Is(err, repository.ErrVenueNotFound):
			page.Errors["venue_id"] = "no venue with this id"
		default:
			h.Log.Error().Err(err).Uint64("artist_id", s.ArtistID).Uint64("venue_id", s.VenueID).
				Msg("create show failed")
			h.Metrics.Mutation(queue.EntityShow, "create", outcomeError)
			h.flash(c, "An error occurred. Show could not be listed.")
			return redirect(c, "/")
		}
		h.Metrics.Mutation(queue.EntityShow, "create", outcomeInvalid)
		page.Message = checkDataMessage
		return h.renderShowForm(c, http.StatusUnprocessableEntity, page)
	}

	h.Metrics.Mutation(queue.EntityShow, "create", outcomeOK)
	h.publish(c, queue.KindCreated, queue.EntityShow, s.ID,
		fmt.Sprintf("artist %d at venue %d", s.ArtistID, s.VenueID))
	h.flash(c, "Show was successfully listed!")
	return redirect(c, "/shows")
}

func newShowPage(f *form.ShowForm) *view.FormPage {
	return view.NewFormPage("List a new show", "/shows/create", "Create Show", f)
}

func (h *Handler) renderShowForm(c echo.Context, status int, page *view.FormPage) error {
	return h.render(c, status, view.ShowForm, page.Heading, page)
}
