package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur/internal/form"
	"github.com/iliyamo/fyyur/internal/model"
	"github.com/iliyamo/fyyur/internal/queue"
	"github.com/iliyamo/fyyur/internal/repository"
	"github.com/iliyamo/fyyur/internal/view"
)

// ListVenues renders every venue grouped by city with its upcoming-show count.
func (h *Handler) ListVenues(c echo.Context) error {
	venues, err := h.Venues.ListWithUpcoming(c.Request().Context(), h.Now())
	if err != nil {
		return err
	}
	return h.render(c, http.StatusOK, view.Venues, "Venues", model.GroupByCity(venues))
}

// SearchVenues renders the venues whose "Name City, State" contains search_term.
func (h *Handler) SearchVenues(c echo.Context) error {
	term := c.FormValue("search_term")
	venues, err := h.Venues.Search(c.Request().Context(), term, h.Now())
	if err != nil {
		return err
	}
	items := make([]view.SearchItem, 0, len(venues))
	for _, v := range venues {
		items = append(items, view.SearchItem{ID: v.ID, Name: v.Name, NumUpcomingShows: v.NumUpcomingShows})
	}
	page := view.SearchPage{Term: term, Count: len(items), Base: "venues", Items: items}
	return h.render(c, http.StatusOK, view.Search, "Venue search", page)
}

// ShowVenue renders one venue with its past and upcoming shows.
func (h *Handler) ShowVenue(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	v, err := h.Venues.GetByID(ctx, id)
	if err != nil {
		return notFoundOr(err)
	}
	slots, err := h.Venues.ListShows(ctx, id)
	if err != nil {
		return err
	}
	detail := view.VenueDetail{Venue: v, Schedule: model.SplitShows(slots, h.Now())}
	return h.render(c, http.StatusOK, view.VenuePage, v.Name, detail)
}

// NewVenueForm renders an empty venue form.
func (h *Handler) NewVenueForm(c echo.Context) error {
	return h.renderVenueForm(c, http.StatusOK, newVenuePage(&form.VenueForm{}))
}

// CreateVenue validates the submitted form and lists a new venue.
func (h *Handler) CreateVenue(c echo.Context) error {
	f := new(form.VenueForm)
	page := newVenuePage(f)
	if !h.bindVenue(c, f, page) {
		h.Metrics.Mutation(queue.EntityVenue, "create", outcomeInvalid)
		return h.renderVenueForm(c, http.StatusUnprocessableEntity, page)
	}

	v := &model.Venue{}
	f.Apply(v)
	if err := h.Venues.Create(c.Request().Context(), v); err != nil {
		h.Log.Error().Err(err).Str("name", f.Name).Msg("create venue failed")
		h.Metrics.Mutation(queue.EntityVenue, "create", outcomeError)
		h.flash(c, "An error occurred. Venue "+f.Name+" could not be listed.")
		return redirect(c, "/")
	}

	h.Metrics.Mutation(queue.EntityVenue, "create", outcomeOK)
	h.publish(c, queue.KindCreated, queue.EntityVenue, v.ID, v.Name)
	h.flash(c, "Venue "+v.Name+" was successfully listed!")
	return redirect(c, "/venues")
}

// EditVenueForm renders the venue form pre-populated from storage.
func (h *Handler) EditVenueForm(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	v, err := h.Venues.GetByID(c.Request().Context(), id)
	if err != nil {
		return notFoundOr(err)
	}
	return h.renderVenueForm(c, http.StatusOK, editVenuePage(id, form.VenueFormFrom(v)))
}

// UpdateVenue validates the submitted form and rewrites the stored venue.
func (h *Handler) UpdateVenue(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	f := new(form.VenueForm)
	page := editVenuePage(id, f)
	if !h.bindVenue(c, f, page) {
		if _, err := h.Venues.GetByID(c.Request().Context(), id); err != nil {
			if errors.Is(err, repository.ErrVenueNotFound) {
				h.Metrics.Mutation(queue.EntityVenue, "update", outcomeNotFound)
			}
			return notFoundOr(err)
		}
		h.Metrics.Mutation(queue.EntityVenue, "update", outcomeInvalid)
		return h.renderVenueForm(c, http.StatusUnprocessableEntity, page)
	}

	v := &model.Venue{ID: id}
	f.Apply(v)
	if err := h.Venues.Update(c.Request().Context(), v); err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			h.Metrics.Mutation(queue.EntityVenue, "update", outcomeNotFound)
			return echo.ErrNotFound
		}
		h.Log.Error().Err(err).Uint64("venue_id", id).Msg("update venue failed")
		h.Metrics.Mutation(queue.EntityVenue, "update", outcomeError)
		h.flash(c, "An error occurred. Venue "+f.Name+" could not be updated.")
		return redirect(c, detailPath("venues", id))
	}

	h.Metrics.Mutation(queue.EntityVenue, "update", outcomeOK)
	h.publish(c, queue.KindUpdated, queue.EntityVenue, v.ID, v.Name)
	h.flash(c, "Venue "+v.Name+" was successfully updated!")
	return redirect(c, detailPath("venues", id))
}

// DeleteVenue removes a venue that hosts no shows.  A venue with shows is
// left untouched and the visitor is sent back to its page.
func (h *Handler) DeleteVenue(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	v, err := h.Venues.GetByID(ctx, id)
	if err != nil {
		return notFoundOr(err)
	}

	switch err := h.Venues.Delete(ctx, id); {
	case err == nil:
		h.Metrics.Mutation(queue.EntityVenue, "delete", outcomeOK)
		h.publish(c, queue.KindDeleted, queue.EntityVenue, id, v.Name)
		h.flash(c, "Venue "+v.Name+" has been deleted.")
		return redirect(c, "/")
	case errors.Is(err, repository.ErrVenueHasShows):
		h.Metrics.Mutation(queue.EntityVenue, "delete", outcomeBlocked)
		h.flash(c, "Unable to remove the venue on which shows are held!")
		return redirect(c, detailPath("venues", id))
	case errors.Is(err, repository.ErrVenueNotFound):
		h.Metrics.Mutation(queue.EntityVenue, "delete", outcomeNotFound)
		return echo.ErrNotFound
	default:
		h.Log.Error().Err(err).Uint64("venue_id", id).Msg("delete venue failed")
		h.Metrics.Mutation(queue.EntityVenue, "delete", outcomeError)
		h.flash(c, "Venue "+v.Name+" could not be deleted.")
		return redirect(c, "/")
	}
}

func newVenuePage(f *form.VenueForm) *view.FormPage {
	return view.NewFormPage("List a new venue", "/venues/create", "Create Venue", f)
}

func editVenuePage(id uint64, f *form.VenueForm) *view.FormPage {
	return view.NewFormPage("Edit venue", detailPath("venues", id)+"/edit", "Edit Venue", f)
}

func (h *Handler) renderVenueForm(c echo.Context, status int, page *view.FormPage) error {
	return h.render(c, status, view.VenueForm, page.Heading, page)
}

// bindVenue binds and validates f, filling page with the problems found.
func (h *Handler) bindVenue(c echo.Context, f *form.VenueForm, page *view.FormPage) bool {
	return bindForm(c, f, f.Normalize, page)
}

// bindForm binds the request into f, normalises it and validates it.  On
// failure page carries the per-field errors and the form-level message.
func bindForm(c echo.Context, f any, normalize func(), page *view.FormPage) bool {
	if err := c.Bind(f); err != nil {
		page.Message = checkDataMessage
		return false
	}
	if normalize != nil {
		normalize()
	}
	if err := c.Validate(f); err != nil {
		page.Errors = form.FieldErrors(err)
		page.Message = checkDataMessage
		return false
	}
	return true
}

// notFoundOr maps the repository not-found sentinels to a 404.
func notFoundOr(err error) error {
	if errors.Is(err, repository.ErrVenueNotFound) || errors.Is(err, repository.ErrArtistNotFound) {
		return echo.ErrNotFound
	}
	return err
}
