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

// ListArtists renders every artist ordered by name.
func (h *Handler) ListArtists(c echo.Context) error {
	artists, err := h.Artists.ListWithUpcoming(c.Request().Context(), h.Now())
	if err != nil {
		return err
	}
	return h.render(c, http.StatusOK, view.Artists, "Artists", artists)
}

// SearchArtists renders the artists whose "Name City, State" contains search_term.
func (h *Handler) SearchArtists(c echo.Context) error {
	term := c.FormValue("search_term")
	artists, err := h.Artists.Search(c.Request().Context(), term, h.Now())
	if err != nil {
		return err
	}
	items := make([]view.SearchItem, 0, len(artists))
	for _, a := range artists {
		items = append(items, view.SearchItem{ID: a.ID, Name: a.Name, NumUpcomingShows: a.NumUpcomingShows})
	}
	page := view.SearchPage{Term: term, Count: len(items), Base: "artists", Items: items}
	return h.render(c, http.StatusOK, view.Search, "Artist search", page)
}

// ShowArtist renders one artist with its past and upcoming shows.
func (h *Handler) ShowArtist(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	a, err := h.Artists.GetByID(ctx, id)
	if err != nil {
		return notFoundOr(err)
	}
	slots, err := h.Artists.ListShows(ctx, id)
	if err != nil {
		return err
	}
	detail := view.ArtistDetail{Artist: a, Schedule: model.SplitShows(slots, h.Now())}
	return h.render(c, http.StatusOK, view.ArtistPage, a.Name, detail)
}

// NewArtistForm renders an empty artist form.
func (h *Handler) NewArtistForm(c echo.Context) error {
	return h.renderArtistForm(c, http.StatusOK, newArtistPage(&form.ArtistForm{}))
}

// CreateArtist validates the submitted form and lists a new artist.
func (h *Handler) CreateArtist(c echo.Context) error {
	f := new(form.ArtistForm)
	page := newArtistPage(f)
	if !bindForm(c, f, f.Normalize, page) {
		h.Metrics.Mutation(queue.EntityArtist, "create", outcomeInvalid)
		return h.renderArtistForm(c, http.StatusUnprocessableEntity, page)
	}

	a := &model.Artist{}
	f.Apply(a)
	if err := h.Artists.Create(c.Request().Context(), a); err != nil {
		h.Log.Error().Err(err).Str("name", f.Name).Msg("create artist failed")
		h.Metrics.Mutation(queue.EntityArtist, "create", outcomeError)
		h.flash(c, "An error occurred. Artist "+f.Name+" could not be listed.")
		return redirect(c, "/")
	}

	h.Metrics.Mutation(queue.EntityArtist, "create", outcomeOK)
	h.publish(c, queue.KindCreated, queue.EntityArtist, a.ID, a.Name)
	h.flash(c, "Artist "+a.Name+" was successfully listed!")
	return redirect(c, "/artists")
}

// EditArtistForm renders the artist form pre-populated from storage.
func (h *Handler) EditArtistForm(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	a, err := h.Artists.GetByID(c.Request().Context(), id)
	if err != nil {
		return notFoundOr(err)
	}
	return h.renderArtistForm(c, http.StatusOK, editArtistPage(id, form.ArtistFormFrom(a)))
}

// UpdateArtist validates the submitted form and rewrites the stored artist.
func (h *Handler) UpdateArtist(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	f := new(form.ArtistForm)
	page := editArtistPage(id, f)
	if !bindForm(c, f, f.Normalize, page) {
		if _, err := h.Artists.GetByID(c.Request().Context(), id); err != nil {
			if errors.Is(err, repository.ErrArtistNotFound) {
				h.Metrics.Mutation(queue.EntityArtist, "update", outcomeNotFound)
			}
			return notFoundOr(err)
		}
		h.Metrics.Mutation(queue.EntityArtist, "update", outcomeInvalid)
		return h.renderArtistForm(c, http.StatusUnprocessableEntity, page)
	}

	a := &model.Artist{ID: id}
	f.Apply(a)
	if err := h.Artists.Update(c.Request().Context(), a); err != nil {
		if errors.Is(err, repository.ErrArtistNotFound) {
			h.Metrics.Mutation(queue.EntityArtist, "update", outcomeNotFound)
			return echo.ErrNotFound
		}
		h.Log.Error().Err(err).Uint64("artist_id", id).Msg("update artist failed")
		h.Metrics.Mutation(queue.EntityArtist, "update", outcomeError)
		h.flash(c, "An error occurred. Artist "+f.Name+" could not be updated.")
		return redirect(c, detailPath("artists", id))
	}

	h.Metrics.Mutation(queue.EntityArtist, "update", outcomeOK)
	h.publish(c, queue.KindUpdated, queue.EntityArtist, a.ID, a.Name)
	h.flash(c, "Artist "+a.Name+" was successfully updated!")
	return redirect(c, detailPath("artists", id))
}

func newArtistPage(f *form.ArtistForm) *view.FormPage {
	return view.NewFormPage("List a new artist", "/artists/create", "Create Artist", f)
}

func editArtistPage(id uint64, f *form.ArtistForm) *view.FormPage {
	return view.NewFormPage("Edit artist", detailPath("artists", id)+"/edit", "Edit Artist", f)
}

func (h *Handler) renderArtistForm(c echo.Context, status int, page *view.FormPage) error {
	return h.render(c, status, view.ArtistForm, page.Heading, page)
}
