// Package repository contains data access logic separated from HTTP handlers.
// This file holds the venue queries: listings with upcoming show counts,
// search, detail loads and transactional writes.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/fyyur/internal/database"
	"github.com/iliyamo/fyyur/internal/model"
)

const venueColumns = `id, name, city, state, address, phone, genres, image_link, facebook_link,
	website_link, looking_for_talent, seeking_description, created_at, updated_at`

// VenueRepo encapsulates all database queries related to venues.
type VenueRepo struct {
	db *sqlx.DB
}

// NewVenueRepo constructs a VenueRepo with the provided DB handle.
func NewVenueRepo(db *sqlx.DB) *VenueRepo {
	return &VenueRepo{db: db}
}

// ListWithUpcoming returns every venue with its number of upcoming shows,
// ordered by city then id.  Venues without shows are included with a
// count of zero.
func (r *VenueRepo) ListWithUpcoming(ctx context.Context, now time.Time) ([]model.VenueSummary, error) {
	q := `SELECT e.id, e.name, e.city, e.state, COALESCE(u.num_upcoming_shows, 0) AS num_upcoming_shows
	      FROM venues e ` + upcomingCounts("venue_id") + `
	      ORDER BY e.city, e.id`
	out := []model.VenueSummary{}
	if err := r.db.SelectContext(ctx, &out, q, utc(now)); err != nil {
		return nil, err
	}
	return out, nil
}

// Search returns venues whose "Name City, State" contains term, ignoring
// case, each with its number of upcoming shows.
func (r *VenueRepo) Search(ctx context.Context, term string, now time.Time) ([]model.VenueSummary, error) {
	q := `SELECT e.id, e.name, e.city, e.state, COALESCE(u.num_upcoming_shows, 0) AS num_upcoming_shows
	      FROM venues e ` + upcomingCounts("venue_id") + `
	      WHERE ` + displayString + ` LIKE ?
	      ORDER BY e.name, e.id`
	out := []model.VenueSummary{}
	if err := r.db.SelectContext(ctx, &out, q, utc(now), containsPattern(term)); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches a venue by its ID.  It returns ErrVenueNotFound if no
// row is found.
func (r *VenueRepo) GetByID(ctx context.Context, id uint64) (*model.Venue, error) {
	var v model.Venue
	if err := r.db.GetContext(ctx, &v, `SELECT `+venueColumns+` FROM venues WHERE id = ?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return &v, nil
}

// ListShows returns the shows booked at a venue, seen from the venue: the
// counterpart of each slot is the performing artist.  Slots are ordered by
// start time.
func (r *VenueRepo) ListShows(ctx context.Context, venueID uint64) ([]model.ShowSlot, error) {
	const q = `SELECT a.id AS counterpart_id, a.name AS counterpart_name,
	                  a.image_link AS counterpart_image_link, s.start_time
	           FROM shows s
	           JOIN artists a ON a.id = s.artist_id
	           WHERE s.venue_id = ?
	           ORDER BY s.start_time, s.id`
	out := []model.ShowSlot{}
	if err := r.db.SelectContext(ctx, &out, q, venueID); err != nil {
		return nil, err
	}
	return out, nil
}

// Create inserts a new venue inside a transaction.  On success the venue's
// ID and timestamps are populated from the stored row.
func (r *VenueRepo) Create(ctx context.Context, v *model.Venue) error {
	const q = `INSERT INTO venues (name, city, state, address, phone, genres, image_link, facebook_link,
	                               website_link, looking_for_talent, seeking_description)
	           VALUES (:name, :city, :state, :address, :phone, :genres, :image_link, :facebook_link,
	                   :website_link, :looking_for_talent, :seeking_description)`
	return database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		res, err := tx.NamedExecContext(ctx, q, v)
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		return tx.GetContext(ctx, v, `SELECT `+venueColumns+` FROM venues WHERE id = ?`, id)
	})
}

// Update overwrites every editable field of the venue identified by v.ID.
// The row is locked first so a concurrent delete cannot slip in between;
// ErrVenueNotFound is returned when it does not exist.
func (r *VenueRepo) Update(ctx context.Context, v *model.Venue) error {
	const q = `UPDATE venues
	           SET name = :name, city = :city, state = :state, address = :address, phone = :phone,
	               genres = :genres, image_link = :image_link, facebook_link = :facebook_link,
	               website_link = :website_link, looking_for_talent = :looking_for_talent,
	               seeking_description = :seeking_description
	           WHERE id = :id`
	return database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var id uint64
		if err := tx.GetContext(ctx, &id, `SELECT id FROM venues WHERE id = ? FOR UPDATE`, v.ID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrVenueNotFound
			}
			return err
		}
		if _, err := tx.NamedExecContext(ctx, q, v); err != nil {
			return err
		}
		return tx.GetContext(ctx, v, `SELECT `+venueColumns+` FROM venues WHERE id = ?`, v.ID)
	})
}

// Delete removes a venue that has no shows.  If the venue does not exist
// ErrVenueNotFound is returned.  If any show references it the deletion is
// aborted with ErrVenueHasShows and nothing changes.
func (r *VenueRepo) Delete(ctx context.Context, id uint64) error {
	return database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var found uint64
		if err := tx.GetContext(ctx, &found, `SELECT id FROM venues WHERE id = ? FOR UPDATE`, id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrVenueNotFound
			}
			return err
		}
		var shows int
		if err := tx.GetContext(ctx, &shows, `SELECT COUNT(*) FROM shows WHERE venue_id = ?`, id); err != nil {
			return err
		}
		if shows > 0 {
			return ErrVenueHasShows
		}
		_, err := tx.ExecContext(ctx, `DELETE FROM venues WHERE id = ?`, id)
		return err
	})
}
