// Package repository contains data access logic for Show domain operations.
// Shows are only listed and created; a show is never edited and is only
// removed together with the data it references.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/fyyur/internal/database"
	"github.com/iliyamo/fyyur/internal/model"
)

// ShowRepo manages persistence for shows.
type ShowRepo struct {
	db *sqlx.DB
}

// NewShowRepo constructs a ShowRepo with the given DB handle.
func NewShowRepo(db *sqlx.DB) *ShowRepo {
	return &ShowRepo{db: db}
}

// ListAll returns every show with its venue and artist, ordered by start time.
func (r *ShowRepo) ListAll(ctx context.Context) ([]model.ShowListing, error) {
	const q = `SELECT s.id, s.start_time,
	                  v.id AS venue_id, v.name AS venue_name,
	                  a.id AS artist_id, a.name AS artist_name, a.image_link AS artist_image_link
	           FROM shows s
	           JOIN venues v  ON v.id = s.venue_id
	           JOIN artists a ON a.id = s.artist_id
	           ORDER BY s.start_time, s.id`
	out := []model.ShowListing{}
	if err := r.db.SelectContext(ctx, &out, q); err != nil {
		return nil, err
	}
	return out, nil
}

// Create books an artist at a venue.  Both must exist; otherwise
// ErrArtistNotFound or ErrVenueNotFound is returned and nothing is written.
// On success the generated ID and created_at are set on s.
func (r *ShowRepo) Create(ctx context.Context, s *model.Show) error {
	s.StartTime = utc(s.StartTime)
	return database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if err := exists(ctx, tx, `SELECT id FROM artists WHERE id = ?`, s.ArtistID, ErrArtistNotFound); err != nil {
			return err
		}
		if err := exists(ctx, tx, `SELECT id FROM venues WHERE id = ?`, s.VenueID, ErrVenueNotFound); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx,
			`INSERT INTO shows (artist_id, venue_id, start_time) VALUES (?, ?, ?)`,
			s.ArtistID, s.VenueID, s.StartTime)
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		s.ID = uint64(id)
		return tx.GetContext(ctx, &s.CreatedAt, `SELECT created_at FROM shows WHERE id = ?`, s.ID)
	})
}

// exists runs a single-row lookup and maps "no rows" to notFound.
func exists(ctx context.Context, tx *sqlx.Tx, q string, id uint64, notFound error) error {
	var found uint64
	if err := tx.GetContext(ctx, &found, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return notFound
		}
		return err
	}
	return nil
}
