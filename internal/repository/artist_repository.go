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

const artistColumns = `id, name, city, state, address, phone, genres, image_link, facebook_link,
	website_link, looking_for_venues, seeking_description, created_at, updated_at`

// ArtistRepo encapsulates all database queries related to artists.
type ArtistRepo struct {
	db *sqlx.DB
}

// NewArtistRepo constructs an ArtistRepo with the given DB handle.
func NewArtistRepo(db *sqlx.DB) *ArtistRepo {
	return &ArtistRepo{db: db}
}

// ListWithUpcoming returns every artist ordered by name with its number of
// upcoming shows.  Artists without shows have a count of zero.
func (r *ArtistRepo) ListWithUpcoming(ctx context.Context, now time.Time) ([]model.ArtistSummary, error) {
	q := `SELECT e.id, e.name, e.city, e.state, COALESCE(u.num_upcoming_shows, 0) AS num_upcoming_shows
	      FROM artists e ` + upcomingCounts("artist_id") + `
	      ORDER BY e.name, e.id`
	out := []model.ArtistSummary{}
	if err := r.db.SelectContext(ctx, &out, q, utc(now)); err != nil {
		return nil, err
	}
	return out, nil
}

// Search returns artists whose "Name City, State" contains term, ignoring case.
func (r *ArtistRepo) Search(ctx context.Context, term string, now time.Time) ([]model.ArtistSummary, error) {
	q := `SELECT e.id, e.name, e.city, e.state, COALESCE(u.num_upcoming_shows, 0) AS num_upcoming_shows
	      FROM artists e ` + upcomingCounts("artist_id") + `
	      WHERE ` + displayString + ` LIKE ?
	      ORDER BY e.name, e.id`
	out := []model.ArtistSummary{}
	if err := r.db.SelectContext(ctx, &out, q, utc(now), containsPattern(term)); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID retrieves an artist by its ID.  It returns ErrArtistNotFound when
// no row is found.
func (r *ArtistRepo) GetByID(ctx context.Context, id uint64) (*model.Artist, error) {
	var a model.Artist
	if err := r.db.GetContext(ctx, &a, `SELECT `+artistColumns+` FROM artists WHERE id = ?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrArtistNotFound
		}
		return nil, err
	}
	return &a, nil
}

// ListShows returns the shows of an artist; the counterpart of each slot
// is the venue hosting it.
func (r *ArtistRepo) ListShows(ctx context.Context, artistID uint64) ([]model.ShowSlot, error) {
	const q = `SELECT v.id AS counterpart_id, v.name AS counterpart_name,
	                  v.image_link AS counterpart_image_link, s.start_time
	           FROM shows s
	           JOIN venues v ON v.id = s.venue_id
	           WHERE s.artist_id = ?
	           ORDER BY s.start_time, s.id`
	out := []model.ShowSlot{}
	if err := r.db.SelectContext(ctx, &out, q, artistID); err != nil {
		return nil, err
	}
	return out, nil
}

// Create inserts a new artist inside a transaction and populates its ID
// and timestamps.
func (r *ArtistRepo) Create(ctx context.Context, a *model.Artist) error {
	const q = `INSERT INTO artists (name, city, state, address, phone, genres, image_link, facebook_link,
	                                website_link, looking_for_venues, seeking_description)
	           VALUES (:name, :city, :state, :address, :phone, :genres, :image_link, :facebook_link,
	                   :website_link, :looking_for_venues, :seeking_description)`
	return database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		res, err := tx.NamedExecContext(ctx, q, a)
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		return tx.GetContext(ctx, a, `SELECT `+artistColumns+` FROM artists WHERE id = ?`, id)
	})
}

// Update overwrites every editable field of the artist identified by a.ID.
// ErrArtistNotFound is returned when the row does not exist.
func (r *ArtistRepo) Update(ctx context.Context, a *model.Artist) error {
	const q = `UPDATE artists
	           SET name = :name, city = :city, state = :state, address = :address, phone = :phone,
	               genres = :genres, image_link = :image_link, facebook_link = :facebook_link,
	               website_link = :website_link, looking_for_venues = :looking_for_venues,
	               seeking_description = :seeking_description
	           WHERE id = :id`
	return database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var id uint64
		if err := tx.GetContext(ctx, &id, `SELECT id FROM artists WHERE id = ? FOR UPDATE`, a.ID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrArtistNotFound
			}
			return err
		}
		if _, err := tx.NamedExecContext(ctx, q, a); err != nil {
			return err
		}
		return tx.GetContext(ctx, a, `SELECT `+artistColumns+` FROM artists WHERE id = ?`, a.ID)
	})
}
