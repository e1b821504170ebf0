// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios without
// looking at driver errors.
package repository

import "errors"

// ErrVenueNotFound is returned when a venue cannot be found in the DB.
var ErrVenueNotFound = errors.New("venue not found")

// ErrArtistNotFound is returned when an artist cannot be found in the DB.
var ErrArtistNotFound = errors.New("artist not found")

// ErrVenueHasShows is returned when a venue cannot be deleted because
// shows are still booked at it. Handlers should redirect back to the
// venue page with an explanation.
var ErrVenueHasShows = errors.New("venue has shows")
