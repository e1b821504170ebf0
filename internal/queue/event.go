// Package queue defines the listing events exchanged over the message broker,
// the publisher the web handlers use and the consumer that records them.
package queue

import (
	"fmt"
	"time"
)

// Kinds of listing change.
const (
	KindCreated = "created"
	KindUpdated = "updated"
	KindDeleted = "deleted"
)

// Entities a listing event can refer to.
const (
	EntityVenue  = "venue"
	EntityArtist = "artist"
	EntityShow   = "show"
)

// ListingEvent is published after a venue, artist or show change commits.
// It carries enough for downstream consumers to log or notify without
// querying the primary database.
type ListingEvent struct {
	Kind       string `json:"kind"`
	Entity     string `json:"entity"`
	ID         uint64 `json:"id"`
	Name       string `json:"name"`
	OccurredAt string `json:"occurred_at"`
}

// NewListingEvent stamps an event with at in RFC 3339 UTC.
func NewListingEvent(kind, entity string, id uint64, name string, at time.Time) ListingEvent {
	return ListingEvent{
		Kind:       kind,
		Entity:     entity,
		ID:         id,
		Name:       name,
		OccurredAt: at.UTC().Format(time.RFC3339),
	}
}

// Line renders the event as a single activity log line.
func (ev ListingEvent) Line() string {
	return fmt.Sprintf("[%s] %s %s | id=%d | name=%q\n", ev.OccurredAt, ev.Entity, ev.Kind, ev.ID, ev.Name)
}
