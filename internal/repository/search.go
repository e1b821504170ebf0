package repository

import (
	"strings"
	"time"
)

// upcomingCounts returns a LEFT JOIN that attaches num_upcoming_shows to the
// entity aliased e.  owner is the shows column pointing at the entity
// (venue_id or artist_id).  The single placeholder is the evaluation time;
// shows starting at or after it are upcoming.  Entities without shows get
// no joined row, so callers wrap the count in COALESCE.
func upcomingCounts(owner string) string {
	return `LEFT JOIN (
		SELECT ` + owner + `, COUNT(*) AS num_upcoming_shows
		FROM shows
		WHERE start_time >= ?
		GROUP BY ` + owner + `
	) u ON u.` + owner + ` = e.id`
}

// displayString is the text a search term is matched against: "Name City, State".
const displayString = `LOWER(CONCAT(e.name, ' ', e.city, ', ', e.state))`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern matching term anywhere in a
// lower-cased string.  Wildcards typed by the user match literally.  An
// empty term yields "%%", which matches everything.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
}

// utc normalises the evaluation time to the zone DATETIME columns are stored in.
func utc(now time.Time) time.Time {
	return now.UTC()
}
