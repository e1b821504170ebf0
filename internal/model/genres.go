package model

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// Genres is a list of genre names persisted as a single comma separated
// text column.
type Genres []string

// Value implements driver.Valuer.
func (g Genres) Value() (driver.Value, error) {
	return strings.Join(g, ","), nil
}

// Scan implements sql.Scanner.  NULL and empty strings become an empty list.
func (g *Genres) Scan(src any) error {
	var raw string
	switch v := src.(type) {
	case nil:
		*g = Genres{}
		return nil
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("genres: unsupported scan type %T", src)
	}
	out := Genres{}
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	*g = out
	return nil
}

// String joins the genres for display.
func (g Genres) String() string {
	return strings.Join(g, ", ")
}
