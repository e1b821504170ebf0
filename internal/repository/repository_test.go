package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 10, 19, 18, 0, 0, 0, time.UTC)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return sqlx.NewDb(db, "mysql"), mock
}

var entityColumns = []string{
	"id", "name", "city", "state", "address", "phone", "genres", "image_link", "facebook_link",
	"website_link", "looking_for_talent", "seeking_description", "created_at", "updated_at",
}

func venueRow(id int64, name, city, state string) *sqlmock.Rows {
	return sqlmock.NewRows(entityColumns).AddRow(
		id, name, city, state, "1015 Folsom Street", "123-123-1234", "Jazz,Reggae",
		"https://img.example/hop.png", "", "", true, "We are on the lookout", testNow, testNow,
	)
}

func artistRow(id int64, name string) *sqlmock.Rows {
	return artistRowAt(id, name, "")
}

func artistRowAt(id int64, name, address string) *sqlmock.Rows {
	cols := append([]string{}, entityColumns...)
	cols[10] = "looking_for_venues"
	return sqlmock.NewRows(cols).AddRow(
		id, name, "San Francisco", "CA", address, "326-123-5000", "Rock n Roll",
		"https://img.example/gnp.png", "", "", false, "", testNow, testNow,
	)
}
