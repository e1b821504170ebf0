package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/fyyur/internal/model"
)

func TestVenueRepo_ListWithUpcoming_IncludesVenuesWithoutShows(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`FROM venues e LEFT JOIN`).
		WithArgs(testNow).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "city", "state", "num_upcoming_shows"}).
			AddRow(2, "The Dueling Pianos Bar", "New York", "NY", 0).
			AddRow(1, "The Musical Hop", "San Francisco", "CA", 0).
			AddRow(3, "Park Square Live Music & Coffee", "San Francisco", "CA", 1))

	out, err := NewVenueRepo(db).ListWithUpcoming(context.Background(), testNow)

	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, "The Dueling Pianos Bar", out[0].Name)
	assert.Equal(t, 0, out[0].NumUpcomingShows)
	assert.Equal(t, 1, out[2].NumUpcomingShows)
}

func TestVenueRepo_Search_LowercasesAndWrapsTerm(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`WHERE LOWER\(CONCAT\(e.name, ' ', e.city, ', ', e.state\)\) LIKE \?`).
		WithArgs(testNow, "%music%").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "city", "state", "num_upcoming_shows"}).
			AddRow(3, "Park Square Live Music & Coffee", "San Francisco", "CA", 1).
			AddRow(1, "The Musical Hop", "San Francisco", "CA", 0))

	out, err := NewVenueRepo(db).Search(context.Background(), "Music", testNow)

	require.NoError(t, err)
	assert.Len(t, out, 2)
}

func TestVenueRepo_Search_NoMatchesIsEmptyNotNil(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`LIKE`).
		WithArgs(testNow, "%zzz%").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "city", "state", "num_upcoming_shows"}))

	out, err := NewVenueRepo(db).Search(context.Background(), "zzz", testNow)

	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestVenueRepo_GetByID(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`FROM venues WHERE id = \?`).WithArgs(1).
		WillReturnRows(venueRow(1, "The Musical Hop", "San Francisco", "CA"))

	v, err := NewVenueRepo(db).GetByID(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, "The Musical Hop", v.Name)
	assert.Equal(t, model.Genres{"Jazz", "Reggae"}, v.Genres)
	assert.True(t, v.LookingForTalent)
}

func TestVenueRepo_GetByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`FROM venues WHERE id = \?`).WithArgs(99).
		WillReturnRows(sqlmock.NewRows(entityColumns))

	_, err := NewVenueRepo(db).GetByID(context.Background(), 99)

	assert.ErrorIs(t, err, ErrVenueNotFound)
}

func TestVenueRepo_ListShows(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`JOIN artists a ON a.id = s.artist_id`).WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"counterpart_id", "counterpart_name", "counterpart_image_link", "start_time"}).
			AddRow(4, "Guns N Petals", "https://img.example/gnp.png", testNow.AddDate(0, -1, 0)).
			AddRow(5, "Matt Quevedo", "https://img.example/mq.png", testNow.AddDate(0, 1, 0)))

	slots, err := NewVenueRepo(db).ListShows(context.Background(), 1)

	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, uint64(4), slots[0].CounterpartID)
	assert.Equal(t, "Matt Quevedo", slots[1].CounterpartName)
}

func TestVenueRepo_Create_CommitsAndReloads(t *testing.T) {
	db, mock := newMockDB(t)
	v := &model.Venue{
		Name: "The Musical Hop", City: "San Francisco", State: "CA", Address: "1015 Folsom Street",
		Phone: "123-123-1234", Genres: model.Genres{"Jazz", "Reggae"}, ImageLink: "https://img.example/hop.png",
		LookingForTalent: true, SeekingDescription: "We are on the lookout",
	}
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO venues`).
		WithArgs("The Musical Hop", "San Francisco", "CA", "1015 Folsom Street", "123-123-1234",
			"Jazz,Reggae", "https://img.example/hop.png", "", "", true, "We are on the lookout").
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectQuery(`FROM venues WHERE id = \?`).WithArgs(7).
		WillReturnRows(venueRow(7, "The Musical Hop", "San Francisco", "CA"))
	mock.ExpectCommit()

	err := NewVenueRepo(db).Create(context.Background(), v)

	require.NoError(t, err)
	assert.Equal(t, uint64(7), v.ID)
	assert.Equal(t, testNow, v.CreatedAt)
}

func TestVenueRepo_Create_RollsBackOnFailure(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO venues`).WillReturnError(errors.New("data too long"))
	mock.ExpectRollback()

	err := NewVenueRepo(db).Create(context.Background(), &model.Venue{Name: "x"})

	assert.Error(t, err)
}

func TestVenueRepo_Update_LoadsExistingRow(t *testing.T) {
	db, mock := newMockDB(t)
	v := &model.Venue{ID: 1, Name: "The Musical Hop II", City: "San Francisco", State: "CA"}
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM venues WHERE id = \? FOR UPDATE`).WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectExec(`UPDATE venues SET`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`FROM venues WHERE id = \?`).WithArgs(1).
		WillReturnRows(venueRow(1, "The Musical Hop II", "San Francisco", "CA"))
	mock.ExpectCommit()

	require.NoError(t, NewVenueRepo(db).Update(context.Background(), v))
	assert.Equal(t, "The Musical Hop II", v.Name)
}

func TestVenueRepo_Update_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE`).WithArgs(42).WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	err := NewVenueRepo(db).Update(context.Background(), &model.Venue{ID: 42, Name: "ghost"})

	assert.ErrorIs(t, err, ErrVenueNotFound)
}

func TestVenueRepo_Delete_BlockedByShows(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE`).WithArgs(1).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM shows WHERE venue_id = \?`).WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectRollback()

	err := NewVenueRepo(db).Delete(context.Background(), 1)

	assert.ErrorIs(t, err, ErrVenueHasShows)
}

func TestVenueRepo_Delete_RemovesVenueWithoutShows(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE`).WithArgs(2).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))
	mock.ExpectQuery(`SELECT COUNT`).WithArgs(2).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(`DELETE FROM venues WHERE id = \?`).WithArgs(2).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	assert.NoError(t, NewVenueRepo(db).Delete(context.Background(), 2))
}

func TestVenueRepo_Delete_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE`).WithArgs(9).WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	assert.ErrorIs(t, NewVenueRepo(db).Delete(context.Background(), 9), ErrVenueNotFound)
}
