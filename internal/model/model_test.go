package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenres_ValueAndScan(t *testing.T) {
	v, err := Genres{"Jazz", "Reggae", "Swing"}.Value()
	require.NoError(t, err)
	assert.Equal(t, "Jazz,Reggae,Swing", v)

	var g Genres
	require.NoError(t, g.Scan([]byte("Jazz, Reggae,,Swing")))
	assert.Equal(t, Genres{"Jazz", "Reggae", "Swing"}, g)

	require.NoError(t, g.Scan(nil))
	assert.Empty(t, g)

	require.NoError(t, g.Scan(""))
	assert.Empty(t, g)

	assert.Error(t, g.Scan(42))
}

func TestGroupByCity_KeepsOrderAndZeroCounts(t *testing.T) {
	venues := []VenueSummary{
		{ID: 1, Name: "The Musical Hop", City: "San Francisco", State: "CA", NumUpcomingShows: 0},
		{ID: 3, Name: "Park Square Live Music & Coffee", City: "San Francisco", State: "CA", NumUpcomingShows: 1},
		{ID: 2, Name: "The Dueling Pianos Bar", City: "New York", State: "NY", NumUpcomingShows: 0},
	}

	areas := GroupByCity(venues)

	require.Len(t, areas, 2)
	assert.Equal(t, "San Francisco", areas[0].City)
	assert.Equal(t, "CA", areas[0].State)
	require.Len(t, areas[0].Venues, 2)
	assert.Equal(t, uint64(1), areas[0].Venues[0].ID)
	assert.Equal(t, 0, areas[0].Venues[0].NumUpcomingShows)
	assert.Equal(t, uint64(3), areas[0].Venues[1].ID)
	assert.Equal(t, "New York", areas[1].City)
	assert.Len(t, areas[1].Venues, 1)
}

func TestGroupByCity_Empty(t *testing.T) {
	assert.Empty(t, GroupByCity(nil))
}

func TestSplitShows_EveryShowInExactlyOneBucket(t *testing.T) {
	now := time.Date(2026, 10, 19, 20, 0, 0, 0, time.UTC)
	slots := []ShowSlot{
		{CounterpartID: 1, StartTime: now.Add(-48 * time.Hour)},
		{CounterpartID: 2, StartTime: now},
		{CounterpartID: 3, StartTime: now.Add(time.Minute)},
		{CounterpartID: 4, StartTime: now.Add(-time.Nanosecond)},
	}

	sched := SplitShows(slots, now)

	assert.Equal(t, 2, sched.PastCount())
	assert.Equal(t, 2, sched.UpcomingCount())
	assert.Equal(t, uint64(1), sched.Past[0].CounterpartID)
	assert.Equal(t, uint64(4), sched.Past[1].CounterpartID)
	assert.Equal(t, uint64(2), sched.Upcoming[0].CounterpartID)
	assert.Equal(t, uint64(3), sched.Upcoming[1].CounterpartID)
	assert.Equal(t, len(slots), sched.PastCount()+sched.UpcomingCount())
}

func TestSplitShows_NoShows(t *testing.T) {
	sched := SplitShows(nil, time.Now())
	assert.NotNil(t, sched.Past)
	assert.NotNil(t, sched.Upcoming)
	assert.Zero(t, sched.PastCount())
	assert.Zero(t, sched.UpcomingCount())
}

func TestShow_IsUpcoming(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.True(t, Show{StartTime: now}.IsUpcoming(now))
	assert.False(t, Show{StartTime: now.Add(-time.Second)}.IsUpcoming(now))
}
