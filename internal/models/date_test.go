package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	want := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	got, err := ParseDate("2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	got, err = ParseDate("2024-03-01T23:30:00+07:00")
	require.NoError(t, err)
	assert.Equal(t, want, got, "keeps the written calendar day")

	_, err = ParseDate("01/03/2024")
	assert.ErrorContains(t, err, "want YYYY-MM-DD")
}

func TestTripDetailsJSONDates(t *testing.T) {
	var trip TripDetails
	require.NoError(t, json.Unmarshal([]byte(`{"destination":"Bangkok","start_date":"2024-03-01","end_date":"2024-03-03","duration":3}`), &trip))

	assert.Equal(t, "Bangkok", trip.Destination)
	assert.Equal(t, 3, trip.Duration)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), trip.StartDate)
	assert.Equal(t, time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC), trip.EndDate)

	data, err := json.Marshal(trip)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"start_date":"2024-03-01"`)
	assert.Contains(t, string(data), `"end_date":"2024-03-03"`)
	assert.Contains(t, string(data), `"destination":"Bangkok"`)
}

func TestTripDetailsJSONMissingEndDate(t *testing.T) {
	var trip TripDetails
	require.NoError(t, json.Unmarshal([]byte(`{"start_date":"2024-03-01","end_date":null,"duration":1}`), &trip))
	assert.True(t, trip.EndDate.IsZero())

	data, err := json.Marshal(trip)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"end_date":null`)

	var bad TripDetails
	assert.Error(t, json.Unmarshal([]byte(`{"start_date":20240301}`), &bad))
}

func TestAnchorTimeLockJSON(t *testing.T) {
	var a Anchor
	require.NoError(t, json.Unmarshal([]byte(`{"id":"p1","name":"Wat Pho","is_anchor":true,"time_lock":{"date":"2024-03-02","time":"18:00","flexible":true}}`), &a))

	require.NotNil(t, a.TimeLock)
	assert.Equal(t, "p1", a.ID)
	assert.Equal(t, time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), a.TimeLock.Date)
	assert.Equal(t, "18:00", a.TimeLock.Time)
	assert.True(t, a.TimeLock.Flexible)

	data, err := json.Marshal(a)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"date":"2024-03-02"`)
	assert.Contains(t, string(data), `"time":"18:00"`)
}
