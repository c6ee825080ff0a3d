package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateOf_DropsTimeOfDay(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("UTC-5", -5*60*60)
	d := DateOf(time.Date(2024, 3, 1, 23, 59, 0, 0, loc))
	assert.Equal(t, NewDate(2024, 3, 1), d)
	assert.Equal(t, "2024-03-01", d.String())
}

func TestDate_AddDays(t *testing.T) {
	t.Parallel()

	assert.Equal(t, NewDate(2024, 3, 1), NewDate(2024, 2, 29).AddDays(1))
	assert.Equal(t, NewDate(2025, 1, 18), NewDate(2024, 12, 21).AddDays(28))
	assert.Equal(t, NewDate(2023, 12, 31), NewDate(2024, 1, 1).AddDays(-1))
}

func TestDate_Compare(t *testing.T) {
	t.Parallel()

	a := NewDate(2024, 5, 1)
	b := NewDate(2024, 5, 2)
	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.True(t, a.Equal(NewDate(2024, 5, 1)))
}

func TestDate_JSON(t *testing.T) {
	t.Parallel()

	due := NewDate(2024, 7, 4)
	data, err := json.Marshal(struct {
		Due *Date `json:"due"`
	}{Due: &due})
	require.NoError(t, err)
	assert.JSONEq(t, `{"due":"2024-07-04"}`, string(data))

	var parsed struct {
		Due Date `json:"due"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"due":"2024-07-04"}`), &parsed))
	assert.Equal(t, NewDate(2024, 7, 4), parsed.Due)

	assert.Error(t, json.Unmarshal([]byte(`{"due":"07/04/2024"}`), &parsed))
}

func TestDate_Scan(t *testing.T) {
	t.Parallel()

	var d Date
	require.NoError(t, d.Scan("2024-07-04"))
	assert.Equal(t, NewDate(2024, 7, 4), d)

	require.NoError(t, d.Scan([]byte("2024-07-05 00:00:00+00:00")))
	assert.Equal(t, NewDate(2024, 7, 5), d)

	require.NoError(t, d.Scan(time.Date(2024, 7, 6, 12, 0, 0, 0, time.UTC)))
	assert.Equal(t, NewDate(2024, 7, 6), d)

	assert.Error(t, d.Scan(42))

	value, err := NewDate(2024, 7, 4).Value()
	require.NoError(t, err)
	assert.Equal(t, "2024-07-04", value)
}
