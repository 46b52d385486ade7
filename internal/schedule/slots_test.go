package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabels(t *testing.T) {
	labels := Labels()

	require.Len(t, labels, 15)
	assert.Equal(t, "8:00 AM", labels[0])
	assert.Equal(t, "11:00 AM", labels[3])
	assert.Equal(t, "12:00 PM", labels[4])
	assert.Equal(t, "1:00 PM", labels[5])
	assert.Equal(t, "10:00 PM", labels[14])
}

func TestParseLabel(t *testing.T) {
	tests := []struct {
		label   string
		hour    int
		wantErr bool
	}{
		{label: "8:00 AM", hour: 8},
		{label: "12:00 PM", hour: 12},
		{label: "1:00 PM", hour: 13},
		{label: "10:00 PM", hour: 22},
		{label: "not a time", wantErr: true},
		{label: "", wantErr: true},
		{label: "8:30 AM", wantErr: true},
		{label: "9:15 PM", wantErr: true},
		{label: "08:00 AM", wantErr: true},
	}

	for _, tc := range tests {
		hour, err := ParseLabel(tc.label)
		if tc.wantErr {
			assert.Error(t, err, tc.label)
			continue
		}
		require.NoError(t, err, tc.label)
		assert.Equal(t, tc.hour, hour, tc.label)
	}
}

func TestInGrid(t *testing.T) {
	assert.True(t, InGrid("8:00 AM"))
	assert.True(t, InGrid("10:00 PM"))
	assert.False(t, InGrid("7:00 AM"))
	assert.False(t, InGrid("11:00 PM"))
	assert.False(t, InGrid("8:30 AM"))
	assert.False(t, InGrid("bogus"))
}

func TestSlotsFor_FutureDateAllFree(t *testing.T) {
	now := time.Date(2025, 6, 1, 14, 30, 0, 0, time.UTC)
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	slots := SlotsFor(nil, date, now)

	require.Len(t, slots, 15)
	for _, s := range slots {
		assert.True(t, s.Bookable, s.Label)
	}
}

func TestSlotsFor_BookedSlotsExcluded(t *testing.T) {
	now := time.Date(2025, 6, 1, 14, 30, 0, 0, time.UTC)
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	booked := map[string]bool{"9:00 AM": true, "10:00 AM": true}

	slots := SlotsFor(booked, date, now)

	byLabel := map[string]bool{}
	for _, s := range slots {
		byLabel[s.Label] = s.Bookable
	}
	assert.False(t, byLabel["9:00 AM"])
	assert.False(t, byLabel["10:00 AM"])
	assert.True(t, byLabel["11:00 AM"])
}

func TestSlotsFor_TodayClosesElapsedHours(t *testing.T) {
	// 14:30: everything up to and including the 2 PM slot is closed.
	now := time.Date(2025, 6, 10, 14, 30, 0, 0, time.UTC)
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	slots := SlotsFor(nil, date, now)

	byLabel := map[string]bool{}
	for _, s := range slots {
		byLabel[s.Label] = s.Bookable
	}
	assert.False(t, byLabel["8:00 AM"])
	assert.False(t, byLabel["1:00 PM"])
	assert.False(t, byLabel["2:00 PM"])
	assert.True(t, byLabel["3:00 PM"])
	assert.True(t, byLabel["10:00 PM"])
}

func TestSlotsFor_TopOfHourStillBookable(t *testing.T) {
	// At exactly 14:00 the 2 PM slot has not closed yet.
	now := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	slots := SlotsFor(nil, date, now)

	byLabel := map[string]bool{}
	for _, s := range slots {
		byLabel[s.Label] = s.Bookable
	}
	assert.True(t, byLabel["2:00 PM"])
	assert.False(t, byLabel["1:00 PM"])
}

func TestSlotsFor_OrderIsHourAscending(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	slots := SlotsFor(nil, date, now)

	prev := -1
	for _, s := range slots {
		hour, err := ParseLabel(s.Label)
		require.NoError(t, err)
		assert.Greater(t, hour, prev)
		prev = hour
	}
}

func TestDateComparisons(t *testing.T) {
	a := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	b := time.Date(2025, 6, 10, 23, 59, 0, 0, time.UTC)
	c := time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)

	assert.True(t, SameDate(a, b))
	assert.False(t, SameDate(a, c))
	assert.True(t, BeforeDate(a, c))
	assert.False(t, BeforeDate(c, a))
	assert.False(t, BeforeDate(a, b))
}
