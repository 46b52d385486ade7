package schedule

import (
	"testing"
	"time"

	"clinic-appointment-service/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func TestResolve_CancelledIsAbsorbing(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	dates := []time.Time{
		time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),  // past
		time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), // today
		time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC), // future
		{}, // malformed
	}
	for _, d := range dates {
		got := Resolve(d, []string{"9:00 AM"}, entity.StatusCancelled, now)
		assert.Equal(t, entity.StatusCancelled, got)
	}
}

func TestResolve_PastDateIsCompleted(t *testing.T) {
	now := time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC)
	date := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)

	got := Resolve(date, []string{"10:00 PM"}, entity.StatusOngoing, now)
	assert.Equal(t, entity.StatusCompleted, got)

	// Slot content is irrelevant for a past date, even when malformed.
	got = Resolve(date, []string{"garbage"}, entity.StatusOngoing, now)
	assert.Equal(t, entity.StatusCompleted, got)
}

func TestResolve_FutureDateIsOngoing(t *testing.T) {
	now := time.Date(2025, 6, 10, 23, 0, 0, 0, time.UTC)
	date := time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)

	got := Resolve(date, []string{"8:00 AM"}, entity.StatusOngoing, now)
	assert.Equal(t, entity.StatusOngoing, got)
}

func TestResolve_TodayCompletedOnlyWhenEverySlotStarted(t *testing.T) {
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	// 11:00: both the 9 AM and 10 AM slots have started.
	now := time.Date(2025, 6, 10, 11, 0, 0, 0, time.UTC)
	got := Resolve(date, []string{"9:00 AM", "10:00 AM"}, entity.StatusOngoing, now)
	assert.Equal(t, entity.StatusCompleted, got)

	// 9:30: the 10 AM slot has not started yet.
	now = time.Date(2025, 6, 10, 9, 30, 0, 0, time.UTC)
	got = Resolve(date, []string{"9:00 AM", "10:00 AM"}, entity.StatusOngoing, now)
	assert.Equal(t, entity.StatusOngoing, got)

	// Exactly at the start of the last slot counts as started.
	now = time.Date(2025, 6, 10, 10, 0, 0, 0, time.UTC)
	got = Resolve(date, []string{"9:00 AM", "10:00 AM"}, entity.StatusOngoing, now)
	assert.Equal(t, entity.StatusCompleted, got)
}

func TestResolve_MalformedInputFailsOpen(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	today := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	got := Resolve(time.Time{}, []string{"9:00 AM"}, entity.StatusOngoing, now)
	assert.Equal(t, entity.StatusOngoing, got)

	got = Resolve(today, []string{"9:00 AM", "not a slot"}, entity.StatusOngoing, now)
	assert.Equal(t, entity.StatusOngoing, got)
}

func TestResolve_StoredCompletedStaysCompleted(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	past := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	got := Resolve(past, []string{"9:00 AM"}, entity.StatusCompleted, now)
	assert.Equal(t, entity.StatusCompleted, got)
}
