package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestGetAvailability_PastDateRejected(t *testing.T) {
	u := &bookingUsecase{
		now: func() time.Time { return time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local) },
	}

	_, err := u.GetAvailability(context.Background(), uuid.New(), "2026-03-09")
	assert.ErrorIs(t, err, ErrPastDate)
}

func TestGetAvailability_MalformedDateRejected(t *testing.T) {
	u := &bookingUsecase{
		now: func() time.Time { return time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local) },
	}

	_, err := u.GetAvailability(context.Background(), uuid.New(), "10-03-2026")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestValidateSelection_EmptySelection(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	day := time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)

	err := validateSelection(day, nil, map[string]bool{}, now)
	assert.ErrorIs(t, err, ErrNoSlotSelected)
}

func TestValidateSelection_PastDate(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	day := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

	err := validateSelection(day, []string{"10:00 AM"}, map[string]bool{}, now)
	assert.ErrorIs(t, err, ErrPastDate)
}

func TestValidateSelection_EmptyBeatsPast(t *testing.T) {
	// Both conditions hold; the empty selection is reported first
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	day := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

	err := validateSelection(day, nil, map[string]bool{}, now)
	assert.ErrorIs(t, err, ErrNoSlotSelected)
}

func TestValidateSelection_UnknownSlot(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	day := time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)

	for _, label := range []string{"7:00 AM", "11:00 PM", "10:30 AM", "9:30 AM", "ten o'clock"} {
		err := validateSelection(day, []string{label}, map[string]bool{}, now)
		assert.ErrorIs(t, err, ErrUnknownSlot, "label %q", label)
	}
}

func TestValidateSelection_BookedSlot(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	day := time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)
	booked := map[string]bool{"2:00 PM": true}

	err := validateSelection(day, []string{"10:00 AM", "2:00 PM"}, booked, now)
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestValidateSelection_ElapsedSlotToday(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	// 2 PM started half an hour ago
	err := validateSelection(day, []string{"2:00 PM"}, map[string]bool{}, now)
	assert.ErrorIs(t, err, ErrSlotTaken)

	// 3 PM has not started yet
	err = validateSelection(day, []string{"3:00 PM"}, map[string]bool{}, now)
	assert.NoError(t, err)
}

func TestValidateSelection_TopOfHourStillOpen(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	err := validateSelection(day, []string{"2:00 PM"}, map[string]bool{}, now)
	assert.NoError(t, err)
}

func TestValidateSelection_FutureDateIgnoresClock(t *testing.T) {
	now := time.Date(2026, 3, 10, 21, 45, 0, 0, time.UTC)
	day := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)

	err := validateSelection(day, []string{"8:00 AM"}, map[string]bool{}, now)
	assert.NoError(t, err)
}

func TestValidateSelection_MultipleValidSlots(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	day := time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)

	err := validateSelection(day, []string{"9:00 AM", "10:00 AM", "8:00 PM"}, map[string]bool{}, now)
	assert.NoError(t, err)
}
