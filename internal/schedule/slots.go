package schedule

import (
	"fmt"
	"time"
)

// The bookable day is a fixed hourly grid from 08:00 to 22:00 inclusive.
const (
	FirstHour = 8
	LastHour  = 22
)

// SlotCount is the number of slots in the daily grid.
const SlotCount = LastHour - FirstHour + 1

// slotLayout is the 12-hour clock format used for slot labels, e.g. "9:00 AM".
const slotLayout = "3:04 PM"

// Slot is one hourly bookable unit for a doctor on a given date.
type Slot struct {
	Label    string
	Bookable bool
}

// Label renders the slot label for a 24-hour value, e.g. 14 -> "2:00 PM".
func Label(hour int) string {
	h := hour % 12
	if h == 0 {
		h = 12
	}
	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}
	return fmt.Sprintf("%d:00 %s", h, suffix)
}

// ParseLabel returns the 24-hour value of a slot label, or an error if
// the label is not in the "{1-12}:00 {AM|PM}" form. Parsing is strict:
// the label must round-trip through Label, so sub-hour times and other
// lenient spellings the time package would accept are rejected.
func ParseLabel(label string) (int, error) {
	t, err := time.Parse(slotLayout, label)
	if err != nil {
		return 0, fmt.Errorf("invalid slot label %q: %w", label, err)
	}
	hour := t.Hour()
	if t.Minute() != 0 || Label(hour) != label {
		return 0, fmt.Errorf("invalid slot label %q: not an on-the-hour label", label)
	}
	return hour, nil
}

// Labels returns the full daily grid in hour-ascending order.
func Labels() []string {
	labels := make([]string, 0, SlotCount)
	for hour := FirstHour; hour <= LastHour; hour++ {
		labels = append(labels, Label(hour))
	}
	return labels
}

// InGrid reports whether a label belongs to the daily grid.
func InGrid(label string) bool {
	hour, err := ParseLabel(label)
	if err != nil {
		return false
	}
	return hour >= FirstHour && hour <= LastHour
}

// SlotsFor computes the offerable grid for one doctor and date.
// A slot is unbookable when it is already in the booked set, or when
// the date is today and the slot's hour has begun: hours before the
// current hour are closed, and the current hour closes as soon as the
// first minute passes. Callers reject past dates before asking.
func SlotsFor(booked map[string]bool, date time.Time, now time.Time) []Slot {
	today := SameDate(date, now)

	slots := make([]Slot, 0, SlotCount)
	for hour := FirstHour; hour <= LastHour; hour++ {
		label := Label(hour)
		bookable := !booked[label]
		if bookable && today {
			if hour < now.Hour() || (hour == now.Hour() && now.Minute() > 0) {
				bookable = false
			}
		}
		slots = append(slots, Slot{Label: label, Bookable: bookable})
	}
	return slots
}

// SameDate reports whether two instants fall on the same calendar date.
// Each is read in its own location; dates scanned from a Postgres date
// column carry no wall-clock component.
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// BeforeDate reports whether a falls on an earlier calendar date than b.
func BeforeDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	if ay != by {
		return ay < by
	}
	if am != bm {
		return am < bm
	}
	return ad < bd
}
