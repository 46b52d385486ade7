package schedule

import (
	"time"

	"clinic-appointment-service/internal/domain/entity"
)

// Resolve derives the effective lifecycle status of an appointment from
// wall-clock time and the stored status.
//
//   - Cancelled is absorbing: time never overrides an explicit cancel.
//   - A date before today is Completed regardless of slot content.
//   - Today's appointment is Completed only once every slot has started.
//   - A future date is Ongoing.
//
// Malformed input fails open to Ongoing rather than erroring: a record
// with an unreadable date or slot label must not crash a dashboard.
func Resolve(date time.Time, slots []string, stored entity.AppointmentStatus, now time.Time) entity.AppointmentStatus {
	if stored == entity.StatusCancelled {
		return entity.StatusCancelled
	}
	if date.IsZero() {
		return entity.StatusOngoing
	}

	if BeforeDate(date, now) {
		return entity.StatusCompleted
	}
	if !SameDate(date, now) {
		return entity.StatusOngoing
	}

	for _, label := range slots {
		hour, err := ParseLabel(label)
		if err != nil {
			return entity.StatusOngoing
		}
		start := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
		if start.After(now) {
			return entity.StatusOngoing
		}
	}
	return entity.StatusCompleted
}
