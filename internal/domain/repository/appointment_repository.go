package repository

import (
	"time"

	"clinic-appointment-service/internal/domain/entity"

	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id int64) (*entity.Appointment, error)
	FindAll(db *gorm.DB) ([]entity.Appointment, error)
	FindByPatientEmail(db *gorm.DB, email string) ([]entity.Appointment, error)
	FindByDoctorName(db *gorm.DB, doctorName string) ([]entity.Appointment, error)
	FindActiveByDoctorAndDate(db *gorm.DB, doctorName string, date time.Time) ([]entity.Appointment, error)

	// LockDoctorDay serializes booking transactions for one doctor+date.
	// Must be called inside a transaction; the lock is released on
	// commit or rollback.
	LockDoctorDay(tx *gorm.DB, doctorName string, date time.Time) error

	// MarkCompleted flips an Ongoing appointment to Completed.
	// Returns affected rows: 0 means the record was already terminal,
	// which makes reconciliation idempotent.
	MarkCompleted(db *gorm.DB, id int64) (int64, error)

	// Cancel and Complete are conditional on the record still being
	// Ongoing, so terminal states cannot be reopened by racing actions.
	Cancel(db *gorm.DB, id int64) (int64, error)
	Complete(db *gorm.DB, id int64) (int64, error)
}
