package repository

import (
	"errors"
	"fmt"
	"time"

	"clinic-appointment-service/internal/domain/entity"
	domainRepo "clinic-appointment-service/internal/domain/repository"

	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Create(appointment).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id int64) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindAll(db *gorm.DB) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Order("id").Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByPatientEmail(db *gorm.DB, email string) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Where("patient_email = ?", email).Order("id").Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByDoctorName(db *gorm.DB, doctorName string) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Where("doctor_name = ?", doctorName).Order("id").Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindActiveByDoctorAndDate(db *gorm.DB, doctorName string, date time.Time) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Where("doctor_name = ? AND date = ? AND status != ?",
		doctorName, date.Format("2006-01-02"), entity.StatusCancelled).
		Order("id").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

// LockDoctorDay takes a Postgres advisory transaction lock keyed on the
// doctor+date pair. Row locks alone cannot close the booking race: two
// bookings for an empty day have no rows to contend on, so both would
// insert. The advisory lock serializes the whole check-then-insert.
func (r *appointmentRepository) LockDoctorDay(tx *gorm.DB, doctorName string, date time.Time) error {
	key := fmt.Sprintf("%s|%s", doctorName, date.Format("2006-01-02"))
	return tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", key).Error
}

func (r *appointmentRepository) MarkCompleted(db *gorm.DB, id int64) (int64, error) {
	result := db.Model(&entity.Appointment{}).
		Where("id = ? AND status = ?", id, entity.StatusOngoing).
		Update("status", entity.StatusCompleted)
	return result.RowsAffected, result.Error
}

func (r *appointmentRepository) Cancel(db *gorm.DB, id int64) (int64, error) {
	result := db.Model(&entity.Appointment{}).
		Where("id = ? AND status = ?", id, entity.StatusOngoing).
		Update("status", entity.StatusCancelled)
	return result.RowsAffected, result.Error
}

func (r *appointmentRepository) Complete(db *gorm.DB, id int64) (int64, error) {
	result := db.Model(&entity.Appointment{}).
		Where("id = ? AND status = ?", id, entity.StatusOngoing).
		Update("status", entity.StatusCompleted)
	return result.RowsAffected, result.Error
}
