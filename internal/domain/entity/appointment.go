package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// AppointmentStatus is the closed lifecycle status set. Ongoing is the
// initial state; Completed and Cancelled are terminal.
type AppointmentStatus string

const (
	StatusOngoing   AppointmentStatus = "Ongoing"
	StatusCompleted AppointmentStatus = "Completed"
	StatusCancelled AppointmentStatus = "Cancelled"
)

// TimeSlots is the ordered set of slot labels on an appointment,
// persisted as a jsonb array.
type TimeSlots []string

// Value implements driver.Valuer
func (t TimeSlots) Value() (driver.Value, error) {
	if t == nil {
		t = TimeSlots{}
	}
	return json.Marshal(t)
}

// Scan implements sql.Scanner
func (t *TimeSlots) Scan(value interface{}) error {
	if value == nil {
		*t = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New(fmt.Sprint("Failed to unmarshal jsonb slot list:", value))
	}
	return json.Unmarshal(bytes, t)
}

// Appointment is one booking of a doctor by a patient for one date and
// one or more hourly slots. The doctor is referenced by full name and
// the patient by account email; the fee is a snapshot of the doctor's
// fee at booking time. Appointments are never deleted, only cancelled.
type Appointment struct {
	ID           int64             `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorName   string            `gorm:"type:varchar(255);not null;index:idx_appointments_doctor_date" json:"doctor"`
	PatientEmail string            `gorm:"type:varchar(255);not null;index" json:"user"`
	Date         time.Time         `gorm:"type:date;not null;index:idx_appointments_doctor_date" json:"date"`
	TimeSlots    TimeSlots         `gorm:"type:jsonb;not null" json:"time"`
	Fee          decimal.Decimal   `gorm:"type:decimal(10,2);not null" json:"fee"`
	Status       AppointmentStatus `gorm:"type:varchar(20);not null;default:'Ongoing';index" json:"status"`
	CreatedAt    time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Appointment) TableName() string {
	return "appointments"
}

func (a *Appointment) IsOngoing() bool {
	return a.Status == StatusOngoing
}

func (a *Appointment) IsCompleted() bool {
	return a.Status == StatusCompleted
}

func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelled
}
