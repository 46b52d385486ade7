package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateAppointmentRequest struct {
	DoctorID  uuid.UUID `json:"doctor_id" validate:"required"`
	Date      string    `json:"date" validate:"required"`
	TimeSlots []string  `json:"time_slots" validate:"required,min=1"`
}

// Response DTOs

// AppointmentResponse mirrors the persisted record shape: doctor by
// name, patient by email, date as YYYY-MM-DD, slots as labels.
type AppointmentResponse struct {
	ID        int64     `json:"id"`
	Doctor    string    `json:"doctor"`
	User      string    `json:"user"`
	Date      string    `json:"date"`
	Time      []string  `json:"time"`
	Fee       string    `json:"fee"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

type SlotResponse struct {
	Label    string `json:"label"`
	Bookable bool   `json:"bookable"`
}

type AvailabilityResponse struct {
	Doctor string         `json:"doctor"`
	Date   string         `json:"date"`
	Slots  []SlotResponse `json:"slots"`
}
