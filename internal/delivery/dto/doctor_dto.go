package dto

import (
	"github.com/google/uuid"
)

// Request DTOs

type CreateDoctorRequest struct {
	FullName   string `json:"full_name" validate:"required,max=255"`
	Email      string `json:"email" validate:"required,loose_email,max=255"`
	Password   string `json:"password" validate:"required,strong_password"`
	Experience int    `json:"experience" validate:"gte=0"`
	Fee        string `json:"fee" validate:"required"`
	Specialty  string `json:"specialty" validate:"required"`
	Address    string `json:"address" validate:"required"`
	About      string `json:"about" validate:"required"`
	Image      string `json:"image"`
}

type SetAvailabilityRequest struct {
	DoctorIDs    []uuid.UUID `json:"doctor_ids" validate:"required,min=1"`
	Availability string      `json:"availability" validate:"required,oneof=Available Unavailable"`
}

type RemoveDoctorsRequest struct {
	DoctorIDs []uuid.UUID `json:"doctor_ids" validate:"required,min=1"`
	// Confirmed stands in for the interactive per-doctor confirmation:
	// the client asks the operator before sending.
	Confirmed bool `json:"confirmed"`
}

// Response DTOs

type DoctorResponse struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	Experience   int       `json:"experience"`
	Fee          string    `json:"fee"`
	Specialty    string    `json:"specialty"`
	Address      string    `json:"address"`
	About        string    `json:"about,omitempty"`
	Availability string    `json:"availability"`
	Image        string    `json:"image,omitempty"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}

type RemoveDoctorsResponse struct {
	Removed []string `json:"removed"`
	Blocked []string `json:"blocked"`
}
