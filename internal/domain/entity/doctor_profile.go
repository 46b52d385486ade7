package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DoctorAvailability is the admin-controlled visibility flag on a doctor profile
type DoctorAvailability string

const (
	DoctorAvailable   DoctorAvailability = "Available"
	DoctorUnavailable DoctorAvailability = "Unavailable"
)

// Specialty constants. The set is closed: profile creation rejects
// anything outside it.
const (
	SpecialtyGeneralPhysician = "General Physician"
	SpecialtyGynecologist     = "Gynecologist"
	SpecialtyDermatologist    = "Dermatologist"
	SpecialtyPediatrician     = "Pediatrician"
	SpecialtyNeurologist      = "Neurologist"
	SpecialtyDentist          = "Dentist"
)

// Specialties lists every valid specialty in display order.
var Specialties = []string{
	SpecialtyGeneralPhysician,
	SpecialtyGynecologist,
	SpecialtyDermatologist,
	SpecialtyPediatrician,
	SpecialtyNeurologist,
	SpecialtyDentist,
}

func IsValidSpecialty(s string) bool {
	for _, v := range Specialties {
		if v == s {
			return true
		}
	}
	return false
}

// DoctorProfile represents doctor-specific profile data.
// FullName is unique across profiles because appointments reference
// doctors by name, not by key.
type DoctorProfile struct {
	UserID       uuid.UUID          `gorm:"type:uuid;primaryKey" json:"user_id"`
	FullName     string             `gorm:"type:varchar(255);uniqueIndex;not null" json:"full_name"`
	Experience   int                `gorm:"not null" json:"experience"`
	Fee          decimal.Decimal    `gorm:"type:decimal(10,2);not null" json:"fee"`
	Specialty    string             `gorm:"type:varchar(100);not null;index" json:"specialty"`
	Address      string             `gorm:"type:text" json:"address"`
	About        string             `gorm:"type:text" json:"about,omitempty"`
	Availability DoctorAvailability `gorm:"type:varchar(20);not null;default:'Available'" json:"availability"`
	Image        string             `gorm:"type:varchar(255)" json:"image,omitempty"`

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
}

func (DoctorProfile) TableName() string {
	return "doctor_profiles"
}

func (p *DoctorProfile) IsAvailable() bool {
	return p.Availability == DoctorAvailable
}
