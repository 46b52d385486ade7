package repository

import (
	"clinic-appointment-service/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DoctorProfileRepository interface {
	Create(db *gorm.DB, profile *entity.DoctorProfile) error
	FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.DoctorProfile, error)
	FindByFullName(db *gorm.DB, fullName string) (*entity.DoctorProfile, error)
	FindAll(db *gorm.DB) ([]entity.DoctorProfile, error)
	FindBySpecialty(db *gorm.DB, specialty string) ([]entity.DoctorProfile, error)
	SetAvailability(db *gorm.DB, userID uuid.UUID, availability entity.DoctorAvailability) error
	Count(db *gorm.DB) (int64, error)
}
