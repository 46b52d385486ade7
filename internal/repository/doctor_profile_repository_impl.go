package repository

import (
	"errors"

	"clinic-appointment-service/internal/domain/entity"
	domainRepo "clinic-appointment-service/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type doctorProfileRepository struct{}

func NewDoctorProfileRepository() domainRepo.DoctorProfileRepository {
	return &doctorProfileRepository{}
}

func (r *doctorProfileRepository) Create(db *gorm.DB, profile *entity.DoctorProfile) error {
	return db.Create(profile).Error
}

func (r *doctorProfileRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.DoctorProfile, error) {
	var profile entity.DoctorProfile
	err := db.Preload("User").Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// FindByFullName matches case-sensitively: "Dr. Lee" and "dr. lee" are
// distinct names, mirroring the duplicate rule at profile creation.
func (r *doctorProfileRepository) FindByFullName(db *gorm.DB, fullName string) (*entity.DoctorProfile, error) {
	var profile entity.DoctorProfile
	err := db.Where("full_name = ?", fullName).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *doctorProfileRepository) FindAll(db *gorm.DB) ([]entity.DoctorProfile, error) {
	var profiles []entity.DoctorProfile
	err := db.Preload("User").Order("full_name").Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *doctorProfileRepository) FindBySpecialty(db *gorm.DB, specialty string) ([]entity.DoctorProfile, error) {
	var profiles []entity.DoctorProfile
	err := db.Preload("User").Where("specialty = ?", specialty).Order("full_name").Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *doctorProfileRepository) SetAvailability(db *gorm.DB, userID uuid.UUID, availability entity.DoctorAvailability) error {
	return db.Model(&entity.DoctorProfile{}).
		Where("user_id = ?", userID).
		Update("availability", availability).Error
}

func (r *doctorProfileRepository) Count(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&entity.DoctorProfile{}).Count(&count).Error
	return count, err
}
