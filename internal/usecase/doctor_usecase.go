package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"clinic-appointment-service/internal/converter"
	"clinic-appointment-service/internal/delivery/dto"
	"clinic-appointment-service/internal/domain/entity"
	"clinic-appointment-service/internal/domain/repository"
	"clinic-appointment-service/internal/schedule"
	"clinic-appointment-service/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidSpecialty    = errors.New("unknown specialty")
	ErrInvalidFee          = errors.New("fee must be a non-negative decimal number")
	ErrDoctorNameTaken     = errors.New("a doctor with this name already exists")
	ErrRemovalNotConfirmed = errors.New("removal requires confirmation")
)

type DoctorUsecase interface {
	CreateDoctor(ctx context.Context, adminID uuid.UUID, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error)
	GetDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorResponse, error)
	ListDoctors(ctx context.Context, specialty string) (*dto.DoctorListResponse, error)
	SetAvailability(ctx context.Context, adminID uuid.UUID, req *dto.SetAvailabilityRequest) (*dto.DoctorListResponse, error)
	RemoveDoctors(ctx context.Context, adminID uuid.UUID, req *dto.RemoveDoctorsRequest) (*dto.RemoveDoctorsResponse, error)
}

type doctorUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	userRepo        repository.UserRepository
	doctorRepo      repository.DoctorProfileRepository
	appointmentRepo repository.AppointmentRepository
	auditService    service.AuditService
	now             func() time.Time
}

func NewDoctorUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	doctorRepo repository.DoctorProfileRepository,
	appointmentRepo repository.AppointmentRepository,
	auditService service.AuditService,
) DoctorUsecase {
	return &doctorUsecase{
		db:              db,
		log:             log,
		userRepo:        userRepo,
		doctorRepo:      doctorRepo,
		appointmentRepo: appointmentRepo,
		auditService:    auditService,
		now:             time.Now,
	}
}

// CreateDoctor creates the account and the profile in one transaction.
// The account carries the doctor role and the profile carries everything
// visible to patients.
func (u *doctorUsecase) CreateDoctor(ctx context.Context, adminID uuid.UUID, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error) {
	if !entity.IsValidSpecialty(req.Specialty) {
		return nil, ErrInvalidSpecialty
	}

	fee, err := decimal.NewFromString(req.Fee)
	if err != nil || fee.IsNegative() {
		return nil, ErrInvalidFee
	}

	db := u.db.WithContext(ctx)

	// Appointments reference doctors by name, so the name must be free
	// before the insert is attempted.
	existing, err := u.doctorRepo.FindByFullName(db, req.FullName)
	if err != nil {
		u.log.Warnf("Failed to check doctor name: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrDoctorNameTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	tx := db.Begin()
	defer tx.Rollback()

	user := &entity.User{
		Email:    strings.ToLower(req.Email),
		Password: string(hashedPassword),
		FullName: req.FullName,
		RoleID:   entity.RoleIDDoctor,
	}

	if err := u.userRepo.Create(tx, user); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to create doctor user: %+v", err)
		return nil, err
	}

	profile := &entity.DoctorProfile{
		UserID:       user.ID,
		FullName:     req.FullName,
		Experience:   req.Experience,
		Fee:          fee,
		Specialty:    req.Specialty,
		Address:      req.Address,
		About:        req.About,
		Availability: entity.DoctorAvailable,
		Image:        req.Image,
	}

	if err := u.doctorRepo.Create(tx, profile); err != nil {
		if isDuplicateKeyError(err, "full_name") {
			return nil, ErrDoctorNameTaken
		}
		u.log.Warnf("Failed to create doctor profile: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, &adminID, entity.AuditActionDoctorCreate, "doctor", user.ID.String(), profile.FullName); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	profile.User = *user
	return converter.DoctorProfileToResponse(profile), nil
}

func (u *doctorUsecase) GetDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorResponse, error) {
	profile, err := u.doctorRepo.FindByUserID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrDoctorNotFound
	}
	return converter.DoctorProfileToResponse(profile), nil
}

func (u *doctorUsecase) ListDoctors(ctx context.Context, specialty string) (*dto.DoctorListResponse, error) {
	db := u.db.WithContext(ctx)

	var (
		profiles []entity.DoctorProfile
		err      error
	)
	if specialty != "" {
		if !entity.IsValidSpecialty(specialty) {
			return nil, ErrInvalidSpecialty
		}
		profiles, err = u.doctorRepo.FindBySpecialty(db, specialty)
	} else {
		profiles, err = u.doctorRepo.FindAll(db)
	}
	if err != nil {
		u.log.Warnf("Failed to list doctor profiles: %+v", err)
		return nil, err
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorProfilesToResponses(profiles),
		Total:   len(profiles),
	}, nil
}

// SetAvailability flips the availability flag for each named doctor.
// Doctors are independent: an unknown ID is skipped without affecting
// the others.
func (u *doctorUsecase) SetAvailability(ctx context.Context, adminID uuid.UUID, req *dto.SetAvailabilityRequest) (*dto.DoctorListResponse, error) {
	availability := entity.DoctorAvailability(req.Availability)
	db := u.db.WithContext(ctx)

	updated := make([]entity.DoctorProfile, 0, len(req.DoctorIDs))
	for _, id := range req.DoctorIDs {
		profile, err := u.doctorRepo.FindByUserID(db, id)
		if err != nil {
			u.log.Warnf("Failed to find doctor profile: %+v", err)
			return nil, err
		}
		if profile == nil {
			continue
		}
		if profile.Availability == availability {
			updated = append(updated, *profile)
			continue
		}

		tx := db.Begin()
		if err := u.doctorRepo.SetAvailability(tx, id, availability); err != nil {
			tx.Rollback()
			u.log.Warnf("Failed to set doctor availability: %+v", err)
			return nil, err
		}
		if err := u.auditService.LogUpdate(ctx, tx, &adminID, entity.AuditActionDoctorAvailability, "doctor", id.String(), string(profile.Availability), string(availability)); err != nil {
			u.log.Warnf("Failed to create audit log: %+v", err)
		}
		if err := tx.Commit().Error; err != nil {
			u.log.Warnf("Failed commit transaction: %+v", err)
			return nil, err
		}

		profile.Availability = availability
		updated = append(updated, *profile)
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorProfilesToResponses(updated),
		Total:   len(updated),
	}, nil
}

// RemoveDoctors deletes the named doctors, skipping any with at least
// one appointment still ongoing. Failures and blocks are reported per
// doctor; one blocked doctor never aborts the rest.
func (u *doctorUsecase) RemoveDoctors(ctx context.Context, adminID uuid.UUID, req *dto.RemoveDoctorsRequest) (*dto.RemoveDoctorsResponse, error) {
	if !req.Confirmed {
		return nil, ErrRemovalNotConfirmed
	}

	db := u.db.WithContext(ctx)
	resp := &dto.RemoveDoctorsResponse{
		Removed: []string{},
		Blocked: []string{},
	}

	for _, id := range req.DoctorIDs {
		profile, err := u.doctorRepo.FindByUserID(db, id)
		if err != nil {
			u.log.Warnf("Failed to find doctor profile: %+v", err)
			return nil, err
		}
		if profile == nil {
			continue
		}

		ongoing, err := u.hasOngoingAppointments(db, profile.FullName)
		if err != nil {
			return nil, err
		}
		if ongoing {
			resp.Blocked = append(resp.Blocked, profile.FullName)
			continue
		}

		tx := db.Begin()
		// Deleting the account cascades to the profile
		if err := u.userRepo.Delete(tx, id); err != nil {
			tx.Rollback()
			u.log.Warnf("Failed to delete doctor: %+v", err)
			return nil, err
		}
		if err := u.auditService.LogDelete(ctx, tx, &adminID, entity.AuditActionDoctorRemove, "doctor", id.String(), profile.FullName); err != nil {
			u.log.Warnf("Failed to create audit log: %+v", err)
		}
		if err := tx.Commit().Error; err != nil {
			u.log.Warnf("Failed commit transaction: %+v", err)
			return nil, err
		}

		resp.Removed = append(resp.Removed, profile.FullName)
	}

	return resp, nil
}

// hasOngoingAppointments reports whether any of the doctor's
// appointments is still ongoing once elapsed ones are resolved.
func (u *doctorUsecase) hasOngoingAppointments(db *gorm.DB, doctorName string) (bool, error) {
	appointments, err := u.appointmentRepo.FindByDoctorName(db, doctorName)
	if err != nil {
		u.log.Warnf("Failed to list doctor appointments: %+v", err)
		return false, err
	}

	now := u.now()
	for i := range appointments {
		a := &appointments[i]
		if schedule.Resolve(a.Date, a.TimeSlots, a.Status, now) == entity.StatusOngoing {
			return true, nil
		}
	}
	return false, nil
}
