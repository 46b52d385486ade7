package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clinic-appointment-service/internal/converter"
	"clinic-appointment-service/internal/delivery/dto"
	"clinic-appointment-service/internal/domain/entity"
	"clinic-appointment-service/internal/domain/repository"
	"clinic-appointment-service/internal/schedule"
	"clinic-appointment-service/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrDoctorNotFound       = errors.New("doctor not found")
	ErrDoctorUnavailable    = errors.New("doctor is currently unavailable")
	ErrInvalidDate          = errors.New("date must be in YYYY-MM-DD format")
	ErrNoSlotSelected       = errors.New("no time slot selected")
	ErrPastDate             = errors.New("appointment date is in the past")
	ErrUnknownSlot          = errors.New("unknown time slot")
	ErrSlotTaken            = errors.New("one or more selected slots are already booked")
	ErrAppointmentNotFound  = errors.New("appointment not found")
	ErrNotAppointmentOwner  = errors.New("appointment belongs to another patient")
	ErrNotAppointmentDoctor = errors.New("appointment belongs to another doctor")
	ErrAppointmentClosed    = errors.New("appointment is already cancelled or completed")
)

const dateLayout = "2006-01-02"

type BookingUsecase interface {
	GetAvailability(ctx context.Context, doctorID uuid.UUID, date string) (*dto.AvailabilityResponse, error)
	CreateAppointment(ctx context.Context, userID uuid.UUID, patientEmail string, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	CancelAppointment(ctx context.Context, userID uuid.UUID, userEmail string, roleID int, appointmentID int64) (*dto.AppointmentResponse, error)
	CompleteAppointment(ctx context.Context, userID uuid.UUID, roleID int, appointmentID int64) (*dto.AppointmentResponse, error)
}

type bookingUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	doctorRepo      repository.DoctorProfileRepository
	auditService    service.AuditService
	notifier        service.ChangeNotifier
	now             func() time.Time
}

func NewBookingUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	doctorRepo repository.DoctorProfileRepository,
	auditService service.AuditService,
	notifier service.ChangeNotifier,
) BookingUsecase {
	return &bookingUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		doctorRepo:      doctorRepo,
		auditService:    auditService,
		notifier:        notifier,
		now:             time.Now,
	}
}

func (u *bookingUsecase) GetAvailability(ctx context.Context, doctorID uuid.UUID, date string) (*dto.AvailabilityResponse, error) {
	day, err := time.ParseInLocation(dateLayout, date, time.Local)
	if err != nil {
		return nil, ErrInvalidDate
	}
	if schedule.BeforeDate(day, u.now()) {
		return nil, ErrPastDate
	}

	db := u.db.WithContext(ctx)

	profile, err := u.doctorRepo.FindByUserID(db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrDoctorNotFound
	}

	booked, err := u.bookedSlots(db, profile.FullName, day)
	if err != nil {
		return nil, err
	}

	slots := schedule.SlotsFor(booked, day, u.now())
	resp := &dto.AvailabilityResponse{
		Doctor: profile.FullName,
		Date:   day.Format(dateLayout),
		Slots:  make([]dto.SlotResponse, 0, len(slots)),
	}
	for _, s := range slots {
		resp.Slots = append(resp.Slots, dto.SlotResponse{Label: s.Label, Bookable: s.Bookable})
	}
	return resp, nil
}

func (u *bookingUsecase) CreateAppointment(ctx context.Context, userID uuid.UUID, patientEmail string, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	day, err := time.ParseInLocation(dateLayout, req.Date, time.Local)
	if err != nil {
		return nil, ErrInvalidDate
	}

	profile, err := u.doctorRepo.FindByUserID(u.db.WithContext(ctx), req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrDoctorNotFound
	}
	if profile.Availability != entity.DoctorAvailable {
		return nil, ErrDoctorUnavailable
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	// Serialize concurrent bookings for this doctor and day. Row locks
	// cannot close the race when the day has no rows yet, so an advisory
	// lock on the doctor+date key guards the whole check-then-insert.
	if err := u.appointmentRepo.LockDoctorDay(tx, profile.FullName, day); err != nil {
		u.log.Warnf("Failed to acquire booking lock: %+v", err)
		return nil, err
	}

	booked, err := u.bookedSlots(tx, profile.FullName, day)
	if err != nil {
		return nil, err
	}

	if err := validateSelection(day, req.TimeSlots, booked, u.now()); err != nil {
		return nil, err
	}

	appointment := &entity.Appointment{
		DoctorName:   profile.FullName,
		PatientEmail: patientEmail,
		Date:         day,
		TimeSlots:    append(entity.TimeSlots(nil), req.TimeSlots...),
		Fee:          profile.Fee,
		Status:       entity.StatusOngoing,
	}

	if err := u.appointmentRepo.Create(tx, appointment); err != nil {
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, &userID, entity.AuditActionAppointmentBook, "appointment", fmt.Sprint(appointment.ID), converter.AppointmentToResponse(appointment)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.notifier.AppointmentChanged(ctx, appointment.ID, service.ChangeBooked)

	return converter.AppointmentToResponse(appointment), nil
}

func (u *bookingUsecase) CancelAppointment(ctx context.Context, userID uuid.UUID, userEmail string, roleID int, appointmentID int64) (*dto.AppointmentResponse, error) {
	db := u.db.WithContext(ctx)

	appointment, err := u.appointmentRepo.FindByID(db, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	if roleID != entity.RoleIDAdmin && appointment.PatientEmail != userEmail {
		return nil, ErrNotAppointmentOwner
	}

	tx := db.Begin()
	defer tx.Rollback()

	affected, err := u.appointmentRepo.Cancel(tx, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to cancel appointment: %+v", err)
		return nil, err
	}
	if affected == 0 {
		return nil, ErrAppointmentClosed
	}

	if err := u.auditService.LogUpdate(ctx, tx, &userID, entity.AuditActionAppointmentCancel, "appointment", fmt.Sprint(appointmentID), string(appointment.Status), string(entity.StatusCancelled)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.notifier.AppointmentChanged(ctx, appointmentID, service.ChangeCancelled)

	appointment.Status = entity.StatusCancelled
	return converter.AppointmentToResponse(appointment), nil
}

func (u *bookingUsecase) CompleteAppointment(ctx context.Context, userID uuid.UUID, roleID int, appointmentID int64) (*dto.AppointmentResponse, error) {
	db := u.db.WithContext(ctx)

	appointment, err := u.appointmentRepo.FindByID(db, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	if roleID != entity.RoleIDAdmin {
		profile, err := u.doctorRepo.FindByUserID(db, userID)
		if err != nil {
			u.log.Warnf("Failed to find doctor profile: %+v", err)
			return nil, err
		}
		if profile == nil || profile.FullName != appointment.DoctorName {
			return nil, ErrNotAppointmentDoctor
		}
	}

	tx := db.Begin()
	defer tx.Rollback()

	affected, err := u.appointmentRepo.Complete(tx, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to complete appointment: %+v", err)
		return nil, err
	}
	if affected == 0 {
		return nil, ErrAppointmentClosed
	}

	if err := u.auditService.LogUpdate(ctx, tx, &userID, entity.AuditActionAppointmentComplete, "appointment", fmt.Sprint(appointmentID), string(appointment.Status), string(entity.StatusCompleted)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.notifier.AppointmentChanged(ctx, appointmentID, service.ChangeCompleted)

	appointment.Status = entity.StatusCompleted
	return converter.AppointmentToResponse(appointment), nil
}

// bookedSlots collects every slot label held by a non-cancelled
// appointment for the doctor on the given day.
func (u *bookingUsecase) bookedSlots(db *gorm.DB, doctorName string, day time.Time) (map[string]bool, error) {
	active, err := u.appointmentRepo.FindActiveByDoctorAndDate(db, doctorName, day)
	if err != nil {
		u.log.Warnf("Failed to list active appointments: %+v", err)
		return nil, err
	}

	booked := make(map[string]bool)
	for i := range active {
		for _, slot := range active[i].TimeSlots {
			booked[slot] = true
		}
	}
	return booked, nil
}

// validateSelection checks a requested slot selection against the grid
// and the current booking state. Order matters: an empty selection and
// a past date are rejected before individual slots are examined.
func validateSelection(day time.Time, slots []string, booked map[string]bool, now time.Time) error {
	if len(slots) == 0 {
		return ErrNoSlotSelected
	}
	if schedule.BeforeDate(day, now) {
		return ErrPastDate
	}

	today := schedule.SameDate(day, now)
	for _, label := range slots {
		if !schedule.InGrid(label) {
			return ErrUnknownSlot
		}
		hour, _ := schedule.ParseLabel(label)
		if booked[label] {
			return ErrSlotTaken
		}
		if today && (hour < now.Hour() || (hour == now.Hour() && now.Minute() > 0)) {
			return ErrSlotTaken
		}
	}
	return nil
}
