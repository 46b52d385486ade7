package usecase

import (
	"context"
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
	"gorm.io/gorm"
)

type DashboardUsecase interface {
	PatientDashboard(ctx context.Context, patientEmail string) (*dto.PatientDashboardResponse, error)
	DoctorDashboard(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorDashboardResponse, error)
	AdminDashboard(ctx context.Context) (*dto.AdminDashboardResponse, error)
}

type dashboardUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	userRepo        repository.UserRepository
	doctorRepo      repository.DoctorProfileRepository
	appointmentRepo repository.AppointmentRepository
	notifier        service.ChangeNotifier
	now             func() time.Time
}

func NewDashboardUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	doctorRepo repository.DoctorProfileRepository,
	appointmentRepo repository.AppointmentRepository,
	notifier service.ChangeNotifier,
) DashboardUsecase {
	return &dashboardUsecase{
		db:              db,
		log:             log,
		userRepo:        userRepo,
		doctorRepo:      doctorRepo,
		appointmentRepo: appointmentRepo,
		notifier:        notifier,
		now:             time.Now,
	}
}

func (u *dashboardUsecase) PatientDashboard(ctx context.Context, patientEmail string) (*dto.PatientDashboardResponse, error) {
	db := u.db.WithContext(ctx)

	appointments, err := u.appointmentRepo.FindByPatientEmail(db, patientEmail)
	if err != nil {
		u.log.Warnf("Failed to list patient appointments: %+v", err)
		return nil, err
	}

	u.reconcile(ctx, db, appointments)

	ongoing, completed, cancelled := statusCounts(appointments)
	return &dto.PatientDashboardResponse{
		Ongoing:      ongoing,
		Completed:    completed,
		Cancelled:    cancelled,
		Appointments: converter.AppointmentsToResponses(appointments),
	}, nil
}

func (u *dashboardUsecase) DoctorDashboard(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorDashboardResponse, error) {
	db := u.db.WithContext(ctx)

	profile, err := u.doctorRepo.FindByUserID(db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrDoctorNotFound
	}

	appointments, err := u.appointmentRepo.FindByDoctorName(db, profile.FullName)
	if err != nil {
		u.log.Warnf("Failed to list doctor appointments: %+v", err)
		return nil, err
	}

	u.reconcile(ctx, db, appointments)

	ongoing, _, _ := statusCounts(appointments)
	return &dto.DoctorDashboardResponse{
		Income:       doctorIncome(appointments).StringFixed(2),
		Patients:     uniquePatients(appointments),
		Ongoing:      ongoing,
		Appointments: converter.AppointmentsToResponses(appointments),
	}, nil
}

func (u *dashboardUsecase) AdminDashboard(ctx context.Context) (*dto.AdminDashboardResponse, error) {
	db := u.db.WithContext(ctx)

	appointments, err := u.appointmentRepo.FindAll(db)
	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, err
	}

	u.reconcile(ctx, db, appointments)

	doctors, err := u.doctorRepo.Count(db)
	if err != nil {
		u.log.Warnf("Failed to count doctors: %+v", err)
		return nil, err
	}

	patients, err := u.userRepo.CountByRole(db, entity.RoleIDPatient)
	if err != nil {
		u.log.Warnf("Failed to count patients: %+v", err)
		return nil, err
	}

	ongoing, _, _ := statusCounts(appointments)
	return &dto.AdminDashboardResponse{
		Doctors:      doctors,
		Patients:     patients,
		Ongoing:      ongoing,
		Appointments: converter.AppointmentsToResponses(appointments),
	}, nil
}

// reconcile persists the natural Ongoing to Completed transition for
// appointments whose last slot has started, then patches the in-memory
// records so counting happens on the stored state. The flip is
// conditional in SQL, so two dashboards racing on the same record flip
// it once. Stored terminal states are never downgraded.
func (u *dashboardUsecase) reconcile(ctx context.Context, db *gorm.DB, appointments []entity.Appointment) {
	now := u.now()
	for i := range appointments {
		a := &appointments[i]
		if !a.IsOngoing() {
			continue
		}
		if schedule.Resolve(a.Date, a.TimeSlots, a.Status, now) != entity.StatusCompleted {
			continue
		}

		affected, err := u.appointmentRepo.MarkCompleted(db, a.ID)
		if err != nil {
			u.log.Warnf("Failed to mark appointment %d completed: %+v", a.ID, err)
			continue
		}
		if affected > 0 {
			a.Status = entity.StatusCompleted
			u.notifier.AppointmentChanged(ctx, a.ID, service.ChangeCompleted)
		}
	}
}

func statusCounts(appointments []entity.Appointment) (ongoing, completed, cancelled int) {
	for i := range appointments {
		switch appointments[i].Status {
		case entity.StatusOngoing:
			ongoing++
		case entity.StatusCompleted:
			completed++
		case entity.StatusCancelled:
			cancelled++
		}
	}
	return ongoing, completed, cancelled
}

// doctorIncome sums fees over completed appointments only. Ongoing fees
// are not yet earned and cancelled ones never will be.
func doctorIncome(appointments []entity.Appointment) decimal.Decimal {
	income := decimal.Zero
	for i := range appointments {
		if appointments[i].IsCompleted() {
			income = income.Add(appointments[i].Fee)
		}
	}
	return income
}

// uniquePatients counts distinct patient emails across completed and
// ongoing appointments. Cancelled bookings do not make a patient.
func uniquePatients(appointments []entity.Appointment) int {
	seen := make(map[string]struct{})
	for i := range appointments {
		if appointments[i].IsCancelled() {
			continue
		}
		seen[appointments[i].PatientEmail] = struct{}{}
	}
	return len(seen)
}
