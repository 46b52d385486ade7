package usecase

import (
	"context"
	"testing"
	"time"

	"clinic-appointment-service/internal/domain/entity"
	"clinic-appointment-service/internal/service"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// stubAppointmentRepo backs reconcile tests without a database. Only
// MarkCompleted mutates state; the finders return the seeded slice.
type stubAppointmentRepo struct {
	appointments       []entity.Appointment
	markCompletedCalls []int64
}

func (s *stubAppointmentRepo) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return nil
}

func (s *stubAppointmentRepo) FindByID(db *gorm.DB, id int64) (*entity.Appointment, error) {
	return nil, nil
}

func (s *stubAppointmentRepo) FindAll(db *gorm.DB) ([]entity.Appointment, error) {
	return append([]entity.Appointment(nil), s.appointments...), nil
}

func (s *stubAppointmentRepo) FindByPatientEmail(db *gorm.DB, email string) ([]entity.Appointment, error) {
	return append([]entity.Appointment(nil), s.appointments...), nil
}

func (s *stubAppointmentRepo) FindByDoctorName(db *gorm.DB, doctorName string) ([]entity.Appointment, error) {
	return append([]entity.Appointment(nil), s.appointments...), nil
}

func (s *stubAppointmentRepo) FindActiveByDoctorAndDate(db *gorm.DB, doctorName string, date time.Time) ([]entity.Appointment, error) {
	return nil, nil
}

func (s *stubAppointmentRepo) LockDoctorDay(tx *gorm.DB, doctorName string, date time.Time) error {
	return nil
}

func (s *stubAppointmentRepo) MarkCompleted(db *gorm.DB, id int64) (int64, error) {
	s.markCompletedCalls = append(s.markCompletedCalls, id)
	for i := range s.appointments {
		if s.appointments[i].ID == id && s.appointments[i].Status == entity.StatusOngoing {
			s.appointments[i].Status = entity.StatusCompleted
			return 1, nil
		}
	}
	return 0, nil
}

func (s *stubAppointmentRepo) Cancel(db *gorm.DB, id int64) (int64, error) {
	return 0, nil
}

func (s *stubAppointmentRepo) Complete(db *gorm.DB, id int64) (int64, error) {
	return 0, nil
}

type stubNotifier struct {
	actions []string
}

func (n *stubNotifier) AppointmentChanged(ctx context.Context, appointmentID int64, action string) {
	n.actions = append(n.actions, action)
}

func appt(status entity.AppointmentStatus, patient string, fee string) entity.Appointment {
	f, _ := decimal.NewFromString(fee)
	return entity.Appointment{
		DoctorName:   "Dr. Alice Green",
		PatientEmail: patient,
		Date:         time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		TimeSlots:    entity.TimeSlots{"10:00 AM"},
		Fee:          f,
		Status:       status,
	}
}

func TestStatusCounts(t *testing.T) {
	appointments := []entity.Appointment{
		appt(entity.StatusOngoing, "a@x.com", "100"),
		appt(entity.StatusOngoing, "b@x.com", "100"),
		appt(entity.StatusCompleted, "a@x.com", "100"),
		appt(entity.StatusCancelled, "c@x.com", "100"),
	}

	ongoing, completed, cancelled := statusCounts(appointments)
	assert.Equal(t, 2, ongoing)
	assert.Equal(t, 1, completed)
	assert.Equal(t, 1, cancelled)
}

func TestStatusCounts_Empty(t *testing.T) {
	ongoing, completed, cancelled := statusCounts(nil)
	assert.Zero(t, ongoing)
	assert.Zero(t, completed)
	assert.Zero(t, cancelled)
}

func TestDoctorIncome_CompletedOnly(t *testing.T) {
	appointments := []entity.Appointment{
		appt(entity.StatusCompleted, "a@x.com", "150.50"),
		appt(entity.StatusCompleted, "b@x.com", "99.25"),
		appt(entity.StatusOngoing, "c@x.com", "500"),
		appt(entity.StatusCancelled, "d@x.com", "500"),
	}

	assert.Equal(t, "249.75", doctorIncome(appointments).StringFixed(2))
}

func TestDoctorIncome_NoCompleted(t *testing.T) {
	appointments := []entity.Appointment{
		appt(entity.StatusOngoing, "a@x.com", "100"),
	}

	assert.True(t, doctorIncome(appointments).IsZero())
}

func TestDoctorIncome_ExactDecimalSum(t *testing.T) {
	// 0.1 + 0.2 must come out as exactly 0.30
	appointments := []entity.Appointment{
		appt(entity.StatusCompleted, "a@x.com", "0.1"),
		appt(entity.StatusCompleted, "b@x.com", "0.2"),
	}

	assert.Equal(t, "0.30", doctorIncome(appointments).StringFixed(2))
}

func TestReconcile_ElapsedOngoingFlipsAndCounts(t *testing.T) {
	now := time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC)
	yesterday := appt(entity.StatusOngoing, "a@x.com", "150.50")
	yesterday.ID = 7
	yesterday.Date = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	repo := &stubAppointmentRepo{appointments: []entity.Appointment{yesterday}}
	notifier := &stubNotifier{}
	u := &dashboardUsecase{
		log:             logrus.New(),
		appointmentRepo: repo,
		notifier:        notifier,
		now:             func() time.Time { return now },
	}

	loaded, err := repo.FindAll(nil)
	require.NoError(t, err)
	u.reconcile(context.Background(), nil, loaded)

	// The flip is persisted, announced, and visible to the counters
	require.Equal(t, []int64{7}, repo.markCompletedCalls)
	assert.Equal(t, []string{service.ChangeCompleted}, notifier.actions)
	assert.Equal(t, entity.StatusCompleted, loaded[0].Status)

	ongoing, completed, _ := statusCounts(loaded)
	assert.Zero(t, ongoing)
	assert.Equal(t, 1, completed)
	assert.Equal(t, "150.50", doctorIncome(loaded).StringFixed(2))
}

func TestReconcile_SecondPassIsNoOp(t *testing.T) {
	now := time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC)
	yesterday := appt(entity.StatusOngoing, "a@x.com", "100")
	yesterday.ID = 3
	yesterday.Date = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	repo := &stubAppointmentRepo{appointments: []entity.Appointment{yesterday}}
	notifier := &stubNotifier{}
	u := &dashboardUsecase{
		log:             logrus.New(),
		appointmentRepo: repo,
		notifier:        notifier,
		now:             func() time.Time { return now },
	}

	first, err := repo.FindAll(nil)
	require.NoError(t, err)
	u.reconcile(context.Background(), nil, first)
	require.Len(t, repo.markCompletedCalls, 1)

	// Re-reading sees the stored Completed status; nothing to flip
	second, err := repo.FindAll(nil)
	require.NoError(t, err)
	u.reconcile(context.Background(), nil, second)

	assert.Len(t, repo.markCompletedCalls, 1)
	assert.Len(t, notifier.actions, 1)
	assert.Equal(t, entity.StatusCompleted, second[0].Status)
}

func TestReconcile_FutureOngoingUntouched(t *testing.T) {
	now := time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC)
	tomorrow := appt(entity.StatusOngoing, "a@x.com", "100")
	tomorrow.ID = 5
	tomorrow.Date = time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)

	repo := &stubAppointmentRepo{appointments: []entity.Appointment{tomorrow}}
	notifier := &stubNotifier{}
	u := &dashboardUsecase{
		log:             logrus.New(),
		appointmentRepo: repo,
		notifier:        notifier,
		now:             func() time.Time { return now },
	}

	loaded, err := repo.FindAll(nil)
	require.NoError(t, err)
	u.reconcile(context.Background(), nil, loaded)

	assert.Empty(t, repo.markCompletedCalls)
	assert.Empty(t, notifier.actions)
	assert.Equal(t, entity.StatusOngoing, loaded[0].Status)
}

func TestUniquePatients(t *testing.T) {
	appointments := []entity.Appointment{
		appt(entity.StatusOngoing, "a@x.com", "100"),
		appt(entity.StatusCompleted, "a@x.com", "100"),
		appt(entity.StatusOngoing, "b@x.com", "100"),
	}

	assert.Equal(t, 2, uniquePatients(appointments))
}

func TestUniquePatients_CancelledExcluded(t *testing.T) {
	appointments := []entity.Appointment{
		appt(entity.StatusCancelled, "a@x.com", "100"),
		appt(entity.StatusOngoing, "b@x.com", "100"),
	}

	assert.Equal(t, 1, uniquePatients(appointments))
}
