package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// AppointmentsChannel is the Redis pub/sub channel carrying store-change
// events. Dashboard clients subscribe here instead of polling the store
// on a timer.
const AppointmentsChannel = "appointments:changed"

const publishTimeout = 5 * time.Second

// ChangeEvent describes one appointment mutation.
type ChangeEvent struct {
	AppointmentID int64     `json:"appointment_id"`
	Action        string    `json:"action"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// Change actions
const (
	ChangeBooked    = "booked"
	ChangeCancelled = "cancelled"
	ChangeCompleted = "completed"
)

// ChangeNotifier is the mutation-signal seam consumed by the usecases.
type ChangeNotifier interface {
	AppointmentChanged(ctx context.Context, appointmentID int64, action string)
}

// StoreNotifier publishes appointment store mutations over Redis.
// Publishing is best effort: a failed publish never fails the mutation
// that triggered it, because the store remains the source of truth and
// every view recomputes from it anyway.
type StoreNotifier struct {
	redisClient *redis.Client
	log         *logrus.Logger
}

func NewStoreNotifier(redisClient *redis.Client, log *logrus.Logger) *StoreNotifier {
	return &StoreNotifier{
		redisClient: redisClient,
		log:         log,
	}
}

// AppointmentChanged publishes one change event.
func (n *StoreNotifier) AppointmentChanged(ctx context.Context, appointmentID int64, action string) {
	event := ChangeEvent{
		AppointmentID: appointmentID,
		Action:        action,
		OccurredAt:    time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		n.log.Warnf("Failed to marshal change event for appointment %d: %+v", appointmentID, err)
		return
	}

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := n.redisClient.Publish(pubCtx, AppointmentsChannel, payload).Err(); err != nil {
		n.log.Warnf("Failed to publish change event for appointment %d (non-fatal): %+v", appointmentID, err)
	}
}

// Subscribe returns a subscription to the change channel. The caller
// owns the returned PubSub and must Close it.
func (n *StoreNotifier) Subscribe(ctx context.Context) *redis.PubSub {
	return n.redisClient.Subscribe(ctx, AppointmentsChannel)
}
