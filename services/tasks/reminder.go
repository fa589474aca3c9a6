package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"tablewala/config"
	"tablewala/models"
	"tablewala/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeSendReminder = "reminder:send"

// NewReminderTask builds the asynq task for one reservation reminder.
func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}

// Scheduler queues a reminder ahead of a confirmed reservation's seating time.
type Scheduler interface {
	ScheduleReservationReminder(res models.Reservation) error
}

// AsynqScheduler enqueues reminders on the shared Redis-backed queue.
type AsynqScheduler struct {
	client *asynq.Client
	lead   time.Duration
	logger *zap.Logger
}

// NewAsynqScheduler builds a scheduler from the application configuration.
func NewAsynqScheduler(logger *zap.Logger) *AsynqScheduler {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	lead := time.Duration(config.AppConfig.ReminderLeadTimeMinutes) * time.Minute
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AsynqScheduler{client: client, lead: lead, logger: logger}
}

func (s *AsynqScheduler) ScheduleReservationReminder(res models.Reservation) error {
	seating, err := utils.SeatingTime(res.Date, res.Time)
	if err != nil {
		return fmt.Errorf("invalid seating time for reservation %s: %w", res.ReservationID, err)
	}

	fireAt := seating.Add(-s.lead)
	if fireAt.Before(time.Now()) {
		// Same-evening bookings get no reminder; the seating is too close.
		s.logger.Debug("skipping reminder, seating too soon",
			zap.String("reservationId", res.ReservationID))
		return nil
	}

	payload := models.ReminderPayload{
		ReservationID: res.ReservationID,
		CustomerName:  res.CustomerName,
		Date:          res.Date,
		Time:          res.Time,
		GuestCount:    res.GuestCount,
		Seating:       res.Seating,
	}
	task, opts, err := NewReminderTask(payload, fireAt)
	if err != nil {
		return err
	}
	if _, err := s.client.Enqueue(task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue reminder for %s: %w", res.ReservationID, err)
	}
	return nil
}
