package cron

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"tablewala/config"
	reservationRepo "tablewala/database/repository/reservation"
	"tablewala/models"
	"tablewala/services/notify"
	"tablewala/services/tasks"

	"github.com/hibiken/asynq"
)

// InitReminderWorker runs the async reminder worker in background.
func InitReminderWorker(notifier notify.Notifier, reservations reservationRepo.ReservationRepository) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSendReminder, handleReminderTask(notifier, reservations))

	// Start async worker with retry logic
	go func() {
		log.Println("[ReminderWorker] Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReminderWorker] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ReminderWorker] Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleReminderTask(notifier notify.Notifier, reservations reservationRepo.ReservationRepository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ReminderHandler] Invalid payload: %v", err)
			return err
		}

		// Skip reminders whose reservation was cancelled in the meantime.
		res, err := reservations.GetByID(ctx, p.ReservationID)
		if errors.Is(err, reservationRepo.ErrNotFound) {
			// Known gap: a session abandoned after reserving leaves a
			// reservation with no owner. Log it for the floor staff.
			log.Printf("[ReminderHandler] Reservation %s not found; possibly orphaned", p.ReservationID)
			return nil
		}
		if err != nil {
			return err
		}
		if res.Status != models.ReservationConfirmed {
			log.Printf("[ReminderHandler] Reservation %s is %s; skipping reminder", p.ReservationID, res.Status)
			return nil
		}

		log.Printf("[ReminderHandler] Triggering reminder for %s (%s, %s %s, %d guests)",
			p.ReservationID, p.CustomerName, p.Date, p.Time, p.GuestCount)

		if err := notifier.SendReservationReminder(ctx, p); err != nil {
			log.Printf("[ReminderHandler] Failed to send reminder: %v", err)
			return err
		}
		return nil
	}
}
