// File: services/notify/notify.go
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"tablewala/config"
	"tablewala/models"

	"go.uber.org/zap"
)

// Notifier delivers reservation reminders to customers.
type Notifier interface {
	SendReservationReminder(ctx context.Context, payload models.ReminderPayload) error
}

// WebhookNotifier posts reminders to a configured webhook (an SMS or push
// gateway). With no webhook configured it only logs, which keeps reminder
// delivery non-fatal everywhere.
type WebhookNotifier struct {
	URL    string
	Client *http.Client
	Logger *zap.Logger
}

// NewWebhookNotifier builds a notifier from the application configuration.
func NewWebhookNotifier(logger *zap.Logger) *WebhookNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebhookNotifier{
		URL:    config.AppConfig.ReminderWebhookURL,
		Client: &http.Client{Timeout: 5 * time.Second},
		Logger: logger,
	}
}

func (n *WebhookNotifier) SendReservationReminder(ctx context.Context, payload models.ReminderPayload) error {
	n.Logger.Info("reservation reminder due",
		zap.String("reservationId", payload.ReservationID),
		zap.String("customer", payload.CustomerName),
		zap.String("date", payload.Date),
		zap.String("time", payload.Time),
		zap.Int("guestCount", payload.GuestCount))

	if n.URL == "" {
		return nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.URL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.Client.Do(req)
	if err != nil {
		return fmt.Errorf("reminder webhook request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("reminder webhook returned status %d", resp.StatusCode)
	}
	return nil
}
