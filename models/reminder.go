package models

// ReminderPayload is the queued payload for a reservation reminder.
type ReminderPayload struct {
	ReservationID string `json:"reservationId"`
	CustomerName  string `json:"customerName"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	GuestCount    int    `json:"guestCount"`
	Seating       string `json:"seating,omitempty"`
}
