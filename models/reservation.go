package models

import "time"

// Reservation statuses.
const (
	ReservationConfirmed = "confirmed"
	ReservationCancelled = "cancelled"
)

// Reservation is a confirmed seat allocation against exactly one bucket.
// GuestCount is stored so cancellation releases the exact amount originally
// reserved rather than a recomputed value.
type Reservation struct {
	ReservationID   string    `bson:"reservationId" json:"reservationId"`
	SessionID       string    `bson:"sessionId,omitempty" json:"sessionId,omitempty"`
	CustomerName    string    `bson:"customerName" json:"customerName"`
	Date            string    `bson:"date" json:"date"`
	Time            string    `bson:"time" json:"time"`
	GuestCount      int       `bson:"guestCount" json:"guestCount"`
	Cuisine         string    `bson:"cuisine,omitempty" json:"cuisine,omitempty"`
	SpecialRequests []string  `bson:"specialRequests,omitempty" json:"specialRequests,omitempty"`
	Seating         string    `bson:"seating,omitempty" json:"seating,omitempty"`
	Status          string    `bson:"status" json:"status"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
}
