package models

// TimeSlotBucket is one (date, time) capacity unit of the dining room.
// Identity key is (Date, Time); buckets are materialized lazily on first access.
type TimeSlotBucket struct {
	Date           string   `bson:"date" json:"date"` // YYYY-MM-DD
	Time           string   `bson:"time" json:"time"` // HH:MM, slot-aligned
	Capacity       int      `bson:"capacity" json:"capacity"`
	Booked         int      `bson:"booked" json:"booked"`
	Blocked        bool     `bson:"blocked" json:"blocked"`
	BlockedReason  string   `bson:"blockedReason,omitempty" json:"blockedReason,omitempty"`
	BlockedBy      string   `bson:"blockedBy,omitempty" json:"blockedBy,omitempty"`
	ReservationIDs []string `bson:"reservationIds,omitempty" json:"reservationIds,omitempty"`
}

// Remaining returns the seats still open in the bucket.
func (b TimeSlotBucket) Remaining() int {
	return b.Capacity - b.Booked
}

// HasAvailability reports whether the bucket can seat the party.
func (b TimeSlotBucket) HasAvailability(guestCount int) bool {
	return !b.Blocked && b.Remaining() >= guestCount
}

// SlotStatus classifies one bucket for the daily availability summary.
type SlotStatus string

const (
	SlotAvailable   SlotStatus = "available"
	SlotFullyBooked SlotStatus = "fully_booked"
	SlotBlocked     SlotStatus = "blocked"
)

// SlotSummary is one row of a daily availability summary.
type SlotSummary struct {
	Time      string     `json:"time"`
	Status    SlotStatus `json:"status"`
	Capacity  int        `json:"capacity"`
	Booked    int        `json:"booked"`
	Remaining int        `json:"remaining"`
}

// AvailabilitySummary aggregates one day of buckets, treating slots that were
// never materialized as open at default capacity.
type AvailabilitySummary struct {
	Date          string        `json:"date"`
	Slots         []SlotSummary `json:"slots"`
	TotalBooked   int           `json:"totalBooked"`
	TotalCapacity int           `json:"totalCapacity"`
	Utilization   float64       `json:"utilization"` // TotalBooked / TotalCapacity
}
