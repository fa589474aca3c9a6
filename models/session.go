package models

import "time"

// DialogueState identifies where a session is in the booking conversation.
type DialogueState string

const (
	StateGreeting          DialogueState = "greeting"
	StateCollectingName    DialogueState = "collecting_name"
	StateCollectingGuests  DialogueState = "collecting_guests"
	StateCollectingDate    DialogueState = "collecting_date"
	StateCollectingTime    DialogueState = "collecting_time"
	StateCollectingCuisine DialogueState = "collecting_cuisine"
	StateFetchingWeather   DialogueState = "fetching_weather"
	StateSuggestingSeating DialogueState = "suggesting_seating"
	StateConfirming        DialogueState = "confirming"
	StateCompleted         DialogueState = "completed"
)

// Fields is one immutable snapshot of the booking slots collected so far.
// Each dialogue turn produces a fresh snapshot from the previous one plus the
// extraction delta; snapshots are copied by value.
type Fields struct {
	CustomerName    string   `json:"customerName,omitempty"`
	GuestCount      int      `json:"guestCount,omitempty"` // 0 means not collected yet
	Date            string   `json:"date,omitempty"`       // canonical YYYY-MM-DD
	Time            string   `json:"time,omitempty"`       // 24h HH:MM, slot-aligned
	Cuisine         string   `json:"cuisine,omitempty"`
	SpecialRequests []string `json:"specialRequests,omitempty"`
}

// Missing reports the required fields still empty, in collection order.
func (f Fields) Missing() []string {
	var missing []string
	if f.CustomerName == "" {
		missing = append(missing, "customerName")
	}
	if f.GuestCount == 0 {
		missing = append(missing, "guestCount")
	}
	if f.Date == "" {
		missing = append(missing, "date")
	}
	if f.Time == "" {
		missing = append(missing, "time")
	}
	if f.Cuisine == "" {
		missing = append(missing, "cuisine")
	}
	return missing
}

// Complete reports whether every required field has been collected.
func (f Fields) Complete() bool {
	return len(f.Missing()) == 0
}

// Session holds one in-progress booking conversation.
type Session struct {
	SessionID     string           `json:"sessionId"`
	State         DialogueState    `json:"state"`
	Fields        Fields           `json:"fields"`
	Advisory      *SeatingAdvisory `json:"advisory,omitempty"`
	AdvisoryDate  string           `json:"advisoryDate,omitempty"` // date the advisory was fetched for
	ReservationID string           `json:"reservationId,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
	LastUpdated   time.Time        `json:"lastUpdated"`
}
