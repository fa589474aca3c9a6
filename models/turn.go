package models

// TurnRequest is the payload coming from the transport layer for one dialogue turn.
type TurnRequest struct {
	SessionID   string  `json:"sessionId"`
	Utterance   string  `json:"utterance" binding:"required"`
	KnownFields *Fields `json:"knownFields,omitempty"` // optional pre-filled slots from the caller
}

// TurnResponse is what one dialogue turn returns to the transport layer.
type TurnResponse struct {
	SessionID        string           `json:"sessionId"`
	PromptText       string           `json:"promptText"`
	State            DialogueState    `json:"state"`
	Fields           Fields           `json:"fields"`
	MissingFields    []string         `json:"missingFields"`
	ReadyToReserve   bool             `json:"readyToReserve"`
	SeatingAdvisory  *SeatingAdvisory `json:"seatingAdvisory,omitempty"`
	Reservation      *Reservation     `json:"reservation,omitempty"`
	AlternativeTimes []string         `json:"alternativeTimes,omitempty"` // offered after an allocation conflict
}
