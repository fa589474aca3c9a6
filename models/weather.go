package models

// Seating recommendations.
const (
	SeatingIndoor  = "indoor"
	SeatingOutdoor = "outdoor"
)

// SeatingAdvisory is the weather collaborator's non-authoritative seating hint.
// A neutral default stands in whenever the collaborator fails or times out.
type SeatingAdvisory struct {
	Condition      string  `json:"condition"`
	TemperatureC   float64 `json:"temperatureC"`
	Recommendation string  `json:"recommendation"` // indoor | outdoor
	Reason         string  `json:"reason"`
	Fallback       bool    `json:"fallback,omitempty"`
}
