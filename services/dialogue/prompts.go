// File: services/dialogue/prompts.go
package dialogue

import (
	"fmt"
	"strings"

	"tablewala/models"
)

// promptFor renders the reply for the state the turn landed on.
func (s *DefaultDialogueService) promptFor(sess *models.Session, alternatives []string, reservation *models.Reservation) string {
	fields := sess.Fields

	switch sess.State {
	case models.StateCollectingName:
		return fmt.Sprintf("Welcome to %s! May I have your name, please?", s.RestaurantName)

	case models.StateCollectingGuests:
		return fmt.Sprintf("Nice to meet you, %s! How many guests should I book the table for?", fields.CustomerName)

	case models.StateCollectingDate:
		return "And for which date would you like the reservation?"

	case models.StateCollectingTime:
		if len(alternatives) > 0 {
			return fmt.Sprintf(
				"I'm sorry, we're full at that time. The nearest open slots are %s. Which one works for you?",
				strings.Join(alternatives, ", "))
		}
		return "What time should I reserve your table?"

	case models.StateCollectingCuisine:
		return "Lovely. Which cuisine would you prefer?"

	case models.StateCompleted:
		confirmation := fmt.Sprintf(
			"All set, %s! Table for %d on %s at %s, %s cuisine.",
			fields.CustomerName, fields.GuestCount, fields.Date, fields.Time, fields.Cuisine)
		if reservation != nil {
			confirmation += fmt.Sprintf(" Your reservation id is %s.", reservation.ReservationID)
		}
		if sess.Advisory != nil {
			confirmation += fmt.Sprintf(" We'd suggest %s seating: %s.",
				sess.Advisory.Recommendation, sess.Advisory.Reason)
		}
		return confirmation

	default:
		return fmt.Sprintf("Welcome to %s! How can I help you with your reservation?", s.RestaurantName)
	}
}
