// File: services/dialogue/states.go
package dialogue

import (
	"tablewala/models"
	"tablewala/services/extract"
)

// stateOrder is the fixed linear progression of the booking conversation.
var stateOrder = []models.DialogueState{
	models.StateGreeting,
	models.StateCollectingName,
	models.StateCollectingGuests,
	models.StateCollectingDate,
	models.StateCollectingTime,
	models.StateCollectingCuisine,
	models.StateFetchingWeather,
	models.StateSuggestingSeating,
	models.StateConfirming,
	models.StateCompleted,
}

// ownedField maps each state to the slot it collects. Greeting already
// listens for a name so a self-introduction on the first message is not
// wasted. Control states own nothing.
var ownedField = map[models.DialogueState]extract.Field{
	models.StateGreeting:          extract.FieldName,
	models.StateCollectingName:    extract.FieldName,
	models.StateCollectingGuests:  extract.FieldGuestCount,
	models.StateCollectingDate:    extract.FieldDate,
	models.StateCollectingTime:    extract.FieldTime,
	models.StateCollectingCuisine: extract.FieldCuisine,
}

func validState(state models.DialogueState) bool {
	for _, s := range stateOrder {
		if s == state {
			return true
		}
	}
	return false
}

// nextCollectState returns the first state, in the fixed linear order, whose
// owned field is still empty; once every required field is filled the machine
// advances to fetching_weather. Recomputing from the field set on every turn
// makes the machine idempotent under non-matching input.
func nextCollectState(fields models.Fields) models.DialogueState {
	switch {
	case fields.CustomerName == "":
		return models.StateCollectingName
	case fields.GuestCount == 0:
		return models.StateCollectingGuests
	case fields.Date == "":
		return models.StateCollectingDate
	case fields.Time == "":
		return models.StateCollectingTime
	case fields.Cuisine == "":
		return models.StateCollectingCuisine
	default:
		return models.StateFetchingWeather
	}
}
