// File: tablewala/handlers/bundle.go
package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all the endpoint handlers into one struct.
type HandlerBundle struct {
	// Dialogue endpoints
	HandleTurnHandler     gin.HandlerFunc
	AbandonSessionHandler gin.HandlerFunc

	// Reservation endpoints
	GetReservationHandler        gin.HandlerFunc
	CancelReservationHandler     gin.HandlerFunc
	GetBucketReservationsHandler gin.HandlerFunc

	// Admin endpoints
	BlockSlotHandler           gin.HandlerFunc
	UnblockSlotHandler         gin.HandlerFunc
	AvailabilitySummaryHandler gin.HandlerFunc
	AdminHealthHandler         gin.HandlerFunc
}
