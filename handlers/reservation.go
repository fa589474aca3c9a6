// File: handlers/reservation.go
package handlers

import (
	"errors"
	"net/http"

	reservationRepo "tablewala/database/repository/reservation"
	"tablewala/services/allocation"
	"tablewala/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReservationHandler serves reservation lookup and cancellation.
type ReservationHandler struct {
	Reservations reservationRepo.ReservationRepository
	Allocator    allocation.Engine
}

// NewReservationHandler constructs a ReservationHandler.
func NewReservationHandler(repo reservationRepo.ReservationRepository, allocator allocation.Engine) *ReservationHandler {
	return &ReservationHandler{Reservations: repo, Allocator: allocator}
}

// GetReservation returns one reservation by id.
func (h *ReservationHandler) GetReservation(c *gin.Context) {
	id := c.Param("reservationID")
	res, err := h.Reservations.GetByID(c.Request.Context(), id)
	if errors.Is(err, reservationRepo.ErrNotFound) {
		utils.JSONError(c, http.StatusNotFound, "reservation not found", "")
		return
	}
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch reservation", err.Error())
		return
	}
	c.JSON(http.StatusOK, res)
}

// CancelReservation cancels a confirmed reservation and releases exactly the
// guest count that was reserved for it.
func (h *ReservationHandler) CancelReservation(c *gin.Context) {
	id := c.Param("reservationID")
	ctx := c.Request.Context()

	res, err := h.Reservations.Cancel(ctx, id)
	if errors.Is(err, reservationRepo.ErrNotFound) {
		utils.JSONError(c, http.StatusNotFound, "reservation not found or already cancelled", "")
		return
	}
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to cancel reservation", err.Error())
		return
	}

	if err := h.Allocator.Release(ctx, res.Date, res.Time, res.GuestCount, res.ReservationID); err != nil {
		// The reservation is cancelled but the seats are still held; this
		// needs operator attention.
		getLogger(c).Error("failed to release seats for cancelled reservation",
			zap.String("reservationId", res.ReservationID),
			zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "cancelled but failed to release seats", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reservationId": res.ReservationID,
		"cancelled":     true,
		"released":      res.GuestCount,
	})
}

// GetBucketReservations lists reservations against one (date, time) bucket.
func (h *ReservationHandler) GetBucketReservations(c *gin.Context) {
	date := c.Query("date")
	slotTime := c.Query("time")
	if date == "" || slotTime == "" {
		utils.JSONError(c, http.StatusBadRequest, "missing required query parameters", "date and time are required")
		return
	}

	reservations, err := h.Reservations.FindByBucket(c.Request.Context(), date, slotTime)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch reservations", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "time": slotTime, "reservations": reservations})
}
