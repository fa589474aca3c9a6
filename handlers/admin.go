// File: handlers/admin.go
package handlers

import (
	"net/http"

	"tablewala/services/allocation"
	"tablewala/utils"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves the administrative interface: bucket blocking and
// availability summaries.
type AdminHandler struct {
	Allocator allocation.Engine
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(allocator allocation.Engine) *AdminHandler {
	return &AdminHandler{Allocator: allocator}
}

type blockRequest struct {
	Date   string `json:"date" binding:"required"`
	Time   string `json:"time" binding:"required"`
	Actor  string `json:"actor"`
	Reason string `json:"reason"`
}

// BlockSlot blocks a bucket regardless of remaining capacity. Existing
// reservations are unaffected.
func (h *AdminHandler) BlockSlot(c *gin.Context) {
	var req blockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	actorID := req.Actor
	if actorID == "" {
		actorID = "admin"
	}
	if err := h.Allocator.Block(c.Request.Context(), req.Date, req.Time, actorID, req.Reason); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to block slot", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": req.Date, "time": req.Time, "blocked": true})
}

// UnblockSlot reopens a previously blocked bucket.
func (h *AdminHandler) UnblockSlot(c *gin.Context) {
	var req blockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	if err := h.Allocator.Unblock(c.Request.Context(), req.Date, req.Time); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to unblock slot", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": req.Date, "time": req.Time, "blocked": false})
}

// GetAvailabilitySummary reports every slot of a day with utilization.
func (h *AdminHandler) GetAvailabilitySummary(c *gin.Context) {
	date := c.Param("date")
	summary, err := h.Allocator.AvailabilitySummary(c.Request.Context(), date)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to compute availability summary", err.Error())
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GetHealth returns the latest external-service health snapshot.
func (h *AdminHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, utils.GetHealthStatus())
}
