// File: handlers/dialogue.go
package handlers

import (
	"net/http"

	"tablewala/models"
	"tablewala/services/dialogue"
	"tablewala/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DialogueHandler exposes the message-turn contract over HTTP.
type DialogueHandler struct {
	Svc dialogue.Service
}

// NewDialogueHandler constructs a DialogueHandler.
func NewDialogueHandler(svc dialogue.Service) *DialogueHandler {
	return &DialogueHandler{Svc: svc}
}

// HandleTurn processes one dialogue turn.
func (h *DialogueHandler) HandleTurn(c *gin.Context) {
	var req models.TurnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	resp, err := h.Svc.ProcessTurn(c.Request.Context(), req)
	if err != nil {
		getLogger(c).Error("dialogue turn failed",
			zap.String("sessionId", req.SessionID),
			zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to process message", "Please try again later")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// AbandonSession drops an in-progress conversation.
func (h *DialogueHandler) AbandonSession(c *gin.Context) {
	sessionID := c.Param("sessionID")
	if sessionID == "" {
		utils.JSONError(c, http.StatusBadRequest, "missing session id", "")
		return
	}
	if err := h.Svc.Abandon(c.Request.Context(), sessionID); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to abandon session", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessionId": sessionID, "abandoned": true})
}
