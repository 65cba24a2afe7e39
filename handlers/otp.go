package handlers

import (
	"net/http"

	"bloodlink/models"
	"bloodlink/services/auth"
	"bloodlink/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// OTPHandler exposes the OTP challenge endpoints.
type OTPHandler struct {
	Engine auth.ChallengeEngine
}

// NewOTPHandler creates an OTPHandler.
func NewOTPHandler(engine auth.ChallengeEngine) *OTPHandler {
	return &OTPHandler{Engine: engine}
}

// SendOTPHandler starts (or re-dispatches) a challenge for a
// (phone, email) pair.
func (h *OTPHandler) SendOTPHandler(c *gin.Context) {
	logger := getLogger(c)

	var req models.SendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	if err := h.Engine.Send(req.PhoneNumber, req.Email); err != nil {
		logger.Error("Failed to send OTP", zap.Error(err))
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "OTP sent"})
}

// VerifyOTPHandler runs one verify attempt. The outcome, including
// expired, locked and wrong-code branches, is a 200 with flags; only
// a missing challenge or an infrastructure failure is an error.
func (h *OTPHandler) VerifyOTPHandler(c *gin.Context) {
	var req models.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	resp, err := h.Engine.Verify(normalizePhone(req.PhoneNumber), req.Email, req.OTPCode)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// normalizePhone strips the two-digit country prefix a verify request
// may carry, so it keys the same challenge the send created.
func normalizePhone(phone string) string {
	if len(phone) == 12 {
		return phone[2:]
	}
	return phone
}
