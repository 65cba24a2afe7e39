package handlers

import (
	"net/http"
	"time"

	apptRepo "bloodlink/database/repository/appointment"
	"bloodlink/models"
	"bloodlink/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AppointmentHandler exposes the thin appointment CRUD wrapper.
type AppointmentHandler struct {
	Repo apptRepo.AppointmentRepository
}

// NewAppointmentHandler creates an AppointmentHandler.
func NewAppointmentHandler(repo apptRepo.AppointmentRepository) *AppointmentHandler {
	return &AppointmentHandler{Repo: repo}
}

// CreateAppointmentHandler books a donation visit for the authenticated donor.
func (h *AppointmentHandler) CreateAppointmentHandler(c *gin.Context) {
	logger := getLogger(c)

	var req struct {
		FacilityID  string    `json:"facilityId" binding:"required"`
		ScheduledAt time.Time `json:"scheduledAt" binding:"required"`
		Notes       string    `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	now := time.Now()
	appt := &models.Appointment{
		ID:          uuid.New().String(),
		DonorID:     c.GetString("principalID"),
		FacilityID:  req.FacilityID,
		ScheduledAt: req.ScheduledAt,
		Status:      "scheduled",
		Notes:       req.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := h.Repo.Create(appt); err != nil {
		logger.Error("Failed to create appointment", zap.Error(err))
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, appt)
}

// ListAppointmentsHandler lists the authenticated donor's appointments.
func (h *AppointmentHandler) ListAppointmentsHandler(c *gin.Context) {
	appts, err := h.Repo.GetByDonor(c.GetString("principalID"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appts})
}
