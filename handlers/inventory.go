package handlers

import (
	"net/http"
	"time"

	invRepo "bloodlink/database/repository/inventory"
	"bloodlink/models"
	"bloodlink/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// InventoryHandler exposes the thin inventory CRUD wrapper.
type InventoryHandler struct {
	Repo invRepo.InventoryRepository
}

// NewInventoryHandler creates an InventoryHandler.
func NewInventoryHandler(repo invRepo.InventoryRepository) *InventoryHandler {
	return &InventoryHandler{Repo: repo}
}

// UpsertInventoryHandler writes the stock level for one blood type at
// the authenticated facility.
func (h *InventoryHandler) UpsertInventoryHandler(c *gin.Context) {
	logger := getLogger(c)

	var req struct {
		BloodType string `json:"bloodType" binding:"required"`
		Units     int    `json:"units" binding:"min=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	unit := &models.InventoryUnit{
		ID:         uuid.New().String(),
		FacilityID: c.GetString("principalID"),
		BloodType:  req.BloodType,
		Units:      req.Units,
		UpdatedAt:  time.Now(),
	}
	if err := h.Repo.Upsert(unit); err != nil {
		logger.Error("Failed to upsert inventory", zap.Error(err))
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, unit)
}

// ListInventoryHandler lists the authenticated facility's stock.
func (h *InventoryHandler) ListInventoryHandler(c *gin.Context) {
	units, err := h.Repo.GetByFacility(c.GetString("principalID"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"inventory": units})
}
