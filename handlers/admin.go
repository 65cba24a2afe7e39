package handlers

import (
	"net/http"

	credRepo "bloodlink/database/repository/credential"
	"bloodlink/utils"

	"github.com/gin-gonic/gin"
)

// AdminHandler exposes admin-only endpoints.
type AdminHandler struct {
	Donors credRepo.DonorRepository
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(donors credRepo.DonorRepository) *AdminHandler {
	return &AdminHandler{Donors: donors}
}

// ListDonorsHandler returns every registered donor.
func (h *AdminHandler) ListDonorsHandler(c *gin.Context) {
	donors, err := h.Donors.GetAll()
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"donors": donors})
}
