package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"invoicemate-backend/models"
	"invoicemate-backend/utils"
)

type DataController struct {
	DB *gorm.DB
}

// GetAllData returns every customer, project, milestone and invoice in one
// response. The overview screens render from this dump.
func (ctl *DataController) GetAllData(c *gin.Context) {
	var customers []models.Customer
	if err := ctl.DB.Find(&customers).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve customers")
		return
	}

	var projects []models.Project
	if err := ctl.DB.Find(&projects).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve projects")
		return
	}

	var milestones []models.Milestone
	if err := ctl.DB.Find(&milestones).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve milestones")
		return
	}

	var invoices []models.Invoice
	if err := ctl.DB.Find(&invoices).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve invoices")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"customers":  customers,
		"projects":   projects,
		"milestones": milestones,
		"invoices":   invoices,
	})
}
