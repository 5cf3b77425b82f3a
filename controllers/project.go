// controllers/project.go
package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"invoicemate-backend/models"
	"invoicemate-backend/services"
	"invoicemate-backend/utils"
)

type ProjectController struct {
	DB *gorm.DB
}

// MilestoneInput defines one milestone row in a project creation request.
// Amounts are taken as supplied by the caller, not derived here.
type MilestoneInput struct {
	Milestone       string  `json:"milestone" binding:"required"`
	ClaimPercentage float64 `json:"claimPercentage"`
	Amount          float64 `json:"amount"`
}

// CreateProjectInput defines the expected JSON structure for creating a project
type CreateProjectInput struct {
	CustomerName  string           `json:"customerName" binding:"required"`
	ProjectNumber string           `json:"projectNumber" binding:"required"`
	ProjectName   string           `json:"projectName" binding:"required"`
	ProjectDate   time.Time        `json:"projectDate"`
	PONo          string           `json:"poNo"`
	TotalPrice    float64          `json:"totalPrice"`
	TaxType       string           `json:"taxType"`
	Milestones    []MilestoneInput `json:"milestones" binding:"required,min=1"`
}

// UpdateProjectInput carries the project fields whose change cascades into
// milestone amounts.
type UpdateProjectInput struct {
	CustomerID        string    `json:"customer_id" binding:"required"`
	InternalProjectID string    `json:"project_id" binding:"required"`
	ProjectName       string    `json:"project_name" binding:"required"`
	ProjectDate       time.Time `json:"project_date"`
	PONo              string    `json:"pono"`
	TotalPrices       float64   `json:"total_prices"`
}

// CreateProject inserts the project row and one milestone row per input as a
// single atomic unit: on any failure no project or milestone row persists.
func (ctl *ProjectController) CreateProject(c *gin.Context) {
	var input CreateProjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	for _, m := range input.Milestones {
		if !utils.ValidClaimPercent(m.ClaimPercentage) {
			utils.RespondWithError(c, http.StatusBadRequest, "Claim percentage must be between 0 and 100")
			return
		}
	}

	// Resolve customer_id from the company name
	var customer models.Customer
	if err := ctl.DB.Where("company_name = ?", input.CustomerName).First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	// Start transaction
	tx := ctl.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	project := models.Project{
		CustomerID:        customer.CustomerID,
		InternalProjectID: input.ProjectNumber,
		ProjectName:       input.ProjectName,
		ProjectDate:       input.ProjectDate,
		PONo:              input.PONo,
		TotalPrices:       input.TotalPrice,
		Taxes:             input.TaxType,
	}

	if err := tx.Create(&project).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create project")
		return
	}

	for i, m := range input.Milestones {
		milestone := models.Milestone{
			MilestoneID:       fmt.Sprintf("%s_%03d", input.ProjectNumber, i+1),
			CustomerID:        customer.CustomerID,
			InternalProjectID: input.ProjectNumber,
			MilestoneName:     m.Milestone,
			ClaimPercent:      m.ClaimPercentage,
			Amount:            m.Amount,
			Pending:           models.MilestonePending,
		}

		if err := tx.Create(&milestone).Error; err != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create milestone")
			return
		}
	}

	tx.Commit()

	c.JSON(http.StatusCreated, gin.H{
		"message":           "Project created successfully",
		"internalProjectId": input.ProjectNumber,
	})
}

// UpdateProject updates the project row and recomputes every child milestone
// amount from its claim percentage, in one transaction. No partial updates.
func (ctl *ProjectController) UpdateProject(c *gin.Context) {
	var input UpdateProjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	// Start transaction
	tx := ctl.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	result := tx.Model(&models.Project{}).
		Where("customer_id = ? AND internal_project_id = ?", input.CustomerID, input.InternalProjectID).
		Updates(map[string]interface{}{
			"project_name": input.ProjectName,
			"project_date": input.ProjectDate,
			"pono":         input.PONo,
			"total_prices": input.TotalPrices,
		})
	if result.Error != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update project")
		return
	}
	if result.RowsAffected == 0 {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusNotFound, "Project not found")
		return
	}

	if err := services.RecomputeMilestoneAmounts(tx, input.CustomerID, input.InternalProjectID, input.TotalPrices); err != nil {
		tx.Rollback()
		utils.RespondWithError(c, utils.StatusFromError(err), "Failed to recompute milestone amounts")
		return
	}

	tx.Commit()

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetProjects retrieves projects, optionally filtered by company name
func (ctl *ProjectController) GetProjects(c *gin.Context) {
	var projects []models.Project

	query := ctl.DB
	if company := c.Query("company"); company != "" {
		query = query.
			Joins("INNER JOIN customers ON projects.customer_id = customers.customer_id").
			Where("customers.company_name = ?", company)
	}

	if err := query.Find(&projects).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve projects")
		return
	}

	c.JSON(http.StatusOK, projects)
}

// GetMilestones retrieves the milestones for a project. When the customer
// query parameter is present the customer record is returned alongside, for
// views that need billing details.
func (ctl *ProjectController) GetMilestones(c *gin.Context) {
	projectID := c.Param("projectId")

	query := ctl.DB.Where("internal_project_id = ?", projectID)
	customerID := c.Query("customer")
	if customerID != "" {
		query = query.Where("customer_id = ?", customerID)
	}

	var milestones []models.Milestone
	if err := query.Find(&milestones).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve milestones")
		return
	}

	if customerID == "" {
		c.JSON(http.StatusOK, gin.H{"milestones": milestones})
		return
	}

	var customer models.Customer
	if err := ctl.DB.First(&customer, "customer_id = ?", customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"milestones": milestones, "customer": customer})
}
