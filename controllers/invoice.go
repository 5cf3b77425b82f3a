// controllers/invoice.go
package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"invoicemate-backend/models"
	"invoicemate-backend/services"
	"invoicemate-backend/utils"
)

type InvoiceController struct {
	DB       *gorm.DB
	Exporter *services.InvoiceExporter
}

// InvoiceMilestoneInput selects one milestone for invoicing, with an optional
// invoice-date override.
type InvoiceMilestoneInput struct {
	MilestoneID string     `json:"milestone_id" binding:"required"`
	CustomDate  *time.Time `json:"custom_date"`
}

// CreateInvoicesInput defines the expected JSON structure for batch invoice creation
type CreateInvoicesInput struct {
	Milestones []InvoiceMilestoneInput `json:"milestones" binding:"required,min=1"`
}

// ExportInvoiceInput selects the template and milestones for a spreadsheet export
type ExportInvoiceInput struct {
	InvoiceType  string   `json:"invoiceType" binding:"required"`
	MilestoneIDs []string `json:"milestoneIds" binding:"required,min=1"`
	OutputPath   string   `json:"outputPath"`
}

// CreateInvoices creates one invoice row per selected milestone, all sharing
// a single invoice number, and flips each source milestone to not-pending.
//
// Failures are isolated per milestone: a bad item is logged and skipped while
// the rest of the batch proceeds. This is deliberately weaker than the
// all-or-nothing transaction used for project creation; do not unify the two.
func (ctl *InvoiceController) CreateInvoices(c *gin.Context) {
	var input CreateInvoicesInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	invoiceNumber, err := services.NextInvoiceNumber(ctl.DB, time.Now().Year())
	if err != nil {
		utils.RespondWithError(c, utils.StatusFromError(err), "Failed to generate invoice number")
		return
	}

	// Default invoice date when no override is supplied: today plus the
	// payment term. Kept from the original billing workflow.
	defaultDate := utils.DueDate(time.Now())

	created := make([]string, 0, len(input.Milestones))
	failed := make([]string, 0)

	for _, item := range input.Milestones {
		var milestone models.Milestone
		if err := ctl.DB.First(&milestone, "milestone_id = ?", item.MilestoneID).Error; err != nil {
			log.Error().Err(err).Str("milestone", item.MilestoneID).Msg("skipping invoice item: milestone lookup failed")
			failed = append(failed, item.MilestoneID)
			continue
		}

		var customer models.Customer
		if err := ctl.DB.First(&customer, "customer_id = ?", milestone.CustomerID).Error; err != nil {
			log.Error().Err(err).Str("milestone", item.MilestoneID).Msg("skipping invoice item: customer lookup failed")
			failed = append(failed, item.MilestoneID)
			continue
		}

		var project models.Project
		err := ctl.DB.First(&project, "customer_id = ? AND internal_project_id = ?",
			milestone.CustomerID, milestone.InternalProjectID).Error
		if err != nil {
			log.Error().Err(err).Str("milestone", item.MilestoneID).Msg("skipping invoice item: project lookup failed")
			failed = append(failed, item.MilestoneID)
			continue
		}

		invoiceDate := defaultDate
		if item.CustomDate != nil {
			invoiceDate = utils.BeginningOfDay(*item.CustomDate)
		}

		invoice := models.Invoice{
			InvoiceNumber:     invoiceNumber,
			CustomerID:        milestone.CustomerID,
			InternalProjectID: milestone.InternalProjectID,
			MilestoneID:       milestone.MilestoneID,
			CompanyName:       customer.CompanyName,
			ProjectName:       project.ProjectName,
			MilestoneName:     milestone.MilestoneName,
			InvoiceDate:       invoiceDate,
			DueDate:           utils.DueDate(invoiceDate),
			TotalPrices:       milestone.Amount,
			Status:            models.InvoiceUnpaid,
			NotiSend:          models.NotificationPending,
		}

		if err := ctl.DB.Create(&invoice).Error; err != nil {
			log.Error().Err(err).Str("milestone", item.MilestoneID).Msg("failed to create invoice row")
			failed = append(failed, item.MilestoneID)
			continue
		}

		err = ctl.DB.Model(&models.Milestone{}).
			Where("milestone_id = ?", milestone.MilestoneID).
			Update("pending", models.MilestoneNotPending).Error
		if err != nil {
			log.Error().Err(err).Str("milestone", item.MilestoneID).Msg("failed to mark milestone invoiced")
		}

		created = append(created, milestone.MilestoneID)
	}

	c.JSON(http.StatusCreated, gin.H{
		"invoice_number": invoiceNumber,
		"created":        created,
		"failed":         failed,
	})
}

// PayInvoice marks the invoice rows for a milestone as paid. Repeating the
// call is a no-op: paid rows stay paid.
func (ctl *InvoiceController) PayInvoice(c *gin.Context) {
	milestoneID := c.Param("milestoneId")

	err := ctl.DB.Model(&models.Invoice{}).
		Where("milestone_id = ?", milestoneID).
		Update("status", models.InvoicePaid).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update invoice status")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Invoice marked as paid"})
}

// ExportInvoice renders an invoice spreadsheet from the configured template
func (ctl *InvoiceController) ExportInvoice(c *gin.Context) {
	var input ExportInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	path, err := ctl.Exporter.Export(input.InvoiceType, input.MilestoneIDs, input.OutputPath)
	if err != nil {
		utils.RespondWithError(c, utils.StatusFromError(err), err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"path": path})
}
