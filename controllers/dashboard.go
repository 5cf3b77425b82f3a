package controllers

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"invoicemate-backend/models"
)

type DashboardController struct {
	DB *gorm.DB
}

// SummaryData aggregates collection status across all projects. TotalAmount
// is nil when no projects exist; collected and pending coerce to 0.
type SummaryData struct {
	TotalAmount     *float64 `json:"totalAmount"`
	AmountCollected float64  `json:"amountCollected"`
	AmountPending   float64  `json:"amountPending"`
}

// InvoicePoint is one entry of the invoice time series.
type InvoicePoint struct {
	InvoiceDate time.Time `json:"invoice_date"`
	TotalPrices float64   `json:"total_prices"`
}

// StatusCount is one slice of the invoice status breakdown.
type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// GetSummary returns total project value, amount collected and amount
// pending. On storage failure it degrades to zeros so the dashboard stays up.
func (ctl *DashboardController) GetSummary(c *gin.Context) {
	summary := SummaryData{}

	var total sql.NullFloat64
	row := ctl.DB.Model(&models.Project{}).Select("SUM(total_prices)").Row()
	if err := row.Scan(&total); err != nil {
		log.Error().Err(err).Msg("failed to fetch summary data")
		c.JSON(http.StatusOK, summary)
		return
	}
	if total.Valid {
		summary.TotalAmount = &total.Float64
	}

	err := ctl.DB.Model(&models.Invoice{}).
		Where("status = ?", models.InvoicePaid).
		Select("COALESCE(SUM(total_prices), 0)").
		Scan(&summary.AmountCollected).Error
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch summary data")
		c.JSON(http.StatusOK, SummaryData{})
		return
	}

	err = ctl.DB.Model(&models.Invoice{}).
		Where("status = ?", models.InvoiceUnpaid).
		Select("COALESCE(SUM(total_prices), 0)").
		Scan(&summary.AmountPending).Error
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch summary data")
		c.JSON(http.StatusOK, SummaryData{})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetInvoiceTimeSeries returns invoice totals ordered by date. Errors degrade
// to an empty series rather than failing the dashboard.
func (ctl *DashboardController) GetInvoiceTimeSeries(c *gin.Context) {
	points := make([]InvoicePoint, 0)

	err := ctl.DB.Model(&models.Invoice{}).
		Select("invoice_date, total_prices").
		Order("invoice_date").
		Scan(&points).Error
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch invoice time series")
		c.JSON(http.StatusOK, []InvoicePoint{})
		return
	}

	c.JSON(http.StatusOK, points)
}

// GetInvoiceStatusBreakdown returns invoice counts grouped by payment
// status. Same degrade-to-empty policy as the time series.
func (ctl *DashboardController) GetInvoiceStatusBreakdown(c *gin.Context) {
	counts := make([]StatusCount, 0)

	err := ctl.DB.Model(&models.Invoice{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&counts).Error
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch invoice status breakdown")
		c.JSON(http.StatusOK, []StatusCount{})
		return
	}

	c.JSON(http.StatusOK, counts)
}
