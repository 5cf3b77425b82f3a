package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	InvoiceUnpaid = "unpaid"
	InvoicePaid   = "paid"

	NotificationPending = "no"
	NotificationSent    = "yes"
)

// Invoice numbers are "<year>-<seq>" with a 3-digit sequence that resets each
// calendar year. A batch of milestones invoiced together produces one row per
// milestone, all sharing the same invoice number.
type Invoice struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceNumber     string    `gorm:"index;not null" json:"invoice_number"`
	CustomerID        string    `gorm:"index;not null" json:"customer_id"`
	InternalProjectID string    `gorm:"index;not null" json:"internal_project_id"`
	MilestoneID       string    `gorm:"index;not null" json:"milestone_id"`
	CompanyName       string    `json:"company_name"`
	ProjectName       string    `json:"project_name"`
	MilestoneName     string    `json:"milestone_name"`
	InvoiceDate       time.Time `json:"invoice_date"`
	DueDate           time.Time `json:"due_date"`
	TotalPrices       float64   `gorm:"type:decimal(12,2)" json:"total_prices"`
	Status            string    `gorm:"default:'unpaid'" json:"status"`
	NotiSend          string    `gorm:"default:'no'" json:"noti_send"`
}

func (i *Invoice) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return
}
