package models

import "time"

// Project is keyed by customer plus a caller-supplied internal project id.
// Changing TotalPrices cascades into every child milestone amount; see
// services.RecomputeMilestoneAmounts.
type Project struct {
	CustomerID        string    `gorm:"primaryKey" json:"customer_id"`
	InternalProjectID string    `gorm:"primaryKey" json:"internal_project_id"`
	ProjectName       string    `gorm:"not null" json:"project_name"`
	ProjectDate       time.Time `json:"project_date"`
	PONo              string    `gorm:"column:pono" json:"pono"`
	TotalPrices       float64   `gorm:"type:decimal(12,2)" json:"total_prices"`
	Taxes             string    `json:"taxes"`

	Milestones []Milestone `gorm:"foreignKey:CustomerID,InternalProjectID;references:CustomerID,InternalProjectID" json:"milestones,omitempty"`
}
