package models

const (
	MilestonePending    = "yes"
	MilestoneNotPending = "no"
)

// Milestone ids are "<internal_project_id>_<seq>" with a 3-digit sequence.
// Pending means the milestone has not been invoiced yet; it flips to "no"
// exactly once, at invoice creation, and never reverts.
type Milestone struct {
	MilestoneID       string  `gorm:"primaryKey" json:"milestone_id"`
	CustomerID        string  `gorm:"index;not null" json:"customer_id"`
	InternalProjectID string  `gorm:"index;not null" json:"internal_project_id"`
	MilestoneName     string  `gorm:"not null" json:"milestone_name"`
	ClaimPercent      float64 `json:"claim_percent"`
	Amount            float64 `gorm:"type:decimal(12,2)" json:"amount"`
	Pending           string  `gorm:"default:'yes'" json:"pending"`
}
