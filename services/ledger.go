// services/ledger.go
package services

import (
	"gorm.io/gorm"

	"invoicemate-backend/models"
	"invoicemate-backend/utils"
)

// RecomputeMilestoneAmounts rewrites every milestone amount under a project
// as claim_percent/100 * total. Amounts are a pure function of the stored
// claim percentages, so this must run whenever the project total changes,
// inside the same transaction as the total-price update.
func RecomputeMilestoneAmounts(db *gorm.DB, customerID, internalProjectID string, total float64) error {
	var milestones []models.Milestone
	err := db.Where("customer_id = ? AND internal_project_id = ?", customerID, internalProjectID).
		Find(&milestones).Error
	if err != nil {
		return utils.E("RecomputeMilestoneAmounts", utils.ErrStorage, err.Error())
	}

	for _, m := range milestones {
		amount := m.ClaimPercent / 100 * total
		err := db.Model(&models.Milestone{}).
			Where("milestone_id = ?", m.MilestoneID).
			Update("amount", amount).Error
		if err != nil {
			return utils.E("RecomputeMilestoneAmounts", utils.ErrStorage, err.Error())
		}
	}

	return nil
}
