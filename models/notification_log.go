// models/notification_log.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationLog struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key"`
	InvoiceID     uuid.UUID `gorm:"type:uuid;index"`
	InvoiceNumber string    `gorm:"index"`
	MilestoneID   string    `gorm:"index"`
	Title         string
	Body          string `gorm:"type:text"`
	Tag           string
	Status        string `gorm:"type:varchar(20)"` // sent, failed
	ErrorMessage  string `gorm:"type:text"`
	SentAt        time.Time
	gorm.Model
}

func (n *NotificationLog) BeforeCreate(tx *gorm.DB) (err error) {
	n.ID = uuid.New()
	return
}
