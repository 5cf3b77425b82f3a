// services/notifier.go
package services

import (
	"fmt"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"

	"invoicemate-backend/models"
	"invoicemate-backend/utils"
)

// NotificationPayload is what gets handed to the sender. Tag lets the
// receiving side dedup notifications for the same customer/project.
type NotificationPayload struct {
	Title string
	Body  string
	Tag   string
}

// Sender delivers a notification. Fire-and-forget: there is no delivery
// confirmation beyond the returned error.
type Sender interface {
	Send(payload NotificationPayload) error
}

// TwilioSender delivers notifications as messages to the configured owner
// phone number.
type TwilioSender struct {
	client *twilio.RestClient
	from   string
	to     string
}

func NewTwilioSender() *TwilioSender {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &TwilioSender{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
		from: os.Getenv("TWILIO_PHONE_NUMBER"),
		to:   os.Getenv("NOTIFY_PHONE"),
	}
}

func (s *TwilioSender) Send(payload NotificationPayload) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(s.to)
	params.SetFrom(s.from)
	params.SetBody(payload.Title + "\n" + payload.Body)

	_, err := s.client.Api.CreateMessage(params)
	return err
}

// DueDateNotifier scans for invoices due today and emits one notification per
// qualifying invoice.
type DueDateNotifier struct {
	db     *gorm.DB
	sender Sender
}

func NewDueDateNotifier(db *gorm.DB, sender Sender) *DueDateNotifier {
	return &DueDateNotifier{db: db, sender: sender}
}

// StartScheduler runs the due-date check every day at 9 AM.
func (n *DueDateNotifier) StartScheduler() *cron.Cron {
	c := cron.New()

	c.AddFunc("0 9 * * *", func() {
		if err := n.CheckDueToday(); err != nil {
			log.Error().Err(err).Msg("due-date check failed")
		}
	})

	c.Start()
	log.Info().Msg("due-date scheduler started")
	return c
}

// CheckDueToday notifies for every invoice with due_date == today that has
// not been notified yet, then marks it noti_send = yes. Safe to call
// repeatedly: once marked, an invoice is never re-notified.
//
// The notification is emitted before the mark is committed, so a crash
// between the two can replay a notification on the next run. Delivery is
// at-least-once, by design; do not reorder.
func (n *DueDateNotifier) CheckDueToday() error {
	today := utils.BeginningOfDay(time.Now())
	tomorrow := today.AddDate(0, 0, 1)

	var invoices []models.Invoice
	err := n.db.
		Where("due_date >= ? AND due_date < ? AND noti_send = ?", today, tomorrow, models.NotificationPending).
		Find(&invoices).Error
	if err != nil {
		return utils.E("CheckDueToday", utils.ErrStorage, err.Error())
	}

	for _, invoice := range invoices {
		var customer models.Customer
		if err := n.db.First(&customer, "customer_id = ?", invoice.CustomerID).Error; err != nil {
			log.Warn().Str("invoice", invoice.InvoiceNumber).Str("customer", invoice.CustomerID).
				Msg("skipping due invoice: customer missing")
			continue
		}

		var project models.Project
		err := n.db.First(&project, "customer_id = ? AND internal_project_id = ?",
			invoice.CustomerID, invoice.InternalProjectID).Error
		if err != nil {
			log.Warn().Str("invoice", invoice.InvoiceNumber).Str("project", invoice.InternalProjectID).
				Msg("skipping due invoice: project missing")
			continue
		}

		var milestone models.Milestone
		if err := n.db.First(&milestone, "milestone_id = ?", invoice.MilestoneID).Error; err != nil {
			log.Warn().Str("invoice", invoice.InvoiceNumber).Str("milestone", invoice.MilestoneID).
				Msg("skipping due invoice: milestone missing")
			continue
		}

		payload := NotificationPayload{
			Title: "Invoice Due Today",
			Body: fmt.Sprintf("Invoice Pending From Customer %s (%s) For Milestone %s",
				customer.CompanyName, project.ProjectName, milestone.MilestoneName),
			Tag: fmt.Sprintf("invoice_due_%s_%s", customer.CompanyName, project.ProjectName),
		}

		status := "sent"
		errorMsg := ""
		if err := n.sender.Send(payload); err != nil {
			log.Error().Err(err).Str("invoice", invoice.InvoiceNumber).Msg("failed to send notification")
			status = "failed"
			errorMsg = err.Error()
		}

		notificationLog := models.NotificationLog{
			InvoiceID:     invoice.ID,
			InvoiceNumber: invoice.InvoiceNumber,
			MilestoneID:   invoice.MilestoneID,
			Title:         payload.Title,
			Body:          payload.Body,
			Tag:           payload.Tag,
			Status:        status,
			ErrorMessage:  errorMsg,
			SentAt:        time.Now(),
		}
		if err := n.db.Create(&notificationLog).Error; err != nil {
			log.Error().Err(err).Str("invoice", invoice.InvoiceNumber).Msg("failed to log notification")
		}

		err = n.db.Model(&models.Invoice{}).
			Where("id = ?", invoice.ID).
			Update("noti_send", models.NotificationSent).Error
		if err != nil {
			log.Error().Err(err).Str("invoice", invoice.InvoiceNumber).Msg("failed to mark invoice notified")
		}
	}

	return nil
}
