package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"gorm.io/gorm"

	"invoicemate-backend/models"
	"invoicemate-backend/utils"
)

type fakeSender struct {
	payloads []NotificationPayload
	fail     bool
}

func (f *fakeSender) Send(payload NotificationPayload) error {
	f.payloads = append(f.payloads, payload)
	if f.fail {
		return errors.New("delivery failed")
	}
	return nil
}

func seedDueInvoice(t *testing.T, db *gorm.DB, milestoneID string, dueDate time.Time) models.Invoice {
	t.Helper()

	invoice := models.Invoice{
		InvoiceNumber:     "2026-001",
		CustomerID:        "IEC_1",
		InternalProjectID: "P1",
		MilestoneID:       milestoneID,
		InvoiceDate:       dueDate.AddDate(0, 0, -utils.DueDateOffsetDays),
		DueDate:           dueDate,
		TotalPrices:       300,
		Status:            models.InvoiceUnpaid,
		NotiSend:          models.NotificationPending,
	}
	if err := db.Create(&invoice).Error; err != nil {
		t.Fatalf("seed invoice: %v", err)
	}
	return invoice
}

func seedReferences(t *testing.T, db *gorm.DB) {
	t.Helper()

	customer := models.Customer{CustomerID: "IEC_1", CompanyName: "Acme Industrial"}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	project := models.Project{CustomerID: "IEC_1", InternalProjectID: "P1", ProjectName: "Plant Upgrade"}
	if err := db.Create(&project).Error; err != nil {
		t.Fatalf("seed project: %v", err)
	}
	milestone := models.Milestone{
		MilestoneID: "P1_001", CustomerID: "IEC_1", InternalProjectID: "P1",
		MilestoneName: "M1", ClaimPercent: 30, Amount: 300, Pending: models.MilestoneNotPending,
	}
	if err := db.Create(&milestone).Error; err != nil {
		t.Fatalf("seed milestone: %v", err)
	}
}

func TestCheckDueTodayNotifiesOnce(t *testing.T) {
	db := newTestDB(t)
	seedReferences(t, db)
	today := utils.BeginningOfDay(time.Now())
	invoice := seedDueInvoice(t, db, "P1_001", today)

	sender := &fakeSender{}
	notifier := NewDueDateNotifier(db, sender)

	if err := notifier.CheckDueToday(); err != nil {
		t.Fatalf("CheckDueToday: %v", err)
	}

	if len(sender.payloads) != 1 {
		t.Fatalf("payloads = %d, want 1", len(sender.payloads))
	}
	payload := sender.payloads[0]
	if payload.Title != "Invoice Due Today" {
		t.Fatalf("title = %q", payload.Title)
	}
	for _, part := range []string{"Acme Industrial", "Plant Upgrade", "M1"} {
		if !strings.Contains(payload.Body, part) {
			t.Fatalf("body %q missing %q", payload.Body, part)
		}
	}
	if payload.Tag != "invoice_due_Acme Industrial_Plant Upgrade" {
		t.Fatalf("tag = %q", payload.Tag)
	}

	var updated models.Invoice
	if err := db.First(&updated, "id = ?", invoice.ID).Error; err != nil {
		t.Fatalf("reload invoice: %v", err)
	}
	if updated.NotiSend != models.NotificationSent {
		t.Fatalf("noti_send = %q, want yes", updated.NotiSend)
	}

	var logCount int64
	db.Model(&models.NotificationLog{}).Where("status = ?", "sent").Count(&logCount)
	if logCount != 1 {
		t.Fatalf("notification logs = %d, want 1", logCount)
	}

	// Second run: nothing new is due, so nothing fires.
	if err := notifier.CheckDueToday(); err != nil {
		t.Fatalf("CheckDueToday (second run): %v", err)
	}
	if len(sender.payloads) != 1 {
		t.Fatalf("payloads after second run = %d, want 1", len(sender.payloads))
	}
}

func TestCheckDueTodaySkipsMissingReferences(t *testing.T) {
	db := newTestDB(t)
	seedReferences(t, db)
	today := utils.BeginningOfDay(time.Now())
	// References a milestone that does not exist.
	invoice := seedDueInvoice(t, db, "P1_999", today)

	sender := &fakeSender{}
	notifier := NewDueDateNotifier(db, sender)

	if err := notifier.CheckDueToday(); err != nil {
		t.Fatalf("CheckDueToday: %v", err)
	}

	if len(sender.payloads) != 0 {
		t.Fatalf("payloads = %d, want 0 for dangling reference", len(sender.payloads))
	}

	var updated models.Invoice
	if err := db.First(&updated, "id = ?", invoice.ID).Error; err != nil {
		t.Fatalf("reload invoice: %v", err)
	}
	if updated.NotiSend != models.NotificationPending {
		t.Fatalf("noti_send = %q, want no (skipped invoices keep state)", updated.NotiSend)
	}
}

func TestCheckDueTodayIgnoresNotDueInvoices(t *testing.T) {
	db := newTestDB(t)
	seedReferences(t, db)
	today := utils.BeginningOfDay(time.Now())
	seedDueInvoice(t, db, "P1_001", today.AddDate(0, 0, 3))

	sender := &fakeSender{}
	notifier := NewDueDateNotifier(db, sender)

	if err := notifier.CheckDueToday(); err != nil {
		t.Fatalf("CheckDueToday: %v", err)
	}
	if len(sender.payloads) != 0 {
		t.Fatalf("payloads = %d, want 0 for future due date", len(sender.payloads))
	}
}

func TestCheckDueTodayMarksEvenWhenSendFails(t *testing.T) {
	db := newTestDB(t)
	seedReferences(t, db)
	today := utils.BeginningOfDay(time.Now())
	invoice := seedDueInvoice(t, db, "P1_001", today)

	sender := &fakeSender{fail: true}
	notifier := NewDueDateNotifier(db, sender)

	if err := notifier.CheckDueToday(); err != nil {
		t.Fatalf("CheckDueToday: %v", err)
	}

	// Fire-and-forget delivery: a failed send still counts as emitted, the
	// failure is recorded in the log.
	var updated models.Invoice
	if err := db.First(&updated, "id = ?", invoice.ID).Error; err != nil {
		t.Fatalf("reload invoice: %v", err)
	}
	if updated.NotiSend != models.NotificationSent {
		t.Fatalf("noti_send = %q, want yes", updated.NotiSend)
	}

	var logEntry models.NotificationLog
	if err := db.First(&logEntry, "invoice_id = ?", invoice.ID).Error; err != nil {
		t.Fatalf("load notification log: %v", err)
	}
	if logEntry.Status != "failed" {
		t.Fatalf("log status = %q, want failed", logEntry.Status)
	}
	if logEntry.ErrorMessage == "" {
		t.Fatal("log error message empty")
	}
}
