package services

import (
	"errors"
	"testing"
	"time"

	"invoicemate-backend/models"
	"invoicemate-backend/utils"
)

func TestExportUnknownInvoiceType(t *testing.T) {
	db := newTestDB(t)
	exporter := NewInvoiceExporter(db, map[string]TemplateConfig{})

	_, err := exporter.Export("does-not-exist", []string{"P1_001"}, "")
	if !errors.Is(err, utils.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestExportNoMilestones(t *testing.T) {
	db := newTestDB(t)
	exporter := NewInvoiceExporter(db, map[string]TemplateConfig{
		"domestic": {FilePath: "template.xlsx"},
	})

	_, err := exporter.Export("domestic", []string{}, "")
	if !errors.Is(err, utils.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation for empty selection", err)
	}

	_, err = exporter.Export("domestic", []string{"P9_001"}, "")
	if !errors.Is(err, utils.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound for unknown milestone", err)
	}
}

func TestBuildCellValues(t *testing.T) {
	cells := TemplateCells{
		CompanyName:        "B2",
		Address1:           "B3",
		Address2:           "B4",
		GSTIN:              "B5",
		CIN:                "B6",
		PONo:               "B7",
		TotalPrice:         "F2",
		InvoiceNumber:      "F3",
		InvoiceDate:        "F4",
		DueDate:            "F5",
		MilestonesStartRow: 10,
	}

	customer := models.Customer{
		CustomerID:  "IEC_1",
		CompanyName: "Acme Industrial",
		Address1:    "12 Foundry Lane",
		GSTIN:       "27AAAAA0000A1Z5",
	}
	project := models.Project{
		CustomerID:        "IEC_1",
		InternalProjectID: "P1",
		ProjectName:       "Plant Upgrade",
		ProjectDate:       time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
		TotalPrices:       1000,
	}
	invoice := models.Invoice{
		InvoiceNumber: "2026-001",
		InvoiceDate:   time.Date(2026, 8, 21, 0, 0, 0, 0, time.UTC),
		DueDate:       time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
	}
	milestones := []models.Milestone{
		{MilestoneID: "P1_001", MilestoneName: "M1", ClaimPercent: 30},
		{MilestoneID: "P1_002", MilestoneName: "M2", ClaimPercent: 70},
	}

	values := buildCellValues(cells, customer, project, invoice, milestones)

	want := map[string]string{
		"B2":  "Acme Industrial",
		"B3":  "12 Foundry Lane",
		"B4":  "-",
		"B5":  "GST No.- 27AAAAA0000A1Z5",
		"B6":  "-",
		"B7":  "PO No. & Date: Plant Upgrade , 05-03-2026",
		"F2":  "1000.00",
		"F3":  "2026-001",
		"F4":  "21-08-2026",
		"F5":  "31-08-2026",
		"A10": "M1",
		"D10": "30%",
		"A11": "M2",
		"D11": "70%",
	}

	for cell, value := range want {
		if values[cell] != value {
			t.Fatalf("cell %s = %q, want %q", cell, values[cell], value)
		}
	}
	if len(values) != len(want) {
		t.Fatalf("cell count = %d, want %d", len(values), len(want))
	}
}

func TestLoadTemplateConfigsEmptyPath(t *testing.T) {
	configs, err := LoadTemplateConfigs("")
	if err != nil {
		t.Fatalf("LoadTemplateConfigs: %v", err)
	}
	if len(configs) != 0 {
		t.Fatalf("configs = %d entries, want 0", len(configs))
	}
}
