// services/exporter.go
package services

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"invoicemate-backend/models"
	"invoicemate-backend/utils"
)

// TemplateCells maps invoice fields to spreadsheet cell references. An empty
// reference means the template has no slot for that field.
type TemplateCells struct {
	CompanyName        string `json:"companyName"`
	Address1           string `json:"address1"`
	Address2           string `json:"address2"`
	Address3           string `json:"address3"`
	GSTIN              string `json:"gstin"`
	CIN                string `json:"cin"`
	PONo               string `json:"pono"`
	TotalPrice         string `json:"totalPrice"`
	InvoiceNumber      string `json:"invoiceNumber"`
	InvoiceDate        string `json:"invoiceDate"`
	DueDate            string `json:"dueDate"`
	MilestonesStartRow int    `json:"milestonesStartRow"`
}

// TemplateConfig describes one invoice template, keyed by invoice type in the
// config file. The cell placement is data, not logic: adding a template means
// adding a config entry, not code.
type TemplateConfig struct {
	FilePath string        `json:"filePath"`
	Sheet    string        `json:"sheet"`
	Cells    TemplateCells `json:"cells"`
}

// LoadTemplateConfigs reads the template config file. A missing path yields
// an empty map, which makes every export fail validation until configured.
func LoadTemplateConfigs(path string) (map[string]TemplateConfig, error) {
	if path == "" {
		return map[string]TemplateConfig{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, utils.E("LoadTemplateConfigs", utils.ErrStorage, err.Error())
	}

	var configs map[string]TemplateConfig
	if err := json.Unmarshal(data, &configs); err != nil {
		return nil, utils.E("LoadTemplateConfigs", utils.ErrValidation, err.Error())
	}

	return configs, nil
}

// InvoiceExporter fills spreadsheet templates with invoice data.
type InvoiceExporter struct {
	db      *gorm.DB
	configs map[string]TemplateConfig
}

func NewInvoiceExporter(db *gorm.DB, configs map[string]TemplateConfig) *InvoiceExporter {
	return &InvoiceExporter{db: db, configs: configs}
}

// Export renders the invoice for the given milestones into outPath using the
// template registered for invoiceType, and returns the written path. The
// first milestone determines the customer/project the header is built from.
func (e *InvoiceExporter) Export(invoiceType string, milestoneIDs []string, outPath string) (string, error) {
	config, ok := e.configs[invoiceType]
	if !ok {
		return "", utils.E("Export", utils.ErrValidation, "unknown invoice type "+invoiceType)
	}

	if len(milestoneIDs) == 0 {
		return "", utils.E("Export", utils.ErrValidation, "no milestones selected")
	}

	var milestones []models.Milestone
	err := e.db.Where("milestone_id IN ?", milestoneIDs).Find(&milestones).Error
	if err != nil {
		return "", utils.E("Export", utils.ErrStorage, err.Error())
	}
	if len(milestones) == 0 {
		return "", utils.E("Export", utils.ErrNotFound, "no matching milestones")
	}

	first := milestones[0]

	var customer models.Customer
	if err := e.db.First(&customer, "customer_id = ?", first.CustomerID).Error; err != nil {
		return "", utils.E("Export", utils.ErrNotFound, "customer "+first.CustomerID)
	}

	var project models.Project
	err = e.db.First(&project, "customer_id = ? AND internal_project_id = ?",
		first.CustomerID, first.InternalProjectID).Error
	if err != nil {
		return "", utils.E("Export", utils.ErrNotFound, "project "+first.InternalProjectID)
	}

	var invoice models.Invoice
	err = e.db.Where("customer_id = ? AND internal_project_id = ?", first.CustomerID, first.InternalProjectID).
		Order("invoice_date DESC").
		First(&invoice).Error
	if err != nil {
		return "", utils.E("Export", utils.ErrNotFound, "no invoice for project "+first.InternalProjectID)
	}

	values := buildCellValues(config.Cells, customer, project, invoice, milestones)

	f, err := excelize.OpenFile(config.FilePath)
	if err != nil {
		return "", utils.E("Export", utils.ErrStorage, err.Error())
	}
	defer f.Close()

	sheet := config.Sheet
	if sheet == "" {
		sheet = "Invoice"
	}

	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Family: "Trebuchet MS", Size: 10},
	})
	if err != nil {
		return "", utils.E("Export", utils.ErrStorage, err.Error())
	}

	for cell, value := range values {
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return "", utils.E("Export", utils.ErrStorage, err.Error())
		}
		if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return "", utils.E("Export", utils.ErrStorage, err.Error())
		}
	}

	if outPath == "" {
		outPath = fmt.Sprintf("IEC_Invoice_%s_%s_%s.xlsx",
			invoice.InvoiceNumber, customer.CompanyName, project.PONo)
	}

	if err := f.SaveAs(outPath); err != nil {
		return "", utils.E("Export", utils.ErrStorage, err.Error())
	}

	return outPath, nil
}

// buildCellValues computes the cell map for one export. Empty fields render
// as "-" so template cells never stay blank.
func buildCellValues(cells TemplateCells, customer models.Customer, project models.Project,
	invoice models.Invoice, milestones []models.Milestone) map[string]string {

	values := make(map[string]string)

	set := func(cell, value string) {
		if cell == "" {
			return
		}
		if value == "" {
			value = "-"
		}
		values[cell] = value
	}

	set(cells.CompanyName, customer.CompanyName)
	set(cells.Address1, customer.Address1)
	set(cells.Address2, customer.Address2)
	set(cells.Address3, customer.Address3)

	if customer.GSTIN != "" {
		set(cells.GSTIN, "GST No.- "+customer.GSTIN)
	} else {
		set(cells.GSTIN, "-")
	}
	if customer.CIN != "" {
		set(cells.CIN, "CIN No.- "+customer.CIN)
	} else {
		set(cells.CIN, "-")
	}

	set(cells.PONo, fmt.Sprintf("PO No. & Date: %s , %s", orDash(project.ProjectName), utils.FormatDMY(project.ProjectDate)))

	if project.TotalPrices != 0 {
		set(cells.TotalPrice, strconv.FormatFloat(project.TotalPrices, 'f', 2, 64))
	} else {
		set(cells.TotalPrice, "-")
	}

	set(cells.InvoiceNumber, invoice.InvoiceNumber)
	set(cells.InvoiceDate, utils.FormatDMY(invoice.InvoiceDate))
	set(cells.DueDate, utils.FormatDMY(invoice.DueDate))

	if cells.MilestonesStartRow > 0 {
		row := cells.MilestonesStartRow
		for _, m := range milestones {
			set(fmt.Sprintf("A%d", row), m.MilestoneName)
			if m.ClaimPercent != 0 {
				set(fmt.Sprintf("D%d", row), strconv.FormatFloat(m.ClaimPercent, 'f', -1, 64)+"%")
			} else {
				set(fmt.Sprintf("D%d", row), "-")
			}
			row++
		}
	}

	return values
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
