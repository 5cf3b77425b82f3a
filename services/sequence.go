// services/sequence.go
package services

import (
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"invoicemate-backend/models"
	"invoicemate-backend/utils"
)

// CustomerIDPrefix is shared by every generated customer id.
const CustomerIDPrefix = "IEC_"

// NextCustomerID scans existing customer ids, takes the highest numeric
// suffix and returns the next id in sequence (IEC_1 when none exist). A scan
// failure is surfaced as a storage error; it must never be treated as "no
// customers yet", or a connectivity blip would hand out id 1 again.
func NextCustomerID(db *gorm.DB) (string, error) {
	var ids []string
	err := db.Model(&models.Customer{}).
		Where("customer_id LIKE ?", CustomerIDPrefix+"%").
		Pluck("customer_id", &ids).Error
	if err != nil {
		return "", utils.E("NextCustomerID", utils.ErrStorage, err.Error())
	}

	max := 0
	for _, id := range ids {
		n, err := strconv.Atoi(strings.TrimPrefix(id, CustomerIDPrefix))
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}

	return fmt.Sprintf("%s%d", CustomerIDPrefix, max+1), nil
}

// NextInvoiceNumber returns the next "<year>-NNN" invoice number. The
// sequence restarts at 001 each calendar year because the prefix changes.
// Same failure policy as NextCustomerID.
func NextInvoiceNumber(db *gorm.DB, year int) (string, error) {
	prefix := strconv.Itoa(year) + "-"

	var numbers []string
	err := db.Model(&models.Invoice{}).
		Where("invoice_number LIKE ?", prefix+"%").
		Pluck("invoice_number", &numbers).Error
	if err != nil {
		return "", utils.E("NextInvoiceNumber", utils.ErrStorage, err.Error())
	}

	max := 0
	for _, number := range numbers {
		n, err := strconv.Atoi(strings.TrimPrefix(number, prefix))
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}

	return fmt.Sprintf("%s%03d", prefix, max+1), nil
}
