package models

// Customer ids follow the IEC_<n> scheme, assigned by services.NextCustomerID.
type Customer struct {
	CustomerID  string `gorm:"primaryKey" json:"customer_id"`
	CompanyName string `gorm:"uniqueIndex;not null" json:"company_name"`
	Address1    string `json:"address1"`
	Address2    string `json:"address2"`
	Address3    string `json:"address3"`
	GSTIN       string `json:"gstin"`
	PAN         string `json:"pan"`
	CIN         string `json:"cin"`

	Projects []Project `gorm:"foreignKey:CustomerID" json:"-"`
}
