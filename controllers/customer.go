package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"invoicemate-backend/models"
	"invoicemate-backend/services"
	"invoicemate-backend/utils"
)

type CustomerController struct {
	DB *gorm.DB
}

// CreateCustomerInput defines the expected JSON structure for registering a customer
type CreateCustomerInput struct {
	CompanyName string `json:"companyName" binding:"required"`
	Address1    string `json:"address1"`
	Address2    string `json:"address2"`
	Address3    string `json:"address3"`
	GSTIN       string `json:"gstin"`
	PAN         string `json:"pan"`
	CIN         string `json:"cin"`
}

// CreateCustomer registers a customer under the next IEC id
func (ctl *CustomerController) CreateCustomer(c *gin.Context) {
	var input CreateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	// Check if the company is already registered
	var existing models.Customer
	if err := ctl.DB.Where("company_name = ?", input.CompanyName).First(&existing).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Customer with this company name already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	customerID, err := services.NextCustomerID(ctl.DB)
	if err != nil {
		// A failed scan is a storage problem, not "first customer".
		utils.RespondWithError(c, utils.StatusFromError(err), "Failed to generate customer id")
		return
	}

	customer := models.Customer{
		CustomerID:  customerID,
		CompanyName: input.CompanyName,
		Address1:    input.Address1,
		Address2:    input.Address2,
		Address3:    input.Address3,
		GSTIN:       input.GSTIN,
		PAN:         input.PAN,
		CIN:         input.CIN,
	}

	if err := ctl.DB.Create(&customer).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create customer")
		return
	}

	c.JSON(http.StatusCreated, customer)
}

// GetCustomers retrieves all registered customers
func (ctl *CustomerController) GetCustomers(c *gin.Context) {
	var customers []models.Customer
	if err := ctl.DB.Find(&customers).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve customers")
		return
	}

	c.JSON(http.StatusOK, customers)
}

// GetCustomer retrieves a specific customer by IEC id
func (ctl *CustomerController) GetCustomer(c *gin.Context) {
	customerID := c.Param("id")

	var customer models.Customer
	if err := ctl.DB.First(&customer, "customer_id = ?", customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, customer)
}
