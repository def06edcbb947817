package controllers

import (
	"errors"
	"net/http"
	"time"

	"ispnet-backend/config"
	"ispnet-backend/models"
	"ispnet-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateCustomerInput defines the expected JSON structure for creating a customer
type CreateCustomerInput struct {
	Name       string `json:"name" binding:"required"`
	NationalID string `json:"nationalId" binding:"required"`
	Address    string `json:"address"`
	Email      string `json:"email" binding:"required,email"`
	Phone      string `json:"phone"`
	Password   string `json:"password" binding:"required,min=8"`
}

// UpdateCustomerInput defines the expected JSON structure for updating a customer
type UpdateCustomerInput struct {
	Name        *string `json:"name"`
	Address     *string `json:"address"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	NewPassword *string `json:"newPassword"`
	Status      *string `json:"status"`
}

// CreateCustomer registers a customer from the staff side
func CreateCustomer(c *gin.Context) {
	var input CreateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !utils.ValidateNationalID(input.NationalID) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid national ID format")
		return
	}
	if input.Phone != "" && !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	var existing models.Customer
	if err := config.DB.Where("national_id = ? OR email = ?", input.NationalID, input.Email).
		First(&existing).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Customer with this national ID or email already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create customer")
		return
	}

	customer := models.Customer{
		Name:         input.Name,
		NationalID:   input.NationalID,
		Address:      input.Address,
		Email:        input.Email,
		Phone:        input.Phone,
		Password:     hashed,
		Status:       models.CustomerActive,
		RegisteredAt: time.Now(),
	}

	if err := config.DB.Create(&customer).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create customer")
		return
	}

	c.JSON(http.StatusCreated, customer)
}

// GetCustomers retrieves all customers
func GetCustomers(c *gin.Context) {
	var customers []models.Customer
	if err := config.DB.Order("name").Find(&customers).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve customers")
		return
	}

	c.JSON(http.StatusOK, customers)
}

// GetCustomer retrieves a specific customer by ID
func GetCustomer(c *gin.Context) {
	var customer models.Customer
	if err := config.DB.First(&customer, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, customer)
}

// UpdateCustomer updates an existing customer
func UpdateCustomer(c *gin.Context) {
	var input UpdateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var customer models.Customer
	if err := config.DB.First(&customer, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		customer.Name = *input.Name
	}
	if input.Address != nil {
		customer.Address = *input.Address
	}
	if input.Email != nil {
		customer.Email = *input.Email
	}
	if input.Phone != nil {
		if !utils.ValidatePhone(*input.Phone) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
			return
		}
		customer.Phone = *input.Phone
	}
	if input.Status != nil {
		customer.Status = *input.Status
	}
	if input.NewPassword != nil && *input.NewPassword != "" {
		hashed, err := utils.HashPassword(*input.NewPassword)
		if err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update customer")
			return
		}
		customer.Password = hashed
	}

	if err := config.DB.Save(&customer).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update customer")
		return
	}

	c.JSON(http.StatusOK, customer)
}

// DisableCustomer flips the account to inactive; the account guard will
// drop any live session on its next request.
func DisableCustomer(c *gin.Context) {
	setCustomerStatus(c, models.CustomerInactive, "Customer disabled")
}

// EnableCustomer re-activates the account
func EnableCustomer(c *gin.Context) {
	setCustomerStatus(c, models.CustomerActive, "Customer enabled")
}

func setCustomerStatus(c *gin.Context, status, message string) {
	var customer models.Customer
	if err := config.DB.First(&customer, "id = ?", c.Param("id")).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		return
	}

	customer.Status = status
	if err := config.DB.Save(&customer).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update customer")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": message})
}

// DeleteCustomer removes a customer without contracts
func DeleteCustomer(c *gin.Context) {
	var customer models.Customer
	if err := config.DB.First(&customer, "id = ?", c.Param("id")).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		return
	}

	var contracts int64
	if err := config.DB.Model(&models.Contract{}).
		Where("customer_id = ?", customer.ID).
		Count(&contracts).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	if contracts > 0 {
		utils.RespondWithError(c, http.StatusConflict, "Customer has contracts and cannot be deleted")
		return
	}

	if err := config.DB.Delete(&customer).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete customer")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Customer deleted successfully"})
}
