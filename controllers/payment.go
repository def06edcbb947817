package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"ispnet-backend/config"
	"ispnet-backend/models"
	"ispnet-backend/services"
	"ispnet-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ProcessPaymentInput struct {
	Method string `json:"method" binding:"required"`
}

// LookupPayments finds a customer by national ID, makes sure the next
// billing period has a pending payment, and returns the payment history
// for the customer's active contract.
func LookupPayments(c *gin.Context) {
	nationalID := strings.TrimSpace(c.Query("nationalId"))
	if nationalID == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "National ID is required")
		return
	}

	var customer models.Customer
	err := config.DB.Where("national_id = ?", nationalID).First(&customer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusNotFound, "No customer found with that national ID")
		return
	}
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	if !strings.EqualFold(customer.Status, models.CustomerActive) {
		utils.RespondWithError(c, http.StatusForbidden, "Customer is disabled and cannot make payments")
		return
	}

	var contract models.Contract
	err = config.DB.Preload("Plan.Zone").
		Where("customer_id = ? AND status = ?", customer.ID, models.ContractActive).
		First(&contract).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusNotFound, "No active contract found for this customer")
		return
	}
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	paymentService := services.NewPaymentService(config.DB)
	if err := paymentService.EnsurePendingPayment(contract.ID); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate payment")
		return
	}

	var payments []models.Payment
	if err := config.DB.Where("contract_id = ?", contract.ID).
		Order("due_date").
		Find(&payments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve payments")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"customer": gin.H{
			"id":         customer.ID,
			"name":       customer.Name,
			"nationalId": customer.NationalID,
		},
		"contract": contract,
		"payments": payments,
	})
}

// GetPayments is the admin view over every payment
func GetPayments(c *gin.Context) {
	var payments []models.Payment
	err := config.DB.Preload("Contract.Customer").
		Preload("Contract.Plan").
		Preload("Contract.Employee").
		Order("due_date DESC").
		Find(&payments).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve payments")
		return
	}

	c.JSON(http.StatusOK, payments)
}

// GetPayment returns a single payment for checkout
func GetPayment(c *gin.Context) {
	var payment models.Payment
	err := config.DB.Preload("Contract.Plan").First(&payment, "id = ?", c.Param("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Payment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, payment)
}

// ProcessPayment marks a payment paid and materializes the next pending one
func ProcessPayment(c *gin.Context) {
	paymentID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid payment ID")
		return
	}

	var input ProcessPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	paymentService := services.NewPaymentService(config.DB)
	payment, err := paymentService.MarkPaid(uint(paymentID), input.Method)
	if err != nil {
		if errors.Is(err, services.ErrPaymentNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Payment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to process payment")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Payment successful",
		"payment": payment,
	})
}

// DeletePayment removes a payment record (admin only, including paid ones)
func DeletePayment(c *gin.Context) {
	var payment models.Payment
	if err := config.DB.First(&payment, "id = ?", c.Param("id")).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Payment not found")
		return
	}

	if err := config.DB.Delete(&payment).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete payment")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Payment deleted successfully"})
}
