package controllers

import (
	"errors"
	"net/http"
	"time"

	"ispnet-backend/config"
	"ispnet-backend/models"
	"ispnet-backend/services"
	"ispnet-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type LoginInput struct {
	Identifier string `json:"identifier" binding:"required"` // email, national ID or username
	Password   string `json:"password" binding:"required"`
}

type RegisterInput struct {
	Name       string `json:"name" binding:"required"`
	NationalID string `json:"nationalId" binding:"required"`
	Address    string `json:"address"`
	Email      string `json:"email" binding:"required,email"`
	Phone      string `json:"phone"`
	Password   string `json:"password" binding:"required,min=8"`
}

// Login runs the credential dispatcher over the three identity stores and
// establishes a session for whichever matches first.
func Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	dispatcher := services.NewLoginDispatcher(config.DB)
	principal, err := dispatcher.Authenticate(input.Identifier, input.Password)
	if err != nil {
		var disabled *services.DisabledAccountError
		switch {
		case errors.As(err, &disabled):
			c.JSON(http.StatusForbidden, gin.H{
				"error":       "Account disabled",
				"accountType": disabled.AccountType,
			})
		case errors.Is(err, services.ErrLockedOut):
			utils.RespondWithError(c, http.StatusLocked, "Account locked out")
		case errors.Is(err, services.ErrTwoFactorRequired):
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":             "Two-factor authentication required",
				"twoFactorRequired": true,
			})
		case errors.Is(err, services.ErrInvalidCredentials):
			utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		default:
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	token, err := utils.GenerateToken(utils.SessionClaims{
		Subject:    principal.ID,
		Kind:       principal.Kind,
		Role:       principal.Role,
		Name:       principal.Name,
		Email:      principal.Email,
		NationalID: principal.NationalID,
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	utils.SetSessionCookie(c, token)

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":    principal.ID,
			"name":  principal.Name,
			"email": principal.Email,
			"role":  principal.Role,
		},
	})
}

// Register creates a customer account (self-service signup).
func Register(c *gin.Context) {
	var input RegisterInput
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
	result := config.DB.Where("national_id = ? OR email = ?", input.NationalID, input.Email).First(&existing)
	if result.Error == nil {
		utils.RespondWithError(c, http.StatusConflict, "National ID or email already registered")
		return
	} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
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

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful",
		"customer": gin.H{
			"id":         customer.ID,
			"name":       customer.Name,
			"email":      customer.Email,
			"nationalId": customer.NationalID,
		},
	})
}

// Me returns the profile backing the current session.
func Me(c *gin.Context) {
	kind := c.GetString(utils.CtxKind)
	userID, exists := c.Get(utils.CtxUserID)
	if !exists {
		utils.RespondWithError(c, http.StatusInternalServerError, "User ID not found in context")
		return
	}

	switch kind {
	case services.KindCustomer:
		var customer models.Customer
		if err := config.DB.First(&customer, "id = ?", userID).Error; err != nil {
			utils.RespondWithError(c, http.StatusUnauthorized, "Customer not found")
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": gin.H{
			"id":         customer.ID,
			"name":       customer.Name,
			"email":      customer.Email,
			"nationalId": customer.NationalID,
			"phone":      customer.Phone,
			"address":    customer.Address,
			"role":       services.RoleCustomer,
		}})
	case services.KindEmployee:
		var employee models.Employee
		if err := config.DB.Preload("Position").First(&employee, "id = ?", userID).Error; err != nil {
			utils.RespondWithError(c, http.StatusUnauthorized, "Employee not found")
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": gin.H{
			"id":         employee.ID,
			"name":       employee.Name,
			"email":      employee.Email,
			"nationalId": employee.NationalID,
			"position":   employee.Position.Title,
			"role":       services.EmployeeRole(employee.Position.Title),
		}})
	default:
		var user models.IdentityUser
		if err := config.DB.First(&user, "id = ?", userID).Error; err != nil {
			utils.RespondWithError(c, http.StatusUnauthorized, "User not found")
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": gin.H{
			"id":       user.ID,
			"name":     user.Username,
			"email":    user.Email,
			"role":     services.RoleEmployee,
		}})
	}
}

// Logout drops the session cookie.
func Logout(c *gin.Context) {
	utils.ClearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
}
