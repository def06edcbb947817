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

type CreateEmployeeInput struct {
	PositionID     uint   `json:"positionId" binding:"required"`
	Name           string `json:"name" binding:"required"`
	NationalID     string `json:"nationalId" binding:"required"`
	Phone          string `json:"phone"`
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required,min=8"`
	DurationMonths int    `json:"durationMonths" binding:"required,min=1"` // contract term
}

type UpdateEmployeeInput struct {
	PositionID  *uint   `json:"positionId"`
	Name        *string `json:"name"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email"`
	NewPassword *string `json:"newPassword"`
	Status      *string `json:"status"`
}

// AddEmployee hires an employee with a fixed-term work period
func AddEmployee(c *gin.Context) {
	var input CreateEmployeeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !utils.ValidateNationalID(input.NationalID) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid national ID format")
		return
	}

	var position models.Position
	if err := config.DB.First(&position, input.PositionID).Error; err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Position not found")
		return
	}

	var existing models.Employee
	if err := config.DB.Where("national_id = ? OR email = ?", input.NationalID, input.Email).
		First(&existing).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Employee with this national ID or email already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create employee")
		return
	}

	start := time.Now()
	end := utils.AddMonths(start, input.DurationMonths)
	employee := models.Employee{
		PositionID: input.PositionID,
		Name:       input.Name,
		NationalID: input.NationalID,
		Phone:      input.Phone,
		Email:      input.Email,
		Password:   hashed,
		Status:     models.EmployeeActive,
		StartDate:  &start,
		EndDate:    &end,
	}

	if err := config.DB.Create(&employee).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create employee")
		return
	}

	c.JSON(http.StatusCreated, employee)
}

// GetEmployees retrieves all employees with their positions
func GetEmployees(c *gin.Context) {
	var employees []models.Employee
	if err := config.DB.Preload("Position").Order("name").Find(&employees).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve employees")
		return
	}

	c.JSON(http.StatusOK, employees)
}

// GetEmployee retrieves a specific employee by ID
func GetEmployee(c *gin.Context) {
	var employee models.Employee
	if err := config.DB.Preload("Position").First(&employee, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Employee not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, employee)
}

// UpdateEmployee updates an existing employee
func UpdateEmployee(c *gin.Context) {
	var input UpdateEmployeeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var employee models.Employee
	if err := config.DB.First(&employee, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Employee not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.PositionID != nil {
		var position models.Position
		if err := config.DB.First(&position, *input.PositionID).Error; err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Position not found")
			return
		}
		employee.PositionID = *input.PositionID
	}
	if input.Name != nil {
		employee.Name = *input.Name
	}
	if input.Phone != nil {
		employee.Phone = *input.Phone
	}
	if input.Email != nil {
		employee.Email = *input.Email
	}
	if input.Status != nil {
		employee.Status = *input.Status
	}
	if input.NewPassword != nil && *input.NewPassword != "" {
		hashed, err := utils.HashPassword(*input.NewPassword)
		if err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update employee")
			return
		}
		employee.Password = hashed
	}

	if err := config.DB.Save(&employee).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update employee")
		return
	}

	c.JSON(http.StatusOK, employee)
}

// DisableEmployee flips the account to disabled and closes the work period
func DisableEmployee(c *gin.Context) {
	var employee models.Employee
	if err := config.DB.First(&employee, "id = ?", c.Param("id")).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Employee not found")
		return
	}

	now := time.Now()
	employee.Status = models.EmployeeDisabled
	employee.EndDate = &now
	if err := config.DB.Save(&employee).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update employee")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Employee disabled"})
}

// EnableEmployee re-activates the account
func EnableEmployee(c *gin.Context) {
	var employee models.Employee
	if err := config.DB.First(&employee, "id = ?", c.Param("id")).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Employee not found")
		return
	}

	employee.Status = models.EmployeeActive
	if err := config.DB.Save(&employee).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update employee")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Employee enabled"})
}

// DeleteEmployee removes an employee with no contracts or installation orders
func DeleteEmployee(c *gin.Context) {
	var employee models.Employee
	if err := config.DB.First(&employee, "id = ?", c.Param("id")).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Employee not found")
		return
	}

	var contracts int64
	config.DB.Model(&models.Contract{}).Where("employee_id = ?", employee.ID).Count(&contracts)
	var installations int64
	config.DB.Model(&models.InstallationOrder{}).Where("employee_id = ?", employee.ID).Count(&installations)
	if contracts > 0 || installations > 0 {
		utils.RespondWithError(c, http.StatusConflict, "Employee has dependent records and cannot be deleted")
		return
	}

	if err := config.DB.Delete(&employee).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete employee")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Employee deleted successfully"})
}
