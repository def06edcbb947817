package controllers

import (
	"net/http"
	"time"

	"ispnet-backend/config"
	"ispnet-backend/models"
	"ispnet-backend/services"
	"ispnet-backend/utils"

	"github.com/gin-gonic/gin"
)

type CreateInstallationInput struct {
	ContractID      uint       `json:"contractId" binding:"required"`
	EmployeeID      uint       `json:"employeeId" binding:"required"`
	InstallDate     *time.Time `json:"installDate"`
	Notes           string     `json:"notes"`
	EquipmentUnitID *uint      `json:"equipmentUnitId"`
}

type UpdateInstallationInput struct {
	EmployeeID  *uint      `json:"employeeId"`
	InstallDate *time.Time `json:"installDate"`
	Status      *string    `json:"status"`
	Notes       *string    `json:"notes"`
}

// GetInstallations lists installation orders, optionally filtered by status
func GetInstallations(c *gin.Context) {
	query := config.DB.Preload("Contract.Customer").Preload("Contract.Plan").Preload("Employee")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []models.InstallationOrder
	if err := query.Order("created_at DESC").Find(&orders).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve installation orders")
		return
	}

	c.JSON(http.StatusOK, orders)
}

// GetInstallation retrieves a single installation order
func GetInstallation(c *gin.Context) {
	var order models.InstallationOrder
	err := config.DB.Preload("Contract.Customer").Preload("Contract.Plan").Preload("Employee").
		First(&order, "id = ?", c.Param("id")).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Installation order not found")
		return
	}

	c.JSON(http.StatusOK, order)
}

// CreateInstallation schedules an installation for a contract. The acting
// user's position is recorded as supervisor, and when a unit is given it is
// assigned to the contract's pending equipment reservation.
func CreateInstallation(c *gin.Context) {
	var input CreateInstallationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var contract models.Contract
	if err := config.DB.Preload("Equipments").First(&contract, "id = ?", input.ContractID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Contract not found")
		return
	}

	var technician models.Employee
	if err := config.DB.First(&technician, "id = ?", input.EmployeeID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Employee not found")
		return
	}

	order := models.InstallationOrder{
		ContractID:  input.ContractID,
		EmployeeID:  input.EmployeeID,
		InstallDate: input.InstallDate,
		Status:      models.InstallationPending,
		Supervisor:  resolveSupervisor(c),
		Notes:       input.Notes,
	}

	if err := config.DB.Create(&order).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create installation order")
		return
	}

	if input.EquipmentUnitID != nil {
		var unit models.EquipmentUnit
		if err := config.DB.First(&unit, "id = ?", *input.EquipmentUnitID).Error; err != nil {
			utils.RespondWithError(c, http.StatusNotFound, "Equipment unit not found")
			return
		}

		equipmentService := services.NewEquipmentService(config.DB)
		_, err := equipmentService.AssignSpecificUnit(contract.ID, unit.EquipmentID, unit.ID, models.AssignmentAssigned)
		if err != nil {
			respondAssignmentError(c, err)
			return
		}
	}

	c.JSON(http.StatusCreated, order)
}

// UpdateInstallation edits an order's technician, date, notes or status
func UpdateInstallation(c *gin.Context) {
	var input UpdateInstallationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var order models.InstallationOrder
	if err := config.DB.First(&order, "id = ?", c.Param("id")).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Installation order not found")
		return
	}

	if input.EmployeeID != nil {
		var technician models.Employee
		if err := config.DB.First(&technician, "id = ?", *input.EmployeeID).Error; err != nil {
			utils.RespondWithError(c, http.StatusNotFound, "Employee not found")
			return
		}
		order.EmployeeID = *input.EmployeeID
	}
	if input.InstallDate != nil {
		order.InstallDate = input.InstallDate
	}
	if input.Status != nil {
		order.Status = *input.Status
	}
	if input.Notes != nil {
		order.Notes = *input.Notes
	}

	if err := config.DB.Save(&order).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update installation order")
		return
	}

	c.JSON(http.StatusOK, order)
}

// CancelInstallation marks a pending order as cancelled
func CancelInstallation(c *gin.Context) {
	var order models.InstallationOrder
	if err := config.DB.First(&order, "id = ?", c.Param("id")).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Installation order not found")
		return
	}

	if order.Status == models.InstallationCompleted {
		utils.RespondWithError(c, http.StatusConflict, "Completed orders cannot be cancelled")
		return
	}

	order.Status = models.InstallationCancelled
	if err := config.DB.Save(&order).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to cancel installation order")
		return
	}

	c.JSON(http.StatusOK, order)
}

// resolveSupervisor derives the supervisor label from the session claims.
// Administrators are labelled directly, other staff by their position title.
func resolveSupervisor(c *gin.Context) string {
	if role, ok := c.Get(utils.CtxRole); ok && role == services.RoleAdministrator {
		return "General Administrator"
	}

	if email, ok := c.Get(utils.CtxEmail); ok {
		var employee models.Employee
		err := config.DB.Preload("Position").
			Where("LOWER(email) = LOWER(?)", email).
			First(&employee).Error
		if err == nil && employee.Position.Title != "" {
			return employee.Position.Title
		}
	}

	return "Staff"
}
