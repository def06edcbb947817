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

type CreateContractInput struct {
	CustomerID     uint      `json:"customerId" binding:"required"`
	PlanID         uint      `json:"planId" binding:"required"`
	EmployeeID     uint      `json:"employeeId" binding:"required"`
	StartDate      time.Time `json:"startDate" binding:"required"`
	DurationMonths int       `json:"durationMonths" binding:"required,min=1"`
	// optional equipment reserved at signing; no physical unit is picked yet
	EquipmentID *uint `json:"equipmentId"`
}

type UpdateContractInput struct {
	PlanID         *uint      `json:"planId"`
	EmployeeID     *uint      `json:"employeeId"`
	StartDate      *time.Time `json:"startDate"`
	DurationMonths *int       `json:"durationMonths"`
}

// GetContracts lists contracts; customers only see their own.
func GetContracts(c *gin.Context) {
	query := config.DB.Preload("Customer").Preload("Plan").Preload("Employee")

	if c.GetString(utils.CtxRole) == services.RoleCustomer {
		query = query.Where("customer_id = ?", c.GetString(utils.CtxUserID))
	}

	var contracts []models.Contract
	if err := query.Find(&contracts).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve contracts")
		return
	}

	c.JSON(http.StatusOK, contracts)
}

// GetContract retrieves one contract with its assignments
func GetContract(c *gin.Context) {
	var contract models.Contract
	err := config.DB.Preload("Customer").Preload("Plan.Zone").Preload("Employee").
		Preload("Equipments.Equipment").Preload("Equipments.Unit").
		First(&contract, "id = ?", c.Param("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Contract not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, contract)
}

// CreateContract signs a customer up for a plan. The end date is derived
// from the start date plus the duration in months.
func CreateContract(c *gin.Context) {
	var input CreateContractInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var customer models.Customer
	if err := config.DB.First(&customer, input.CustomerID).Error; err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Customer not found")
		return
	}
	var plan models.ServicePlan
	if err := config.DB.First(&plan, input.PlanID).Error; err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Plan not found")
		return
	}
	var employee models.Employee
	if err := config.DB.First(&employee, input.EmployeeID).Error; err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Employee not found")
		return
	}

	contract := models.Contract{
		CustomerID:   input.CustomerID,
		PlanID:       input.PlanID,
		EmployeeID:   input.EmployeeID,
		ContractDate: time.Now(),
		StartDate:    input.StartDate,
		EndDate:      utils.AddMonths(input.StartDate, input.DurationMonths),
		Status:       models.ContractActive,
	}

	if err := config.DB.Create(&contract).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create contract")
		return
	}

	if input.EquipmentID != nil {
		assignment := models.ContractEquipment{
			ContractID:  contract.ID,
			EquipmentID: *input.EquipmentID,
			AssignedAt:  time.Now(),
			Status:      models.AssignmentActive,
		}
		if err := config.DB.Create(&assignment).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to reserve equipment")
			return
		}
	}

	c.JSON(http.StatusCreated, contract)
}

// UpdateContract edits the contract terms, re-deriving the end date when
// the start date or duration changes.
func UpdateContract(c *gin.Context) {
	var input UpdateContractInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var contract models.Contract
	if err := config.DB.First(&contract, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Contract not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.PlanID != nil {
		var plan models.ServicePlan
		if err := config.DB.First(&plan, *input.PlanID).Error; err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Plan not found")
			return
		}
		contract.PlanID = *input.PlanID
	}
	if input.EmployeeID != nil {
		var employee models.Employee
		if err := config.DB.First(&employee, *input.EmployeeID).Error; err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Employee not found")
			return
		}
		contract.EmployeeID = *input.EmployeeID
	}
	if input.StartDate != nil {
		contract.StartDate = *input.StartDate
	}
	if input.DurationMonths != nil {
		contract.EndDate = utils.AddMonths(contract.StartDate, *input.DurationMonths)
	} else if input.StartDate != nil {
		// keep the original term length when only the start moves
		months := monthsBetween(contract.StartDate, contract.EndDate)
		if months > 0 {
			contract.EndDate = utils.AddMonths(contract.StartDate, months)
		}
	}

	if err := config.DB.Save(&contract).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update contract")
		return
	}

	c.JSON(http.StatusOK, contract)
}

func monthsBetween(start, end time.Time) int {
	months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
	if months < 0 {
		return 0
	}
	return months
}

// DisableContract marks the contract inactive
func DisableContract(c *gin.Context) {
	setContractStatus(c, models.ContractInactive, "Contract disabled")
}

// EnableContract marks the contract active
func EnableContract(c *gin.Context) {
	setContractStatus(c, models.ContractActive, "Contract enabled")
}

func setContractStatus(c *gin.Context, status, message string) {
	var contract models.Contract
	if err := config.DB.First(&contract, "id = ?", c.Param("id")).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Contract not found")
		return
	}

	contract.Status = status
	if err := config.DB.Save(&contract).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update contract")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": message})
}

// DeleteContract removes a contract without payments, freeing any assigned
// units back to stock first.
func DeleteContract(c *gin.Context) {
	var contract models.Contract
	if err := config.DB.First(&contract, "id = ?", c.Param("id")).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Contract not found")
		return
	}

	var payments int64
	if err := config.DB.Model(&models.Payment{}).
		Where("contract_id = ?", contract.ID).
		Count(&payments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	if payments > 0 {
		utils.RespondWithError(c, http.StatusConflict, "Contract has payments and cannot be deleted")
		return
	}

	equipmentService := services.NewEquipmentService(config.DB)
	if err := equipmentService.ReleaseContractUnits(contract.ID); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to release contract equipment")
		return
	}

	if err := config.DB.Delete(&contract).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete contract")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Contract deleted successfully"})
}

// ContractHasPayments answers the pre-delete check used by the admin UI
func ContractHasPayments(c *gin.Context) {
	var count int64
	if err := config.DB.Model(&models.Payment{}).
		Where("contract_id = ?", c.Param("id")).
		Count(&count).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	c.JSON(http.StatusOK, gin.H{"hasPayments": count > 0, "count": count})
}
