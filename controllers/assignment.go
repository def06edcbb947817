package controllers

import (
	"errors"
	"net/http"

	"ispnet-backend/config"
	"ispnet-backend/models"
	"ispnet-backend/services"
	"ispnet-backend/utils"

	"github.com/gin-gonic/gin"
)

type AssignEquipmentInput struct {
	ContractID  uint  `json:"contractId" binding:"required"`
	EquipmentID uint  `json:"equipmentId" binding:"required"`
	UnitID      *uint `json:"unitId"`
}

type AssignmentStateInput struct {
	Status string `json:"status" binding:"required"`
}

// GetAssignments lists equipment assignments, optionally for one contract
func GetAssignments(c *gin.Context) {
	query := config.DB.Preload("Contract.Customer").Preload("Equipment").Preload("Unit")
	if contractID := c.Query("contractId"); contractID != "" {
		query = query.Where("contract_id = ?", contractID)
	}

	var assignments []models.ContractEquipment
	if err := query.Order("assigned_at DESC").Find(&assignments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve assignments")
		return
	}

	c.JSON(http.StatusOK, assignments)
}

// AssignEquipment binds a physical unit to a contract. When no unit is
// given the first available one is taken.
func AssignEquipment(c *gin.Context) {
	var input AssignEquipmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var contract models.Contract
	if err := config.DB.First(&contract, "id = ?", input.ContractID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Contract not found")
		return
	}

	equipmentService := services.NewEquipmentService(config.DB)

	var assignment *models.ContractEquipment
	var err error
	if input.UnitID != nil {
		assignment, err = equipmentService.AssignSpecificUnit(input.ContractID, input.EquipmentID, *input.UnitID, models.AssignmentAssigned)
	} else {
		assignment, err = equipmentService.AssignUnit(input.ContractID, input.EquipmentID, models.AssignmentAssigned)
	}
	if err != nil {
		respondAssignmentError(c, err)
		return
	}

	c.JSON(http.StatusCreated, assignment)
}

// UpdateAssignmentState moves an assignment through its lifecycle,
// keeping the unit and stock counters consistent
func UpdateAssignmentState(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}

	var input AssignmentStateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	equipmentService := services.NewEquipmentService(config.DB)
	if err := equipmentService.ChangeAssignmentState(id, input.Status); err != nil {
		respondAssignmentError(c, err)
		return
	}

	var assignment models.ContractEquipment
	if err := config.DB.Preload("Equipment").Preload("Unit").First(&assignment, id).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	c.JSON(http.StatusOK, assignment)
}

func respondAssignmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrEquipmentNotFound):
		utils.RespondWithError(c, http.StatusNotFound, "Equipment not found")
	case errors.Is(err, services.ErrAssignmentNotFound):
		utils.RespondWithError(c, http.StatusNotFound, "Assignment not found")
	case errors.Is(err, services.ErrNoUnitsAvailable):
		utils.RespondWithError(c, http.StatusConflict, "No units available for this equipment")
	case errors.Is(err, services.ErrUnitMismatch):
		utils.RespondWithError(c, http.StatusBadRequest, "Unit does not belong to the given equipment")
	case errors.Is(err, services.ErrUnitUnavailable):
		utils.RespondWithError(c, http.StatusConflict, "Unit is not available")
	case errors.Is(err, services.ErrUnsupportedState):
		utils.RespondWithError(c, http.StatusUnprocessableEntity, "Unsupported assignment state")
	default:
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
	}
}
