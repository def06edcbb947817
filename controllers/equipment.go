package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"ispnet-backend/config"
	"ispnet-backend/models"
	"ispnet-backend/services"
	"ispnet-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreateEquipmentInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Stock       int    `json:"stock" binding:"min=0"`
}

type UpdateEquipmentInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type StockInput struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// GetEquipment lists the equipment catalog
func GetEquipment(c *gin.Context) {
	var equipment []models.Equipment
	if err := config.DB.Order("name").Find(&equipment).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve equipment")
		return
	}

	c.JSON(http.StatusOK, equipment)
}

// GetEquipmentItem retrieves one catalog entry with its units
func GetEquipmentItem(c *gin.Context) {
	var equipment models.Equipment
	err := config.DB.Preload("Units").First(&equipment, "id = ?", c.Param("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Equipment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, equipment)
}

// CreateEquipment registers a catalog entry, generating its code and one
// unit row per stock item
func CreateEquipment(c *gin.Context) {
	var input CreateEquipmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	equipment := models.Equipment{
		Name:        input.Name,
		Description: input.Description,
		Stock:       input.Stock,
	}

	equipmentService := services.NewEquipmentService(config.DB)
	if err := equipmentService.CreateCatalogEntry(&equipment); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create equipment")
		return
	}

	c.JSON(http.StatusCreated, equipment)
}

// UpdateEquipment edits catalog metadata
func UpdateEquipment(c *gin.Context) {
	var input UpdateEquipmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var equipment models.Equipment
	if err := config.DB.First(&equipment, "id = ?", c.Param("id")).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Equipment not found")
		return
	}

	if input.Name != nil {
		equipment.Name = *input.Name
	}
	if input.Description != nil {
		equipment.Description = *input.Description
	}

	if err := config.DB.Save(&equipment).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update equipment")
		return
	}

	c.JSON(http.StatusOK, equipment)
}

// DepleteEquipment zeroes the stock counter
func DepleteEquipment(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}

	equipmentService := services.NewEquipmentService(config.DB)
	if err := equipmentService.Deplete(id); err != nil {
		respondEquipmentError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Equipment marked depleted"})
}

// IncreaseStock adds units to a catalog entry
func IncreaseStock(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}

	var input StockInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	equipmentService := services.NewEquipmentService(config.DB)
	if err := equipmentService.IncreaseStock(id, input.Quantity); err != nil {
		respondEquipmentError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Stock updated successfully"})
}

// DecreaseStock removes units from a catalog entry
func DecreaseStock(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}

	var input StockInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	equipmentService := services.NewEquipmentService(config.DB)
	if err := equipmentService.DecreaseStock(id, input.Quantity); err != nil {
		respondEquipmentError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Stock updated successfully"})
}

// GetAvailableUnits lists the free physical units of a catalog entry
func GetAvailableUnits(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}

	equipmentService := services.NewEquipmentService(config.DB)
	units, err := equipmentService.AvailableUnits(id)
	if err != nil {
		respondEquipmentError(c, err)
		return
	}

	c.JSON(http.StatusOK, units)
}

// DeleteEquipment removes a catalog entry with no assignments
func DeleteEquipment(c *gin.Context) {
	var equipment models.Equipment
	if err := config.DB.First(&equipment, "id = ?", c.Param("id")).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Equipment not found")
		return
	}

	var assignments int64
	if err := config.DB.Model(&models.ContractEquipment{}).
		Where("equipment_id = ?", equipment.ID).
		Count(&assignments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	if assignments > 0 {
		utils.RespondWithError(c, http.StatusConflict, "Equipment has contract assignments and cannot be deleted")
		return
	}

	if err := config.DB.Where("equipment_id = ?", equipment.ID).
		Delete(&models.EquipmentUnit{}).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete equipment units")
		return
	}
	if err := config.DB.Delete(&equipment).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete equipment")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Equipment deleted successfully"})
}

func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid ID")
		return 0, err
	}
	return uint(id), nil
}

func respondEquipmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrEquipmentNotFound):
		utils.RespondWithError(c, http.StatusNotFound, "Equipment not found")
	default:
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
	}
}
