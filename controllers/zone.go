package controllers

import (
	"net/http"

	"ispnet-backend/config"
	"ispnet-backend/models"
	"ispnet-backend/utils"

	"github.com/gin-gonic/gin"
)

type ZoneInput struct {
	Name        string `json:"name" binding:"required"`
	District    string `json:"district" binding:"required"`
	Description string `json:"description"`
}

// GetZones lists coverage zones
func GetZones(c *gin.Context) {
	var zones []models.CoverageZone
	if err := config.DB.Order("name").Find(&zones).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve zones")
		return
	}

	c.JSON(http.StatusOK, zones)
}

// CreateZone adds a coverage zone
func CreateZone(c *gin.Context) {
	var input ZoneInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	zone := models.CoverageZone{
		Name:        input.Name,
		District:    input.District,
		Description: input.Description,
	}
	if err := config.DB.Create(&zone).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create zone")
		return
	}

	c.JSON(http.StatusCreated, zone)
}

// UpdateZone edits a coverage zone
func UpdateZone(c *gin.Context) {
	var input ZoneInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var zone models.CoverageZone
	if err := config.DB.First(&zone, "id = ?", c.Param("id")).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Zone not found")
		return
	}

	zone.Name = input.Name
	zone.District = input.District
	zone.Description = input.Description
	if err := config.DB.Save(&zone).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update zone")
		return
	}

	c.JSON(http.StatusOK, zone)
}

// DeleteZone removes a zone with no service plans
func DeleteZone(c *gin.Context) {
	var zone models.CoverageZone
	if err := config.DB.First(&zone, "id = ?", c.Param("id")).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Zone not found")
		return
	}

	var plans int64
	if err := config.DB.Model(&models.ServicePlan{}).
		Where("zone_id = ?", zone.ID).
		Count(&plans).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	if plans > 0 {
		utils.RespondWithError(c, http.StatusConflict, "Zone has service plans and cannot be deleted")
		return
	}

	if err := config.DB.Delete(&zone).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete zone")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Zone deleted successfully"})
}
