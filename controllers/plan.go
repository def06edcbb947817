package controllers

import (
	"errors"
	"net/http"
	"strings"

	"ispnet-backend/config"
	"ispnet-backend/models"
	"ispnet-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreatePlanInput struct {
	Name         string  `json:"name" binding:"required"`
	ServiceType  string  `json:"serviceType" binding:"required"`
	SpeedMbps    *int    `json:"speedMbps"`
	Description  string  `json:"description"`
	MonthlyPrice float64 `json:"monthlyPrice" binding:"required,gt=0"`
	ZoneID       uint    `json:"zoneId" binding:"required"`
}

type UpdatePlanInput struct {
	Name         *string  `json:"name"`
	ServiceType  *string  `json:"serviceType"`
	SpeedMbps    *int     `json:"speedMbps"`
	Description  *string  `json:"description"`
	MonthlyPrice *float64 `json:"monthlyPrice"`
	ZoneID       *uint    `json:"zoneId"`
}

// GetPlans lists service plans with their zones
func GetPlans(c *gin.Context) {
	var plans []models.ServicePlan
	if err := config.DB.Preload("Zone").Order("name").Find(&plans).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve plans")
		return
	}

	c.JSON(http.StatusOK, plans)
}

// CreatePlan adds a service plan
func CreatePlan(c *gin.Context) {
	var input CreatePlanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var zone models.CoverageZone
	if err := config.DB.First(&zone, input.ZoneID).Error; err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Zone not found")
		return
	}

	if planNameTaken(input.Name, 0) {
		utils.RespondWithError(c, http.StatusConflict, "A plan with this name already exists")
		return
	}

	plan := models.ServicePlan{
		Name:         input.Name,
		ServiceType:  input.ServiceType,
		SpeedMbps:    input.SpeedMbps,
		Description:  input.Description,
		MonthlyPrice: input.MonthlyPrice,
		Status:       models.PlanActive,
		ZoneID:       input.ZoneID,
	}
	if err := config.DB.Create(&plan).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create plan")
		return
	}

	c.JSON(http.StatusCreated, plan)
}

// UpdatePlan edits a service plan
func UpdatePlan(c *gin.Context) {
	var input UpdatePlanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var plan models.ServicePlan
	if err := config.DB.First(&plan, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Plan not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil && *input.Name != plan.Name {
		if planNameTaken(*input.Name, plan.ID) {
			utils.RespondWithError(c, http.StatusConflict, "A plan with this name already exists")
			return
		}
		plan.Name = *input.Name
	}
	if input.ServiceType != nil {
		plan.ServiceType = *input.ServiceType
	}
	if input.SpeedMbps != nil {
		plan.SpeedMbps = input.SpeedMbps
	}
	if input.Description != nil {
		plan.Description = *input.Description
	}
	if input.MonthlyPrice != nil {
		plan.MonthlyPrice = *input.MonthlyPrice
	}
	if input.ZoneID != nil {
		var zone models.CoverageZone
		if err := config.DB.First(&zone, *input.ZoneID).Error; err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Zone not found")
			return
		}
		plan.ZoneID = *input.ZoneID
	}

	if err := config.DB.Save(&plan).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update plan")
		return
	}

	c.JSON(http.StatusOK, plan)
}

// DisablePlan removes a plan from the sellable catalog
func DisablePlan(c *gin.Context) {
	setPlanStatus(c, models.PlanInactive, "Plan disabled")
}

// EnablePlan restores a plan to the sellable catalog
func EnablePlan(c *gin.Context) {
	setPlanStatus(c, models.PlanActive, "Plan enabled")
}

func setPlanStatus(c *gin.Context, status, message string) {
	var plan models.ServicePlan
	if err := config.DB.First(&plan, "id = ?", c.Param("id")).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Plan not found")
		return
	}

	plan.Status = status
	if err := config.DB.Save(&plan).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update plan")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": message})
}

// CheckPlanName answers whether a plan name is free (for form validation)
func CheckPlanName(c *gin.Context) {
	name := strings.TrimSpace(c.Query("name"))
	if name == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Name is required")
		return
	}

	c.JSON(http.StatusOK, gin.H{"available": !planNameTaken(name, 0)})
}

func planNameTaken(name string, excludeID uint) bool {
	var count int64
	config.DB.Model(&models.ServicePlan{}).
		Where("LOWER(name) = ? AND id <> ?", strings.ToLower(name), excludeID).
		Count(&count)
	return count > 0
}
