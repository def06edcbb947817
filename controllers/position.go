package controllers

import (
	"errors"
	"net/http"

	"ispnet-backend/config"
	"ispnet-backend/models"
	"ispnet-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PositionInput struct {
	Title string `json:"title" binding:"required"`
}

// GetPositions lists the job title catalog
func GetPositions(c *gin.Context) {
	var positions []models.Position
	if err := config.DB.Order("title").Find(&positions).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve positions")
		return
	}

	c.JSON(http.StatusOK, positions)
}

// CreatePosition adds a job title
func CreatePosition(c *gin.Context) {
	var input PositionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var existing models.Position
	if err := config.DB.Where("title = ?", input.Title).First(&existing).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Position already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	position := models.Position{Title: input.Title}
	if err := config.DB.Create(&position).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create position")
		return
	}

	c.JSON(http.StatusCreated, position)
}

// UpdatePosition renames a job title
func UpdatePosition(c *gin.Context) {
	var input PositionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var position models.Position
	if err := config.DB.First(&position, "id = ?", c.Param("id")).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Position not found")
		return
	}

	position.Title = input.Title
	if err := config.DB.Save(&position).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update position")
		return
	}

	c.JSON(http.StatusOK, position)
}
