package controllers

import (
	"net/http"

	"ispnet-backend/config"
	"ispnet-backend/models"
	"ispnet-backend/utils"

	"github.com/gin-gonic/gin"
)

// GetDashboard aggregates the admin landing page counters
func GetDashboard(c *gin.Context) {
	var (
		activeCustomers   int64
		activeContracts   int64
		pendingPayments   int64
		pendingInstalls   int64
		availableUnits    int64
		collectedRevenue  float64
		outstandingAmount float64
	)

	db := config.DB

	if err := db.Model(&models.Customer{}).
		Where("status = ?", models.CustomerActive).
		Count(&activeCustomers).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}
	if err := db.Model(&models.Contract{}).
		Where("status = ?", models.ContractActive).
		Count(&activeContracts).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}
	if err := db.Model(&models.Payment{}).
		Where("status = ?", models.PaymentPending).
		Count(&pendingPayments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}
	if err := db.Model(&models.InstallationOrder{}).
		Where("status = ?", models.InstallationPending).
		Count(&pendingInstalls).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}
	if err := db.Model(&models.EquipmentUnit{}).
		Where("status = ?", models.UnitAvailable).
		Count(&availableUnits).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}

	row := db.Model(&models.Payment{}).
		Where("status = ?", models.PaymentPaid).
		Select("COALESCE(SUM(amount), 0)").
		Row()
	if err := row.Scan(&collectedRevenue); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}

	row = db.Model(&models.Payment{}).
		Where("status = ?", models.PaymentPending).
		Select("COALESCE(SUM(amount), 0)").
		Row()
	if err := row.Scan(&outstandingAmount); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"activeCustomers":      activeCustomers,
		"activeContracts":      activeContracts,
		"pendingPayments":      pendingPayments,
		"pendingInstallations": pendingInstalls,
		"availableUnits":       availableUnits,
		"collectedRevenue":     collectedRevenue,
		"outstandingAmount":    outstandingAmount,
	})
}
