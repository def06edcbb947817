package services

import (
	"fmt"
	"testing"
	"time"

	"ispnet-backend/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.IdentityUser{},
		&models.Customer{},
		&models.Position{},
		&models.Employee{},
		&models.CoverageZone{},
		&models.ServicePlan{},
		&models.Contract{},
		&models.Payment{},
		&models.Equipment{},
		&models.EquipmentUnit{},
		&models.ContractEquipment{},
		&models.InstallationOrder{},
		&models.NotificationLog{},
	)
	require.NoError(t, err)
	return db
}

var seedSeq int

// seedContract creates a customer, plan and employee and returns an active
// contract running from start for the given number of months.
func seedContract(t *testing.T, db *gorm.DB, start time.Time, months int, monthlyPrice float64) *models.Contract {
	t.Helper()
	seedSeq++

	zone := models.CoverageZone{Name: "North", District: "Central"}
	require.NoError(t, db.Create(&zone).Error)

	plan := models.ServicePlan{
		Name:         fmt.Sprintf("Fiber 100 #%d", seedSeq),
		ServiceType:  "internet",
		MonthlyPrice: monthlyPrice,
		Status:       models.PlanActive,
		ZoneID:       zone.ID,
	}
	require.NoError(t, db.Create(&plan).Error)

	position := models.Position{Title: fmt.Sprintf("Technician %d", seedSeq)}
	require.NoError(t, db.Create(&position).Error)

	employee := models.Employee{
		PositionID: position.ID,
		Name:       "Sara Field",
		NationalID: fmt.Sprintf("9000000%03d", seedSeq),
		Email:      fmt.Sprintf("sara%d@ispnet.test", seedSeq),
		Password:   "irrelevant",
		Status:     models.EmployeeActive,
	}
	require.NoError(t, db.Create(&employee).Error)

	customer := models.Customer{
		Name:       "Carlos Diaz",
		NationalID: fmt.Sprintf("1000000%03d", seedSeq),
		Email:      fmt.Sprintf("carlos%d@ispnet.test", seedSeq),
		Password:   "irrelevant",
		Status:     models.CustomerActive,
	}
	require.NoError(t, db.Create(&customer).Error)

	contract := models.Contract{
		CustomerID:   customer.ID,
		PlanID:       plan.ID,
		EmployeeID:   employee.ID,
		ContractDate: start,
		StartDate:    start,
		EndDate:      start.AddDate(0, months, 0),
		Status:       models.ContractActive,
	}
	require.NoError(t, db.Create(&contract).Error)
	return &contract
}

// seedEquipment registers a catalog entry through the service so unit rows
// and codes exist, mirroring the create endpoint.
func seedEquipment(t *testing.T, db *gorm.DB, name string, stock int) *models.Equipment {
	t.Helper()

	equipment := models.Equipment{Name: name, Stock: stock}
	require.NoError(t, NewEquipmentService(db).CreateCatalogEntry(&equipment))
	return &equipment
}
