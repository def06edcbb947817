package services

import (
	"testing"
	"time"

	"ispnet-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCatalogEntryGeneratesCodeAndUnits(t *testing.T) {
	db := setupTestDB(t)
	equipment := seedEquipment(t, db, "Router X1", 3)

	assert.NotEmpty(t, equipment.Code)
	assert.Contains(t, equipment.Code, "ROUTERX1")
	assert.Equal(t, models.EquipmentAvailable, equipment.Status)

	var units []models.EquipmentUnit
	require.NoError(t, db.Where("equipment_id = ?", equipment.ID).Order("id").Find(&units).Error)
	require.Len(t, units, 3)
	for _, unit := range units {
		assert.Equal(t, models.UnitAvailable, unit.Status)
		assert.NotEmpty(t, unit.Code)
	}
	assert.NotEqual(t, units[0].Code, units[1].Code)
}

func TestAssignUnitTakesFirstAvailable(t *testing.T) {
	db := setupTestDB(t)
	contract := seedContract(t, db, time.Now(), 12, 40)
	equipment := seedEquipment(t, db, "Router X1", 3)

	svc := NewEquipmentService(db)
	assignment, err := svc.AssignUnit(contract.ID, equipment.ID, models.AssignmentAssigned)
	require.NoError(t, err)
	require.NotNil(t, assignment.UnitID)

	var unit models.EquipmentUnit
	require.NoError(t, db.First(&unit, *assignment.UnitID).Error)
	assert.Equal(t, models.UnitAssigned, unit.Status)

	var refreshed models.Equipment
	require.NoError(t, db.First(&refreshed, equipment.ID).Error)
	assert.Equal(t, 2, refreshed.Stock)
}

func TestAssignUnitFailsWhenExhausted(t *testing.T) {
	db := setupTestDB(t)
	contract := seedContract(t, db, time.Now(), 12, 40)
	equipment := seedEquipment(t, db, "ONT Modem", 3)

	svc := NewEquipmentService(db)
	for i := 0; i < 3; i++ {
		_, err := svc.AssignUnit(contract.ID, equipment.ID, models.AssignmentAssigned)
		require.NoError(t, err)
	}

	_, err := svc.AssignUnit(contract.ID, equipment.ID, models.AssignmentAssigned)
	assert.ErrorIs(t, err, ErrNoUnitsAvailable)

	var refreshed models.Equipment
	require.NoError(t, db.First(&refreshed, equipment.ID).Error)
	assert.Zero(t, refreshed.Stock)
}

func TestAssignSpecificUnitValidatesOwnershipAndState(t *testing.T) {
	db := setupTestDB(t)
	contract := seedContract(t, db, time.Now(), 12, 40)
	router := seedEquipment(t, db, "Router X1", 1)
	modem := seedEquipment(t, db, "ONT Modem", 1)

	var modemUnit models.EquipmentUnit
	require.NoError(t, db.Where("equipment_id = ?", modem.ID).First(&modemUnit).Error)

	svc := NewEquipmentService(db)

	// Unit belongs to another catalog entry.
	_, err := svc.AssignSpecificUnit(contract.ID, router.ID, modemUnit.ID, models.AssignmentAssigned)
	assert.ErrorIs(t, err, ErrUnitMismatch)

	// Taking the unit twice fails the second time.
	_, err = svc.AssignSpecificUnit(contract.ID, modem.ID, modemUnit.ID, models.AssignmentAssigned)
	require.NoError(t, err)
	_, err = svc.AssignSpecificUnit(contract.ID, modem.ID, modemUnit.ID, models.AssignmentAssigned)
	assert.ErrorIs(t, err, ErrUnitUnavailable)
}

func TestAssignSpecificUnitCompletesReservation(t *testing.T) {
	db := setupTestDB(t)
	contract := seedContract(t, db, time.Now(), 12, 40)
	equipment := seedEquipment(t, db, "Router X1", 2)

	// Contract reserved the catalog entry without a unit at signing time.
	reservation := models.ContractEquipment{
		ContractID:  contract.ID,
		EquipmentID: equipment.ID,
		AssignedAt:  time.Now(),
		Status:      models.AssignmentActive,
	}
	require.NoError(t, db.Create(&reservation).Error)

	var unit models.EquipmentUnit
	require.NoError(t, db.Where("equipment_id = ?", equipment.ID).Order("id").First(&unit).Error)

	svc := NewEquipmentService(db)
	assignment, err := svc.AssignSpecificUnit(contract.ID, equipment.ID, unit.ID, models.AssignmentAssigned)
	require.NoError(t, err)

	assert.Equal(t, reservation.ID, assignment.ID, "the unit-less reservation must be completed, not duplicated")
	require.NotNil(t, assignment.UnitID)
	assert.Equal(t, unit.ID, *assignment.UnitID)

	var count int64
	require.NoError(t, db.Model(&models.ContractEquipment{}).
		Where("contract_id = ?", contract.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestReturnedAssignmentFreesUnitAndStock(t *testing.T) {
	db := setupTestDB(t)
	contract := seedContract(t, db, time.Now(), 12, 40)
	equipment := seedEquipment(t, db, "Router X1", 2)

	svc := NewEquipmentService(db)
	assignment, err := svc.AssignUnit(contract.ID, equipment.ID, models.AssignmentAssigned)
	require.NoError(t, err)

	require.NoError(t, svc.ChangeAssignmentState(assignment.ID, "Returned"))

	var unit models.EquipmentUnit
	require.NoError(t, db.First(&unit, *assignment.UnitID).Error)
	assert.Equal(t, models.UnitAvailable, unit.Status)

	var refreshed models.Equipment
	require.NoError(t, db.First(&refreshed, equipment.ID).Error)
	assert.Equal(t, 2, refreshed.Stock)

	var updated models.ContractEquipment
	require.NoError(t, db.First(&updated, assignment.ID).Error)
	assert.Equal(t, models.AssignmentReturned, updated.Status)
}

func TestMaintenanceParksUnitWithoutStock(t *testing.T) {
	db := setupTestDB(t)
	contract := seedContract(t, db, time.Now(), 12, 40)
	equipment := seedEquipment(t, db, "Router X1", 2)

	svc := NewEquipmentService(db)
	assignment, err := svc.AssignUnit(contract.ID, equipment.ID, models.AssignmentAssigned)
	require.NoError(t, err)

	require.NoError(t, svc.ChangeAssignmentState(assignment.ID, models.AssignmentMaintenance))

	var unit models.EquipmentUnit
	require.NoError(t, db.First(&unit, *assignment.UnitID).Error)
	assert.Equal(t, models.UnitMaintenance, unit.Status)

	var refreshed models.Equipment
	require.NoError(t, db.First(&refreshed, equipment.ID).Error)
	assert.Equal(t, 1, refreshed.Stock)
}

func TestChangeAssignmentStateRejectsUnknownState(t *testing.T) {
	db := setupTestDB(t)
	contract := seedContract(t, db, time.Now(), 12, 40)
	equipment := seedEquipment(t, db, "Router X1", 1)

	svc := NewEquipmentService(db)
	assignment, err := svc.AssignUnit(contract.ID, equipment.ID, models.AssignmentAssigned)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.ChangeAssignmentState(assignment.ID, "lost"), ErrUnsupportedState)
	assert.ErrorIs(t, svc.ChangeAssignmentState(9999, models.AssignmentReturned), ErrAssignmentNotFound)
}

func TestAvailableUnitsBackfillsFromStock(t *testing.T) {
	db := setupTestDB(t)

	// Equipment registered before unit tracking: stock counter, no unit rows.
	equipment := models.Equipment{
		Code:         "EQP-LEGACY-20240101-AAAAAA",
		Name:         "Legacy Switch",
		Stock:        2,
		Status:       models.EquipmentAvailable,
		RegisteredAt: time.Now(),
		ModifiedAt:   time.Now(),
	}
	require.NoError(t, db.Create(&equipment).Error)

	svc := NewEquipmentService(db)
	units, err := svc.AvailableUnits(equipment.ID)
	require.NoError(t, err)
	require.Len(t, units, 2)
	for _, unit := range units {
		assert.Equal(t, models.UnitAvailable, unit.Status)
	}

	_, err = svc.AvailableUnits(9999)
	assert.ErrorIs(t, err, ErrEquipmentNotFound)
}

func TestIncreaseStockRevivesDepletedEquipment(t *testing.T) {
	db := setupTestDB(t)
	equipment := seedEquipment(t, db, "Router X1", 1)

	svc := NewEquipmentService(db)
	require.NoError(t, svc.Deplete(equipment.ID))

	var depleted models.Equipment
	require.NoError(t, db.First(&depleted, equipment.ID).Error)
	assert.Equal(t, models.EquipmentDepleted, depleted.Status)
	assert.Zero(t, depleted.Stock)

	require.NoError(t, svc.IncreaseStock(equipment.ID, 2))

	var revived models.Equipment
	require.NoError(t, db.First(&revived, equipment.ID).Error)
	assert.Equal(t, models.EquipmentAvailable, revived.Status)
	assert.Equal(t, 2, revived.Stock)

	var unitCount int64
	require.NoError(t, db.Model(&models.EquipmentUnit{}).
		Where("equipment_id = ?", equipment.ID).
		Count(&unitCount).Error)
	assert.Equal(t, int64(3), unitCount)
}

func TestDecreaseStockClampsAndDepletes(t *testing.T) {
	db := setupTestDB(t)
	equipment := seedEquipment(t, db, "Router X1", 2)

	svc := NewEquipmentService(db)
	require.NoError(t, svc.DecreaseStock(equipment.ID, 10))

	var refreshed models.Equipment
	require.NoError(t, db.First(&refreshed, equipment.ID).Error)
	assert.Zero(t, refreshed.Stock)
	assert.Equal(t, models.EquipmentDepleted, refreshed.Status)
}

func TestReleaseContractUnits(t *testing.T) {
	db := setupTestDB(t)
	contract := seedContract(t, db, time.Now(), 12, 40)
	equipment := seedEquipment(t, db, "Router X1", 2)

	svc := NewEquipmentService(db)
	assignment, err := svc.AssignUnit(contract.ID, equipment.ID, models.AssignmentAssigned)
	require.NoError(t, err)

	require.NoError(t, svc.ReleaseContractUnits(contract.ID))

	var unit models.EquipmentUnit
	require.NoError(t, db.First(&unit, *assignment.UnitID).Error)
	assert.Equal(t, models.UnitAvailable, unit.Status)

	var refreshed models.Equipment
	require.NoError(t, db.First(&refreshed, equipment.ID).Error)
	assert.Equal(t, 2, refreshed.Stock)

	var count int64
	require.NoError(t, db.Model(&models.ContractEquipment{}).
		Where("contract_id = ?", contract.ID).
		Count(&count).Error)
	assert.Zero(t, count)
}
