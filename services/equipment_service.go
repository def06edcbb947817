// services/equipment_service.go
package services

import (
	"errors"
	"strings"
	"time"

	"ispnet-backend/models"
	"ispnet-backend/utils"

	"gorm.io/gorm"
)

var (
	ErrNoUnitsAvailable   = errors.New("no units available for the selected equipment")
	ErrUnitMismatch       = errors.New("the selected unit does not belong to the indicated equipment")
	ErrUnitUnavailable    = errors.New("the selected unit is not available")
	ErrUnsupportedState   = errors.New("unsupported assignment state")
	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrEquipmentNotFound  = errors.New("equipment not found")
)

// EquipmentService tracks which physical units belong to which contract and
// keeps the catalog stock counter consistent with unit states: a unit
// leaving "available" decrements stock, a returned unit restores it.
type EquipmentService struct {
	db *gorm.DB
}

func NewEquipmentService(db *gorm.DB) *EquipmentService {
	return &EquipmentService{db: db}
}

// AssignUnit picks the first available unit of the catalog entry (by unit
// ID), flips it to assigned, decrements stock and records the assignment.
func (s *EquipmentService) AssignUnit(contractID, equipmentID uint, state string) (*models.ContractEquipment, error) {
	var assignment models.ContractEquipment
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var unit models.EquipmentUnit
		err := tx.Where("equipment_id = ? AND status = ?", equipmentID, models.UnitAvailable).
			Order("id").
			First(&unit).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoUnitsAvailable
		}
		if err != nil {
			return err
		}

		if err := s.takeUnit(tx, &unit); err != nil {
			return err
		}

		assignment = models.ContractEquipment{
			ContractID:  contractID,
			EquipmentID: equipmentID,
			UnitID:      &unit.ID,
			AssignedAt:  time.Now(),
			Status:      state,
		}
		return tx.Create(&assignment).Error
	})
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

// AssignSpecificUnit assigns one concrete unit, validating it belongs to the
// equipment and is available. When the contract already reserved the catalog
// entry without a unit, that assignment row is completed instead of adding
// a second one.
func (s *EquipmentService) AssignSpecificUnit(contractID, equipmentID, unitID uint, state string) (*models.ContractEquipment, error) {
	var assignment models.ContractEquipment
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var unit models.EquipmentUnit
		err := tx.First(&unit, unitID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && unit.EquipmentID != equipmentID) {
			return ErrUnitMismatch
		}
		if err != nil {
			return err
		}
		if !strings.EqualFold(unit.Status, models.UnitAvailable) {
			return ErrUnitUnavailable
		}

		if err := s.takeUnit(tx, &unit); err != nil {
			return err
		}

		// Reuse the contract's unit-less reservation for this equipment
		err = tx.Where("contract_id = ? AND equipment_id = ? AND unit_id IS NULL", contractID, equipmentID).
			Order("assigned_at").
			First(&assignment).Error
		if err == nil {
			assignment.UnitID = &unit.ID
			assignment.AssignedAt = time.Now()
			assignment.Status = state
			return tx.Save(&assignment).Error
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		assignment = models.ContractEquipment{
			ContractID:  contractID,
			EquipmentID: equipmentID,
			UnitID:      &unit.ID,
			AssignedAt:  time.Now(),
			Status:      state,
		}
		return tx.Create(&assignment).Error
	})
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

// takeUnit marks a unit assigned and decrements its catalog stock.
func (s *EquipmentService) takeUnit(tx *gorm.DB, unit *models.EquipmentUnit) error {
	unit.Status = models.UnitAssigned
	unit.ModifiedAt = time.Now()
	if err := tx.Save(unit).Error; err != nil {
		return err
	}

	var equipment models.Equipment
	if err := tx.First(&equipment, unit.EquipmentID).Error; err != nil {
		return err
	}
	if equipment.Stock > 0 {
		equipment.Stock--
		equipment.ModifiedAt = time.Now()
		if err := tx.Save(&equipment).Error; err != nil {
			return err
		}
	}
	return nil
}

// ChangeAssignmentState drives the assignment lifecycle: returned frees the
// unit and restores stock, maintenance parks the unit without touching
// stock, assigned/delivered keep the unit in the customer's hands.
func (s *EquipmentService) ChangeAssignmentState(assignmentID uint, newState string) error {
	newState = strings.ToLower(strings.TrimSpace(newState))

	return s.db.Transaction(func(tx *gorm.DB) error {
		var assignment models.ContractEquipment
		err := tx.First(&assignment, assignmentID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssignmentNotFound
		}
		if err != nil {
			return err
		}

		var unit *models.EquipmentUnit
		if assignment.UnitID != nil {
			var u models.EquipmentUnit
			if err := tx.First(&u, *assignment.UnitID).Error; err == nil {
				unit = &u
			}
		}

		switch newState {
		case models.AssignmentReturned:
			if unit != nil {
				unit.Status = models.UnitAvailable
				unit.ModifiedAt = time.Now()
				if err := tx.Save(unit).Error; err != nil {
					return err
				}
			}
			var equipment models.Equipment
			if err := tx.First(&equipment, assignment.EquipmentID).Error; err == nil {
				equipment.Stock++
				equipment.ModifiedAt = time.Now()
				if err := tx.Save(&equipment).Error; err != nil {
					return err
				}
			}
			assignment.Status = models.AssignmentReturned

		case models.AssignmentMaintenance:
			if unit != nil {
				unit.Status = models.UnitMaintenance
				unit.ModifiedAt = time.Now()
				if err := tx.Save(unit).Error; err != nil {
					return err
				}
			}
			assignment.Status = models.AssignmentMaintenance

		case models.AssignmentAssigned, models.AssignmentDelivered:
			if unit != nil {
				unit.Status = models.UnitAssigned
				unit.ModifiedAt = time.Now()
				if err := tx.Save(unit).Error; err != nil {
					return err
				}
			}
			assignment.Status = newState

		default:
			return ErrUnsupportedState
		}

		return tx.Save(&assignment).Error
	})
}

// AvailableUnits lists a catalog entry's free units, backfilling unit rows
// from the stock counter for equipment registered before unit tracking.
func (s *EquipmentService) AvailableUnits(equipmentID uint) ([]models.EquipmentUnit, error) {
	var equipment models.Equipment
	err := s.db.First(&equipment, equipmentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEquipmentNotFound
	}
	if err != nil {
		return nil, err
	}

	var total int64
	if err := s.db.Model(&models.EquipmentUnit{}).
		Where("equipment_id = ?", equipmentID).
		Count(&total).Error; err != nil {
		return nil, err
	}
	if total == 0 && equipment.Stock > 0 {
		if err := s.createUnits(&equipment, equipment.Stock, 0); err != nil {
			return nil, err
		}
	}

	var units []models.EquipmentUnit
	err = s.db.Where("equipment_id = ? AND status = ?", equipmentID, models.UnitAvailable).
		Order("id").
		Find(&units).Error
	return units, err
}

// IncreaseStock adds units to the catalog entry, reviving depleted or
// pending equipment, and creates matching unit rows.
func (s *EquipmentService) IncreaseStock(equipmentID uint, quantity int) error {
	var equipment models.Equipment
	err := s.db.First(&equipment, equipmentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrEquipmentNotFound
	}
	if err != nil {
		return err
	}

	equipment.Stock += quantity
	if (equipment.Status == models.EquipmentDepleted || equipment.Status == models.EquipmentPending) && equipment.Stock > 0 {
		equipment.Status = models.EquipmentAvailable
	}
	equipment.ModifiedAt = time.Now()
	if err := s.db.Save(&equipment).Error; err != nil {
		return err
	}

	var existing int64
	if err := s.db.Model(&models.EquipmentUnit{}).
		Where("equipment_id = ?", equipmentID).
		Count(&existing).Error; err != nil {
		return err
	}
	return s.createUnits(&equipment, quantity, int(existing))
}

// DecreaseStock removes available units from the catalog entry, marking it
// depleted when the counter reaches zero.
func (s *EquipmentService) DecreaseStock(equipmentID uint, quantity int) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var equipment models.Equipment
		err := tx.First(&equipment, equipmentID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEquipmentNotFound
		}
		if err != nil {
			return err
		}

		if quantity > equipment.Stock {
			quantity = equipment.Stock
		}
		equipment.Stock -= quantity
		if equipment.Stock == 0 {
			equipment.Status = models.EquipmentDepleted
		}
		equipment.ModifiedAt = time.Now()
		return tx.Save(&equipment).Error
	})
}

// Deplete zeroes the stock counter and marks the catalog entry depleted.
func (s *EquipmentService) Deplete(equipmentID uint) error {
	var equipment models.Equipment
	err := s.db.First(&equipment, equipmentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrEquipmentNotFound
	}
	if err != nil {
		return err
	}

	equipment.Stock = 0
	equipment.Status = models.EquipmentDepleted
	equipment.ModifiedAt = time.Now()
	return s.db.Save(&equipment).Error
}

// ReleaseContractUnits frees every unit assigned to a contract (restoring
// stock) and deletes the assignment rows. Used when a contract is removed.
func (s *EquipmentService) ReleaseContractUnits(contractID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var assignments []models.ContractEquipment
		if err := tx.Where("contract_id = ?", contractID).Find(&assignments).Error; err != nil {
			return err
		}

		for _, assignment := range assignments {
			if assignment.UnitID == nil {
				continue
			}
			var unit models.EquipmentUnit
			if err := tx.First(&unit, *assignment.UnitID).Error; err == nil {
				unit.Status = models.UnitAvailable
				unit.ModifiedAt = time.Now()
				if err := tx.Save(&unit).Error; err != nil {
					return err
				}
			}
			var equipment models.Equipment
			if err := tx.First(&equipment, assignment.EquipmentID).Error; err == nil {
				equipment.Stock++
				equipment.ModifiedAt = time.Now()
				if err := tx.Save(&equipment).Error; err != nil {
					return err
				}
			}
		}

		return tx.Where("contract_id = ?", contractID).Delete(&models.ContractEquipment{}).Error
	})
}

// CreateCatalogEntry registers new equipment, generating its code and one
// unit row per stock item.
func (s *EquipmentService) CreateCatalogEntry(equipment *models.Equipment) error {
	now := time.Now()
	if equipment.Code == "" {
		equipment.Code = utils.GenerateEquipmentCode(equipment.Name, now)
	}
	if equipment.Status == "" {
		equipment.Status = models.EquipmentAvailable
	}
	equipment.RegisteredAt = now
	equipment.ModifiedAt = now

	if err := s.db.Create(equipment).Error; err != nil {
		return err
	}
	return s.createUnits(equipment, equipment.Stock, 0)
}

// createUnits appends count unit rows, numbering codes after the existing ones.
func (s *EquipmentService) createUnits(equipment *models.Equipment, count, offset int) error {
	now := time.Now()
	for i := 1; i <= count; i++ {
		unit := models.EquipmentUnit{
			EquipmentID:  equipment.ID,
			Code:         utils.GenerateUnitCode(equipment.Name, equipment.RegisteredAt, offset+i),
			Status:       models.UnitAvailable,
			RegisteredAt: now,
			ModifiedAt:   now,
		}
		if err := s.db.Create(&unit).Error; err != nil {
			return err
		}
	}
	return nil
}
