package models

import "time"

// Assignment states mirror the unit lifecycle plus the initial "active"
// placeholder used when a contract reserves a catalog entry without a unit.
const (
	AssignmentActive      = "active"
	AssignmentAssigned    = "assigned"
	AssignmentDelivered   = "delivered"
	AssignmentMaintenance = "maintenance"
	AssignmentReturned    = "returned"
)

// ContractEquipment links a contract to an equipment catalog entry and,
// once installation picks one, a specific physical unit.
type ContractEquipment struct {
	ID uint `gorm:"primaryKey"`

	ContractID uint     `gorm:"index;not null"`
	Contract   Contract `gorm:"foreignKey:ContractID"`

	EquipmentID uint      `gorm:"index;not null"`
	Equipment   Equipment `gorm:"foreignKey:EquipmentID"`

	UnitID *uint          `gorm:"index"`
	Unit   *EquipmentUnit `gorm:"foreignKey:UnitID"`

	AssignedAt time.Time `gorm:"default:CURRENT_TIMESTAMP"`
	Status     string    `gorm:"type:varchar(20);default:'active'"`
}
