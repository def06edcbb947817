package models

import "time"

// Equipment catalog states
const (
	EquipmentAvailable = "available"
	EquipmentDepleted  = "depleted"
	EquipmentPending   = "pending"
)

// Equipment unit states
const (
	UnitAvailable   = "available"
	UnitAssigned    = "assigned"
	UnitDelivered   = "delivered"
	UnitMaintenance = "maintenance"
	UnitReturned    = "returned"
)

// Equipment is a catalog entry; physical instances are EquipmentUnit rows.
// Stock counts the units currently available for assignment.
type Equipment struct {
	ID          uint   `gorm:"primaryKey"`
	Code        string `gorm:"type:varchar(50);uniqueIndex;not null"`
	Name        string `gorm:"type:varchar(100);not null"`
	Description string `gorm:"type:varchar(255)"`

	Stock  int
	Status string `gorm:"type:varchar(20);default:'available'"`

	RegisteredAt time.Time `gorm:"default:CURRENT_TIMESTAMP"`
	ModifiedAt   time.Time `gorm:"default:CURRENT_TIMESTAMP"`

	Units       []EquipmentUnit     `gorm:"foreignKey:EquipmentID"`
	Assignments []ContractEquipment `gorm:"foreignKey:EquipmentID"`
}

type EquipmentUnit struct {
	ID uint `gorm:"primaryKey"`

	EquipmentID uint      `gorm:"index;not null"`
	Equipment   Equipment `gorm:"foreignKey:EquipmentID"`

	Code   string `gorm:"type:varchar(60);uniqueIndex;not null"`
	Status string `gorm:"type:varchar(20);default:'available'"`

	RegisteredAt time.Time `gorm:"default:CURRENT_TIMESTAMP"`
	ModifiedAt   time.Time `gorm:"default:CURRENT_TIMESTAMP"`
}
