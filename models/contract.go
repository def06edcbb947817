package models

import (
	"time"

	"gorm.io/gorm"
)

// Contract states
const (
	ContractActive   = "active"
	ContractInactive = "inactive"
)

type Contract struct {
	CustomerID uint     `gorm:"index;not null"`
	Customer   Customer `gorm:"foreignKey:CustomerID"`

	PlanID uint        `gorm:"index;not null"`
	Plan   ServicePlan `gorm:"foreignKey:PlanID"`

	// Employee who registered the contract
	EmployeeID uint     `gorm:"index;not null"`
	Employee   Employee `gorm:"foreignKey:EmployeeID"`

	ContractDate time.Time `gorm:"default:CURRENT_TIMESTAMP"`
	StartDate    time.Time `gorm:"not null"`
	// EndDate is derived: StartDate + duration in months
	EndDate time.Time

	Status string `gorm:"type:varchar(20);default:'active'"`

	Equipments []ContractEquipment `gorm:"foreignKey:ContractID"`
	Payments   []Payment           `gorm:"foreignKey:ContractID"`

	gorm.Model
}
