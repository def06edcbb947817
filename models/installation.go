package models

import (
	"time"

	"gorm.io/gorm"
)

// Installation order states
const (
	InstallationPending    = "pending"
	InstallationInProgress = "in progress"
	InstallationCompleted  = "completed"
	InstallationCancelled  = "cancelled"
)

type InstallationOrder struct {
	ContractID uint     `gorm:"index;not null"`
	Contract   Contract `gorm:"foreignKey:ContractID"`

	// Technician assigned to perform the installation
	EmployeeID uint     `gorm:"index;not null"`
	Employee   Employee `gorm:"foreignKey:EmployeeID"`

	InstallDate *time.Time
	Status      string `gorm:"type:varchar(30);default:'pending'"`

	// Position title of whoever registered the order
	Supervisor string `gorm:"type:varchar(100)"`
	Notes      string

	gorm.Model
}
