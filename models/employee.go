package models

import (
	"time"

	"gorm.io/gorm"
)

// Employee account states
const (
	EmployeeActive   = "active"
	EmployeeDisabled = "disabled"
	EmployeePending  = "pending"
)

type Position struct {
	ID    uint   `gorm:"primaryKey"`
	Title string `gorm:"not null;uniqueIndex"`

	Employees []Employee `gorm:"foreignKey:PositionID"`
}

type Employee struct {
	PositionID uint     `gorm:"index;not null"`
	Position   Position `gorm:"foreignKey:PositionID"`

	Name       string `gorm:"not null"`
	NationalID string `gorm:"type:varchar(15);uniqueIndex;not null"`
	Phone      string
	Email      string `gorm:"uniqueIndex;not null"`
	Password   string `gorm:"not null"`

	Status    string `gorm:"type:varchar(20);default:'active'"`
	StartDate *time.Time
	EndDate   *time.Time

	gorm.Model
}
