package models

import (
	"time"

	"gorm.io/gorm"
)

// Customer account states
const (
	CustomerActive   = "active"
	CustomerInactive = "inactive"
)

type Customer struct {
	Name       string `gorm:"not null"`
	NationalID string `gorm:"type:varchar(15);uniqueIndex;not null"`
	Address    string
	Email      string `gorm:"uniqueIndex;not null"`
	Phone      string

	// bcrypt hash, or a legacy plaintext value pending upgrade on next login
	Password string `gorm:"not null"`

	Status       string    `gorm:"type:varchar(20);default:'active'"`
	RegisteredAt time.Time `gorm:"default:CURRENT_TIMESTAMP"`

	Contracts []Contract `gorm:"foreignKey:CustomerID"`

	gorm.Model
}
