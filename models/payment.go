package models

import "time"

// Payment states
const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
)

// PaymentMethodUnspecified is the placeholder recorded on generated payments
// until the customer checks out.
const PaymentMethodUnspecified = "unspecified"

type Payment struct {
	ID uint `gorm:"primaryKey"`

	ContractID uint     `gorm:"index;not null"`
	Contract   Contract `gorm:"foreignKey:ContractID"`

	// copied from the plan's monthly price at generation time
	Amount float64 `gorm:"type:decimal(10,2);not null"`

	Status  string    `gorm:"type:varchar(20);default:'pending'"`
	DueDate time.Time `gorm:"not null"`
	PaidAt  *time.Time
	Method  string `gorm:"type:varchar(50)"`
}
