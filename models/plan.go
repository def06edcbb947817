package models

// Service plan states
const (
	PlanActive   = "active"
	PlanInactive = "inactive"
)

type CoverageZone struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"not null"`
	District    string `gorm:"not null"`
	Description string

	Plans []ServicePlan `gorm:"foreignKey:ZoneID"`
}

type ServicePlan struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"uniqueIndex;not null"`
	ServiceType string `gorm:"type:varchar(50);not null"`
	SpeedMbps   *int
	Description string

	MonthlyPrice float64 `gorm:"type:decimal(10,2);not null"`
	Status       string  `gorm:"type:varchar(20);default:'active'"`

	ZoneID uint         `gorm:"index;not null"`
	Zone   CoverageZone `gorm:"foreignKey:ZoneID"`

	Contracts []Contract `gorm:"foreignKey:PlanID"`
}
