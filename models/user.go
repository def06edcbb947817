package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"ispnet-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IdentityUser is the generic identity store, the last login fallback after
// the customer and employee tables. Staff tooling accounts live here.
type IdentityUser struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key"`
	Username string    `gorm:"uniqueIndex;not null"`
	Email    string    `gorm:"uniqueIndex;not null"`
	Password string    `gorm:"not null"`

	IsActive         bool `gorm:"default:true"`
	LockedOut        bool `gorm:"default:false"`
	TwoFactorEnabled bool `gorm:"default:false"`

	Metadata JSONB `gorm:"type:jsonb;default:'{}'"`

	LastLogin *time.Time

	gorm.Model
}

// Initialize UUID and hash the credential before creating
func (u *IdentityUser) BeforeCreate(tx *gorm.DB) (err error) {
	u.ID = uuid.New()
	hashed, err := utils.HashPassword(u.Password)
	if err != nil {
		return err
	}
	u.Password = hashed
	return
}

// Custom JSONB type for identity metadata
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, &j)
	case string:
		return json.Unmarshal([]byte(v), &j)
	default:
		return errors.New("unsupported JSONB source type")
	}
}
