// internal/models/building.go
package models

import (
	"time"

	"github.com/google/uuid"
)

type Building struct {
	BaseModel
	Name               string           `json:"name" gorm:"size:255;not null"`
	Category           BuildingCategory `json:"category" gorm:"type:varchar(20);not null;index"`
	Address            string           `json:"address" gorm:"type:text;not null"`
	City               string           `json:"city" gorm:"size:100;not null"`
	State              string           `json:"state" gorm:"size:100;not null"`
	Pincode            string           `json:"pincode" gorm:"size:10;not null"`
	Floors             int              `json:"floors" gorm:"not null;default:1"`
	AreaSqft           int              `json:"area_sqft" gorm:"not null"`
	YearBuilt          *int             `json:"year_built"`
	OccupancyCapacity  *int             `json:"occupancy_capacity"`
	OwnerID            uuid.UUID        `json:"owner_id" gorm:"type:uuid;not null;index"`
	RiskScore          *float64         `json:"risk_score"`
	RiskLevel          *RiskLevel       `json:"risk_level" gorm:"type:varchar(10)"`
	Latitude           *float64         `json:"latitude"`
	Longitude          *float64         `json:"longitude"`
	NOCValidUntil      *time.Time       `json:"noc_valid_until" gorm:"type:date"`
	LastInspectionDate *time.Time       `json:"last_inspection_date" gorm:"type:date"`

	// Relationships
	Owner User `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
}
