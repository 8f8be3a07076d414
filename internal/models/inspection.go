// internal/models/inspection.go
package models

import (
	"time"

	"github.com/google/uuid"
)

type Inspection struct {
	BaseModel
	ApplicationID   uuid.UUID        `json:"application_id" gorm:"type:uuid;not null;index"`
	BuildingID      uuid.UUID        `json:"building_id" gorm:"type:uuid;not null;index"`
	OfficerID       uuid.UUID        `json:"officer_id" gorm:"type:uuid;not null;index"`
	ScheduledDate   time.Time        `json:"scheduled_date" gorm:"type:date;not null"`
	ScheduledTime   string           `json:"scheduled_time" gorm:"size:20"`
	Status          InspectionStatus `json:"status" gorm:"type:varchar(20);default:'scheduled';index"`
	Findings        string           `json:"findings,omitempty" gorm:"type:text"`
	Recommendations string           `json:"recommendations,omitempty" gorm:"type:text"`
	OverallScore    *int             `json:"overall_score"`
	Photos          StringSlice      `json:"photos" gorm:"type:jsonb"`
	ChecklistData   JSONB            `json:"checklist_data,omitempty" gorm:"type:jsonb"`
	ArrivalTime     *time.Time       `json:"arrival_time"`
	DepartureTime   *time.Time       `json:"departure_time"`

	// Relationships
	Application Application `json:"application,omitempty" gorm:"foreignKey:ApplicationID"`
	Building    Building    `json:"building,omitempty" gorm:"foreignKey:BuildingID"`
	Officer     User        `json:"officer,omitempty" gorm:"foreignKey:OfficerID"`
}

// TimeSlots is the fixed set of daily appointment windows offered for
// inspection scheduling.
var TimeSlots = []string{
	"09:00 AM",
	"10:00 AM",
	"11:00 AM",
	"12:00 PM",
	"01:00 PM",
	"02:00 PM",
	"03:00 PM",
	"04:00 PM",
	"05:00 PM",
}

// IsValidTimeSlot reports whether slot is one of the offered windows.
func IsValidTimeSlot(slot string) bool {
	for _, s := range TimeSlots {
		if s == slot {
			return true
		}
	}
	return false
}
