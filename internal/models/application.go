// internal/models/application.go
package models

import (
	"time"

	"github.com/google/uuid"
)

type Application struct {
	BaseModel
	ApplicationNumber string            `json:"application_number" gorm:"uniqueIndex;size:30;not null"`
	ApplicationType   ApplicationType   `json:"application_type" gorm:"type:varchar(20);default:'new';not null"`
	BuildingID        uuid.UUID         `json:"building_id" gorm:"type:uuid;not null;index"`
	ApplicantID       uuid.UUID         `json:"applicant_id" gorm:"type:uuid;not null;index"`
	AssignedOfficerID *uuid.UUID        `json:"assigned_officer_id" gorm:"type:uuid"`
	Status            ApplicationStatus `json:"status" gorm:"type:varchar(30);default:'draft';index"`
	Purpose           string            `json:"purpose,omitempty" gorm:"type:text"`
	Notes             string            `json:"notes,omitempty" gorm:"type:text"`
	Priority          *int              `json:"priority"`
	Documents         JSONB             `json:"documents,omitempty" gorm:"type:jsonb"`
	RejectionReason   string            `json:"rejection_reason,omitempty" gorm:"type:text"`
	SubmittedAt       *time.Time        `json:"submitted_at"`

	// Relationships
	Building        Building    `json:"building,omitempty" gorm:"foreignKey:BuildingID"`
	Applicant       User        `json:"applicant,omitempty" gorm:"foreignKey:ApplicantID"`
	AssignedOfficer *User       `json:"assigned_officer,omitempty" gorm:"foreignKey:AssignedOfficerID"`
	Inspection      *Inspection `json:"inspection,omitempty" gorm:"foreignKey:ApplicationID"`
	NOC             *NOC        `json:"noc,omitempty" gorm:"foreignKey:ApplicationID"`
}

// IsTerminal reports whether the application has reached a final decision.
func (a *Application) IsTerminal() bool {
	return a.Status == ApplicationStatusApproved || a.Status == ApplicationStatusRejected
}
