// internal/models/grievance.go
package models

import (
	"time"

	"github.com/google/uuid"
)

type Grievance struct {
	BaseModel
	GrievanceNumber string          `json:"grievance_number" gorm:"uniqueIndex;size:30;not null"`
	Subject         string          `json:"subject" gorm:"size:255;not null"`
	Description     string          `json:"description" gorm:"type:text;not null"`
	Category        string          `json:"category" gorm:"size:50;not null"`
	Status          GrievanceStatus `json:"status" gorm:"type:varchar(20);default:'submitted';index"`
	SubmittedBy     uuid.UUID       `json:"submitted_by" gorm:"type:uuid;not null;index"`
	AssignedTo      *uuid.UUID      `json:"assigned_to" gorm:"type:uuid"`
	ApplicationID   *uuid.UUID      `json:"application_id" gorm:"type:uuid;index"`
	Priority        *int            `json:"priority"`
	Resolution      string          `json:"resolution,omitempty" gorm:"type:text"`
	ResolvedAt      *time.Time      `json:"resolved_at"`
	Feedback        string          `json:"feedback,omitempty" gorm:"type:text"`
	Rating          *int            `json:"rating"`

	// Relationships
	Submitter   User         `json:"submitter,omitempty" gorm:"foreignKey:SubmittedBy"`
	Application *Application `json:"application,omitempty" gorm:"foreignKey:ApplicationID"`
}
