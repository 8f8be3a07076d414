// internal/models/noc.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// NOC is the No-Objection Certificate issued for an approved application.
// Exactly one exists per approved application.
type NOC struct {
	BaseModel
	NOCNumber        string      `json:"noc_number" gorm:"uniqueIndex;size:30;not null"`
	ApplicationID    uuid.UUID   `json:"application_id" gorm:"type:uuid;not null;uniqueIndex"`
	BuildingID       uuid.UUID   `json:"building_id" gorm:"type:uuid;not null;index"`
	IssuedBy         uuid.UUID   `json:"issued_by" gorm:"type:uuid;not null"`
	IssuedTo         string      `json:"issued_to" gorm:"size:255;not null"`
	IssueDate        time.Time   `json:"issue_date" gorm:"type:date;not null"`
	ValidFrom        time.Time   `json:"valid_from" gorm:"type:date;not null"`
	ValidUntil       time.Time   `json:"valid_until" gorm:"type:date;not null"`
	Status           NOCStatus   `json:"status" gorm:"type:varchar(20);default:'active';index"`
	Conditions       StringSlice `json:"conditions" gorm:"type:jsonb"`
	QRCodeData       string      `json:"qr_code_data" gorm:"type:text"`
	RevocationReason string      `json:"revocation_reason,omitempty" gorm:"type:text"`
	RevokedAt        *time.Time  `json:"revoked_at"`

	// Relationships
	Application Application `json:"application,omitempty" gorm:"foreignKey:ApplicationID"`
	Building    Building    `json:"building,omitempty" gorm:"foreignKey:BuildingID"`
	Issuer      User        `json:"issuer,omitempty" gorm:"foreignKey:IssuedBy"`
}
