// internal/models/common.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// JSONB type for PostgreSQL
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, j)
	case string:
		return json.Unmarshal([]byte(v), j)
	default:
		return fmt.Errorf("unsupported type for JSONB: %T", value)
	}
}

// StringSlice stores an ordered list of strings (photo URLs, NOC conditions)
// as a JSON array column.
type StringSlice []string

func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal([]string(s))
}

func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("unsupported type for StringSlice: %T", value)
	}
}

// Enums
type AppRole string

const (
	RoleApplicant     AppRole = "applicant"
	RoleFireOfficer   AppRole = "fire_officer"
	RoleSeniorOfficer AppRole = "senior_officer"
	RoleAdmin         AppRole = "admin"
)

// StaffRoles are the roles allowed to schedule and complete inspections.
// The final decision is gated on RoleAdmin alone.
var StaffRoles = []AppRole{RoleFireOfficer, RoleSeniorOfficer, RoleAdmin}

type ApplicationStatus string

const (
	ApplicationStatusDraft               ApplicationStatus = "draft"
	ApplicationStatusSubmitted           ApplicationStatus = "submitted"
	ApplicationStatusUnderReview         ApplicationStatus = "under_review"
	ApplicationStatusInspectionScheduled ApplicationStatus = "inspection_scheduled"
	ApplicationStatusInspectionCompleted ApplicationStatus = "inspection_completed"
	ApplicationStatusApproved            ApplicationStatus = "approved"
	ApplicationStatusRejected            ApplicationStatus = "rejected"
	ApplicationStatusRequiresCompliance  ApplicationStatus = "requires_compliance"
)

type ApplicationType string

const (
	ApplicationTypeNew       ApplicationType = "new"
	ApplicationTypeRenewal   ApplicationType = "renewal"
	ApplicationTypeAmendment ApplicationType = "amendment"
)

type BuildingCategory string

const (
	BuildingCategoryResidential BuildingCategory = "residential"
	BuildingCategoryCommercial  BuildingCategory = "commercial"
	BuildingCategoryHospital    BuildingCategory = "hospital"
	BuildingCategorySchool      BuildingCategory = "school"
	BuildingCategoryFactory     BuildingCategory = "factory"
	BuildingCategoryMall        BuildingCategory = "mall"
	BuildingCategoryHotel       BuildingCategory = "hotel"
	BuildingCategoryWarehouse   BuildingCategory = "warehouse"
	BuildingCategoryOffice      BuildingCategory = "office"
	BuildingCategoryMixedUse    BuildingCategory = "mixed_use"
	BuildingCategoryOther       BuildingCategory = "other"
)

type InspectionStatus string

const (
	InspectionStatusScheduled   InspectionStatus = "scheduled"
	InspectionStatusInProgress  InspectionStatus = "in_progress"
	InspectionStatusCompleted   InspectionStatus = "completed"
	InspectionStatusCancelled   InspectionStatus = "cancelled"
	InspectionStatusRescheduled InspectionStatus = "rescheduled"
)

type RiskLevel string

const (
	RiskLevelLow      RiskLevel = "low"
	RiskLevelMedium   RiskLevel = "medium"
	RiskLevelHigh     RiskLevel = "high"
	RiskLevelCritical RiskLevel = "critical"
)

type NOCStatus string

const (
	NOCStatusActive  NOCStatus = "active"
	NOCStatusRevoked NOCStatus = "revoked"
)

type GrievanceStatus string

const (
	GrievanceStatusSubmitted   GrievanceStatus = "submitted"
	GrievanceStatusUnderReview GrievanceStatus = "under_review"
	GrievanceStatusResolved    GrievanceStatus = "resolved"
	GrievanceStatusClosed      GrievanceStatus = "closed"
)

type NotificationType string

const (
	NotificationTypeInfo    NotificationType = "info"
	NotificationTypeSuccess NotificationType = "success"
	NotificationTypeWarning NotificationType = "warning"
	NotificationTypeError   NotificationType = "error"
)
