// internal/services/application_service.go
package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/firenoc/firenoc-backend/internal/models"
	"github.com/firenoc/firenoc-backend/internal/utils"
)

// ApplicationService drives the NOC application lifecycle from submission
// through inspection to the final decision.
type ApplicationService struct {
	db              *gorm.DB
	numbering       *NumberingService
	notifications   *NotificationService
	frontendBaseURL string
}

func NewApplicationService(db *gorm.DB, numbering *NumberingService, notifications *NotificationService, frontendBaseURL string) *ApplicationService {
	return &ApplicationService{
		db:              db,
		numbering:       numbering,
		notifications:   notifications,
		frontendBaseURL: frontendBaseURL,
	}
}

type CreateApplicationRequest struct {
	ApplicationType models.ApplicationType `json:"application_type" validate:"omitempty,oneof=new renewal amendment"`
	Purpose         string                 `json:"purpose,omitempty"`
	Documents       map[string]interface{} `json:"documents,omitempty"`
	Building        BuildingInput          `json:"building" validate:"required"`
}

type BuildingInput struct {
	Name              string                  `json:"name" validate:"required,max=255"`
	Category          models.BuildingCategory `json:"category" validate:"required"`
	Address           string                  `json:"address" validate:"required"`
	City              string                  `json:"city" validate:"required,max=100"`
	State             string                  `json:"state" validate:"required,max=100"`
	Pincode           string                  `json:"pincode" validate:"required,max=10"`
	Floors            int                     `json:"floors" validate:"required,min=1"`
	AreaSqft          int                     `json:"area_sqft" validate:"required,min=1"`
	YearBuilt         *int                    `json:"year_built,omitempty"`
	OccupancyCapacity *int                    `json:"occupancy_capacity,omitempty"`
}

type ScheduleInspectionRequest struct {
	ApplicationID uuid.UUID `json:"application_id" validate:"required"`
	ScheduledDate string    `json:"scheduled_date" validate:"required"`
	ScheduledTime string    `json:"scheduled_time" validate:"required,time_slot"`
}

type CompleteInspectionRequest struct {
	ApplicationID   uuid.UUID              `json:"application_id" validate:"required"`
	Findings        string                 `json:"findings,omitempty"`
	Recommendations string                 `json:"recommendations,omitempty"`
	OverallScore    *int                   `json:"overall_score,omitempty" validate:"omitempty,min=0,max=100"`
	ChecklistData   map[string]interface{} `json:"checklist_data,omitempty"`
	PhotoUrls       []string               `json:"photo_urls,omitempty"`
}

type DecisionRequest struct {
	ApplicationID   uuid.UUID `json:"application_id" validate:"required"`
	Decision        string    `json:"decision" validate:"required,oneof=approve reject"`
	RejectionReason string    `json:"rejection_reason,omitempty"`
}

type ApplicationSearchParams struct {
	utils.PaginationParams
	Status      *models.ApplicationStatus
	ApplicantID *uuid.UUID
}

// CreateApplication registers the building and submits the application in one
// transaction. Applications enter the workflow directly in submitted state.
func (s *ApplicationService) CreateApplication(applicantID uuid.UUID, req *CreateApplicationRequest) (*models.Application, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	appType := req.ApplicationType
	if appType == "" {
		appType = models.ApplicationTypeNew
	}

	var application *models.Application
	err := s.db.Transaction(func(tx *gorm.DB) error {
		building := &models.Building{
			Name:              req.Building.Name,
			Category:          req.Building.Category,
			Address:           req.Building.Address,
			City:              req.Building.City,
			State:             req.Building.State,
			Pincode:           req.Building.Pincode,
			Floors:            req.Building.Floors,
			AreaSqft:          req.Building.AreaSqft,
			YearBuilt:         req.Building.YearBuilt,
			OccupancyCapacity: req.Building.OccupancyCapacity,
			OwnerID:           applicantID,
		}
		if err := tx.Create(building).Error; err != nil {
			return fmt.Errorf("failed to create building: %w", err)
		}

		appNumber, err := s.numbering.NextApplicationNumber(tx)
		if err != nil {
			return err
		}

		now := time.Now()
		application = &models.Application{
			ApplicationNumber: appNumber,
			ApplicationType:   appType,
			BuildingID:        building.ID,
			ApplicantID:       applicantID,
			Status:            models.ApplicationStatusSubmitted,
			Purpose:           req.Purpose,
			Documents:         models.JSONB(req.Documents),
			SubmittedAt:       &now,
		}
		if err := tx.Create(application).Error; err != nil {
			return fmt.Errorf("failed to create application: %w", err)
		}

		application.Building = *building
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"application_id":     application.ID,
		"application_number": application.ApplicationNumber,
		"applicant_id":       applicantID,
	}).Info("Application submitted")

	return application, nil
}

// GetApplication loads one application with its building, inspection and
// certificate. Applicants can only see their own.
func (s *ApplicationService) GetApplication(id uuid.UUID, callerID uuid.UUID, isStaff bool) (*models.Application, error) {
	var application models.Application
	err := s.db.Preload("Building").Preload("Applicant").Preload("Inspection").Preload("NOC").
		First(&application, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if !isStaff && application.ApplicantID != callerID {
		return nil, ErrApplicationNotFound
	}

	return &application, nil
}

// ListApplications returns a page of applications. Applicants see their own;
// staff see everything, optionally filtered.
func (s *ApplicationService) ListApplications(callerID uuid.UUID, isStaff bool, params ApplicationSearchParams) (*utils.PaginationResult, error) {
	query := s.db.Model(&models.Application{}).Preload("Building").Preload("Inspection").Preload("NOC")

	if !isStaff {
		query = query.Where("applicant_id = ?", callerID)
	} else if params.ApplicantID != nil {
		query = query.Where("applicant_id = ?", *params.ApplicantID)
	}
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.Search != "" {
		query = query.Where("application_number LIKE ?", "%"+strings.ToUpper(params.Search)+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count applications: %w", err)
	}

	var applications []models.Application
	query = utils.ApplySort(query, params.PaginationParams, []string{"created_at", "submitted_at", "status"})
	if err := utils.ApplyPagination(query, params.PaginationParams).Find(&applications).Error; err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}

	result := utils.CreatePaginationResult(applications, total, params.PaginationParams)
	return &result, nil
}

// StartReview assigns the application to an officer and moves it to
// under_review. Safe to call only while the application is still submitted.
func (s *ApplicationService) StartReview(officerID uuid.UUID, applicationID uuid.UUID) (*models.Application, error) {
	var application models.Application
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&application, "id = ?", applicationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrApplicationNotFound
			}
			return fmt.Errorf("database error: %w", err)
		}

		if application.IsTerminal() {
			return ErrApplicationDecided
		}

		if err := tx.Model(&application).Updates(map[string]interface{}{
			"status":              models.ApplicationStatusUnderReview,
			"assigned_officer_id": officerID,
		}).Error; err != nil {
			return fmt.Errorf("failed to update application: %w", err)
		}
		application.Status = models.ApplicationStatusUnderReview
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &application, nil
}

// ScheduleInspection books (or rebooks) the visit for an application. The
// operation is an upsert keyed on the application: a second call replaces the
// existing booking instead of stacking a new one. Status moves to
// inspection_scheduled and the applicant is notified with the new date.
func (s *ApplicationService) ScheduleInspection(officerID uuid.UUID, req *ScheduleInspectionRequest) (*models.Inspection, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	scheduledDate, err := time.Parse("2006-01-02", req.ScheduledDate)
	if err != nil {
		return nil, fmt.Errorf("invalid scheduled date: %w", err)
	}

	var inspection *models.Inspection
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var application models.Application
		if err := tx.Preload("Building").Preload("Applicant").
			First(&application, "id = ?", req.ApplicationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrApplicationNotFound
			}
			return fmt.Errorf("database error: %w", err)
		}

		if application.IsTerminal() {
			return ErrApplicationDecided
		}

		var existing models.Inspection
		err := tx.Where("application_id = ?", req.ApplicationID).First(&existing).Error
		switch {
		case err == nil:
			existing.OfficerID = officerID
			existing.ScheduledDate = scheduledDate
			existing.ScheduledTime = req.ScheduledTime
			existing.Status = models.InspectionStatusScheduled
			if err := tx.Save(&existing).Error; err != nil {
				return fmt.Errorf("failed to reschedule inspection: %w", err)
			}
			inspection = &existing
		case errors.Is(err, gorm.ErrRecordNotFound):
			inspection = &models.Inspection{
				ApplicationID: application.ID,
				BuildingID:    application.BuildingID,
				OfficerID:     officerID,
				ScheduledDate: scheduledDate,
				ScheduledTime: req.ScheduledTime,
				Status:        models.InspectionStatusScheduled,
			}
			if err := tx.Create(inspection).Error; err != nil {
				return fmt.Errorf("failed to create inspection: %w", err)
			}
		default:
			return fmt.Errorf("database error: %w", err)
		}

		if err := tx.Model(&application).
			Updates(map[string]interface{}{
				"status":              models.ApplicationStatusInspectionScheduled,
				"assigned_officer_id": officerID,
			}).Error; err != nil {
			return fmt.Errorf("failed to update application status: %w", err)
		}

		return s.notifications.NotifyInspectionScheduled(tx, &application.Applicant,
			application.ApplicationNumber, req.ScheduledDate, req.ScheduledTime, application.Building.Name)
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"application_id": req.ApplicationID,
		"officer_id":     officerID,
		"scheduled_date": req.ScheduledDate,
		"scheduled_time": req.ScheduledTime,
	}).Info("Inspection scheduled")

	return inspection, nil
}

// CompleteInspection records the visit outcome. It requires a previously
// scheduled inspection; findings never attach to an application that was
// never visited. Status moves to inspection_completed.
func (s *ApplicationService) CompleteInspection(officerID uuid.UUID, req *CompleteInspectionRequest) (*models.Inspection, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var inspection *models.Inspection
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var application models.Application
		if err := tx.Preload("Applicant").First(&application, "id = ?", req.ApplicationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrApplicationNotFound
			}
			return fmt.Errorf("database error: %w", err)
		}

		if application.IsTerminal() {
			return ErrApplicationDecided
		}

		var existing models.Inspection
		if err := tx.Where("application_id = ?", req.ApplicationID).First(&existing).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInspectionNotFound
			}
			return fmt.Errorf("database error: %w", err)
		}

		now := time.Now()
		existing.OfficerID = officerID
		existing.Status = models.InspectionStatusCompleted
		existing.Findings = req.Findings
		existing.Recommendations = req.Recommendations
		existing.OverallScore = req.OverallScore
		existing.ChecklistData = models.JSONB(req.ChecklistData)
		if len(req.PhotoUrls) > 0 {
			existing.Photos = append(existing.Photos, req.PhotoUrls...)
		}
		existing.DepartureTime = &now
		if err := tx.Save(&existing).Error; err != nil {
			return fmt.Errorf("failed to complete inspection: %w", err)
		}
		inspection = &existing

		if err := tx.Model(&application).
			Update("status", models.ApplicationStatusInspectionCompleted).Error; err != nil {
			return fmt.Errorf("failed to update application status: %w", err)
		}

		if err := tx.Model(&models.Building{}).Where("id = ?", existing.BuildingID).
			Update("last_inspection_date", now).Error; err != nil {
			return fmt.Errorf("failed to update building: %w", err)
		}

		score := "N/A"
		if req.OverallScore != nil {
			score = fmt.Sprintf("%d", *req.OverallScore)
		}
		return s.notifications.NotifyInspectionCompleted(tx, &application.Applicant,
			application.ApplicationNumber, score)
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"application_id": req.ApplicationID,
		"officer_id":     officerID,
	}).Info("Inspection completed")

	return inspection, nil
}

// Decide records the final decision on an application. Approval mints the
// certificate in the same transaction that flips the status, so an approved
// application without a certificate can never be observed. A decision on an
// already decided application is rejected outright.
func (s *ApplicationService) Decide(adminID uuid.UUID, req *DecisionRequest) (*models.Application, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	switch req.Decision {
	case "approve", "reject":
	default:
		return nil, ErrInvalidDecision
	}

	reason := strings.TrimSpace(req.RejectionReason)
	if req.Decision == "reject" && reason == "" {
		return nil, ErrRejectionReasonRequired
	}

	var application models.Application
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Building").Preload("Applicant").
			First(&application, "id = ?", req.ApplicationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrApplicationNotFound
			}
			return fmt.Errorf("database error: %w", err)
		}

		if application.IsTerminal() {
			return ErrApplicationDecided
		}

		if req.Decision == "reject" {
			application.Status = models.ApplicationStatusRejected
			application.RejectionReason = reason
			if err := tx.Model(&application).Updates(map[string]interface{}{
				"status":           models.ApplicationStatusRejected,
				"rejection_reason": reason,
			}).Error; err != nil {
				return fmt.Errorf("failed to reject application: %w", err)
			}

			return s.notifications.NotifyApplicationRejected(tx, &application.Applicant,
				application.ApplicationNumber, reason)
		}

		noc, err := s.issueNOC(tx, &application, adminID)
		if err != nil {
			return err
		}

		application.Status = models.ApplicationStatusApproved
		application.RejectionReason = ""
		if err := tx.Model(&application).Updates(map[string]interface{}{
			"status":           models.ApplicationStatusApproved,
			"rejection_reason": "",
		}).Error; err != nil {
			return fmt.Errorf("failed to approve application: %w", err)
		}

		if err := tx.Model(&models.Building{}).Where("id = ?", application.BuildingID).
			Update("noc_valid_until", noc.ValidUntil).Error; err != nil {
			return fmt.Errorf("failed to update building: %w", err)
		}

		application.NOC = noc
		return s.notifications.NotifyApplicationApproved(tx, &application.Applicant,
			application.ApplicationNumber, noc.NOCNumber)
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"application_id": req.ApplicationID,
		"decision":       req.Decision,
		"admin_id":       adminID,
	}).Info("Application decided")

	return &application, nil
}

// issueNOC mints the certificate inside the approval transaction. Validity is
// one year from issue.
func (s *ApplicationService) issueNOC(tx *gorm.DB, application *models.Application, adminID uuid.UUID) (*models.NOC, error) {
	nocNumber, err := s.numbering.NextNOCNumber(tx)
	if err != nil {
		return nil, err
	}

	issuedTo := application.Applicant.FullName
	if issuedTo == "" {
		issuedTo = "Applicant"
	}

	now := time.Now()
	noc := &models.NOC{
		NOCNumber:     nocNumber,
		ApplicationID: application.ID,
		BuildingID:    application.BuildingID,
		IssuedBy:      adminID,
		IssuedTo:      issuedTo,
		IssueDate:     now,
		ValidFrom:     now,
		ValidUntil:    now.AddDate(1, 0, 0),
		Status:        models.NOCStatusActive,
		QRCodeData:    s.frontendBaseURL + "/verify/" + nocNumber,
	}

	if err := tx.Create(noc).Error; err != nil {
		return nil, fmt.Errorf("failed to issue certificate: %w", err)
	}

	return noc, nil
}

// MarkRequiresCompliance is the administrative override for applications that
// failed inspection but can remediate instead of being rejected.
func (s *ApplicationService) MarkRequiresCompliance(adminID uuid.UUID, applicationID uuid.UUID, notes string) (*models.Application, error) {
	var application models.Application
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Applicant").First(&application, "id = ?", applicationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrApplicationNotFound
			}
			return fmt.Errorf("database error: %w", err)
		}

		if application.IsTerminal() {
			return ErrApplicationDecided
		}

		updates := map[string]interface{}{
			"status": models.ApplicationStatusRequiresCompliance,
		}
		if notes != "" {
			updates["notes"] = notes
		}
		if err := tx.Model(&application).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update application: %w", err)
		}
		application.Status = models.ApplicationStatusRequiresCompliance

		message := fmt.Sprintf("Your application %s requires compliance remediation before a decision can be made.",
			application.ApplicationNumber)
		_, err := s.notifications.Create(tx, application.ApplicantID, "Compliance Required",
			message, models.NotificationTypeWarning, "/applications")
		return err
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"application_id": applicationID,
		"admin_id":       adminID,
	}).Info("Application marked requires_compliance")

	return &application, nil
}
