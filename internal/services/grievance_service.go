// internal/services/grievance_service.go
package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/firenoc/firenoc-backend/internal/models"
	"github.com/firenoc/firenoc-backend/internal/utils"
)

type GrievanceService struct {
	db            *gorm.DB
	numbering     *NumberingService
	notifications *NotificationService
}

func NewGrievanceService(db *gorm.DB, numbering *NumberingService, notifications *NotificationService) *GrievanceService {
	return &GrievanceService{db: db, numbering: numbering, notifications: notifications}
}

type CreateGrievanceRequest struct {
	Subject           string `json:"subject" validate:"required,max=255"`
	Description       string `json:"description" validate:"required"`
	Category          string `json:"category" validate:"required,max=50"`
	ApplicationNumber string `json:"application_number,omitempty"`
}

type ResolveGrievanceRequest struct {
	GrievanceID uuid.UUID `json:"grievance_id" validate:"required"`
	Resolution  string    `json:"resolution" validate:"required"`
}

// CreateGrievance files a complaint, optionally linked to an application by
// its public number.
func (s *GrievanceService) CreateGrievance(userID uuid.UUID, req *CreateGrievanceRequest) (*models.Grievance, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var grievance *models.Grievance
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var applicationID *uuid.UUID
		if req.ApplicationNumber != "" {
			normalized := strings.ToUpper(strings.TrimSpace(req.ApplicationNumber))
			var application models.Application
			err := tx.Where("application_number = ?", normalized).First(&application).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrApplicationNotFound
				}
				return fmt.Errorf("database error: %w", err)
			}
			if application.ApplicantID != userID {
				return ErrApplicationNotFound
			}
			applicationID = &application.ID
		}

		number, err := s.numbering.NextGrievanceNumber(tx)
		if err != nil {
			return err
		}

		grievance = &models.Grievance{
			GrievanceNumber: number,
			Subject:         req.Subject,
			Description:     req.Description,
			Category:        req.Category,
			Status:          models.GrievanceStatusSubmitted,
			SubmittedBy:     userID,
			ApplicationID:   applicationID,
		}
		if err := tx.Create(grievance).Error; err != nil {
			return fmt.Errorf("failed to create grievance: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return grievance, nil
}

// ListGrievances returns the caller's grievances, or all of them for staff.
func (s *GrievanceService) ListGrievances(callerID uuid.UUID, isStaff bool, params utils.PaginationParams) (*utils.PaginationResult, error) {
	query := s.db.Model(&models.Grievance{})
	if !isStaff {
		query = query.Where("submitted_by = ?", callerID)
	}
	if params.Search != "" {
		query = query.Where("grievance_number LIKE ?", "%"+strings.ToUpper(params.Search)+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count grievances: %w", err)
	}

	var grievances []models.Grievance
	query = utils.ApplySort(query, params, []string{"created_at", "status"})
	if err := utils.ApplyPagination(query, params).Find(&grievances).Error; err != nil {
		return nil, fmt.Errorf("failed to list grievances: %w", err)
	}

	result := utils.CreatePaginationResult(grievances, total, params)
	return &result, nil
}

// Resolve closes out a grievance with the staff member's resolution text and
// notifies the submitter.
func (s *GrievanceService) Resolve(staffID uuid.UUID, req *ResolveGrievanceRequest) (*models.Grievance, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var grievance models.Grievance
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&grievance, "id = ?", req.GrievanceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrGrievanceNotFound
			}
			return fmt.Errorf("database error: %w", err)
		}

		now := time.Now()
		if err := tx.Model(&grievance).Updates(map[string]interface{}{
			"status":      models.GrievanceStatusResolved,
			"resolution":  req.Resolution,
			"resolved_at": now,
			"assigned_to": staffID,
		}).Error; err != nil {
			return fmt.Errorf("failed to resolve grievance: %w", err)
		}
		grievance.Status = models.GrievanceStatusResolved
		grievance.Resolution = req.Resolution
		grievance.ResolvedAt = &now

		message := fmt.Sprintf("Your grievance %s has been resolved: %s", grievance.GrievanceNumber, req.Resolution)
		_, err := s.notifications.Create(tx, grievance.SubmittedBy, "Grievance Resolved",
			message, models.NotificationTypeSuccess, "/grievances")
		return err
	})
	if err != nil {
		return nil, err
	}

	return &grievance, nil
}

// SubmitFeedback records the submitter's rating after resolution.
func (s *GrievanceService) SubmitFeedback(userID, grievanceID uuid.UUID, rating int, feedback string) (*models.Grievance, error) {
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("rating must be between 1 and 5")
	}

	var grievance models.Grievance
	if err := s.db.Where("id = ? AND submitted_by = ?", grievanceID, userID).First(&grievance).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGrievanceNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if err := s.db.Model(&grievance).Updates(map[string]interface{}{
		"rating":   rating,
		"feedback": feedback,
	}).Error; err != nil {
		return nil, fmt.Errorf("failed to save feedback: %w", err)
	}
	grievance.Rating = &rating
	grievance.Feedback = feedback

	return &grievance, nil
}
