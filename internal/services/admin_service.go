// internal/services/admin_service.go
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

type AdminService struct {
	db *gorm.DB
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

type DashboardStats struct {
	TotalApplications    int64            `json:"total_applications"`
	PendingApplications  int64            `json:"pending_applications"`
	ApprovedApplications int64            `json:"approved_applications"`
	RejectedApplications int64            `json:"rejected_applications"`
	ApplicationsByStatus map[string]int64 `json:"applications_by_status"`
	ActiveNOCs           int64            `json:"active_nocs"`
	ExpiringNOCs         int64            `json:"expiring_nocs"`
	ScheduledInspections int64            `json:"scheduled_inspections"`
	OpenGrievances       int64            `json:"open_grievances"`
	TotalUsers           int64            `json:"total_users"`
}

// GetDashboardStats aggregates the counters shown on the admin landing page.
func (s *AdminService) GetDashboardStats() (*DashboardStats, error) {
	stats := &DashboardStats{
		ApplicationsByStatus: make(map[string]int64),
	}

	if err := s.db.Model(&models.Application{}).Count(&stats.TotalApplications).Error; err != nil {
		return nil, fmt.Errorf("failed to count applications: %w", err)
	}

	type statusCount struct {
		Status string
		Count  int64
	}
	var counts []statusCount
	if err := s.db.Model(&models.Application{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&counts).Error; err != nil {
		return nil, fmt.Errorf("failed to group applications: %w", err)
	}
	for _, c := range counts {
		stats.ApplicationsByStatus[c.Status] = c.Count
		switch models.ApplicationStatus(c.Status) {
		case models.ApplicationStatusApproved:
			stats.ApprovedApplications = c.Count
		case models.ApplicationStatusRejected:
			stats.RejectedApplications = c.Count
		default:
			stats.PendingApplications += c.Count
		}
	}

	if err := s.db.Model(&models.NOC{}).
		Where("status = ?", models.NOCStatusActive).
		Count(&stats.ActiveNOCs).Error; err != nil {
		return nil, fmt.Errorf("failed to count certificates: %w", err)
	}

	if err := s.db.Model(&models.NOC{}).
		Where("status = ? AND valid_until BETWEEN ? AND ?",
			models.NOCStatusActive, time.Now(), time.Now().AddDate(0, 1, 0)).
		Count(&stats.ExpiringNOCs).Error; err != nil {
		return nil, fmt.Errorf("failed to count expiring certificates: %w", err)
	}

	if err := s.db.Model(&models.Inspection{}).
		Where("status = ?", models.InspectionStatusScheduled).
		Count(&stats.ScheduledInspections).Error; err != nil {
		return nil, fmt.Errorf("failed to count inspections: %w", err)
	}

	if err := s.db.Model(&models.Grievance{}).
		Where("status IN ?", []models.GrievanceStatus{models.GrievanceStatusSubmitted, models.GrievanceStatusUnderReview}).
		Count(&stats.OpenGrievances).Error; err != nil {
		return nil, fmt.Errorf("failed to count grievances: %w", err)
	}

	if err := s.db.Model(&models.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	return stats, nil
}

// ListUsers returns a page of accounts with their roles.
func (s *AdminService) ListUsers(params utils.PaginationParams) (*utils.PaginationResult, error) {
	query := s.db.Model(&models.User{}).Preload("Roles")
	if params.Search != "" {
		term := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(email) LIKE ? OR LOWER(full_name) LIKE ?", term, term)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	var users []models.User
	query = utils.ApplySort(query, params, []string{"created_at", "email", "full_name"})
	if err := utils.ApplyPagination(query, params).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	result := utils.CreatePaginationResult(users, total, params)
	return &result, nil
}

// AssignRole grants a role. Granting an existing role is a no-op.
func (s *AdminService) AssignRole(adminID, userID uuid.UUID, role models.AppRole) error {
	switch role {
	case models.RoleApplicant, models.RoleFireOfficer, models.RoleSeniorOfficer, models.RoleAdmin:
	default:
		return fmt.Errorf("unknown role: %s", role)
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("database error: %w", err)
	}

	var existing models.UserRole
	err := s.db.Where("user_id = ? AND role = ?", userID, role).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("database error: %w", err)
	}

	userRole := &models.UserRole{
		UserID:     userID,
		Role:       role,
		AssignedBy: &adminID,
	}
	if err := s.db.Create(userRole).Error; err != nil {
		return fmt.Errorf("failed to assign role: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"user_id":  userID,
		"role":     role,
		"admin_id": adminID,
	}).Info("Role assigned")

	return nil
}

// RevokeRole removes a role. Revocation takes effect on the next request
// because authorization reads the role rows, not the token.
func (s *AdminService) RevokeRole(adminID, userID uuid.UUID, role models.AppRole) error {
	result := s.db.Where("user_id = ? AND role = ?", userID, role).Delete(&models.UserRole{})
	if result.Error != nil {
		return fmt.Errorf("failed to revoke role: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	logrus.WithFields(logrus.Fields{
		"user_id":  userID,
		"role":     role,
		"admin_id": adminID,
	}).Info("Role revoked")

	return nil
}

// ListInspections returns the inspection schedule for staff, optionally
// filtered by status or officer.
func (s *AdminService) ListInspections(status *models.InspectionStatus, officerID *uuid.UUID, params utils.PaginationParams) (*utils.PaginationResult, error) {
	query := s.db.Model(&models.Inspection{}).Preload("Application").Preload("Building")
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	if officerID != nil {
		query = query.Where("officer_id = ?", *officerID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count inspections: %w", err)
	}

	var inspections []models.Inspection
	query = utils.ApplySort(query, params, []string{"scheduled_date", "created_at", "status"})
	if err := utils.ApplyPagination(query, params).Find(&inspections).Error; err != nil {
		return nil, fmt.Errorf("failed to list inspections: %w", err)
	}

	result := utils.CreatePaginationResult(inspections, total, params)
	return &result, nil
}
