// internal/services/user_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/firenoc/firenoc-backend/internal/models"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// deletableStatuses are the application states a user may take with them when
// closing the account. Approved applications stay behind because the issued
// certificate must remain publicly verifiable.
var deletableStatuses = []models.ApplicationStatus{
	models.ApplicationStatusDraft,
	models.ApplicationStatusSubmitted,
	models.ApplicationStatusUnderReview,
	models.ApplicationStatusInspectionScheduled,
	models.ApplicationStatusRejected,
}

// DeleteAccount removes the user and their undecided data in one transaction.
// Dependent rows go first so foreign keys never dangle mid-delete.
func (s *UserService) DeleteAccount(userID uuid.UUID) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return fmt.Errorf("database error: %w", err)
		}

		var applicationIDs []uuid.UUID
		if err := tx.Model(&models.Application{}).
			Where("applicant_id = ? AND status IN ?", userID, deletableStatuses).
			Pluck("id", &applicationIDs).Error; err != nil {
			return fmt.Errorf("failed to collect applications: %w", err)
		}

		if len(applicationIDs) > 0 {
			if err := tx.Where("application_id IN ?", applicationIDs).
				Delete(&models.Inspection{}).Error; err != nil {
				return fmt.Errorf("failed to delete inspections: %w", err)
			}
			if err := tx.Where("id IN ?", applicationIDs).
				Delete(&models.Application{}).Error; err != nil {
				return fmt.Errorf("failed to delete applications: %w", err)
			}
		}

		// Buildings with no surviving application can go too; buildings behind
		// an approved application stay so the certificate remains verifiable.
		if err := tx.Where("owner_id = ? AND id NOT IN (?)", userID,
			tx.Session(&gorm.Session{NewDB: true}).Model(&models.Application{}).Select("building_id")).
			Delete(&models.Building{}).Error; err != nil {
			return fmt.Errorf("failed to delete buildings: %w", err)
		}

		if err := tx.Where("submitted_by = ?", userID).Delete(&models.Grievance{}).Error; err != nil {
			return fmt.Errorf("failed to delete grievances: %w", err)
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Notification{}).Error; err != nil {
			return fmt.Errorf("failed to delete notifications: %w", err)
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.UserRole{}).Error; err != nil {
			return fmt.Errorf("failed to delete roles: %w", err)
		}
		if err := tx.Delete(&user).Error; err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logrus.WithField("user_id", userID).Info("Account deleted")
	return nil
}
