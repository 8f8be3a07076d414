// internal/services/numbering_service.go
package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/firenoc/firenoc-backend/internal/utils"
)

// NumberingService mints the human-facing business identifiers
// (APP-YYYYMMDD-NNNN, NOC-YYYYMMDD-NNNN, GRV-YYYYMMDD-NNNN). Each candidate
// gets a random 4-digit suffix and is checked against the table before use,
// so two concurrent mints never hand out the same number. The unique index on
// the number column is the final arbiter.
type NumberingService struct {
	db *gorm.DB
}

func NewNumberingService(db *gorm.DB) *NumberingService {
	return &NumberingService{db: db}
}

const numberingMaxAttempts = 10

func (s *NumberingService) next(tx *gorm.DB, prefix, table, column string) (string, error) {
	datePart := time.Now().Format("20060102")

	for attempt := 0; attempt < numberingMaxAttempts; attempt++ {
		suffix, err := utils.RandomSuffix(10000)
		if err != nil {
			return "", fmt.Errorf("failed to generate number suffix: %w", err)
		}
		candidate := fmt.Sprintf("%s-%s-%04d", prefix, datePart, suffix)

		var count int64
		if err := tx.Table(table).Where(column+" = ?", candidate).Count(&count).Error; err != nil {
			return "", fmt.Errorf("failed to check number uniqueness: %w", err)
		}
		if count == 0 {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("could not mint a unique %s number after %d attempts", prefix, numberingMaxAttempts)
}

// NextApplicationNumber mints an application number within tx.
func (s *NumberingService) NextApplicationNumber(tx *gorm.DB) (string, error) {
	if tx == nil {
		tx = s.db
	}
	return s.next(tx, "APP", "applications", "application_number")
}

// NextNOCNumber mints a certificate number within tx.
func (s *NumberingService) NextNOCNumber(tx *gorm.DB) (string, error) {
	if tx == nil {
		tx = s.db
	}
	return s.next(tx, "NOC", "nocs", "noc_number")
}

// NextGrievanceNumber mints a grievance number within tx.
func (s *NumberingService) NextGrievanceNumber(tx *gorm.DB) (string, error) {
	if tx == nil {
		tx = s.db
	}
	return s.next(tx, "GRV", "grievances", "grievance_number")
}
