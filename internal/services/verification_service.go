// internal/services/verification_service.go
package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/firenoc/firenoc-backend/internal/models"
)

// VerificationService answers the public certificate lookup. It exposes only
// what a citizen scanning a QR code needs to see and never requires a login.
type VerificationService struct {
	db *gorm.DB
}

func NewVerificationService(db *gorm.DB) *VerificationService {
	return &VerificationService{db: db}
}

// VerificationResult is the public view of a certificate. No applicant
// contact details or internal identifiers leak through here.
type VerificationResult struct {
	Valid           bool   `json:"valid"`
	Status          string `json:"status"` // valid, expired, revoked
	NOCNumber       string `json:"noc_number"`
	IssuedTo        string `json:"issued_to"`
	BuildingName    string `json:"building_name"`
	BuildingAddress string `json:"building_address"`
	BuildingCity    string `json:"building_city"`
	Category        string `json:"category"`
	IssueDate       string `json:"issue_date"`
	ValidUntil      string `json:"valid_until"`
}

// VerifyNOC looks up a certificate by its public number. The number is
// normalized before lookup so pasted values with stray spaces or lowercase
// still resolve. A missing certificate is distinct from an expired or revoked
// one.
func (s *VerificationService) VerifyNOC(nocNumber string) (*VerificationResult, error) {
	normalized := strings.ToUpper(strings.TrimSpace(nocNumber))
	if normalized == "" {
		return nil, ErrNOCNotFound
	}

	var noc models.NOC
	err := s.db.Preload("Building").Where("noc_number = ?", normalized).First(&noc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNOCNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	result := &VerificationResult{
		NOCNumber:       noc.NOCNumber,
		IssuedTo:        noc.IssuedTo,
		BuildingName:    noc.Building.Name,
		BuildingAddress: noc.Building.Address,
		BuildingCity:    noc.Building.City,
		Category:        string(noc.Building.Category),
		IssueDate:       noc.IssueDate.Format("2006-01-02"),
		ValidUntil:      noc.ValidUntil.Format("2006-01-02"),
	}

	switch {
	case noc.Status == models.NOCStatusRevoked:
		result.Status = "revoked"
	case time.Now().After(noc.ValidUntil):
		result.Status = "expired"
	default:
		result.Valid = true
		result.Status = "valid"
	}

	return result, nil
}

// RevokeNOC invalidates an issued certificate. Administrative action only.
func (s *VerificationService) RevokeNOC(nocNumber, reason string) (*models.NOC, error) {
	normalized := strings.ToUpper(strings.TrimSpace(nocNumber))

	var noc models.NOC
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("noc_number = ?", normalized).First(&noc).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNOCNotFound
			}
			return fmt.Errorf("database error: %w", err)
		}

		if noc.Status == models.NOCStatusRevoked {
			return ErrNOCRevoked
		}

		now := time.Now()
		if err := tx.Model(&noc).Updates(map[string]interface{}{
			"status":            models.NOCStatusRevoked,
			"revocation_reason": reason,
			"revoked_at":        now,
		}).Error; err != nil {
			return fmt.Errorf("failed to revoke certificate: %w", err)
		}
		noc.Status = models.NOCStatusRevoked
		noc.RevocationReason = reason
		noc.RevokedAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &noc, nil
}
