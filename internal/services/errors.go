// internal/services/errors.go
package services

import "errors"

// Sentinel errors returned by the service layer. Handlers translate these to
// HTTP status codes with errors.Is.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")

	ErrApplicationNotFound     = errors.New("application not found")
	ErrApplicationDecided      = errors.New("application already decided")
	ErrInvalidDecision         = errors.New("decision must be approve or reject")
	ErrRejectionReasonRequired = errors.New("rejection reason required")

	ErrInspectionNotFound = errors.New("no inspection found for application")
	ErrInvalidTimeSlot    = errors.New("scheduled time is not an offered slot")

	ErrNOCNotFound = errors.New("noc certificate not found")
	ErrNOCRevoked  = errors.New("noc certificate revoked")

	ErrGrievanceNotFound = errors.New("grievance not found")
	ErrBuildingNotFound  = errors.New("building not found")

	ErrForbidden = errors.New("operation not permitted for this user")
)
