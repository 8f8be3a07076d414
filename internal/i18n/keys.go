// internal/i18n/keys.go
package i18n

// Message keys for the translation catalogs. Keep these in sync with
// locales/en.json and locales/hi.json.
const (
	// Auth
	KeyAuthRequired       = "auth.required"
	KeyAccessDenied       = "auth.access_denied"
	KeyInvalidCredentials = "auth.invalid_credentials"
	KeyEmailTaken         = "auth.email_taken"
	KeyTokenExpired       = "auth.token_expired"

	// Validation
	KeyValidationInvalid  = "validation.invalid"
	KeyValidationRequired = "validation.required"

	// Applications
	KeyApplicationNotFound  = "application.not_found"
	KeyApplicationCreated   = "application.created"
	KeyApplicationDecided   = "application.already_decided"
	KeyRejectionReasonBlank = "application.rejection_reason_required"

	// Inspections
	KeyInspectionNotFound  = "inspection.not_found"
	KeyInspectionScheduled = "inspection.scheduled"
	KeyInspectionCompleted = "inspection.completed"
	KeyInvalidTimeSlot     = "inspection.invalid_time_slot"

	// NOC
	KeyNOCNotFound = "noc.not_found"
	KeyNOCValid    = "noc.valid"
	KeyNOCExpired  = "noc.expired"
	KeyNOCRevoked  = "noc.revoked"

	// Grievances
	KeyGrievanceNotFound = "grievance.not_found"
	KeyGrievanceCreated  = "grievance.created"

	// Users
	KeyUserNotFound   = "user.not_found"
	KeyAccountDeleted = "user.account_deleted"

	// Generic
	KeyInternalError = "common.internal_error"
	KeyRateLimited   = "common.rate_limited"
)
