// internal/handlers/application.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/firenoc/firenoc-backend/internal/i18n"
	"github.com/firenoc/firenoc-backend/internal/models"
	"github.com/firenoc/firenoc-backend/internal/services"
	"github.com/firenoc/firenoc-backend/internal/utils"
)

type ApplicationHandler struct {
	applicationService *services.ApplicationService
	db                 *gorm.DB
}

func NewApplicationHandler(applicationService *services.ApplicationService, db *gorm.DB) *ApplicationHandler {
	return &ApplicationHandler{
		applicationService: applicationService,
		db:                 db,
	}
}

// isStaff reports whether the caller holds any staff role. Used to widen
// read access; write access is gated by route middleware.
func (h *ApplicationHandler) isStaff(userID uuid.UUID) bool {
	var count int64
	h.db.Model(&models.UserRole{}).
		Where("user_id = ? AND role IN ?", userID, models.StaffRoles).
		Count(&count)
	return count > 0
}

// POST /applications
func (h *ApplicationHandler) CreateApplication(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req services.CreateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	application, err := h.applicationService.CreateApplication(userID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":     i18n.T(lang, i18n.KeyApplicationCreated),
		"application": application,
	})
}

// GET /applications
func (h *ApplicationHandler) ListApplications(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	params := services.ApplicationSearchParams{
		PaginationParams: utils.GetPaginationParams(c),
	}
	if statusStr := c.Query("status"); statusStr != "" {
		status := models.ApplicationStatus(statusStr)
		params.Status = &status
	}
	if applicantStr := c.Query("applicant_id"); applicantStr != "" {
		if applicantID, err := uuid.Parse(applicantStr); err == nil {
			params.ApplicantID = &applicantID
		}
	}

	result, err := h.applicationService.ListApplications(userID, h.isStaff(userID), params)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.PaginatedResponse(c, *result)
}

// GET /applications/:id
func (h *ApplicationHandler) GetApplication(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	applicationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid application ID", nil)
		return
	}

	application, err := h.applicationService.GetApplication(applicationID, userID, h.isStaff(userID))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, application)
}

// POST /applications/:id/review
func (h *ApplicationHandler) StartReview(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	applicationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid application ID", nil)
		return
	}

	application, err := h.applicationService.StartReview(userID, applicationID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, application)
}
