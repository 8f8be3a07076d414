// internal/handlers/grievance.go
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

type GrievanceHandler struct {
	grievanceService *services.GrievanceService
	db               *gorm.DB
}

func NewGrievanceHandler(grievanceService *services.GrievanceService, db *gorm.DB) *GrievanceHandler {
	return &GrievanceHandler{grievanceService: grievanceService, db: db}
}

func (h *GrievanceHandler) isStaff(userID uuid.UUID) bool {
	var count int64
	h.db.Model(&models.UserRole{}).
		Where("user_id = ? AND role IN ?", userID, models.StaffRoles).
		Count(&count)
	return count > 0
}

// POST /grievances
func (h *GrievanceHandler) CreateGrievance(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req services.CreateGrievanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	grievance, err := h.grievanceService.CreateGrievance(userID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":   i18n.T(lang, i18n.KeyGrievanceCreated),
		"grievance": grievance,
	})
}

// GET /grievances
func (h *GrievanceHandler) ListGrievances(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	result, err := h.grievanceService.ListGrievances(userID, h.isStaff(userID), params)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.PaginatedResponse(c, *result)
}

// POST /grievances/resolve
func (h *GrievanceHandler) ResolveGrievance(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	staffID, ok := callerID(c)
	if !ok {
		return
	}

	var req services.ResolveGrievanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	grievance, err := h.grievanceService.Resolve(staffID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, grievance)
}

// POST /grievances/:id/feedback
func (h *GrievanceHandler) SubmitFeedback(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	grievanceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid grievance ID", nil)
		return
	}

	var req struct {
		Rating   int    `json:"rating" binding:"required"`
		Feedback string `json:"feedback,omitempty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Rating is required", nil)
		return
	}

	grievance, err := h.grievanceService.SubmitFeedback(userID, grievanceID, req.Rating, req.Feedback)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, grievance)
}
