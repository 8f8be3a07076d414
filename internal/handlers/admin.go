// internal/handlers/admin.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/firenoc/firenoc-backend/internal/i18n"
	"github.com/firenoc/firenoc-backend/internal/models"
	"github.com/firenoc/firenoc-backend/internal/services"
	"github.com/firenoc/firenoc-backend/internal/utils"
)

type AdminHandler struct {
	adminService        *services.AdminService
	applicationService  *services.ApplicationService
	verificationService *services.VerificationService
}

func NewAdminHandler(adminService *services.AdminService, applicationService *services.ApplicationService, verificationService *services.VerificationService) *AdminHandler {
	return &AdminHandler{
		adminService:        adminService,
		applicationService:  applicationService,
		verificationService: verificationService,
	}
}

// POST /admin/applications/decision
func (h *AdminHandler) DecideApplication(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	adminID, ok := callerID(c)
	if !ok {
		return
	}

	var req services.DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	application, err := h.applicationService.Decide(adminID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"application": application,
		"noc":         application.NOC,
	})
}

// POST /admin/applications/:id/compliance
func (h *AdminHandler) MarkRequiresCompliance(c *gin.Context) {
	adminID, ok := callerID(c)
	if !ok {
		return
	}

	applicationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid application ID", nil)
		return
	}

	var req struct {
		Notes string `json:"notes,omitempty"`
	}
	c.ShouldBindJSON(&req)

	application, err := h.applicationService.MarkRequiresCompliance(adminID, applicationID, req.Notes)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, application)
}

// GET /admin/dashboard
func (h *AdminHandler) GetDashboardStats(c *gin.Context) {
	stats, err := h.adminService.GetDashboardStats()
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, stats)
}

// GET /admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	result, err := h.adminService.ListUsers(params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.PaginatedResponse(c, *result)
}

// POST /admin/users/:id/roles
func (h *AdminHandler) AssignRole(c *gin.Context) {
	adminID, ok := callerID(c)
	if !ok {
		return
	}

	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid user ID", nil)
		return
	}

	var req struct {
		Role models.AppRole `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Role is required", nil)
		return
	}

	if err := h.adminService.AssignRole(adminID, userID, req.Role); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"user_id": userID, "role": req.Role})
}

// DELETE /admin/users/:id/roles/:role
func (h *AdminHandler) RevokeRole(c *gin.Context) {
	adminID, ok := callerID(c)
	if !ok {
		return
	}

	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid user ID", nil)
		return
	}

	role := models.AppRole(c.Param("role"))
	if err := h.adminService.RevokeRole(adminID, userID, role); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"user_id": userID, "role": role, "revoked": true})
}

// POST /admin/nocs/:number/revoke
func (h *AdminHandler) RevokeNOC(c *gin.Context) {
	var req struct {
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Revocation reason is required", nil)
		return
	}

	noc, err := h.verificationService.RevokeNOC(c.Param("number"), req.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, noc)
}
