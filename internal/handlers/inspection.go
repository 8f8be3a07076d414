// internal/handlers/inspection.go
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

type InspectionHandler struct {
	applicationService *services.ApplicationService
	adminService       *services.AdminService
	storageService     *services.StorageService
	db                 *gorm.DB
}

func NewInspectionHandler(applicationService *services.ApplicationService, adminService *services.AdminService, storageService *services.StorageService, db *gorm.DB) *InspectionHandler {
	return &InspectionHandler{
		applicationService: applicationService,
		adminService:       adminService,
		storageService:     storageService,
		db:                 db,
	}
}

// POST /inspections/schedule
func (h *InspectionHandler) ScheduleInspection(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	officerID, ok := callerID(c)
	if !ok {
		return
	}

	var req services.ScheduleInspectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	inspection, err := h.applicationService.ScheduleInspection(officerID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":    i18n.T(lang, i18n.KeyInspectionScheduled),
		"inspection": inspection,
	})
}

// POST /inspections/complete
func (h *InspectionHandler) CompleteInspection(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	officerID, ok := callerID(c)
	if !ok {
		return
	}

	var req services.CompleteInspectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	inspection, err := h.applicationService.CompleteInspection(officerID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":    i18n.T(lang, i18n.KeyInspectionCompleted),
		"inspection": inspection,
	})
}

// GET /inspections
func (h *InspectionHandler) ListInspections(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	var status *models.InspectionStatus
	if statusStr := c.Query("status"); statusStr != "" {
		s := models.InspectionStatus(statusStr)
		status = &s
	}
	var officerID *uuid.UUID
	if officerStr := c.Query("officer_id"); officerStr != "" {
		if id, err := uuid.Parse(officerStr); err == nil {
			officerID = &id
		}
	}

	result, err := h.adminService.ListInspections(status, officerID, params)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.PaginatedResponse(c, *result)
}

// GET /inspections/:id
func (h *InspectionHandler) GetInspection(c *gin.Context) {
	inspectionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid inspection ID", nil)
		return
	}

	var inspection models.Inspection
	if err := h.db.Preload("Application").Preload("Building").Preload("Officer").
		First(&inspection, "id = ?", inspectionID).Error; err != nil {
		utils.NotFoundResponse(c, "inspection")
		return
	}

	utils.SuccessResponse(c, inspection)
}

// GET /inspections/slots
func (h *InspectionHandler) ListTimeSlots(c *gin.Context) {
	utils.SuccessResponse(c, gin.H{"slots": models.TimeSlots})
}

// POST /inspections/:id/photos
func (h *InspectionHandler) UploadPhotos(c *gin.Context) {
	inspectionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid inspection ID", nil)
		return
	}

	var inspection models.Inspection
	if err := h.db.First(&inspection, "id = ?", inspectionID).Error; err != nil {
		utils.NotFoundResponse(c, "inspection")
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		utils.BadRequestResponse(c, "Invalid multipart form", nil)
		return
	}

	files := form.File["photos"]
	if len(files) == 0 {
		utils.BadRequestResponse(c, "No photos provided", nil)
		return
	}

	options := h.storageService.GetDefaultUploadOptions("inspection_photos")
	uploaded := make([]string, 0, len(files))
	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			utils.BadRequestResponse(c, "Failed to read uploaded file", nil)
			return
		}

		result, err := h.storageService.UploadFile(file, header, options)
		file.Close()
		if err != nil {
			utils.BadRequestResponse(c, err.Error(), nil)
			return
		}
		uploaded = append(uploaded, result.URL)
	}

	inspection.Photos = append(inspection.Photos, uploaded...)
	if err := h.db.Model(&inspection).Update("photos", inspection.Photos).Error; err != nil {
		utils.InternalErrorResponse(c, "Failed to attach photos")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"photos": inspection.Photos,
	})
}
