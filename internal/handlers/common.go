// internal/handlers/common.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/firenoc/firenoc-backend/internal/services"
	"github.com/firenoc/firenoc-backend/internal/utils"
)

// respondServiceError maps service layer sentinels onto the HTTP error
// taxonomy. Anything unrecognized is treated as a bad request so internals
// never leak as 500s for plain input mistakes.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrApplicationNotFound),
		errors.Is(err, services.ErrInspectionNotFound),
		errors.Is(err, services.ErrNOCNotFound),
		errors.Is(err, services.ErrGrievanceNotFound),
		errors.Is(err, services.ErrBuildingNotFound),
		errors.Is(err, services.ErrUserNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)
	case errors.Is(err, services.ErrApplicationDecided),
		errors.Is(err, services.ErrNOCRevoked):
		utils.ConflictResponse(c, err.Error())
	case errors.Is(err, services.ErrForbidden):
		utils.ForbiddenResponse(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.UnauthorizedResponse(c, err.Error())
	case errors.Is(err, services.ErrEmailTaken):
		utils.ConflictResponse(c, err.Error())
	case errors.Is(err, services.ErrInvalidDecision),
		errors.Is(err, services.ErrRejectionReasonRequired),
		errors.Is(err, services.ErrInvalidTimeSlot):
		utils.BadRequestResponse(c, err.Error(), nil)
	default:
		utils.BadRequestResponse(c, err.Error(), nil)
	}
}

// callerID pulls the authenticated user's UUID from the context. Routes using
// this sit behind AuthRequired, so a miss means a broken route table.
func callerID(c *gin.Context) (uuid.UUID, bool) {
	userIDStr, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(userIDStr)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid user ID", nil)
		return uuid.Nil, false
	}
	return id, true
}
