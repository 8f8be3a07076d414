// internal/handlers/verification.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/firenoc/firenoc-backend/internal/i18n"
	"github.com/firenoc/firenoc-backend/internal/services"
	"github.com/firenoc/firenoc-backend/internal/utils"
)

type VerificationHandler struct {
	verificationService *services.VerificationService
}

func NewVerificationHandler(verificationService *services.VerificationService) *VerificationHandler {
	return &VerificationHandler{verificationService: verificationService}
}

// GET /verify/:number
//
// Public endpoint, no authentication. Answers the QR code printed on every
// issued certificate.
func (h *VerificationHandler) VerifyNOC(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	number := c.Param("number")
	if number == "" {
		utils.BadRequestResponse(c, "NOC number is required", nil)
		return
	}

	result, err := h.verificationService.VerifyNOC(number)
	if err != nil {
		if errors.Is(err, services.ErrNOCNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, "NOT_FOUND",
				i18n.T(lang, i18n.KeyNOCNotFound), nil)
			return
		}
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, result)
}
